// Package orchestrator wires the schema loader → assembler → transformer →
// decorator pipeline behind a single entry point and is the layer that logs
// and surfaces assembly failures to callers.
package orchestrator
