// Package form defines the field descriptors produced from a settings schema
// and the Builder seam through which they reach a host form framework. Form is
// the default in-memory builder; decorators can enrich it after assembly.
// Constraint instances serialise as `{"kind": ..., "params": ...}` objects so
// JSON snapshots stay deterministic.
package form
