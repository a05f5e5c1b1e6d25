// Package fieldtype resolves the short validation type tokens used in settings
// files (`text`, `choice`, `date`, ...) into concrete field-type identifiers.
// Identifiers that the host already knows about, either core identifiers or
// custom types registered in a Registry, pass through untouched.
package fieldtype
