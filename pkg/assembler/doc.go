// Package assembler builds settings forms. For each setting of a schema that
// has a value in the existing data record and is not disabled, it resolves
// the field type, materialises the declared constraints and rewrites the
// label and choices into the `settings` translation domain:
//
//	label:   labels.<name>
//	choices: <value> => labels.<name>_choices.<value>
//
// Assembly is all-or-nothing. An unknown type or constraint aborts the call
// without emitting any descriptor; Check reports every such problem of a
// schema up front.
package assembler
