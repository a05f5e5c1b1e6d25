// Package validation checks stored settings records against assembled forms,
// either through the constraint objects carried by each field or through the
// exported OpenAPI schema.
package validation
