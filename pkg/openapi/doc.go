// Package openapi exports assembled settings forms as OpenAPI 3 schemas so a
// settings record can be documented and validated outside the form layer.
// kin-openapi types are returned directly; callers that publish the schema
// can embed it in their own documents or use Document for a standalone one.
package openapi
