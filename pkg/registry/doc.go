// Package registry is the single source of truth for the closed component
// vocabulary: every allowed component type, its property schema (an OpenAPI
// schema with defaults, enum domains, and unknown-key rejection), the module
// each component is imported from, and the icon vocabulary generated code may
// reference. The validator, code generator, sandbox, and preview renderer all
// consult the same definitions, and the human/LLM-facing catalog text is
// rendered from the same schema map so documentation can never drift from
// enforcement.
package registry
