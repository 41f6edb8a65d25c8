package schema

// Diagnostic is a non-fatal issue produced during emission. Diagnostics
// are collected alongside the generated output instead of being printed,
// so callers decide how to surface them.
type Diagnostic struct {
	// Code is a machine-readable identifier, e.g. "unrecognized_object_kind".
	Code string

	// Message is a human-readable description.
	Message string

	// ObjectName is the schema object that triggered the diagnostic,
	// if applicable.
	ObjectName string
}
