package types

// Document is a flat, schemaless record as held by the document store.
// Values are JSON-compatible (string, float64, bool, nil, []any,
// map[string]any).
type Document struct {
	ID     OwnerID        `json:"id"`
	Fields map[string]any `json:"fields"`
}

// Patch is a field-level change applied to one document in a single write.
type Patch struct {
	Set    map[string]any
	Delete []string
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool { return len(p.Set) == 0 && len(p.Delete) == 0 }

// Filter selects documents whose field equals a value.
type Filter struct {
	Field  string
	Equals any
}
