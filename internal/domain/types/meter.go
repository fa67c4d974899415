package types

// MeterRecord is one water meter attached to an owner.
type MeterRecord struct {
	ID      string `json:"id"`
	Address string `json:"address"`
}

// IsEmpty reports whether both fields are blank.
func (m MeterRecord) IsEmpty() bool { return m.ID == "" && m.Address == "" }

// Meters maps a positive slot number to a meter record.
type Meters map[int]MeterRecord

// Clone returns an independent copy of m.
func (m Meters) Clone() Meters {
	out := make(Meters, len(m))
	for slot, rec := range m {
		out[slot] = rec
	}
	return out
}
