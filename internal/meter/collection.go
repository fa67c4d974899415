package meter

import (
	"sort"

	"meteradmin/internal/domain"
	"meteradmin/internal/util/words"
)

// Field names an editable MeterRecord field.
type Field string

const (
	FieldID      Field = "id"
	FieldAddress Field = "address"
)

// Collection is the editable set of meters of one owner. It is not safe for
// concurrent use; edits are expected to arrive one at a time.
type Collection struct {
	slots map[int]domain.MeterRecord
}

// New returns an empty collection.
func New() *Collection {
	return &Collection{slots: make(map[int]domain.MeterRecord)}
}

// Load builds a collection from stored meters, dropping non-positive slots
// and records whose id and address are both empty.
func Load(meters domain.Meters) *Collection {
	c := New()
	for slot, rec := range meters {
		if slot < 1 || rec.IsEmpty() {
			continue
		}
		c.slots[slot] = rec
	}
	return c
}

// FromDocument builds a collection from the meter fields of a flat document.
func FromDocument(fields map[string]any) *Collection {
	return Load(DecodeFields(fields))
}

// Len returns the number of meters.
func (c *Collection) Len() int { return len(c.slots) }

// Slots returns the slots in use in ascending order.
func (c *Collection) Slots() []int {
	out := make([]int, 0, len(c.slots))
	for slot := range c.slots {
		out = append(out, slot)
	}
	sort.Ints(out)
	return out
}

// Get returns the record at slot.
func (c *Collection) Get(slot int) (domain.MeterRecord, bool) {
	rec, ok := c.slots[slot]
	return rec, ok
}

// Add inserts an empty record one past the highest slot in use and returns
// its slot.
func (c *Collection) Add() int {
	next := 1
	for slot := range c.slots {
		if slot >= next {
			next = slot + 1
		}
	}
	c.slots[next] = domain.MeterRecord{}
	return next
}

// SetField updates one field of the record at slot. Addresses are stored
// word-capitalized, ids verbatim. An unknown slot or field leaves the
// collection unchanged and returns a *domain.ValidationError.
func (c *Collection) SetField(slot int, field Field, value string) error {
	rec, ok := c.slots[slot]
	if !ok {
		return domain.Invalid(Key(slot), "no meter in slot %d", slot)
	}
	switch field {
	case FieldID:
		rec.ID = value
	case FieldAddress:
		rec.Address = words.Capitalize(value)
	default:
		return domain.Invalid(string(field), "unknown meter field")
	}
	c.slots[slot] = rec
	return nil
}

// Remove deletes the record at slot without renumbering the rest. It
// reports whether a record was removed.
func (c *Collection) Remove(slot int) bool {
	if _, ok := c.slots[slot]; !ok {
		return false
	}
	delete(c.slots, slot)
	return true
}

// Finalize returns the records in ascending slot order. Position i of the
// result is slot i+1 of the submitted payload.
func (c *Collection) Finalize() []domain.MeterRecord {
	slots := c.Slots()
	out := make([]domain.MeterRecord, len(slots))
	for i, slot := range slots {
		out[i] = c.slots[slot]
	}
	return out
}

// FinalizeMap returns the records renumbered to slots 1..N.
func (c *Collection) FinalizeMap() domain.Meters {
	return Dense(c.Finalize())
}

// Dense numbers records 1..N in order.
func Dense(records []domain.MeterRecord) domain.Meters {
	out := make(domain.Meters, len(records))
	for i, rec := range records {
		out[i+1] = rec
	}
	return out
}
