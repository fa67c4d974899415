package commands

import (
	"fmt"
	"strconv"
	"strings"

	"meteradmin/internal/meter"
)

// meterOp is one edit applied to a meter collection.
type meterOp func(c *meter.Collection) error

// parseMeterOp reads one edit:
//
//	add:ID|ADDRESS          append a meter
//	set:SLOT:id=VALUE       change a meter's id
//	set:SLOT:address=VALUE  change a meter's address
//	remove:SLOT             drop a meter
//
// Slots are the numbers shown by "meters show" and stay fixed while the ops
// run; renumbering happens on submit.
func parseMeterOp(s string) (meterOp, error) {
	verb, rest, _ := strings.Cut(s, ":")
	switch verb {
	case "add":
		id, addr, ok := strings.Cut(rest, "|")
		if !ok || strings.TrimSpace(id) == "" {
			return nil, fmt.Errorf("%q: want add:ID|ADDRESS", s)
		}
		return func(c *meter.Collection) error {
			slot := c.Add()
			if err := c.SetField(slot, meter.FieldID, strings.TrimSpace(id)); err != nil {
				return err
			}
			return c.SetField(slot, meter.FieldAddress, strings.TrimSpace(addr))
		}, nil
	case "set":
		slotStr, assign, ok := strings.Cut(rest, ":")
		if !ok {
			return nil, fmt.Errorf("%q: want set:SLOT:FIELD=VALUE", s)
		}
		slot, err := parseSlot(slotStr)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", s, err)
		}
		field, value, ok := strings.Cut(assign, "=")
		if !ok {
			return nil, fmt.Errorf("%q: want set:SLOT:FIELD=VALUE", s)
		}
		f := meter.Field(field)
		if f != meter.FieldID && f != meter.FieldAddress {
			return nil, fmt.Errorf("%q: field must be id or address", s)
		}
		return func(c *meter.Collection) error {
			return c.SetField(slot, f, strings.TrimSpace(value))
		}, nil
	case "remove":
		slot, err := parseSlot(rest)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", s, err)
		}
		return func(c *meter.Collection) error {
			if !c.Remove(slot) {
				return fmt.Errorf("no meter in slot %d", slot)
			}
			return nil
		}, nil
	}
	return nil, fmt.Errorf("%q: unknown op (add, set, remove)", s)
}

func parseSlot(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("slot %q is not a positive number", s)
	}
	return n, nil
}
