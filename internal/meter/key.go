package meter

import (
	"sort"
	"strconv"
	"strings"
)

// FieldPrefix is the literal prefix of every meter field name.
const FieldPrefix = "waterMeter"

// Key returns the document field name for slot.
func Key(slot int) string { return FieldPrefix + strconv.Itoa(slot) }

// ParseKey extracts the slot from a meter field name. It accepts only the
// prefix followed by a positive base-10 integer without leading zeros.
func ParseKey(key string) (int, bool) {
	digits, ok := strings.CutPrefix(key, FieldPrefix)
	if !ok || digits == "" || digits[0] == '0' {
		return 0, false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// IsKey reports whether key names a meter field.
func IsKey(key string) bool {
	_, ok := ParseKey(key)
	return ok
}

// Keys returns the meter field names among fields, ordered by slot.
func Keys(fields map[string]any) []string {
	type entry struct {
		key  string
		slot int
	}
	var found []entry
	for k := range fields {
		if slot, ok := ParseKey(k); ok {
			found = append(found, entry{key: k, slot: slot})
		}
	}
	sort.Slice(found, func(i, j int) bool { return found[i].slot < found[j].slot })

	out := make([]string, len(found))
	for i, e := range found {
		out[i] = e.key
	}
	return out
}
