package meter

import (
	"sort"

	"meteradmin/internal/domain"
)

// Plan is the field-level change that makes a document's meters equal a
// payload.
type Plan struct {
	ToDelete []string
	ToUpsert map[string]domain.MeterRecord
}

// Reconcile compares the meter keys currently stored with a new payload.
// Every payload slot is upserted; every stored key the payload does not
// name is deleted. Keys that are not meter keys are ignored.
func Reconcile(existingKeys []string, payload domain.Meters) Plan {
	plan := Plan{ToUpsert: make(map[string]domain.MeterRecord, len(payload))}
	for slot, rec := range payload {
		plan.ToUpsert[Key(slot)] = rec
	}
	seen := make(map[string]bool, len(existingKeys))
	for _, key := range existingKeys {
		if !IsKey(key) || seen[key] {
			continue
		}
		seen[key] = true
		if _, keep := plan.ToUpsert[key]; !keep {
			plan.ToDelete = append(plan.ToDelete, key)
		}
	}
	sort.Slice(plan.ToDelete, func(i, j int) bool {
		a, _ := ParseKey(plan.ToDelete[i])
		b, _ := ParseKey(plan.ToDelete[j])
		return a < b
	})
	return plan
}

// Patch turns the plan into a single document patch.
func (p Plan) Patch() domain.Patch {
	set := make(map[string]any, len(p.ToUpsert))
	for key, rec := range p.ToUpsert {
		set[key] = recordValue(rec)
	}
	return domain.Patch{
		Set:    set,
		Delete: append([]string(nil), p.ToDelete...),
	}
}

// CheckDense returns a *domain.ValidationError unless the payload's slots are
// exactly 1..len(payload).
func CheckDense(payload domain.Meters) error {
	for slot := range payload {
		if slot < 1 || slot > len(payload) {
			return domain.Invalid(Key(slot), "meter slots must run from 1 to %d without gaps", len(payload))
		}
	}
	return nil
}
