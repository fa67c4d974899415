package store

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/goccy/go-json"

	"meteradmin/internal/domain"
)

// normalize round-trips v through JSON so stored values always have the
// shapes a fresh read would produce.
func normalize(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func normalizeFields(fields map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		n, err := normalize(v)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", k, err)
		}
		out[k] = n
	}
	return out, nil
}

// applyPatch returns a copy of fields with the patch applied. Deletes run
// before sets, so a key named in both ends up set.
func applyPatch(fields map[string]any, patch domain.Patch) (map[string]any, error) {
	set, err := normalizeFields(patch.Set)
	if err != nil {
		return nil, err
	}
	out := make(map[string]any, len(fields)+len(set))
	for k, v := range fields {
		out[k] = v
	}
	for _, k := range patch.Delete {
		delete(out, k)
	}
	for k, v := range set {
		out[k] = v
	}
	return out, nil
}

func matches(fields map[string]any, filter domain.Filter) (bool, error) {
	if filter.Field == "" {
		return true, nil
	}
	want, err := normalize(filter.Equals)
	if err != nil {
		return false, err
	}
	got, ok := fields[filter.Field]
	if !ok {
		return false, nil
	}
	return reflect.DeepEqual(got, want), nil
}

func sortDocuments(docs []domain.Document) {
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
}

func validCollection(c domain.Collection) error {
	if c == "" {
		return domain.Invalid("collection", "must not be empty")
	}
	return nil
}
