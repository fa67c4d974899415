package query

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"meteradmin/internal/domain"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 200
)

// Sortable column names accepted in ListQuery.SortBy.
var columns = map[string]func(domain.Owner) string{
	"name":        func(o domain.Owner) string { return o.Name },
	"email":       func(o domain.Owner) string { return o.Email },
	"phoneNumber": func(o domain.Owner) string { return o.PhoneNumber },
	"id":          func(o domain.Owner) string { return o.OfficerID },
	"street":      func(o domain.Owner) string { return o.Street },
	"city":        func(o domain.Owner) string { return o.City },
	"province":    func(o domain.Owner) string { return o.Province },
	"country":     func(o domain.Owner) string { return o.Country },
}

// Normalize fills in defaults and rejects unknown modes, orders and sort
// columns.
func Normalize(q domain.ListQuery) (domain.ListQuery, error) {
	q.Search = strings.TrimSpace(q.Search)
	switch q.Mode {
	case "":
		q.Mode = domain.SearchContains
	case domain.SearchContains, domain.SearchFuzzy:
	default:
		return q, domain.Invalid("mode", "unknown search mode %q", q.Mode)
	}
	switch q.Order {
	case "":
		q.Order = domain.SortAscend
	case domain.SortAscend, domain.SortDescend:
	default:
		return q, domain.Invalid("order", "unknown sort order %q", q.Order)
	}
	if q.SortBy != "" && q.SortBy != "createdAt" {
		if _, ok := columns[q.SortBy]; !ok {
			return q, domain.Invalid("sort", "cannot sort by %q", q.SortBy)
		}
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}
	return q, nil
}

// Filter returns the owners that match q.Search, sorted per q. With no sort
// column, fuzzy results are ranked by closeness and substring results keep
// creation order.
func Filter(owners []domain.Owner, q domain.ListQuery) []domain.Owner {
	out := make([]domain.Owner, 0, len(owners))
	rank := make(map[domain.OwnerID]int, len(owners))

	needle := strings.ToLower(q.Search)
	for _, o := range owners {
		if needle == "" {
			out = append(out, o)
			continue
		}
		fields := SearchFields(o)
		if q.Mode == domain.SearchFuzzy {
			ranks := fuzzy.RankFindNormalizedFold(q.Search, fields)
			if ranks.Len() == 0 {
				continue
			}
			sort.Sort(ranks)
			rank[o.ID] = ranks[0].Distance
			out = append(out, o)
			continue
		}
		for _, f := range fields {
			if strings.Contains(strings.ToLower(f), needle) {
				out = append(out, o)
				break
			}
		}
	}

	switch {
	case q.SortBy != "":
		sortBy(out, q.SortBy, q.Order)
	case q.Mode == domain.SearchFuzzy && needle != "":
		sort.SliceStable(out, func(i, j int) bool { return rank[out[i].ID] < rank[out[j].ID] })
	default:
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	}
	return out
}

// Page slices the filtered owners to the requested page.
func Page(owners []domain.Owner, q domain.ListQuery) domain.ListResult {
	res := domain.ListResult{Total: len(owners), Page: q.Page, PageSize: q.PageSize}
	start := res.Offset()
	if start >= len(owners) {
		res.Owners = []domain.Owner{}
		return res
	}
	end := start + q.PageSize
	if end > len(owners) {
		end = len(owners)
	}
	res.Owners = owners[start:end]
	return res
}

// Apply normalizes q, then filters, sorts and pages owners.
func Apply(owners []domain.Owner, q domain.ListQuery) (domain.ListResult, error) {
	q, err := Normalize(q)
	if err != nil {
		return domain.ListResult{}, err
	}
	return Page(Filter(owners, q), q), nil
}

// SearchFields lists the text an owner can be found by.
func SearchFields(o domain.Owner) []string {
	fields := []string{o.Name, o.Email, o.PhoneNumber, o.OfficerID, o.Street, o.City, o.Province, o.Country}
	for _, slot := range sortedSlots(o.Meters) {
		m := o.Meters[slot]
		fields = append(fields, m.ID, m.Address)
	}
	out := fields[:0]
	for _, f := range fields {
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

func sortBy(owners []domain.Owner, column string, order domain.SortOrder) {
	if column == "createdAt" {
		sort.SliceStable(owners, func(i, j int) bool {
			if order == domain.SortDescend {
				return owners[j].CreatedAt.Before(owners[i].CreatedAt)
			}
			return owners[i].CreatedAt.Before(owners[j].CreatedAt)
		})
		return
	}
	key := columns[column]
	// Collators keep internal buffers; one per sort.
	c := collate.New(language.Und, collate.IgnoreCase)
	sort.SliceStable(owners, func(i, j int) bool {
		cmp := c.CompareString(key(owners[i]), key(owners[j]))
		if order == domain.SortDescend {
			return cmp > 0
		}
		return cmp < 0
	})
}

func sortedSlots(m domain.Meters) []int {
	slots := make([]int, 0, len(m))
	for s := range m {
		slots = append(slots, s)
	}
	sort.Ints(slots)
	return slots
}
