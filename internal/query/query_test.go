package query_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meteradmin/internal/domain"
	"meteradmin/internal/query"
)

func owners() []domain.Owner {
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	return []domain.Owner{
		{ID: "1", Role: domain.RoleUser, Name: "budi santoso", Email: "budi@x.id", City: "Bandung", CreatedAt: base,
			Meters: domain.Meters{1: {ID: "WM-77", Address: "Jalan Merdeka 1"}}},
		{ID: "2", Role: domain.RoleUser, Name: "Ani", Email: "ani@x.id", City: "Jakarta", CreatedAt: base.Add(time.Hour)},
		{ID: "3", Role: domain.RoleUser, Name: "Citra", Email: "citra@x.id", City: "bogor", CreatedAt: base.Add(2 * time.Hour),
			Meters: domain.Meters{1: {ID: "WM-10", Address: "Jalan Sudirman"}, 2: {ID: "WM-11", Address: "Gang Mawar"}}},
	}
}

func ids(res []domain.Owner) []domain.OwnerID {
	out := make([]domain.OwnerID, len(res))
	for i, o := range res {
		out[i] = o.ID
	}
	return out
}

func TestApply_Contains(t *testing.T) {
	tests := []struct {
		name string
		q    string
		want []domain.OwnerID
	}{
		{"empty returns all in creation order", "", []domain.OwnerID{"1", "2", "3"}},
		{"case-insensitive name", "BUDI", []domain.OwnerID{"1"}},
		{"meter id", "wm-11", []domain.OwnerID{"3"}},
		{"meter address", "merdeka", []domain.OwnerID{"1"}},
		{"shared substring", "@x.id", []domain.OwnerID{"1", "2", "3"}},
		{"no match", "zzz", []domain.OwnerID{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := query.Apply(owners(), domain.ListQuery{Search: tt.q})
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(res.Owners))
			assert.Equal(t, len(tt.want), res.Total)
		})
	}
}

func TestApply_Fuzzy(t *testing.T) {
	res, err := query.Apply(owners(), domain.ListQuery{Search: "ctr", Mode: domain.SearchFuzzy})
	require.NoError(t, err)
	assert.Equal(t, []domain.OwnerID{"3"}, ids(res.Owners))
}

func TestApply_Sort(t *testing.T) {
	res, err := query.Apply(owners(), domain.ListQuery{SortBy: "name"})
	require.NoError(t, err)
	assert.Equal(t, []domain.OwnerID{"2", "1", "3"}, ids(res.Owners), "collation ignores case")

	res, err = query.Apply(owners(), domain.ListQuery{SortBy: "city", Order: domain.SortDescend})
	require.NoError(t, err)
	assert.Equal(t, []domain.OwnerID{"2", "3", "1"}, ids(res.Owners))

	res, err = query.Apply(owners(), domain.ListQuery{SortBy: "createdAt", Order: domain.SortDescend})
	require.NoError(t, err)
	assert.Equal(t, []domain.OwnerID{"3", "2", "1"}, ids(res.Owners))
}

func TestApply_Paginate(t *testing.T) {
	res, err := query.Apply(owners(), domain.ListQuery{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, []domain.OwnerID{"3"}, ids(res.Owners))
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 2, res.Offset())

	res, err = query.Apply(owners(), domain.ListQuery{Page: 9, PageSize: 2})
	require.NoError(t, err)
	assert.Empty(t, res.Owners)
	assert.Equal(t, 3, res.Total)
}

func TestNormalize(t *testing.T) {
	q, err := query.Normalize(domain.ListQuery{PageSize: 10_000})
	require.NoError(t, err)
	assert.Equal(t, domain.SearchContains, q.Mode)
	assert.Equal(t, domain.SortAscend, q.Order)
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, query.MaxPageSize, q.PageSize)

	for _, bad := range []domain.ListQuery{
		{Mode: "regex"},
		{Order: "up"},
		{SortBy: "password"},
	} {
		_, err := query.Normalize(bad)
		assert.True(t, domain.IsValidation(err), "%+v", bad)
	}
}
