package owners_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"meteradmin/internal/domain"
	"meteradmin/internal/services/owners"
	"meteradmin/internal/store"
)

func newService(t *testing.T) (*owners.Service, *store.DocumentFileStore, *store.CredentialFileStore) {
	t.Helper()
	dir := t.TempDir()
	docs := store.NewDocumentFileStore(dir)
	creds := store.NewCredentialFileStore(dir)
	return owners.New(docs, creds, zap.NewNop()), docs, creds
}

func userInput(email string) domain.UserInput {
	return domain.UserInput{
		Name:        "siti  aminah",
		Email:       email,
		PhoneNumber: "0812",
		Street:      "jalan mawar 3",
		City:        "BANDUNG",
		Province:    "jawa barat",
		Country:     "indonesia",
		WaterMeter1: domain.MeterRecord{ID: "WM-1", Address: "jalan mawar 3"},
	}
}

func TestRegisterUser_NormalisesAndStores(t *testing.T) {
	svc, docs, creds := newService(t)
	ctx := context.Background()

	o, err := svc.RegisterUser(ctx, userInput(" Siti@Mail.com"))
	require.NoError(t, err)
	assert.NotEmpty(t, o.ID)
	assert.Equal(t, "Siti  Aminah", o.Name)
	assert.Equal(t, "siti@mail.com", o.Email)
	assert.Equal(t, "Bandung", o.City)
	assert.Equal(t, domain.Meters{1: {ID: "WM-1", Address: "Jalan Mawar 3"}}, o.Meters)

	doc, err := docs.Get(ctx, domain.CollectionUsers, o.ID)
	require.NoError(t, err)
	assert.Equal(t, "user", doc.Fields["role"])
	assert.Equal(t, map[string]any{"id": "WM-1", "address": "Jalan Mawar 3"}, doc.Fields["waterMeter1"])

	acct, err := creds.Account(o.ID)
	require.NoError(t, err)
	assert.Empty(t, acct.PasswordHash)

	got, err := svc.GetOwner(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, o.Meters, got.Meters)
	assert.True(t, o.CreatedAt.Equal(got.CreatedAt))
}

func TestRegister_Validation(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	in := userInput("a@b.co")
	in.WaterMeter1.ID = ""
	_, err := svc.RegisterUser(ctx, in)
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "waterMeter1.id", ve.Field)

	_, err = svc.RegisterOfficer(ctx, domain.OfficerInput{OfficerID: "OF-1", Name: "x", Email: "bad", PhoneNumber: "1"})
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "email", ve.Field)
}

func TestRegister_DuplicateEmailAcrossRoles(t *testing.T) {
	svc, docs, _ := newService(t)
	ctx := context.Background()

	_, err := svc.RegisterUser(ctx, userInput("dup@mail.com"))
	require.NoError(t, err)
	_, err = svc.RegisterOfficer(ctx, domain.OfficerInput{OfficerID: "OF-1", Name: "x", Email: "DUP@mail.com", PhoneNumber: "1"})
	assert.ErrorIs(t, err, domain.ErrEmailExists)

	all, err := docs.Query(ctx, domain.CollectionUsers, domain.Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestEdit(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	off, err := svc.RegisterOfficer(ctx, domain.OfficerInput{OfficerID: "OF-1", Name: "budi", Email: "budi@mail.com", PhoneNumber: "1"})
	require.NoError(t, err)
	usr, err := svc.RegisterUser(ctx, userInput("u@mail.com"))
	require.NoError(t, err)

	require.NoError(t, svc.EditOfficer(ctx, off.ID, domain.OfficerEdit{Name: "budi hartono", OfficerID: "OF-9", PhoneNumber: "2"}))
	got, err := svc.GetOwner(ctx, off.ID)
	require.NoError(t, err)
	assert.Equal(t, "Budi Hartono", got.Name)
	assert.Equal(t, "OF-9", got.OfficerID)
	assert.Equal(t, "budi@mail.com", got.Email)

	err = svc.EditUser(ctx, off.ID, domain.UserEdit{Name: "a", PhoneNumber: "1", Street: "s", City: "c", Province: "p", Country: "c"})
	assert.True(t, domain.IsValidation(err), "officer edited as user")

	err = svc.EditUser(ctx, usr.ID, domain.UserEdit{Name: "a"})
	assert.True(t, domain.IsValidation(err))

	err = svc.EditOfficer(ctx, "missing", domain.OfficerEdit{Name: "a", OfficerID: "b", PhoneNumber: "c"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, svc.EditUser(ctx, usr.ID, domain.UserEdit{
		Name: "new name", PhoneNumber: "9", Street: "jalan baru", City: "depok", Province: "jawa barat", Country: "indonesia",
	}))
	got, err = svc.GetOwner(ctx, usr.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jalan Baru", got.Street)
	assert.Len(t, got.Meters, 1, "profile edit leaves meters alone")
}

func TestListAndDelete(t *testing.T) {
	svc, _, creds := newService(t)
	ctx := context.Background()

	var users []domain.OwnerID
	for _, email := range []string{"a@mail.com", "b@mail.com", "c@mail.com"} {
		o, err := svc.RegisterUser(ctx, userInput(email))
		require.NoError(t, err)
		users = append(users, o.ID)
	}
	off, err := svc.RegisterOfficer(ctx, domain.OfficerInput{OfficerID: "OF-1", Name: "x", Email: "o@mail.com", PhoneNumber: "1"})
	require.NoError(t, err)

	res, err := svc.ListOwners(ctx, domain.RoleUser, domain.ListQuery{SortBy: "email", Order: domain.SortDescend, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Total)
	require.Len(t, res.Owners, 2)
	assert.Equal(t, "c@mail.com", res.Owners[0].Email)

	n, err := svc.DeleteOwners(ctx, domain.RoleUser, []domain.OwnerID{users[0], off.ID, "ghost", users[0]})
	require.NoError(t, err)
	assert.Equal(t, 1, n, "officer and unknown ids skipped")

	_, err = creds.Account(users[0])
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = svc.GetOwner(ctx, off.ID)
	assert.NoError(t, err)

	_, err = svc.DeleteOwners(ctx, domain.RoleUser, nil)
	assert.True(t, domain.IsValidation(err))

	_, err = svc.ListOwners(ctx, domain.RoleAdmin, domain.ListQuery{})
	assert.True(t, domain.IsValidation(err))
}
