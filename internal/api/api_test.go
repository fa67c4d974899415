package api_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"meteradmin/internal/api"
	"meteradmin/internal/domain"
	"meteradmin/internal/services/auth"
	"meteradmin/internal/services/meters"
	"meteradmin/internal/services/owners"
	"meteradmin/internal/store"
)

const (
	adminEmail    = "admin@example.com"
	adminPassword = "s3cretpass"
)

type harness struct {
	srv   *httptest.Server
	token string
	docs  domain.DocumentStore
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()
	docs := store.NewDocumentFileStore(dir)
	creds := store.NewCredentialFileStore(dir)
	log := zap.NewNop()

	authSvc := auth.New(docs, creds, []byte("0123456789abcdef0123456789abcdef"), 0, log)
	_, err := authSvc.BootstrapAdmin(context.Background(), "Root", adminEmail, adminPassword)
	require.NoError(t, err)

	s := api.New(authSvc, owners.New(docs, creds, log), meters.New(docs, log), nil, log)
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)

	h := &harness{srv: srv, docs: docs}
	var sess domain.AdminSession
	status := h.do(t, http.MethodPost, "/api/login", map[string]string{"email": adminEmail, "password": adminPassword}, &sess)
	require.Equal(t, http.StatusOK, status)
	h.token = sess.Token
	return h
}

func (h *harness) request(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, h.srv.URL+path, rd)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}
	resp, err := h.srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func (h *harness) do(t *testing.T, method, path string, body, out any) int {
	t.Helper()
	resp := h.request(t, method, path, body)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func (h *harness) registerUser(t *testing.T, email string) domain.Owner {
	t.Helper()
	var o domain.Owner
	status := h.do(t, http.MethodPost, "/api/register-user", map[string]any{
		"name": "siti", "email": email, "phoneNumber": "0812",
		"street": "jalan mawar", "city": "bandung", "province": "jawa barat", "country": "indonesia",
		"waterMeter1": map[string]string{"id": "WM-1", "address": "jalan mawar 1"},
	}, &o)
	require.Equal(t, http.StatusCreated, status)
	return o
}

func TestHealthAndAuth(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, http.StatusOK, h.do(t, http.MethodGet, "/healthz", nil, nil))

	var e struct{ Error string }
	token := h.token
	h.token = ""
	assert.Equal(t, http.StatusUnauthorized, h.do(t, http.MethodGet, "/api/users", nil, &e))
	assert.Equal(t, domain.ErrUnauthenticated.Error(), e.Error)

	assert.Equal(t, http.StatusUnauthorized, h.do(t, http.MethodPost, "/api/login",
		map[string]string{"email": adminEmail, "password": "wrongpass"}, &e))

	h.token = "not-a-jwt"
	assert.Equal(t, http.StatusUnauthorized, h.do(t, http.MethodGet, "/api/users", nil, nil))
	h.token = token
	assert.Equal(t, http.StatusOK, h.do(t, http.MethodGet, "/api/users", nil, nil))
}

func TestRegisterListAndConflict(t *testing.T) {
	h := newHarness(t)
	u := h.registerUser(t, "siti@mail.com")
	assert.Equal(t, "Siti", u.Name)

	var e struct{ Error string }
	status := h.do(t, http.MethodPost, "/api/register-officer", map[string]string{
		"name": "x", "email": "SITI@mail.com", "id": "OF-1", "phoneNumber": "1",
	}, &e)
	assert.Equal(t, http.StatusConflict, status)

	status = h.do(t, http.MethodPost, "/api/register-officer", map[string]string{"name": "x"}, &e)
	assert.Equal(t, http.StatusBadRequest, status)

	var res domain.ListResult
	require.Equal(t, http.StatusOK, h.do(t, http.MethodGet, "/api/users?q=WM-1&pageSize=5", nil, &res))
	assert.Equal(t, 1, res.Total)
	require.Len(t, res.Owners, 1)
	assert.Equal(t, u.ID, res.Owners[0].ID)

	assert.Equal(t, http.StatusBadRequest, h.do(t, http.MethodGet, "/api/users?page=zero", nil, nil))
	assert.Equal(t, http.StatusBadRequest, h.do(t, http.MethodGet, "/api/users?sort=password", nil, nil))
}

func TestEditWaterMeters(t *testing.T) {
	h := newHarness(t)
	u := h.registerUser(t, "siti@mail.com")

	var got domain.Owner
	status := h.do(t, http.MethodPatch, "/api/edit-water-meters/"+u.ID.String(), map[string]any{
		"meters": map[string]any{
			"waterMeter1": map[string]string{"id": "WM-1", "address": "jalan mawar 1"},
			"waterMeter2": map[string]string{"id": "WM-2", "address": "gang kecil"},
		},
	}, &got)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, domain.Meters{
		1: {ID: "WM-1", Address: "jalan mawar 1"},
		2: {ID: "WM-2", Address: "gang kecil"},
	}, got.Meters, "addresses are stored as sent")

	status = h.do(t, http.MethodPatch, "/api/edit-water-meters/"+u.ID.String(), map[string]any{
		"waterMeters": map[string]any{"waterMeter1": map[string]string{"id": "WM-2", "address": "Gang Kecil"}},
	}, &got)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, domain.Meters{1: {ID: "WM-2", Address: "Gang Kecil"}}, got.Meters)

	doc, err := h.docs.Get(context.Background(), domain.CollectionUsers, u.ID)
	require.NoError(t, err)
	assert.NotContains(t, doc.Fields, "waterMeter2")

	assert.Equal(t, http.StatusNotFound, h.do(t, http.MethodPatch, "/api/edit-water-meters/ghost",
		map[string]any{"meters": map[string]any{}}, nil))
	assert.Equal(t, http.StatusBadRequest, h.do(t, http.MethodPatch, "/api/edit-water-meters/"+u.ID.String(),
		map[string]any{"meters": map[string]any{"waterMeter2": map[string]string{"id": "x"}}}, nil))
	assert.Equal(t, http.StatusBadRequest, h.do(t, http.MethodPatch, "/api/edit-water-meters/"+u.ID.String(),
		map[string]any{}, nil))
}

func TestExportAndDelete(t *testing.T) {
	h := newHarness(t)
	u1 := h.registerUser(t, "a@mail.com")
	h.registerUser(t, "b@mail.com")

	resp := h.request(t, http.MethodGet, "/api/users/export?sort=email&order=descend", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "user_data.xlsx")

	f, err := excelize.OpenReader(resp.Body)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("DataUser")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "b@mail.com", rows[1][2])

	var del api.DeleteResponse
	require.Equal(t, http.StatusOK, h.do(t, http.MethodDelete, "/api/delete-users",
		map[string]any{"userIds": []domain.OwnerID{u1.ID}}, &del))
	assert.Equal(t, 1, del.Deleted)
	assert.Equal(t, http.StatusNotFound, h.do(t, http.MethodGet, "/api/owners/"+u1.ID.String(), nil, nil))
}

func TestChangePassword(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, http.StatusBadRequest, h.do(t, http.MethodPost, "/api/change-password", map[string]string{
		"currentPassword": adminPassword, "newPassword": "newpass123", "confirmPassword": "different1",
	}, nil))
	assert.Equal(t, http.StatusOK, h.do(t, http.MethodPost, "/api/change-password", map[string]string{
		"currentPassword": adminPassword, "newPassword": "newpass123", "confirmPassword": "newpass123",
	}, nil))

	var sess domain.AdminSession
	assert.Equal(t, http.StatusOK, h.do(t, http.MethodPost, "/api/login",
		map[string]string{"email": adminEmail, "password": "newpass123"}, &sess))
}

func TestCORSPreflight(t *testing.T) {
	h := newHarness(t)
	req, err := http.NewRequest(http.MethodOptions, h.srv.URL+"/api/users", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://console.local")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	req.Header.Set("Access-Control-Request-Headers", "Authorization")
	resp, err := h.srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "http://console.local", resp.Header.Get("Access-Control-Allow-Origin"))
}
