package client

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"meteradmin/internal/domain"
	"meteradmin/internal/meter"
)

// Login exchanges e-mail and password for an admin session.
func (c *HTTP) Login(ctx context.Context, email, password string) (domain.AdminSession, error) {
	var out domain.AdminSession
	err := c.send(ctx, http.MethodPost, "/api/login", map[string]string{
		"email":    email,
		"password": password,
	}, &out)
	return out, err
}

// ChangePassword rotates the logged-in admin's password.
func (c *HTTP) ChangePassword(ctx context.Context, change domain.PasswordChange) error {
	return c.send(ctx, http.MethodPost, "/api/change-password", change, nil)
}

func (c *HTTP) RegisterOfficer(ctx context.Context, in domain.OfficerInput) (domain.Owner, error) {
	var out domain.Owner
	err := c.send(ctx, http.MethodPost, "/api/register-officer", in, &out)
	return out, err
}

func (c *HTTP) RegisterUser(ctx context.Context, in domain.UserInput) (domain.Owner, error) {
	var out domain.Owner
	err := c.send(ctx, http.MethodPost, "/api/register-user", in, &out)
	return out, err
}

func (c *HTTP) GetOwner(ctx context.Context, id domain.OwnerID) (domain.Owner, error) {
	var out domain.Owner
	err := c.send(ctx, http.MethodGet, "/api/owners/"+url.PathEscape(id.String()), nil, &out)
	return out, err
}

func (c *HTTP) EditOfficer(ctx context.Context, id domain.OwnerID, edit domain.OfficerEdit) error {
	return c.send(ctx, http.MethodPatch, "/api/edit-officer/"+url.PathEscape(id.String()), edit, nil)
}

func (c *HTTP) EditUser(ctx context.Context, id domain.OwnerID, edit domain.UserEdit) error {
	return c.send(ctx, http.MethodPatch, "/api/edit-user/"+url.PathEscape(id.String()), edit, nil)
}

// ListOwners fetches one page of officers or users.
func (c *HTTP) ListOwners(ctx context.Context, role domain.Role, q domain.ListQuery) (domain.ListResult, error) {
	var out domain.ListResult
	err := c.send(ctx, http.MethodGet, collectionPath(role)+encodeQuery(q), nil, &out)
	return out, err
}

// Export downloads the .xlsx export of officers or users matching q to w.
func (c *HTTP) Export(ctx context.Context, role domain.Role, q domain.ListQuery, w io.Writer) (int64, error) {
	return c.download(ctx, collectionPath(role)+"/export"+encodeQuery(q), w)
}

// DeleteOwners removes the listed officers or users.
func (c *HTTP) DeleteOwners(ctx context.Context, role domain.Role, ids []domain.OwnerID) (int, error) {
	body := map[string][]domain.OwnerID{"userIds": ids}
	path := "/api/delete-users"
	if role == domain.RoleOfficer {
		body = map[string][]domain.OwnerID{"officerIds": ids}
		path = "/api/delete-officers"
	}
	var out struct {
		Deleted int `json:"deleted"`
	}
	err := c.send(ctx, http.MethodDelete, path, body, &out)
	return out.Deleted, err
}

// ReplaceMeters sends a finalized meter collection in one request.
func (c *HTTP) ReplaceMeters(ctx context.Context, owner domain.OwnerID, payload domain.Meters) error {
	body := map[string]any{"meters": meter.EncodePayload(payload)}
	return c.send(ctx, http.MethodPatch, "/api/edit-water-meters/"+url.PathEscape(owner.String()), body, nil)
}

func collectionPath(role domain.Role) string {
	if role == domain.RoleOfficer {
		return "/api/officers"
	}
	return "/api/users"
}

func encodeQuery(q domain.ListQuery) string {
	v := url.Values{}
	set := func(k, val string) {
		if val != "" {
			v.Set(k, val)
		}
	}
	set("q", q.Search)
	set("mode", string(q.Mode))
	set("sort", q.SortBy)
	set("order", string(q.Order))
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		v.Set("pageSize", strconv.Itoa(q.PageSize))
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

// Compile-time assertion that HTTP implements domain.MeterGateway.
var _ domain.MeterGateway = (*HTTP)(nil)
