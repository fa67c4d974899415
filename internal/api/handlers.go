package api

import (
	"bytes"
	"net/http"
	"strconv"

	"meteradmin/internal/domain"
	"meteradmin/internal/export"
	"meteradmin/internal/meter"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// MeterReplaceRequest is the body of PATCH /api/edit-water-meters/{id}.
// WaterMeters is accepted in place of Meters.
type MeterReplaceRequest struct {
	Meters      map[string]domain.MeterRecord `json:"meters,omitempty"`
	WaterMeters map[string]domain.MeterRecord `json:"waterMeters,omitempty"`
}

// DeleteRequest is the body of the bulk delete routes.
type DeleteRequest struct {
	OfficerIDs []domain.OwnerID `json:"officerIds,omitempty"`
	UserIDs    []domain.OwnerID `json:"userIds,omitempty"`
}

// DeleteResponse reports how many owners were removed.
type DeleteResponse struct {
	Deleted int `json:"deleted"`
}

type messageBody struct {
	Message string `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	sess, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFrom(r.Context())
	var req domain.PasswordChange
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.auth.ChangePassword(r.Context(), claims.UID, req); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageBody{Message: "password changed"})
}

func (s *Server) handleRegisterOfficer(w http.ResponseWriter, r *http.Request) {
	var in domain.OfficerInput
	if err := decode(w, r, &in); err != nil {
		s.fail(w, r, err)
		return
	}
	o, err := s.owners.RegisterOfficer(r.Context(), in)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, o)
}

func (s *Server) handleRegisterUser(w http.ResponseWriter, r *http.Request) {
	var in domain.UserInput
	if err := decode(w, r, &in); err != nil {
		s.fail(w, r, err)
		return
	}
	o, err := s.owners.RegisterUser(r.Context(), in)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, o)
}

// parseListQuery reads q, mode, sort, order, page and pageSize.
func parseListQuery(r *http.Request) (domain.ListQuery, error) {
	v := r.URL.Query()
	q := domain.ListQuery{
		Search: v.Get("q"),
		Mode:   domain.SearchMode(v.Get("mode")),
		SortBy: v.Get("sort"),
		Order:  domain.SortOrder(v.Get("order")),
	}
	for name, dst := range map[string]*int{"page": &q.Page, "pageSize": &q.PageSize} {
		raw := v.Get(name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return q, domain.Invalid(name, "must be a positive integer")
		}
		*dst = n
	}
	return q, nil
}

func (s *Server) handleList(role domain.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := parseListQuery(r)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		res, err := s.owners.ListOwners(r.Context(), role, q)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

func (s *Server) handleExport(role domain.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := parseListQuery(r)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		owners, err := s.owners.SearchOwners(r.Context(), role, q)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		table, filename := export.OfficerTable(owners), export.OfficersFilename
		if role == domain.RoleUser {
			table, filename = export.UserTable(owners), export.UsersFilename
		}
		var buf bytes.Buffer
		if err := export.Write(&buf, table); err != nil {
			s.fail(w, r, err)
			return
		}
		w.Header().Set("Content-Type", export.ContentType)
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
		w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
		w.WriteHeader(http.StatusOK)
		_, _ = buf.WriteTo(w)
	}
}

func (s *Server) handleGetOwner(w http.ResponseWriter, r *http.Request) {
	o, err := s.owners.GetOwner(r.Context(), domain.OwnerID(r.PathValue("id")))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (s *Server) handleEditOfficer(w http.ResponseWriter, r *http.Request) {
	id := domain.OwnerID(r.PathValue("id"))
	var edit domain.OfficerEdit
	if err := decode(w, r, &edit); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.owners.EditOfficer(r.Context(), id, edit); err != nil {
		s.fail(w, r, err)
		return
	}
	s.respondOwner(w, r, id)
}

func (s *Server) handleEditUser(w http.ResponseWriter, r *http.Request) {
	id := domain.OwnerID(r.PathValue("id"))
	var edit domain.UserEdit
	if err := decode(w, r, &edit); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.owners.EditUser(r.Context(), id, edit); err != nil {
		s.fail(w, r, err)
		return
	}
	s.respondOwner(w, r, id)
}

func (s *Server) handleEditMeters(w http.ResponseWriter, r *http.Request) {
	id := domain.OwnerID(r.PathValue("id"))
	var req MeterReplaceRequest
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	wire := req.Meters
	if wire == nil {
		wire = req.WaterMeters
	}
	if wire == nil {
		s.fail(w, r, domain.Invalid("meters", "is required"))
		return
	}
	payload, err := meter.DecodePayload(wire)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.meters.ReplaceMeters(r.Context(), id, payload); err != nil {
		s.fail(w, r, err)
		return
	}
	s.respondOwner(w, r, id)
}

func (s *Server) respondOwner(w http.ResponseWriter, r *http.Request, id domain.OwnerID) {
	o, err := s.owners.GetOwner(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (s *Server) handleDelete(role domain.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req DeleteRequest
		if err := decode(w, r, &req); err != nil {
			s.fail(w, r, err)
			return
		}
		ids := req.UserIDs
		if role == domain.RoleOfficer {
			ids = req.OfficerIDs
		}
		n, err := s.owners.DeleteOwners(r.Context(), role, ids)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, DeleteResponse{Deleted: n})
	}
}
