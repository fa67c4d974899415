package api

import (
	"net/http"
	"time"

	"github.com/rs/cors"
	"go.uber.org/zap"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"meteradmin/internal/domain"
)

// Server holds the services behind the HTTP routes.
type Server struct {
	auth    domain.AuthService
	owners  domain.OwnerService
	meters  domain.MeterGateway
	origins []string
	log     *zap.Logger
}

// New returns a Server. An empty origins list allows any origin.
func New(auth domain.AuthService, owners domain.OwnerService, meters domain.MeterGateway, origins []string, log *zap.Logger) *Server {
	return &Server{auth: auth, owners: owners, meters: meters, origins: origins, log: log}
}

// Handler returns the routed handler wrapped in CORS and the access log.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("POST /api/login", s.handleLogin)
	mux.HandleFunc("POST /api/change-password", s.requireAdmin(s.handleChangePassword))

	mux.HandleFunc("POST /api/register-officer", s.requireAdmin(s.handleRegisterOfficer))
	mux.HandleFunc("POST /api/register-user", s.requireAdmin(s.handleRegisterUser))

	mux.HandleFunc("GET /api/officers", s.requireAdmin(s.handleList(domain.RoleOfficer)))
	mux.HandleFunc("GET /api/users", s.requireAdmin(s.handleList(domain.RoleUser)))
	mux.HandleFunc("GET /api/officers/export", s.requireAdmin(s.handleExport(domain.RoleOfficer)))
	mux.HandleFunc("GET /api/users/export", s.requireAdmin(s.handleExport(domain.RoleUser)))
	mux.HandleFunc("GET /api/owners/{id}", s.requireAdmin(s.handleGetOwner))

	mux.HandleFunc("PATCH /api/edit-officer/{id}", s.requireAdmin(s.handleEditOfficer))
	mux.HandleFunc("PATCH /api/edit-user/{id}", s.requireAdmin(s.handleEditUser))
	mux.HandleFunc("PATCH /api/edit-water-meters/{id}", s.requireAdmin(s.handleEditMeters))

	mux.HandleFunc("DELETE /api/delete-officers", s.requireAdmin(s.handleDelete(domain.RoleOfficer)))
	mux.HandleFunc("DELETE /api/delete-users", s.requireAdmin(s.handleDelete(domain.RoleUser)))

	return s.accessLog(s.newCORS().Handler(mux))
}

func (s *Server) newCORS() *cors.Cors {
	opts := cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodPatch,
			http.MethodDelete,
		},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         int((10 * time.Minute).Seconds()),
	}
	if len(s.origins) == 0 {
		opts.AllowOriginFunc = func(string) bool { return true }
	} else {
		opts.AllowedOrigins = s.origins
	}
	return cors.New(opts)
}

// NewHTTPServer wraps h in an http.Server that also accepts cleartext
// HTTP/2.
func NewHTTPServer(addr string, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		ReadHeaderTimeout: 10 * time.Second,
		Handler: h2c.NewHandler(h, &http2.Server{
			MaxConcurrentStreams: 250,
		}),
	}
}
