package app

import (
	"time"

	"go.uber.org/zap"

	"meteradmin/internal/client"
	"meteradmin/internal/domain"
	"meteradmin/internal/store"
)

// App is what CLI commands run against: an API client and the saved
// admin session.
type App struct {
	Client  *client.HTTP
	Session domain.SessionStore
	Log     *zap.Logger
	now     func() time.Time
}

// New builds the CLI app from cfg.
func New(cfg ClientConfig, log *zap.Logger) *App {
	c := client.NewHTTP(cfg.ServerURL)
	if cfg.HTTP != nil {
		c.HTTP = cfg.HTTP
	}
	return &App{
		Client:  c,
		Session: store.NewSessionFileStore(cfg.Home),
		Log:     log,
		now:     time.Now,
	}
}

// Authed returns a client carrying the saved session's token. A missing or
// expired session yields domain.ErrUnauthenticated; an expired one is also
// removed.
func (a *App) Authed() (*client.HTTP, domain.AdminSession, error) {
	sess, ok, err := a.Session.LoadSession()
	if err != nil {
		return nil, domain.AdminSession{}, err
	}
	if !ok {
		return nil, domain.AdminSession{}, domain.ErrUnauthenticated
	}
	if sess.Expired(a.now()) {
		if err := a.Session.ClearSession(); err != nil {
			a.Log.Warn("clear expired session", zap.Error(err))
		}
		return nil, domain.AdminSession{}, domain.ErrUnauthenticated
	}
	return a.Client.WithToken(sess.Token), sess, nil
}
