// Package client is the HTTP client for the meteradmin API.
//
// It covers every route the server exposes and implements
// domain.MeterGateway, so a meter.Editor can submit straight to a remote
// server. Requests carry a bearer token once one is set. Non-2xx responses
// are turned back into the matching domain errors: 400 into
// *domain.ValidationError, 401 into domain.ErrUnauthenticated, 403 into
// domain.ErrNotAdmin, 404 into domain.ErrNotFound, 409 into
// domain.ErrEmailExists and 5xx into *domain.PersistenceError.
package client
