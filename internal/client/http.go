package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"meteradmin/internal/domain"
)

// HTTP talks to a meteradmin server at Base.
type HTTP struct {
	Base  string
	HTTP  *http.Client
	Token string
}

// NewHTTP returns a client for the server at base.
func NewHTTP(base string) *HTTP {
	return &HTTP{Base: strings.TrimRight(base, "/"), HTTP: http.DefaultClient}
}

// WithToken returns a copy of c that authenticates with token.
func (c *HTTP) WithToken(token string) *HTTP {
	cp := *c
	cp.Token = token
	return &cp
}

func (c *HTTP) newRequest(ctx context.Context, method, path string, in any) (*http.Request, error) {
	var body io.Reader
	if in != nil {
		buf := new(bytes.Buffer)
		if err := json.NewEncoder(buf).Encode(in); err != nil {
			return nil, err
		}
		body = buf
	}
	req, err := http.NewRequestWithContext(ctx, method, c.Base+path, body)
	if err != nil {
		return nil, err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	return req, nil
}

// send performs the request and decodes a JSON response into out.
func (c *HTTP) send(ctx context.Context, method, path string, in, out any) error {
	req, err := c.newRequest(ctx, method, path, in)
	if err != nil {
		return err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return statusError(method, path, resp)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// download performs a GET and copies the body to w.
func (c *HTTP) download(ctx context.Context, path string, w io.Writer) (int64, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return 0, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return 0, statusError(http.MethodGet, path, resp)
	}
	return io.Copy(w, resp.Body)
}

func statusError(method, path string, resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if json.Unmarshal(raw, &body) != nil || body.Error == "" {
		body.Error = resp.Status
	}
	op := method + " " + path
	switch resp.StatusCode {
	case http.StatusBadRequest:
		field, reason, ok := strings.Cut(body.Error, ": ")
		if !ok || strings.Contains(field, " ") {
			return &domain.ValidationError{Reason: body.Error}
		}
		return &domain.ValidationError{Field: field, Reason: reason}
	case http.StatusUnauthorized:
		if body.Error == domain.ErrInvalidCredentials.Error() {
			return domain.ErrInvalidCredentials
		}
		return domain.ErrUnauthenticated
	case http.StatusForbidden:
		return domain.ErrNotAdmin
	case http.StatusNotFound:
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	case http.StatusConflict:
		return domain.ErrEmailExists
	}
	if resp.StatusCode >= 500 {
		return &domain.PersistenceError{Op: op, Err: errors.New(body.Error)}
	}
	return fmt.Errorf("%s: %s", op, body.Error)
}
