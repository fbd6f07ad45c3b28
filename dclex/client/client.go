// Package client is the typed DCLEX REST backend client. It owns the
// bearer-token session state, translates backend failures into the typed
// error taxonomy at this boundary, and aggregates paginated listings.
package client

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/dclex/dclex-go/pkg/logger"
)

// Client talks to the DCLEX REST backend. All methods are safe for
// concurrent use; the only mutable state is the session.
type Client struct {
	http    *resty.Client
	session *Session
	log     *logrus.Entry
}

// NewClient creates a backend client for the given base URL with a fresh
// (logged out) session.
func NewClient(baseURL string) *Client {
	httpClient := resty.New().
		SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetTimeout(60 * time.Second).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "dclex-go-sdk")

	return &Client{
		http:    httpClient,
		session: NewSession(),
		log:     logger.WithComponent("client"),
	}
}

// Session returns the session-state value the client authenticates with.
func (c *Client) Session() *Session {
	return c.session
}

// SetSession swaps the session-state value. The previous session is left
// untouched.
func (c *Client) SetSession(s *Session) {
	if s == nil {
		s = NewSession()
	}
	c.session = s
}

// BaseURL returns the backend base URL.
func (c *Client) BaseURL() string {
	return c.http.BaseURL
}

// call describes one backend request.
type call struct {
	method   string
	endpoint string
	query    map[string]string
	body     any               // JSON body for POST
	form     map[string]string // form body for POST, mutually exclusive with body
	authed   bool
	out      any // decoded from a 2xx JSON response when non-nil
}

// do executes a call and maps the response through the error taxonomy.
// A 204 is a successful empty result.
func (c *Client) do(ctx context.Context, cl call) error {
	if cl.authed {
		token := c.session.Token()
		if token == "" {
			return ErrNotLoggedIn
		}
	}

	req := c.http.R().SetContext(ctx)
	if cl.authed {
		req.SetHeader("Authorization", "Token "+c.session.Token())
	}
	if cl.query != nil {
		req.SetQueryParams(cl.query)
	}
	if cl.form != nil {
		req.SetFormData(cl.form)
	} else if cl.body != nil {
		req.SetHeader("Content-Type", "application/json")
		req.SetBody(cl.body)
	}

	resp, err := req.Execute(cl.method, cl.endpoint)
	if err != nil {
		return &TransportError{Err: errors.Wrapf(err, "%s %s", cl.method, cl.endpoint)}
	}
	if err := c.mapError(resp); err != nil {
		return err
	}
	if cl.out == nil || resp.StatusCode() == http.StatusNoContent {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), cl.out); err != nil {
		return &TransportError{
			Status: resp.StatusCode(),
			Body:   string(resp.Body()),
			Err:    errors.Wrap(err, "failed to decode response"),
		}
	}
	return nil
}

// mapError applies the fixed error-mapping policy: 401 clears the session
// and becomes ErrNotLoggedIn, 403 becomes ErrNotAuthorized, a 400 carrying
// an errorCode becomes a typed APIError, and any other non-2xx is a
// transport failure.
func (c *Client) mapError(resp *resty.Response) error {
	status := resp.StatusCode()
	if status >= 200 && status < 300 {
		return nil
	}

	switch status {
	case http.StatusUnauthorized:
		c.session.Clear()
		return ErrNotLoggedIn
	case http.StatusForbidden:
		return ErrNotAuthorized
	case http.StatusBadRequest:
		var body struct {
			ErrorCode string `json:"errorCode"`
		}
		if err := json.Unmarshal(resp.Body(), &body); err == nil && body.ErrorCode != "" {
			c.log.WithField("errorCode", body.ErrorCode).Debug("backend domain error")
			return &APIError{Code: body.ErrorCode}
		}
	}
	return &TransportError{Status: status, Body: string(resp.Body())}
}
