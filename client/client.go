// Package client consumes the contacts API.
//
// A [Client] issues the HTTP calls and a [View] holds what was last listed.
// Creating a contact never touches a View: callers reload it, the server
// being the only source of truth.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/RDP08/agenda.capas/contact"
)

type Contact struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
}

type CreateInput = contact.Input

// ValidationError is returned when the input is rejected, either before
// sending it or by the server.
type ValidationError struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return e.Message
	}
	return e.Message + ": " + strings.Join(e.Errors, "; ")
}

// TransportError is returned when the server could not be reached or
// answered with an unexpected status.
type TransportError struct {
	Method     string
	URL        string
	StatusCode int // zero when no response was received
	Message    string
	Err        error
}

func (e *TransportError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Message != "":
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.StatusCode, e.Message)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode))
	default:
		return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
	}
}

func (e *TransportError) Unwrap() error { return e.Err }

const maxErrorBody = 1 << 16

type Client struct {
	// BaseURL is where the API is mounted, e.g. http://localhost:8888/api.
	BaseURL    string
	HTTPClient *http.Client
}

func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{BaseURL: strings.TrimSuffix(baseURL, "/"), HTTPClient: httpClient}
}

// List returns every contact, in creation order.
func (c *Client) List(ctx context.Context) ([]Contact, error) {
	var contacts []Contact
	err := c.do(ctx, http.MethodGet, "/contacts", nil, http.StatusOK, &contacts)
	if err != nil {
		return nil, err
	}
	if contacts == nil {
		contacts = []Contact{}
	}
	return contacts, nil
}

// Create validates in with the same rules as the server and sends it.
// The created contact is not returned; call [Client.List] to observe it.
func (c *Client) Create(ctx context.Context, in CreateInput) error {
	in = contact.Normalize(in)

	var verr *contact.ValidationError
	err := contact.Validate(in)
	switch {
	case errors.As(err, &verr):
		return &ValidationError{Message: "validation failed", Errors: verr.Violations}
	case err != nil:
		return err
	}

	return c.do(ctx, http.MethodPost, "/contacts", in, http.StatusCreated, nil)
}

func (c *Client) do(ctx context.Context, method, path string, in any, want int, out any) error {
	url := c.BaseURL + path

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("client: encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("client: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return &TransportError{Method: method, URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		return responseError(req, resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &TransportError{Method: method, URL: url, StatusCode: resp.StatusCode, Err: err}
	}
	return nil
}

func responseError(req *http.Request, resp *http.Response) error {
	var model ValidationError
	_ = json.NewDecoder(io.LimitReader(resp.Body, maxErrorBody)).Decode(&model)

	if resp.StatusCode == http.StatusBadRequest {
		if model.Message == "" {
			model.Message = "validation failed"
		}
		return &model
	}

	return &TransportError{
		Method:     req.Method,
		URL:        req.URL.String(),
		StatusCode: resp.StatusCode,
		Message:    model.Message,
	}
}
