// Package client is the programmatic counterpart of the HTTP API: a thin
// request client plus an action layer that keeps a state store in sync
// with the server's responses.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"time"
)

// API performs requests against the server and carries the bearer token
// once a login or registration succeeded.
type API struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

// NewAPI builds a request client for the given server base URL,
// e.g. "http://localhost:5000".
func NewAPI(baseURL string) *API {
	return &API{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SetToken stores the bearer token sent on subsequent requests. An empty
// string clears it.
func (a *API) SetToken(token string) {
	a.mu.Lock()
	a.token = token
	a.mu.Unlock()
}

// Token returns the current bearer token
func (a *API) Token() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.token
}

type response struct {
	Status int
	Body   []byte
}

func (r response) decode(out any) error {
	return json.Unmarshal(r.Body, out)
}

func (a *API) get(ctx context.Context, path string) (response, error) {
	return a.do(ctx, http.MethodGet, path, nil)
}

func (a *API) post(ctx context.Context, path string, payload any) (response, error) {
	return a.do(ctx, http.MethodPost, path, payload)
}

func (a *API) put(ctx context.Context, path string, payload any) (response, error) {
	return a.do(ctx, http.MethodPut, path, payload)
}

func (a *API) delete(ctx context.Context, path string) (response, error) {
	return a.do(ctx, http.MethodDelete, path, nil)
}

func (a *API) do(ctx context.Context, method, path string, payload any) (response, error) {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return response{}, err
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, body)
	if err != nil {
		return response{}, err
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if token := a.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return response{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return response{}, err
	}

	return response{Status: resp.StatusCode, Body: data}, nil
}
