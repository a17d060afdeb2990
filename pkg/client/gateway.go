package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const defaultRequestTimeout = 15 * time.Second

// Gateway dispatches API calls with the current bearer token attached and
// classifies every failure into the FailureKind taxonomy. It never retries
// and never refreshes tokens on its own; each call is one attempt.
type Gateway struct {
	baseURL    string
	store      TokenStore
	httpClient *http.Client
	log        zerolog.Logger
}

// NewGateway creates a Gateway for the API at baseURL, reading the bearer
// token from store. A nil httpClient gets a default with a request timeout.
func NewGateway(baseURL string, store TokenStore, httpClient *http.Client, log zerolog.Logger) *Gateway {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultRequestTimeout}
	}
	return &Gateway{
		baseURL:    strings.TrimRight(baseURL, "/"),
		store:      store,
		httpClient: httpClient,
		log:        log,
	}
}

// Call dispatches an authorized request and returns the raw response body
// on any 2xx status. A non-nil payload is sent as JSON. When no Identity
// is stored the call fails with FailureUnauthenticated before any network
// I/O; all other failures are classified from the outcome.
func (g *Gateway) Call(ctx context.Context, method, path string, payload any) ([]byte, error) {
	identity, ok, err := g.store.Load()
	if err != nil {
		return nil, &Failure{Kind: FailureServerError, Reason: err.Error()}
	}
	if !ok {
		return nil, &Failure{Kind: FailureUnauthenticated}
	}
	return g.dispatch(ctx, method, path, payload, identity.AccessToken)
}

// CallInto dispatches like Call and decodes a 2xx response body into out.
func (g *Gateway) CallInto(ctx context.Context, method, path string, payload, out any) error {
	body, err := g.Call(ctx, method, path, payload)
	if err != nil {
		return err
	}
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &Failure{Kind: FailureServerError, Reason: fmt.Sprintf("decode response: %v", err)}
	}
	return nil
}

// post sends an unauthenticated request to one of the auth endpoints.
func (g *Gateway) post(ctx context.Context, path string, payload any) ([]byte, error) {
	return g.dispatch(ctx, http.MethodPost, path, payload, "")
}

func (g *Gateway) dispatch(ctx context.Context, method, path string, payload any, token string) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, &Failure{Kind: FailureBadRequest, Reason: fmt.Sprintf("encode request: %v", err)}
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, body)
	if err != nil {
		return nil, &Failure{Kind: FailureBadRequest, Reason: err.Error()}
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		g.log.Debug().Err(err).Str("method", method).Str("path", path).Msg("request did not complete")
		return nil, &Failure{Kind: FailureUnreachable, Reason: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Failure{Kind: FailureUnreachable, Reason: err.Error()}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return respBody, nil
	}
	return nil, classifyStatus(resp.StatusCode, respBody)
}
