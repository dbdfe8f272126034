// Package transport is the single choke-point every REST call to the
// platform passes through: it builds the URL, injects the common and
// (where applicable) session headers, serializes the request body,
// classifies the response via igerr, and decodes the 2xx body into the
// caller's expected type.
//
// Grounded on original_source/src/transport/http_client.rs's IgHttpClientImpl
// (build_url/add_common_headers/add_auth_headers/process_response), adapted
// from Rust's generic trait methods into Go's generic free functions since
// Go methods cannot carry their own type parameters.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gurre/ig-client-go/config"
	"github.com/gurre/ig-client-go/igerr"
	"github.com/gurre/ig-client-go/ratelimit"
	"github.com/gurre/ig-client-go/session"
)

// Envelope is the shared HTTP client every typed request goes through.
type Envelope struct {
	cfg  *config.Config
	http *http.Client
}

// New builds an Envelope bound to cfg's REST base URL and timeout.
func New(cfg *config.Config) *Envelope {
	return &Envelope{
		cfg:  cfg,
		http: &http.Client{Timeout: time.Duration(cfg.RestAPI.Timeout) * time.Second},
	}
}

func (e *Envelope) url(path string) string {
	return fmt.Sprintf("%s/%s", strings.TrimRight(e.cfg.RestAPI.BaseURL, "/"), strings.TrimLeft(path, "/"))
}

func (e *Envelope) addCommonHeaders(req *http.Request, version string) {
	req.Header.Set("X-IG-API-KEY", strings.TrimSpace(e.cfg.Credentials.APIKey))
	req.Header.Set("Content-Type", "application/json; charset=UTF-8")
	req.Header.Set("Accept", "application/json; charset=UTF-8")
	req.Header.Set("Version", version)
}

func (e *Envelope) addAuthHeaders(req *http.Request, s session.Session) {
	req.Header.Set("CST", s.CST)
	req.Header.Set("X-SECURITY-TOKEN", s.Token)
}

func buildBody(body any) (io.Reader, error) {
	if body == nil {
		return nil, nil
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, igerr.New(igerr.KindJSON, "encode request body", err)
	}
	return bytes.NewReader(raw), nil
}

func decode[R any](raw []byte) (R, error) {
	var zero R
	if len(raw) == 0 {
		return zero, nil
	}
	var out R
	if err := json.Unmarshal(raw, &out); err != nil {
		return zero, &igerr.Error{Kind: igerr.KindDecode, Message: "failed to decode response body", Cause: err}
	}
	return out, nil
}

// Request performs an authenticated call: it waits on the session's bound
// rate limiter, injects CST/X-SECURITY-TOKEN plus the common headers, and
// decodes the 2xx response body as R. Body may be nil for GET/DELETE calls.
func Request[R any](ctx context.Context, e *Envelope, method, path string, s session.Session, body any, version string) (R, error) {
	var zero R
	if err := s.Limiter().Acquire(ctx); err != nil {
		return zero, err
	}

	r, err := buildBody(body)
	if err != nil {
		return zero, err
	}

	req, err := http.NewRequestWithContext(ctx, method, e.url(path), r)
	if err != nil {
		return zero, igerr.New(igerr.KindNetwork, "build request", err)
	}
	e.addCommonHeaders(req, version)
	e.addAuthHeaders(req, s)

	logrus.WithField("method", method).WithField("url", req.URL.String()).Debug("transport: sending request")
	resp, err := e.http.Do(req)
	if err != nil {
		return zero, igerr.New(igerr.KindNetwork, "request failed", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if classified := igerr.FromStatus(resp.StatusCode, raw); classified != nil {
		logrus.WithField("status", resp.StatusCode).WithField("url", req.URL.String()).Warn("transport: request rejected")
		return zero, classified
	}

	return decode[R](raw)
}

// RequestNoAuth performs an unauthenticated call, waiting on the global
// non-trading-app limiter instead of a session's. It is exported for any
// future pre-session endpoint, but session.Login does not go through it:
// login needs the CST/X-SECURITY-TOKEN response headers to mint a Session,
// and RequestNoAuth's decode path only surfaces the response body, so Login
// rolls its own *http.Client instead.
func RequestNoAuth[R any](ctx context.Context, e *Envelope, method, path string, body any, version string) (R, error) {
	var zero R
	if err := ratelimit.Get(ratelimit.NonTradingApp).Acquire(ctx); err != nil {
		return zero, err
	}

	r, err := buildBody(body)
	if err != nil {
		return zero, err
	}

	req, err := http.NewRequestWithContext(ctx, method, e.url(path), r)
	if err != nil {
		return zero, igerr.New(igerr.KindNetwork, "build request", err)
	}
	e.addCommonHeaders(req, version)

	resp, err := e.http.Do(req)
	if err != nil {
		return zero, igerr.New(igerr.KindNetwork, "request failed", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if classified := igerr.FromStatus(resp.StatusCode, raw); classified != nil {
		return zero, classified
	}

	return decode[R](raw)
}
