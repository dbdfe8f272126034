// Package session holds the IG Markets session value type and the
// Authenticator that produces it. A Session is an immutable CST/X-SECURITY-TOKEN
// pair plus the active account id; the only ways to obtain or change one are
// Login, Refresh and SwitchAccount below. There is no implicit refresh-on-401:
// callers that get igerr.Unauthorized from the transport must call Refresh (or
// Login again) themselves and retry.
//
// Grounded on original_source/src/session/{auth,interface,response}.rs, with
// the lifecycle-hook shape (construct-then-exchange, immutable result value)
// carried over from fixclient/fixapp.go's FixApp session callbacks.
package session

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
)

// Session is the immutable credential bundle produced by a successful
// login, refresh or account switch. Every authenticated request carries
// Session's CST and Token as headers; it is safe to share across goroutines.
type Session struct {
	CST       string
	Token     string
	AccountID string

	// Class is the rate-limiting class associated with requests made while
	// this session is active. Login sets it to TradingAccount; a Session
	// built without it gates on NonTradingAccount, Class's zero value.
	Class ratelimit.Class
}

// Limiter returns the process-wide limiter singleton for this session's
// class, lazily constructed on first use. A zero-value Session (Class never
// set) gates on NonTradingAccount, Class's zero value.
func (s Session) Limiter() *ratelimit.Limiter {
	return ratelimit.Get(s.Class)
}

// sessionResponse is the body returned by POST session and POST
// session/refresh-token, aliasing both accountId and currentAccountId since
// the two endpoints disagree on the key name (SPEC_FULL.md §9).
type sessionResponse struct {
	AccountID         string `json:"accountId"`
	CurrentAccountID  string `json:"currentAccountId"`
	ClientID          string `json:"clientId"`
	TimezoneOffset    *int   `json:"timezoneOffset"`
}

func (r sessionResponse) resolvedAccountID() string {
	if r.AccountID != "" {
		return r.AccountID
	}
	return r.CurrentAccountID
}

// accountSwitchRequest is the body of PUT session.
type accountSwitchRequest struct {
	AccountID      string `json:"accountId"`
	DefaultAccount *bool  `json:"defaultAccount,omitempty"`
}

// accountSwitchResponse reports the outcome of an account switch.
type accountSwitchResponse struct {
	DealingEnabled        *bool `json:"dealingEnabled"`
	HasActiveDemoAccounts *bool `json:"hasActiveDemoAccounts"`
	HasActiveLiveAccounts *bool `json:"hasActiveLiveAccounts"`
	TrailingStopsEnabled  *bool `json:"trailingStopsEnabled"`
}

// Authenticator performs the three REST exchanges that produce or refresh a
// Session: login, refresh-token and account-switch. It holds no session
// state of its own; every call is a fresh, independent exchange.
type Authenticator struct {
	cfg  *config.Config
	http *http.Client
}

// New builds an Authenticator bound to cfg's REST base URL and credentials.
func New(cfg *config.Config) *Authenticator {
	return &Authenticator{
		cfg:  cfg,
		http: &http.Client{Timeout: time.Duration(cfg.RestAPI.Timeout) * time.Second},
	}
}

func (a *Authenticator) url(path string) string {
	return fmt.Sprintf("%s/%s", strings.TrimRight(a.cfg.RestAPI.BaseURL, "/"), strings.TrimLeft(path, "/"))
}

// Login exchanges the configured username/password for a new Session,
// waiting on the non-trading-app rate limiter first since no session yet
// exists to carry one.
func (a *Authenticator) Login(ctx context.Context) (Session, error) {
	if err := ratelimit.Get(ratelimit.NonTradingApp).Acquire(ctx); err != nil {
		return Session{}, err
	}

	body, _ := json.Marshal(map[string]any{
		"identifier":        strings.TrimSpace(a.cfg.Credentials.Username),
		"password":          strings.TrimSpace(a.cfg.Credentials.Password),
		"encryptedPassword": false,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.url("session"), bytes.NewReader(body))
	if err != nil {
		return Session{}, igerr.New(igerr.KindNetwork, "build login request", err)
	}
	a.setCommonHeaders(req, "2")

	logrus.WithField("url", req.URL.String()).Info("session: logging in")
	resp, err := a.http.Do(req)
	if err != nil {
		return Session{}, igerr.New(igerr.KindNetwork, "login request failed", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if classified := igerr.FromStatus(resp.StatusCode, raw); classified != nil {
		logrus.WithField("status", resp.StatusCode).Warn("session: login rejected")
		return Session{}, classified
	}

	cst := resp.Header.Get("CST")
	token := resp.Header.Get("X-SECURITY-TOKEN")
	if cst == "" || token == "" {
		return Session{}, igerr.New(igerr.KindDecode, "login response missing CST/X-SECURITY-TOKEN headers", nil)
	}

	var parsed sessionResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return Session{}, igerr.New(igerr.KindJSON, "decode login response", err)
	}

	return Session{CST: cst, Token: token, AccountID: parsed.resolvedAccountID(), Class: ratelimit.TradingAccount}, nil
}

// Refresh exchanges an existing session for a new CST/X-SECURITY-TOKEN pair
// without re-sending the password.
func (a *Authenticator) Refresh(ctx context.Context, prev Session) (Session, error) {
	if err := prev.Limiter().Acquire(ctx); err != nil {
		return Session{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.url("session/refresh-token"), nil)
	if err != nil {
		return Session{}, igerr.New(igerr.KindNetwork, "build refresh request", err)
	}
	a.setCommonHeaders(req, "3")
	req.Header.Set("CST", prev.CST)
	req.Header.Set("X-SECURITY-TOKEN", prev.Token)

	logrus.Info("session: refreshing token")
	resp, err := a.http.Do(req)
	if err != nil {
		return Session{}, igerr.New(igerr.KindNetwork, "refresh request failed", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if classified := igerr.FromStatus(resp.StatusCode, raw); classified != nil {
		return Session{}, classified
	}

	cst := resp.Header.Get("CST")
	token := resp.Header.Get("X-SECURITY-TOKEN")
	if cst == "" || token == "" {
		return Session{}, igerr.New(igerr.KindUnexpected, "refresh response missing CST/X-SECURITY-TOKEN headers", nil)
	}

	var parsed sessionResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return Session{}, igerr.New(igerr.KindJSON, "decode refresh response", err)
	}

	accountID := parsed.resolvedAccountID()
	if accountID == "" {
		accountID = prev.AccountID
	}
	return Session{CST: cst, Token: token, AccountID: accountID, Class: prev.Class}, nil
}

// SwitchAccount moves the session's active account to accountID, returning a
// new Session carrying the requested account id. CST/X-SECURITY-TOKEN are
// taken from the response headers when present; otherwise the previous
// session's tokens are kept. The response body is not read for an account id.
func (a *Authenticator) SwitchAccount(ctx context.Context, prev Session, accountID string, makeDefault *bool) (Session, error) {
	if err := prev.Limiter().Acquire(ctx); err != nil {
		return Session{}, err
	}

	body, err := json.Marshal(accountSwitchRequest{AccountID: accountID, DefaultAccount: makeDefault})
	if err != nil {
		return Session{}, igerr.New(igerr.KindJSON, "encode account switch request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, a.url("session"), bytes.NewReader(body))
	if err != nil {
		return Session{}, igerr.New(igerr.KindNetwork, "build account switch request", err)
	}
	a.setCommonHeaders(req, "1")
	req.Header.Set("CST", prev.CST)
	req.Header.Set("X-SECURITY-TOKEN", prev.Token)

	logrus.WithField("accountId", accountID).Info("session: switching account")
	resp, err := a.http.Do(req)
	if err != nil {
		return Session{}, igerr.New(igerr.KindNetwork, "account switch request failed", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if classified := igerr.FromStatus(resp.StatusCode, raw); classified != nil {
		return Session{}, classified
	}

	var switched accountSwitchResponse
	if err := json.Unmarshal(raw, &switched); err != nil {
		return Session{}, igerr.New(igerr.KindJSON, "decode account switch response", err)
	}

	cst := resp.Header.Get("CST")
	if cst == "" {
		cst = prev.CST
	}
	token := resp.Header.Get("X-SECURITY-TOKEN")
	if token == "" {
		token = prev.Token
	}

	return Session{CST: cst, Token: token, AccountID: accountID, Class: prev.Class}, nil
}

func (a *Authenticator) setCommonHeaders(req *http.Request, version string) {
	req.Header.Set("X-IG-API-KEY", strings.TrimSpace(a.cfg.Credentials.APIKey))
	req.Header.Set("Content-Type", "application/json; charset=UTF-8")
	req.Header.Set("Accept", "application/json; charset=UTF-8")
	req.Header.Set("Version", version)
}
