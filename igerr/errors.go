// Package igerr collects the client's error taxonomy into a single kind-tagged
// type instead of scattering sentinel errors across packages.
package igerr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind identifies the class of failure a caller needs to branch on.
type Kind int

const (
	// KindUnknown is the zero value; never returned deliberately.
	KindUnknown Kind = iota
	// KindUnauthorized covers 401 responses and 403s without a rate-limit marker.
	KindUnauthorized
	// KindNotFound covers 404 responses.
	KindNotFound
	// KindRateLimitExceeded covers 429s and 403s whose body mentions the
	// exceeded-api-key-allowance marker.
	KindRateLimitExceeded
	// KindUnexpected covers any other non-2xx status. Transport timeouts are
	// not reported here: the envelope and session wrap them as KindNetwork.
	KindUnexpected
	// KindDecode covers a 2xx body that fails to match the expected shape.
	KindDecode
	// KindNetwork covers DNS, socket and TLS failures raised by the transport.
	KindNetwork
	// KindInvalidInput covers caller-side precondition violations.
	KindInvalidInput
	// KindWebSocket covers stream transport failures (connect, subscribe, decode).
	KindWebSocket
	// KindDB covers persistence-helper failures.
	KindDB
	// KindIO covers filesystem/process-level failures outside the core.
	KindIO
	// KindJSON covers marshal/unmarshal failures outside the core decode path.
	KindJSON
)

func (k Kind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	case KindRateLimitExceeded:
		return "rate_limit_exceeded"
	case KindUnexpected:
		return "unexpected"
	case KindDecode:
		return "decode"
	case KindNetwork:
		return "network"
	case KindInvalidInput:
		return "invalid_input"
	case KindWebSocket:
		return "websocket"
	case KindDB:
		return "db"
	case KindIO:
		return "io"
	case KindJSON:
		return "json"
	default:
		return "unknown"
	}
}

// Error is the single error type every core operation returns. It always
// carries a Kind so callers can branch with errors.Is against the sentinel
// below, and optionally wraps an underlying cause for %w-chains.
type Error struct {
	Kind    Kind
	Status  int // HTTP status code, when Kind came from a response; 0 otherwise.
	Message string
	Cause   error
}

func (e *Error) Error() string {
	switch {
	case e.Cause != nil && e.Message != "":
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	case e.Cause != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Cause)
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	default:
		return e.Kind.String()
	}
}

func (e *Error) Unwrap() error { return e.Cause }

// Is makes errors.Is(err, igerr.Unauthorized) etc. work by comparing kinds
// rather than pointer identity, since each call site constructs its own
// *Error value.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinel values usable with errors.Is. Only Kind is compared.
var (
	Unauthorized      = &Error{Kind: KindUnauthorized}
	NotFound          = &Error{Kind: KindNotFound}
	RateLimitExceeded = &Error{Kind: KindRateLimitExceeded}
	Decode            = &Error{Kind: KindDecode}
	Network           = &Error{Kind: KindNetwork}
	InvalidInput      = &Error{Kind: KindInvalidInput}
	WebSocket         = &Error{Kind: KindWebSocket}
)

// New builds an *Error of the given kind carrying message/cause.
func New(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// Unexpected builds the Unexpected(status) variant.
func Unexpected(status int, cause error) *Error {
	return &Error{Kind: KindUnexpected, Status: status, Message: fmt.Sprintf("unexpected status %d", status), Cause: cause}
}

// FromStatus classifies an HTTP status code and optional response body into
// the taxonomy's kind, per the envelope's documented rules. body may be nil.
func FromStatus(status int, body []byte) *Error {
	switch status {
	case http.StatusOK, http.StatusCreated, http.StatusAccepted:
		return nil
	case http.StatusUnauthorized:
		return &Error{Kind: KindUnauthorized, Status: status}
	case http.StatusNotFound:
		return &Error{Kind: KindNotFound, Status: status}
	case http.StatusTooManyRequests:
		return &Error{Kind: KindRateLimitExceeded, Status: status}
	case http.StatusForbidden:
		if containsAllowanceMarker(body) {
			return &Error{Kind: KindRateLimitExceeded, Status: status, Message: "exceeded-api-key-allowance"}
		}
		return &Error{Kind: KindUnauthorized, Status: status}
	default:
		return &Error{Kind: KindUnexpected, Status: status, Message: fmt.Sprintf("unexpected status %d", status)}
	}
}

const allowanceMarker = "exceeded-api-key-allowance"

func containsAllowanceMarker(body []byte) bool {
	return len(body) > 0 && strings.Contains(string(body), allowanceMarker)
}

// As is a small convenience wrapper around errors.As for *Error.
func As(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}
