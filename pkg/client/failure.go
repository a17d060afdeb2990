package client

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// FailureKind is the stable taxonomy of request outcomes. Screens map each
// kind to a user-facing message; nothing else inspects raw HTTP statuses.
type FailureKind int

const (
	// FailureUnauthenticated means no token is held locally, or the server
	// rejected the one presented. When no token is held the failure is
	// produced synchronously, before any network I/O.
	FailureUnauthenticated FailureKind = iota
	// FailureForbidden means the server rejected the call on role grounds.
	FailureForbidden
	// FailureNotFound means the addressed resource does not exist.
	FailureNotFound
	// FailureBadRequest carries a human-readable reason from the response.
	FailureBadRequest
	// FailureUnreachable means no response arrived at all.
	FailureUnreachable
	// FailureServerError covers every other non-2xx response.
	FailureServerError
)

func (k FailureKind) String() string {
	switch k {
	case FailureUnauthenticated:
		return "unauthenticated"
	case FailureForbidden:
		return "forbidden"
	case FailureNotFound:
		return "not found"
	case FailureBadRequest:
		return "bad request"
	case FailureUnreachable:
		return "unreachable"
	default:
		return "server error"
	}
}

// Failure is the classified outcome of an authorized call. It satisfies
// error so callers can return it through ordinary error plumbing and
// recover the classification with errors.As.
type Failure struct {
	Kind   FailureKind
	Status int    // HTTP status when a response arrived, else 0
	Reason string // human-readable detail when the response carried one
}

func (f *Failure) Error() string {
	if f.Reason != "" {
		return fmt.Sprintf("%s: %s", f.Kind, f.Reason)
	}
	return f.Kind.String()
}

// classifyStatus maps a received response to a Failure. Only call it for
// non-2xx statuses; the no-token and no-response cases are classified
// before and after dispatch respectively.
func classifyStatus(status int, body []byte) *Failure {
	switch status {
	case http.StatusUnauthorized:
		return &Failure{Kind: FailureUnauthenticated, Status: status, Reason: reasonFrom(body)}
	case http.StatusForbidden:
		return &Failure{Kind: FailureForbidden, Status: status}
	case http.StatusNotFound:
		return &Failure{Kind: FailureNotFound, Status: status}
	case http.StatusBadRequest:
		return &Failure{Kind: FailureBadRequest, Status: status, Reason: reasonFrom(body)}
	default:
		return &Failure{Kind: FailureServerError, Status: status, Reason: reasonFrom(body)}
	}
}

// reasonFrom extracts a display reason from a response body that may be a
// plain string or a JSON object using an "error" or "message" field.
func reasonFrom(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err == nil {
		for _, key := range []string{"error", "message"} {
			var s string
			if raw, ok := obj[key]; ok && json.Unmarshal(raw, &s) == nil && s != "" {
				return s
			}
		}
		return ""
	}
	var s string
	if err := json.Unmarshal(body, &s); err == nil {
		return s
	}
	return string(body)
}
