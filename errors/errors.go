package errors

import (
	"errors"
	"strings"
)

var (
	NotAuthenticated = errors.New("not authenticated")
	TokenExpired     = errors.New("authentication token is expired")
)

// DomainError is the single error shape surfaced by the remote gateway.
// The backend rejects with a plain string, an array of strings or an
// object with a message field; all three are collapsed to Message here
// so callers never have to normalize again.
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// Normalize converts a raw rejection value into a DomainError.
func Normalize(v interface{}) *DomainError {
	switch m := v.(type) {
	case nil:
		return &DomainError{}
	case string:
		return &DomainError{Message: m}
	case []string:
		return &DomainError{Message: strings.Join(m, "")}
	case []interface{}:
		parts := make([]string, 0, len(m))
		for _, item := range m {
			if s, ok := item.(string); ok {
				parts = append(parts, s)
			}
		}
		return &DomainError{Message: strings.Join(parts, "")}
	case error:
		return &DomainError{Message: m.Error()}
	default:
		return &DomainError{}
	}
}

// Message extracts the message from err, falling back when the error
// carries no usable text.
func Message(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) && domainErr.Message != "" {
		return domainErr.Message
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}
