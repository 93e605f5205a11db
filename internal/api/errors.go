package api

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a failed API call.
type Kind string

const (
	// KindTransport covers DNS failures, refused connections and timeouts.
	KindTransport Kind = "transport"
	// KindStatus is a response with a non-2xx status code.
	KindStatus Kind = "status"
	// KindDecode is a response body that isn't the expected document.
	KindDecode Kind = "decode"
)

// Error describes a failed API call in a form fit to show an operator.
type Error struct {
	Op         string
	Kind       Kind
	StatusCode int
	Body       string
	Err        error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindStatus:
		if e.Body != "" {
			return fmt.Sprintf("%s: http %d: %s", e.Op, e.StatusCode, e.Body)
		}
		return fmt.Sprintf("%s: http %d", e.Op, e.StatusCode)
	case KindDecode:
		return fmt.Sprintf("%s: unexpected response body: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}

const maxErrorBody = 200

func snippet(body []byte) string {
	text := strings.Join(strings.Fields(string(body)), " ")
	if len(text) > maxErrorBody {
		text = text[:maxErrorBody-3] + "..."
	}
	return text
}
