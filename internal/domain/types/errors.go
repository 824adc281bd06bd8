package types

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies a failed API call.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindBadRequest
	KindUnauthorized
	KindNotFound
	KindServerError
)

// Sentinels matched by errors.Is against an *APIError of the same kind.
var (
	ErrUnknown      = errors.New("unknown api error")
	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrServerError  = errors.New("server error")
)

// String returns a short label used in logs and metric labels.
func (k ErrorKind) String() string {
	switch k {
	case KindBadRequest:
		return "bad_request"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	case KindServerError:
		return "server_error"
	default:
		return "unknown"
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindBadRequest:
		return ErrBadRequest
	case KindUnauthorized:
		return ErrUnauthorized
	case KindNotFound:
		return ErrNotFound
	case KindServerError:
		return ErrServerError
	default:
		return ErrUnknown
	}
}

// ClassifyStatus maps a non-2xx HTTP status to an ErrorKind. Only the four
// statuses the API documents get their own kind; 403, 502, 503 and the rest
// are Unknown.
func ClassifyStatus(code int) ErrorKind {
	switch code {
	case http.StatusBadRequest:
		return KindBadRequest
	case http.StatusUnauthorized:
		return KindUnauthorized
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusInternalServerError:
		return KindServerError
	default:
		return KindUnknown
	}
}

// APIError is returned for every failed request: non-2xx responses and
// transport failures alike. StatusCode is zero for transport failures; Err
// holds the transport or decode cause when there is one.
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	Method     string
	Path       string
	Body       []byte
	Err        error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("api %s %s: %v", e.Method, e.Path, e.Err)
	}
	return fmt.Sprintf("api %s %s: %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
}

// Unwrap exposes both the kind sentinel and the transport cause, so
// errors.Is works for ErrUnauthorized as well as context.Canceled.
func (e *APIError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind.sentinel()}
	}
	return []error{e.Kind.sentinel(), e.Err}
}

// KindOf returns the ErrorKind of err, or KindUnknown when err is not an
// *APIError.
func KindOf(err error) ErrorKind {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindUnknown
}
