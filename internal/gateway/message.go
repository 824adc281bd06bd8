package gateway

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"lingo/internal/domain"
)

const (
	msgNotFound    = "The requested resource was not found."
	msgServerError = "Something went wrong. Please try again later."
	msgNetwork     = "Unable to reach the server. Check your connection and try again."
	msgExpired     = "Your session has expired. Please log in again."

	maxMessageLen = 300
)

var stripHTML = bluemonday.StrictPolicy()

// BodyMessage extracts a human-readable message from an error response body.
// A JSON string is used as is; a JSON object contributes its message, error,
// title or detail field; anything else is treated as text with markup
// stripped. It returns "" when nothing readable is found.
func BodyMessage(body []byte) string {
	s := strings.TrimSpace(string(body))
	if s == "" {
		return ""
	}

	switch s[0] {
	case '"':
		var str string
		if json.Unmarshal([]byte(s), &str) == nil {
			return clip(str)
		}
	case '{':
		var obj map[string]any
		if json.Unmarshal([]byte(s), &obj) == nil {
			for _, k := range []string{"message", "error", "title", "detail"} {
				if v, ok := obj[k].(string); ok && strings.TrimSpace(v) != "" {
					return clip(v)
				}
			}
			return ""
		}
	case '[':
		return ""
	}

	return clip(strings.Join(strings.Fields(stripHTML.Sanitize(s)), " "))
}

// Message returns the server-provided message carried by err, or fallback
// when there is none.
func Message(err error, fallback string) string {
	var ae *domain.APIError
	if errors.As(err, &ae) {
		if m := BodyMessage(ae.Body); m != "" {
			return m
		}
	}
	return fallback
}

// UserMessage turns err into text suitable for an inline error banner.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var ae *domain.APIError
	if !errors.As(err, &ae) {
		return err.Error()
	}
	switch ae.Kind {
	case domain.KindBadRequest:
		return Message(err, "The request was invalid.")
	case domain.KindUnauthorized:
		return Message(err, msgExpired)
	case domain.KindNotFound:
		return msgNotFound
	case domain.KindServerError:
		return msgServerError
	}
	if ae.StatusCode == 0 {
		return msgNetwork
	}
	return Message(err, msgServerError)
}

func clip(s string) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) <= maxMessageLen {
		return s
	}
	return strings.TrimSpace(string(r[:maxMessageLen])) + "…"
}
