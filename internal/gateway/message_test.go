package gateway_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"lingo/internal/domain"
	"lingo/internal/gateway"
)

func TestBodyMessage(t *testing.T) {
	cases := map[string]string{
		``:                                   "",
		`Invalid credentials`:                "Invalid credentials",
		`"Invalid credentials"`:              "Invalid credentials",
		`{"message":"Username taken"}`:       "Username taken",
		`{"error":"bad token"}`:              "bad token",
		`{"title":"One or more validation"}`: "One or more validation",
		`{"status":400}`:                     "",
		`[1,2]`:                              "",
		`<h1>Bad   Request</h1>`:             "Bad Request",
	}
	for in, want := range cases {
		assert.Equal(t, want, gateway.BodyMessage([]byte(in)), "body %q", in)
	}
}

func TestUserMessage(t *testing.T) {
	bad := &domain.APIError{Kind: domain.KindBadRequest, StatusCode: 400, Body: []byte(`"Word is required"`)}
	assert.Equal(t, "Word is required", gateway.UserMessage(bad))

	nf := &domain.APIError{Kind: domain.KindNotFound, StatusCode: 404}
	assert.Equal(t, "The requested resource was not found.", gateway.UserMessage(nf))

	srv := &domain.APIError{Kind: domain.KindServerError, StatusCode: 500, Body: []byte("stack trace")}
	assert.Equal(t, "Something went wrong. Please try again later.", gateway.UserMessage(srv))

	net := &domain.APIError{Kind: domain.KindUnknown, Err: errors.New("dial tcp: refused")}
	assert.Contains(t, gateway.UserMessage(net), "Unable to reach the server")

	assert.Equal(t, "", gateway.UserMessage(nil))
	assert.Equal(t, "fallback", gateway.Message(errors.New("plain"), "fallback"))
}
