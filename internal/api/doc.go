// Package api is the typed client for the lingo REST API.
//
// Each method maps to one endpoint and decodes the response into the
// matching domain type. Transport, credentials and error classification are
// the gateway's job; this package only knows paths and payloads.
package api
