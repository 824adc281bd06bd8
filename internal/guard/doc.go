// Package guard decides whether a view may be shown for a given session.
//
// Check is a pure predicate; Middleware and Command apply it to HTTP routes
// and cobra commands. Unauthenticated and still-loading sessions are sent to
// the login view.
package guard
