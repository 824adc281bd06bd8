// Package apitest is an in-memory stand-in for the lingo API server.
//
// Server implements the HTTP contract the client depends on (auth, users,
// vocabulary, conversation, quiz) with canned data, HS256 tokens and
// per-account state kept in maps. Tests mount it with httptest; cmd/devapi
// serves it for local runs.
//
// Hooks for tests:
//   - AddUser seeds an account with fixture data
//   - IssueToken mints a token with a chosen lifetime
//   - Revoke invalidates a token so the next call gets 401
//   - Fail and Heal inject and clear forced statuses per route
//   - Requests lists every request with its Authorization header
package apitest
