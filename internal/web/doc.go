// Package web serves the local companion: JSON views over the learner's
// session and data, intended for a browser front end on the same machine.
//
// Protected views sit behind guard.Middleware. When an API call made while
// serving a request is rejected with 401, the gateway navigates through
// Navigator, which records the login route on that request's context and
// the handler answers 303 See Other instead of an error body.
//
// Conversation messages are rendered from Markdown with goldmark and then
// sanitized with the bluemonday UGC policy.
package web
