// Package session implements the client's authentication state machine.
//
// The Service tracks who is signed in, whether an auth operation is in
// flight and the last user-visible error. It persists the bearer token and
// the user snapshot to a domain.Storage so that a restarted process resumes
// the session, and it exposes:
//   - Login and Register, which call the auth endpoints through the gateway;
//   - Logout and ClearError, which are local only;
//   - Reconcile, the startup step, under a trust or verify Policy;
//   - Expire, wired to the gateway's 401 hook.
//
// Every operation takes a context; a result that arrives after the context
// is done is dropped.
package session
