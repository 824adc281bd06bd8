// Package crypto exposes the few primitives lingo needs around secrets.
//
// Contents
//
//   - Best-effort memory wiping for sensitive byte slices (Wipe)
//   - Short fingerprints of tokens for display/logging (Fingerprint)
//   - CSPRNG helpers for salts and opaque tokens (RandomBytes, RandomToken)
//
// # Notes
//
// Bearer tokens are never printed or logged verbatim; callers show the
// Fingerprint instead. Key material derived from passphrases should be passed
// to Wipe as soon as it is no longer needed.
package crypto
