// Package commands defines the lingo CLI and wires dependencies for subcommands.
//
// Commands
//
//   - login, register, logout  Manage the stored session
//   - status                   Show session state and the token fingerprint
//   - profile [show|update]    View or edit the profile
//   - vocab list|update|stats|flashcards
//   - progress, errors         Progress graphs and error analysis (--range)
//   - goals list|add|progress|delete
//   - badges                   Achievements
//   - conversations list|show|new|send
//   - quiz levels|show|generate|take|results|result
//   - serve                    Run the local web companion
//
// # Implementation
//
// The root command layers configuration (defaults, <home>/config.yaml,
// LINGO_* variables, flags), builds the app.Wire and restores the session
// before any subcommand runs. Commands marked with guard.Protect refuse to run
// without an authenticated session. When the API rejects the session
// mid-command the stored credentials are cleared and a notice is printed to
// stderr.
package commands
