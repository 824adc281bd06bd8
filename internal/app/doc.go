// Package app wires application dependencies for the CLI and the web
// companion.
//
// It loads Config (defaults, YAML file, LINGO_* environment), builds the
// logger, the durable storage, the gateway, the session service and the
// typed API client, and exposes them via the Wire struct. The gateway's 401
// hook is connected to the session service here.
package app
