// Package domain defines core data models and interfaces shared across lingo.
// It contains plain types (wire/state) and contracts (interfaces) only.
//
// Types live in the types subpackage and contracts in interfaces; this
// package re-exports both through aliases so callers import a single path.
package domain
