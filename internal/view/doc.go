// Package view holds the presentation logic shared by the CLI and the web
// companion: score bands, vocabulary filtering, sorting and statistics,
// pagination, the flashcard deck, goal progress and quiz summaries.
//
// Everything here is pure computation over data already fetched from the
// API.
package view
