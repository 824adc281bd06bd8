// Package main runs the in-memory lingo API used during development and in
// end-to-end tests of the CLI. It serves internal/apitest under /api.
//
// HTTP API
//
//	POST /api/auth/login, /api/auth/register
//	    Return {token, user}. Tokens are HS256 JWTs with an exp claim.
//
//	GET  /api/users/current, /api/users/profile, /api/users/progress,
//	     /api/users/progress/stats, /api/users/errors, /api/users/badges
//	GET|POST|PUT|DELETE /api/users/goals[/{id}]
//	GET  /api/users/vocabulary, /api/vocabulary/flashcards
//	PUT  /api/vocabulary/{id}
//	GET|POST /api/conversation[/{id}[/messages]]
//	GET  /api/quiz/levels/{level}, /api/quiz/{id}, /api/quiz/results[/{id}]
//	POST /api/quiz/generate, /api/quiz/submit
//
// Behaviour
//
//   - All state is held in memory and lost on process exit.
//   - One account is seeded at startup (demo / demo1234 by default) with
//     vocabulary, a goal, badges, a conversation and a quiz result.
//   - Authenticated routes answer 401 with an empty body for a missing,
//     expired or unknown token.
//   - The default listen address is :5130, matching the client's default
//     base URL http://localhost:5130/api.
package main
