// Package gateway provides the HTTP client every lingo API call goes
// through.
//
// The Client is configured with a base address (by default
// http://localhost:5130/api) and a domain.Storage. On each request it:
//   - attaches "Authorization: Bearer <token>" when storage holds a token;
//   - tags the request with an X-Request-ID;
//   - classifies any non-2xx status as BadRequest, Unauthorized, NotFound,
//     ServerError or Unknown and returns a *domain.APIError;
//   - folds transport failures and cancellation into the same error type.
//
// A 401 response clears the "token" and "user" keys, runs the registered
// OnUnauthorized hooks and navigates to the login view before the error is
// returned to the caller.
//
// BodyMessage, Message and UserMessage reduce error bodies to text for
// display.
package gateway
