package guard

import (
	"errors"
	"net/http"

	"github.com/spf13/cobra"

	"lingo/internal/domain"
)

// ProtectedAnnotation marks cobra commands that require a signed-in user.
const ProtectedAnnotation = "lingo/protected"

// ErrLoginRequired is returned by Command for protected commands run
// without a session.
var ErrLoginRequired = errors.New("not logged in: run `lingo login` first")

// Decision is the outcome of a guard check: either Allow, or a Redirect to
// the given route.
type Decision struct {
	Allow    bool
	Redirect domain.Route
}

// Check allows authenticated sessions and redirects everything else,
// including a session still loading, to the login view.
func Check(s domain.Session) Decision {
	if s.IsAuthenticated() {
		return Decision{Allow: true}
	}
	return Decision{Redirect: domain.RouteLogin}
}

// Home resolves the root route: the dashboard when signed in, login otherwise.
func Home(s domain.Session) domain.Route {
	if s.IsAuthenticated() {
		return domain.RouteDashboard
	}
	return domain.RouteLogin
}

// Middleware guards HTTP handlers, answering 303 See Other to the login
// route when Check does not allow the request.
func Middleware(src domain.SessionSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			d := Check(src.Snapshot())
			if !d.Allow {
				http.Redirect(w, r, d.Redirect.String(), http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Protect annotates cmd as requiring a session.
func Protect(cmd *cobra.Command) *cobra.Command {
	if cmd.Annotations == nil {
		cmd.Annotations = make(map[string]string)
	}
	cmd.Annotations[ProtectedAnnotation] = "true"
	return cmd
}

// IsProtected reports whether cmd or any parent is annotated by Protect.
func IsProtected(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[ProtectedAnnotation] == "true" {
			return true
		}
	}
	return false
}

// Command checks a CLI invocation: protected commands need an authenticated
// session, everything else passes.
func Command(cmd *cobra.Command, src domain.SessionSource) error {
	if !IsProtected(cmd) {
		return nil
	}
	if !Check(src.Snapshot()).Allow {
		return ErrLoginRequired
	}
	return nil
}
