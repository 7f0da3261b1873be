package guard

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

// Authenticator reports whether a session token is present. *session.Session satisfies it.
type Authenticator interface {
	Authenticated(ctx context.Context) bool
}

// Decision is the outcome of a navigation.
type Decision struct {
	Path     string            // destination actually shown
	Redirect bool              // Path differs from the requested path
	Route    string            // name of the matched route, empty for a redirect
	Vars     map[string]string // path variables of the matched route
}

// Router evaluates navigations against the route table.
type Router struct {
	auth   Authenticator
	mux    *mux.Router
	access map[string]Access
}

// New builds a Router over Routes.
func New(auth Authenticator) *Router {
	return NewWithRoutes(auth, Routes)
}

// NewWithRoutes builds a Router over a custom table.
func NewWithRoutes(auth Authenticator, routes []Route) *Router {
	m := mux.NewRouter()
	access := make(map[string]Access, len(routes))
	for _, rt := range routes {
		m.Path(rt.Pattern).Name(rt.Name)
		access[rt.Name] = rt.Access
	}
	return &Router{auth: auth, mux: m, access: access}
}

// Resolve decides where a navigation to path lands.
//   - public-only route with a session: /dashboard
//   - protected route without a session: /login
//   - unknown path: /dashboard with a session, / without
//
// A trailing slash and any query string are ignored.
func (r *Router) Resolve(ctx context.Context, path string) Decision {
	clean := normalize(path)
	authed := r.auth != nil && r.auth.Authenticated(ctx)

	var match mux.RouteMatch
	req := &http.Request{Method: http.MethodGet, URL: &url.URL{Path: clean}}
	if !r.mux.Match(req, &match) || match.Route == nil {
		dest := PathHome
		if authed {
			dest = PathDashboard
		}
		log.Debug().Str("path", clean).Str("dest", dest).Msg("unknown route")
		return redirect(clean, dest)
	}

	name := match.Route.GetName()
	switch r.access[name] {
	case PublicOnly:
		if authed {
			return redirect(clean, PathDashboard)
		}
	case Protected:
		if !authed {
			return redirect(clean, PathLogin)
		}
	}
	return Decision{Path: clean, Route: name, Vars: match.Vars}
}

// Allowed reports whether path is shown as requested.
func (r *Router) Allowed(ctx context.Context, path string) bool {
	return !r.Resolve(ctx, path).Redirect
}

func redirect(from, to string) Decision {
	return Decision{Path: to, Redirect: from != to}
}

func normalize(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			path = "/"
		}
	}
	return path
}
