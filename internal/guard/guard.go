// Package guard decides whether the current session may open a route.
package guard

import (
	"context"
	"path"
	"slices"
	"strings"

	"github.com/JaimeStill/printmg/internal/session"
)

// LoginPath is where refused requests are sent.
const LoginPath = "/login"

// Route is a navigable path. A route with Roles is restricted to those roles;
// a protected route without Roles admits any signed-in user.
type Route struct {
	Path      string
	Protected bool
	Roles     []session.Role
}

// Routes is the fixed routing surface of the client.
var Routes = []Route{
	{Path: "/"},
	{Path: "/login"},
	{Path: "/register"},
	{Path: "/produits"},
	{Path: "/mot-de-passe-oublie"},
	{Path: "/reinitialiser-mot-de-passe"},
	{Path: "/commande", Protected: true},
	{Path: "/notifications", Protected: true},
	{Path: "/corbeille", Protected: true},
	{Path: "/dashboard", Protected: true, Roles: []session.Role{session.RoleUser}},
	{Path: "/admin", Protected: true, Roles: []session.Role{session.RoleAdmin}},
}

// Decision is the outcome of a route check.
type Decision struct {
	Allowed  bool
	Redirect string
}

// Sessions provides the active session.
type Sessions interface {
	Current(ctx context.Context) (session.Session, bool)
}

// Guard checks routes against the active session.
type Guard struct {
	sessions Sessions
	routes   []Route
}

// New creates a guard over the default route table.
func New(sessions Sessions) *Guard {
	return &Guard{sessions: sessions, routes: Routes}
}

// Lookup finds the route serving path. Nested paths resolve to their closest
// registered parent, so /admin/users is served by /admin.
func (g *Guard) Lookup(p string) (Route, bool) {
	p = clean(p)

	var best Route
	found := false
	for _, r := range g.routes {
		if r.Path == p || (r.Path != "/" && strings.HasPrefix(p, r.Path+"/")) {
			if !found || len(r.Path) > len(best.Path) {
				best, found = r, true
			}
		}
	}
	return best, found
}

// Check decides whether the active session may open path. Unknown paths are
// allowed; the guard only restricts registered routes.
func (g *Guard) Check(ctx context.Context, p string) Decision {
	route, ok := g.Lookup(p)
	if !ok || !route.Protected {
		return Decision{Allowed: true}
	}

	sess, ok := g.sessions.Current(ctx)
	if !ok {
		return Decision{Redirect: LoginPath}
	}
	if len(route.Roles) > 0 && !slices.Contains(route.Roles, sess.Role) {
		return Decision{Redirect: LoginPath}
	}

	return Decision{Allowed: true}
}

// clean reduces p to its canonical form so that repeated slashes and dot
// segments resolve to the route they name.
func clean(p string) string {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	return path.Clean("/" + p)
}
