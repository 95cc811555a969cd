package guard_test

import (
	"context"
	"testing"

	"github.com/JaimeStill/printmg/internal/guard"
	"github.com/JaimeStill/printmg/internal/session"
)

type fixedSession struct {
	sess session.Session
	ok   bool
}

func (f fixedSession) Current(ctx context.Context) (session.Session, bool) {
	return f.sess, f.ok
}

func as(role session.Role) fixedSession {
	return fixedSession{sess: session.Session{Token: "tok", Role: role}, ok: true}
}

func TestCheck(t *testing.T) {
	anonymous := fixedSession{}

	tests := []struct {
		name     string
		sessions guard.Sessions
		path     string
		want     guard.Decision
	}{
		{"public home", anonymous, "/", guard.Decision{Allowed: true}},
		{"public catalog", anonymous, "/produits", guard.Decision{Allowed: true}},
		{"unknown path", anonymous, "/nowhere", guard.Decision{Allowed: true}},
		{"anonymous order", anonymous, "/commande", guard.Decision{Redirect: "/login"}},
		{"anonymous notifications", anonymous, "/notifications/", guard.Decision{Redirect: "/login"}},
		{"anonymous trash", anonymous, "corbeille", guard.Decision{Redirect: "/login"}},
		{"anonymous dashboard", anonymous, "/dashboard", guard.Decision{Redirect: "/login"}},
		{"anonymous admin", anonymous, "/admin", guard.Decision{Redirect: "/login"}},
		{"user order", as(session.RoleUser), "/commande", guard.Decision{Allowed: true}},
		{"admin order", as(session.RoleAdmin), "/commande", guard.Decision{Allowed: true}},
		{"user dashboard", as(session.RoleUser), "/dashboard", guard.Decision{Allowed: true}},
		{"admin on user dashboard", as(session.RoleAdmin), "/dashboard", guard.Decision{Redirect: "/login"}},
		{"admin console", as(session.RoleAdmin), "/admin", guard.Decision{Allowed: true}},
		{"user on admin console", as(session.RoleUser), "/admin", guard.Decision{Redirect: "/login"}},
		{"user on nested admin path", as(session.RoleUser), "/admin/users?page=2", guard.Decision{Redirect: "/login"}},
		{"unknown role on admin", as(session.Role("GUEST")), "/admin", guard.Decision{Redirect: "/login"}},
		{"doubled leading slash", anonymous, "//admin", guard.Decision{Redirect: "/login"}},
		{"dot segment", anonymous, "/./admin", guard.Decision{Redirect: "/login"}},
		{"parent segment", anonymous, "/x/../admin", guard.Decision{Redirect: "/login"}},
		{"doubled slash on order", anonymous, "//commande", guard.Decision{Redirect: "/login"}},
		{"trailing slashes", anonymous, "/admin//", guard.Decision{Redirect: "/login"}},
		{"parent above root", anonymous, "/../corbeille", guard.Decision{Redirect: "/login"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := guard.New(tt.sessions).Check(context.Background(), tt.path)
			if got != tt.want {
				t.Errorf("Check(%q) = %+v, want %+v", tt.path, got, tt.want)
			}
		})
	}
}

func TestEveryProtectedRouteRedirectsAnonymous(t *testing.T) {
	g := guard.New(fixedSession{})
	for _, r := range guard.Routes {
		if !r.Protected {
			continue
		}
		if d := g.Check(context.Background(), r.Path); d.Allowed || d.Redirect != guard.LoginPath {
			t.Errorf("Check(%q) = %+v, want redirect to %s", r.Path, d, guard.LoginPath)
		}
	}
}

func TestLookup(t *testing.T) {
	g := guard.New(fixedSession{})

	tests := []struct {
		path string
		want string
		ok   bool
	}{
		{"/admin/users", "/admin", true},
		{"/commande/", "/commande", true},
		{"/", "/", true},
		{"/administration", "", false},
		{"/admin//users/./", "/admin", true},
	}

	for _, tt := range tests {
		r, ok := g.Lookup(tt.path)
		if ok != tt.ok || r.Path != tt.want {
			t.Errorf("Lookup(%q) = %q, %v; want %q, %v", tt.path, r.Path, ok, tt.want, tt.ok)
		}
	}
}
