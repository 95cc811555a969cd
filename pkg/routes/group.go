// Package routes declares HTTP routes as data and registers them on gin.
package routes

import (
	"path"
	"strings"

	"github.com/gin-gonic/gin"
)

// Group represents a collection of routes under a common URL prefix.
// Groups can contain child groups for hierarchical route organization.
// Middleware applies to every route of the group and its children.
type Group struct {
	Prefix      string
	Description string
	Middleware  []gin.HandlerFunc
	Routes      []Route
	Children    []Group
}

// Route is a single endpoint of a Group.
type Route struct {
	Method  string
	Pattern string
	Handler gin.HandlerFunc
}

// Register mounts groups on r and returns the method and full path of every
// registered route, in registration order.
func Register(r gin.IRouter, groups ...Group) []string {
	var table []string
	for _, g := range groups {
		table = append(table, register(r, "", g)...)
	}
	return table
}

func register(r gin.IRouter, base string, g Group) []string {
	rg := r.Group(g.Prefix, g.Middleware...)
	full := join(base, g.Prefix)

	var table []string
	for _, route := range g.Routes {
		rg.Handle(route.Method, route.Pattern, route.Handler)
		table = append(table, route.Method+" "+join(full, route.Pattern))
	}
	for _, child := range g.Children {
		table = append(table, register(rg, full, child)...)
	}
	return table
}

func join(base, p string) string {
	if p == "" {
		return base
	}
	joined := path.Join(base, p)
	if strings.HasSuffix(p, "/") && !strings.HasSuffix(joined, "/") {
		joined += "/"
	}
	return joined
}
