// Package middleware provides net/http middleware shared by HTTP entry points.
package middleware

import (
	"net/http"
	"strings"
)

// AddSlash returns middleware that appends a trailing slash to request paths
// under prefix, unless the path already ends with one or names a file.
//
// The path is rewritten in place rather than redirected so that POST bodies
// (multipart uploads in particular) reach the handler intact.
func AddSlash(prefix string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			if strings.HasPrefix(path, prefix) && !strings.HasSuffix(path, "/") && !hasFileExtension(path) {
				r.URL.Path = path + "/"
				if r.URL.RawPath != "" {
					r.URL.RawPath += "/"
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Chain applies middleware to h so that the first element runs outermost.
func Chain(h http.Handler, mw ...func(http.Handler) http.Handler) http.Handler {
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	return h
}

func hasFileExtension(path string) bool {
	lastSlash := strings.LastIndex(path, "/")
	lastDot := strings.LastIndex(path, ".")
	return lastDot > lastSlash
}
