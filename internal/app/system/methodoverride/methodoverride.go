// Package methodoverride lets clients that can only send POST (HTML forms,
// restrictive proxies) tunnel other verbs through a request header.
package methodoverride

import (
	"net/http"
	"strings"
)

// Header carries the method to use instead of POST.
const Header = "X-HTTP-Method-Override"

var allowed = map[string]struct{}{
	http.MethodGet:     {},
	http.MethodHead:    {},
	http.MethodPost:    {},
	http.MethodPut:     {},
	http.MethodPatch:   {},
	http.MethodDelete:  {},
	http.MethodOptions: {},
}

// Middleware rewrites r.Method for POST requests that carry a known method
// in the override header. Unknown values are ignored.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			if m := strings.ToUpper(strings.TrimSpace(r.Header.Get(Header))); m != "" {
				if _, ok := allowed[m]; ok {
					r.Method = m
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}
