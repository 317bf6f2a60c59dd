// Package static serves files from a local directory ahead of the router.
package static

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Middleware serves GET and HEAD requests that name an existing file under
// root, or a directory holding index.html. Matched requests stop here;
// everything else, including any path with a dot-prefixed segment, falls
// through to next.
func Middleware(root string) func(http.Handler) http.Handler {
	files := http.FileServer(http.Dir(root))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet && r.Method != http.MethodHead {
				next.ServeHTTP(w, r)
				return
			}

			name := path.Clean("/" + r.URL.Path)
			if hasDotSegment(name) || !exists(root, name) {
				next.ServeHTTP(w, r)
				return
			}

			files.ServeHTTP(w, r)
		})
	}
}

func exists(root, name string) bool {
	full := filepath.Join(root, filepath.FromSlash(name))
	fi, err := os.Stat(full)
	if err != nil {
		return false
	}
	if !fi.IsDir() {
		return true
	}
	idx, err := os.Stat(filepath.Join(full, "index.html"))
	return err == nil && !idx.IsDir()
}

func hasDotSegment(name string) bool {
	for _, seg := range strings.Split(name, "/") {
		if strings.HasPrefix(seg, ".") {
			return true
		}
	}
	return false
}
