package middleware

import (
	"net/http"
)

// CORS emits the permissive cross-origin headers the public booking form
// relies on. Preflight requests are answered by the router's global OPTIONS
// handler; this only decorates responses.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Headers", "Content-Type")
		h.Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, DELETE")

		next.ServeHTTP(w, r)
	})
}
