package middleware

import (
	"io"
	"net/http"
)

// MaxRequestBodyBytes caps the request bodies accepted by the API.
const MaxRequestBodyBytes int64 = 64 << 10

// DrainAndCloseRequest - limits the body to maxBytes, and drains and closes it once the
// handler is done, so the connection can be reused
func DrainAndCloseRequest(maxBytes int64) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil && maxBytes > 0 {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
			if r.Body != nil {
				_, _ = io.Copy(io.Discard, r.Body)
				_ = r.Body.Close()
			}
		})
	}
}
