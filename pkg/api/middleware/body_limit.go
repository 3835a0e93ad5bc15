package middleware

import (
	"net/http"
)

// DefaultMaxBodyBytes bounds architecture uploads. Five thousand components
// with their flows fit comfortably.
const DefaultMaxBodyBytes int64 = 4 << 20

// BodySizeLimit rejects request bodies larger than maxBytes. A declared
// Content-Length over the limit is refused before the handler runs; chunked
// bodies are cut off by http.MaxBytesReader while the handler decodes them.
func BodySizeLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxBytes {
				http.Error(w, "Request body too large", http.StatusRequestEntityTooLarge)
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
