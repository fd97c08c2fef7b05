package middleware

import (
	"net/http"

	"github.com/go-board-api/internal/pkg/reqid"
)

const requestIDHeader = "X-Request-Id"

// RequestID tags every request with a ULID, echoed in the response header so
// front-end error reports can be matched to server logs.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = reqid.New()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}
