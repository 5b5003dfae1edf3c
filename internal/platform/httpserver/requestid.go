package httpserver

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// HeaderRequestID is the correlation header honored and echoed by the API.
// The same id surfaces in the error envelope's request_id field.
const HeaderRequestID = "X-Request-Id"

type ctxKeyRequestID struct{}

// RequestIDFromContext returns the request's correlation id, or "" outside
// a request scope.
func RequestIDFromContext(ctx context.Context) string {
	v, _ := ctx.Value(ctxKeyRequestID{}).(string)
	return v
}

// RequestID assigns every request a correlation id: an incoming header value
// is trusted if it looks sane, otherwise a fresh uuid is minted. The id is
// echoed on the response and carried in the context.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := strings.TrimSpace(r.Header.Get(HeaderRequestID))
		if rid == "" || len(rid) > 64 {
			rid = uuid.NewString()
		}
		w.Header().Set(HeaderRequestID, rid)
		ctx := context.WithValue(r.Context(), ctxKeyRequestID{}, rid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
