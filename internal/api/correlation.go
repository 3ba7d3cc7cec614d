package api

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// DefaultCorrelationHeader is the header carrying the correlation id.
const DefaultCorrelationHeader = "X-Correlation-ID"

type correlationKey struct{}

// correlationID extracts the request's correlation id from the context.
func correlationID(ctx context.Context) string {
	id, _ := ctx.Value(correlationKey{}).(string)
	return id
}

// correlationMiddleware extracts the correlation id from the request header,
// generating one when absent, echoes it on the response, and stores it in the
// request context for handlers and the request logger.
func correlationMiddleware(headerName string) func(http.Handler) http.Handler {
	if headerName == "" {
		headerName = DefaultCorrelationHeader
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(headerName)
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set(headerName, id)
			ctx := context.WithValue(r.Context(), correlationKey{}, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
