package middleware

import (
	"net/http"
	"secureauth/internal/implementations/logging"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// LogRequestID copies the chi request id into the logging context. It must run after chimiddleware.RequestID.
func LogRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		requestID := chimiddleware.GetReqID(r.Context())
		if requestID == "" {
			next.ServeHTTP(rw, r)
			return
		}
		next.ServeHTTP(rw, r.WithContext(logging.WithRequestID(r.Context(), requestID)))
	})
}
