package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RequestID is the response header carrying the per-request correlation
// id used in the access log line below.
const RequestID = "X-Request-Id"

// Logger stamps every request with a request id and logs method, path,
// status-less duration, and id once the handler returns.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set(RequestID, id)

		start := time.Now()
		next.ServeHTTP(w, r)

		logrus.WithFields(logrus.Fields{
			"request_id": id,
			"method":     r.Method,
			"path":       r.RequestURI,
			"duration":   time.Since(start),
		}).Info("handled request")
	})
}
