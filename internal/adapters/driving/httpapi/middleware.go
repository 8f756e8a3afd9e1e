package httpapi

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/ghsb/internal/logger"
)

// headerRequestID carries the per-request correlation ID.
const headerRequestID = "X-Request-ID"

// withRequestID assigns every request a UUID unless the caller already
// sent one, and echoes it on the response.
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(headerRequestID)
		if id == "" {
			id = uuid.NewString()
			r.Header.Set(headerRequestID, id)
		}
		w.Header().Set(headerRequestID, id)
		next.ServeHTTP(w, r)
	})
}

// withRequestLogging logs method, path, status and duration when verbose
// mode is on.
func withRequestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(recorder, r)

		logger.Debug("http: %s %s -> %d (%s) [%s]",
			r.Method, r.URL.Path, recorder.status,
			time.Since(start).Round(time.Millisecond),
			r.Header.Get(headerRequestID),
		)
	})
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
