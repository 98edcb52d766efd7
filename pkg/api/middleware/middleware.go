package middleware

import (
	"net/http"
	"time"

	"github.com/mccartn3y/tetris-cli/pkg/log"
)

// NewRequestLogMiddleware logs every request with its response status and
// duration.
func NewRequestLogMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(recorder, r)
			log.Debug("%s %s %d %s", r.Method, r.URL.Path, recorder.status, time.Since(start))
		})
	}
}

// statusRecorder captures the status code a handler writes.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
