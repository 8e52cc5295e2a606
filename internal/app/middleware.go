package app

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/timebudget/timebudget/internal/rest"
)

const requestIdHeader = "X-Request-Id"

// SetupMiddleware wires all HTTP middlewares for the application.
// Request logging wraps panic recovery so recovered requests are logged with their 500.
func SetupMiddleware(r *mux.Router) {
	r.Use(withRequestLog, withRecovery)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		requestId := req.Header.Get(requestIdHeader)
		if requestId == "" {
			requestId = uuid.NewString()
		}
		w.Header().Set(requestIdHeader, requestId)

		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, req)

		log.WithFields(log.Fields{
			"request_id": requestId,
			"method":     req.Method,
			"path":       req.URL.Path,
			"status":     recorder.status,
			"latency":    time.Since(start).String(),
		}).Info("request handled")
	})
}

func withRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		defer func() {
			if p := recover(); p != nil {
				log.WithFields(log.Fields{
					"method": req.Method,
					"path":   req.URL.Path,
				}).Errorf("panic while handling request: %v\n%s", p, debug.Stack())
				rest.WriteJSON(w, http.StatusInternalServerError, rest.ErrorResponse{Error: "Internal server error."})
			}
		}()
		next.ServeHTTP(w, req)
	})
}
