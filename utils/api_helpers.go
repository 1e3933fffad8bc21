package utils

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/raushankrgupta/multisite-product-viewer/errx"
	"github.com/raushankrgupta/multisite-product-viewer/logx"
)

// RespondJSON sends a JSON response with the given status code and payload.
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// headers are already sent
		logx.Error().Err(err).Msg("error encoding JSON response")
	}
}

// RespondError sends {"success": false, "error": message} with the status
// that matches err's kind and logs it under the given api tag.
func RespondError(w http.ResponseWriter, api string, err error) {
	status := errx.StatusOf(err)
	message := errx.Message(err)

	event := logx.Warn()
	if status >= http.StatusInternalServerError {
		event = logx.Error()
	}
	event.Str("api", api).Int("status", status).Err(err).Msg(message)

	RespondJSON(w, status, map[string]interface{}{"success": false, "error": message})
}

// LatencyMiddleware logs the duration of each request
func LatencyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logx.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("latency", time.Since(start)).
			Msg("request")
	})
}
