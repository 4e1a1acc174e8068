package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"time"

	liberrors "github.com/jrsteele09/go-lab-site/internal/errors"
	"github.com/rs/zerolog/log"
)

const (
	contentTypeHTML = "text/html; charset=utf-8"
	contentTypeJSON = "application/json; charset=utf-8"
	contentTypeXML  = "application/xml; charset=utf-8"
)

func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Err(err).Msg("Failed to encode JSON response")
	}
}

func writeJSONError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

// errorStatus maps the error taxonomy onto an HTTP status and a message that is
// safe to show to clients
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, liberrors.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, liberrors.ErrCaptchaRejected):
		return http.StatusBadRequest, liberrors.ErrCaptchaRejected.Error()
	case errors.Is(err, liberrors.ErrNotFound):
		return http.StatusNotFound, liberrors.ErrNotFound.Error()
	case errors.Is(err, liberrors.ErrConflict):
		return http.StatusConflict, liberrors.ErrConflict.Error()
	default:
		return http.StatusInternalServerError, liberrors.ErrInternal.Error()
	}
}

// writeError logs server-side failures and writes the mapped JSON error
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := errorStatus(err)
	if status >= http.StatusInternalServerError {
		logError(r.Method, r.URL.Path, err)
	}
	writeJSONError(w, status, message)
}

// decodeJSON reads at most limit bytes of JSON from the request body into v
func decodeJSON(w http.ResponseWriter, r *http.Request, limit int64, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: malformed JSON body: %v", liberrors.ErrInvalidInput, err)
	}
	return nil
}

func noContent(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

type healthResponse struct {
	Status    string `json:"status"`
	Store     string `json:"store"`
	GoVersion string `json:"go_version"`
	Uptime    string `json:"uptime"`
}

// HealthHandler reports liveness and whether the store answers a ping
func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := healthResponse{
			Status:    "ok",
			Store:     "ok",
			GoVersion: runtime.Version(),
			Uptime:    s.nowTime().Sub(s.startTime).Round(time.Second).String(),
		}
		status := http.StatusOK
		if s.health != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := s.health.Ping(ctx); err != nil {
				log.Err(err).Msg("Health check ping failed")
				resp.Status = "degraded"
				resp.Store = "unavailable"
				status = http.StatusServiceUnavailable
			}
		}
		w.Header().Set("Cache-Control", "no-store")
		writeJSON(w, status, resp)
	}
}
