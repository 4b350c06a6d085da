package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"eddyzhang/jd-matcher/internal/models"
	"eddyzhang/jd-matcher/internal/services"
)

const contentTypeJSON = "application/json; charset=utf-8"

// HTTPHandler is the plain net/http binding of the matcher, for hosts that
// hand over a raw request/response pair instead of a routed framework context.
type HTTPHandler struct {
	matcher     services.MatcherService
	maxBodySize int64
}

func NewHTTPHandler(matcher services.MatcherService, maxBodySize int64) *HTTPHandler {
	return &HTTPHandler{
		matcher:     matcher,
		maxBodySize: maxBodySize,
	}
}

func (h *HTTPHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeJSON(w, http.StatusMethodNotAllowed, models.ErrorResponse{Error: msgMethodNotAllowed})
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodySize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, models.ErrorResponse{Error: msgPayloadTooLarge})
			return
		}
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: msgInvalidJSON})
		return
	}

	var req models.MatchRequest
	if err := decodeMatchRequest(body, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: msgInvalidJSON})
		return
	}

	result, err := h.matcher.Match(r.Context(), req.JD)
	if err != nil {
		status, message := matchErrorStatus(err)
		if status >= http.StatusInternalServerError {
			log.Printf("❌ Match failed: %v", err)
		}
		writeJSON(w, status, models.ErrorResponse{Error: message})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// NewHTTPMux routes / to the matcher and /health to the health check, with
// access logging and panic recovery around both.
func NewHTTPMux(match *HTTPHandler) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, healthResponse())
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Cannot " + r.Method + " " + r.URL.Path})
			return
		}
		match.ServeHTTP(w, r)
	})
	return withRecover(withAccessLog(mux))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		data = []byte(`{"error":"failed to encode response"}`)
	}

	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func withAccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Printf("[%s] %d - %s %s %s\n",
			start.Format("2006-01-02 15:04:05"), rec.status, time.Since(start), r.Method, r.URL.Path)
	})
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("❌ Panic while serving %s %s: %v", r.Method, r.URL.Path, rec)
				writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal Server Error"})
			}
		}()
		next.ServeHTTP(w, r)
	})
}
