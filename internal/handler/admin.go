package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/markussiebert/authgate/internal/auth"
	"github.com/markussiebert/authgate/internal/logger"
	"github.com/markussiebert/authgate/internal/requestid"
)

// Config represents the admin handler configuration
type Config struct {
	Version string
}

// AdminHandler serves the protected surface behind the credential gate.
// It expects the auth middleware to run first; the authenticated username
// is read from the request context.
type AdminHandler struct {
	config Config
	start  time.Time
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(config Config) *AdminHandler {
	return &AdminHandler{config: config, start: time.Now()}
}

// ServeHTTP handles HTTP requests
func (h *AdminHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger.Debug("Received %s request: %s from %s", r.Method, r.URL.Path, r.RemoteAddr)

	// Only allow GET requests
	if r.Method != http.MethodGet {
		logger.Warn("Method not allowed: %s from %s", r.Method, r.RemoteAddr)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	user := auth.Username(r.Context())

	if strings.HasPrefix(r.URL.Path, "/status") {
		h.respond(w, map[string]any{
			"status":         "ok",
			"user":           user,
			"version":        h.config.Version,
			"uptime_seconds": int64(time.Since(h.start).Seconds()),
			"request_id":     requestid.FromContext(r.Context()),
		})
		return
	}

	h.respond(w, map[string]any{
		"message": fmt.Sprintf("Welcome, %s!", user),
		"user":    user,
	})
}

// respond sends a JSON response
func (h *AdminHandler) respond(w http.ResponseWriter, payload map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("Failed to encode response: %v", err)
	}
}
