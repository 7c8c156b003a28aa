package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/legalia/intake-api/internal/knowledge"
	"github.com/legalia/intake-api/internal/services/ai"
)

// HealthChecker handles health check requests
type HealthChecker struct {
	kb         *knowledge.Base
	classifier ai.Classifier
}

// NewHealthChecker creates a new health checker
func NewHealthChecker(kb *knowledge.Base, classifier ai.Classifier) *HealthChecker {
	return &HealthChecker{kb: kb, classifier: classifier}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// HealthCheck handles the /healthz endpoint
func (h *HealthChecker) HealthCheck(w http.ResponseWriter, r *http.Request) {
	mode := r.URL.Query().Get("mode")

	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	if mode == "extended" {
		checks := make(map[string]string)

		if h.kb == nil || h.kb.Size() == 0 {
			response.Status = "unhealthy"
			checks["knowledge_base"] = "unhealthy: no entries loaded"
		} else {
			checks["knowledge_base"] = fmt.Sprintf("healthy: %d entries", h.kb.Size())
		}

		if h.classifier == nil {
			response.Status = "unhealthy"
			checks["classifier"] = "unhealthy: not configured"
		} else {
			checks["classifier"] = "healthy"
		}

		response.Checks = checks

		statusCode := http.StatusOK
		if response.Status == "unhealthy" {
			statusCode = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		json.NewEncoder(w).Encode(response)
		return
	}

	// Basic mode - just return that the server is running
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}
