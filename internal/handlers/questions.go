package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/legalia/intake-api/internal/knowledge"
	"github.com/legalia/intake-api/internal/models"
	"github.com/legalia/intake-api/internal/services/ai"
	"github.com/legalia/intake-api/internal/triage"
	"github.com/legalia/intake-api/internal/validation"
	"go.uber.org/zap"
)

// QuestionHandler handles legal question intake requests
type QuestionHandler struct {
	triageService *triage.Service
	logger        *zap.Logger
}

// NewQuestionHandler creates a new question handler
func NewQuestionHandler(triageService *triage.Service, logger *zap.Logger) *QuestionHandler {
	return &QuestionHandler{
		triageService: triageService,
		logger:        logger,
	}
}

// AskQuestionRequest represents a free-text question submission
type AskQuestionRequest struct {
	Question string `json:"question" validate:"required,min=10,max=1000"`
}

// DetailedAnswerRequest carries a question plus a caller-chosen category
type DetailedAnswerRequest struct {
	Question string `json:"question" validate:"required,min=10,max=1000"`
	Category string `json:"category" validate:"required,min=2,max=100"`
}

// AskQuestion triages a free-text legal question
func (h *QuestionHandler) AskQuestion(w http.ResponseWriter, r *http.Request) {
	var req AskQuestionRequest
	if !decodeAndValidate(w, r, &req, func() { req.Question = validation.SanitizeText(req.Question) }) {
		return
	}

	h.respondTriage(w, r, req.Question, "")
}

// DetailedAnswer triages a question with a caller-supplied category hint
func (h *QuestionHandler) DetailedAnswer(w http.ResponseWriter, r *http.Request) {
	var req DetailedAnswerRequest
	if !decodeAndValidate(w, r, &req, func() {
		req.Question = validation.SanitizeText(req.Question)
		req.Category = validation.SanitizeText(req.Category)
	}) {
		return
	}

	h.respondTriage(w, r, req.Question, req.Category)
}

// respondTriage runs the triage pipeline and writes the result or the
// appropriate error response.
func (h *QuestionHandler) respondTriage(w http.ResponseWriter, r *http.Request, question, categoryHint string) {
	requestID := uuid.NewString()
	ctx := ai.WithRequestID(r.Context(), requestID)

	result, err := h.triageService.TriageWithCategory(ctx, question, categoryHint)
	if err != nil {
		if ai.IsRateLimitError(err) {
			var apiErr *ai.APIError
			if errors.As(err, &apiErr) && apiErr.RetryAfter != nil {
				w.Header().Set("Retry-After", strconv.Itoa(int(apiErr.RetryAfter.Seconds())))
			}
			h.logger.Warn("classifier_rate_limited",
				zap.String("request_id", requestID),
				zap.Error(err),
			)
			respondJSONError(w, http.StatusTooManyRequests, "Too Many Requests", "The classification service is briefly over capacity, try again shortly")
			return
		}
		h.logger.Error("classification_failed",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		respondJSONError(w, http.StatusServiceUnavailable, "Service Unavailable", "Question classification is temporarily unavailable")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// decodeAndValidate decodes the JSON body into req, applies sanitize, and
// validates the struct, writing the error response itself on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req any, sanitize func()) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			respondJSONError(w, http.StatusRequestEntityTooLarge, "Request Entity Too Large", fmt.Sprintf("Request body exceeds maximum size of %d bytes", maxBytesErr.Limit))
			return false
		}
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid request body")
		return false
	}

	if sanitize != nil {
		sanitize()
	}

	if err := validation.Validate.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			fieldError := validationErrors[0]
			respondJSONError(w, http.StatusBadRequest, "Bad Request", fmt.Sprintf("Validation failed on field '%s': %s", fieldError.Field(), fieldError.Tag()))
			return false
		}
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Validation failed")
		return false
	}

	return true
}

// CategoryInfo describes one legal category for listing endpoints
type CategoryInfo struct {
	Category   models.LegalCategory `json:"category"`
	EntryCount int                  `json:"entry_count"`
}

// CategoryHandler serves the closed category enumeration
type CategoryHandler struct {
	kb *knowledge.Base
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(kb *knowledge.Base) *CategoryHandler {
	return &CategoryHandler{kb: kb}
}

// ListCategories returns every legal category with its knowledge-base entry count
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories := make([]CategoryInfo, 0, len(models.Categories))
	for _, category := range models.Categories {
		categories = append(categories, CategoryInfo{
			Category:   category,
			EntryCount: h.kb.CountFor(category),
		})
	}
	respondJSON(w, http.StatusOK, map[string]any{"categories": categories})
}
