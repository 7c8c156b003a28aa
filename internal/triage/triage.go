// Package triage composes the AI classifier and the curated knowledge base
// into a single answer pipeline for incoming legal questions.
package triage

import (
	"context"
	"fmt"
	"strings"

	"github.com/legalia/intake-api/internal/knowledge"
	"github.com/legalia/intake-api/internal/models"
	"github.com/legalia/intake-api/internal/services/ai"
	"go.uber.org/zap"
)

// FallbackAnswer is returned when neither the knowledge base nor the
// classifier produced usable answer text. A blank answer is never surfaced.
const FallbackAnswer = "Tu consulta requiere un análisis personalizado. " +
	"Te recomendamos agendar una consulta con uno de nuestros profesionales " +
	"para recibir asesoramiento adecuado a tu situación."

// Service runs the classify -> match -> compose pipeline. It keeps no
// per-request state; every Triage call is independent.
type Service struct {
	classifier ai.Classifier
	kb         *knowledge.Base
	logger     *zap.Logger
}

// NewService creates a triage service
func NewService(classifier ai.Classifier, kb *knowledge.Base, logger *zap.Logger) *Service {
	return &Service{
		classifier: classifier,
		kb:         kb,
		logger:     logger,
	}
}

// Triage classifies the question, tries to answer it from the knowledge
// base, and falls back to the classifier's own answer. Classifier failures
// are fatal to the request and returned unwrapped of any guesswork: no
// retry, no default classification.
func (s *Service) Triage(ctx context.Context, questionText string) (*models.TriageResult, error) {
	return s.TriageWithCategory(ctx, questionText, "")
}

// TriageWithCategory runs the triage pipeline with a caller-supplied
// category hint. A hint naming a valid category overrides the classifier's
// category; otherwise the keyword detector and finally the classifier's own
// category decide, defaulting to Civil when even that is invalid.
func (s *Service) TriageWithCategory(ctx context.Context, questionText string, categoryHint string) (*models.TriageResult, error) {
	classification, err := s.classifier.Classify(ctx, questionText)
	if err != nil {
		return nil, fmt.Errorf("classification failed: %w", err)
	}

	category := s.resolveCategory(questionText, categoryHint, classification.Category)

	complexity := models.Complexity(classification.Complexity)
	if !complexity.IsValid() {
		complexity = models.ComplexityMedium
	}

	result := &models.TriageResult{
		Category:        category,
		NeedsEscalation: classification.NeedsProfessionalConsultation,
		Confidence:      classification.Confidence,
		Complexity:      complexity,
		Reasoning:       classification.Reasoning,
	}

	if entry := s.kb.FindBestMatch(questionText, category); entry != nil {
		result.AnswerText = entry.Answer
		result.Source = models.AnswerSourceCurated
		s.logger.Debug("curated_answer_matched",
			zap.String("entry_id", entry.ID),
			zap.String("category", string(category)),
		)
		return result, nil
	}

	result.Source = models.AnswerSourceGenerated
	result.AnswerText = classification.BriefAnswer
	if strings.TrimSpace(result.AnswerText) == "" {
		result.AnswerText = FallbackAnswer
		result.NeedsEscalation = true
	}

	return result, nil
}

// resolveCategory picks the category the matcher runs against: an explicit
// valid hint first, then the keyword detector on the hint-less text, then
// the classifier's advisory category, and Civil as the last resort.
func (s *Service) resolveCategory(questionText, categoryHint, classifierCategory string) models.LegalCategory {
	if hint := models.LegalCategory(categoryHint); categoryHint != "" {
		if hint.IsValid() {
			return hint
		}
		if detected, ok := knowledge.DetectCategory(questionText); ok {
			return detected
		}
	}

	category := models.LegalCategory(classifierCategory)
	if !category.IsValid() {
		// The model's category is advisory; an unknown value falls back to
		// Civil instead of failing the request.
		s.logger.Warn("invalid_classifier_category",
			zap.String("category", classifierCategory),
		)
		return models.CategoryCivil
	}
	return category
}

// SuggestCategory guesses a category for questions submitted without one,
// using the keyword detector. It never calls the classifier.
func (s *Service) SuggestCategory(questionText string) (models.LegalCategory, bool) {
	return knowledge.DetectCategory(questionText)
}
