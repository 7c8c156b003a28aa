package ai

import (
	"context"
	"fmt"
)

// Classification is the structured result of classifying a legal question.
// Category and Complexity arrive as raw strings from the model; validating
// them against the closed enumerations is the caller's responsibility.
type Classification struct {
	Category                      string  `json:"category"`
	BriefAnswer                   string  `json:"brief_answer"`
	NeedsProfessionalConsultation bool    `json:"needs_professional_consultation"`
	Reasoning                     string  `json:"reasoning"`
	Confidence                    float64 `json:"confidence"`
	Complexity                    string  `json:"complexity"`
}

// Classifier classifies free-text legal questions
type Classifier interface {
	// Classify classifies a question and drafts a brief answer. Any failure
	// (network, credentials, malformed response) is returned as an error;
	// the caller decides whether and how to surface it.
	Classify(ctx context.Context, questionText string) (*Classification, error)
}

// ClassifierFactory creates a classifier from string configuration
type ClassifierFactory func(config map[string]string) (Classifier, error)

// ClassifierRegistry stores available classifier implementations by name
type ClassifierRegistry struct {
	factories map[string]ClassifierFactory
}

// NewClassifierRegistry creates an empty registry
func NewClassifierRegistry() *ClassifierRegistry {
	return &ClassifierRegistry{factories: make(map[string]ClassifierFactory)}
}

// Register registers a classifier factory under a name
func (r *ClassifierRegistry) Register(name string, factory ClassifierFactory) {
	r.factories[name] = factory
}

// GetClassifier builds the named classifier
func (r *ClassifierRegistry) GetClassifier(name string, config map[string]string) (Classifier, error) {
	factory, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("AI classifier not found: %s", name)
	}
	return factory(config)
}
