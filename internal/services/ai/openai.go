package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
	"go.uber.org/zap"
)

const (
	// DefaultOpenAIModel is the default model to use
	DefaultOpenAIModel = "gpt-4o-mini"
	// DefaultOpenAIBaseURL is the default OpenAI API base URL
	DefaultOpenAIBaseURL = "https://api.openai.com/v1"
	// DefaultTimeout is the default timeout for API calls
	DefaultTimeout = 30 * time.Second

	// ErrNoChoicesInResponse is returned when the API response has no choices
	ErrNoChoicesInResponse = "no choices in response"
)

// OpenAIClassifier implements the Classifier interface using OpenAI's API
type OpenAIClassifier struct {
	client    openai.Client
	model     string
	logger    *zap.Logger
	debugMode bool
}

// NewOpenAIClassifier creates a new OpenAI-backed classifier. The API key is
// required: classification cannot degrade to a guess when the upstream
// credential is missing.
func NewOpenAIClassifier(apiKey string, model string) (*OpenAIClassifier, error) {
	return NewOpenAIClassifierWithLogger(apiKey, DefaultOpenAIBaseURL, model, nil, false)
}

// NewOpenAIClassifierWithLogger creates a new OpenAI classifier with logger support
func NewOpenAIClassifierWithLogger(apiKey string, baseURL string, model string, logger *zap.Logger, debugMode bool) (*OpenAIClassifier, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}
	if model == "" {
		model = DefaultOpenAIModel
	}
	if baseURL == "" {
		baseURL = DefaultOpenAIBaseURL
	}

	httpClient := &http.Client{
		Timeout: DefaultTimeout,
	}

	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
		option.WithHTTPClient(httpClient),
	)

	return &OpenAIClassifier{
		client:    client,
		model:     model,
		logger:    logger,
		debugMode: debugMode,
	}, nil
}

// Classify sends the question to the model and parses the structured
// classification out of its JSON response.
func (c *OpenAIClassifier) Classify(ctx context.Context, questionText string) (*Classification, error) {
	prompt := buildClassificationPrompt(questionText)
	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage("Sos un asistente legal que clasifica consultas jurídicas de Argentina. Respondé únicamente con JSON válido."),
		openai.UserMessage(prompt),
	}
	req := openai.ChatCompletionNewParams{
		Model:    shared.ChatModel(c.model),
		Messages: messages,
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
	}

	requestID := ExtractRequestID(ctx)
	if c.logger != nil && c.debugMode {
		c.logger.Debug("llm_api_request",
			zap.String("operation", "classify_question"),
			zap.String("model", c.model),
			zap.Int("prompt_length", len(prompt)),
			zap.String("prompt_preview", SanitizePrompt(prompt, false)),
			zap.String("request_id", requestID),
		)
	}

	start := time.Now()
	resp, err := c.client.Chat.Completions.New(ctx, req)
	latency := time.Since(start)
	if err != nil {
		if c.logger != nil && c.debugMode {
			c.logger.Debug("llm_api_error",
				zap.String("operation", "classify_question"),
				zap.String("model", c.model),
				zap.Error(err),
				zap.String("request_id", requestID),
				zap.Int64("latency_ms", latency.Milliseconds()),
			)
		}
		if apiErr := ExtractAPIError(err); apiErr != nil {
			return nil, fmt.Errorf("failed to classify question: %w", apiErr)
		}
		return nil, fmt.Errorf("failed to classify question: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, errors.New(ErrNoChoicesInResponse)
	}
	content := resp.Choices[0].Message.Content

	if c.logger != nil && c.debugMode {
		c.logger.Debug("llm_api_response",
			zap.String("operation", "classify_question"),
			zap.String("model", c.model),
			zap.Int("response_length", len(content)),
			zap.String("response_preview", SanitizeResponse(content, false)),
			zap.String("request_id", requestID),
			zap.Int64("latency_ms", latency.Milliseconds()),
		)
	}

	return parseClassificationResponse(content)
}

// parseClassificationResponse converts the model's raw JSON output into a
// Classification, rejecting anything that does not carry the expected shape.
func parseClassificationResponse(content string) (*Classification, error) {
	var payload struct {
		Category                      string   `json:"category"`
		BriefAnswer                   string   `json:"brief_answer"`
		NeedsProfessionalConsultation bool     `json:"needs_professional_consultation"`
		Reasoning                     string   `json:"reasoning"`
		Confidence                    *float64 `json:"confidence"`
		Complexity                    string   `json:"complexity"`
	}

	raw := strings.TrimSpace(content)
	if raw == "" {
		return nil, fmt.Errorf("empty classification response")
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		// Some models wrap JSON in prose; retry with the outermost object.
		if raw[0] != '{' {
			start := bytes.Index([]byte(raw), []byte("{"))
			end := bytes.LastIndex([]byte(raw), []byte("}"))
			if start != -1 && end != -1 && end > start {
				raw = raw[start : end+1]
			}
		}
		if err := json.Unmarshal([]byte(raw), &payload); err != nil {
			return nil, fmt.Errorf("failed to parse classification response: %w", err)
		}
	}

	if payload.Category == "" {
		return nil, fmt.Errorf("classification response is missing category")
	}
	if payload.Confidence == nil {
		return nil, fmt.Errorf("classification response is missing confidence")
	}

	confidence := *payload.Confidence
	if confidence < 0 {
		confidence = 0
	} else if confidence > 1 {
		confidence = 1
	}

	return &Classification{
		Category:                      payload.Category,
		BriefAnswer:                   payload.BriefAnswer,
		NeedsProfessionalConsultation: payload.NeedsProfessionalConsultation,
		Reasoning:                     payload.Reasoning,
		Confidence:                    confidence,
		Complexity:                    payload.Complexity,
	}, nil
}

// buildClassificationPrompt builds the prompt for question classification
func buildClassificationPrompt(questionText string) string {
	return fmt.Sprintf(`Analizá la siguiente consulta legal y clasificala.

Consulta: "%s"

Respondé con un objeto JSON con este formato exacto:
{
  "category": "Civil" | "Penal" | "Laboral" | "Administrativo" | "Comercial" | "Familia",
  "brief_answer": "una respuesta orientativa breve, en español",
  "needs_professional_consultation": true | false,
  "reasoning": "por qué elegiste esa categoría",
  "confidence": 0.0 a 1.0,
  "complexity": "simple" | "medium" | "complex"
}

Criterios:
- "needs_professional_consultation" debe ser true cuando la consulta requiere
  análisis de documentación, tiene plazos en curso o consecuencias graves.
- "complexity" refleja cuánto trabajo profesional demandaría el caso.
- La respuesta breve es orientativa, nunca asesoramiento definitivo.

Devolvé solamente el JSON.`, questionText)
}

// RegisterOpenAI registers the OpenAI classifier with the registry
func RegisterOpenAI(registry *ClassifierRegistry) {
	registry.Register("openai", func(config map[string]string) (Classifier, error) {
		apiKey := config["api_key"]
		model := config["model"]
		baseURL := config["base_url"]
		if baseURL == "" {
			baseURL = DefaultOpenAIBaseURL
		}
		return NewOpenAIClassifierWithLogger(apiKey, baseURL, model, nil, false)
	})
}
