package models

// LegalCategory represents the area of law a question belongs to
type LegalCategory string

const (
	CategoryCivil          LegalCategory = "Civil"
	CategoryPenal          LegalCategory = "Penal"
	CategoryLabor          LegalCategory = "Laboral"
	CategoryAdministrative LegalCategory = "Administrativo"
	CategoryCommercial     LegalCategory = "Comercial"
	CategoryFamily         LegalCategory = "Familia"
)

// Categories lists every valid legal category in a fixed order.
// The order is part of the public API (category listing, detector priority).
var Categories = []LegalCategory{
	CategoryCivil,
	CategoryPenal,
	CategoryLabor,
	CategoryAdministrative,
	CategoryCommercial,
	CategoryFamily,
}

// IsValid reports whether c is one of the closed category enumeration.
func (c LegalCategory) IsValid() bool {
	switch c {
	case CategoryCivil, CategoryPenal, CategoryLabor, CategoryAdministrative, CategoryCommercial, CategoryFamily:
		return true
	default:
		return false
	}
}

// AnswerSource indicates where a triage answer came from
type AnswerSource string

const (
	AnswerSourceCurated   AnswerSource = "curated"
	AnswerSourceGenerated AnswerSource = "generated"
)

// Complexity represents the classifier's estimate of how involved a question is
type Complexity string

const (
	ComplexitySimple  Complexity = "simple"
	ComplexityMedium  Complexity = "medium"
	ComplexityComplex Complexity = "complex"
)

// IsValid reports whether c is a known complexity level.
func (c Complexity) IsValid() bool {
	switch c {
	case ComplexitySimple, ComplexityMedium, ComplexityComplex:
		return true
	default:
		return false
	}
}

// KnowledgeEntry is a curated question/answer pair in the knowledge base.
// Entries are immutable after load.
type KnowledgeEntry struct {
	ID       string        `json:"id" yaml:"id"`
	Category LegalCategory `json:"category" yaml:"category"`
	Question string        `json:"question" yaml:"question"`
	Answer   string        `json:"answer" yaml:"answer"`
	Keywords []string      `json:"keywords" yaml:"keywords"`
}

// TriageResult is the composed outcome of classifying and answering a question
type TriageResult struct {
	Category        LegalCategory `json:"category"`
	AnswerText      string        `json:"answer_text"`
	Source          AnswerSource  `json:"source"`
	NeedsEscalation bool          `json:"needs_escalation"`
	Confidence      float64       `json:"confidence"`
	Complexity      Complexity    `json:"complexity"`
	Reasoning       string        `json:"reasoning"`
}
