package validation

import (
	"strings"
	"testing"
)

func TestValidateLegalCategory(t *testing.T) {
	t.Parallel()

	valid := []string{"Civil", "Penal", "Laboral", "Administrativo", "Comercial", "Familia"}
	for _, category := range valid {
		if err := ValidateLegalCategory(category); err != nil {
			t.Errorf("expected %q to be valid, got %v", category, err)
		}
	}

	invalid := []string{"", "civil", "Tributario", "CIVIL", "Civil "}
	for _, category := range invalid {
		err := ValidateLegalCategory(category)
		if err == nil {
			t.Errorf("expected %q to be invalid", category)
			continue
		}
		if !strings.Contains(err.Error(), "invalid category") {
			t.Errorf("unexpected error message for %q: %v", category, err)
		}
	}
}

func TestSanitizeText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "trims surrounding whitespace",
			input: "  hola  ",
			want:  "hola",
		},
		{
			name:  "removes control characters",
			input: "ho\x00la\x07",
			want:  "hola",
		},
		{
			name:  "keeps newlines and tabs",
			input: "línea uno\n\tlínea dos",
			want:  "línea uno\n\tlínea dos",
		},
		{
			name:  "whitespace only collapses to empty",
			input: "   \t  ",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := SanitizeText(tt.input); got != tt.want {
				t.Errorf("SanitizeText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateStructTags(t *testing.T) {
	t.Parallel()

	type payload struct {
		Question string `validate:"required,min=10,max=1000"`
	}

	if err := Validate.Struct(payload{Question: "una consulta suficientemente larga"}); err != nil {
		t.Errorf("expected valid payload, got %v", err)
	}
	if err := Validate.Struct(payload{Question: "corta"}); err == nil {
		t.Error("expected min-length violation")
	}
	if err := Validate.Struct(payload{}); err == nil {
		t.Error("expected required violation")
	}
}
