// Package knowledge holds the curated legal question/answer dataset and the
// keyword heuristics that match free-text questions against it.
package knowledge

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/legalia/intake-api/internal/models"
	"github.com/legalia/intake-api/internal/validation"
	"gopkg.in/yaml.v3"
)

//go:embed data/entries.yaml
var defaultDataset []byte

// dataset is the on-disk shape of the knowledge file.
type dataset struct {
	Version int                     `yaml:"version"`
	Entries []models.KnowledgeEntry `yaml:"entries"`
}

// Base is the in-memory knowledge base. It is populated once at startup and
// read-only afterwards, so it is safe to share across concurrent requests
// without synchronization.
type Base struct {
	byCategory map[models.LegalCategory][]models.KnowledgeEntry
	total      int
	version    int
}

// Load builds a Base from the YAML dataset at path. An empty path loads the
// embedded default dataset.
func Load(path string) (*Base, error) {
	data := defaultDataset
	if path != "" {
		fileData, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read knowledge base file: %w", err)
		}
		data = fileData
	}
	return Parse(data)
}

// Parse builds a Base from raw YAML, validating every entry.
func Parse(data []byte) (*Base, error) {
	var ds dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("failed to parse knowledge base: %w", err)
	}
	if len(ds.Entries) == 0 {
		return nil, fmt.Errorf("knowledge base contains no entries")
	}

	base := &Base{
		byCategory: make(map[models.LegalCategory][]models.KnowledgeEntry),
		version:    ds.Version,
	}

	seen := make(map[string]bool)
	for i, entry := range ds.Entries {
		if err := validateEntry(entry); err != nil {
			return nil, fmt.Errorf("knowledge entry %d (%s): %w", i, entry.ID, err)
		}
		key := string(entry.Category) + "/" + entry.ID
		if seen[key] {
			return nil, fmt.Errorf("knowledge entry %d: duplicate id %q in category %s", i, entry.ID, entry.Category)
		}
		seen[key] = true
		base.byCategory[entry.Category] = append(base.byCategory[entry.Category], entry)
		base.total++
	}

	return base, nil
}

func validateEntry(entry models.KnowledgeEntry) error {
	if entry.ID == "" {
		return fmt.Errorf("missing id")
	}
	if err := validation.ValidateLegalCategory(string(entry.Category)); err != nil {
		return err
	}
	if strings.TrimSpace(entry.Question) == "" {
		return fmt.Errorf("missing question")
	}
	if strings.TrimSpace(entry.Answer) == "" {
		return fmt.Errorf("missing answer")
	}
	if len(entry.Keywords) == 0 {
		return fmt.Errorf("at least one keyword is required")
	}
	for _, kw := range entry.Keywords {
		if strings.TrimSpace(kw) == "" {
			return fmt.Errorf("empty keyword")
		}
	}
	return nil
}

// EntriesFor returns the entries for a category in dataset order. The
// returned slice must not be mutated.
func (b *Base) EntriesFor(category models.LegalCategory) []models.KnowledgeEntry {
	return b.byCategory[category]
}

// Size returns the total number of entries across all categories.
func (b *Base) Size() int {
	return b.total
}

// CountFor returns the number of entries stored for a category.
func (b *Base) CountFor(category models.LegalCategory) int {
	return len(b.byCategory[category])
}

// Version returns the dataset version declared in the source file.
func (b *Base) Version() int {
	return b.version
}
