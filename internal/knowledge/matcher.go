package knowledge

import (
	"strings"
	"unicode/utf8"

	"github.com/legalia/intake-api/internal/models"
)

const (
	// keywordScore is awarded per entry keyword found in the question text
	keywordScore = 2
	// sharedWordScore is awarded per significant question word shared with
	// the entry's own question text
	sharedWordScore = 1
	// minMatchScore is the minimum score for a match to be returned
	minMatchScore = 2
	// minSignificantWordLen filters stopwords out of the shared-word check
	minSignificantWordLen = 3
)

// FindBestMatch scores every knowledge entry in the given category against
// the question text and returns the best-scoring entry, or nil when no entry
// reaches the minimum score. Ties keep the first entry in dataset order, so
// results are deterministic for a given knowledge base.
func (b *Base) FindBestMatch(questionText string, category models.LegalCategory) *models.KnowledgeEntry {
	normalized := strings.ToLower(questionText)
	questionWords := strings.Fields(normalized)

	var best *models.KnowledgeEntry
	bestScore := 0

	entries := b.EntriesFor(category)
	for i := range entries {
		entry := &entries[i]
		score := scoreEntry(entry, normalized, questionWords)
		if score > bestScore {
			best = entry
			bestScore = score
		}
	}

	if bestScore < minMatchScore {
		return nil
	}
	return best
}

// scoreEntry applies the keyword heuristic: 2 points per keyword appearing
// as a substring of the normalized question, 1 point per significant word
// the question shares with the entry's own question text.
func scoreEntry(entry *models.KnowledgeEntry, normalized string, questionWords []string) int {
	score := 0

	for _, keyword := range entry.Keywords {
		if strings.Contains(normalized, strings.ToLower(keyword)) {
			score += keywordScore
		}
	}

	entryWords := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(entry.Question)) {
		entryWords[w] = true
	}
	for _, w := range questionWords {
		if utf8.RuneCountInString(w) > minSignificantWordLen && entryWords[w] {
			score += sharedWordScore
		}
	}

	return score
}
