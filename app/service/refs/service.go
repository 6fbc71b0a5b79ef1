package refs

import (
	"strings"

	"festbot/app/util/textnorm"

	"github.com/samber/do"
)

// Service resolves ordinal references ("a 3ª", "e da 2") against the
// venue list most recently shown to the user, rewriting the utterance
// into a self-contained query for the search/LLM path.
type Service struct{}

func New(_ *do.Injector) (*Service, error) {
	return &Service{}, nil
}

// Resolve returns the effective query for an utterance. When no referent
// can be resolved (empty list, no ordinal, index out of range) the
// utterance passes through unchanged.
func (s *Service) Resolve(utterance string, lastShown []string) string {
	if len(lastShown) == 0 {
		return utterance
	}

	folded := textnorm.Normalize(utterance)
	if folded == "" {
		return utterance
	}

	index, ok := findReference(folded)
	if !ok || index >= len(lastShown) {
		return utterance
	}

	venue := lastShown[index]

	if attribute, ok := findAttribute(folded); ok {
		return attribute + " de " + venue
	}

	return "informações sobre " + venue
}

func findReference(folded string) (int, bool) {
	for _, pattern := range refPatterns {
		for _, match := range pattern.FindAllStringSubmatch(folded, -1) {
			if index, ok := ordinalIndex[match[1]]; ok {
				return index, true
			}
		}
	}

	return 0, false
}

func findAttribute(folded string) (string, bool) {
	padded := " " + folded + " "

	for _, entry := range attributeWords {
		for _, keyword := range entry.keywords {
			if strings.Contains(padded, " "+keyword+" ") {
				return entry.attribute, true
			}
		}
	}

	return "", false
}
