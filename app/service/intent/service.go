package intent

import (
	"strings"

	"festbot/app/util/textnorm"

	"github.com/samber/do"
)

// Service classifies free-text utterances into intent tags using two
// ordered rule tables. The tables are built once and never mutated.
type Service struct {
	base  []Rule
	rules []Rule
}

func New(_ *do.Injector) (*Service, error) {
	return &Service{
		base:  baseRules(),
		rules: defaultRules(),
	}, nil
}

// Classify is total: every string, including the empty one, yields
// exactly one tag.
func (s *Service) Classify(utterance string) Tag {
	folded := textnorm.Normalize(utterance)
	tokenCount := len(strings.Fields(folded))

	if tag := match(s.base, folded, tokenCount); tag != TagGeneric {
		return tag
	}

	return match(s.rules, folded, tokenCount)
}

func match(rules []Rule, folded string, tokenCount int) Tag {
	for _, rule := range rules {
		if rule.MaxTokens > 0 && tokenCount > rule.MaxTokens {
			continue
		}

		for _, keyword := range rule.Keywords {
			if containsPhrase(folded, keyword) {
				return rule.Tag
			}
		}
	}

	return TagGeneric
}

// containsPhrase matches keyword as a whole-word phrase, so "confirmo"
// does not fire on "confirmou".
func containsPhrase(folded, keyword string) bool {
	return strings.Contains(" "+folded+" ", " "+keyword+" ")
}
