package classify

import (
	"strings"

	"github.com/zhukovg/energolog/internal/domain"
	"github.com/zhukovg/energolog/internal/observability"
	"github.com/zhukovg/energolog/internal/taxonomy"
)

// Lexical tags an activity by case-insensitive substring matching of
// every taxonomy tag against the text. It never fails and makes no
// external calls.
type Lexical struct {
	store *taxonomy.Store
}

func NewLexical(store *taxonomy.Store) *Lexical {
	return &Lexical{store: store}
}

// Classify implements domain.Classifier. Matches preserve taxonomy
// traversal order.
func (l *Lexical) Classify(text string) domain.Tags {
	lower := strings.ToLower(text)

	tags := domain.Tags{
		Roles:  matchTags(lower, l.store.RoleTags()),
		Skills: matchTags(lower, l.store.SkillTags()),
	}
	observability.ClassifierCalls.WithLabelValues("lexical", "ok").Inc()
	return tags
}

func matchTags(lowerText string, candidates []string) []string {
	var out []string
	for _, tag := range candidates {
		if tag == "" {
			continue
		}
		if strings.Contains(lowerText, strings.ToLower(tag)) {
			out = append(out, tag)
		}
	}
	return out
}
