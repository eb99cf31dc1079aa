package classify

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/zhukovg/energolog/internal/domain"
	"github.com/zhukovg/energolog/internal/observability"
	"github.com/zhukovg/energolog/internal/taxonomy"
)

// External sends the taxonomy plus a transcript to a text-completion
// service and parses the structured reply into activity records.
type External struct {
	llm    domain.CompletionClient
	store  *taxonomy.Store
	minLen int
}

func NewExternal(llm domain.CompletionClient, store *taxonomy.Store, minTranscriptChars int) *External {
	return &External{
		llm:    llm,
		store:  store,
		minLen: minTranscriptChars,
	}
}

// AnalyzeTranscript classifies a whole transcript in one external call.
// Records come back with energy defaulted to Neutral; the user reviews
// them before anything is persisted.
func (e *External) AnalyzeTranscript(ctx context.Context, transcript string) ([]domain.ActivityRecord, error) {
	if utf8.RuneCountInString(strings.TrimSpace(transcript)) < e.minLen {
		return nil, fmt.Errorf("transcript shorter than %d characters: %w", e.minLen, domain.ErrValidation)
	}

	log := observability.LoggerFromContext(ctx)

	prompt := buildAnalysisPrompt(e.store.Snapshot(), transcript)
	reply, err := e.llm.Complete(ctx, systemPrompt, prompt)
	if err != nil {
		observability.ClassifierCalls.WithLabelValues("external", "error").Inc()
		log.Error("completion call failed", "error", err)
		return nil, fmt.Errorf("completion call: %v: %w", err, domain.ErrClassification)
	}

	records := parseReply(reply, toSet(e.store.SkillTags()))
	if len(records) == 0 {
		observability.ClassifierCalls.WithLabelValues("external", "unparseable").Inc()
		log.Error("completion reply had no parseable sections")
		return nil, fmt.Errorf("no parseable sections in reply: %w", domain.ErrClassification)
	}

	observability.ClassifierCalls.WithLabelValues("external", "ok").Inc()
	log.Info("transcript analyzed", "records", len(records))
	return records, nil
}

var bracketRe = regexp.MustCompile(`\[([^\[\]]+)\]`)

// parseReply scans the multi-section reply for tagged activity lines of
// the form "[тег] [тег] действие | подробности". Lines without bracketed
// tokens are section headers or prose and are skipped. Tokens present in
// the skills taxonomy land in Skills, everything else in Roles.
func parseReply(reply string, skillSet map[string]struct{}) []domain.ActivityRecord {
	var records []domain.ActivityRecord

	for _, line := range strings.Split(reply, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		matches := bracketRe.FindAllStringSubmatch(line, -1)
		if len(matches) == 0 {
			continue
		}

		var tags []string
		for _, m := range matches {
			tag := strings.TrimSpace(m[1])
			if tag != "" {
				tags = append(tags, tag)
			}
		}

		rest := strings.TrimSpace(bracketRe.ReplaceAllString(line, ""))
		rest = strings.TrimLeft(rest, "-•* \t")

		text := rest
		summary := ""
		if idx := strings.Index(rest, "|"); idx >= 0 {
			text = strings.TrimSpace(rest[:idx])
			summary = strings.TrimSpace(rest[idx+1:])
		}
		if text == "" && len(tags) == 0 {
			continue
		}
		if text == "" {
			text = strings.Join(tags, " ")
		}

		records = append(records, domain.ActivityRecord{
			ID:      uuid.NewString(),
			Text:    text,
			Energy:  domain.EnergyNeutral,
			Tags:    splitTags(tags, skillSet),
			Summary: summary,
		})
	}

	return records
}

func splitTags(tags []string, skillSet map[string]struct{}) domain.Tags {
	var out domain.Tags
	for _, tag := range tags {
		if _, ok := skillSet[strings.ToLower(tag)]; ok {
			out.Skills = append(out.Skills, tag)
		} else {
			out.Roles = append(out.Roles, tag)
		}
	}
	return out
}

func toSet(tags []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		set[strings.ToLower(t)] = struct{}{}
	}
	return set
}
