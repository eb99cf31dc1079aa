package classify_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/zhukovg/energolog/internal/adapters/llm"
	"github.com/zhukovg/energolog/internal/classify"
	"github.com/zhukovg/energolog/internal/domain"
	"github.com/zhukovg/energolog/internal/taxonomy"
)

const longTranscript = "Утром был созвон с командой, обсуждали планы на спринт. " +
	"Потом два часа разбирал бэклог и писал заметки. Вечером читал книгу про распределённые системы."

func TestAnalyzeTranscriptRejectsShortText(t *testing.T) {
	store := newTestStore(t)
	e := classify.NewExternal(llm.NewMockClient(), store, 50)

	_, err := e.AnalyzeTranscript(context.Background(), "коротко")
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestAnalyzeTranscriptWrapsCompletionFailure(t *testing.T) {
	store := newTestStore(t)
	client := llm.NewMockClient()
	client.Err = errors.New("upstream down")

	e := classify.NewExternal(client, store, 10)

	_, err := e.AnalyzeTranscript(context.Background(), longTranscript)
	if !errors.Is(err, domain.ErrClassification) {
		t.Fatalf("expected ErrClassification, got %v", err)
	}
}

func TestAnalyzeTranscriptRejectsUnparseableReply(t *testing.T) {
	store := newTestStore(t)
	client := llm.NewMockClient()
	client.Reply = "Просто текст без единой секции и тегов."

	e := classify.NewExternal(client, store, 10)

	_, err := e.AnalyzeTranscript(context.Background(), longTranscript)
	if !errors.Is(err, domain.ErrClassification) {
		t.Fatalf("expected ErrClassification, got %v", err)
	}
}

func TestAnalyzeTranscriptParsesTaggedLines(t *testing.T) {
	store := newTestStore(t)
	store.AddGroupTag(taxonomy.CategorySkills, "Базовые", "чтение")

	client := llm.NewMockClient()
	client.Reply = strings.Join([]string{
		"1. Хронология",
		"[инженер] [чтение] читал документацию | два часа вечером",
		"",
		"2. Мета-анализ",
		"День прошёл спокойно.",
	}, "\n")

	e := classify.NewExternal(client, store, 10)

	records, err := e.AnalyzeTranscript(context.Background(), longTranscript)
	if err != nil {
		t.Fatalf("AnalyzeTranscript failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	r := records[0]
	if r.Text != "читал документацию" {
		t.Errorf("unexpected text: %q", r.Text)
	}
	if r.Summary != "два часа вечером" {
		t.Errorf("unexpected summary: %q", r.Summary)
	}
	if r.Energy != domain.EnergyNeutral {
		t.Errorf("expected energy to default to neutral, got %q", r.Energy)
	}
	if len(r.Tags.Roles) != 1 || r.Tags.Roles[0] != "инженер" {
		t.Errorf("unexpected roles: %v", r.Tags.Roles)
	}
	if len(r.Tags.Skills) != 1 || r.Tags.Skills[0] != "чтение" {
		t.Errorf("unexpected skills: %v", r.Tags.Skills)
	}
}
