package dialog_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/zhukovg/energolog/internal/adapters/llm"
	"github.com/zhukovg/energolog/internal/adapters/storage/memory"
	"github.com/zhukovg/energolog/internal/app/dialog"
	"github.com/zhukovg/energolog/internal/classify"
	"github.com/zhukovg/energolog/internal/domain"
	"github.com/zhukovg/energolog/internal/gateway"
	"github.com/zhukovg/energolog/internal/scheduler"
	"github.com/zhukovg/energolog/internal/taxonomy"
)

const testUser = domain.UserID("u1")

type fixture struct {
	svc      *dialog.Service
	appender *memory.RowAppender
	sched    *scheduler.Scheduler
	llm      *llm.MockClient
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store, err := taxonomy.Open(filepath.Join(t.TempDir(), "categories.json"))
	if err != nil {
		t.Fatalf("taxonomy.Open failed: %v", err)
	}

	appender := memory.NewRowAppender()
	gw := gateway.New(appender, 0)

	sched := scheduler.New(memory.NewNotifier(), time.UTC, "ping")
	t.Cleanup(sched.Stop)

	mock := llm.NewMockClient()
	analyzer := classify.NewExternal(mock, store, 30)

	svc := dialog.NewService(classify.NewLexical(store), analyzer, gw, sched, time.UTC)
	return &fixture{svc: svc, appender: appender, sched: sched, llm: mock}
}

func (f *fixture) send(t *testing.T, text string) domain.Directive {
	t.Helper()
	return f.svc.HandleMessage(context.Background(), testUser, text)
}

func TestTerminatorWithoutActivities(t *testing.T) {
	f := newFixture(t)

	f.send(t, "закончить")

	if got := f.svc.State(testUser); got != domain.StateCollectingActivity {
		t.Errorf("expected to stay collecting, got %s", got)
	}
	if rows := f.appender.Rows(); len(rows) != 0 {
		t.Errorf("expected no gateway call, got %d rows", len(rows))
	}
}

func TestRecordPersistAndScheduleFlow(t *testing.T) {
	f := newFixture(t)

	d := f.send(t, "Read a book")
	if len(d.Options) == 0 {
		t.Error("expected energy keyboard options")
	}
	if got := f.svc.State(testUser); got != domain.StateClassifyingEnergy {
		t.Fatalf("expected classifying energy, got %s", got)
	}

	f.send(t, "Даёт энергию")
	if got := f.svc.State(testUser); got != domain.StateCollectingActivity {
		t.Fatalf("expected back to collecting, got %s", got)
	}

	// Terminator match is case-insensitive.
	f.send(t, "Закончить")
	if got := f.svc.State(testUser); got != domain.StateConfiguringReminder {
		t.Fatalf("expected configuring reminder, got %s", got)
	}

	rows := f.appender.Rows()
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	today := time.Now().UTC().Format("2006-01-02")
	if rows[0][0] != today || rows[0][1] != "Read a book" || rows[0][2] != "positive" {
		t.Errorf("unexpected row: %v", rows[0])
	}

	// Malformed times re-prompt without a transition.
	for _, bad := range []string{"9:00", "24:00", "12:60", "9.00"} {
		f.send(t, bad)
		if got := f.svc.State(testUser); got != domain.StateConfiguringReminder {
			t.Fatalf("time %q: expected to stay configuring, got %s", bad, got)
		}
	}

	f.send(t, "09:00")
	if got := f.svc.State(testUser); got != domain.StateDone {
		t.Fatalf("expected done, got %s", got)
	}
	at, ok := f.sched.Active(testUser)
	if !ok {
		t.Fatal("expected a live reminder")
	}
	if at.Hour != 9 || at.Minute != 0 {
		t.Errorf("expected 09:00 reminder, got %02d:%02d", at.Hour, at.Minute)
	}
}

func TestUnrecognizedEnergyLabelReprompts(t *testing.T) {
	f := newFixture(t)

	f.send(t, "читал книгу")
	f.send(t, "фиолетово")

	if got := f.svc.State(testUser); got != domain.StateClassifyingEnergy {
		t.Fatalf("expected to stay classifying, got %s", got)
	}

	// A recognized free-form variant still works afterwards.
	f.send(t, "скорее забирает")
	if got := f.svc.State(testUser); got != domain.StateCollectingActivity {
		t.Fatalf("expected collecting, got %s", got)
	}

	f.send(t, "закончить")
	rows := f.appender.Rows()
	if len(rows) != 1 || rows[0][2] != "negative" {
		t.Fatalf("expected one negative row, got %v", rows)
	}
}

func TestCancelDiscardsWithoutPersisting(t *testing.T) {
	f := newFixture(t)

	f.send(t, "читал книгу")
	f.send(t, "1")
	f.send(t, "cancel")

	if got := f.svc.State(testUser); got != domain.StateCancelled {
		t.Fatalf("expected cancelled, got %s", got)
	}
	if rows := f.appender.Rows(); len(rows) != 0 {
		t.Errorf("expected nothing persisted, got %d rows", len(rows))
	}
}

func TestPersistenceFailureClearsBatchAndDoesNotRetry(t *testing.T) {
	f := newFixture(t)
	f.appender.FailAfter = 1

	for _, step := range []string{"первая", "2", "вторая", "-1", "третья", "0"} {
		f.send(t, step)
	}

	f.send(t, "закончить")

	if got := f.svc.State(testUser); got != domain.StateCancelled {
		t.Fatalf("expected cancelled after failed batch, got %s", got)
	}
	// Fail-fast: only the row before the failure was written.
	if rows := f.appender.Rows(); len(rows) != 1 {
		t.Fatalf("expected 1 written row, got %d", len(rows))
	}

	// Activities are cleared: a fresh terminator has nothing to retry.
	f.send(t, "start")
	f.send(t, "закончить")
	if got := f.svc.State(testUser); got != domain.StateCollectingActivity {
		t.Fatalf("expected empty-batch re-prompt, got %s", got)
	}
	if rows := f.appender.Rows(); len(rows) != 1 {
		t.Errorf("expected no retry, got %d rows", len(rows))
	}
}

func TestSetTimeCommandReconfiguresReminder(t *testing.T) {
	f := newFixture(t)

	f.send(t, "settime")
	if got := f.svc.State(testUser); got != domain.StateConfiguringReminder {
		t.Fatalf("expected configuring, got %s", got)
	}
	f.send(t, "08:00")

	f.send(t, "/changetime")
	f.send(t, "21:45")

	at, ok := f.sched.Active(testUser)
	if !ok {
		t.Fatal("expected a live reminder")
	}
	if at.Hour != 21 || at.Minute != 45 {
		t.Errorf("expected the second time to win, got %02d:%02d", at.Hour, at.Minute)
	}
}

func TestTranscriptFlowConfirm(t *testing.T) {
	f := newFixture(t)

	f.send(t, "analyze")

	// Below the minimum length: rejected, transcript still expected.
	f.send(t, "мало текста")
	if got := f.svc.State(testUser); got != domain.StateCollectingActivity {
		t.Fatalf("short transcript must not change state, got %s", got)
	}

	d := f.send(t, "Утром был созвон с командой, потом разбирал бэклог, вечером читал книгу про Go.")
	if got := f.svc.State(testUser); got != domain.StateReviewingBatch {
		t.Fatalf("expected reviewing, got %s", got)
	}
	if len(d.Options) != 2 {
		t.Errorf("expected yes/no options, got %v", d.Options)
	}

	f.send(t, "Да")
	if got := f.svc.State(testUser); got != domain.StateConfiguringReminder {
		t.Fatalf("expected configuring after confirm, got %s", got)
	}

	// The default mock reply parses into three tagged lines, all
	// neutral.
	rows := f.appender.Rows()
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	for _, row := range rows {
		if row[2] != "neutral" {
			t.Errorf("expected neutral energy, got %v", row)
		}
	}
}

func TestTranscriptFlowReject(t *testing.T) {
	f := newFixture(t)

	f.send(t, "analyze")
	f.send(t, "Утром был созвон с командой, потом разбирал бэклог, вечером читал книгу про Go.")
	f.send(t, "Нет")

	if got := f.svc.State(testUser); got != domain.StateCollectingActivity {
		t.Fatalf("expected manual entry after reject, got %s", got)
	}
	if rows := f.appender.Rows(); len(rows) != 0 {
		t.Errorf("expected nothing persisted, got %d rows", len(rows))
	}
}
