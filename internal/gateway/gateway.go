package gateway

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/zhukovg/energolog/internal/domain"
	"github.com/zhukovg/energolog/internal/observability"
)

// Gateway appends completed activity batches to the tabular backend.
// Writes are sequential with a mandatory pacing delay between appends:
// the backend has no documented concurrency guarantee and rate-limits
// bursts, so the latency floor of batch finalization (rows × pacing) is
// a design property, not something to parallelize away.
type Gateway struct {
	appender domain.RowAppender
	pacing   time.Duration
}

func New(appender domain.RowAppender, pacing time.Duration) *Gateway {
	return &Gateway{
		appender: appender,
		pacing:   pacing,
	}
}

// AppendBatch serializes each record to a fixed-column row and appends
// them in order. Fail-fast: the first append error aborts the batch and
// is reported; rows already written stay written (the backend has no
// transaction primitive). The gateway never retries. Once started, a
// batch runs to completion or first failure; there is no cancellation
// of the in-flight batch.
func (g *Gateway) AppendBatch(ctx context.Context, date time.Time, activities []domain.ActivityRecord) error {
	if len(activities) == 0 {
		return fmt.Errorf("empty batch: %w", domain.ErrValidation)
	}
	for _, a := range activities {
		if a.Energy == domain.EnergyUnset {
			return fmt.Errorf("activity %q has no energy classification: %w", a.Text, domain.ErrValidation)
		}
	}

	log := observability.LoggerFromContext(ctx).With("rows", len(activities))
	log.Info("appending batch", "date", date.Format("2006-01-02"))

	for i, a := range activities {
		if i > 0 && g.pacing > 0 {
			time.Sleep(g.pacing)
		}
		if err := g.appender.AppendRow(ctx, rowFor(date, a)); err != nil {
			observability.BatchFailures.Inc()
			log.Error("batch failed", "written", i, "error", err)
			return fmt.Errorf("append row %d of %d: %v: %w", i+1, len(activities), err, domain.ErrPersistence)
		}
		observability.RowsAppended.Inc()
	}

	log.Info("batch appended")
	return nil
}

const tagDelimiter = ", "

// rowFor serializes one record to the fixed column layout:
// date, text, energy, roles, skills, summary.
func rowFor(date time.Time, a domain.ActivityRecord) []string {
	return []string{
		date.Format("2006-01-02"),
		a.Text,
		string(a.Energy),
		strings.Join(a.Tags.Roles, tagDelimiter),
		strings.Join(a.Tags.Skills, tagDelimiter),
		a.Summary,
	}
}
