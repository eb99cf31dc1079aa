package dialog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zhukovg/energolog/internal/classify"
	"github.com/zhukovg/energolog/internal/domain"
	"github.com/zhukovg/energolog/internal/gateway"
	"github.com/zhukovg/energolog/internal/observability"
	"github.com/zhukovg/energolog/internal/scheduler"
)

// terminator ends activity collection (case-insensitive).
const terminator = "закончить"

// Service is the dialog controller: the finite-state machine that turns
// inbound chat events into session mutations, persistence calls,
// scheduler calls and exactly one outbound directive per event.
//
// Sessions live in an owned table keyed by user identity; nothing else
// touches them. A per-session lock makes transitions non-reentrant for
// a single user: the next inbound message blocks until the previous
// transition's side effects (including the paced persistence batch)
// have finished.
type Service struct {
	classifier domain.Classifier
	analyzer   *classify.External // nil when the transcript path is not configured
	gateway    *gateway.Gateway
	scheduler  *scheduler.Scheduler
	loc        *time.Location
	now        func() time.Time

	mu       sync.Mutex
	sessions map[domain.UserID]*session
}

type session struct {
	mu sync.Mutex
	domain.Session

	// pending holds transcript-parsed records awaiting the user's
	// review answer.
	pending []domain.ActivityRecord

	// awaitingTranscript marks that the next free-text message is a
	// transcript for the analyze entry, whatever the dialog state is.
	awaitingTranscript bool
}

func NewService(
	classifier domain.Classifier,
	analyzer *classify.External,
	gw *gateway.Gateway,
	sched *scheduler.Scheduler,
	loc *time.Location,
) *Service {
	return &Service{
		classifier: classifier,
		analyzer:   analyzer,
		gateway:    gw,
		scheduler:  sched,
		loc:        loc,
		now:        time.Now,
		sessions:   make(map[domain.UserID]*session),
	}
}

// HandleMessage processes one inbound event and returns the single
// outbound directive acknowledging it.
func (s *Service) HandleMessage(ctx context.Context, user domain.UserID, text string) domain.Directive {
	ctx = observability.WithUserID(ctx, string(user))

	sess := s.session(user)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	text = strings.TrimSpace(text)

	switch parseCommand(text) {
	case cmdStart:
		sess.reset(domain.StateCollectingActivity)
		return s.reply(user, msgGreeting, nil)
	case cmdSetTime:
		sess.awaitingTranscript = false
		sess.State = domain.StateConfiguringReminder
		return s.reply(user, msgAskTime, nil)
	case cmdCancel:
		sess.reset(domain.StateCancelled)
		observability.LoggerFromContext(ctx).Info("dialog cancelled")
		return s.reply(user, msgCancelled, nil)
	case cmdAnalyze:
		if s.analyzer == nil {
			return s.reply(user, msgAnalyzeUnavailable, nil)
		}
		sess.awaitingTranscript = true
		return s.reply(user, msgAskTranscript, nil)
	}

	if sess.awaitingTranscript {
		return s.handleTranscript(ctx, sess, text)
	}

	switch sess.State {
	case domain.StateCollectingActivity:
		return s.handleCollecting(ctx, sess, text)
	case domain.StateClassifyingEnergy:
		return s.handleEnergy(ctx, sess, text)
	case domain.StateConfiguringReminder:
		return s.handleConfiguring(ctx, sess, text)
	case domain.StateReviewingBatch:
		return s.handleReview(ctx, sess, text)
	default:
		return s.reply(user, msgIdle, nil)
	}
}

// State reports the current dialog state for a user. New users start in
// CollectingActivity.
func (s *Service) State(user domain.UserID) domain.DialogState {
	sess := s.session(user)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.Session.State
}

func (s *Service) handleCollecting(ctx context.Context, sess *session, text string) domain.Directive {
	if strings.EqualFold(text, terminator) {
		if len(sess.Activities) == 0 {
			// Error recovery, not a transition: stay collecting.
			return s.reply(sess.UserID, msgNoActivities, nil)
		}
		return s.finalize(ctx, sess, sess.Activities)
	}

	tags := s.classifier.Classify(text)
	sess.Draft = &domain.ActivityRecord{
		ID:   uuid.NewString(),
		Text: text,
		Tags: tags,
	}
	sess.State = domain.StateClassifyingEnergy
	return s.reply(sess.UserID, msgEnergyQuestion, energyOptions)
}

func (s *Service) handleEnergy(ctx context.Context, sess *session, text string) domain.Directive {
	status, ok := parseEnergy(text)
	if !ok {
		// Unrecognized label: re-prompt, state does not change.
		return s.reply(sess.UserID, msgEnergyUnrecognized, energyOptions)
	}

	sess.Draft.Energy = status
	sess.Activities = append(sess.Activities, *sess.Draft)
	sess.Draft = nil
	sess.State = domain.StateCollectingActivity

	observability.LoggerFromContext(ctx).Info("activity recorded",
		"energy", string(status), "total", len(sess.Activities))
	return s.reply(sess.UserID, msgRecorded, nil)
}

func (s *Service) handleConfiguring(ctx context.Context, sess *session, text string) domain.Directive {
	t, err := parseTimeOfDay(text)
	if err != nil {
		return s.reply(sess.UserID, msgBadTime, nil)
	}

	sess.State = domain.StateDone
	if _, err := s.scheduler.Schedule(sess.UserID, t); err != nil {
		// The batch is already persisted; reminder failure is reported
		// separately and never invalidates it.
		observability.LoggerFromContext(ctx).Error("reminder registration failed",
			"error", fmt.Errorf("%v: %w", err, domain.ErrScheduler))
		return s.reply(sess.UserID, msgReminderFailed, nil)
	}
	sess.ReminderTime = &t
	return s.reply(sess.UserID, fmt.Sprintf(msgReminderSet, t.Hour, t.Minute), nil)
}

func (s *Service) handleTranscript(ctx context.Context, sess *session, text string) domain.Directive {
	records, err := s.analyzer.AnalyzeTranscript(ctx, text)
	if errors.Is(err, domain.ErrValidation) {
		// Too short to be a transcript; state stays as it was.
		return s.reply(sess.UserID, msgTranscriptShort, nil)
	}
	if err != nil {
		// Recoverable: fall back to manual entry.
		sess.awaitingTranscript = false
		sess.State = domain.StateCollectingActivity
		return s.reply(sess.UserID, msgAnalysisFailed, nil)
	}

	sess.awaitingTranscript = false
	sess.pending = records
	sess.State = domain.StateReviewingBatch
	return s.reply(sess.UserID, buildReviewPrompt(records), yesNoOptions)
}

func (s *Service) handleReview(ctx context.Context, sess *session, text string) domain.Directive {
	switch {
	case isAffirmative(text):
		return s.finalize(ctx, sess, sess.pending)
	case isNegative(text):
		sess.pending = nil
		sess.State = domain.StateCollectingActivity
		return s.reply(sess.UserID, msgReviewRejected, nil)
	default:
		return s.reply(sess.UserID, msgReviewAgain, yesNoOptions)
	}
}

// finalize hands a completed batch to the persistence gateway. The
// session's accumulated records are cleared either way: a failed batch
// is never retried on the next terminator.
func (s *Service) finalize(ctx context.Context, sess *session, batch []domain.ActivityRecord) domain.Directive {
	err := s.gateway.AppendBatch(ctx, s.now().In(s.loc), batch)

	sess.Activities = nil
	sess.Draft = nil
	sess.pending = nil

	if err != nil {
		sess.State = domain.StateCancelled
		observability.LoggerFromContext(ctx).Error("batch persistence failed", "error", err)
		return s.reply(sess.UserID, msgSaveFailed, nil)
	}

	sess.State = domain.StateConfiguringReminder
	return s.reply(sess.UserID, msgSaved, nil)
}

func (s *Service) session(user domain.UserID) *session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[user]
	if !ok {
		sess = &session{Session: domain.Session{
			UserID: user,
			State:  domain.StateCollectingActivity,
		}}
		s.sessions[user] = sess
	}
	return sess
}

func (s *Service) reply(user domain.UserID, text string, options []string) domain.Directive {
	return domain.Directive{UserID: user, Text: text, Options: options}
}

// reset clears working memory and moves the session to state. The
// reminder handle is not touched: cancelling a dialog does not cancel
// an already-configured reminder.
func (sess *session) reset(state domain.DialogState) {
	sess.State = state
	sess.Activities = nil
	sess.Draft = nil
	sess.pending = nil
	sess.awaitingTranscript = false
}

type command int

const (
	cmdNone command = iota
	cmdStart
	cmdSetTime
	cmdCancel
	cmdAnalyze
)

// parseCommand recognizes the command surface: start, settime /
// changetime, cancel, analyze. A leading slash is accepted for
// transports that use one.
func parseCommand(text string) command {
	t := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(text), "/"))
	switch t {
	case "start":
		return cmdStart
	case "settime", "changetime":
		return cmdSetTime
	case "cancel":
		return cmdCancel
	case "analyze":
		return cmdAnalyze
	default:
		return cmdNone
	}
}

func isAffirmative(text string) bool {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "да", "yes", "ок", "ok", "сохранить", "сохранить записи":
		return true
	}
	return false
}

func isNegative(text string) bool {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "нет", "no", "не сохранять":
		return true
	}
	return false
}
