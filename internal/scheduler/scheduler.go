package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/zhukovg/energolog/internal/domain"
	"github.com/zhukovg/energolog/internal/observability"
)

// Scheduler owns, per user, zero or one recurring daily reminder timer.
// Schedule retires any existing handle for the user before registering
// the replacement; call sites do not have to remember to cancel first.
type Scheduler struct {
	notifier domain.Notifier
	loc      *time.Location
	message  string
	now      func() time.Time

	mu        sync.Mutex
	reminders map[domain.UserID]*Reminder
}

// Reminder is the opaque handle for one user's live daily timer.
type Reminder struct {
	user  domain.UserID
	at    domain.TimeOfDay
	timer *time.Timer
}

// At reports the configured wall-clock time of this reminder.
func (r *Reminder) At() domain.TimeOfDay {
	return r.at
}

func New(notifier domain.Notifier, loc *time.Location, message string) *Scheduler {
	return &Scheduler{
		notifier:  notifier,
		loc:       loc,
		message:   message,
		now:       time.Now,
		reminders: make(map[domain.UserID]*Reminder),
	}
}

// Schedule registers a daily reminder for user at t in the reference
// time zone, replacing any existing reminder for that user.
func (s *Scheduler) Schedule(user domain.UserID, t domain.TimeOfDay) (*Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.reminders[user]; ok {
		old.timer.Stop()
		delete(s.reminders, user)
	}

	r := &Reminder{user: user, at: t}
	r.timer = time.AfterFunc(s.untilNextFire(t), func() { s.fire(user) })
	s.reminders[user] = r

	observability.Logger().Info("reminder scheduled",
		"user_id", string(user), "hour", t.Hour, "minute", t.Minute)
	return r, nil
}

// Cancel stops a reminder. It is a no-op if the handle was already
// replaced or cancelled.
func (s *Scheduler) Cancel(r *Reminder) {
	if r == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	r.timer.Stop()
	if current, ok := s.reminders[r.user]; ok && current == r {
		delete(s.reminders, r.user)
	}
}

// Active returns the configured time for the user's live reminder, if
// any.
func (s *Scheduler) Active(user domain.UserID) (domain.TimeOfDay, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.reminders[user]
	if !ok {
		return domain.TimeOfDay{}, false
	}
	return r.at, true
}

// Stop cancels every live reminder.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for user, r := range s.reminders {
		r.timer.Stop()
		delete(s.reminders, user)
	}
}

// fire dispatches the notification and re-arms the timer for the next
// day. Firing is independent of any open dialog for the same user.
func (s *Scheduler) fire(user domain.UserID) {
	s.mu.Lock()
	r, ok := s.reminders[user]
	if ok {
		r.timer.Reset(s.untilNextFire(r.at))
	}
	s.mu.Unlock()
	if !ok {
		return
	}

	observability.RemindersFired.Inc()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.notifier.Send(ctx, user, s.message); err != nil {
		observability.Logger().Error("reminder delivery failed",
			"user_id", string(user), "error", err)
	}
}

// untilNextFire computes the duration until the next occurrence of t in
// the reference zone. An instant not strictly in the future rolls
// forward by one day.
func (s *Scheduler) untilNextFire(t domain.TimeOfDay) time.Duration {
	now := s.now().In(s.loc)
	return nextFire(now, t).Sub(now)
}

func nextFire(now time.Time, t domain.TimeOfDay) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), t.Hour, t.Minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
