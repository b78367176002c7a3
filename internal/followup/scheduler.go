// Package followup sends the delayed follow-up DM of the greeting funnel.
package followup

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mad2moi/telegram-bot/internal/logger"
	"github.com/mad2moi/telegram-bot/internal/storage"
)

// DeliverFunc sends one follow-up.
type DeliverFunc func(ctx context.Context, f storage.FollowUp) error

type job struct {
	timer *time.Timer
	seq   uint64
}

// Scheduler runs at most one pending follow-up per user. Jobs are stored so
// they can be restored after a restart.
type Scheduler struct {
	store   storage.Store
	deliver DeliverFunc
	now     func() time.Time

	// storeMu orders store writes with arming, so a finished delivery never
	// removes the row of a job scheduled meanwhile.
	storeMu sync.Mutex

	mu      sync.Mutex
	ctx     context.Context
	jobs    map[int64]job
	seq     uint64
	stopped bool
}

// New creates a scheduler. Deliveries use context.Background until Restore
// provides the run context.
func New(store storage.Store, deliver DeliverFunc) *Scheduler {
	return &Scheduler{
		store:   store,
		deliver: deliver,
		now:     time.Now,
		ctx:     context.Background(),
		jobs:    make(map[int64]job),
	}
}

// Name returns the job name of a user's follow-up.
func Name(userID int64) string {
	return fmt.Sprintf("followup_%d", userID)
}

// Schedule stores f and arms its timer, replacing any pending follow-up of the same user.
func (s *Scheduler) Schedule(ctx context.Context, f storage.FollowUp) error {
	s.storeMu.Lock()
	defer s.storeMu.Unlock()

	if err := s.store.SaveFollowUp(ctx, f); err != nil {
		return fmt.Errorf("schedule %s: %w", Name(f.UserID), err)
	}
	s.arm(f)
	return nil
}

// Cancel drops the pending follow-up of userID, if any.
func (s *Scheduler) Cancel(ctx context.Context, userID int64) error {
	s.storeMu.Lock()
	defer s.storeMu.Unlock()

	s.mu.Lock()
	if j, ok := s.jobs[userID]; ok {
		j.timer.Stop()
		delete(s.jobs, userID)
	}
	s.mu.Unlock()

	if err := s.store.DeleteFollowUp(ctx, userID); err != nil {
		return fmt.Errorf("cancel %s: %w", Name(userID), err)
	}
	return nil
}

// Restore arms the stored follow-ups; overdue ones fire right away.
// ctx is used for every later delivery.
func (s *Scheduler) Restore(ctx context.Context) (int, error) {
	s.mu.Lock()
	s.ctx = ctx
	s.mu.Unlock()

	pending, err := s.store.PendingFollowUps(ctx)
	if err != nil {
		return 0, fmt.Errorf("restore follow-ups: %w", err)
	}
	for _, f := range pending {
		s.arm(f)
	}
	return len(pending), nil
}

// Pending returns the number of armed follow-ups.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

// Stop disarms every timer. Stored jobs are kept for the next Restore.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	for id, j := range s.jobs {
		j.timer.Stop()
		delete(s.jobs, id)
	}
}

func (s *Scheduler) arm(f storage.FollowUp) {
	delay := f.DueAt.Sub(s.now())
	if delay < 0 {
		delay = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	if old, ok := s.jobs[f.UserID]; ok {
		old.timer.Stop()
	}
	s.seq++
	seq := s.seq
	s.jobs[f.UserID] = job{
		seq:   seq,
		timer: time.AfterFunc(delay, func() { s.fire(f, seq) }),
	}
}

func (s *Scheduler) fire(f storage.FollowUp, seq uint64) {
	s.mu.Lock()
	j, ok := s.jobs[f.UserID]
	if !ok || j.seq != seq || s.stopped {
		// replaced or stopped meanwhile
		s.mu.Unlock()
		return
	}
	delete(s.jobs, f.UserID)
	ctx := s.ctx
	s.mu.Unlock()

	lg := logger.ForUser(f.UserID)
	if err := s.deliver(ctx, f); err != nil {
		lg.Warnf("Follow-up delivery failed: %v", err)
	} else {
		lg.Infof("Follow-up sent")
	}

	// one attempt only, like every other funnel message
	s.storeMu.Lock()
	defer s.storeMu.Unlock()
	s.mu.Lock()
	_, rescheduled := s.jobs[f.UserID]
	s.mu.Unlock()
	if rescheduled {
		return
	}
	if err := s.store.DeleteFollowUp(ctx, f.UserID); err != nil {
		lg.Warnf("Follow-up cleanup failed: %v", err)
	}
}
