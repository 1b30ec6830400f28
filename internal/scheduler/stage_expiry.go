package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/robfig/cron/v3"

	"github.com/mrlokans/wordbook/internal/tasks"
)

var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// Enqueuer accepts tasks for background processing.
type Enqueuer interface {
	Enqueue(ctx context.Context, task backlite.Task) (string, error)
}

// ValidateCronSchedule checks a five-field cron expression.
func ValidateCronSchedule(schedule string) error {
	_, err := parser.Parse(schedule)
	return err
}

// StageExpiryScheduler periodically enqueues an ExpireStageWordsTask so that
// pending stage words nobody touched for a while are marked FAIL.
type StageExpiryScheduler struct {
	queue     Enqueuer
	schedule  string
	olderThan time.Duration

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewStageExpiryScheduler creates a scheduler. Nothing runs until Start.
func NewStageExpiryScheduler(queue Enqueuer, schedule string, olderThan time.Duration) *StageExpiryScheduler {
	return &StageExpiryScheduler{
		queue:     queue,
		schedule:  schedule,
		olderThan: olderThan,
		cron:      cron.New(cron.WithParser(parser)),
	}
}

// Start registers the job and starts the cron loop. The scheduler stops when
// ctx is cancelled.
func (s *StageExpiryScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if s.olderThan <= 0 {
		return fmt.Errorf("stage expiry age must be positive, got %s", s.olderThan)
	}
	if err := ValidateCronSchedule(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.schedule, err)
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		s.enqueue(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule stage expiry job: %w", err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Printf("Stage expiry scheduler: started with schedule '%s'. Next run: %v",
		s.schedule, s.cron.Entry(entryID).Next)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop halts the cron loop and waits for a running job to return.
func (s *StageExpiryScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	<-s.cron.Stop().Done()
	s.cron.Remove(s.entryID)
	if s.cancelFunc != nil {
		s.cancelFunc()
		s.cancelFunc = nil
	}
	s.isRunning = false

	log.Printf("Stage expiry scheduler: stopped")
}

// RunNow enqueues an expiry task immediately.
func (s *StageExpiryScheduler) RunNow(ctx context.Context) (string, error) {
	return s.queue.Enqueue(ctx, tasks.ExpireStageWordsTask{OlderThan: s.olderThan})
}

// IsRunning returns whether the scheduler is active.
func (s *StageExpiryScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRunTime returns when the job fires next, or nil when stopped.
func (s *StageExpiryScheduler) NextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}
	next := s.cron.Entry(s.entryID).Next
	return &next
}

func (s *StageExpiryScheduler) enqueue(ctx context.Context) {
	id, err := s.RunNow(ctx)
	if err != nil {
		log.Printf("Stage expiry scheduler: failed to enqueue task: %v", err)
		return
	}
	log.Printf("Stage expiry scheduler: enqueued task %s", id)
}
