package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

// StageExpirer marks stale pending stage words as failed.
type StageExpirer interface {
	ExpireStaleStageWords(ctx context.Context, cutoff, now time.Time) (int64, error)
}

// ExpireStageWordsTask fails every PENDING stage word that has not been
// touched for OlderThan.
type ExpireStageWordsTask struct {
	OlderThan time.Duration `json:"older_than"`
}

func (t ExpireStageWordsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "expire_stage_words",
		MaxAttempts: 1,
		Backoff:     time.Minute,
		Timeout:     5 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   7 * 24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// ExpireStageWordsProcessor creates a processor for stage word expiry. now
// is injectable for tests; nil means time.Now.
func ExpireStageWordsProcessor(store StageExpirer, now func() time.Time) backlite.QueueProcessor[ExpireStageWordsTask] {
	if now == nil {
		now = time.Now
	}
	return func(ctx context.Context, task ExpireStageWordsTask) error {
		if task.OlderThan <= 0 {
			return fmt.Errorf("expire stage words: older_than must be positive, got %s", task.OlderThan)
		}

		current := now()
		expired, err := store.ExpireStaleStageWords(ctx, current.Add(-task.OlderThan), current)
		if err != nil {
			return fmt.Errorf("expire stage words: %w", err)
		}

		log.Printf("[TASK] Expired %d pending stage words older than %s", expired, task.OlderThan)
		return nil
	}
}

func NewExpireStageWordsQueue(store StageExpirer) backlite.Queue {
	return backlite.NewQueue(ExpireStageWordsProcessor(store, nil))
}
