package http

import (
	"context"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/wordbook/internal/database/vocabulary"
	"github.com/mrlokans/wordbook/internal/entities"
)

// This file consolidates the interfaces HTTP controllers depend on. Each
// controller receives only the slice it needs.

// WordStore provides word-level operations.
type WordStore interface {
	CreateWord(ctx context.Context, word *entities.Word) error
	SaveWord(ctx context.Context, word *entities.Word) error
	FindWordByID(ctx context.Context, id string) (*entities.Word, bool, error)
	ListWords(ctx context.Context, filter vocabulary.ListWordsFilter) ([]entities.Word, int64, error)
	SearchWords(ctx context.Context, query string, limit int) ([]entities.Word, error)
	DeleteWord(ctx context.Context, id string) (bool, error)
	Stats(ctx context.Context) (vocabulary.Stats, error)
}

// PronunciationStore provides pronunciation operations.
type PronunciationStore interface {
	CreatePronunciation(ctx context.Context, p *entities.Pronunciation) error
	SavePronunciation(ctx context.Context, p *entities.Pronunciation) error
	FindPronunciationByID(ctx context.Context, id string) (*entities.Pronunciation, bool, error)
	DeletePronunciation(ctx context.Context, id string) (bool, error)
}

// StageWordStore provides stage word operations.
type StageWordStore interface {
	CreateStageWord(ctx context.Context, s *entities.StageWord) error
	FindStageWordByID(ctx context.Context, id string) (*entities.StageWord, bool, error)
	DeleteStageWord(ctx context.Context, id string) (bool, error)
	RecordListen(ctx context.Context, id string, status entities.StageStatus, at time.Time) (*entities.StageWord, bool, error)
}

// VocabularyStore combines every store interface. The vocabulary
// repository implements it.
type VocabularyStore interface {
	WordStore
	PronunciationStore
	StageWordStore
}

// TaskQueue enqueues background work and reports on it. A nil TaskQueue
// disables the endpoints that need one.
type TaskQueue interface {
	Enqueue(ctx context.Context, task backlite.Task) (string, error)
	Status(ctx context.Context, taskID string) (backlite.TaskStatus, error)
}

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}
