package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/wordbook/internal/cli"
	"github.com/mrlokans/wordbook/internal/database"
	"github.com/mrlokans/wordbook/internal/database/vocabulary"
	"github.com/mrlokans/wordbook/internal/dictionary"
	"github.com/mrlokans/wordbook/internal/http"
	"github.com/mrlokans/wordbook/internal/scheduler"
	"github.com/mrlokans/wordbook/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

// VocabularyStore implementations
var _ http.VocabularyStore = (*vocabulary.Repository)(nil)
var _ http.Pinger = (*database.Database)(nil)

// CLI import/export
var _ cli.WordSaver = (*vocabulary.Repository)(nil)
var _ cli.WordLister = (*vocabulary.Repository)(nil)

// =============================================================================
// External Services
// =============================================================================

// DictionaryClient implementations
var _ dictionary.Client = (*dictionary.FreeDictionaryClient)(nil)

// =============================================================================
// Background Tasks
// =============================================================================

var _ tasks.WordEnricher = (*vocabulary.Repository)(nil)
var _ tasks.StageExpirer = (*vocabulary.Repository)(nil)

// Task queue implementations
var _ http.TaskQueue = (*tasks.Client)(nil)
var _ scheduler.Enqueuer = (*tasks.Client)(nil)
