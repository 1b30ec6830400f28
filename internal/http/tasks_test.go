package http

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/wordbook/internal/tasks"
)

func TestTasksController(t *testing.T) {
	s := setupTestServer(t)
	s.router = NewRouter(RouterConfig{Store: s.repo, TaskQueue: s.queue, StageExpiryAfter: 72 * time.Hour})

	t.Run("lists task types", func(t *testing.T) {
		w := s.do(t, "GET", "/api/tasks/types", nil)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "enrich_word")
		assert.Contains(t, w.Body.String(), "expire_stage_words")
	})

	t.Run("runs stage expiry with the configured age", func(t *testing.T) {
		w := s.do(t, "POST", "/api/tasks/expire_stage_words/run", nil)

		require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())
		assert.Equal(t, tasks.ExpireStageWordsTask{OlderThan: 72 * time.Hour}, s.queue.tasks[len(s.queue.tasks)-1])
	})

	t.Run("runs stage expiry with an override", func(t *testing.T) {
		w := s.do(t, "POST", "/api/tasks/expire_stage_words/run", `{"olderThan": "1h"}`)

		require.Equal(t, http.StatusAccepted, w.Code)
		assert.Equal(t, tasks.ExpireStageWordsTask{OlderThan: time.Hour}, s.queue.tasks[len(s.queue.tasks)-1])

		assert.Equal(t, http.StatusBadRequest, s.do(t, "POST", "/api/tasks/expire_stage_words/run", `{"olderThan": "-1h"}`).Code)
	})

	t.Run("enrich_word needs a word id", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, s.do(t, "POST", "/api/tasks/enrich_word/run", nil).Code)

		w := s.do(t, "POST", "/api/tasks/enrich_word/run", `{"wordId": "w1"}`)
		require.Equal(t, http.StatusAccepted, w.Code)
		assert.Equal(t, tasks.EnrichWordTask{WordID: "w1"}, s.queue.tasks[len(s.queue.tasks)-1])
	})

	t.Run("rejects unknown task types", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, s.do(t, "POST", "/api/tasks/reindex/run", nil).Code)
	})

	t.Run("reports task status", func(t *testing.T) {
		s.queue.statuses["task-1"] = backlite.TaskStatusSuccess

		w := s.do(t, "GET", "/api/tasks/task-1", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"success"`)

		assert.Equal(t, http.StatusNotFound, s.do(t, "GET", "/api/tasks/unknown", nil).Code)
	})

	t.Run("enqueue failure", func(t *testing.T) {
		s.queue.err = errors.New("queue closed")
		defer func() { s.queue.err = nil }()

		assert.Equal(t, http.StatusInternalServerError, s.do(t, "POST", "/api/tasks/expire_stage_words/run", nil).Code)
	})
}

func TestTasksRoutes_DisabledWithoutQueue(t *testing.T) {
	s := setupTestServer(t)
	s.router = NewRouter(RouterConfig{Store: s.repo})

	assert.Equal(t, http.StatusNotFound, s.do(t, "GET", "/api/tasks/types", nil).Code)
}
