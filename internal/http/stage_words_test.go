package http

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/wordbook/internal/entities"
)

func TestStageWordsController(t *testing.T) {
	s := setupTestServer(t)
	require.Equal(t, http.StatusCreated, s.do(t, "POST", "/api/words", `{"id": "w1", "wordName": "aberration"}`).Code)

	t.Run("creates a pending stage word", func(t *testing.T) {
		w := s.do(t, "POST", "/api/stage-words", `{"wordId": "w1", "id": "s1"}`)

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		body := decodeBody[entities.StageWord](t, w)
		assert.Equal(t, entities.StageStatusPending, body.Status)
		assert.Zero(t, body.ListenedQty)
		assert.False(t, body.LastUpdatedDateTime.IsZero())
	})

	t.Run("rejects a stage word without a word", func(t *testing.T) {
		w := s.do(t, "POST", "/api/stage-words", `{"id": "s2", "status": "DONE"}`)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("rejects an unknown status", func(t *testing.T) {
		w := s.do(t, "POST", "/api/stage-words", `{"wordId": "w1", "id": "s2", "status": "LATER"}`)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), CodeUnknownEnumValue)
	})

	t.Run("records listens", func(t *testing.T) {
		w := s.do(t, "POST", "/api/stage-words/s1/listen", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		body := decodeBody[entities.StageWord](t, w)
		assert.Equal(t, 1, body.ListenedQty)
		assert.Equal(t, entities.StageStatusPending, body.Status)

		w = s.do(t, "POST", "/api/stage-words/s1/listen", `{"status": "DONE"}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		body = decodeBody[entities.StageWord](t, w)
		assert.Equal(t, 2, body.ListenedQty)
		assert.Equal(t, entities.StageStatusDone, body.Status)
		assert.WithinDuration(t, time.Now(), body.LastUpdatedDateTime, time.Minute)
	})

	t.Run("rejects an unknown listen status", func(t *testing.T) {
		w := s.do(t, "POST", "/api/stage-words/s1/listen", `{"status": "done"}`)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("reads a chunked listen body", func(t *testing.T) {
		req := s.newRequest(t, "POST", "/api/stage-words/s1/listen", `{"status": "FAIL"}`)
		req.ContentLength = -1
		req.TransferEncoding = []string{"chunked"}

		w := s.serve(req)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		body := decodeBody[entities.StageWord](t, w)
		assert.Equal(t, 3, body.ListenedQty)
		assert.Equal(t, entities.StageStatusFail, body.Status)
	})

	t.Run("treats a blank body as no status", func(t *testing.T) {
		w := s.do(t, "POST", "/api/stage-words/s1/listen", "  \n")

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, entities.StageStatusFail, decodeBody[entities.StageWord](t, w).Status)
	})

	t.Run("listen on an absent stage word", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, s.do(t, "POST", "/api/stage-words/nope/listen", nil).Code)
	})

	t.Run("gets and deletes a stage word", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, s.do(t, "GET", "/api/stage-words/s1", nil).Code)
		assert.Equal(t, http.StatusOK, s.do(t, "DELETE", "/api/stage-words/s1", nil).Code)
		assert.Equal(t, http.StatusNotFound, s.do(t, "GET", "/api/stage-words/s1", nil).Code)
		assert.Equal(t, http.StatusNotFound, s.do(t, "DELETE", "/api/stage-words/s1", nil).Code)
	})
}
