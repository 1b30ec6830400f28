package http

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPronunciationsController(t *testing.T) {
	s := setupTestServer(t)
	require.Equal(t, http.StatusCreated, s.do(t, "POST", "/api/words", `{"id": "w1", "wordName": "aberration"}`).Code)
	require.Equal(t, http.StatusCreated, s.do(t, "POST", "/api/words", `{"id": "w2", "wordName": "abate"}`).Code)

	t.Run("creates a pronunciation for an existing word", func(t *testing.T) {
		w := s.do(t, "POST", "/api/pronunciations", `{"wordId": "w1", "id": "p1", "type": "SAMPLE", "audioUrl": "https://audio.example/p1.mp3"}`)

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		body := decodeBody[map[string]any](t, w)
		assert.NotContains(t, body, "wordId")
		assert.Equal(t, "https://audio.example/p1.mp3", body["audioUrl"])
	})

	t.Run("rejects a pronunciation without a word", func(t *testing.T) {
		w := s.do(t, "POST", "/api/pronunciations", `{"id": "p2", "type": "SAMPLE"}`)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), `"field":"word"`)
	})

	t.Run("rejects a pronunciation for an unknown word", func(t *testing.T) {
		w := s.do(t, "POST", "/api/pronunciations", `{"wordId": "nope", "id": "p2", "type": "SAMPLE"}`)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("rejects a duplicate id", func(t *testing.T) {
		w := s.do(t, "POST", "/api/pronunciations", `{"wordId": "w1", "id": "p1", "type": "SAMPLE"}`)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("gets a pronunciation", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, s.do(t, "GET", "/api/pronunciations/p1", nil).Code)
		assert.Equal(t, http.StatusNotFound, s.do(t, "GET", "/api/pronunciations/nope", nil).Code)
	})

	t.Run("moves a pronunciation to another word", func(t *testing.T) {
		w := s.do(t, "PUT", "/api/pronunciations/p1/word", `{"wordId": "w2"}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		oldOwner, _, err := s.repo.FindWordByID(context.Background(), "w1")
		require.NoError(t, err)
		oldItems, err := oldOwner.Pronunciations.Load(context.Background())
		require.NoError(t, err)
		assert.Empty(t, oldItems)

		newOwner, _, err := s.repo.FindWordByID(context.Background(), "w2")
		require.NoError(t, err)
		newItems, err := newOwner.Pronunciations.Load(context.Background())
		require.NoError(t, err)
		require.Len(t, newItems, 1)
		assert.Equal(t, "p1", newItems[0].ID)
	})

	t.Run("refuses to detach a pronunciation", func(t *testing.T) {
		w := s.do(t, "PUT", "/api/pronunciations/p1/word", `{"wordId": ""}`)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("deletes a pronunciation", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, s.do(t, "DELETE", "/api/pronunciations/p1", nil).Code)
		assert.Equal(t, http.StatusNotFound, s.do(t, "DELETE", "/api/pronunciations/p1", nil).Code)
	})
}
