package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/wordbook/internal/entities"
)

type PronunciationsController struct {
	store PronunciationStore
}

func NewPronunciationsController(store PronunciationStore) *PronunciationsController {
	return &PronunciationsController{store: store}
}

// CreatePronunciationRequest carries the owning word next to the
// pronunciation fields, because a serialized pronunciation never names its
// word.
type CreatePronunciationRequest struct {
	WordID string `json:"wordId"`
	entities.Pronunciation
}

// AssignWordRequest is the body of PUT /api/pronunciations/:id/word.
type AssignWordRequest struct {
	WordID string `json:"wordId"`
}

// CreatePronunciation stores a pronunciation for an existing word.
// POST /api/pronunciations
func (pc *PronunciationsController) CreatePronunciation(c *gin.Context) {
	var req CreatePronunciationRequest
	if !bindJSON(c, &req) {
		return
	}

	p := req.Pronunciation
	p.WordID = req.WordID
	if err := pc.store.CreatePronunciation(c.Request.Context(), &p); err != nil {
		respondStoreError(c, err, "create pronunciation")
		return
	}
	respondCreated(c, p)
}

// GetPronunciation returns a single pronunciation.
// GET /api/pronunciations/:id
func (pc *PronunciationsController) GetPronunciation(c *gin.Context) {
	p, ok := pc.find(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, p)
}

// AssignWord moves a pronunciation to another word. Only the child's
// foreign key changes; both words see the move on their next load.
// PUT /api/pronunciations/:id/word
func (pc *PronunciationsController) AssignWord(c *gin.Context) {
	var req AssignWordRequest
	if !bindJSON(c, &req) {
		return
	}

	p, ok := pc.find(c)
	if !ok {
		return
	}
	p.WordID = req.WordID

	if err := pc.store.SavePronunciation(c.Request.Context(), p); err != nil {
		respondStoreError(c, err, "assign pronunciation")
		return
	}
	c.JSON(http.StatusOK, gin.H{"pronunciation": p, "wordId": p.WordID})
}

// DeletePronunciation removes a pronunciation.
// DELETE /api/pronunciations/:id
func (pc *PronunciationsController) DeletePronunciation(c *gin.Context) {
	id, ok := requireIDParam(c, "id")
	if !ok {
		return
	}
	deleted, err := pc.store.DeletePronunciation(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err, "delete pronunciation")
		return
	}
	if !deleted {
		respondNotFound(c, "pronunciation")
		return
	}
	respondSuccess(c, "pronunciation deleted")
}

func (pc *PronunciationsController) find(c *gin.Context) (*entities.Pronunciation, bool) {
	id, ok := requireIDParam(c, "id")
	if !ok {
		return nil, false
	}
	p, found, err := pc.store.FindPronunciationByID(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err, "find pronunciation")
		return nil, false
	}
	if !found {
		respondNotFound(c, "pronunciation")
		return nil, false
	}
	return p, true
}
