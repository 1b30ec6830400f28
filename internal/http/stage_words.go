package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/wordbook/internal/entities"
)

type StageWordsController struct {
	store StageWordStore
	now   func() time.Time
}

func NewStageWordsController(store StageWordStore) *StageWordsController {
	return &StageWordsController{store: store, now: time.Now}
}

// CreateStageWordRequest carries the owning word next to the stage word
// fields. Status defaults to PENDING and lastUpdatedDateTime to now.
type CreateStageWordRequest struct {
	WordID string `json:"wordId"`
	entities.StageWord
}

// ListenRequest is the body of POST /api/stage-words/:id/listen. An absent
// status keeps the current one.
type ListenRequest struct {
	Status entities.StageStatus `json:"status"`
}

// CreateStageWord stores a stage word for an existing word.
// POST /api/stage-words
func (sc *StageWordsController) CreateStageWord(c *gin.Context) {
	req := CreateStageWordRequest{StageWord: *entities.NewStageWord("", sc.now())}
	if !bindJSON(c, &req) {
		return
	}

	s := req.StageWord
	s.WordID = req.WordID
	if err := sc.store.CreateStageWord(c.Request.Context(), &s); err != nil {
		respondStoreError(c, err, "create stage word")
		return
	}
	respondCreated(c, s)
}

// GetStageWord returns a single stage word.
// GET /api/stage-words/:id
func (sc *StageWordsController) GetStageWord(c *gin.Context) {
	s, ok := sc.find(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s)
}

// RecordListen counts a listen and optionally moves the stage word to a new
// status.
// POST /api/stage-words/:id/listen
func (sc *StageWordsController) RecordListen(c *gin.Context) {
	var req ListenRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	current, ok := sc.find(c)
	if !ok {
		return
	}
	status := req.Status
	if status == "" {
		status = current.Status
	}

	updated, found, err := sc.store.RecordListen(c.Request.Context(), current.ID, status, sc.now())
	if err != nil {
		respondStoreError(c, err, "record listen")
		return
	}
	if !found {
		respondNotFound(c, "stage word")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteStageWord removes a stage word.
// DELETE /api/stage-words/:id
func (sc *StageWordsController) DeleteStageWord(c *gin.Context) {
	id, ok := requireIDParam(c, "id")
	if !ok {
		return
	}
	deleted, err := sc.store.DeleteStageWord(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err, "delete stage word")
		return
	}
	if !deleted {
		respondNotFound(c, "stage word")
		return
	}
	respondSuccess(c, "stage word deleted")
}

func (sc *StageWordsController) find(c *gin.Context) (*entities.StageWord, bool) {
	id, ok := requireIDParam(c, "id")
	if !ok {
		return nil, false
	}
	s, found, err := sc.store.FindStageWordByID(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err, "find stage word")
		return nil, false
	}
	if !found {
		respondNotFound(c, "stage word")
		return nil, false
	}
	return s, true
}
