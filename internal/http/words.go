package http

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/wordbook/internal/audit"
	"github.com/mrlokans/wordbook/internal/database/vocabulary"
	"github.com/mrlokans/wordbook/internal/entities"
	"github.com/mrlokans/wordbook/internal/tasks"
)

type WordsController struct {
	store   VocabularyStore
	queue   TaskQueue
	auditor *audit.Auditor
}

func NewWordsController(store VocabularyStore, queue TaskQueue, auditor *audit.Auditor) *WordsController {
	return &WordsController{
		store:   store,
		queue:   queue,
		auditor: auditor,
	}
}

// UpdateWordRequest is the body of PATCH /api/words/:id. Absent fields are
// left unchanged.
type UpdateWordRequest struct {
	WordName         *string `json:"wordName"`
	Definition       *string `json:"definition"`
	PhoneticSpelling *string `json:"phoneticSpelling"`
	Sentence         *string `json:"sentence"`
	IsActive         *bool   `json:"isActive"`
	Level            *int    `json:"level"`
}

func (r UpdateWordRequest) apply(w *entities.Word) {
	if r.WordName != nil {
		w.WordName = *r.WordName
	}
	if r.Definition != nil {
		w.Definition = *r.Definition
	}
	if r.PhoneticSpelling != nil {
		w.PhoneticSpelling = *r.PhoneticSpelling
	}
	if r.Sentence != nil {
		w.Sentence = *r.Sentence
	}
	if r.IsActive != nil {
		w.IsActive = *r.IsActive
	}
	if r.Level != nil {
		w.Level = *r.Level
	}
}

// ListWords returns a page of words without their children.
// GET /api/words
func (wc *WordsController) ListWords(c *gin.Context) {
	limit, offset := parsePagination(c, 50, 500)
	active, ok := parseOptionalBool(c, "active")
	if !ok {
		return
	}
	level, ok := parseOptionalInt(c, "level")
	if !ok {
		return
	}

	words, total, err := wc.store.ListWords(c.Request.Context(), vocabulary.ListWordsFilter{
		Limit:  limit,
		Offset: offset,
		Active: active,
		Level:  level,
	})
	if err != nil {
		respondStoreError(c, err, "list words")
		return
	}

	c.JSON(http.StatusOK, PaginatedResponse{
		Data:    words,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: int64(offset+len(words)) < total,
	})
}

// SearchWords matches word names.
// GET /api/words/search?q=
func (wc *WordsController) SearchWords(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		respondBadRequest(c, "q is required")
		return
	}
	limit, _ := parsePagination(c, 20, 100)

	words, err := wc.store.SearchWords(c.Request.Context(), query, limit)
	if err != nil {
		respondStoreError(c, err, "search words")
		return
	}

	c.JSON(http.StatusOK, gin.H{"words": words, "query": query})
}

// Stats returns vocabulary counters.
// GET /api/words/stats
func (wc *WordsController) Stats(c *gin.Context) {
	stats, err := wc.store.Stats(c.Request.Context())
	if err != nil {
		respondStoreError(c, err, "vocabulary stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// CreateWord stores a word together with any nested pronunciations and
// stage words.
// POST /api/words
func (wc *WordsController) CreateWord(c *gin.Context) {
	word := entities.NewWord("", "")
	if !bindJSON(c, word) {
		return
	}

	if err := wc.store.CreateWord(c.Request.Context(), word); err != nil {
		respondStoreError(c, err, "create word")
		return
	}

	// The repository hands the word back with unbound views; read the
	// stored children back so the response shows what was persisted.
	if !resolveChildren(c, word, true, true) {
		return
	}
	if _, err := wc.auditor.SaveJSON("word_create", word); err != nil {
		log.Printf("Failed to audit word %s: %v", word.ID, err)
	}
	respondCreated(c, word)
}

// GetWord returns one word. Children are included only when asked for with
// include=pronunciations,stageWords.
// GET /api/words/:id
func (wc *WordsController) GetWord(c *gin.Context) {
	word, ok := wc.findWord(c)
	if !ok {
		return
	}

	var withPronunciations, withStageWords bool
	for _, part := range strings.Split(c.Query("include"), ",") {
		switch strings.TrimSpace(part) {
		case "pronunciations":
			withPronunciations = true
		case "stageWords":
			withStageWords = true
		case "":
		default:
			respondBadRequest(c, "unknown include: "+part)
			return
		}
	}

	if !resolveChildren(c, word, withPronunciations, withStageWords) {
		return
	}
	c.JSON(http.StatusOK, word)
}

// UpdateWord changes word attributes. Children are not touched.
// PATCH /api/words/:id
func (wc *WordsController) UpdateWord(c *gin.Context) {
	var req UpdateWordRequest
	if !bindJSON(c, &req) {
		return
	}

	word, ok := wc.findWord(c)
	if !ok {
		return
	}
	req.apply(word)

	if err := wc.store.SaveWord(c.Request.Context(), word); err != nil {
		respondStoreError(c, err, "update word")
		return
	}
	c.JSON(http.StatusOK, word)
}

// DeleteWord removes a word and everything it owns. The deleted aggregate is
// archived first when auditing is enabled.
// DELETE /api/words/:id
func (wc *WordsController) DeleteWord(c *gin.Context) {
	word, ok := wc.findWord(c)
	if !ok {
		return
	}

	if wc.auditor.Enabled() {
		if !resolveChildren(c, word, true, true) {
			return
		}
		if _, err := wc.auditor.SaveJSON("word_delete", word); err != nil {
			log.Printf("Failed to audit deletion of word %s: %v", word.ID, err)
		}
	}

	deleted, err := wc.store.DeleteWord(c.Request.Context(), word.ID)
	if err != nil {
		respondStoreError(c, err, "delete word")
		return
	}
	if !deleted {
		respondNotFound(c, "word")
		return
	}
	respondSuccess(c, "word deleted")
}

// EnrichWord queues a dictionary lookup for the word.
// POST /api/words/:id/enrich
func (wc *WordsController) EnrichWord(c *gin.Context) {
	if wc.queue == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "task queue is disabled", Code: CodeStoreUnavailable})
		return
	}

	word, ok := wc.findWord(c)
	if !ok {
		return
	}

	taskID, err := wc.queue.Enqueue(c.Request.Context(), tasks.EnrichWordTask{WordID: word.ID})
	if err != nil {
		respondInternalError(c, err, "enqueue enrichment")
		return
	}
	respondAccepted(c, "enrichment queued", gin.H{"taskId": taskID, "wordId": word.ID})
}

// ListPronunciations resolves the word's pronunciations.
// GET /api/words/:id/pronunciations
func (wc *WordsController) ListPronunciations(c *gin.Context) {
	word, ok := wc.findWord(c)
	if !ok {
		return
	}
	items, err := word.Pronunciations.Load(c.Request.Context())
	if err != nil {
		respondStoreError(c, err, "load pronunciations")
		return
	}
	c.JSON(http.StatusOK, items)
}

// AddPronunciation creates a pronunciation owned by the word in the path.
// POST /api/words/:id/pronunciations
func (wc *WordsController) AddPronunciation(c *gin.Context) {
	var p entities.Pronunciation
	if !bindJSON(c, &p) {
		return
	}
	word, ok := wc.findWord(c)
	if !ok {
		return
	}

	p = word.AddPronunciation(p)
	if err := wc.store.CreatePronunciation(c.Request.Context(), &p); err != nil {
		respondStoreError(c, err, "create pronunciation")
		return
	}
	respondCreated(c, p)
}

// ListStageWords resolves the word's stage words.
// GET /api/words/:id/stage-words
func (wc *WordsController) ListStageWords(c *gin.Context) {
	word, ok := wc.findWord(c)
	if !ok {
		return
	}
	items, err := word.StageWords.Load(c.Request.Context())
	if err != nil {
		respondStoreError(c, err, "load stage words")
		return
	}
	c.JSON(http.StatusOK, items)
}

// AddStageWord creates a stage word owned by the word in the path.
// POST /api/words/:id/stage-words
func (wc *WordsController) AddStageWord(c *gin.Context) {
	s := entities.NewStageWord("", time.Now())
	if !bindJSON(c, s) {
		return
	}
	word, ok := wc.findWord(c)
	if !ok {
		return
	}

	attached := word.AddStageWord(*s)
	if err := wc.store.CreateStageWord(c.Request.Context(), &attached); err != nil {
		respondStoreError(c, err, "create stage word")
		return
	}
	respondCreated(c, attached)
}

func (wc *WordsController) findWord(c *gin.Context) (*entities.Word, bool) {
	id, ok := requireIDParam(c, "id")
	if !ok {
		return nil, false
	}
	word, found, err := wc.store.FindWordByID(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err, "find word")
		return nil, false
	}
	if !found {
		respondNotFound(c, "word")
		return nil, false
	}
	return word, true
}

// resolveChildren loads the requested collections so that they are
// serialized. It responds with an error and returns false on failure.
func resolveChildren(c *gin.Context, word *entities.Word, pronunciations, stageWords bool) bool {
	ctx := c.Request.Context()
	if pronunciations {
		if err := loadInto(ctx, &word.Pronunciations); err != nil {
			respondStoreError(c, err, "load pronunciations")
			return false
		}
	}
	if stageWords {
		if err := loadInto(ctx, &word.StageWords); err != nil {
			respondStoreError(c, err, "load stage words")
			return false
		}
	}
	return true
}

func loadInto[T any](ctx context.Context, collection *entities.Collection[T]) error {
	_, err := collection.Load(ctx)
	return err
}
