// Package vocabulary provides database operations for words and the
// pronunciations and stage words they own.
//
// This package implements the VocabularyStore interface defined in
// internal/http/stores.go.
//
// # Interface Implementation
//
//	var _ http.VocabularyStore = (*Repository)(nil)
//
// # Usage
//
//	repo := vocabulary.NewRepository(db)
//	word, ok, err := repo.FindWordByID(ctx, "8f7d1b9e3a2c5f6e")
//	if ok {
//		pronunciations, err := word.Pronunciations.Load(ctx)
//	}
//
// Each public method runs in a single transaction. Children are written only
// after their owning word has been found in the same transaction.
package vocabulary

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/wordbook/internal/entities"
)

// ErrAlreadyExists is returned by the Create* methods when the id is taken.
var ErrAlreadyExists = errors.New("record already exists")

// likeEscaper makes LIKE wildcards in user input match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

var (
	wordColumns = []string{
		"word_name", "definition", "phonetic_spelling", "sentence",
		"is_active", "level", "updated_at",
	}
	pronunciationColumns = []string{
		"word_id", "audio_description", "audio_url", "audio_duration",
		"audio_size", "definition", "phonetic_spelling", "speaker_gender",
		"type", "updated_at",
	}
	stageWordColumns = []string{
		"word_id", "status", "listened_qty", "last_updated_date_time",
		"updated_at",
	}
)

// Repository handles all vocabulary database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new vocabulary repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListWordsFilter narrows ListWords. Nil pointers disable a filter.
type ListWordsFilter struct {
	Limit  int
	Offset int
	Active *bool
	Level  *int
}

// Stats summarises the stored vocabulary.
type Stats struct {
	Words          int64                         `json:"words"`
	ActiveWords    int64                         `json:"activeWords"`
	Pronunciations int64                         `json:"pronunciations"`
	StageWords     map[entities.StageStatus]int64 `json:"stageWords"`
}

// CreateWord stores a new word and cascades its resolved children. It fails
// with ErrAlreadyExists if the id is taken.
func (r *Repository) CreateWord(ctx context.Context, word *entities.Word) error {
	return r.saveWord(ctx, word, true)
}

// SaveWord inserts or updates a word and cascades its resolved children.
// Unresolved collections are left alone.
func (r *Repository) SaveWord(ctx context.Context, word *entities.Word) error {
	return r.saveWord(ctx, word, false)
}

func (r *Repository) saveWord(ctx context.Context, word *entities.Word, mustBeNew bool) error {
	if err := word.Validate(); err != nil {
		return err
	}

	pronunciations, _ := word.Pronunciations.Items()
	stageWords, _ := word.StageWords.Items()

	for i := range pronunciations {
		if err := checkOwner("Pronunciation", pronunciations[i].WordID, word.ID); err != nil {
			return err
		}
		if err := pronunciations[i].Validate(); err != nil {
			return err
		}
	}
	for i := range stageWords {
		if err := checkOwner("StageWord", stageWords[i].WordID, word.ID); err != nil {
			return err
		}
		if err := stageWords[i].Validate(); err != nil {
			return err
		}
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if mustBeNew {
			exists, err := recordExists(tx, &entities.Word{}, word.ID)
			if err != nil {
				return err
			}
			if exists {
				return fmt.Errorf("word %q: %w", word.ID, ErrAlreadyExists)
			}
		}

		if err := upsert(tx, word, wordColumns); err != nil {
			return err
		}
		for i := range pronunciations {
			if err := claimChild(tx, &entities.Pronunciation{}, "pronunciation", pronunciations[i].ID, word.ID, mustBeNew); err != nil {
				return err
			}
			if err := upsert(tx, &pronunciations[i], pronunciationColumns); err != nil {
				return err
			}
		}
		for i := range stageWords {
			if err := claimChild(tx, &entities.StageWord{}, "stage word", stageWords[i].ID, word.ID, mustBeNew); err != nil {
				return err
			}
			if err := upsert(tx, &stageWords[i], stageWordColumns); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return wrapError("save word", err)
	}

	// The store is now the source of truth for the children.
	r.bind(word)
	return nil
}

// FindWordByID returns the word with the given id. Absence is reported by
// the boolean, not by an error. Child collections are returned unresolved.
func (r *Repository) FindWordByID(ctx context.Context, id string) (*entities.Word, bool, error) {
	var word entities.Word
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&word).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, entities.DataAccessError("find word", err)
	}
	r.bind(&word)
	return &word, true, nil
}

// ListWords returns words ordered by name, with the total count before
// pagination.
func (r *Repository) ListWords(ctx context.Context, filter ListWordsFilter) ([]entities.Word, int64, error) {
	var words []entities.Word
	var total int64

	scoped := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&entities.Word{})
		if filter.Active != nil {
			q = q.Where("is_active = ?", *filter.Active)
		}
		if filter.Level != nil {
			q = q.Where("level = ?", *filter.Level)
		}
		return q
	}

	if err := scoped().Count(&total).Error; err != nil {
		return nil, 0, entities.DataAccessError("count words", err)
	}

	query := scoped().Order("word_name ASC, id ASC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	if err := query.Find(&words).Error; err != nil {
		return nil, 0, entities.DataAccessError("list words", err)
	}
	for i := range words {
		r.bind(&words[i])
	}
	return words, total, nil
}

// SearchWords matches word names case-insensitively.
func (r *Repository) SearchWords(ctx context.Context, query string, limit int) ([]entities.Word, error) {
	var words []entities.Word
	searchPattern := "%" + likeEscaper.Replace(query) + "%"
	q := r.db.WithContext(ctx).Where(`LOWER(word_name) LIKE LOWER(?) ESCAPE '\'`, searchPattern).Order("word_name ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&words).Error; err != nil {
		return nil, entities.DataAccessError("search words", err)
	}
	for i := range words {
		r.bind(&words[i])
	}
	return words, nil
}

// DeleteWord removes a word together with every pronunciation and stage word
// that references it. It reports whether the word existed.
func (r *Repository) DeleteWord(ctx context.Context, id string) (bool, error) {
	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("word_id = ?", id).Delete(&entities.Pronunciation{}).Error; err != nil {
			return err
		}
		if err := tx.Where("word_id = ?", id).Delete(&entities.StageWord{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&entities.Word{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, entities.DataAccessError("delete word", err)
	}
	return deleted, nil
}

// Stats returns word, pronunciation and per-status stage word counts.
func (r *Repository) Stats(ctx context.Context) (Stats, error) {
	stats := Stats{StageWords: make(map[entities.StageStatus]int64)}
	db := r.db.WithContext(ctx)

	if err := db.Model(&entities.Word{}).Count(&stats.Words).Error; err != nil {
		return stats, entities.DataAccessError("count words", err)
	}
	if err := db.Model(&entities.Word{}).Where("is_active = ?", true).Count(&stats.ActiveWords).Error; err != nil {
		return stats, entities.DataAccessError("count active words", err)
	}
	if err := db.Model(&entities.Pronunciation{}).Count(&stats.Pronunciations).Error; err != nil {
		return stats, entities.DataAccessError("count pronunciations", err)
	}

	var rows []struct {
		Status entities.StageStatus
		Count  int64
	}
	err := db.Model(&entities.StageWord{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return stats, entities.DataAccessError("count stage words", err)
	}

	for _, status := range entities.StageStatuses() {
		stats.StageWords[status] = 0
	}
	for _, row := range rows {
		stats.StageWords[row.Status] = row.Count
	}
	return stats, nil
}

// bind attaches lazy loaders for the word's children. Nothing is queried
// until a collection is loaded.
func (r *Repository) bind(word *entities.Word) {
	id := word.ID
	word.Pronunciations = entities.BoundCollection(func(ctx context.Context) ([]entities.Pronunciation, error) {
		return r.PronunciationsForWord(ctx, id)
	})
	word.StageWords = entities.BoundCollection(func(ctx context.Context) ([]entities.StageWord, error) {
		return r.StageWordsForWord(ctx, id)
	})
}

// upsert inserts value or, on an id conflict, updates the given columns.
// created_at is never overwritten.
func upsert(tx *gorm.DB, value any, columns []string) error {
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns(columns),
	}).Create(value).Error
}

func recordExists(tx *gorm.DB, model any, id string) (bool, error) {
	var count int64
	if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// claimChild stops a nested child from taking over a row that belongs to
// another word. A new word cannot reuse any existing child id; moving a child
// goes through SavePronunciation or SaveStageWord.
func claimChild(tx *gorm.DB, model any, entity, id, wordID string, mustBeNew bool) error {
	var owners []string
	if err := tx.Model(model).Where("id = ?", id).Limit(1).Pluck("word_id", &owners).Error; err != nil {
		return err
	}
	if len(owners) == 0 {
		return nil
	}
	if mustBeNew || owners[0] != wordID {
		return fmt.Errorf("%s %q: %w", entity, id, ErrAlreadyExists)
	}
	return nil
}

// requireWord fails with a constraint violation when the referenced word is
// not stored.
func requireWord(tx *gorm.DB, entity, wordID string) error {
	exists, err := recordExists(tx, &entities.Word{}, wordID)
	if err != nil {
		return err
	}
	if !exists {
		return &entities.ConstraintError{
			Entity: entity,
			Field:  "word",
			Reason: fmt.Sprintf("references unknown word %q", wordID),
		}
	}
	return nil
}

func checkOwner(entity, childWordID, wordID string) error {
	if childWordID != "" && childWordID != wordID {
		return &entities.ConstraintError{
			Entity: entity,
			Field:  "word",
			Reason: fmt.Sprintf("belongs to word %q, not %q", childWordID, wordID),
		}
	}
	return nil
}

// wrapError keeps domain errors as they are and marks everything else as a
// data access failure.
func wrapError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, entities.ErrConstraintViolation) || errors.Is(err, ErrAlreadyExists) {
		return err
	}
	return entities.DataAccessError(op, err)
}
