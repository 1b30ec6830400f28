package vocabulary

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/wordbook/internal/entities"
)

// CreateStageWord stores a new stage word. The owning word must already
// exist.
func (r *Repository) CreateStageWord(ctx context.Context, s *entities.StageWord) error {
	return r.saveStageWord(ctx, s, true)
}

// SaveStageWord inserts or updates a stage word.
func (r *Repository) SaveStageWord(ctx context.Context, s *entities.StageWord) error {
	return r.saveStageWord(ctx, s, false)
}

func (r *Repository) saveStageWord(ctx context.Context, s *entities.StageWord, mustBeNew bool) error {
	if err := s.Validate(); err != nil {
		return err
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if mustBeNew {
			exists, err := recordExists(tx, &entities.StageWord{}, s.ID)
			if err != nil {
				return err
			}
			if exists {
				return fmt.Errorf("stage word %q: %w", s.ID, ErrAlreadyExists)
			}
		}
		if err := requireWord(tx, "StageWord", s.WordID); err != nil {
			return err
		}
		return upsert(tx, s, stageWordColumns)
	})
	if err != nil {
		return wrapError("save stage word", err)
	}
	return nil
}

// FindStageWordByID returns the stage word with the given id, if any.
func (r *Repository) FindStageWordByID(ctx context.Context, id string) (*entities.StageWord, bool, error) {
	var s entities.StageWord
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, entities.DataAccessError("find stage word", err)
	}
	return &s, true, nil
}

// StageWordsForWord returns every stage word whose word_id is wordID.
func (r *Repository) StageWordsForWord(ctx context.Context, wordID string) ([]entities.StageWord, error) {
	var items []entities.StageWord
	err := r.db.WithContext(ctx).
		Where("word_id = ?", wordID).
		Order("last_updated_date_time DESC, id ASC").
		Find(&items).Error
	if err != nil {
		return nil, entities.DataAccessError("load stage words", err)
	}
	return items, nil
}

// DeleteStageWord removes a stage word and reports whether it existed.
func (r *Repository) DeleteStageWord(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.StageWord{})
	if res.Error != nil {
		return false, entities.DataAccessError("delete stage word", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// RecordListen counts one more listen of a stage word and sets its status.
func (r *Repository) RecordListen(ctx context.Context, id string, status entities.StageStatus, at time.Time) (*entities.StageWord, bool, error) {
	if !status.Valid() {
		return nil, false, &entities.UnknownEnumValueError{Enum: "StageStatus", Value: string(status)}
	}

	var updated *entities.StageWord
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var s entities.StageWord
		if err := tx.Where("id = ?", id).Take(&s).Error; err != nil {
			return err
		}
		err := tx.Model(&s).Updates(map[string]any{
			"listened_qty":           gorm.Expr("listened_qty + ?", 1),
			"status":                 status,
			"last_updated_date_time": at.UTC(),
		}).Error
		if err != nil {
			return err
		}
		if err := tx.Where("id = ?", id).Take(&s).Error; err != nil {
			return err
		}
		updated = &s
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, wrapError("record listen", err)
	}
	return updated, true, nil
}

// ExpireStaleStageWords marks pending stage words not touched since before
// cutoff as failed, stamping them with now.
func (r *Repository) ExpireStaleStageWords(ctx context.Context, cutoff, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&entities.StageWord{}).
		Where("status = ? AND last_updated_date_time < ?", entities.StageStatusPending, cutoff.UTC()).
		Updates(map[string]any{
			"status":                 entities.StageStatusFail,
			"last_updated_date_time": now.UTC(),
		})
	if res.Error != nil {
		return 0, entities.DataAccessError("expire stage words", res.Error)
	}
	return res.RowsAffected, nil
}
