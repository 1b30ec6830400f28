package vocabulary

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/wordbook/internal/entities"
)

// CreatePronunciation stores a new pronunciation. The owning word must
// already exist.
func (r *Repository) CreatePronunciation(ctx context.Context, p *entities.Pronunciation) error {
	return r.savePronunciation(ctx, p, true)
}

// SavePronunciation inserts or updates a pronunciation. Changing WordID moves
// the pronunciation to another word.
func (r *Repository) SavePronunciation(ctx context.Context, p *entities.Pronunciation) error {
	return r.savePronunciation(ctx, p, false)
}

func (r *Repository) savePronunciation(ctx context.Context, p *entities.Pronunciation, mustBeNew bool) error {
	if err := p.Validate(); err != nil {
		return err
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if mustBeNew {
			exists, err := recordExists(tx, &entities.Pronunciation{}, p.ID)
			if err != nil {
				return err
			}
			if exists {
				return fmt.Errorf("pronunciation %q: %w", p.ID, ErrAlreadyExists)
			}
		}
		if err := requireWord(tx, "Pronunciation", p.WordID); err != nil {
			return err
		}
		return upsert(tx, p, pronunciationColumns)
	})
	if err != nil {
		return wrapError("save pronunciation", err)
	}
	return nil
}

// FindPronunciationByID returns the pronunciation with the given id, if any.
func (r *Repository) FindPronunciationByID(ctx context.Context, id string) (*entities.Pronunciation, bool, error) {
	var p entities.Pronunciation
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, entities.DataAccessError("find pronunciation", err)
	}
	return &p, true, nil
}

// PronunciationsForWord returns every pronunciation whose word_id is wordID.
func (r *Repository) PronunciationsForWord(ctx context.Context, wordID string) ([]entities.Pronunciation, error) {
	var items []entities.Pronunciation
	err := r.db.WithContext(ctx).
		Where("word_id = ?", wordID).
		Order("created_at ASC, id ASC").
		Find(&items).Error
	if err != nil {
		return nil, entities.DataAccessError("load pronunciations", err)
	}
	return items, nil
}

// DeletePronunciation removes a pronunciation and reports whether it existed.
func (r *Repository) DeletePronunciation(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Pronunciation{})
	if res.Error != nil {
		return false, entities.DataAccessError("delete pronunciation", res.Error)
	}
	return res.RowsAffected > 0, nil
}
