package tasks

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/mrlokans/wordbook/internal/dictionary"
	"github.com/mrlokans/wordbook/internal/entities"
	"github.com/mrlokans/wordbook/internal/utils"
)

// WordEnricher defines the store operations used by word enrichment.
type WordEnricher interface {
	FindWordByID(ctx context.Context, id string) (*entities.Word, bool, error)
	SaveWord(ctx context.Context, word *entities.Word) error
}

// EnrichWordTask fills in a word's missing fields from the dictionary and
// adds a SAMPLE pronunciation for every audio file it reports.
type EnrichWordTask struct {
	WordID string `json:"word_id"`
}

func (t EnrichWordTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "enrich_word",
		MaxAttempts: 3,
		Backoff:     30 * time.Second,
		Timeout:     1 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// EnrichWordProcessor creates a processor for word enrichment. Words that
// were deleted meanwhile, or that the dictionary does not know, are skipped
// without a retry.
func EnrichWordProcessor(store WordEnricher, dictClient dictionary.Client) backlite.QueueProcessor[EnrichWordTask] {
	return func(ctx context.Context, task EnrichWordTask) error {
		word, found, err := store.FindWordByID(ctx, task.WordID)
		if err != nil {
			return fmt.Errorf("get word %s: %w", task.WordID, err)
		}
		if !found {
			log.Printf("[TASK] Word %s no longer exists, skipping enrichment", task.WordID)
			return nil
		}

		result, err := dictClient.Lookup(ctx, word.WordName)
		if errors.Is(err, dictionary.ErrWordNotFound) {
			log.Printf("[TASK] %s has no entry for %q", dictClient.Name(), word.WordName)
			return nil
		}
		if err != nil {
			return fmt.Errorf("lookup word %q: %w", word.WordName, err)
		}

		added, err := applyLookup(ctx, word, result, dictClient.Name())
		if err != nil {
			return err
		}

		if err := store.SaveWord(ctx, word); err != nil {
			return fmt.Errorf("save word %s: %w", word.ID, err)
		}

		log.Printf("[TASK] Enriched word %q with %d new pronunciations", word.WordName, added)
		return nil
	}
}

// applyLookup copies fields the word does not have yet and appends a sample
// pronunciation per new audio URL. Existing values are never overwritten.
func applyLookup(ctx context.Context, word *entities.Word, result *dictionary.LookupResult, source string) (int, error) {
	if word.Definition == "" {
		word.Definition = result.Definition
	}
	if word.PhoneticSpelling == "" {
		word.PhoneticSpelling = result.PhoneticSpelling
	}
	if word.Sentence == "" {
		word.Sentence = result.Sentence
	}

	existing, err := word.Pronunciations.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("load pronunciations for %s: %w", word.ID, err)
	}
	known := make(map[string]bool, len(existing))
	for _, p := range existing {
		known[p.AudioURL] = true
	}

	added := 0
	for _, phonetic := range result.Phonetics {
		if phonetic.AudioURL == "" || known[phonetic.AudioURL] {
			continue
		}
		known[phonetic.AudioURL] = true
		word.AddPronunciation(entities.Pronunciation{
			ID:               utils.GenerateID("p_", word.ID, phonetic.AudioURL),
			AudioURL:         phonetic.AudioURL,
			AudioDescription: "Sample from " + source,
			Definition:       result.Definition,
			PhoneticSpelling: phonetic.Text,
			Type:             entities.PronunciationTypeSample,
		})
		added++
	}
	return added, nil
}

func NewEnrichWordQueue(store WordEnricher, dictClient dictionary.Client) backlite.Queue {
	return backlite.NewQueue(EnrichWordProcessor(store, dictClient))
}
