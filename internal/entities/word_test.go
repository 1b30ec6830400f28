package entities

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWord_AddPronunciation(t *testing.T) {
	word := NewWord("8f7d1b9e3a2c5f6e", "aberration")

	p := word.AddPronunciation(Pronunciation{ID: "1", Type: PronunciationTypeSample})

	assert.Equal(t, word.ID, p.WordID)
	items, ok := word.Pronunciations.Items()
	require.True(t, ok)
	require.Len(t, items, 1)
	assert.Equal(t, "1", items[0].ID)
}

func TestWord_AddToUnresolvedCollection(t *testing.T) {
	word := &Word{ID: "w1"}

	s := word.AddStageWord(*NewStageWord("s1", time.Now()))

	assert.Equal(t, "w1", s.WordID)
	_, ok := word.StageWords.Items()
	assert.False(t, ok, "an unresolved view stays unresolved")
}

func TestWord_SameAs(t *testing.T) {
	a := &Word{ID: "w1", WordName: "one"}
	b := &Word{ID: "w1", WordName: "other"}
	c := &Word{ID: "w2", WordName: "one"}

	assert.True(t, a.SameAs(b))
	assert.False(t, a.SameAs(c))
	assert.False(t, a.SameAs(nil))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		entity  interface{ Validate() error }
		wantErr error
	}{
		{"word ok", &Word{ID: "w1"}, nil},
		{"word without id", &Word{}, ErrConstraintViolation},
		{"pronunciation ok", &Pronunciation{ID: "p1", WordID: "w1", Type: PronunciationTypeSample}, nil},
		{"pronunciation without word", &Pronunciation{ID: "p1", Type: PronunciationTypeSample}, ErrConstraintViolation},
		{"pronunciation without type", &Pronunciation{ID: "p1", WordID: "w1"}, ErrUnknownEnumValue},
		{"stage word ok", &StageWord{ID: "s1", WordID: "w1", Status: StageStatusDone}, nil},
		{"stage word without word", &StageWord{ID: "s1", Status: StageStatusDone}, ErrConstraintViolation},
		{"stage word bad status", &StageWord{ID: "s1", WordID: "w1", Status: "LATER"}, ErrUnknownEnumValue},
		{"stage word negative listens", &StageWord{ID: "s1", WordID: "w1", Status: StageStatusDone, ListenedQty: -1}, ErrConstraintViolation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entity.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPronunciation_JSONOmitsParent(t *testing.T) {
	p := Pronunciation{ID: "1", WordID: "8f7d1b9e3a2c5f6e", Type: PronunciationTypeSample, AudioDuration: 1}

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.NotContains(t, fields, "word")
	assert.NotContains(t, fields, "wordId")
	assert.NotContains(t, fields, "WordID")
	assert.Equal(t, "SAMPLE", fields["type"])
	assert.EqualValues(t, 1, fields["audioDuration"])
}

func TestStageWord_JSONOmitsParent(t *testing.T) {
	s := StageWord{ID: "s1", WordID: "w1", Status: StageStatusPending, LastUpdatedDateTime: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)}

	data, err := json.Marshal(s)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.NotContains(t, fields, "word")
	assert.NotContains(t, fields, "wordId")
	assert.Equal(t, "PENDING", fields["status"])
	assert.Equal(t, "2024-01-02T03:04:05Z", fields["lastUpdatedDateTime"])
}

func TestWord_JSONUnresolvedCollectionsOmitted(t *testing.T) {
	loads := 0
	word := Word{ID: "w1", WordName: "aberration", Level: 3}
	word.Pronunciations = BoundCollection(func(ctx context.Context) ([]Pronunciation, error) {
		loads++
		return nil, nil
	})

	data, err := json.Marshal(word)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.NotContains(t, fields, "pronunciations")
	assert.NotContains(t, fields, "stageWords")
	assert.NotContains(t, fields, "createdAt")
	assert.Equal(t, "aberration", fields["wordName"])
	assert.Zero(t, loads, "serialization must not resolve collections")
}

func TestWord_JSONResolvedCollectionsIncluded(t *testing.T) {
	word := NewWord("8f7d1b9e3a2c5f6e", "aberration")
	word.AddPronunciation(Pronunciation{ID: "1", Type: PronunciationTypeSample})

	data, err := json.Marshal(word)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"id": "8f7d1b9e3a2c5f6e",
		"wordName": "aberration",
		"definition": "",
		"phoneticSpelling": "",
		"sentence": "",
		"isActive": true,
		"level": 0,
		"pronunciations": [{
			"id": "1",
			"audioDescription": "",
			"audioUrl": "",
			"audioDuration": 0,
			"audioSize": 0,
			"definition": "",
			"phoneticSpelling": "",
			"speakerGender": "",
			"type": "SAMPLE"
		}],
		"stageWords": []
	}`, string(data))
}

func TestWord_UnmarshalNestedChildren(t *testing.T) {
	payload := `{
		"id": "8f7d1b9e3a2c5f6e",
		"wordName": "aberration",
		"level": 3,
		"pronunciations": [{"id": "1", "type": "SAMPLE", "audioDuration": 1}]
	}`

	var word Word
	require.NoError(t, json.Unmarshal([]byte(payload), &word))

	assert.Equal(t, "aberration", word.WordName)
	assert.Equal(t, 3, word.Level)

	items, ok := word.Pronunciations.Items()
	require.True(t, ok)
	require.Len(t, items, 1)
	assert.Equal(t, "8f7d1b9e3a2c5f6e", items[0].WordID)
	assert.Equal(t, PronunciationTypeSample, items[0].Type)

	_, ok = word.StageWords.Items()
	assert.False(t, ok, "absent key leaves the collection unresolved")
}

func TestWord_UnmarshalRejectsUnknownEnum(t *testing.T) {
	payload := `{"id": "w1", "pronunciations": [{"id": "1", "type": "SPOKEN"}]}`

	var word Word
	err := json.Unmarshal([]byte(payload), &word)

	assert.True(t, errors.Is(err, ErrUnknownEnumValue), "got %v", err)
}
