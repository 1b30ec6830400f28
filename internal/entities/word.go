package entities

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// Word is the aggregate root of the vocabulary. Its ID is supplied by the
// client and never generated by the store.
type Word struct {
	ID               string `gorm:"primaryKey;size:64" json:"id"`
	WordName         string `gorm:"index;size:255" json:"wordName"`
	Definition       string `gorm:"type:text" json:"definition"`
	PhoneticSpelling string `gorm:"size:255" json:"phoneticSpelling"`
	Sentence         string `gorm:"type:text" json:"sentence"`
	IsActive         bool   `json:"isActive"`
	Level            int    `gorm:"index" json:"level"`

	// Derived views over the children's word_id column.
	Pronunciations Collection[Pronunciation] `gorm:"-" json:"-"`
	StageWords     Collection[StageWord]     `gorm:"-" json:"-"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Pronunciation is an audio rendering of a word.
type Pronunciation struct {
	ID               string            `gorm:"primaryKey;size:64" json:"id"`
	WordID           string            `gorm:"index;not null;size:64" json:"-"`
	AudioDescription string            `gorm:"type:text" json:"audioDescription"`
	AudioURL         string            `gorm:"size:2048" json:"audioUrl"`
	AudioDuration    int               `json:"audioDuration"`
	AudioSize        int               `json:"audioSize"`
	Definition       string            `gorm:"type:text" json:"definition"`
	PhoneticSpelling string            `gorm:"size:255" json:"phoneticSpelling"`
	SpeakerGender    string            `gorm:"size:20" json:"speakerGender"`
	Type             PronunciationType `gorm:"size:20;not null" json:"type"`
	CreatedAt        time.Time         `json:"-"`
	UpdatedAt        time.Time         `json:"-"`
}

// StageWord tracks a learner's progress on a word.
type StageWord struct {
	ID                  string      `gorm:"primaryKey;size:64" json:"id"`
	WordID              string      `gorm:"index;not null;size:64" json:"-"`
	Status              StageStatus `gorm:"index;size:20;not null" json:"status"`
	ListenedQty         int         `json:"listenedQty"`
	LastUpdatedDateTime time.Time   `gorm:"index" json:"lastUpdatedDateTime"`
	CreatedAt           time.Time   `json:"-"`
	UpdatedAt           time.Time   `json:"-"`
}

func (Word) TableName() string {
	return "words"
}

func (Pronunciation) TableName() string {
	return "pronunciations"
}

func (StageWord) TableName() string {
	return "stage_words"
}

// NewWord returns a word that has no children yet. Both collections are
// resolved and empty, so children added before the first save are cascaded.
func NewWord(id, wordName string) *Word {
	return &Word{
		ID:             id,
		WordName:       wordName,
		IsActive:       true,
		Pronunciations: ResolvedCollection[Pronunciation](nil),
		StageWords:     ResolvedCollection[StageWord](nil),
	}
}

// NewStageWord returns a pending stage word that is not yet attached.
func NewStageWord(id string, now time.Time) *StageWord {
	return &StageWord{
		ID:                  id,
		Status:              StageStatusPending,
		LastUpdatedDateTime: now,
	}
}

// SameAs compares identity only.
func (w *Word) SameAs(other *Word) bool {
	return other != nil && w.ID == other.ID
}

func (p *Pronunciation) SameAs(other *Pronunciation) bool {
	return other != nil && p.ID == other.ID
}

func (s *StageWord) SameAs(other *StageWord) bool {
	return other != nil && s.ID == other.ID
}

// AttachTo points the pronunciation at its owning word. The foreign key is
// the only record of the association.
func (p *Pronunciation) AttachTo(w *Word) {
	p.WordID = w.ID
}

// IsAttached reports whether an owner has been set.
func (p *Pronunciation) IsAttached() bool {
	return p.WordID != ""
}

func (s *StageWord) AttachTo(w *Word) {
	s.WordID = w.ID
}

func (s *StageWord) IsAttached() bool {
	return s.WordID != ""
}

// AddPronunciation attaches p to w and, if the collection is already
// resolved, records it there too. It returns the attached copy.
func (w *Word) AddPronunciation(p Pronunciation) Pronunciation {
	p.AttachTo(w)
	w.Pronunciations.add(p)
	return p
}

// AddStageWord attaches s to w the same way AddPronunciation does.
func (w *Word) AddStageWord(s StageWord) StageWord {
	s.AttachTo(w)
	w.StageWords.add(s)
	return s
}

// Validate checks the fields a word needs before it can be stored.
func (w *Word) Validate() error {
	if w.ID == "" {
		return &ConstraintError{Entity: "Word", Field: "id", Reason: "must be set"}
	}
	return nil
}

// Validate checks the fields and owner reference of a pronunciation.
func (p *Pronunciation) Validate() error {
	if p.ID == "" {
		return &ConstraintError{Entity: "Pronunciation", Field: "id", Reason: "must be set"}
	}
	if !p.IsAttached() {
		return &ConstraintError{Entity: "Pronunciation", Field: "word", Reason: "must not be null"}
	}
	if !p.Type.Valid() {
		return &UnknownEnumValueError{Enum: "PronunciationType", Value: string(p.Type)}
	}
	return nil
}

// BeforeSave stores timestamps in UTC so that range comparisons on the text
// column stay ordered.
func (s *StageWord) BeforeSave(tx *gorm.DB) error {
	s.LastUpdatedDateTime = s.LastUpdatedDateTime.UTC()
	return nil
}

// Validate checks the fields and owner reference of a stage word.
func (s *StageWord) Validate() error {
	if s.ID == "" {
		return &ConstraintError{Entity: "StageWord", Field: "id", Reason: "must be set"}
	}
	if !s.IsAttached() {
		return &ConstraintError{Entity: "StageWord", Field: "word", Reason: "must not be null"}
	}
	if !s.Status.Valid() {
		return &UnknownEnumValueError{Enum: "StageStatus", Value: string(s.Status)}
	}
	if s.ListenedQty < 0 {
		return &ConstraintError{Entity: "StageWord", Field: "listenedQty", Reason: "must not be negative"}
	}
	return nil
}

// MarshalJSON writes child collections only when they are already resolved.
// It never loads anything.
func (w Word) MarshalJSON() ([]byte, error) {
	type plain Word
	out := struct {
		plain
		Pronunciations *[]Pronunciation `json:"pronunciations,omitempty"`
		StageWords     *[]StageWord     `json:"stageWords,omitempty"`
	}{plain: plain(w)}

	if items, ok := w.Pronunciations.Items(); ok {
		out.Pronunciations = &items
	}
	if items, ok := w.StageWords.Items(); ok {
		out.StageWords = &items
	}
	return json.Marshal(out)
}

// UnmarshalJSON accepts nested children. Nested children are attached to the
// decoded word and become its resolved collection.
func (w *Word) UnmarshalJSON(data []byte) error {
	type plain Word
	in := struct {
		*plain
		Pronunciations *[]Pronunciation `json:"pronunciations"`
		StageWords     *[]StageWord     `json:"stageWords"`
	}{plain: (*plain)(w)}

	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	if in.Pronunciations != nil {
		items := *in.Pronunciations
		for i := range items {
			items[i].AttachTo(w)
		}
		w.Pronunciations.Set(items)
	}
	if in.StageWords != nil {
		items := *in.StageWords
		for i := range items {
			items[i].AttachTo(w)
		}
		w.StageWords.Set(items)
	}
	return nil
}
