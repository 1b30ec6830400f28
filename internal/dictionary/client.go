package dictionary

import (
	"context"
	"errors"
)

// ErrWordNotFound is returned when the provider has no entry for a word.
var ErrWordNotFound = errors.New("word not found in dictionary")

// Phonetic is one spoken form reported by a provider.
type Phonetic struct {
	Text     string
	AudioURL string
}

// LookupResult contains the result of a dictionary lookup.
type LookupResult struct {
	Word             string
	Definition       string
	PhoneticSpelling string
	Sentence         string
	Phonetics        []Phonetic
}

// Client defines the interface for dictionary API providers.
type Client interface {
	Lookup(ctx context.Context, word string) (*LookupResult, error)
	Name() string
}
