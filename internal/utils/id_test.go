package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateID(t *testing.T) {
	id := GenerateID("p_", "8f7d1b9e3a2c5f6e", "https://audio.example/a.mp3")

	assert.Len(t, id, len("p_")+16)
	assert.Equal(t, id, GenerateID("p_", "8f7d1b9e3a2c5f6e", "https://audio.example/a.mp3"))
	assert.NotEqual(t, id, GenerateID("p_", "8f7d1b9e3a2c5f6e", "https://audio.example/b.mp3"))
}

func TestGenerateID_KeyBoundaries(t *testing.T) {
	assert.NotEqual(t, GenerateID("", "ab", "c"), GenerateID("", "a", "bc"))
}
