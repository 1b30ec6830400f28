package dictionary

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const aberrationResponse = `[{
	"word": "aberration",
	"phonetic": "/ˌæbəˈreɪʃən/",
	"phonetics": [
		{"text": "/ˌæbəˈreɪʃən/", "audio": "https://audio.example/aberration-us.mp3"},
		{"text": "/ˌæbəˈreɪʃən/", "audio": ""},
		{"text": "", "audio": "https://audio.example/aberration-us.mp3"},
		{"text": "/ˌabəˈreɪʃ(ə)n/", "audio": "https://audio.example/aberration-uk.mp3"}
	],
	"meanings": [
		{"partOfSpeech": "noun", "definitions": [
			{"definition": "The act of wandering; deviation from truth or moral rectitude."},
			{"definition": "A departure from what is normal.", "example": "They described the outbreak as a statistical aberration."}
		]}
	]
}]`

func newTestServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/aberration", r.URL.Path)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFreeDictionaryClient_Lookup(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, aberrationResponse)
	client := NewFreeDictionaryClient(srv.URL)

	result, err := client.Lookup(context.Background(), "  Aberration ")

	require.NoError(t, err)
	assert.Equal(t, "aberration", result.Word)
	assert.Equal(t, "/ˌæbəˈreɪʃən/", result.PhoneticSpelling)
	assert.Equal(t, "The act of wandering; deviation from truth or moral rectitude.", result.Definition)
	assert.Equal(t, "They described the outbreak as a statistical aberration.", result.Sentence)
	require.Len(t, result.Phonetics, 2, "empty and duplicate audio entries are dropped")
	assert.Equal(t, "https://audio.example/aberration-us.mp3", result.Phonetics[0].AudioURL)
	assert.Equal(t, "https://audio.example/aberration-uk.mp3", result.Phonetics[1].AudioURL)
}

func TestFreeDictionaryClient_NotFound(t *testing.T) {
	srv := newTestServer(t, http.StatusNotFound, `{"title":"No Definitions Found"}`)
	client := NewFreeDictionaryClient(srv.URL)

	_, err := client.Lookup(context.Background(), "aberration")

	assert.ErrorIs(t, err, ErrWordNotFound)
}

func TestFreeDictionaryClient_ServerError(t *testing.T) {
	srv := newTestServer(t, http.StatusBadGateway, "")
	client := NewFreeDictionaryClient(srv.URL)

	_, err := client.Lookup(context.Background(), "aberration")

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrWordNotFound)
}

func TestFreeDictionaryClient_EmptyWord(t *testing.T) {
	client := NewFreeDictionaryClient("")

	_, err := client.Lookup(context.Background(), "   ")

	assert.Error(t, err)
	assert.Equal(t, "freedictionary", client.Name())
}
