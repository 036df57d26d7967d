package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryWords struct {
	mu    sync.Mutex
	words []string
	err   error
	lists int
}

func (m *memoryWords) ListBadWords(context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lists++
	if m.err != nil {
		return nil, m.err
	}
	return slices.Clone(m.words), nil
}

func (m *memoryWords) AddBadWord(_ context.Context, word, _ string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	word = strings.ToLower(strings.TrimSpace(word))
	if slices.Contains(m.words, word) {
		return false, nil
	}
	m.words = append(m.words, word)
	slices.Sort(m.words)
	return true, nil
}

func (m *memoryWords) RemoveBadWord(_ context.Context, word string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := slices.Index(m.words, strings.ToLower(word))
	if i < 0 {
		return false, nil
	}
	m.words = slices.Delete(m.words, i, i+1)
	return true, nil
}

func TestProfanityFilter_TableMatch(t *testing.T) {
	store := &memoryWords{words: []string{"heck", "dang it", "son of a gun"}}
	f, err := NewProfanityFilter(store, ProfanityOptions{})
	require.NoError(t, err)
	ctx := context.Background()

	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "whole word", text: "What the HECK!", want: "heck"},
		{name: "substring of a word is not a match", text: "checkmate", want: ""},
		{name: "phrase across punctuation", text: "oh, dang... it", want: "dang it"},
		{name: "phrase words must be adjacent", text: "dang, what is it", want: ""},
		{name: "long phrase", text: "You son of a gun.", want: "son of a gun"},
		{name: "clean", text: "thanks for the help", want: ""},
		{name: "empty", text: "  ...  ", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := f.Check(ctx, tt.text)
			assert.Equal(t, tt.want != "", v.Flagged)
			assert.Equal(t, tt.want, v.Word)
			if v.Flagged {
				assert.Equal(t, SourceTable, v.Source)
			}
		})
	}
}

func TestProfanityFilter_AddInvalidatesCache(t *testing.T) {
	store := &memoryWords{}
	f, err := NewProfanityFilter(store, ProfanityOptions{RefreshTTL: time.Hour})
	require.NoError(t, err)
	ctx := context.Background()

	assert.False(t, f.Check(ctx, "darn").Flagged)

	added, err := f.Add(ctx, "Darn", "admin")
	require.NoError(t, err)
	assert.True(t, added)
	assert.True(t, f.Check(ctx, "darn").Flagged)

	removed, err := f.Remove(ctx, "darn")
	require.NoError(t, err)
	assert.True(t, removed)
	assert.False(t, f.Check(ctx, "darn").Flagged)
}

func TestProfanityFilter_StoreFailureIsNotFlagged(t *testing.T) {
	store := &memoryWords{err: errors.New("db down")}
	f, err := NewProfanityFilter(store, ProfanityOptions{})
	require.NoError(t, err)

	assert.Equal(t, Verdict{}, f.Check(context.Background(), "heck"))
}

func TestProfanityFilter_Remote(t *testing.T) {
	var (
		calls atomic.Int32
		mu    sync.Mutex
		seen  []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		text := r.URL.Query().Get("text")
		mu.Lock()
		seen = append(seen, text)
		mu.Unlock()
		if strings.Contains(strings.ToLower(text), "rude") || strings.Contains(text, "r.u.d.e") {
			w.Write([]byte("true"))
			return
		}
		w.Write([]byte("false"))
	}))
	defer srv.Close()

	f, err := NewProfanityFilter(&memoryWords{}, ProfanityOptions{RemoteURL: srv.URL, HTTPClient: srv.Client()})
	require.NoError(t, err)
	ctx := context.Background()

	v := f.Check(ctx, "you are RUDE")
	assert.True(t, v.Flagged)
	assert.Equal(t, SourceRemote, v.Source)
	assert.Empty(t, v.Word)

	assert.True(t, f.Check(ctx, " you are RUDE ").Flagged)
	assert.Equal(t, int32(1), calls.Load(), "same message should hit the verdict cache")

	assert.False(t, f.Check(ctx, "you are kind").Flagged)
	assert.Equal(t, int32(2), calls.Load())

	assert.True(t, f.Check(ctx, "you are r.u.d.e!").Flagged)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"you are RUDE", "you are kind", "you are r.u.d.e!"}, seen)
}

func TestProfanityFilter_LeavesCallerClientAlone(t *testing.T) {
	client := &http.Client{Timeout: time.Minute}
	_, err := NewProfanityFilter(&memoryWords{}, ProfanityOptions{
		RemoteURL:  "http://localhost",
		Timeout:    time.Second,
		HTTPClient: client,
	})
	require.NoError(t, err)
	assert.Equal(t, time.Minute, client.Timeout)
}

func TestProfanityFilter_RemoteTimeoutFallsBackToClean(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	f, err := NewProfanityFilter(&memoryWords{}, ProfanityOptions{
		RemoteURL:  srv.URL,
		Timeout:    50 * time.Millisecond,
		HTTPClient: srv.Client(),
	})
	require.NoError(t, err)

	start := time.Now()
	v := f.Check(context.Background(), "anything at all")
	assert.False(t, v.Flagged)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestProfanityFilter_RemoteErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	f, err := NewProfanityFilter(&memoryWords{}, ProfanityOptions{RemoteURL: srv.URL, HTTPClient: srv.Client()})
	require.NoError(t, err)

	assert.False(t, f.Check(context.Background(), "rude").Flagged)
}

func TestProfanityFilter_Suggest(t *testing.T) {
	store := &memoryWords{words: []string{"blast", "dang it", "darn", "heck"}}
	f, err := NewProfanityFilter(store, ProfanityOptions{})
	require.NoError(t, err)
	ctx := context.Background()

	assert.Equal(t, []string{"blast", "dang it"}, f.Suggest(ctx, "", 2))

	got := f.Suggest(ctx, "dn", 25)
	assert.Contains(t, got, "darn")
	assert.Contains(t, got, "dang it")
	assert.NotContains(t, got, "heck")
}

func TestProfanityFilter_Seed(t *testing.T) {
	store := &memoryWords{words: []string{"heck"}}
	f, err := NewProfanityFilter(store, ProfanityOptions{})
	require.NoError(t, err)

	require.NoError(t, f.Seed(context.Background(), []string{"heck", "darn", "  "}, "config"))
	assert.Equal(t, []string{"darn", "heck"}, store.words)
}
