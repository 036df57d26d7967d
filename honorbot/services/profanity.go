package services

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
	"unicode"

	lru "github.com/hashicorp/golang-lru"
	"github.com/sahilm/fuzzy"
)

// BadWordStore is the persistent bad-word table.
type BadWordStore interface {
	ListBadWords(ctx context.Context) ([]string, error)
	AddBadWord(ctx context.Context, word, addedBy string) (bool, error)
	RemoveBadWord(ctx context.Context, word string) (bool, error)
}

type VerdictSource string

const (
	SourceNone   VerdictSource = ""
	SourceTable  VerdictSource = "table"
	SourceRemote VerdictSource = "remote"
)

type Verdict struct {
	Flagged bool
	// Word is the matched table entry. It is empty for remote verdicts.
	Word   string
	Source VerdictSource
}

type ProfanityOptions struct {
	// RemoteURL is queried with ?text=<message> and must answer "true" or
	// "false". Empty disables the remote check.
	RemoteURL  string
	Timeout    time.Duration
	CacheSize  int
	RefreshTTL time.Duration
	HTTPClient *http.Client
}

type ProfanityFilter struct {
	store     BadWordStore
	remoteURL string
	client    *http.Client
	ttl       time.Duration
	verdicts  *lru.Cache

	mu       sync.RWMutex
	words    []string
	patterns []string
	loadedAt time.Time
}

func NewProfanityFilter(store BadWordStore, opts ProfanityOptions) (*ProfanityFilter, error) {
	if opts.CacheSize <= 0 {
		opts.CacheSize = 1024
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 3 * time.Second
	}
	if opts.RefreshTTL <= 0 {
		opts.RefreshTTL = 5 * time.Minute
	}

	cache, err := lru.New(opts.CacheSize)
	if err != nil {
		return nil, err
	}

	client := &http.Client{}
	if opts.HTTPClient != nil {
		c := *opts.HTTPClient
		client = &c
	}
	client.Timeout = opts.Timeout

	return &ProfanityFilter{
		store:     store,
		remoteURL: opts.RemoteURL,
		client:    client,
		ttl:       opts.RefreshTTL,
		verdicts:  cache,
	}, nil
}

// Check never fails: store and remote errors are logged and treated as
// "not flagged".
func (f *ProfanityFilter) Check(ctx context.Context, text string) Verdict {
	normalized := normalizeText(text)
	if normalized == "" {
		return Verdict{}
	}

	padded := " " + normalized + " "
	words, patterns := f.snapshot(ctx)
	for i, p := range patterns {
		if strings.Contains(padded, " "+p+" ") {
			return Verdict{Flagged: true, Word: words[i], Source: SourceTable}
		}
	}

	if f.remoteURL == "" {
		return Verdict{}
	}
	// The remote service sees the message as written; it also reads
	// punctuation.
	raw := strings.TrimSpace(text)
	if cached, ok := f.verdicts.Get(raw); ok {
		return remoteVerdict(cached.(bool))
	}

	flagged, err := f.remoteCheck(ctx, raw)
	if err != nil {
		slog.Warn("Remote profanity check failed",
			slog.String("type", "sys"),
			slog.String("component", "profanity"),
			slog.Any("error", err))
		return Verdict{}
	}
	f.verdicts.Add(raw, flagged)
	return remoteVerdict(flagged)
}

func remoteVerdict(flagged bool) Verdict {
	if !flagged {
		return Verdict{}
	}
	return Verdict{Flagged: true, Source: SourceRemote}
}

func (f *ProfanityFilter) remoteCheck(ctx context.Context, text string) (bool, error) {
	u, err := url.Parse(f.remoteURL)
	if err != nil {
		return false, err
	}
	q := u.Query()
	q.Set("text", text)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return false, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, &RemoteStatusError{StatusCode: resp.StatusCode}
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 64))
	if err != nil {
		return false, err
	}
	return strings.EqualFold(strings.TrimSpace(string(body)), "true"), nil
}

type RemoteStatusError struct {
	StatusCode int
}

func (e *RemoteStatusError) Error() string {
	return "remote profanity check returned " + http.StatusText(e.StatusCode)
}

// snapshot returns the stored words and their match patterns, index-aligned,
// reloading them once the refresh TTL has passed.
func (f *ProfanityFilter) snapshot(ctx context.Context) ([]string, []string) {
	f.mu.RLock()
	words, patterns, fresh := f.words, f.patterns, time.Since(f.loadedAt) < f.ttl
	f.mu.RUnlock()
	if fresh {
		return words, patterns
	}

	if err := f.Refresh(ctx); err != nil {
		slog.Error("Failed to refresh bad words",
			slog.String("type", "db"),
			slog.String("component", "profanity"),
			slog.Any("error", err))
		return words, patterns
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.words, f.patterns
}

func (f *ProfanityFilter) Refresh(ctx context.Context) error {
	stored, err := f.store.ListBadWords(ctx)
	if err != nil {
		return err
	}

	words := make([]string, 0, len(stored))
	patterns := make([]string, 0, len(stored))
	for _, w := range stored {
		if p := normalizeText(w); p != "" {
			words = append(words, w)
			patterns = append(patterns, p)
		}
	}

	f.mu.Lock()
	f.words, f.patterns = words, patterns
	f.loadedAt = time.Now()
	f.mu.Unlock()
	return nil
}

func (f *ProfanityFilter) invalidate() {
	f.mu.Lock()
	f.loadedAt = time.Time{}
	f.mu.Unlock()
	f.verdicts.Purge()
}

func (f *ProfanityFilter) Add(ctx context.Context, word, addedBy string) (bool, error) {
	added, err := f.store.AddBadWord(ctx, word, addedBy)
	if err != nil {
		return false, err
	}
	f.invalidate()
	return added, nil
}

func (f *ProfanityFilter) Remove(ctx context.Context, word string) (bool, error) {
	removed, err := f.store.RemoveBadWord(ctx, word)
	if err != nil {
		return false, err
	}
	f.invalidate()
	return removed, nil
}

// Seed adds words that are not yet in the table.
func (f *ProfanityFilter) Seed(ctx context.Context, words []string, addedBy string) error {
	for _, w := range words {
		if normalizeText(w) == "" {
			continue
		}
		if _, err := f.store.AddBadWord(ctx, w, addedBy); err != nil {
			return err
		}
	}
	f.invalidate()
	return nil
}

// Suggest ranks stored words against query for autocomplete.
func (f *ProfanityFilter) Suggest(ctx context.Context, query string, limit int) []string {
	words, _ := f.snapshot(ctx)
	query = strings.TrimSpace(strings.ToLower(query))

	var out []string
	if query == "" {
		out = words
	} else {
		for _, m := range fuzzy.Find(query, words) {
			out = append(out, m.Str)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// normalizeText lower-cases text and reduces it to words separated by single
// spaces. Apostrophes inside words are kept.
func normalizeText(text string) string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
	return strings.Join(fields, " ")
}
