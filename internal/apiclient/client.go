// Package apiclient is the HTTP client used by the practice tooling. Reads
// that have a local cache fall back to it when the server is unreachable
// and refresh it on success, so practice keeps working offline.
package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/ozgurkara/gunluk-kelime/internal/domain/entities"
	"github.com/ozgurkara/gunluk-kelime/internal/localstore"
)

type Client struct {
	baseURL string
	http    *http.Client
	cache   *localstore.Store
}

func New(baseURL string, cache *localstore.Store) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		cache:   cache,
	}
}

// apiError is a non-2xx response decoded from the server's {message} body.
type apiError struct {
	Status  int
	Message string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

func (c *Client) get(ctx context.Context, path string, query url.Values, v any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var body struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&body)
		return &apiError{Status: resp.StatusCode, Message: body.Message}
	}

	return json.NewDecoder(resp.Body).Decode(v)
}

// Today fetches the word of the day, falling back to the cached copy when
// the server cannot be reached.
func (c *Client) Today(ctx context.Context) (*entities.DailyWordWithWord, error) {
	var today entities.DailyWordWithWord
	if err := c.get(ctx, "/api/word/today", nil, &today); err != nil {
		if cached := c.cache.TodayWord(); cached != nil {
			return cached, nil
		}
		return nil, err
	}

	_ = c.cache.SaveTodayWord(today)
	return &today, nil
}

// History fetches the daily-word history, falling back to the cached copy
// when the server cannot be reached.
func (c *Client) History(ctx context.Context, limit int) ([]entities.DailyWordWithWord, error) {
	query := url.Values{"limit": {strconv.Itoa(limit)}}

	var history []entities.DailyWordWithWord
	if err := c.get(ctx, "/api/word/history", query, &history); err != nil {
		if cached := c.cache.History(); cached != nil {
			return cached, nil
		}
		return nil, err
	}

	_ = c.cache.SaveHistory(history)
	return history, nil
}

// Search looks words up on the server and records the hits in the
// searched-words cache for offline lookup.
func (c *Client) Search(ctx context.Context, query string) ([]entities.Word, error) {
	q := url.Values{"q": {query}}

	var words []entities.Word
	if err := c.get(ctx, "/api/words/search", q, &words); err != nil {
		return nil, err
	}

	for _, w := range words {
		_ = c.cache.AddSearchedWord(w)
	}

	return words, nil
}

// Word fetches a single word by id, falling back to the local caches when
// the server cannot be reached.
func (c *Client) Word(ctx context.Context, id int) (*entities.Word, error) {
	var word entities.Word
	if err := c.get(ctx, "/api/word/"+strconv.Itoa(id), nil, &word); err != nil {
		if cached := c.cache.WordByID(id); cached != nil {
			return cached, nil
		}
		return nil, err
	}

	return &word, nil
}

// AllWords fetches the full catalog. There is no local cache for it; quiz
// generation needs fresh distractors.
func (c *Client) AllWords(ctx context.Context) ([]entities.Word, error) {
	var words []entities.Word
	if err := c.get(ctx, "/api/words", nil, &words); err != nil {
		return nil, err
	}
	return words, nil
}
