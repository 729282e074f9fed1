package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/spf13/afero"

	"github.com/ozgurkara/gunluk-kelime/internal/domain/entities"
	"github.com/ozgurkara/gunluk-kelime/internal/localstore"
)

func newCache(t *testing.T) *localstore.Store {
	t.Helper()

	cache, err := localstore.New(afero.NewMemMapFs(), "data")
	if err != nil {
		t.Fatalf("localstore.New: %v", err)
	}
	return cache
}

func sampleToday() entities.DailyWordWithWord {
	return entities.DailyWordWithWord{
		DailyWord: entities.DailyWord{
			ID:        1,
			WordID:    2,
			Date:      time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
			CreatedAt: time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC),
		},
		Word: entities.Word{ID: 2, Turkish: "Su", English: "Water"},
	}
}

func TestTodayRefreshesCache(t *testing.T) {
	today := sampleToday()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/word/today" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(today)
	}))
	defer srv.Close()

	cache := newCache(t)
	client := New(srv.URL, cache)

	got, err := client.Today(context.Background())
	if err != nil {
		t.Fatalf("Today: %v", err)
	}
	if got.Word.Turkish != "Su" {
		t.Errorf("today = %+v, want Su", got)
	}

	// The fetch populated the offline cache.
	cached := cache.TodayWord()
	if cached == nil || cached.Word.ID != 2 {
		t.Fatalf("cache after fetch = %+v, want word 2", cached)
	}
}

func TestTodayFallsBackToCache(t *testing.T) {
	cache := newCache(t)
	if err := cache.SaveTodayWord(sampleToday()); err != nil {
		t.Fatalf("SaveTodayWord: %v", err)
	}

	// Point at a server that is not there.
	client := New("http://127.0.0.1:1", cache)

	got, err := client.Today(context.Background())
	if err != nil {
		t.Fatalf("Today with dead server: %v", err)
	}
	if got.Word.ID != 2 {
		t.Errorf("fallback word = %+v, want the cached word 2", got)
	}

	// Without a cached copy the network error surfaces.
	empty := New("http://127.0.0.1:1", newCache(t))
	if _, err := empty.Today(context.Background()); err == nil {
		t.Fatal("Today with dead server and empty cache did not error")
	}
}

func TestSearchRecordsHits(t *testing.T) {
	words := []entities.Word{
		{ID: 1, Turkish: "Su", English: "Water"},
		{ID: 2, Turkish: "Kitap", English: "Book"},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "su" {
			t.Errorf("query = %q, want su", got)
		}
		_ = json.NewEncoder(w).Encode(words)
	}))
	defer srv.Close()

	cache := newCache(t)
	client := New(srv.URL, cache)

	got, err := client.Search(context.Background(), "su")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d words, want 2", len(got))
	}

	// Every hit is now available offline.
	for _, w := range words {
		if cached := cache.WordByID(w.ID); cached == nil {
			t.Errorf("word %d not in the searched-words cache", w.ID)
		}
	}
}

func TestErrorResponsesCarryServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Search query must be at least 2 characters"})
	}))
	defer srv.Close()

	client := New(srv.URL, newCache(t))

	_, err := client.Search(context.Background(), "s")
	if err == nil {
		t.Fatal("Search did not surface the server error")
	}

	var apiErr *apiError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %T, want *apiError", err)
	}
	if apiErr.Status != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", apiErr.Status)
	}
	if apiErr.Message != "Search query must be at least 2 characters" {
		t.Errorf("message = %q, want the server's message", apiErr.Message)
	}
}

func TestWordFallsBackToCaches(t *testing.T) {
	cache := newCache(t)
	if err := cache.AddSearchedWord(entities.Word{ID: 5, Turkish: "Evet", English: "Yes"}); err != nil {
		t.Fatalf("AddSearchedWord: %v", err)
	}

	client := New("http://127.0.0.1:1", cache)

	got, err := client.Word(context.Background(), 5)
	if err != nil {
		t.Fatalf("Word with dead server: %v", err)
	}
	if got.Turkish != "Evet" {
		t.Errorf("word = %+v, want the cached Evet", got)
	}

	if _, err := client.Word(context.Background(), 6); err == nil {
		t.Fatal("Word for an uncached id did not error")
	}
}
