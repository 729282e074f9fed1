package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ozgurkara/gunluk-kelime/internal/domain/entities"
	"github.com/ozgurkara/gunluk-kelime/internal/repository/memory"
	"github.com/ozgurkara/gunluk-kelime/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestAPI wires the full stack over an in-memory store.
func newTestAPI(t *testing.T) (*gin.Engine, *memory.Store) {
	t.Helper()

	store := memory.NewStore()

	words := service.NewWordService(store.Words())
	daily := service.NewDailyWordService(store.DailyWords(), store.Words(), rand.New(rand.NewSource(1)))
	stories := service.NewStoryService(store.Stories(), store.Words())

	h := NewHandler(words, daily, stories, zap.NewNop())
	return h.Router(), store
}

func addWords(t *testing.T, store *memory.Store, terms ...[2]string) []entities.Word {
	t.Helper()

	created := make([]entities.Word, 0, len(terms))
	for _, term := range terms {
		w, err := store.Create(context.Background(), entities.Word{Turkish: term[0], English: term[1]})
		if err != nil {
			t.Fatalf("Create(%q): %v", term[0], err)
		}
		created = append(created, *w)
	}
	return created
}

func doRequest(t *testing.T, router *gin.Engine, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestTodayWordEmptyCatalog(t *testing.T) {
	router, _ := newTestAPI(t)

	rec := doRequest(t, router, http.MethodGet, "/api/word/today", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}

	body := decodeBody[map[string]string](t, rec)
	if body["message"] != "No words available" {
		t.Errorf("message = %q, want %q", body["message"], "No words available")
	}
}

func TestTodayWordAssignsOnce(t *testing.T) {
	router, store := newTestAPI(t)
	addWords(t, store,
		[2]string{"Merhaba", "Hello"},
		[2]string{"Su", "Water"},
		[2]string{"Kitap", "Book"},
	)

	rec := doRequest(t, router, http.MethodGet, "/api/word/today", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}
	first := decodeBody[entities.DailyWordWithWord](t, rec)
	if first.Word.ID == 0 {
		t.Fatal("today's word has no id")
	}

	// Repeated requests on the same day return the same assignment.
	rec = doRequest(t, router, http.MethodGet, "/api/word/today", nil)
	second := decodeBody[entities.DailyWordWithWord](t, rec)
	if second.Word.ID != first.Word.ID {
		t.Errorf("second request got word %d, want %d", second.Word.ID, first.Word.ID)
	}
	if second.DailyWord.ID != first.DailyWord.ID {
		t.Errorf("second request got assignment %d, want %d", second.DailyWord.ID, first.DailyWord.ID)
	}
}

func TestWordHistory(t *testing.T) {
	router, store := newTestAPI(t)
	words := addWords(t, store,
		[2]string{"Merhaba", "Hello"},
		[2]string{"Su", "Water"},
		[2]string{"Kitap", "Book"},
	)

	// No history yet: an empty array, not null and not an error.
	rec := doRequest(t, router, http.MethodGet, "/api/word/history", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if body := rec.Body.String(); body != "[]" {
		t.Errorf("empty history body = %s, want []", body)
	}

	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	for i, w := range words {
		if _, err := store.CreateDaily(context.Background(), w.ID, base.AddDate(0, 0, i)); err != nil {
			t.Fatalf("CreateDaily: %v", err)
		}
	}

	rec = doRequest(t, router, http.MethodGet, "/api/word/history?limit=2", nil)
	history := decodeBody[[]entities.DailyWordWithWord](t, rec)
	if len(history) != 2 {
		t.Fatalf("history has %d entries, want 2", len(history))
	}
	if history[0].Word.ID != words[2].ID {
		t.Errorf("most recent word = %d, want %d", history[0].Word.ID, words[2].ID)
	}

	// A malformed limit falls back to the default instead of failing.
	rec = doRequest(t, router, http.MethodGet, "/api/word/history?limit=abc", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("status with bad limit = %d, want 200", rec.Code)
	}
}

func TestSearchWords(t *testing.T) {
	router, store := newTestAPI(t)
	addWords(t, store,
		[2]string{"Merhaba", "Hello"},
		[2]string{"Su", "Water"},
		[2]string{"Teşekkür ederim", "Thank you"},
	)

	// Queries under two characters are rejected.
	for _, q := range []string{"", "s"} {
		rec := doRequest(t, router, http.MethodGet, "/api/words/search?q="+q, nil)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("search %q status = %d, want 400", q, rec.Code)
		}
	}

	rec := doRequest(t, router, http.MethodGet, "/api/words/search?q=wat", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	results := decodeBody[[]entities.Word](t, rec)
	if len(results) != 1 || results[0].Turkish != "Su" {
		t.Fatalf("search results = %+v, want only Su", results)
	}

	// No matches is an empty array, not null.
	rec = doRequest(t, router, http.MethodGet, "/api/words/search?q=zz", nil)
	if body := rec.Body.String(); body != "[]" {
		t.Errorf("no-match body = %s, want []", body)
	}
}

func TestWordByID(t *testing.T) {
	router, store := newTestAPI(t)
	words := addWords(t, store, [2]string{"Merhaba", "Hello"})

	rec := doRequest(t, router, http.MethodGet, "/api/word/"+strconv.Itoa(words[0].ID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	got := decodeBody[entities.Word](t, rec)
	if got.Turkish != "Merhaba" {
		t.Errorf("word = %+v, want Merhaba", got)
	}

	rec = doRequest(t, router, http.MethodGet, "/api/word/999", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing word status = %d, want 404", rec.Code)
	}

	rec = doRequest(t, router, http.MethodGet, "/api/word/abc", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad id status = %d, want 400", rec.Code)
	}
}

func TestCreateWord(t *testing.T) {
	router, _ := newTestAPI(t)

	req := map[string]any{
		"turkish":         "Merhaba",
		"english":         "Hello",
		"pronunciation":   "/mer-ha-ba/",
		"partOfSpeech":    "greeting",
		"exampleTurkish1": "Merhaba, benim adım Ali.",
		"exampleEnglish1": "Hello, my name is Ali.",
		"exampleTurkish2": "Merhaba, nasılsın?",
		"exampleEnglish2": "Hello, how are you?",
		"notes":           "The most common greeting.",
	}

	rec := doRequest(t, router, http.MethodPost, "/api/word", req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", rec.Code, rec.Body.String())
	}
	created := decodeBody[entities.Word](t, rec)
	if created.ID == 0 {
		t.Error("created word has no id")
	}

	// Missing required fields are rejected.
	delete(req, "english")
	rec = doRequest(t, router, http.MethodPost, "/api/word", req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("incomplete word status = %d, want 400", rec.Code)
	}
}

func TestCreateDailyWord(t *testing.T) {
	router, store := newTestAPI(t)
	words := addWords(t, store,
		[2]string{"Merhaba", "Hello"},
		[2]string{"Su", "Water"},
	)

	rec := doRequest(t, router, http.MethodPost, "/api/word/daily", map[string]any{
		"wordId": words[0].ID,
		"date":   "2025-03-10",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", rec.Code, rec.Body.String())
	}

	// Assigning the same date again conflicts.
	rec = doRequest(t, router, http.MethodPost, "/api/word/daily", map[string]any{
		"wordId": words[1].ID,
		"date":   "2025-03-10",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate date status = %d, want 409", rec.Code)
	}
	body := decodeBody[map[string]string](t, rec)
	if body["message"] != "A word is already set for this date" {
		t.Errorf("message = %q, want the conflict message", body["message"])
	}

	// Unknown words and malformed dates are rejected up front.
	rec = doRequest(t, router, http.MethodPost, "/api/word/daily", map[string]any{
		"wordId": 999,
		"date":   "2025-03-11",
	})
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown word status = %d, want 404", rec.Code)
	}

	rec = doRequest(t, router, http.MethodPost, "/api/word/daily", map[string]any{
		"wordId": words[0].ID,
		"date":   "10-03-2025",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad date status = %d, want 400", rec.Code)
	}
}

func TestStoriesEndpoints(t *testing.T) {
	router, store := newTestAPI(t)
	words := addWords(t, store, [2]string{"Su", "Water"})

	story, err := store.CreateStory(context.Background(), entities.Story{
		Title:           "Kahvaltı",
		TitleEnglish:    "Breakfast",
		DifficultyLevel: "beginner",
		ContentTurkish:  "Ayşe her sabah erken kalkar.",
		ContentEnglish:  "Ayşe wakes up early every morning.",
	})
	if err != nil {
		t.Fatalf("CreateStory: %v", err)
	}

	rec := doRequest(t, router, http.MethodGet, "/api/stories", nil)
	stories := decodeBody[[]entities.Story](t, rec)
	if len(stories) != 1 {
		t.Fatalf("got %d stories, want 1", len(stories))
	}

	rec = doRequest(t, router, http.MethodGet, "/api/stories?difficulty=advanced", nil)
	if body := rec.Body.String(); body != "[]" {
		t.Errorf("advanced stories body = %s, want []", body)
	}

	rec = doRequest(t, router, http.MethodGet, "/api/story/"+strconv.Itoa(story.ID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("story status = %d, want 200", rec.Code)
	}

	rec = doRequest(t, router, http.MethodPost, "/api/story/word", map[string]any{
		"storyId": story.ID,
		"wordId":  words[0].ID,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("add story word status = %d, want 201, body %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, router, http.MethodGet, "/api/story/"+strconv.Itoa(story.ID)+"/words", nil)
	linked := decodeBody[[]entities.StoryWordWithWord](t, rec)
	if len(linked) != 1 || linked[0].Word.Turkish != "Su" {
		t.Fatalf("story words = %+v, want Su linked", linked)
	}

	rec = doRequest(t, router, http.MethodPost, "/api/story/word", map[string]any{
		"storyId": 999,
		"wordId":  words[0].ID,
	})
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown story status = %d, want 404", rec.Code)
	}
}
