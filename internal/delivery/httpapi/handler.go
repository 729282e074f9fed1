// Package httpapi exposes the word catalog, daily-word, and story services
// over REST.
package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ozgurkara/gunluk-kelime/internal/domain/entities"
	"github.com/ozgurkara/gunluk-kelime/internal/repository"
	"github.com/ozgurkara/gunluk-kelime/internal/service"
)

const dateLayout = "2006-01-02"

type Handler struct {
	words   *service.WordService
	daily   *service.DailyWordService
	stories *service.StoryService
	log     *zap.Logger
}

func NewHandler(
	words *service.WordService,
	daily *service.DailyWordService,
	stories *service.StoryService,
	log *zap.Logger,
) *Handler {
	return &Handler{
		words:   words,
		daily:   daily,
		stories: stories,
		log:     log,
	}
}

// Router builds the gin engine with all API routes registered.
func (h *Handler) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	api := r.Group("/api")
	{
		api.GET("/word/today", h.todayWord)
		api.GET("/word/history", h.wordHistory)
		api.GET("/word/:id", h.wordByID)
		api.POST("/word", h.createWord)
		api.POST("/word/daily", h.createDailyWord)

		api.GET("/words", h.allWords)
		api.GET("/words/search", h.searchWords)

		api.GET("/stories", h.listStories)
		api.GET("/story/:id", h.storyByID)
		api.GET("/story/:id/words", h.storyWords)
		api.POST("/story", h.createStory)
		api.POST("/story/word", h.addStoryWord)
	}

	return r
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func message(text string) gin.H {
	return gin.H{"message": text}
}

// todayWord handles GET /api/word/today.
func (h *Handler) todayWord(c *gin.Context) {
	result, err := h.daily.GetOrAssign(c.Request.Context(), time.Now())
	if err != nil {
		if errors.Is(err, service.ErrNoWords) {
			c.JSON(http.StatusNotFound, message("No words available"))
			return
		}
		h.log.Error("failed to get today's word", zap.Error(err))
		c.JSON(http.StatusInternalServerError, message("Failed to get today's word"))
		return
	}

	c.JSON(http.StatusOK, result)
}

// wordHistory handles GET /api/word/history.
func (h *Handler) wordHistory(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil {
		limit = 10
	}

	history, err := h.daily.Recent(c.Request.Context(), limit)
	if err != nil {
		h.log.Error("failed to get word history", zap.Error(err))
		c.JSON(http.StatusInternalServerError, message("Failed to get word history"))
		return
	}
	if history == nil {
		history = []entities.DailyWordWithWord{}
	}

	c.JSON(http.StatusOK, history)
}

// searchWords handles GET /api/words/search.
func (h *Handler) searchWords(c *gin.Context) {
	query := c.Query("q")
	if utf8.RuneCountInString(query) < 2 {
		c.JSON(http.StatusBadRequest, message("Search query must be at least 2 characters"))
		return
	}

	results, err := h.words.Search(c.Request.Context(), query)
	if err != nil {
		h.log.Error("failed to search words", zap.Error(err), zap.String("query", query))
		c.JSON(http.StatusInternalServerError, message("Failed to search words"))
		return
	}
	if results == nil {
		results = []entities.Word{}
	}

	c.JSON(http.StatusOK, results)
}

// allWords handles GET /api/words.
func (h *Handler) allWords(c *gin.Context) {
	words, err := h.words.GetAll(c.Request.Context())
	if err != nil {
		h.log.Error("failed to get all words", zap.Error(err))
		c.JSON(http.StatusInternalServerError, message("Failed to get all words"))
		return
	}
	if words == nil {
		words = []entities.Word{}
	}

	c.JSON(http.StatusOK, words)
}

// wordByID handles GET /api/word/:id.
func (h *Handler) wordByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, message("Invalid word ID"))
		return
	}

	word, err := h.words.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrWordNotFound) {
			c.JSON(http.StatusNotFound, message("Word not found"))
			return
		}
		h.log.Error("failed to get word", zap.Error(err), zap.Int("id", id))
		c.JSON(http.StatusInternalServerError, message("Failed to get word"))
		return
	}

	c.JSON(http.StatusOK, word)
}

type createWordRequest struct {
	Turkish         string  `json:"turkish" binding:"required"`
	English         string  `json:"english" binding:"required"`
	Pronunciation   string  `json:"pronunciation" binding:"required"`
	PartOfSpeech    string  `json:"partOfSpeech" binding:"required"`
	ExampleTurkish1 string  `json:"exampleTurkish1" binding:"required"`
	ExampleEnglish1 string  `json:"exampleEnglish1" binding:"required"`
	ExampleTurkish2 string  `json:"exampleTurkish2" binding:"required"`
	ExampleEnglish2 string  `json:"exampleEnglish2" binding:"required"`
	Notes           string  `json:"notes" binding:"required"`
	AudioURL        *string `json:"audioUrl"`
}

// createWord handles POST /api/word.
func (h *Handler) createWord(c *gin.Context) {
	var req createWordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, message(err.Error()))
		return
	}

	word, err := h.words.Create(c.Request.Context(), entities.Word{
		Turkish:         req.Turkish,
		English:         req.English,
		Pronunciation:   req.Pronunciation,
		PartOfSpeech:    req.PartOfSpeech,
		ExampleTurkish1: req.ExampleTurkish1,
		ExampleEnglish1: req.ExampleEnglish1,
		ExampleTurkish2: req.ExampleTurkish2,
		ExampleEnglish2: req.ExampleEnglish2,
		Notes:           req.Notes,
		AudioURL:        req.AudioURL,
	})
	if err != nil {
		h.log.Error("failed to create word", zap.Error(err))
		c.JSON(http.StatusInternalServerError, message("Failed to create word"))
		return
	}

	c.JSON(http.StatusCreated, word)
}

type createDailyWordRequest struct {
	WordID int    `json:"wordId" binding:"required"`
	Date   string `json:"date" binding:"required"`
}

// createDailyWord handles POST /api/word/daily.
func (h *Handler) createDailyWord(c *gin.Context) {
	var req createDailyWordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, message(err.Error()))
		return
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, message("Date must be in YYYY-MM-DD format"))
		return
	}

	result, err := h.daily.Create(c.Request.Context(), req.WordID, date)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrWordNotFound):
			c.JSON(http.StatusNotFound, message("Word not found"))
		case errors.Is(err, repository.ErrDailyWordExists):
			c.JSON(http.StatusConflict, message("A word is already set for this date"))
		default:
			h.log.Error("failed to create daily word", zap.Error(err))
			c.JSON(http.StatusInternalServerError, message("Failed to create daily word"))
		}
		return
	}

	c.JSON(http.StatusCreated, result)
}
