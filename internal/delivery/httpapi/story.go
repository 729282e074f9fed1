package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ozgurkara/gunluk-kelime/internal/domain/entities"
	"github.com/ozgurkara/gunluk-kelime/internal/repository"
)

// listStories handles GET /api/stories, optionally filtered by
// ?difficulty=level.
func (h *Handler) listStories(c *gin.Context) {
	var (
		stories []entities.Story
		err     error
	)

	if level := c.Query("difficulty"); level != "" {
		stories, err = h.stories.GetByDifficulty(c.Request.Context(), level)
	} else {
		stories, err = h.stories.GetAll(c.Request.Context())
	}
	if err != nil {
		h.log.Error("failed to get stories", zap.Error(err))
		c.JSON(http.StatusInternalServerError, message("Failed to get stories"))
		return
	}
	if stories == nil {
		stories = []entities.Story{}
	}

	c.JSON(http.StatusOK, stories)
}

// storyByID handles GET /api/story/:id.
func (h *Handler) storyByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, message("Invalid story ID"))
		return
	}

	story, err := h.stories.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrStoryNotFound) {
			c.JSON(http.StatusNotFound, message("Story not found"))
			return
		}
		h.log.Error("failed to get story", zap.Error(err), zap.Int("id", id))
		c.JSON(http.StatusInternalServerError, message("Failed to get story"))
		return
	}

	c.JSON(http.StatusOK, story)
}

// storyWords handles GET /api/story/:id/words.
func (h *Handler) storyWords(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, message("Invalid story ID"))
		return
	}

	words, err := h.stories.Words(c.Request.Context(), id)
	if err != nil {
		h.log.Error("failed to get story words", zap.Error(err), zap.Int("id", id))
		c.JSON(http.StatusInternalServerError, message("Failed to get story words"))
		return
	}
	if words == nil {
		words = []entities.StoryWordWithWord{}
	}

	c.JSON(http.StatusOK, words)
}

type createStoryRequest struct {
	Title           string   `json:"title" binding:"required"`
	TitleEnglish    string   `json:"titleEnglish" binding:"required"`
	DifficultyLevel string   `json:"difficultyLevel" binding:"required"`
	ContentTurkish  string   `json:"contentTurkish" binding:"required"`
	ContentEnglish  string   `json:"contentEnglish" binding:"required"`
	VocabularyWords []string `json:"vocabularyWords"`
}

// createStory handles POST /api/story.
func (h *Handler) createStory(c *gin.Context) {
	var req createStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, message(err.Error()))
		return
	}

	story, err := h.stories.Create(c.Request.Context(), entities.Story{
		Title:           req.Title,
		TitleEnglish:    req.TitleEnglish,
		DifficultyLevel: req.DifficultyLevel,
		ContentTurkish:  req.ContentTurkish,
		ContentEnglish:  req.ContentEnglish,
		VocabularyWords: req.VocabularyWords,
	})
	if err != nil {
		h.log.Error("failed to create story", zap.Error(err))
		c.JSON(http.StatusInternalServerError, message("Failed to create story"))
		return
	}

	c.JSON(http.StatusCreated, story)
}

type addStoryWordRequest struct {
	StoryID int `json:"storyId" binding:"required"`
	WordID  int `json:"wordId" binding:"required"`
}

// addStoryWord handles POST /api/story/word.
func (h *Handler) addStoryWord(c *gin.Context) {
	var req addStoryWordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, message(err.Error()))
		return
	}

	link, err := h.stories.AddWord(c.Request.Context(), req.StoryID, req.WordID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrStoryNotFound):
			c.JSON(http.StatusNotFound, message("Story not found"))
		case errors.Is(err, repository.ErrWordNotFound):
			c.JSON(http.StatusNotFound, message("Word not found"))
		default:
			h.log.Error("failed to add word to story", zap.Error(err))
			c.JSON(http.StatusInternalServerError, message("Failed to add word to story"))
		}
		return
	}

	c.JSON(http.StatusCreated, link)
}
