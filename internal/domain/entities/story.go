package entities

// Story is a short reading passage in Turkish with a full English
// translation, used to show vocabulary in context.
type Story struct {
	ID              int      `json:"id"`              // unique story identifier
	Title           string   `json:"title"`           // Turkish title
	TitleEnglish    string   `json:"titleEnglish"`    // English title
	DifficultyLevel string   `json:"difficultyLevel"` // "beginner", "intermediate" or "advanced"
	ContentTurkish  string   `json:"contentTurkish"`  // story text in Turkish
	ContentEnglish  string   `json:"contentEnglish"`  // story text in English
	VocabularyWords []string `json:"vocabularyWords"` // key vocabulary appearing in the story
}

// StoryWord links a catalog word to a story it appears in.
type StoryWord struct {
	ID      int `json:"id"`
	StoryID int `json:"storyId"`
	WordID  int `json:"wordId"`
}

// StoryWordWithWord pairs a story-word link with its resolved word.
type StoryWordWithWord struct {
	StoryWord StoryWord `json:"storyWord"`
	Word      Word      `json:"word"`
}
