// Package entities contains domain entities used across the application.
package entities

// Word represents a single Turkish vocabulary entry with its English
// translation, pronunciation guide, example sentences, and usage notes.
// Words are immutable once created; the catalog only grows.
type Word struct {
	ID              int     `json:"id"`              // unique word identifier
	Turkish         string  `json:"turkish"`         // Turkish term (unique in the catalog)
	English         string  `json:"english"`         // English translation
	Pronunciation   string  `json:"pronunciation"`   // pronunciation guide, e.g. "/mer-ha-ba/"
	PartOfSpeech    string  `json:"partOfSpeech"`    // part of speech tag (noun, phrase, ...)
	ExampleTurkish1 string  `json:"exampleTurkish1"` // first example sentence in Turkish
	ExampleEnglish1 string  `json:"exampleEnglish1"` // first example sentence in English
	ExampleTurkish2 string  `json:"exampleTurkish2"` // second example sentence in Turkish
	ExampleEnglish2 string  `json:"exampleEnglish2"` // second example sentence in English
	Notes           string  `json:"notes"`           // free-text usage and etymology notes
	AudioURL        *string `json:"audioUrl"`        // optional reference to a pronunciation audio file
}
