// Package quiz builds vocabulary quizzes over the word catalog and feeds
// review outcomes into the spaced-repetition engine.
package quiz

import (
	"errors"
	"math/rand"
	"strings"

	"github.com/ozgurkara/gunluk-kelime/internal/domain/entities"
	"github.com/ozgurkara/gunluk-kelime/internal/srs"
)

// Difficulty selects the question count and type mix.
type Difficulty string

const (
	Beginner     Difficulty = "beginner"
	Intermediate Difficulty = "intermediate"
	Advanced     Difficulty = "advanced"
)

// QuestionType determines how a question is presented and answered.
type QuestionType string

const (
	// MultipleChoice shows the Turkish term with four English options.
	MultipleChoice QuestionType = "multipleChoice"
	// Matching shows the English term; the Turkish term is typed in.
	Matching QuestionType = "matching"
	// Spelling dictates the Turkish term to be spelled out.
	Spelling QuestionType = "spelling"
)

const distractorCount = 3

var ErrNotEnoughWords = errors.New("not enough words to build a quiz")

// Question is one quiz item. Choices is populated only for multiple choice.
type Question struct {
	Type          QuestionType
	Word          entities.Word
	Choices       []string
	CorrectAnswer string
}

// Generator builds question sets from the catalog.
type Generator struct {
	rng *rand.Rand
}

func NewGenerator(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

func questionCount(d Difficulty) int {
	switch d {
	case Intermediate:
		return 8
	case Advanced:
		return 10
	default:
		return 5
	}
}

// questionType picks a type with difficulty-dependent probabilities:
// beginner is all multiple choice, intermediate mixes in matching,
// advanced adds spelling.
func (g *Generator) questionType(d Difficulty) QuestionType {
	switch d {
	case Intermediate:
		if g.rng.Float64() < 0.7 {
			return MultipleChoice
		}
		return Matching
	case Advanced:
		r := g.rng.Float64()
		if r < 0.4 {
			return MultipleChoice
		}
		if r < 0.8 {
			return Matching
		}
		return Spelling
	default:
		return MultipleChoice
	}
}

// Generate builds a question set for the difficulty over a random subset of
// the catalog.
func (g *Generator) Generate(words []entities.Word, d Difficulty) ([]Question, error) {
	if len(words) == 0 {
		return nil, ErrNotEnoughWords
	}

	count := questionCount(d)

	shuffled := append([]entities.Word(nil), words...)
	g.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if len(shuffled) > count {
		shuffled = shuffled[:count]
	}

	questions := make([]Question, 0, len(shuffled))
	for _, word := range shuffled {
		q := Question{
			Type: g.questionType(d),
			Word: word,
		}

		switch q.Type {
		case MultipleChoice:
			q.CorrectAnswer = word.English
			q.Choices = g.buildChoices(word, words)
		case Matching, Spelling:
			q.CorrectAnswer = word.Turkish
		}

		questions = append(questions, q)
	}

	return questions, nil
}

// buildChoices draws three other words' translations without replacement
// and shuffles them together with the correct answer.
func (g *Generator) buildChoices(target entities.Word, all []entities.Word) []string {
	candidates := make([]entities.Word, 0, len(all))
	for _, w := range all {
		if w.ID != target.ID {
			candidates = append(candidates, w)
		}
	}

	g.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	n := distractorCount
	if len(candidates) < n {
		n = len(candidates)
	}

	choices := make([]string, 0, n+1)
	for _, c := range candidates[:n] {
		choices = append(choices, c.English)
	}
	choices = append(choices, target.English)

	g.rng.Shuffle(len(choices), func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
	})

	return choices
}

// Check reports whether the answer matches the question's correct answer,
// ignoring case and surrounding whitespace.
func Check(q Question, answer string) bool {
	return strings.EqualFold(
		strings.TrimSpace(answer),
		strings.TrimSpace(q.CorrectAnswer),
	)
}

// Session runs one quiz and records results against the flashcard engine.
type Session struct {
	Questions []Question
	engine    *srs.Engine

	index     int
	correct   int
	incorrect int
}

func NewSession(questions []Question, engine *srs.Engine) *Session {
	return &Session{Questions: questions, engine: engine}
}

// Current returns the question awaiting an answer, or nil when the session
// is finished.
func (s *Session) Current() *Question {
	if s.index >= len(s.Questions) {
		return nil
	}
	return &s.Questions[s.index]
}

// Answer grades the current question and advances. A miss puts the word
// into the flashcard collection so it enters the review cycle.
func (s *Session) Answer(answer string) (bool, error) {
	q := s.Current()
	if q == nil {
		return false, errors.New("quiz already completed")
	}

	ok := Check(*q, answer)
	s.index++

	if ok {
		s.correct++
		return true, nil
	}

	s.incorrect++
	if s.engine != nil {
		if err := s.engine.Add(q.Word); err != nil {
			return false, err
		}
	}

	return false, nil
}

// Done reports whether every question has been answered.
func (s *Session) Done() bool {
	return s.index >= len(s.Questions)
}

// Score returns the percentage of correct answers, rounded.
func (s *Session) Score() int {
	if len(s.Questions) == 0 {
		return 0
	}
	return (s.correct*100 + len(s.Questions)/2) / len(s.Questions)
}

// Correct and Incorrect report the running tallies.
func (s *Session) Correct() int   { return s.correct }
func (s *Session) Incorrect() int { return s.incorrect }
