// Command practice is the offline study companion for the daily word API.
// It keeps a local cache of fetched words and a flashcard deck on disk, so
// reviews and quizzes keep working without a network connection.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/ozgurkara/gunluk-kelime/internal/apiclient"
	"github.com/ozgurkara/gunluk-kelime/internal/domain/entities"
	"github.com/ozgurkara/gunluk-kelime/internal/localstore"
	"github.com/ozgurkara/gunluk-kelime/internal/quiz"
	"github.com/ozgurkara/gunluk-kelime/internal/srs"
)

const usage = `usage: practice [flags] <command> [args]

commands:
  today              show today's word
  history [n]        show the last n daily words (default 10)
  search <query>     search the catalog by Turkish or English text
  add <query>        search for a word and add the first hit to the deck
  due                list flashcards due for review
  cards              list the whole flashcard deck
  review             review due flashcards interactively
  quiz [difficulty]  take a quiz (beginner, intermediate, advanced)
  reset <word id>    reset a flashcard back to the start
  remove <word id>   remove a flashcard from the deck

flags:
`

func main() {
	var (
		apiURL  = flag.String("api", envOr("PRACTICE_API_URL", "http://localhost:5000"), "base URL of the word API")
		dataDir = flag.String("data", defaultDataDir(), "directory for the local cache and flashcards")
	)
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	cache, err := localstore.New(afero.NewOsFs(), *dataDir)
	if err != nil {
		fatal(err)
	}

	client := apiclient.New(*apiURL, cache)
	engine := srs.NewEngine(cache.Flashcards())

	ctx := context.Background()

	switch cmd, args := flag.Arg(0), flag.Args()[1:]; cmd {
	case "today":
		err = showToday(ctx, client)
	case "history":
		err = showHistory(ctx, client, args)
	case "search":
		err = searchWords(ctx, client, args)
	case "add":
		err = addCard(ctx, client, engine, args)
	case "due":
		err = listCards(engine, true)
	case "cards":
		err = listCards(engine, false)
	case "review":
		err = reviewCards(engine)
	case "quiz":
		err = runQuiz(ctx, client, engine, args)
	case "reset":
		err = resetCard(engine, args)
	case "remove":
		err = removeCard(engine, args)
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "practice:", err)
	os.Exit(1)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".practice"
	}
	return filepath.Join(home, ".gunluk-kelime")
}

func showToday(ctx context.Context, client *apiclient.Client) error {
	today, err := client.Today(ctx)
	if err != nil {
		return err
	}

	printWord(today.Word)
	return nil
}

func showHistory(ctx context.Context, client *apiclient.Client, args []string) error {
	limit := 10
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid history limit %q", args[0])
		}
		limit = n
	}

	history, err := client.History(ctx, limit)
	if err != nil {
		return err
	}

	for _, dw := range history {
		fmt.Printf("%s  %s — %s\n", dw.DailyWord.Date.Format("2006-01-02"), dw.Word.Turkish, dw.Word.English)
	}
	return nil
}

func searchWords(ctx context.Context, client *apiclient.Client, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("search needs a query")
	}

	words, err := client.Search(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	if len(words) == 0 {
		fmt.Println("no matches")
		return nil
	}

	for _, w := range words {
		fmt.Printf("#%d  %s — %s\n", w.ID, w.Turkish, w.English)
	}
	return nil
}

func addCard(ctx context.Context, client *apiclient.Client, engine *srs.Engine, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("add needs a query")
	}

	words, err := client.Search(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	if len(words) == 0 {
		return fmt.Errorf("no word matches %q", strings.Join(args, " "))
	}

	if err := engine.Add(words[0]); err != nil {
		return err
	}

	fmt.Printf("added %s — %s to the deck\n", words[0].Turkish, words[0].English)
	return nil
}

func listCards(engine *srs.Engine, dueOnly bool) error {
	var (
		cards []srs.Card
		err   error
	)
	if dueOnly {
		cards, err = engine.DueNow()
	} else {
		cards, err = engine.All()
	}
	if err != nil {
		return err
	}
	if len(cards) == 0 {
		fmt.Println("no cards")
		return nil
	}

	for _, c := range cards {
		fmt.Printf("#%d  %-20s %-20s level %d, next review %s\n",
			c.Word.ID, c.Word.Turkish, c.Word.English, c.Level, c.NextReview.Format("2006-01-02"))
	}
	return nil
}

func reviewCards(engine *srs.Engine) error {
	due, err := engine.DueNow()
	if err != nil {
		return err
	}
	if len(due) == 0 {
		fmt.Println("nothing due, come back later")
		return nil
	}

	in := bufio.NewScanner(os.Stdin)
	for _, card := range due {
		fmt.Printf("\n%s\n", card.Word.Turkish)
		fmt.Print("translation? ")
		if !in.Scan() {
			break
		}

		correct := strings.EqualFold(strings.TrimSpace(in.Text()), card.Word.English)
		if correct {
			fmt.Println("correct!")
		} else {
			fmt.Printf("it was %q\n", card.Word.English)
		}

		if err := engine.Grade(card.Word, correct); err != nil {
			return err
		}
	}
	return nil
}

func runQuiz(ctx context.Context, client *apiclient.Client, engine *srs.Engine, args []string) error {
	difficulty := quiz.Beginner
	if len(args) > 0 {
		difficulty = quiz.Difficulty(args[0])
	}

	words, err := client.AllWords(ctx)
	if err != nil {
		return err
	}

	gen := quiz.NewGenerator(rand.New(rand.NewSource(time.Now().UnixNano())))
	questions, err := gen.Generate(words, difficulty)
	if err != nil {
		return err
	}

	session := quiz.NewSession(questions, engine)
	in := bufio.NewScanner(os.Stdin)

	for !session.Done() {
		q := session.Current()
		fmt.Printf("\n%d/%d ", session.Correct()+session.Incorrect()+1, len(questions))
		printQuestion(*q)

		fmt.Print("> ")
		if !in.Scan() {
			break
		}

		answer := resolveChoice(*q, strings.TrimSpace(in.Text()))
		ok, err := session.Answer(answer)
		if err != nil {
			return err
		}
		if ok {
			fmt.Println("correct!")
		} else {
			fmt.Printf("it was %q (added to your flashcards)\n", q.CorrectAnswer)
		}
	}

	fmt.Printf("\nscore: %d%% (%d correct, %d wrong)\n", session.Score(), session.Correct(), session.Incorrect())
	return nil
}

func printQuestion(q quiz.Question) {
	switch q.Type {
	case quiz.MultipleChoice:
		fmt.Printf("what does %q mean?\n", q.Word.Turkish)
		for i, choice := range q.Choices {
			fmt.Printf("  %d) %s\n", i+1, choice)
		}
	case quiz.Matching:
		fmt.Printf("which Turkish word means %q?\n", q.Word.English)
		for i, choice := range q.Choices {
			fmt.Printf("  %d) %s\n", i+1, choice)
		}
	case quiz.Spelling:
		fmt.Printf("spell the Turkish word for %q\n", q.Word.English)
	}
}

// resolveChoice maps a numeric answer to the choice text so the user can
// answer multiple choice questions by number.
func resolveChoice(q quiz.Question, answer string) string {
	if len(q.Choices) == 0 {
		return answer
	}
	n, err := strconv.Atoi(answer)
	if err != nil || n < 1 || n > len(q.Choices) {
		return answer
	}
	return q.Choices[n-1]
}

func resetCard(engine *srs.Engine, args []string) error {
	id, err := cardID("reset", args)
	if err != nil {
		return err
	}
	if err := engine.Reset(id); err != nil {
		return err
	}
	fmt.Printf("card %d reset\n", id)
	return nil
}

func removeCard(engine *srs.Engine, args []string) error {
	id, err := cardID("remove", args)
	if err != nil {
		return err
	}
	if err := engine.Remove(id); err != nil {
		return err
	}
	fmt.Printf("card %d removed\n", id)
	return nil
}

func cardID(cmd string, args []string) (int, error) {
	if len(args) < 1 {
		return 0, fmt.Errorf("%s needs a word id", cmd)
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid word id %q", args[0])
	}
	return id, nil
}

func printWord(w entities.Word) {
	fmt.Printf("%s — %s\n", w.Turkish, w.English)
	fmt.Printf("%s, %s\n", w.Pronunciation, w.PartOfSpeech)
	fmt.Printf("\n  %s\n  %s\n", w.ExampleTurkish1, w.ExampleEnglish1)
	if w.ExampleTurkish2 != "" {
		fmt.Printf("\n  %s\n  %s\n", w.ExampleTurkish2, w.ExampleEnglish2)
	}
	if w.Notes != "" {
		fmt.Printf("\n%s\n", w.Notes)
	}
}
