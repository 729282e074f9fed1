package entities

import (
	"encoding/json"
	"time"
)

// dateLayout is the wire format for assignment dates. The date column has
// day granularity; time of day never appears on the wire.
const dateLayout = "2006-01-02"

// DailyWord maps one calendar date to one word from the catalog.
// At most one assignment exists per date; assignments are never updated
// or deleted.
type DailyWord struct {
	ID        int       // unique assignment identifier
	WordID    int       // id of the assigned word
	Date      time.Time // assignment date, day granularity
	CreatedAt time.Time // timestamp when the assignment was created
}

// MarshalJSON formats the date field as YYYY-MM-DD so clients never see a
// time component on the assignment date.
func (d DailyWord) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		ID        int    `json:"id"`
		WordID    int    `json:"wordId"`
		Date      string `json:"date"`
		CreatedAt string `json:"createdAt"`
	}{
		ID:        d.ID,
		WordID:    d.WordID,
		Date:      d.Date.UTC().Format(dateLayout),
		CreatedAt: d.CreatedAt.UTC().Format(time.RFC3339),
	})
}

// UnmarshalJSON parses the wire representation produced by MarshalJSON.
// It is needed by clients that cache daily words locally.
func (d *DailyWord) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID        int    `json:"id"`
		WordID    int    `json:"wordId"`
		Date      string `json:"date"`
		CreatedAt string `json:"createdAt"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	date, err := time.Parse(dateLayout, raw.Date)
	if err != nil {
		return err
	}

	var createdAt time.Time
	if raw.CreatedAt != "" {
		createdAt, err = time.Parse(time.RFC3339, raw.CreatedAt)
		if err != nil {
			return err
		}
	}

	d.ID = raw.ID
	d.WordID = raw.WordID
	d.Date = date
	d.CreatedAt = createdAt
	return nil
}

// DailyWordWithWord pairs an assignment with its resolved word. This is the
// shape returned by the word-of-the-day and history endpoints.
type DailyWordWithWord struct {
	DailyWord DailyWord `json:"dailyWord"`
	Word      Word      `json:"word"`
}
