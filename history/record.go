// Package history persists finished games and derives best results.
package history

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Results are the final counters of one game
type Results struct {
	Score       int `toml:"score"`
	Level       int `toml:"level"`
	RowsCleared int `toml:"rows_cleared"`
}

// Highest flags which results beat every earlier game
type Highest struct {
	Score       bool `toml:"score"`
	Level       bool `toml:"level"`
	RowsCleared bool `toml:"rows_cleared"`
}

// Any reports whether at least one result is a new best
func (h Highest) Any() bool {
	return h.Score || h.Level || h.RowsCleared
}

// Record is one finished game
type Record struct {
	ID         string  `toml:"id"`
	Timestamp  int64   `toml:"timestamp"` // Unix milliseconds at game over
	DurationMs int64   `toml:"duration_ms"` // Wall time from game start to game over, pauses included
	Results    Results `toml:"results"`
	IsHighest  Highest `toml:"is_highest"`
}

// Time returns the record timestamp
func (r Record) Time() time.Time {
	return time.UnixMilli(r.Timestamp)
}

// Duration returns the game's wall duration
func (r Record) Duration() time.Duration {
	return time.Duration(r.DurationMs) * time.Millisecond
}

// NewRecord builds a record for a game ending at `at`, flagging results that beat previous
// A first game has nothing to beat; non-zero results count as highest
func NewRecord(at time.Time, duration time.Duration, res Results, previous []Record) Record {
	best := Best(previous)
	return Record{
		ID:         uuid.NewString(),
		Timestamp:  at.UnixMilli(),
		DurationMs: duration.Milliseconds(),
		Results:    res,
		IsHighest: Highest{
			Score:       res.Score > best.Score,
			Level:       res.Level > best.Level,
			RowsCleared: res.RowsCleared > best.RowsCleared,
		},
	}
}

// Best returns the per-field maximum across records
func Best(records []Record) Results {
	var best Results
	for _, r := range records {
		best.Score = max(best.Score, r.Results.Score)
		best.Level = max(best.Level, r.Results.Level)
		best.RowsCleared = max(best.RowsCleared, r.Results.RowsCleared)
	}
	return best
}

// Summary renders a short game-over text for the record
func Summary(r Record) string {
	s := fmt.Sprintf("Score %d%s, level %d%s, rows %d%s in %s",
		r.Results.Score, mark(r.IsHighest.Score),
		r.Results.Level, mark(r.IsHighest.Level),
		r.Results.RowsCleared, mark(r.IsHighest.RowsCleared),
		formatDuration(r.Duration()),
	)
	if r.IsHighest.Any() {
		s += " - new record!"
	}
	return s
}

func mark(highest bool) string {
	if highest {
		return "*"
	}
	return ""
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	m := int(d / time.Minute)
	s := int((d % time.Minute) / time.Second)
	return fmt.Sprintf("%d:%02d", m, s)
}
