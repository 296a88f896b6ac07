// Package ledger keeps an append-only history of rating runs.
package ledger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"value-rating/model"
)

// Entry is one ranked player of a run.
type Entry struct {
	Name   string  `json:"name"`
	Role   string  `json:"role"`
	Rating float64 `json:"rating"`
}

// Line is one rating run. Players keep rank order, so repeated names stay
// distinct.
type Line struct {
	RunID        string    `json:"run_id"`
	At           time.Time `json:"at"`
	Preset       string    `json:"preset"`
	ByGroup      bool      `json:"by_group"`
	TargetSpread float64   `json:"target_spread"`
	Players      []Entry   `json:"players"`
}

// NewLine summarizes a run under a fresh run ID.
func NewLine(at time.Time, preset string, byGroup bool, targetSpread float64, results []model.RatingResult) Line {
	players := make([]Entry, len(results))
	for i, r := range results {
		players[i] = Entry{Name: r.Stats.Name, Role: r.Stats.Role, Rating: r.Rating}
	}
	return Line{
		RunID:        uuid.NewString(),
		At:           at,
		Preset:       preset,
		ByGroup:      byGroup,
		TargetSpread: targetSpread,
		Players:      players,
	}
}

// Append writes line to <root>/<YYYY-MM-DD>/ratings.jsonl.
func Append(root string, line Line) error {
	day := line.At.UTC().Format("2006-01-02")
	dir := filepath.Join(root, day)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	path := filepath.Join(dir, "ratings.jsonl")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()

	b, err := json.Marshal(line)
	if err != nil {
		return err
	}
	b = append(b, '\n')

	_, err = f.Write(b)
	return err
}
