// Package export writes parsed record collections as JSON files, skipping
// rewrites when the payload has not changed since the previous run.
package export

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/rs/zerolog/log"

	"github.com/hangarlabs/simwatch/internal/models"
)

// File names inside the output directory.
const (
	StatusFile      = "serverStatus.json"
	LeaderboardFile = "leaderboards.json"
)

// Writer owns one output directory and remembers the hash of the last
// payload written per file.
type Writer struct {
	dir    string
	hashes map[string]uint64
}

// NewWriter creates the output directory if needed and returns a Writer.
func NewWriter(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	return &Writer{
		dir:    dir,
		hashes: make(map[string]uint64),
	}, nil
}

// WriteStatuses serializes the server status collection to the status file.
func (w *Writer) WriteStatuses(statuses []models.ServerStatus) error {
	if statuses == nil {
		statuses = []models.ServerStatus{}
	}
	return w.writeJSON(StatusFile, statuses)
}

// WriteLeaderboards serializes the leaderboard collection to its file.
func (w *Writer) WriteLeaderboards(boards []models.Leaderboard) error {
	if boards == nil {
		boards = []models.Leaderboard{}
	}
	return w.writeJSON(LeaderboardFile, boards)
}

// writeJSON encodes v and writes it atomically via a temp file rename.
// Unchanged payloads (by xxhash) skip the write entirely.
func (w *Writer) writeJSON(name string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	sum := xxhash.Sum64(data)
	if prev, ok := w.hashes[name]; ok && prev == sum {
		log.Debug().Str("file", name).Msg("Snapshot unchanged, skipping export")
		return nil
	}

	target := filepath.Join(w.dir, name)
	tmp := target + ".tmp"

	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, target); err != nil {
		return err
	}

	w.hashes[name] = sum
	log.Debug().Str("file", name).Int("bytes", len(data)).Msg("Snapshot exported")

	return nil
}
