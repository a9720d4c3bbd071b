// Package storage handles database connections, schema migrations, and
// snapshot persistence using SQLite.
package storage

import (
	"database/sql"
	"encoding/json"
	"time"

	_ "modernc.org/sqlite" // Driver sqlite

	"github.com/hangarlabs/simwatch/internal/models"
)

// Repository manages the SQLite database connection.
type Repository struct {
	db *sql.DB
}

// New initializes a new SQLite connection, sets connection pool parameters,
// and runs migrations.
func New(dbPath string) (*Repository, error) {
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(1 * time.Hour)

	if err := db.Ping(); err != nil {
		return nil, err
	}

	if err := runMigrations(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Repository{db: db}, nil
}

// Close closes the underlying database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// SaveServerStatus appends one parsed status record to the snapshot history.
// The full record is stored as JSON alongside the queryable columns.
func (r *Repository) SaveServerStatus(status models.ServerStatus, takenAt time.Time) error {
	record, err := json.Marshal(status)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(`
		INSERT INTO server_snapshots
			(taken_at, channel_name, online, map_id, friendly_name, players, max_players, record)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		takenAt, status.ChannelName, status.Online, status.MapID, status.FriendlyName,
		status.Players, status.MaxPlayers, string(record),
	)

	return err
}

// SaveLeaderboard appends one parsed leaderboard record to the history.
func (r *Repository) SaveLeaderboard(lb models.Leaderboard, takenAt time.Time) error {
	record, err := json.Marshal(lb)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(`
		INSERT INTO leaderboard_snapshots
			(taken_at, channel_name, title, pilot_count, record)
		VALUES (?, ?, ?, ?, ?)`,
		takenAt, lb.ChannelName, lb.Title, len(lb.Pilots), string(record),
	)

	return err
}

// LatestServerStatuses returns the most recent snapshot per status channel.
func (r *Repository) LatestServerStatuses() ([]models.ServerStatus, error) {
	rows, err := r.db.Query(`
		SELECT record FROM server_snapshots s
		WHERE id = (SELECT MAX(id) FROM server_snapshots WHERE channel_name = s.channel_name)
		ORDER BY channel_name
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var statuses []models.ServerStatus
	for rows.Next() {
		var record string
		if err := rows.Scan(&record); err != nil {
			continue
		}

		var status models.ServerStatus
		if err := json.Unmarshal([]byte(record), &status); err != nil {
			continue
		}
		statuses = append(statuses, status)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return statuses, nil
}

// LatestLeaderboards returns the most recent snapshot per leaderboard channel.
func (r *Repository) LatestLeaderboards() ([]models.Leaderboard, error) {
	rows, err := r.db.Query(`
		SELECT record FROM leaderboard_snapshots l
		WHERE id = (SELECT MAX(id) FROM leaderboard_snapshots WHERE channel_name = l.channel_name)
		ORDER BY channel_name
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var boards []models.Leaderboard
	for rows.Next() {
		var record string
		if err := rows.Scan(&record); err != nil {
			continue
		}

		var lb models.Leaderboard
		if err := json.Unmarshal([]byte(record), &lb); err != nil {
			continue
		}
		boards = append(boards, lb)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return boards, nil
}

// PruneBefore deletes snapshots taken before the cutoff from both history
// tables and returns the total number of deleted rows.
func (r *Repository) PruneBefore(cutoff time.Time) (int64, error) {
	var total int64

	for _, table := range []string{"server_snapshots", "leaderboard_snapshots"} {
		res, err := r.db.Exec(`DELETE FROM `+table+` WHERE taken_at < ?`, cutoff)
		if err != nil {
			return total, err
		}

		n, err := res.RowsAffected()
		if err != nil {
			return total, err
		}
		total += n
	}

	return total, nil
}

// Vacuum compacts the database file after large prunes.
func (r *Repository) Vacuum() error {
	_, err := r.db.Exec(`VACUUM`)
	return err
}
