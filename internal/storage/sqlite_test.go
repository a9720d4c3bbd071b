package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hangarlabs/simwatch/internal/models"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()

	repo, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	return repo
}

func TestSaveAndLatestServerStatuses(t *testing.T) {
	repo := newTestRepo(t)

	older := models.ServerStatus{ChannelName: "server-caucasus", Online: false}
	newer := models.ServerStatus{ChannelName: "server-caucasus", Online: true, Players: 12}
	other := models.ServerStatus{ChannelName: "server-nevada", Online: true}

	require.NoError(t, repo.SaveServerStatus(older, time.Now().Add(-time.Hour)))
	require.NoError(t, repo.SaveServerStatus(newer, time.Now()))
	require.NoError(t, repo.SaveServerStatus(other, time.Now()))

	statuses, err := repo.LatestServerStatuses()
	require.NoError(t, err)
	require.Len(t, statuses, 2)

	// Latest row wins per channel.
	assert.Equal(t, "server-caucasus", statuses[0].ChannelName)
	assert.True(t, statuses[0].Online)
	assert.Equal(t, 12, statuses[0].Players)
	assert.Equal(t, "server-nevada", statuses[1].ChannelName)
}

func TestSaveAndLatestLeaderboards(t *testing.T) {
	repo := newTestRepo(t)

	board := models.Leaderboard{
		ChannelName: "pilot-leaderboard",
		Title:       "Weekly",
		Pilots:      []models.Pilot{{Rank: 1, Name: "Viper", Credits: 100}},
	}
	require.NoError(t, repo.SaveLeaderboard(board, time.Now()))

	boards, err := repo.LatestLeaderboards()
	require.NoError(t, err)
	require.Len(t, boards, 1)

	assert.Equal(t, "Weekly", boards[0].Title)
	require.Len(t, boards[0].Pilots, 1)
	assert.Equal(t, "Viper", boards[0].Pilots[0].Name)
}

func TestPruneBefore(t *testing.T) {
	repo := newTestRepo(t)

	status := models.ServerStatus{ChannelName: "server-syria"}
	require.NoError(t, repo.SaveServerStatus(status, time.Now().Add(-48*time.Hour)))
	require.NoError(t, repo.SaveServerStatus(status, time.Now()))

	board := models.Leaderboard{ChannelName: "stats"}
	require.NoError(t, repo.SaveLeaderboard(board, time.Now().Add(-48*time.Hour)))

	deleted, err := repo.PruneBefore(time.Now().Add(-24 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	statuses, err := repo.LatestServerStatuses()
	require.NoError(t, err)
	assert.Len(t, statuses, 1)

	boards, err := repo.LatestLeaderboards()
	require.NoError(t, err)
	assert.Empty(t, boards)
}
