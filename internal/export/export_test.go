package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hangarlabs/simwatch/internal/models"
)

func TestWriteStatusesCreatesFile(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	require.NoError(t, err)

	statuses := []models.ServerStatus{{ChannelName: "server-caucasus", Online: true}}
	require.NoError(t, w.WriteStatuses(statuses))

	data, err := os.ReadFile(filepath.Join(dir, StatusFile))
	require.NoError(t, err)
	assert.Contains(t, string(data), "server-caucasus")
}

func TestWriteSkipsUnchangedPayload(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	require.NoError(t, err)

	boards := []models.Leaderboard{{ChannelName: "stats", Title: "Leaderboard"}}
	require.NoError(t, w.WriteLeaderboards(boards))

	target := filepath.Join(dir, LeaderboardFile)
	first, err := os.Stat(target)
	require.NoError(t, err)

	// Remove the file behind the writer's back; an unchanged payload must
	// not recreate it.
	require.NoError(t, os.Remove(target))
	require.NoError(t, w.WriteLeaderboards(boards))
	_, err = os.Stat(target)
	assert.True(t, os.IsNotExist(err))

	// A changed payload writes again.
	boards[0].Title = "Weekly"
	require.NoError(t, w.WriteLeaderboards(boards))
	second, err := os.Stat(target)
	require.NoError(t, err)
	assert.NotEqual(t, first.Size(), second.Size())
}

func TestWriteNilCollectionsAsEmptyArrays(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	require.NoError(t, err)

	require.NoError(t, w.WriteStatuses(nil))

	data, err := os.ReadFile(filepath.Join(dir, StatusFile))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}
