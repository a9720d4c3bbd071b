package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hangarlabs/simwatch/internal/models"
)

func TestBuildLeaderboardMarkdownNames(t *testing.T) {
	panel := Panel{
		Description: "🏆 **Foothold Syria TOP 10**\n\n#3 | **Maverick**\n1,250 credits\n#1 | __Goose__\n9,800 credits\n#2 | `Viper`\n4.100 credits",
	}

	record, found := BuildLeaderboard("pilot-leaderboard", []Panel{panel})
	require.True(t, found)

	assert.Equal(t, "Foothold Syria TOP 10", record.Title)
	require.Len(t, record.Pilots, 3)

	// Sorted ascending by rank regardless of source order.
	assert.Equal(t, models.Pilot{Rank: 1, Name: "Goose", Credits: 9800}, record.Pilots[0])
	assert.Equal(t, models.Pilot{Rank: 2, Name: "Viper", Credits: 4100}, record.Pilots[1])
	assert.Equal(t, models.Pilot{Rank: 3, Name: "Maverick", Credits: 1250}, record.Pilots[2])
}

func TestBuildLeaderboardCreditLookaheadWindow(t *testing.T) {
	// The credit value must appear within three lines below the rank line.
	panel := Panel{
		Description: "LEADERBOARD\n#1 | Alpha\nfiller\nfiller\nfiller\n500 credits",
	}

	record, found := BuildLeaderboard("stats", []Panel{panel})
	require.True(t, found)
	require.Len(t, record.Pilots, 1)
	assert.Zero(t, record.Pilots[0].Credits)
}

func TestBuildLeaderboardGroupedNumberFallback(t *testing.T) {
	panel := Panel{
		Description: "LEADERBOARD\n#1 | Alpha\n💰 12,340\n#2 | Bravo\nnothing numeric",
	}

	record, found := BuildLeaderboard("stats", []Panel{panel})
	require.True(t, found)
	require.Len(t, record.Pilots, 2)
	assert.Equal(t, 12340, record.Pilots[0].Credits)
	assert.Zero(t, record.Pilots[1].Credits)
}

func TestBuildLeaderboardRankLineNotCountedAsCredits(t *testing.T) {
	// A following rank line never supplies the credit value, even when the
	// explicit "credits" pattern is absent.
	panel := Panel{
		Description: "LEADERBOARD\n#1 | Alpha\n#200 | Bravo\n750 credits",
	}

	record, found := BuildLeaderboard("stats", []Panel{panel})
	require.True(t, found)
	require.Len(t, record.Pilots, 2)

	assert.Equal(t, 750, record.Pilots[0].Credits)
	assert.Equal(t, "Bravo", record.Pilots[1].Name)
	assert.Equal(t, 750, record.Pilots[1].Credits)
}

func TestBuildLeaderboardDuplicateRanksKept(t *testing.T) {
	panel := Panel{
		Description: "LEADERBOARD\n#1 | Alpha\n#1 | Alpha\n#2 | Bravo",
	}

	record, found := BuildLeaderboard("stats", []Panel{panel})
	require.True(t, found)
	require.Len(t, record.Pilots, 3)
	assert.Equal(t, 1, record.Pilots[0].Rank)
	assert.Equal(t, 1, record.Pilots[1].Rank)
	assert.Equal(t, 2, record.Pilots[2].Rank)
}

func TestBuildLeaderboardBilingualStatFields(t *testing.T) {
	base := Panel{Description: "LEADERBOARD\n#1 | Alpha\n100 credits"}

	turkish := base
	turkish.Fields = []Field{
		{Name: "Toplam Oyuncu", Value: "24"},
		{Name: "Toplam Kredi", Value: "99,000"},
		{Name: "Aktif Pilotlar", Value: "12 pilot"},
		{Name: "En Yuksek Puan", Value: "9,800"},
	}

	english := base
	english.Fields = []Field{
		{Name: "Total Players", Value: "24"},
		{Name: "Total Credits", Value: "99,000"},
		{Name: "Active Pilots", Value: "12 pilot"},
		{Name: "Highest Score", Value: "9,800"},
	}

	tr, found := BuildLeaderboard("stats", []Panel{turkish})
	require.True(t, found)
	en, found := BuildLeaderboard("stats", []Panel{english})
	require.True(t, found)

	want := models.LeaderboardStats{
		TotalPlayers: 24,
		TotalCredits: 99000,
		ActivePilots: "12 pilot",
		HighestScore: 9800,
	}
	assert.Equal(t, want, tr.Stats)
	assert.Equal(t, want, en.Stats)
}

func TestBuildLeaderboardStatsFallBackToPilots(t *testing.T) {
	panel := Panel{
		Description: "LEADERBOARD\n#1 | Alpha\n300 credits\n#2 | Bravo\n200 credits",
	}

	record, found := BuildLeaderboard("stats", []Panel{panel})
	require.True(t, found)

	assert.Equal(t, 500, record.Stats.TotalCredits)
	assert.Equal(t, 2, record.Stats.TotalPlayers)
	assert.Equal(t, 300, record.Stats.HighestScore)
}

func TestBuildLeaderboardDescriptionStatFallbacks(t *testing.T) {
	panel := Panel{
		Description: "LEADERBOARD\nToplam Oyuncu: **24**\nTotal Credits: 50,000\nAktif Pilot: 7\nHighest Score: 9,000",
	}

	record, found := BuildLeaderboard("stats", []Panel{panel})
	require.True(t, found)

	assert.Equal(t, 24, record.Stats.TotalPlayers)
	assert.Equal(t, 50000, record.Stats.TotalCredits)
	assert.Equal(t, "7", record.Stats.ActivePilots)
	assert.Equal(t, 9000, record.Stats.HighestScore)
}

func TestBuildLeaderboardNotRecognized(t *testing.T) {
	record, found := BuildLeaderboard("stats", []Panel{
		{Description: "just an announcement"},
	})

	assert.False(t, found)
	assert.Nil(t, record)
}

func TestBuildLeaderboardRecognizedButEmpty(t *testing.T) {
	// Distinct from "not found": a recognized panel with no rank lines
	// still yields a record.
	record, found := BuildLeaderboard("stats", []Panel{
		{Title: "Weekly Leaderboard", Description: "no entries yet"},
	})

	require.True(t, found)
	assert.Equal(t, "Weekly Leaderboard", record.Title)
	assert.Empty(t, record.Pilots)
}

func TestBuildLeaderboardDefaultTitle(t *testing.T) {
	record, found := BuildLeaderboard("stats", []Panel{
		{Description: "LEADERBOARD\n#1 | Alpha"},
	})

	require.True(t, found)
	assert.Equal(t, DefaultLeaderboardTitle, record.Title)
}

func TestBuildLeaderboardAggregatesAcrossPanels(t *testing.T) {
	first := Panel{Description: "LEADERBOARD\n#4 | Delta\n100 credits"}
	second := Panel{Description: "LEADERBOARD\n#2 | Bravo\n400 credits"}

	record, found := BuildLeaderboard("stats", []Panel{first, second})
	require.True(t, found)
	require.Len(t, record.Pilots, 2)

	assert.Equal(t, 2, record.Pilots[0].Rank)
	assert.Equal(t, 4, record.Pilots[1].Rank)
}

func TestBuildLeaderboardFooterRewrite(t *testing.T) {
	record, found := BuildLeaderboard("stats", []Panel{
		{Description: "LEADERBOARD", Footer: "Her 10 dk güncellenir"},
	})

	require.True(t, found)
	assert.Equal(t, "Her 5 dk güncellenir", record.LastUpdate)
}

func TestBuildLeaderboardIdempotent(t *testing.T) {
	panels := []Panel{
		{Description: "🏆 TOP 10\n#1 | **Alpha**\n1,000 credits", Footer: "10 dk"},
	}

	first, _ := BuildLeaderboard("stats", panels)
	second, _ := BuildLeaderboard("stats", panels)

	assert.Equal(t, first, second)
}
