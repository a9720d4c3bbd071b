package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsStatusChannel(t *testing.T) {
	tests := []struct {
		name    string
		channel string
		want    bool
	}{
		{"plain status channel", "server-caucasus", true},
		{"count and map suffix", "server-[12/32]-Nevada", true},
		{"case insensitive", "SERVER-syria", true},
		{"prefixed", "dcs-server-marianas", true},
		{"unrelated", "general-chat", false},
		{"server without dash", "serverinfo", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsStatusChannel(tt.channel))
		})
	}
}

func TestIsLeaderboardChannel(t *testing.T) {
	tests := []struct {
		name    string
		channel string
		want    bool
	}{
		{"leaderboard", "pilot-leaderboard", true},
		{"hyphenated", "leader-board", true},
		{"stats", "mission-stats", true},
		{"foothold", "foothold-rankings", true},
		{"mixed case", "LeaderBoard", true},
		{"unrelated", "briefing-room", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsLeaderboardChannel(tt.channel))
		})
	}
}

func TestClassificationIsNotExclusive(t *testing.T) {
	// A channel may serve both consumers at once.
	name := "server-stats-caucasus"
	assert.True(t, IsStatusChannel(name))
	assert.True(t, IsLeaderboardChannel(name))
}
