package collector

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hangarlabs/simwatch/internal/config"
	"github.com/hangarlabs/simwatch/internal/models"
	"github.com/hangarlabs/simwatch/internal/parse"
	"github.com/hangarlabs/simwatch/internal/probe"
)

type stubFetcher struct {
	channels []models.ChannelInfo
	panels   map[string][]parse.Panel
	failures map[string]error
}

func (s *stubFetcher) TextChannels(_ context.Context, _ string) ([]models.ChannelInfo, error) {
	return s.channels, nil
}

func (s *stubFetcher) Panels(_ context.Context, channelID string) ([]parse.Panel, error) {
	if err, ok := s.failures[channelID]; ok {
		return nil, err
	}
	return s.panels[channelID], nil
}

func TestCollectClassifiesChannels(t *testing.T) {
	fetcher := &stubFetcher{
		channels: []models.ChannelInfo{
			{ID: "1", Name: "server-caucasus"},
			{ID: "2", Name: "pilot-leaderboard"},
			{ID: "3", Name: "general-chat"},
		},
		panels: map[string][]parse.Panel{
			"1": {{Description: "Mission: Alpha"}},
			"2": {{Description: "LEADERBOARD\n#1 | Viper\n100 credits"}},
			"3": {{Description: "Mission: ShouldNotBeRead"}},
		},
	}

	statuses, boards, err := New(fetcher, "guild").Collect(context.Background())
	require.NoError(t, err)

	require.Len(t, statuses, 1)
	assert.True(t, statuses[0].Online)
	assert.Equal(t, "Alpha", statuses[0].Mission)

	require.Len(t, boards, 1)
	assert.Equal(t, "Viper", boards[0].Pilots[0].Name)
}

func TestCollectSkipsFailedChannel(t *testing.T) {
	fetcher := &stubFetcher{
		channels: []models.ChannelInfo{
			{ID: "1", Name: "server-broken"},
			{ID: "2", Name: "server-caucasus"},
		},
		panels: map[string][]parse.Panel{
			"2": {{Description: "Mission: Alpha"}},
		},
		failures: map[string]error{"1": errors.New("rate limited")},
	}

	statuses, _, err := New(fetcher, "guild").Collect(context.Background())
	require.NoError(t, err)

	// The failing channel is excluded, its sibling survives.
	require.Len(t, statuses, 1)
	assert.Equal(t, "server-caucasus", statuses[0].ChannelName)
}

func TestCollectConfinesPanicToItsChannel(t *testing.T) {
	fetcher := &stubFetcher{
		channels: []models.ChannelInfo{
			{ID: "1", Name: "server-broken"},
			{ID: "2", Name: "server-caucasus"},
		},
		panels: map[string][]parse.Panel{
			"1": {{
				Description: "Mission: Alpha",
				Fields:      []parse.Field{{Name: "Server-IP / Port", Value: "203.0.113.9:10308"}},
			}},
			"2": {{Description: "Mission: Bravo"}},
		},
	}

	c := New(fetcher, "guild", WithProbe(config.Probe{Enable: true}))
	c.probeFn = func(string, config.Probe) (*probe.Result, error) {
		panic("probe blew up")
	}

	statuses, _, err := c.Collect(context.Background())
	require.NoError(t, err)

	// The panicking channel is dropped, its sibling still produces a record.
	require.Len(t, statuses, 1)
	assert.Equal(t, "server-caucasus", statuses[0].ChannelName)
}

func TestCollectOfflineChannelStillYieldsRecord(t *testing.T) {
	fetcher := &stubFetcher{
		channels: []models.ChannelInfo{{ID: "1", Name: "server-nevada"}},
		panels:   map[string][]parse.Panel{"1": {{Description: "chatter only"}}},
	}

	statuses, _, err := New(fetcher, "guild").Collect(context.Background())
	require.NoError(t, err)

	require.Len(t, statuses, 1)
	assert.False(t, statuses[0].Online)
	assert.Equal(t, "nevada", statuses[0].MapID)
}

func TestCollectUnrecognizedLeaderboardYieldsNoRecord(t *testing.T) {
	fetcher := &stubFetcher{
		channels: []models.ChannelInfo{{ID: "1", Name: "mission-stats"}},
		panels:   map[string][]parse.Panel{"1": {{Description: "announcement"}}},
	}

	_, boards, err := New(fetcher, "guild").Collect(context.Background())
	require.NoError(t, err)
	assert.Empty(t, boards)
}

func TestCollectDualRoleChannel(t *testing.T) {
	fetcher := &stubFetcher{
		channels: []models.ChannelInfo{{ID: "1", Name: "server-stats-caucasus"}},
		panels: map[string][]parse.Panel{
			"1": {
				{Description: "Mission: Alpha"},
				{Description: "LEADERBOARD\n#1 | Viper"},
			},
		},
	}

	statuses, boards, err := New(fetcher, "guild").Collect(context.Background())
	require.NoError(t, err)

	// One channel can feed both consumers independently.
	assert.Len(t, statuses, 1)
	assert.Len(t, boards, 1)
}

func TestEnrichFillsMissingCounts(t *testing.T) {
	c := New(&stubFetcher{}, "guild")
	c.probeFn = func(address string, _ config.Probe) (*probe.Result, error) {
		assert.Equal(t, "198.51.100.7:10308", address)
		return &probe.Result{Players: 14, MaxPlayers: 40}, nil
	}

	status := models.ServerStatus{ServerIP: "198.51.100.7:10308", Players: 0}
	c.enrich(&status)

	assert.Equal(t, 14, status.Players)
	assert.Equal(t, 40, status.MaxPlayers)
}

func TestEnrichKeepsEmbedDerivedCounts(t *testing.T) {
	c := New(&stubFetcher{}, "guild")
	c.probeFn = func(string, config.Probe) (*probe.Result, error) {
		return &probe.Result{Players: 99, MaxPlayers: 99}, nil
	}

	status := models.ServerStatus{ServerIP: "198.51.100.7:10308", Players: 12, MaxPlayers: 32}
	c.enrich(&status)

	assert.Equal(t, 12, status.Players)
	assert.Equal(t, 32, status.MaxPlayers)
}

func TestEnrichProbeFailureLeavesRecordIntact(t *testing.T) {
	c := New(&stubFetcher{}, "guild")
	c.probeFn = func(string, config.Probe) (*probe.Result, error) {
		return nil, errors.New("timeout")
	}

	status := models.ServerStatus{ServerIP: "198.51.100.7:10308", Online: true}
	c.enrich(&status)

	assert.True(t, status.Online)
	assert.Zero(t, status.Players)
}
