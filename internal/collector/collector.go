// Package collector runs one stateless collection pass: classify the
// guild's channels, fetch each relevant channel's panel batch, and reduce
// it to canonical status and leaderboard records.
package collector

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/hangarlabs/simwatch/internal/config"
	"github.com/hangarlabs/simwatch/internal/models"
	"github.com/hangarlabs/simwatch/internal/parse"
	"github.com/hangarlabs/simwatch/internal/probe"
)

// Fetcher abstracts the Discord retrieval collaborator.
type Fetcher interface {
	TextChannels(ctx context.Context, guildID string) ([]models.ChannelInfo, error)
	Panels(ctx context.Context, channelID string) ([]parse.Panel, error)
}

// GeoResolver abstracts the optional IP-to-country enrichment.
type GeoResolver interface {
	CountryCode(address string) string
}

// Collector holds the collaborators for one guild.
type Collector struct {
	fetcher  Fetcher
	geo      GeoResolver
	probeFn  func(address string, options config.Probe) (*probe.Result, error)
	guildID  string
	probeCfg config.Probe
}

// Option tweaks a Collector.
type Option func(*Collector)

// WithGeo enables country tagging of parsed server addresses.
func WithGeo(geo GeoResolver) Option {
	return func(c *Collector) { c.geo = geo }
}

// WithProbe enables live A2S probing of parsed server addresses.
func WithProbe(cfg config.Probe) Option {
	return func(c *Collector) {
		c.probeCfg = cfg
		c.probeFn = probe.Query
	}
}

// New creates a Collector for one guild.
func New(fetcher Fetcher, guildID string, opts ...Option) *Collector {
	c := &Collector{
		fetcher: fetcher,
		guildID: guildID,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Collect performs one pass. Channels are processed sequentially; a failure
// in one channel is logged and skipped without aborting its siblings, so
// partial data is always preferred over none.
func (c *Collector) Collect(ctx context.Context) ([]models.ServerStatus, []models.Leaderboard, error) {
	channels, err := c.fetcher.TextChannels(ctx, c.guildID)
	if err != nil {
		return nil, nil, err
	}

	var statuses []models.ServerStatus
	var boards []models.Leaderboard

	for _, ch := range channels {
		statuses, boards = c.collectChannel(ctx, ch, statuses, boards)
	}

	log.Info().
		Int("servers", len(statuses)).
		Int("leaderboards", len(boards)).
		Msg("Collection pass finished")

	return statuses, boards, nil
}

// collectChannel processes one channel and appends its records. Any failure,
// fetch error or panic alike, is logged and confined to this channel so the
// remaining channels still produce partial data.
func (c *Collector) collectChannel(
	ctx context.Context, ch models.ChannelInfo,
	statuses []models.ServerStatus, boards []models.Leaderboard,
) (outStatuses []models.ServerStatus, outBoards []models.Leaderboard) {
	// Named returns so records gathered before a panic are not lost.
	outStatuses, outBoards = statuses, boards
	defer func() {
		if r := recover(); r != nil {
			log.Error().Any("panic", r).Str("channel", ch.Name).Msg("Channel processing panicked, skipping")
			outStatuses, outBoards = statuses, boards
		}
	}()

	isStatus := parse.IsStatusChannel(ch.Name)
	isBoard := parse.IsLeaderboardChannel(ch.Name)
	if !isStatus && !isBoard {
		return statuses, boards
	}

	panels, err := c.fetcher.Panels(ctx, ch.ID)
	if err != nil {
		log.Warn().Err(err).Str("channel", ch.Name).Msg("Failed to fetch channel messages, skipping")
		return statuses, boards
	}

	if isStatus {
		status := parse.BuildServerStatus(ch.Name, panels)
		c.enrich(&status)
		statuses = append(statuses, status)

		log.Debug().
			Str("channel", ch.Name).
			Bool("online", status.Online).
			Int("players", status.Players).
			Msg("Server status collected")
	}

	if isBoard {
		if board, found := parse.BuildLeaderboard(ch.Name, panels); found {
			boards = append(boards, *board)

			log.Debug().
				Str("channel", ch.Name).
				Int("pilots", len(board.Pilots)).
				Msg("Leaderboard collected")
		} else {
			log.Debug().Str("channel", ch.Name).Msg("No leaderboard panel recognized")
		}
	}

	return statuses, boards
}

// enrich fills optional record fields from the probe and GeoIP
// collaborators. Embed-derived values stay authoritative; enrichment only
// supplies what the panels lacked, and failures never mark a server offline.
func (c *Collector) enrich(status *models.ServerStatus) {
	if status.ServerIP == "" {
		return
	}

	if c.geo != nil {
		status.Country = c.geo.CountryCode(status.ServerIP)
	}

	if c.probeFn == nil {
		return
	}

	result, err := c.probeFn(status.ServerIP, c.probeCfg)
	if err != nil {
		log.Debug().Err(err).Str("address", status.ServerIP).Msg("Probe failed")
		return
	}

	if status.Players == 0 {
		status.Players = result.Players
	}
	if status.MaxPlayers == 0 {
		status.MaxPlayers = result.MaxPlayers
	}
}
