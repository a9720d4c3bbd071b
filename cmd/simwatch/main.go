// main is the entry point of the simwatch service.
// It initializes the configuration, logger, database, GeoIP provider, and
// Discord client, then runs the collection loop and the optional HTTP API.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hangarlabs/simwatch/internal/collector"
	"github.com/hangarlabs/simwatch/internal/config"
	"github.com/hangarlabs/simwatch/internal/discord"
	"github.com/hangarlabs/simwatch/internal/export"
	"github.com/hangarlabs/simwatch/internal/fake"
	"github.com/hangarlabs/simwatch/internal/geoip"
	"github.com/hangarlabs/simwatch/internal/logger"
	"github.com/hangarlabs/simwatch/internal/maintenance"
	"github.com/hangarlabs/simwatch/internal/server"
	"github.com/hangarlabs/simwatch/internal/storage"
)

func main() {
	cfg := config.Parse()

	logger.Setup(cfg.Logger)
	log.Info().Msg("Starting simwatch service...")

	// Database
	store, err := storage.New(cfg.Storage.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing database")
		}
	}()

	// Data generation or database maintenance
	if cfg.Storage.GenerateCount > 0 {
		fake.GenerateData(store, cfg.Storage.GenerateCount)
		return
	} else if maintenance.Run(cfg, store) {
		return
	}

	// Collector options
	opts := []collector.Option{}

	if !cfg.GeoIP.Disable {
		log.Info().Msg("Checking GeoIP database...")
		if err := geoip.EnsureDB(cfg.GeoIP.Path, cfg.GeoIP.URL, cfg.GeoIP.Interval); err != nil {
			log.Error().Err(err).Msg("Failed to download GeoIP database")
		}

		geoProvider, err := geoip.Open(cfg.GeoIP.Path)
		if err != nil {
			log.Error().Err(err).Msg("Failed to open GeoIP database, country tagging disabled")
		} else {
			defer func() {
				if err := geoProvider.Close(); err != nil {
					log.Error().Err(err).Msg("Error closing GeoIP provider")
				}
			}()
			opts = append(opts, collector.WithGeo(geoProvider))
		}
	}

	if cfg.Probe.Enable {
		opts = append(opts, collector.WithProbe(cfg.Probe))
	}

	// Discord client
	client, err := discord.New(cfg.Discord.Token, cfg.Discord.MessageLimit, cfg.Discord.RequestRate)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Discord client")
	}

	coll := collector.New(client, cfg.Discord.Guild, opts...)

	// JSON export
	var writer *export.Writer
	if !cfg.Export.Disable {
		writer, err = export.NewWriter(cfg.Export.Dir)
		if err != nil {
			log.Fatal().Err(err).Str("dir", cfg.Export.Dir).Msg("Failed to prepare export directory")
		}
	}

	// Optional HTTP API
	var httpServer *http.Server
	if cfg.Server.Address != "" {
		httpServer = &http.Server{
			Addr:         cfg.Server.Address,
			Handler:      server.New(store, cfg.Server).Run(),
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		go func() {
			log.Info().Str("address", cfg.Server.Address).Msg("API listening")
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatal().Err(err).Msg("API server failed")
			}
		}()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runOnce := func() {
		statuses, boards, err := coll.Collect(ctx)
		if err != nil {
			log.Error().Err(err).Msg("Collection pass failed")
			return
		}

		now := time.Now()
		for _, status := range statuses {
			if err := store.SaveServerStatus(status, now); err != nil {
				log.Error().Err(err).Str("channel", status.ChannelName).Msg("Failed to save status snapshot")
			}
		}
		for _, board := range boards {
			if err := store.SaveLeaderboard(board, now); err != nil {
				log.Error().Err(err).Str("channel", board.ChannelName).Msg("Failed to save leaderboard snapshot")
			}
		}

		if writer != nil {
			if err := writer.WriteStatuses(statuses); err != nil {
				log.Error().Err(err).Msg("Failed to export server statuses")
			}
			if err := writer.WriteLeaderboards(boards); err != nil {
				log.Error().Err(err).Msg("Failed to export leaderboards")
			}
		}
	}

	runOnce()

	if !cfg.Watch.Once {
		ticker := time.NewTicker(cfg.Watch.Interval)
		defer ticker.Stop()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	loop:
		for {
			select {
			case <-ticker.C:
				runOnce()
			case <-quit:
				break loop
			}
		}
	}

	log.Info().Msg("Shutting down...")
	cancel()

	if httpServer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("API server forced to shutdown")
		}
	}

	log.Info().Msg("Service exited")
}
