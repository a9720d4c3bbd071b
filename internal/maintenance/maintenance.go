// Package maintenance provides one-shot database cleanup tasks.
package maintenance

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hangarlabs/simwatch/internal/config"
	"github.com/hangarlabs/simwatch/internal/storage"
)

// Run checks if any maintenance flags are set and executes the
// corresponding tasks. Returns true if a task was executed (indicating the
// program should exit instead of starting the watch loop).
func Run(cfg *config.Config, store *storage.Repository) bool {
	ran := false

	if cfg.Storage.PruneOlder > 0 {
		ran = true
		cutoff := time.Now().Add(-cfg.Storage.PruneOlder)
		log.Info().Time("cutoff", cutoff).Msg("Pruning old snapshots...")

		deleted, err := store.PruneBefore(cutoff)
		if err != nil {
			log.Error().Err(err).Msg("Failed to prune snapshots")
		} else {
			log.Info().Int64("deleted", deleted).Msg("Prune finished")
		}
	}

	if cfg.Storage.Vacuum {
		ran = true
		log.Info().Msg("Compacting database...")

		if err := store.Vacuum(); err != nil {
			log.Error().Err(err).Msg("Failed to vacuum database")
		} else {
			log.Info().Msg("Vacuum finished")
		}
	}

	return ran
}
