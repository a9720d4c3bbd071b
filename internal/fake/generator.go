// Package fake populates the store with randomized snapshots for API and
// dashboard development.
package fake

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hangarlabs/simwatch/internal/models"
	"github.com/hangarlabs/simwatch/internal/storage"
)

// GenerateData writes a specified number of randomized status and
// leaderboard snapshots, spread over the last 30 days.
func GenerateData(store *storage.Repository, count int) {
	maps := []string{"caucasus", "nevada", "syria", "marianas", "persiangulf", "sinai"}
	missions := []string{"Operation Clear Skies", "Foothold", "Blue Flag", "Night Ops", "Cold War 1947"}
	callsigns := []string{"Viper", "Ghost", "Iceman", "Maverick", "Goose", "Jester", "Hollywood", "Slider"}

	for i := 0; i < count; i++ {
		daysAgo := rand.Intn(30)
		takenAt := time.Now().Add(-time.Duration(daysAgo) * 24 * time.Hour).
			Add(-time.Duration(rand.Intn(1440)) * time.Minute)

		mapID := maps[rand.Intn(len(maps))]
		maxPlayers := 16 + rand.Intn(48)
		players := rand.Intn(maxPlayers + 1)

		status := models.ServerStatus{
			Online:       rand.Float32() < 0.9,
			ChannelName:  fmt.Sprintf("server-[%d/%d]-%s", players, maxPlayers, mapID),
			ServerName:   fmt.Sprintf("%s %s", missions[rand.Intn(len(missions))], mapID),
			Mission:      missions[rand.Intn(len(missions))],
			Map:          mapID,
			Players:      players,
			MaxPlayers:   maxPlayers,
			MissionTime:  fmt.Sprintf("%d:%02d", rand.Intn(12), rand.Intn(60)),
			MapID:        mapID,
			FriendlyName: mapID,
		}

		if err := store.SaveServerStatus(status, takenAt); err != nil {
			log.Warn().Err(err).Msg("Failed to generate fake status snapshot")
		}

		pilots := make([]models.Pilot, 0, 5)
		total, best := 0, 0
		for rank := 1; rank <= 5; rank++ {
			credits := rand.Intn(10000)
			total += credits
			if credits > best {
				best = credits
			}
			pilots = append(pilots, models.Pilot{
				Rank:    rank,
				Name:    callsigns[rand.Intn(len(callsigns))],
				Credits: credits,
			})
		}

		board := models.Leaderboard{
			ChannelName: fmt.Sprintf("%s-leaderboard", mapID),
			Title:       "Leaderboard",
			Pilots:      pilots,
			Stats: models.LeaderboardStats{
				TotalCredits: total,
				TotalPlayers: len(pilots),
				HighestScore: best,
			},
		}

		if err := store.SaveLeaderboard(board, takenAt); err != nil {
			log.Warn().Err(err).Msg("Failed to generate fake leaderboard snapshot")
		}
	}

	log.Info().Int("count", count).Msg("Fake data generated")
}
