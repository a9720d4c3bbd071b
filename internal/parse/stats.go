package parse

import (
	"strings"

	"github.com/hangarlabs/simwatch/internal/models"
)

const (
	missionStatsTitle = "Mission Statistics"

	// blankMarker is the zero-width space Discord requires for visually
	// empty field names; the bot uses it for the row-label column.
	blankMarker = "​"
)

// statsSection is the state of the statistics scan.
type statsSection int

const (
	sectionSituation statsSection = iota
	sectionAchievements
)

// ParseMissionStats extracts the situation/achievements tables from the
// Mission Statistics panel. Each section is laid out as a blank-named
// label column followed by "BLUE" and "RED" value columns; values pair
// with labels by line index. Returns nil when the panel is absent.
func ParseMissionStats(panels []Panel) *models.MissionStats {
	var panel *Panel
	for i := range panels {
		if panels[i].Title == missionStatsTitle {
			panel = &panels[i]
			break
		}
	}
	if panel == nil {
		return nil
	}

	stats := &models.MissionStats{
		Situation:    make(map[string]*models.SideValues),
		Achievements: make(map[string]*models.SideValues),
	}

	section := sectionSituation
	var labels []string

	table := func() map[string]*models.SideValues {
		if section == sectionAchievements {
			return stats.Achievements
		}
		return stats.Situation
	}

	for _, f := range panel.Fields {
		switch {
		case strings.Contains(f.Name, "Achievements"):
			section = sectionAchievements
			labels = nil
		case strings.Contains(f.Name, "Current Situation"):
			section = sectionSituation
			labels = nil
		case f.Name == blankMarker && f.Value != blankMarker:
			labels = splitLines(f.Value)
		case strings.EqualFold(f.Name, "BLUE") && len(labels) > 0:
			fillSide(table(), labels, splitLines(f.Value), true)
		case strings.EqualFold(f.Name, "RED") && len(labels) > 0:
			fillSide(table(), labels, splitLines(f.Value), false)
		}
	}

	return stats
}

// fillSide pairs a value column with the current label column by index.
// Values past the end of the label list are dropped.
func fillSide(table map[string]*models.SideValues, labels, values []string, blue bool) {
	for i, value := range values {
		if i >= len(labels) {
			break
		}

		entry, ok := table[labels[i]]
		if !ok {
			entry = &models.SideValues{}
			table[labels[i]] = entry
		}

		n := firstInt(value)
		if blue {
			entry.Blue = &n
		} else {
			entry.Red = &n
		}
	}
}
