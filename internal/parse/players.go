package parse

import (
	"strings"

	"github.com/hangarlabs/simwatch/internal/models"
)

// activePlayersTitle selects the roster panel inside a channel batch.
const activePlayersTitle = "Active Players"

// faction is the state of the roster scan.
type faction int

const (
	factionNeutral faction = iota
	factionBlue
	factionRed
)

// ParseActivePlayers extracts per-faction rosters from the Active Players
// panel. The panel lays out each faction section as parallel "Name" and
// "Unit" column fields; the scan is a small state machine over the ordered
// field sequence. An absent panel yields three empty rosters.
func ParseActivePlayers(panels []Panel) models.ActivePlayers {
	var out models.ActivePlayers

	var panel *Panel
	for i := range panels {
		if panels[i].Title == activePlayersTitle {
			panel = &panels[i]
			break
		}
	}
	if panel == nil {
		return out
	}

	current := factionNeutral
	var names, units []string

	flush := func(f faction) {
		entries := pairEntries(names, units)
		switch f {
		case factionBlue:
			out.Blue = append(out.Blue, entries...)
		case factionRed:
			out.Red = append(out.Red, entries...)
		case factionNeutral:
			out.Neutral = append(out.Neutral, entries...)
		}
		names, units = nil, nil
	}

	for _, f := range panel.Fields {
		switch {
		case strings.Contains(f.Name, "Blue") || strings.Contains(f.Value, "Blue"):
			// Blue opens the roster, nothing is buffered yet.
			names, units = nil, nil
			current = factionBlue
		case strings.Contains(f.Name, "Red") || strings.Contains(f.Value, "Red"):
			flush(current)
			current = factionRed
		case strings.Contains(f.Name, "Neutral"):
			flush(current)
			current = factionNeutral
		case f.Name == "Name":
			names = splitLines(f.Value)
		case f.Name == "Unit":
			units = splitLines(f.Value)
		}
	}
	flush(current)

	return out
}

// pairEntries zips the name column with the unit column, padding missing
// units with the "--" placeholder.
func pairEntries(names, units []string) []models.PlayerEntry {
	entries := make([]models.PlayerEntry, 0, len(names))
	for i, name := range names {
		unit := DefaultText
		if i < len(units) {
			unit = units[i]
		}
		entries = append(entries, models.PlayerEntry{Name: name, Unit: unit})
	}
	return entries
}
