package parse

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/hangarlabs/simwatch/internal/models"
)

// DefaultLeaderboardTitle is applied when neither the description nor the
// panel title carries one.
const DefaultLeaderboardTitle = "Leaderboard"

// creditLookahead bounds how far below a rank line the credit value may
// appear. The bot renders each entry as at most three lines.
const creditLookahead = 3

var (
	// Recognition markers for leaderboard panels. The bot's layout is not
	// guaranteed, so several spellings are accepted.
	leaderboardMarkers = []string{"LEADERBOARD", "TOP", "credits", "#1"}

	rankLinePattern      = regexp.MustCompile(`^\s*#(\d+)\s*[|\-–—:•.]*\s*(.+)$`)
	creditsLinePattern   = regexp.MustCompile(`(?i)([\d.,]*\d)\s*credits?`)
	groupedNumberPattern = regexp.MustCompile(`\b\d{1,3}(?:[.,]\d{3})+\b|\b\d{3,}\b`)
	trophyTitlePattern   = regexp.MustCompile(`(?m)^\s*🏆\s*(.+)$`)

	totalPlayersPattern = regexp.MustCompile(`(?i)(?:toplam|total)\s+(?:oyuncu|player)\w*\s*:?\s*\**\s*([\d.,]*\d)`)
	totalCreditsPattern = regexp.MustCompile(`(?i)(?:toplam|total)\s+(?:kredi|credit)\w*\s*:?\s*\**\s*([\d.,]*\d)`)
	activePilotsPattern = regexp.MustCompile(`(?i)(?:aktif|active)\s+pilot\w*\s*:?\s*\**\s*([^\n*]+)`)
	highScorePattern    = regexp.MustCompile(`(?i)(?:en\s+)?(?:yuksek|yüksek|highest)\s+(?:puan|skor|score)\w*\s*:?\s*\**\s*([\d.,]*\d)`)
)

// leaderboardPanel is the per-panel parser output before aggregation.
// Pointer stats distinguish "absent" from a literal zero.
type leaderboardPanel struct {
	title        string
	footer       string
	pilots       []models.Pilot
	totalCredits *int
	totalPlayers *int
	highestScore *int
	activePilots string
}

// isLeaderboardPanel reports whether a panel is recognizably a leaderboard.
// A channel batch with no recognized panel yields no record at all, which
// is distinct from an empty-but-recognized leaderboard.
func isLeaderboardPanel(p Panel) bool {
	for _, marker := range leaderboardMarkers {
		if strings.Contains(p.Description, marker) || strings.Contains(p.Title, marker) {
			return true
		}
	}
	return containsFold(p.Title, "leaderboard")
}

// BuildLeaderboard folds the leaderboard panel parser across one channel's
// batch. Pilots accumulate across all recognized panels and are sorted
// ascending by rank as the final step. Duplicate ranks are kept verbatim.
// Returns false when no panel in the batch was recognized.
func BuildLeaderboard(channelName string, panels []Panel) (*models.Leaderboard, bool) {
	record := &models.Leaderboard{
		ChannelName: channelName,
		Pilots:      []models.Pilot{},
	}

	found := false
	var totalCredits, totalPlayers, highestScore *int

	for _, p := range panels {
		if !isLeaderboardPanel(p) {
			continue
		}
		found = true

		parsed := parseLeaderboardPanel(p)
		record.Pilots = append(record.Pilots, parsed.pilots...)

		if record.Title == "" {
			record.Title = parsed.title
		}
		if record.LastUpdate == "" {
			record.LastUpdate = parsed.footer
		}
		if totalCredits == nil {
			totalCredits = parsed.totalCredits
		}
		if totalPlayers == nil {
			totalPlayers = parsed.totalPlayers
		}
		if highestScore == nil {
			highestScore = parsed.highestScore
		}
		if record.Stats.ActivePilots == "" {
			record.Stats.ActivePilots = parsed.activePilots
		}
	}

	if !found {
		return nil, false
	}

	sort.SliceStable(record.Pilots, func(i, j int) bool {
		return record.Pilots[i].Rank < record.Pilots[j].Rank
	})

	// Derived fallbacks from the pilot list itself.
	record.Stats.TotalCredits = intOr(totalCredits, sumCredits(record.Pilots))
	record.Stats.TotalPlayers = intOr(totalPlayers, len(record.Pilots))
	record.Stats.HighestScore = intOr(highestScore, maxCredits(record.Pilots))

	if record.Title == "" {
		record.Title = DefaultLeaderboardTitle
	}

	return record, true
}

// parseLeaderboardPanel extracts pilots, title, aggregate statistics, and
// the footer from one recognized panel.
func parseLeaderboardPanel(p Panel) leaderboardPanel {
	out := leaderboardPanel{
		pilots: parseRankLines(p.Description),
		title:  resolveTitle(p),
		footer: rewriteFooter(p.Footer),
	}

	parseStatFields(p.Fields, &out)

	// Free-text fallbacks for stats the bot sometimes renders inline
	// instead of as labeled fields.
	if out.totalPlayers == nil {
		if m := totalPlayersPattern.FindStringSubmatch(p.Description); m != nil {
			out.totalPlayers = intPtr(firstInt(m[1]))
		}
	}
	if out.totalCredits == nil {
		if m := totalCreditsPattern.FindStringSubmatch(p.Description); m != nil {
			out.totalCredits = intPtr(firstInt(m[1]))
		}
	}
	if out.activePilots == "" {
		if m := activePilotsPattern.FindStringSubmatch(p.Description); m != nil {
			out.activePilots = strings.TrimSpace(m[1])
		}
	}
	if out.highestScore == nil {
		if m := highScorePattern.FindStringSubmatch(p.Description); m != nil {
			out.highestScore = intPtr(firstInt(m[1]))
		}
	}

	return out
}

// parseRankLines scans the description for "#N | name" entries, associating
// each with a credit value found within the lookahead window below it.
func parseRankLines(description string) []models.Pilot {
	lines := strings.Split(description, "\n")

	var pilots []models.Pilot
	for i, line := range lines {
		m := rankLinePattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		rank, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}

		pilots = append(pilots, models.Pilot{
			Rank:    rank,
			Name:    stripMarkdown(m[2]),
			Credits: lookupCredits(lines, i),
		})
	}
	return pilots
}

// lookupCredits scans up to creditLookahead lines below the rank line.
// An explicit "<number> credits" wins; otherwise the first grouped number
// on a non-rank line is taken; otherwise zero.
func lookupCredits(lines []string, rankIdx int) int {
	end := rankIdx + creditLookahead
	if end > len(lines)-1 {
		end = len(lines) - 1
	}

	for i := rankIdx + 1; i <= end; i++ {
		if m := creditsLinePattern.FindStringSubmatch(lines[i]); m != nil {
			return firstInt(m[1])
		}
	}
	for i := rankIdx + 1; i <= end; i++ {
		if rankLinePattern.MatchString(lines[i]) {
			continue
		}
		if m := groupedNumberPattern.FindString(lines[i]); m != "" {
			return firstInt(m)
		}
	}
	return 0
}

// resolveTitle prefers a trophy-prefixed description line over the panel's
// own title. The default is applied after aggregation.
func resolveTitle(p Panel) string {
	if m := trophyTitlePattern.FindStringSubmatch(p.Description); m != nil {
		return stripMarkdown(m[1])
	}
	return strings.TrimSpace(p.Title)
}

// parseStatFields classifies labeled fields by bilingual (Turkish/English)
// keywords. Each statistic takes the first matching field only.
func parseStatFields(fields []Field, out *leaderboardPanel) {
	for _, f := range fields {
		name := strings.ToLower(f.Name)

		playerish := strings.Contains(name, "oyuncu") || strings.Contains(name, "player")
		totalish := strings.Contains(name, "toplam") || strings.Contains(name, "total")

		switch {
		case playerish && totalish:
			if out.totalPlayers == nil {
				out.totalPlayers = intPtr(firstInt(f.Value))
			}
		case totalish:
			if out.totalCredits == nil {
				out.totalCredits = intPtr(firstInt(f.Value))
			}
		case strings.Contains(name, "aktif") || strings.Contains(name, "active") || strings.Contains(name, "pilot"):
			if out.activePilots == "" {
				out.activePilots = strings.TrimSpace(f.Value)
			}
		case strings.Contains(name, "yuksek") || strings.Contains(name, "yüksek") ||
			strings.Contains(name, "highest") || strings.Contains(name, "puan") || strings.Contains(name, "score"):
			if out.highestScore == nil {
				out.highestScore = intPtr(firstInt(f.Value))
			}
		}
	}
}

// rewriteFooter corrects the known display lag in the bot's refresh note.
func rewriteFooter(footer string) string {
	return strings.ReplaceAll(footer, "10 dk", "5 dk")
}

func intPtr(n int) *int { return &n }

func intOr(p *int, fallback int) int {
	if p != nil {
		return *p
	}
	return fallback
}

func sumCredits(pilots []models.Pilot) int {
	sum := 0
	for _, p := range pilots {
		sum += p.Credits
	}
	return sum
}

func maxCredits(pilots []models.Pilot) int {
	best := 0
	for _, p := range pilots {
		if p.Credits > best {
			best = p.Credits
		}
	}
	return best
}
