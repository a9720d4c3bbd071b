package parse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/hangarlabs/simwatch/internal/models"
)

// serverInfoMarker identifies the Server Info panel inside a channel batch.
const serverInfoMarker = "Mission:"

// Defaults for fields the panel may omit.
const (
	DefaultText    = "--"
	DefaultRuntime = "--:--"
)

var (
	missionPattern     = regexp.MustCompile(`Mission:[ \t]*([^\n]+)`)
	lastUpdatedPattern = regexp.MustCompile(`Last updated:\s*`)
	blueSlotsPattern   = regexp.MustCompile(`(?i)(?:🔵|blue)[^\n]*?Used:\s*(\d+)\s*/\s*(\d+)`)
	redSlotsPattern    = regexp.MustCompile(`(?i)(?:🔴|red)[^\n]*?Used:\s*(\d+)\s*/\s*(\d+)`)
	runtimePattern     = regexp.MustCompile(`(?i)[*_]*Runtime[*_]*:?[*_ ]*(\d+:\d{2}(?::\d{2})?)`)
	temperaturePattern = regexp.MustCompile(`(-?\d+)\s*°?\s*C\b`)
	qnhPattern         = regexp.MustCompile(`(\d+)\s*hPa`)
	cloudbasePattern   = regexp.MustCompile(`(?i)Cloudbase\D*?(\d+)\s*ft`)
	windPattern        = regexp.MustCompile(`Ground:\s*([^\n]+)`)
)

// ServerInfo is the intermediate output of the Server Info panel parser.
type ServerInfo struct {
	ServerName  string
	Mission     string
	LastUpdate  string
	ServerIP    string
	Map         string
	MissionDate string
	Runtime     string
	Slots       *models.SlotInfo
	Weather     *models.Weather
}

// ParseServerInfo scans a channel batch for the Server Info panel and
// extracts mission metadata from it. The first panel whose description
// contains the "Mission:" marker wins; the boolean reports whether any
// panel matched. Every extracted value is independently optional and
// defaults when its pattern fails.
func ParseServerInfo(panels []Panel) (ServerInfo, bool) {
	info := ServerInfo{
		Mission: DefaultText,
		Map:     DefaultText,
		Runtime: DefaultRuntime,
	}

	// Fold with an explicit found flag, first match wins.
	found := false
	for _, p := range panels {
		if found || !strings.Contains(p.Description, serverInfoMarker) {
			continue
		}
		found = true

		info.ServerName = strings.TrimSpace(p.Title)

		if m := missionPattern.FindStringSubmatch(p.Description); m != nil {
			info.Mission = strings.ReplaceAll(strings.TrimSpace(m[1]), `\_`, "_")
		}

		if p.Footer != "" {
			info.LastUpdate = strings.TrimSpace(lastUpdatedPattern.ReplaceAllString(p.Footer, ""))
		}

		for _, f := range p.Fields {
			switch f.Name {
			case "Server-IP / Port":
				info.ServerIP = strings.TrimSpace(f.Value)
			case "Map":
				parseMapField(f.Value, &info)
			case "Date / Time in Mission":
				parseDateField(f.Value, &info)
			case "Temperature":
				parseTemperatureField(f.Value, &info)
			case "Clouds":
				parseCloudsField(f.Value, &info)
			case "Visibility":
				parseVisibilityField(f.Value, &info)
			}
		}
	}

	return info, found
}

// parseMapField reads the map name from the first line and per-coalition
// slot usage from the marker lines below it.
func parseMapField(value string, info *ServerInfo) {
	lines := splitLines(value)
	if len(lines) > 0 {
		info.Map = lines[0]
	}

	slots := &models.SlotInfo{}
	if m := blueSlotsPattern.FindStringSubmatch(value); m != nil {
		slots.Blue = sideCount(m[1], m[2])
	}
	if m := redSlotsPattern.FindStringSubmatch(value); m != nil {
		slots.Red = sideCount(m[1], m[2])
	}
	info.Slots = slots
}

func sideCount(used, total string) models.SideCount {
	u, _ := strconv.Atoi(used)
	t, _ := strconv.Atoi(total)
	return models.SideCount{Used: u, Total: t}
}

// parseDateField reads the in-mission date from the first line and the
// runtime from a "Runtime" marker tolerant of emphasis markup.
func parseDateField(value string, info *ServerInfo) {
	lines := splitLines(value)
	if len(lines) > 0 {
		info.MissionDate = lines[0]
	}

	if m := runtimePattern.FindStringSubmatch(value); m != nil {
		info.Runtime = m[1]
	}
}

func (info *ServerInfo) weather() *models.Weather {
	if info.Weather == nil {
		info.Weather = &models.Weather{}
	}
	return info.Weather
}

func parseTemperatureField(value string, info *ServerInfo) {
	w := info.weather()
	if m := temperaturePattern.FindStringSubmatch(value); m != nil {
		w.Temperature = m[1] + "°C"
	}
	if m := qnhPattern.FindStringSubmatch(value); m != nil {
		w.QNH = m[1] + " hPa"
	}
}

func parseCloudsField(value string, info *ServerInfo) {
	w := info.weather()
	for _, line := range splitLines(value) {
		if !containsFold(line, "Cloudbase") {
			w.Clouds = line
			break
		}
	}
	if m := cloudbasePattern.FindStringSubmatch(value); m != nil {
		w.Cloudbase = m[1] + " ft"
	}
}

func parseVisibilityField(value string, info *ServerInfo) {
	w := info.weather()
	if lines := splitLines(value); len(lines) > 0 {
		w.Visibility = lines[0]
	}
	if m := windPattern.FindStringSubmatch(value); m != nil {
		w.Wind = strings.TrimSpace(m[1])
	}
}
