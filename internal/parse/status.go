package parse

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/hangarlabs/simwatch/internal/models"
)

var (
	bracketGroupPattern = regexp.MustCompile(`\[[^\]]*\]|【[^】]*】|（[^）]*）`)
	mapNoisePattern     = regexp.MustCompile(`[\[\]【】（）()0-9/\-\s]`)
	channelCountPattern = regexp.MustCompile(`[\[【（](\d+)\s*/\s*(\d+)[\]】）]`)
	serverPrefixPattern = regexp.MustCompile(`(?i)server-`)
)

// BuildServerStatus combines the three panel parsers' output for one status
// channel into the canonical record. Each parser scans the whole batch
// independently; message order inside the batch only decides which
// duplicate panel wins.
func BuildServerStatus(channelName string, panels []Panel) models.ServerStatus {
	info, online := ParseServerInfo(panels)
	active := ParseActivePlayers(panels)
	stats := ParseMissionStats(panels)

	mapID, friendly := MapFromChannelName(channelName)

	status := models.ServerStatus{
		Online:        online,
		ChannelName:   channelName,
		ServerName:    DefaultText,
		Mission:       info.Mission,
		Map:           info.Map,
		MissionTime:   info.Runtime,
		MissionDate:   info.MissionDate,
		Weather:       info.Weather,
		Slots:         info.Slots,
		ServerIP:      info.ServerIP,
		LastUpdate:    info.LastUpdate,
		ActivePlayers: active,
		MissionStats:  stats,
		MapID:         mapID,
		FriendlyName:  friendly,
		PlayerList:    []string{},
		PlayerDetails: []models.PlayerEntry{},
	}
	if online && info.ServerName != "" {
		status.ServerName = info.ServerName
	}

	for _, roster := range [][]models.PlayerEntry{active.Blue, active.Red, active.Neutral} {
		for _, entry := range roster {
			status.PlayerList = append(status.PlayerList, entry.Name)
			status.PlayerDetails = append(status.PlayerDetails, entry)
		}
	}

	// Channel names often carry a live [used/total] count that is fresher
	// than the roster panel.
	if m := channelCountPattern.FindStringSubmatch(channelName); m != nil {
		status.Players, _ = strconv.Atoi(m[1])
		status.MaxPlayers, _ = strconv.Atoi(m[2])
	} else {
		status.Players = len(status.PlayerList)
	}

	return status
}

// MapFromChannelName derives the map identifier and display name encoded in
// a status channel name. Everything up to and including the last "server-"
// is dropped, then bracketed counts, full-width brackets, digits, slashes,
// hyphens, and whitespace are stripped from the remainder.
func MapFromChannelName(name string) (mapID, friendly string) {
	// Match on the original string: lowercasing first would shift byte
	// offsets for characters like Turkish İ whose case pair changes length.
	if matches := serverPrefixPattern.FindAllStringIndex(name, -1); matches != nil {
		name = name[matches[len(matches)-1][1]:]
	}

	name = bracketGroupPattern.ReplaceAllString(name, "")
	name = mapNoisePattern.ReplaceAllString(name, "")

	mapID = strings.ToLower(name)
	friendly = capitalize(mapID)
	return mapID, friendly
}

func capitalize(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
