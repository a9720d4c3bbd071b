// Package models defines the data structures produced by the parsing core
// and consumed by the export, storage, and API layers.
package models

// ChannelInfo describes one guild channel as seen by the classifier.
type ChannelInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type int    `json:"type"`
}

// PlayerEntry is one player row paired with the unit they occupy.
// Unit falls back to "--" when the parallel unit column is shorter.
type PlayerEntry struct {
	Name string `json:"name"`
	Unit string `json:"unit"`
}

// SideCount holds used/total slot numbers for one coalition.
type SideCount struct {
	Used  int `json:"used"`
	Total int `json:"total"`
}

// SlotInfo holds per-coalition slot usage parsed from the Map field.
type SlotInfo struct {
	Blue SideCount `json:"blue"`
	Red  SideCount `json:"red"`
}

// SideValues holds a blue/red numeric pair for one statistics label.
// A side stays nil until its column panel has been seen.
type SideValues struct {
	Blue *int `json:"blue,omitempty"`
	Red  *int `json:"red,omitempty"`
}

// MissionStats groups the two sections of the Mission Statistics panel.
type MissionStats struct {
	Situation    map[string]*SideValues `json:"situation"`
	Achievements map[string]*SideValues `json:"achievements"`
}

// Weather collects the optional weather keys assembled from the
// Temperature, Clouds, and Visibility embed fields. Empty string = unset.
type Weather struct {
	Temperature string `json:"temperature,omitempty"`
	QNH         string `json:"qnh,omitempty"`
	Clouds      string `json:"clouds,omitempty"`
	Cloudbase   string `json:"cloudbase,omitempty"`
	Visibility  string `json:"visibility,omitempty"`
	Wind        string `json:"wind,omitempty"`
}

// ActivePlayers holds the per-faction rosters from the Active Players panel.
type ActivePlayers struct {
	Blue    []PlayerEntry `json:"blue"`
	Red     []PlayerEntry `json:"red"`
	Neutral []PlayerEntry `json:"neutral"`
}

// ServerStatus is the canonical per-channel server record.
// Online is true iff a Server Info panel was found in the channel batch;
// every panel-derived field keeps its documented default otherwise.
type ServerStatus struct {
	Online        bool          `json:"online"`
	ChannelName   string        `json:"channel_name"`
	ServerName    string        `json:"server_name"`
	ServerIP      string        `json:"server_ip,omitempty"`
	Mission       string        `json:"mission"`
	Map           string        `json:"map"`
	Players       int           `json:"players"`
	MaxPlayers    int           `json:"max_players"`
	MissionTime   string        `json:"mission_time"`
	MissionDate   string        `json:"mission_date,omitempty"`
	Weather       *Weather      `json:"weather,omitempty"`
	Slots         *SlotInfo     `json:"slots,omitempty"`
	PlayerList    []string      `json:"player_list"`
	PlayerDetails []PlayerEntry `json:"player_details"`
	ActivePlayers ActivePlayers `json:"active_players"`
	MissionStats  *MissionStats `json:"mission_stats,omitempty"`
	LastUpdate    string        `json:"last_update,omitempty"`
	MapID         string        `json:"map_id"`
	FriendlyName  string        `json:"friendly_name"`
	Country       string        `json:"country,omitempty"`
}

// Pilot is one ranked leaderboard entry. Duplicate ranks from the source
// text are kept as-is.
type Pilot struct {
	Rank    int    `json:"rank"`
	Name    string `json:"name"`
	Credits int    `json:"credits"`
}

// LeaderboardStats carries the aggregate numbers from labeled embed fields,
// with pilot-list fallbacks applied by the parser.
type LeaderboardStats struct {
	TotalCredits int    `json:"total_credits"`
	TotalPlayers int    `json:"total_players"`
	ActivePilots string `json:"active_pilots"`
	HighestScore int    `json:"highest_score"`
}

// Leaderboard is the canonical per-channel ranking record,
// pilots sorted ascending by rank.
type Leaderboard struct {
	ChannelName string           `json:"channel_name"`
	Title       string           `json:"title"`
	Pilots      []Pilot          `json:"pilots"`
	Stats       LeaderboardStats `json:"stats"`
	LastUpdate  string           `json:"last_update,omitempty"`
}
