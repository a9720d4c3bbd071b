package parse

// Leaderboard channel names come in a few spellings across guilds.
var leaderboardKeywords = []string{"leaderboard", "leader-board", "stats", "foothold"}

// IsStatusChannel reports whether a channel name marks a server status
// channel. Classification is by substring only; anything else is simply
// not collected.
func IsStatusChannel(name string) bool {
	return containsFold(name, "server-")
}

// IsLeaderboardChannel reports whether a channel name marks a leaderboard
// channel. A channel may classify as both status and leaderboard; the two
// consumers are independent.
func IsLeaderboardChannel(name string) bool {
	for _, kw := range leaderboardKeywords {
		if containsFold(name, kw) {
			return true
		}
	}
	return false
}
