/* results.go
 * Contains the logic for aggregating raw per-game records into weekly winner and
 * loser sets. Raw records come from the week_results collection and arrive with
 * inconsistent shapes, so all team names pass through NormalizeTeamName exactly
 * once, at this boundary
 * Authors: Zachary Bower
 */

package logic

import (
	"sort"
	"strings"

	"survivor-pool/api/shared"
)

// Terminal status spellings seen in the results feed. Anything else, including
// the live spellings (in_progress, live, halftime) and the pre-game ones
// (scheduled, pregame, delayed), still has an outcome that can change, so only
// this whitelist marks a game as settled
var finalStatuses = map[string]bool{
	"final":     true,
	"f":         true,
	"complete":  true,
	"completed": true,
	"closed":    true,
	"post":      true,
}

// IsFinalStatus reports whether a raw status string marks a settled game
// Preconditions: Receives the raw status string from a game record
// Postconditions: Returns true only for known terminal spellings
func IsFinalStatus(status string) bool {
	return finalStatuses[strings.ToLower(strings.TrimSpace(status))]
}

// NormalizeTeamName extracts a canonical team name from the varying shapes the
// results feed uses: a plain string, or an object with a name or displayName field
// Preconditions: Receives the raw value found under a team or winner key
// Postconditions: Returns the trimmed team name, or an empty string if no name can be resolved
func NormalizeTeamName(value interface{}) string {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case map[string]interface{}:
		for _, key := range []string{"name", "displayName", "team"} {
			if nested, ok := v[key]; ok {
				if name := NormalizeTeamName(nested); name != "" {
					return name
				}
			}
		}
	}
	return ""
}

// extractTeams resolves the two team names from a raw game record, trying the
// home/away keys first and team1/team2 as a fallback
// Preconditions: Receives a decoded game record
// Postconditions: Returns both team names, and false if neither key pair is present
func extractTeams(game map[string]interface{}) (string, string, bool) {
	home := NormalizeTeamName(game["home"])
	away := NormalizeTeamName(game["away"])
	if home == "" && away == "" {
		home = NormalizeTeamName(game["team1"])
		away = NormalizeTeamName(game["team2"])
	}
	if home == "" && away == "" {
		return "", "", false
	}
	return home, away, true
}

// AggregateWeek partitions one week's raw game records into winner and loser sets.
// Records that carry neither team fields nor a status are collection metadata and
// are skipped. Only games with a terminal status and a declared winner contribute
// Preconditions: Receives the raw games map keyed by opaque game id
// Postconditions: Returns a GameResult where each team appears in at most one set
func AggregateWeek(rawGames map[string]interface{}) shared.GameResult {
	result := shared.GameResult{
		WinningTeams: make(map[string]bool),
		LosingTeams:  make(map[string]bool),
	}

	for _, raw := range rawGames {
		game, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}

		home, away, hasTeams := extractTeams(game)
		status, hasStatus := game["status"].(string)
		if !hasTeams && !hasStatus {
			// Metadata entry, not a game
			continue
		}
		if !hasTeams {
			continue
		}
		result.TotalGames++

		if !hasStatus || !IsFinalStatus(status) {
			continue
		}
		result.FinalGames++

		winner := NormalizeTeamName(game["winner"])
		if winner == "" {
			// Final game with no declared winner, e.g. a tie. Neither team wins or loses
			continue
		}

		var loser string
		switch winner {
		case home:
			loser = away
		case away:
			loser = home
		default:
			// Winner does not match either team, data anomaly, skip the game
			continue
		}

		if !result.LosingTeams[winner] {
			result.WinningTeams[winner] = true
		}
		if loser != "" && !result.WinningTeams[loser] {
			result.LosingTeams[loser] = true
		}
	}

	return result
}

// AvailableWeeks lists the weeks that may be evaluated by the elimination walk.
// A week qualifies if it has at least one final game, or if it is the current
// week, which lets a partially played Sunday drive partial eliminations. All
// other weeks are omitted entirely rather than zero filled
// Preconditions: Receives aggregated results keyed by week and the current week number
// Postconditions: Returns the qualifying week numbers in ascending order
func AvailableWeeks(results map[int]shared.GameResult, currentWeek int) []int {
	var weeks []int
	for week, result := range results {
		if result.FinalGames > 0 || week == currentWeek {
			weeks = append(weeks, week)
		}
	}
	if _, ok := results[currentWeek]; !ok && currentWeek > 0 {
		weeks = append(weeks, currentWeek)
	}
	sort.Ints(weeks)
	return weeks
}

// TeamsInWeek lists every team named by a week's raw game records. Used to build
// the valid team list for pick entry
// Preconditions: Receives the raw games map keyed by opaque game id
// Postconditions: Returns the distinct normalized team names in sorted order
func TeamsInWeek(rawGames map[string]interface{}) []string {
	seen := make(map[string]bool)
	for _, raw := range rawGames {
		game, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		home, away, hasTeams := extractTeams(game)
		if !hasTeams {
			continue
		}
		for _, team := range []string{home, away} {
			if team != "" {
				seen[team] = true
			}
		}
	}

	teams := make([]string, 0, len(seen))
	for team := range seen {
		teams = append(teams, team)
	}
	sort.Strings(teams)
	return teams
}
