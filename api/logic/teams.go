/* teams.go
 * Contains the logic for matching user entered team names against the teams
 * playing in a week
 * Authors: Zachary Bower
 */

package logic

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// MatchTeamName matches a user entered team name against the valid team list for
// a week. Matching is case insensitive and fuzzy, an exact match wins over a
// ranked one when several candidates fit
// Preconditions: Receives the user input and the list of valid team names
// Postconditions: Returns the canonical team name and true, or an empty string and
// false when nothing matches
func MatchTeamName(input string, validTeams []string) (string, bool) {
	lookup := make(map[string]string)
	var validLower []string
	for _, name := range validTeams {
		lower := strings.ToLower(name)
		lookup[lower] = name
		validLower = append(validLower, lower)
	}

	lowerInput := strings.ToLower(strings.TrimSpace(input))
	if lowerInput == "" {
		return "", false
	}

	fuzzyResults := fuzzy.RankFind(lowerInput, validLower)
	if len(fuzzyResults) == 0 {
		return "", false
	}

	// Prefer an exact match when the fuzzy search returns several candidates
	for i := range fuzzyResults {
		if fuzzyResults[i].Target == lowerInput {
			return lookup[fuzzyResults[i].Target], true
		}
	}
	return lookup[fuzzyResults[0].Target], true
}
