/* elimination.go
 * Contains the sequential per-participant elimination walk. The walk is pure, it
 * derives a SurvivorRecord from picks and aggregated results and never reads the
 * clock or the database
 * Authors: Zachary Bower
 */

package logic

import "survivor-pool/api/shared"

// ComputeSurvivorRecord derives one participant's survival state by walking the
// available weeks in ascending order. A participant with no week 1 pick never
// entered the pool, there is no entry point after week 1. A missing pick for a
// later week is skipped, not eliminating, and an undecided game never eliminates.
// The first losing pick ends the walk, no winning picks accumulate past it
// Preconditions: Receives the participant's picks keyed by week, aggregated results
// keyed by week, and the evaluable week numbers in ascending order
// Postconditions: Returns the derived SurvivorRecord. Output is deterministic for
// fixed inputs
func ComputeSurvivorRecord(picks map[int]shared.WeeklyPick, results map[int]shared.GameResult, availableWeeks []int) shared.SurvivorRecord {
	if _, ok := picks[1]; !ok {
		return shared.SurvivorRecord{Status: shared.StatusNotParticipating}
	}

	record := shared.SurvivorRecord{Status: shared.StatusAlive}

	for _, week := range availableWeeks {
		pick, ok := picks[week]
		if !ok {
			// Missing pick does not eliminate, current pool rules
			continue
		}

		result, ok := results[week]
		if !ok {
			// Week is current but has no results yet, nothing to evaluate
			continue
		}

		if result.LosingTeams[pick.Team] {
			record.Status = shared.StatusEliminated
			record.EliminatedWeek = week
			record.EliminatedBy = pick.Team
			break
		}

		if result.WinningTeams[pick.Team] {
			record.WinningPicks = append(record.WinningPicks, pick)
			continue
		}

		// Pick is in neither set: game not final, team not found or data anomaly.
		// Undecided, carry on to the next week
	}

	return record
}

// WonInWeek reports whether the computed record contains a winning pick for the
// given week. Used by the audit engine when testing the incorrect elimination
// week pattern
// Preconditions: Receives a SurvivorRecord and a week number
// Postconditions: Returns true if the record holds a winning pick for that week
func WonInWeek(record shared.SurvivorRecord, week int) bool {
	for _, pick := range record.WinningPicks {
		if pick.Week == week {
			return true
		}
	}
	return false
}
