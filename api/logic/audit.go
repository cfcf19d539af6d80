/* audit.go
 * Contains the drift classification logic for the reconciliation engine. Each
 * known bug pattern is a member of a closed set so the correction step can handle
 * them exhaustively
 * Authors: Zachary Bower
 */

package logic

import (
	"fmt"

	"survivor-pool/api/shared"
)

// PatternKind identifies one known class of drift between a persisted status
// record and the recomputed ground truth
type PatternKind string

const (
	// Persisted as eliminated, but the computed record shows a win in the
	// persisted elimination week
	PatternIncorrectEliminationWeek PatternKind = "incorrect_elimination_week"
	// Persisted as eliminated, but an earlier week already contains the real loss
	PatternDelayedElimination PatternKind = "delayed_elimination"
	// Persisted as alive, but the computed walk finds a loss in a final game
	PatternMissingElimination PatternKind = "missing_elimination"
)

// DriftMatch is one detected divergence for one participant
type DriftMatch struct {
	Kind          PatternKind
	ParticipantID string
	PersistedWeek int
	ComputedWeek  int
	ComputedBy    string
	Detail        string
}

// ClassifyDrift compares a computed SurvivorRecord against the persisted status
// record and returns every pattern that matches. A clean comparison returns an
// empty slice, divergence is data here, not an error
// Preconditions: Receives the participant id, the freshly computed record and the
// persisted status. The record must not be StatusNotParticipating, callers filter
// those out before auditing
// Postconditions: Returns zero or more DriftMatch values, deterministic for fixed inputs
func ClassifyDrift(participantID string, record shared.SurvivorRecord, status shared.PersistedStatus) []DriftMatch {
	var matches []DriftMatch

	if status.Eliminated {
		if status.EliminatedWeek > 0 && WonInWeek(record, status.EliminatedWeek) {
			matches = append(matches, DriftMatch{
				Kind:          PatternIncorrectEliminationWeek,
				ParticipantID: participantID,
				PersistedWeek: status.EliminatedWeek,
				ComputedWeek:  record.EliminatedWeek,
				ComputedBy:    record.EliminatedBy,
				Detail:        fmt.Sprintf("persisted elimination in week %d but the week %d pick won", status.EliminatedWeek, status.EliminatedWeek),
			})
		}
		if record.Status == shared.StatusEliminated && status.EliminatedWeek > 0 && record.EliminatedWeek < status.EliminatedWeek {
			matches = append(matches, DriftMatch{
				Kind:          PatternDelayedElimination,
				ParticipantID: participantID,
				PersistedWeek: status.EliminatedWeek,
				ComputedWeek:  record.EliminatedWeek,
				ComputedBy:    record.EliminatedBy,
				Detail:        fmt.Sprintf("persisted elimination in week %d but %s already lost in week %d", status.EliminatedWeek, record.EliminatedBy, record.EliminatedWeek),
			})
		}
		return matches
	}

	if record.Status == shared.StatusEliminated {
		matches = append(matches, DriftMatch{
			Kind:          PatternMissingElimination,
			ParticipantID: participantID,
			ComputedWeek:  record.EliminatedWeek,
			ComputedBy:    record.EliminatedBy,
			Detail:        fmt.Sprintf("persisted as alive but %s lost a final game in week %d", record.EliminatedBy, record.EliminatedWeek),
		})
	}

	return matches
}

// HasKind reports whether any match in the slice carries the given pattern kind.
// Used by the verification pass to confirm a discovered pattern still holds
// Preconditions: Receives a slice of matches and a pattern kind
// Postconditions: Returns true if at least one match has that kind
func HasKind(matches []DriftMatch, kind PatternKind) bool {
	for _, match := range matches {
		if match.Kind == kind {
			return true
		}
	}
	return false
}

// FilterKinds keeps only the matches whose kind appears in the allowed set.
// Used during pattern propagation, a bug class discovered on the signal
// participant is assumed systemic and tested pool wide
// Preconditions: Receives a slice of matches and the allowed kinds
// Postconditions: Returns the matches whose kind is allowed, order preserved
func FilterKinds(matches []DriftMatch, kinds map[PatternKind]bool) []DriftMatch {
	var kept []DriftMatch
	for _, match := range matches {
		if kinds[match.Kind] {
			kept = append(kept, match)
		}
	}
	return kept
}
