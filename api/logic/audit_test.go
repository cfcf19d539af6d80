/* audit_test.go
 * Contains unit tests for audit.go
 * Authors: Zachary Bower
 */

package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"survivor-pool/api/shared"
)

// TestClassifyDrift_IncorrectEliminationWeek covers scenario C: persisted as
// eliminated in week 4 but the computed record shows the week 4 pick won
func TestClassifyDrift_IncorrectEliminationWeek(t *testing.T) {
	record := shared.SurvivorRecord{
		Status:       shared.StatusAlive,
		WinningPicks: []shared.WeeklyPick{{Week: 1, Team: "TeamA"}, {Week: 4, Team: "TeamZ"}},
	}
	status := shared.PersistedStatus{
		Eliminated:        true,
		EliminatedWeek:    4,
		EliminationReason: "TeamZ lost",
	}

	matches := ClassifyDrift("user1", record, status)

	require.Len(t, matches, 1)
	assert.Equal(t, PatternIncorrectEliminationWeek, matches[0].Kind)
	assert.Equal(t, "user1", matches[0].ParticipantID)
	assert.Equal(t, 4, matches[0].PersistedWeek)
}

// TestClassifyDrift_DelayedElimination tests the pattern where the real loss
// happened earlier than the persisted week
func TestClassifyDrift_DelayedElimination(t *testing.T) {
	record := shared.SurvivorRecord{
		Status:         shared.StatusEliminated,
		EliminatedWeek: 2,
		EliminatedBy:   "TeamB",
		WinningPicks:   []shared.WeeklyPick{{Week: 1, Team: "TeamA"}},
	}
	status := shared.PersistedStatus{
		Eliminated:     true,
		EliminatedWeek: 5,
	}

	matches := ClassifyDrift("user2", record, status)

	require.Len(t, matches, 1)
	assert.Equal(t, PatternDelayedElimination, matches[0].Kind)
	assert.Equal(t, 5, matches[0].PersistedWeek)
	assert.Equal(t, 2, matches[0].ComputedWeek)
}

// TestClassifyDrift_MissingElimination covers scenario D: persisted as alive but
// the computed walk finds a final loss in week 2
func TestClassifyDrift_MissingElimination(t *testing.T) {
	record := shared.SurvivorRecord{
		Status:         shared.StatusEliminated,
		EliminatedWeek: 2,
		EliminatedBy:   "TeamY",
		WinningPicks:   []shared.WeeklyPick{{Week: 1, Team: "TeamX"}},
	}
	status := shared.PersistedStatus{Eliminated: false}

	matches := ClassifyDrift("user3", record, status)

	require.Len(t, matches, 1)
	assert.Equal(t, PatternMissingElimination, matches[0].Kind)
	assert.Equal(t, 2, matches[0].ComputedWeek)
	assert.Equal(t, "TeamY", matches[0].ComputedBy)
}

// TestClassifyDrift_CleanComparison tests that agreement yields no matches in
// both the alive and the eliminated case
func TestClassifyDrift_CleanComparison(t *testing.T) {
	alive := shared.SurvivorRecord{
		Status:       shared.StatusAlive,
		WinningPicks: []shared.WeeklyPick{{Week: 1, Team: "TeamA"}},
	}
	assert.Empty(t, ClassifyDrift("user4", alive, shared.PersistedStatus{Eliminated: false}))

	eliminated := shared.SurvivorRecord{
		Status:         shared.StatusEliminated,
		EliminatedWeek: 3,
		EliminatedBy:   "TeamC",
	}
	assert.Empty(t, ClassifyDrift("user4", eliminated, shared.PersistedStatus{
		Eliminated:     true,
		EliminatedWeek: 3,
	}))
}

// TestClassifyDrift_CorrectedStatusStaysClean tests idempotency of the correction
// semantics, a record fixed to match the computed truth produces no new matches
func TestClassifyDrift_CorrectedStatusStaysClean(t *testing.T) {
	record := shared.SurvivorRecord{
		Status:         shared.StatusEliminated,
		EliminatedWeek: 2,
		EliminatedBy:   "TeamY",
	}
	corrected := shared.PersistedStatus{
		Eliminated:        true,
		EliminatedWeek:    2,
		EliminationReason: "TeamY lost in week 2",
	}

	assert.Empty(t, ClassifyDrift("user5", record, corrected))
}

// TestHasKind tests the kind lookup helper
func TestHasKind(t *testing.T) {
	matches := []DriftMatch{{Kind: PatternMissingElimination}}
	assert.True(t, HasKind(matches, PatternMissingElimination))
	assert.False(t, HasKind(matches, PatternDelayedElimination))
	assert.False(t, HasKind(nil, PatternMissingElimination))
}

// TestFilterKinds tests propagation filtering by discovered pattern kinds
func TestFilterKinds(t *testing.T) {
	matches := []DriftMatch{
		{Kind: PatternMissingElimination, ParticipantID: "a"},
		{Kind: PatternDelayedElimination, ParticipantID: "b"},
		{Kind: PatternIncorrectEliminationWeek, ParticipantID: "c"},
	}
	kinds := map[PatternKind]bool{PatternMissingElimination: true, PatternIncorrectEliminationWeek: true}

	kept := FilterKinds(matches, kinds)

	require.Len(t, kept, 2)
	assert.Equal(t, "a", kept[0].ParticipantID)
	assert.Equal(t, "c", kept[1].ParticipantID)
}
