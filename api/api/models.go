/* models.go
 * Contains the snapshot structs produced by this package
 * Authors: Zachary Bower
 */

package api

import (
	"time"

	"survivor-pool/api/shared"
)

// ParticipantState is one participant's entry in a pool snapshot
type ParticipantState struct {
	ID                 string                `json:"id"`
	Name               string                `json:"name"`
	Status             shared.SurvivorStatus `json:"status"`
	EliminatedWeek     int                   `json:"eliminatedWeek,omitempty"`
	EliminatedBy       string                `json:"eliminatedBy,omitempty"`
	WinningPicks       []shared.WeeklyPick   `json:"winningPicks,omitempty"`
	ShouldUpdateStatus bool                  `json:"shouldUpdateStatus,omitempty"`
	StatusReason       string                `json:"statusReason,omitempty"`
	Error              string                `json:"error,omitempty"`
}

// Summary holds the per bucket counts for a snapshot
type Summary struct {
	Alive            int `json:"alive"`
	Eliminated       int `json:"eliminated"`
	NotParticipating int `json:"notParticipating"`
	Errors           int `json:"errors"`
}

// PoolSnapshot is the whole pool view served to callers. Entries are never
// mutated after the snapshot is built
type PoolSnapshot struct {
	Pool             string             `json:"pool"`
	CurrentWeek      int                `json:"currentWeek"`
	Alive            []ParticipantState `json:"alive"`
	Eliminated       []ParticipantState `json:"eliminated"`
	NotParticipating []ParticipantState `json:"notParticipating"`
	Errors           []ParticipantState `json:"errors,omitempty"`
	Summary          Summary            `json:"summary"`
	GeneratedAt      time.Time          `json:"generatedAt"`
}
