/* models.go
 * This file contains the structs and helper functions that are shared between sub packages
 * Authors: Zachary Bower
 */

package shared

import "fmt"

type User struct {
	UserID   string
	Username string
}

// SurvivorStatus is the derived state of one participant's season
type SurvivorStatus string

const (
	StatusAlive            SurvivorStatus = "alive"
	StatusEliminated       SurvivorStatus = "eliminated"
	StatusNotParticipating SurvivorStatus = "not_participating"
)

// Participant is one enrolled pool member from the roster collection. Active is a
// pointer because the externally tracked participation flag may be absent entirely
type Participant struct {
	ID          string `bson:"participantid,omitempty"`
	DisplayName string `bson:"displayname,omitempty"`
	Email       string `bson:"email,omitempty"`
	Enrolled    bool   `bson:"enrolled,omitempty"`
	Active      *bool  `bson:"active,omitempty"`
}

// Name returns the participant's display name, degrading to an id derived
// placeholder when no display metadata was stored
func (p Participant) Name() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	if p.Email != "" {
		return p.Email
	}
	id := p.ID
	if len(id) > 8 {
		id = id[:8]
	}
	return fmt.Sprintf("participant-%s", id)
}

// WeeklyPick is one participant's team selection for one week
type WeeklyPick struct {
	Week int    `bson:"week,omitempty"`
	Team string `bson:"team,omitempty"`
}

// GameResult is the derived per week partition of teams into winners and losers.
// A team can appear in at most one of the two sets
type GameResult struct {
	WinningTeams map[string]bool
	LosingTeams  map[string]bool
	FinalGames   int
	TotalGames   int
}

// SurvivorRecord is one participant's computed ground truth state. EliminatedWeek
// and EliminatedBy are only set when Status is StatusEliminated
type SurvivorRecord struct {
	Status         SurvivorStatus
	EliminatedWeek int
	EliminatedBy   string
	WinningPicks   []WeeklyPick
}

// PersistedStatus is the separately stored status record that the audit engine
// checks against the computed SurvivorRecord
type PersistedStatus struct {
	Eliminated        bool   `bson:"eliminated"`
	EliminatedWeek    int    `bson:"eliminated_week,omitempty"`
	EliminationReason string `bson:"elimination_reason,omitempty"`
}
