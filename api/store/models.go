/* models.go
 * This file contains the structs and helper functions that relate to DB objects
 * Authors: Zachary Bower
 */

package store

import (
	"strconv"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"survivor-pool/api/shared"
)

// ParticipantDoc is one roster collection entry
type ParticipantDoc struct {
	Id            primitive.ObjectID `bson:"_id,omitempty"`
	Pool          string             `bson:"pool,omitempty"`
	ParticipantID string             `bson:"participantid,omitempty"`
	DisplayName   string             `bson:"displayname,omitempty"`
	Email         string             `bson:"email,omitempty"`
	Enrolled      bool               `bson:"enrolled,omitempty"`
	Active        *bool              `bson:"active,omitempty"`
}

// ToParticipant converts a roster document to the shared domain struct
func (d ParticipantDoc) ToParticipant() shared.Participant {
	return shared.Participant{
		ID:          d.ParticipantID,
		DisplayName: d.DisplayName,
		Email:       d.Email,
		Enrolled:    d.Enrolled,
		Active:      d.Active,
	}
}

// PickSheet is one participant's season of picks, one document per participant
// with the picks map keyed by week number string
type PickSheet struct {
	Id            primitive.ObjectID `bson:"_id,omitempty"`
	Pool          string             `bson:"pool,omitempty"`
	ParticipantID string             `bson:"participantid,omitempty"`
	Username      string             `bson:"username,omitempty"`
	Picks         map[string]string  `bson:"picks,omitempty"`
}

// ToWeeklyPicks converts the stored picks map into week keyed WeeklyPick values.
// Entries whose key does not parse as a positive week number are dropped
// Preconditions: None
// Postconditions: Returns the picks keyed by week number
func (p PickSheet) ToWeeklyPicks() map[int]shared.WeeklyPick {
	picks := make(map[int]shared.WeeklyPick, len(p.Picks))
	for key, team := range p.Picks {
		week, err := strconv.Atoi(key)
		if err != nil || week < 1 || team == "" {
			continue
		}
		picks[week] = shared.WeeklyPick{Week: week, Team: team}
	}
	return picks
}

// WeekResultsDoc is one week's raw per-game records as delivered by the results
// feed. Games is left untyped, the logic package owns shape normalization
type WeekResultsDoc struct {
	Id    primitive.ObjectID     `bson:"_id,omitempty"`
	Pool  string                 `bson:"pool,omitempty"`
	Week  int                    `bson:"week,omitempty"`
	Games map[string]interface{} `bson:"games,omitempty"`
}

// StatusRecord is the separately persisted survivor status that the audit engine
// treats as the object under test. The correction fields form the audit trail
type StatusRecord struct {
	Id                primitive.ObjectID `bson:"_id,omitempty"`
	Pool              string             `bson:"pool,omitempty"`
	ParticipantID     string             `bson:"participantid,omitempty"`
	Eliminated        bool               `bson:"eliminated"`
	EliminatedWeek    int                `bson:"eliminated_week,omitempty"`
	EliminationReason string             `bson:"elimination_reason,omitempty"`
	CorrectionID      string             `bson:"correction_id,omitempty"`
	CorrectedBy       string             `bson:"corrected_by,omitempty"`
	CorrectedAt       int64              `bson:"corrected_at,omitempty"`
	CorrectionNote    string             `bson:"correction_note,omitempty"`
}

// ToPersistedStatus converts a status record to the shared domain struct
func (r StatusRecord) ToPersistedStatus() shared.PersistedStatus {
	return shared.PersistedStatus{
		Eliminated:        r.Eliminated,
		EliminatedWeek:    r.EliminatedWeek,
		EliminationReason: r.EliminationReason,
	}
}

// Correction carries the audit trail for one corrective status write
type Correction struct {
	ID    string
	Actor string
	At    int64
	Note  string
}
