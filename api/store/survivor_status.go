/* survivor_status.go
 * Contains the methods for interacting with the survivor_status collection. This
 * is the only collection the engine writes to, and only through the correction
 * methods which stamp an audit trail on every write
 * Authors: Zachary Bower
 */

package store

import (
	"context"
	"errors"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FetchStatusRecord does a DB lookup and gets the persisted status for one participant
// Preconditions: Receives string containing the participant id
// Postconditions: Returns the StatusRecord if it exists, or an error if it occurs.
// mongo.ErrNoDocuments passes through, a participant without a record is treated
// as persisted-alive by the audit engine
func (s *Store) FetchStatusRecord(participantID string) (StatusRecord, error) {
	opts := options.FindOne()

	var record StatusRecord
	err := s.Collections.SurvivorStatus.FindOne(context.TODO(), bson.M{"participantid": participantID, "pool": s.Pool}, opts).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return StatusRecord{}, err
		}
		return StatusRecord{}, fmt.Errorf("error fetching status record from db: %w", err)
	}

	return record, nil
}

// ClearElimination restores a participant to alive, clearing the eliminated flag
// and all elimination metadata. Used to correct the incorrect_elimination_week
// pattern. Running it against an already alive record changes nothing
// Preconditions: Receives the participant id and the Correction audit trail values
// Postconditions: Updates the status record and returns nil, or an error if it occurs
func (s *Store) ClearElimination(participantID string, correction Correction) error {
	var record StatusRecord
	err := s.Collections.SurvivorStatus.FindOne(context.TODO(), bson.M{"participantid": participantID, "pool": s.Pool}).Decode(&record)
	notFound := errors.Is(err, mongo.ErrNoDocuments)

	if err != nil && !notFound {
		return fmt.Errorf("lookup for existing status record failed: %w", err)
	}
	if notFound || !record.Eliminated {
		// Nothing to clear, keep the correction idempotent
		return nil
	}

	log.Printf("clearing elimination for participant %s (%s)", participantID, correction.Note)

	filter := bson.M{"participantid": participantID, "pool": s.Pool}
	update := bson.M{
		"$set": bson.M{
			"eliminated":      false,
			"correction_id":   correction.ID,
			"corrected_by":    correction.Actor,
			"corrected_at":    correction.At,
			"correction_note": correction.Note,
		},
		"$unset": bson.M{
			"eliminated_week":    "",
			"elimination_reason": "",
		},
	}

	_, err = s.Collections.SurvivorStatus.UpdateOne(context.TODO(), filter, update)
	if err != nil {
		return fmt.Errorf("failed to clear elimination: %w", err)
	}
	return nil
}

// MarkEliminated sets a participant's persisted status to eliminated with the
// computed week and cause. Used to correct the missing_elimination pattern.
// Running it against a record already eliminated in the same week changes nothing
// Preconditions: Receives the participant id, the elimination week and team, and
// the Correction audit trail values
// Postconditions: Inserts or updates the status record and returns nil, or an error if it occurs
func (s *Store) MarkEliminated(participantID string, week int, team string, correction Correction) error {
	var record StatusRecord
	err := s.Collections.SurvivorStatus.FindOne(context.TODO(), bson.M{"participantid": participantID, "pool": s.Pool}).Decode(&record)
	notFound := errors.Is(err, mongo.ErrNoDocuments)

	if err != nil && !notFound {
		return fmt.Errorf("lookup for existing status record failed: %w", err)
	}
	if !notFound && record.Eliminated && record.EliminatedWeek == week {
		// Already corrected, keep the correction idempotent
		return nil
	}

	reason := fmt.Sprintf("%s lost in week %d", team, week)
	log.Printf("marking participant %s eliminated in week %d (%s)", participantID, week, correction.Note)

	if notFound {
		newRecord := StatusRecord{
			Pool:              s.Pool,
			ParticipantID:     participantID,
			Eliminated:        true,
			EliminatedWeek:    week,
			EliminationReason: reason,
			CorrectionID:      correction.ID,
			CorrectedBy:       correction.Actor,
			CorrectedAt:       correction.At,
			CorrectionNote:    correction.Note,
		}
		_, err := s.Collections.SurvivorStatus.InsertOne(context.TODO(), newRecord)
		if err != nil {
			return fmt.Errorf("failed to insert new status record: %w", err)
		}
		return nil
	}

	filter := bson.M{"participantid": participantID, "pool": s.Pool}
	update := bson.M{
		"$set": bson.M{
			"eliminated":         true,
			"eliminated_week":    week,
			"elimination_reason": reason,
			"correction_id":      correction.ID,
			"corrected_by":       correction.Actor,
			"corrected_at":       correction.At,
			"correction_note":    correction.Note,
		},
	}

	_, err = s.Collections.SurvivorStatus.UpdateOne(context.TODO(), filter, update)
	if err != nil {
		return fmt.Errorf("failed to update status record: %w", err)
	}
	return nil
}
