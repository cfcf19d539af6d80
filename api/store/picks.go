/* picks.go
 * Contains the methods for interacting with the weekly_picks collection
 * Authors: Zachary Bower
 */

package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FetchPickSheet does a DB lookup and gets the pick sheet for one participant
// Preconditions: Receives string containing the participant id
// Postconditions: Returns the participant's PickSheet if it exists, or an error if
// it occurs. mongo.ErrNoDocuments passes through so callers can treat a missing
// sheet as "never entered the pool"
func (s *Store) FetchPickSheet(participantID string) (PickSheet, error) {
	opts := options.FindOne()

	var sheet PickSheet
	err := s.Collections.WeeklyPicks.FindOne(context.TODO(), bson.M{"participantid": participantID, "pool": s.Pool}, opts).Decode(&sheet)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return PickSheet{}, err
		}
		return PickSheet{}, fmt.Errorf("error fetching pick sheet from db: %w", err)
	}

	return sheet, nil
}

// FetchAllPickSheets does a DB lookup and gets the pick sheets for every
// participant with picks stored for the pool. Used in snapshot computation
// Preconditions: Receives receiver pointer for Store which holds the pool identifier
// Postconditions: Returns a slice of PickSheet, or an error if it occurs
func (s *Store) FetchAllPickSheets() ([]PickSheet, error) {
	filter := bson.D{{Key: "pool", Value: s.Pool}}

	cursor, err := s.Collections.WeeklyPicks.Find(context.TODO(), filter)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}
		return nil, fmt.Errorf("error fetching pick sheets from db: %w", err)
	}

	var sheets []PickSheet
	if err = cursor.All(context.TODO(), &sheets); err != nil {
		return nil, fmt.Errorf("error unpacking cursor into slice of pick sheets: %w", err)
	}

	return sheets, nil
}

// StoreWeeklyPick stores or replaces one participant's pick for one week
// Preconditions: Receives the participant id and username, the week number and the
// canonical team name. Team validation happens in the api layer before this call
// Postconditions: Creates the participant's pick sheet if needed and sets the week
// entry, or returns an error if the operation was unsuccessful
func (s *Store) StoreWeeklyPick(participantID string, username string, week int, team string) error {
	// Attempt to find an existing document
	var sheet PickSheet
	err := s.Collections.WeeklyPicks.FindOne(context.TODO(), bson.M{"participantid": participantID, "pool": s.Pool}).Decode(&sheet)
	notFound := errors.Is(err, mongo.ErrNoDocuments)

	if err != nil && !notFound {
		return fmt.Errorf("lookup for existing pick sheet failed: %w", err)
	}

	weekKey := strconv.Itoa(week)

	// The participant has no pick sheet yet so we create a new document
	if notFound {
		newSheet := PickSheet{
			Pool:          s.Pool,
			ParticipantID: participantID,
			Username:      username,
			Picks:         map[string]string{weekKey: team},
		}
		_, err := s.Collections.WeeklyPicks.InsertOne(context.TODO(), newSheet)
		if err != nil {
			return fmt.Errorf("failed to insert new pick sheet: %w", err)
		}
		return nil
	}

	// Else set this week's entry on the existing sheet
	filter := bson.M{"participantid": participantID, "pool": s.Pool}
	update := bson.M{
		"$set": bson.M{
			"username":          username,
			"picks." + weekKey: team,
		},
	}

	_, err = s.Collections.WeeklyPicks.UpdateOne(context.TODO(), filter, update)
	if err != nil {
		return fmt.Errorf("failed to update existing pick sheet: %w", err)
	}
	return nil
}
