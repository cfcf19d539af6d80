/* roster.go
 * Contains the methods for interacting with the roster collection
 * Authors: Zachary Bower
 */

package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// FetchRoster does a DB lookup and gets every roster entry for the pool,
// enrolled or not. Callers filter on the Enrolled flag
// Preconditions: Receives receiver pointer for Store which holds the pool identifier
// Postconditions: Returns a slice of ParticipantDoc, or an error if it occurs. An
// empty roster is a configuration error, the pool cannot run without one
func (s *Store) FetchRoster() ([]ParticipantDoc, error) {
	filter := bson.D{{Key: "pool", Value: s.Pool}}

	cursor, err := s.Collections.Roster.Find(context.TODO(), filter)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}
		return nil, fmt.Errorf("error fetching roster from db: %w", err)
	}

	var roster []ParticipantDoc
	if err = cursor.All(context.TODO(), &roster); err != nil {
		return nil, fmt.Errorf("error unpacking cursor into slice of roster entries: %w", err)
	}

	if len(roster) == 0 {
		return nil, fmt.Errorf("no roster found for pool %s", s.Pool)
	}
	return roster, nil
}
