/* week_results.go
 * Contains the methods for interacting with the week_results collection. The
 * collection is read only for this engine, the external results feed owns it
 * Authors: Zachary Bower
 */

package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FetchWeekGames does a DB lookup and gets the raw per-game records for one week
// Preconditions: Receives the week number
// Postconditions: Returns the raw games map keyed by game id, or an error if it
// occurs. mongo.ErrNoDocuments passes through so callers can treat a missing week
// as "no results yet" rather than a failure
func (s *Store) FetchWeekGames(week int) (map[string]interface{}, error) {
	opts := options.FindOne()

	var doc WeekResultsDoc
	err := s.Collections.WeekResults.FindOne(context.TODO(), bson.M{"pool": s.Pool, "week": week}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}
		return nil, fmt.Errorf("error fetching week %d results from db: %w", week, err)
	}

	return doc.Games, nil
}

// FetchAllWeekGames does a DB lookup and gets the raw game records for every week
// that has a results document. Weeks without a document are simply absent from the
// returned map, they are not zero filled
// Preconditions: Receives receiver pointer for Store which holds the pool identifier
// Postconditions: Returns raw games keyed by week number, or an error if it occurs
func (s *Store) FetchAllWeekGames() (map[int]map[string]interface{}, error) {
	filter := bson.D{{Key: "pool", Value: s.Pool}}

	cursor, err := s.Collections.WeekResults.Find(context.TODO(), filter)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}
		return nil, fmt.Errorf("error fetching week results from db: %w", err)
	}

	var docs []WeekResultsDoc
	if err = cursor.All(context.TODO(), &docs); err != nil {
		return nil, fmt.Errorf("error unpacking cursor into slice of week results: %w", err)
	}

	weeks := make(map[int]map[string]interface{}, len(docs))
	for _, doc := range docs {
		if doc.Week < 1 {
			continue
		}
		weeks[doc.Week] = doc.Games
	}
	return weeks, nil
}
