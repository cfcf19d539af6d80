/* store.go
 * Contains the Store struct and NewStore function. The methods for this package are
 * split into four files: roster, picks, week_results and survivor_status. Each of
 * these files contains the methods for interacting with that collection
 * Authors: Zachary Bower
 */

package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	Client      *mongo.Client
	Database    *mongo.Database
	Pool        string
	Collections struct {
		Roster         *mongo.Collection
		WeeklyPicks    *mongo.Collection
		WeekResults    *mongo.Collection
		SurvivorStatus *mongo.Collection
	}
}

// NewStore initialises the Store and the db connection
// Preconditions: Receives strings containing dbName, mongoURI and the pool identifier
// Postconditions: Returns a pointer to the Store object with collection values set, or an error if it occurs
func NewStore(dbName string, mongoURI string, pool string) (*Store, error) {
	client, err := mongo.Connect(context.TODO(), options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, err
	}
	db := client.Database(dbName)

	if pool == "" {
		return nil, fmt.Errorf("pool cannot be empty")
	}

	s := &Store{
		Client:   client,
		Database: db,
		Pool:     pool,
	}
	s.Collections.Roster = db.Collection("roster")
	s.Collections.WeeklyPicks = db.Collection("weekly_picks")
	s.Collections.WeekResults = db.Collection("week_results")
	s.Collections.SurvivorStatus = db.Collection("survivor_status")

	return s, nil
}
