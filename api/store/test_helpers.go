/* test_helpers.go
 * Contains test helper functions and sample data for store package tests
 * Authors: Zachary Bower
 */

package store

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NewMockStore creates a Store instance for testing purposes.
// This can be used with a real test database or in-memory MongoDB.
func NewMockStore(dbName string, mongoURI string) (*Store, error) {
	return NewStore(dbName, mongoURI, "test_pool_2025")
}

// CreateTestStore creates a Store connected to a test database.
// Returns the store and a cleanup function.
func CreateTestStore(mongoURI string) (*Store, func(), error) {
	store, err := NewMockStore("test_survivor", mongoURI)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		if store.Client != nil {
			// Drop test database
			store.Database.Drop(context.TODO())
			// Disconnect client
			store.Client.Disconnect(context.TODO())
		}
	}

	return store, cleanup, nil
}

// CreateTestClient creates a test MongoDB client.
func CreateTestClient(mongoURI string) (*mongo.Client, error) {
	client, err := mongo.Connect(context.TODO(), options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, err
	}
	return client, nil
}

// CreateSampleRoster creates sample roster documents for testing.
func CreateSampleRoster(pool string) []ParticipantDoc {
	active := true
	inactive := false
	return []ParticipantDoc{
		{
			Pool:          pool,
			ParticipantID: "user1",
			DisplayName:   "Alice",
			Email:         "alice@example.com",
			Enrolled:      true,
			Active:        &active,
		},
		{
			Pool:          pool,
			ParticipantID: "user2",
			DisplayName:   "Bob",
			Enrolled:      true,
			Active:        &inactive,
		},
		{
			Pool:          pool,
			ParticipantID: "user3",
			Enrolled:      false,
		},
	}
}

// CreateSamplePickSheet creates a sample PickSheet for testing.
func CreateSamplePickSheet(pool, participantID string) PickSheet {
	return PickSheet{
		Pool:          pool,
		ParticipantID: participantID,
		Username:      "testuser",
		Picks: map[string]string{
			"1": "Eagles",
			"2": "Chiefs",
		},
	}
}
