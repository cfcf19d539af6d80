/* store_interface.go
 * Contains the Store interface for dependency injection and testing
 * Authors: Zachary Bower
 */

package store

import (
	"context"
)

// Interface defines the methods that Store implements.
// This allows for mocking in tests.
type Interface interface {
	FetchRoster() ([]ParticipantDoc, error)
	FetchPickSheet(participantID string) (PickSheet, error)
	FetchAllPickSheets() ([]PickSheet, error)
	StoreWeeklyPick(participantID string, username string, week int, team string) error
	FetchWeekGames(week int) (map[string]interface{}, error)
	FetchAllWeekGames() (map[int]map[string]interface{}, error)
	FetchStatusRecord(participantID string) (StatusRecord, error)
	ClearElimination(participantID string, correction Correction) error
	MarkEliminated(participantID string, week int, team string, correction Correction) error

	// Getter methods for accessing fields
	GetDatabase() interface{ Name() string }
	GetPool() string
	GetClient() interface{ Disconnect(context.Context) error }
}

// Ensure Store implements Interface
var _ Interface = (*Store)(nil)

// GetDatabase returns the database instance
func (s *Store) GetDatabase() interface{ Name() string } {
	return s.Database
}

// GetPool returns the pool identifier
func (s *Store) GetPool() string {
	return s.Pool
}

// GetClient returns the MongoDB client
func (s *Store) GetClient() interface{ Disconnect(context.Context) error } {
	return s.Client
}
