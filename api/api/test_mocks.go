/* test_mocks.go
 * Contains a mock store implementation for api package tests
 * Authors: Zachary Bower
 */

package api

import (
	"context"
	"strconv"

	"go.mongodb.org/mongo-driver/mongo"

	"survivor-pool/api/store"
)

// MockStore implements store.Interface with in-memory data for testing
type MockStore struct {
	Pool          string
	Roster        []store.ParticipantDoc
	PickSheets    map[string]store.PickSheet
	StatusRecords map[string]store.StatusRecord
	WeekGames     map[int]map[string]interface{}

	// Per call errors for failure path tests
	RosterErr  error
	PickErrs   map[string]error
	StatusErrs map[string]error
	WeeksErr   error

	// Write records for assertions
	StoredPicks []store.PickSheet
	Cleared     []string
	Marked      []string
}

// NewMockStore creates an empty MockStore
func NewMockStore() *MockStore {
	return &MockStore{
		Pool:          "test_pool_2025",
		PickSheets:    make(map[string]store.PickSheet),
		StatusRecords: make(map[string]store.StatusRecord),
		WeekGames:     make(map[int]map[string]interface{}),
		PickErrs:      make(map[string]error),
		StatusErrs:    make(map[string]error),
	}
}

func (m *MockStore) FetchRoster() ([]store.ParticipantDoc, error) {
	if m.RosterErr != nil {
		return nil, m.RosterErr
	}
	return m.Roster, nil
}

func (m *MockStore) FetchPickSheet(participantID string) (store.PickSheet, error) {
	if err, ok := m.PickErrs[participantID]; ok {
		return store.PickSheet{}, err
	}
	sheet, ok := m.PickSheets[participantID]
	if !ok {
		return store.PickSheet{}, mongo.ErrNoDocuments
	}
	return sheet, nil
}

func (m *MockStore) FetchAllPickSheets() ([]store.PickSheet, error) {
	var sheets []store.PickSheet
	for _, sheet := range m.PickSheets {
		sheets = append(sheets, sheet)
	}
	return sheets, nil
}

func (m *MockStore) StoreWeeklyPick(participantID string, username string, week int, team string) error {
	sheet, ok := m.PickSheets[participantID]
	if !ok {
		sheet = store.PickSheet{
			Pool:          m.Pool,
			ParticipantID: participantID,
			Username:      username,
			Picks:         make(map[string]string),
		}
	}
	sheet.Picks[strconv.Itoa(week)] = team
	m.PickSheets[participantID] = sheet
	m.StoredPicks = append(m.StoredPicks, sheet)
	return nil
}

func (m *MockStore) FetchWeekGames(week int) (map[string]interface{}, error) {
	if m.WeeksErr != nil {
		return nil, m.WeeksErr
	}
	games, ok := m.WeekGames[week]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return games, nil
}

func (m *MockStore) FetchAllWeekGames() (map[int]map[string]interface{}, error) {
	if m.WeeksErr != nil {
		return nil, m.WeeksErr
	}
	return m.WeekGames, nil
}

func (m *MockStore) FetchStatusRecord(participantID string) (store.StatusRecord, error) {
	if err, ok := m.StatusErrs[participantID]; ok {
		return store.StatusRecord{}, err
	}
	record, ok := m.StatusRecords[participantID]
	if !ok {
		return store.StatusRecord{}, mongo.ErrNoDocuments
	}
	return record, nil
}

func (m *MockStore) ClearElimination(participantID string, correction store.Correction) error {
	record, ok := m.StatusRecords[participantID]
	if !ok || !record.Eliminated {
		return nil
	}
	record.Eliminated = false
	record.EliminatedWeek = 0
	record.EliminationReason = ""
	record.CorrectionID = correction.ID
	record.CorrectedBy = correction.Actor
	record.CorrectedAt = correction.At
	record.CorrectionNote = correction.Note
	m.StatusRecords[participantID] = record
	m.Cleared = append(m.Cleared, participantID)
	return nil
}

func (m *MockStore) MarkEliminated(participantID string, week int, team string, correction store.Correction) error {
	record := m.StatusRecords[participantID]
	if record.Eliminated && record.EliminatedWeek == week {
		return nil
	}
	record.Pool = m.Pool
	record.ParticipantID = participantID
	record.Eliminated = true
	record.EliminatedWeek = week
	record.EliminationReason = team + " lost in week " + strconv.Itoa(week)
	record.CorrectionID = correction.ID
	record.CorrectedBy = correction.Actor
	record.CorrectedAt = correction.At
	record.CorrectionNote = correction.Note
	m.StatusRecords[participantID] = record
	m.Marked = append(m.Marked, participantID)
	return nil
}

// GetDatabase returns a stub database handle
func (m *MockStore) GetDatabase() interface{ Name() string } {
	return mockDatabase{}
}

// GetPool returns the pool identifier
func (m *MockStore) GetPool() string {
	return m.Pool
}

// GetClient returns a stub client handle
func (m *MockStore) GetClient() interface{ Disconnect(context.Context) error } {
	return mockClient{}
}

// Ensure MockStore implements store.Interface
var _ store.Interface = (*MockStore)(nil)

type mockDatabase struct{}

func (mockDatabase) Name() string { return "test_survivor" }

type mockClient struct{}

func (mockClient) Disconnect(context.Context) error { return nil }
