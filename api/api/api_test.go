/* api_test.go
 * Contains test cases for the snapshot and pick entry methods in api.go
 * Authors: Zachary Bower
 */

package api

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"survivor-pool/api/calendar"
	"survivor-pool/api/shared"
	"survivor-pool/api/store"
)

// testNow falls inside week 3 of the three week test calendar
var testNow = time.Date(2025, time.September, 17, 12, 0, 0, 0, time.UTC)

func newTestAPI(t *testing.T, m *MockStore) *API {
	starts := []time.Time{
		time.Date(2025, time.September, 2, 8, 0, 0, 0, time.UTC),
		time.Date(2025, time.September, 9, 8, 0, 0, 0, time.UTC),
		time.Date(2025, time.September, 16, 8, 0, 0, 0, time.UTC),
	}
	cal, err := calendar.New(starts)
	require.NoError(t, err)

	return &API{
		Store:    m,
		Cache:    NewPoolCache(DefaultCacheTTL, DefaultRefreshBudget),
		Calendar: cal,
		Now:      func() time.Time { return testNow },
	}
}

func finalGame(home string, away string, winner string) map[string]interface{} {
	return map[string]interface{}{
		"home":   home,
		"away":   away,
		"status": "final",
		"winner": winner,
	}
}

func liveGame(home string, away string) map[string]interface{} {
	return map[string]interface{}{
		"home":   home,
		"away":   away,
		"status": "in_progress",
	}
}

func rosterDoc(id string, name string, enrolled bool) store.ParticipantDoc {
	return store.ParticipantDoc{
		Pool:          "test_pool_2025",
		ParticipantID: id,
		DisplayName:   name,
		Enrolled:      enrolled,
	}
}

func pickSheet(id string, name string, picks map[string]string) store.PickSheet {
	return store.PickSheet{
		Pool:          "test_pool_2025",
		ParticipantID: id,
		Username:      name,
		Picks:         picks,
	}
}

// twoWeekResults seeds two final weeks: Lions and Packers won, Bears and
// Vikings lost
func twoWeekResults(m *MockStore) {
	m.WeekGames[1] = map[string]interface{}{
		"g1": finalGame("Lions", "Bears", "Lions"),
	}
	m.WeekGames[2] = map[string]interface{}{
		"g1": finalGame("Packers", "Vikings", "Packers"),
	}
}

func TestCurrentWeek(t *testing.T) {
	a := newTestAPI(t, NewMockStore())
	assert.Equal(t, 3, a.CurrentWeek())
}

func TestGetPoolSnapshotPartitions(t *testing.T) {
	m := NewMockStore()
	twoWeekResults(m)
	m.Roster = []store.ParticipantDoc{
		rosterDoc("alice", "Alice", true),
		rosterDoc("bob", "Bob", true),
		rosterDoc("carol", "Carol", true),
	}
	m.PickSheets["alice"] = pickSheet("alice", "Alice", map[string]string{"1": "Lions", "2": "Packers"})
	m.PickSheets["bob"] = pickSheet("bob", "Bob", map[string]string{"1": "Bears"})
	m.PickSheets["carol"] = pickSheet("carol", "Carol", map[string]string{"2": "Packers"})

	a := newTestAPI(t, m)
	snapshot, err := a.GetPoolSnapshot()
	require.NoError(t, err)

	require.Len(t, snapshot.Alive, 1)
	assert.Equal(t, "alice", snapshot.Alive[0].ID)
	assert.Len(t, snapshot.Alive[0].WinningPicks, 2)

	require.Len(t, snapshot.Eliminated, 1)
	assert.Equal(t, "bob", snapshot.Eliminated[0].ID)
	assert.Equal(t, 1, snapshot.Eliminated[0].EliminatedWeek)
	assert.Equal(t, "Bears", snapshot.Eliminated[0].EliminatedBy)

	// No week 1 pick means carol never entered the pool
	require.Len(t, snapshot.NotParticipating, 1)
	assert.Equal(t, "carol", snapshot.NotParticipating[0].ID)

	assert.Equal(t, Summary{Alive: 1, Eliminated: 1, NotParticipating: 1}, snapshot.Summary)
	assert.Equal(t, "test_pool_2025", snapshot.Pool)
	assert.Equal(t, 3, snapshot.CurrentWeek)
	assert.Equal(t, testNow, snapshot.GeneratedAt)
}

func TestGetPoolSnapshotServedFromCache(t *testing.T) {
	m := NewMockStore()
	twoWeekResults(m)
	m.Roster = []store.ParticipantDoc{rosterDoc("alice", "Alice", true)}
	m.PickSheets["alice"] = pickSheet("alice", "Alice", map[string]string{"1": "Lions"})

	a := newTestAPI(t, m)
	first, err := a.GetPoolSnapshot()
	require.NoError(t, err)

	// Roster changes must not surface while the cached entry is fresh
	m.Roster = append(m.Roster, rosterDoc("bob", "Bob", true))
	m.PickSheets["bob"] = pickSheet("bob", "Bob", map[string]string{"1": "Bears"})

	second, err := a.GetPoolSnapshot()
	require.NoError(t, err)
	assert.Equal(t, first.GeneratedAt, second.GeneratedAt)
	assert.Len(t, second.Alive, 1)

	// Invalidation forces a recompute on the next read
	a.Cache.Invalidate()
	third, err := a.GetPoolSnapshot()
	require.NoError(t, err)
	assert.Len(t, third.Eliminated, 1)
}

func TestGetPoolSnapshotSkipsUnenrolled(t *testing.T) {
	m := NewMockStore()
	twoWeekResults(m)
	m.Roster = []store.ParticipantDoc{
		rosterDoc("alice", "Alice", true),
		rosterDoc("dave", "Dave", false),
	}
	m.PickSheets["alice"] = pickSheet("alice", "Alice", map[string]string{"1": "Lions"})
	m.PickSheets["dave"] = pickSheet("dave", "Dave", map[string]string{"1": "Bears"})

	a := newTestAPI(t, m)
	snapshot, err := a.GetPoolSnapshot()
	require.NoError(t, err)

	assert.Len(t, snapshot.Alive, 1)
	assert.Empty(t, snapshot.Eliminated)
}

func TestGetPoolSnapshotOmitsParticipantsWithoutPicks(t *testing.T) {
	m := NewMockStore()
	twoWeekResults(m)
	m.Roster = []store.ParticipantDoc{
		rosterDoc("alice", "Alice", true),
		rosterDoc("ghost", "Ghost", true),
	}
	m.PickSheets["alice"] = pickSheet("alice", "Alice", map[string]string{"1": "Lions"})

	a := newTestAPI(t, m)
	snapshot, err := a.GetPoolSnapshot()
	require.NoError(t, err)

	assert.Len(t, snapshot.Alive, 1)
	assert.Empty(t, snapshot.NotParticipating)
	assert.Zero(t, snapshot.Summary.NotParticipating)
}

func TestGetPoolSnapshotCollectsParticipantErrors(t *testing.T) {
	m := NewMockStore()
	twoWeekResults(m)
	m.Roster = []store.ParticipantDoc{
		rosterDoc("alice", "Alice", true),
		rosterDoc("broken", "Broken", true),
	}
	m.PickSheets["alice"] = pickSheet("alice", "Alice", map[string]string{"1": "Lions"})
	m.PickErrs["broken"] = fmt.Errorf("connection reset")

	a := newTestAPI(t, m)
	snapshot, err := a.GetPoolSnapshot()
	require.NoError(t, err)

	assert.Len(t, snapshot.Alive, 1)
	require.Len(t, snapshot.Errors, 1)
	assert.Equal(t, "broken", snapshot.Errors[0].ID)
	assert.Contains(t, snapshot.Errors[0].Error, "connection reset")
	assert.Equal(t, 1, snapshot.Summary.Errors)
}

func TestGetPoolSnapshotFlagsStatusDisagreement(t *testing.T) {
	inactive := false
	active := true

	m := NewMockStore()
	twoWeekResults(m)
	alice := rosterDoc("alice", "Alice", true)
	alice.Active = &inactive
	bob := rosterDoc("bob", "Bob", true)
	bob.Active = &active
	m.Roster = []store.ParticipantDoc{alice, bob}
	m.PickSheets["alice"] = pickSheet("alice", "Alice", map[string]string{"1": "Lions"})
	m.PickSheets["bob"] = pickSheet("bob", "Bob", map[string]string{"1": "Bears"})

	a := newTestAPI(t, m)
	snapshot, err := a.GetPoolSnapshot()
	require.NoError(t, err)

	require.Len(t, snapshot.Alive, 1)
	assert.True(t, snapshot.Alive[0].ShouldUpdateStatus)
	assert.Contains(t, snapshot.Alive[0].StatusReason, "participation flag is inactive")

	require.Len(t, snapshot.Eliminated, 1)
	assert.True(t, snapshot.Eliminated[0].ShouldUpdateStatus)
	assert.Contains(t, snapshot.Eliminated[0].StatusReason, "participation flag is active")
}

func TestCheckParticipantAlive(t *testing.T) {
	m := NewMockStore()
	twoWeekResults(m)
	m.PickSheets["alice"] = pickSheet("alice", "Alice", map[string]string{"1": "Lions", "2": "Packers"})

	a := newTestAPI(t, m)
	report, err := a.CheckParticipant(shared.User{UserID: "alice", Username: "Alice"})
	require.NoError(t, err)

	assert.Contains(t, report, "Alice is still alive")
	assert.Contains(t, report, "- Week 1: Lions [Won]")
	assert.Contains(t, report, "- Week 2: Packers [Won]")
}

func TestCheckParticipantEliminated(t *testing.T) {
	m := NewMockStore()
	twoWeekResults(m)
	m.PickSheets["bob"] = pickSheet("bob", "Bob", map[string]string{"1": "Bears"})

	a := newTestAPI(t, m)
	report, err := a.CheckParticipant(shared.User{UserID: "bob", Username: "Bob"})
	require.NoError(t, err)

	assert.Contains(t, report, "Bob was eliminated in week 1 by Bears")
}

func TestCheckParticipantNotEntered(t *testing.T) {
	m := NewMockStore()
	twoWeekResults(m)
	m.PickSheets["carol"] = pickSheet("carol", "Carol", map[string]string{"2": "Packers"})

	a := newTestAPI(t, m)
	report, err := a.CheckParticipant(shared.User{UserID: "carol", Username: "Carol"})
	require.NoError(t, err)

	assert.Contains(t, report, "a week 1 pick is required to enter")
}

func TestSetWeeklyPick(t *testing.T) {
	m := NewMockStore()
	m.WeekGames[3] = map[string]interface{}{
		"g1": liveGame("Detroit Lions", "Chicago Bears"),
		"g2": liveGame("Green Bay Packers", "Minnesota Vikings"),
	}

	a := newTestAPI(t, m)
	response, err := a.SetWeeklyPick(shared.User{UserID: "alice", Username: "Alice"}, "lions")
	require.NoError(t, err)

	assert.Equal(t, "Alice's week 3 pick is Detroit Lions", response)
	require.Len(t, m.StoredPicks, 1)
	assert.Equal(t, "Detroit Lions", m.StoredPicks[0].Picks["3"])
}

func TestSetWeeklyPickUnknownTeam(t *testing.T) {
	m := NewMockStore()
	m.WeekGames[3] = map[string]interface{}{
		"g1": liveGame("Detroit Lions", "Chicago Bears"),
	}

	a := newTestAPI(t, m)
	_, err := a.SetWeeklyPick(shared.User{UserID: "alice", Username: "Alice"}, "Jets")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not match any team playing in week 3")
	assert.Empty(t, m.StoredPicks)
}

func TestSetWeeklyPickNoGamesScheduled(t *testing.T) {
	a := newTestAPI(t, NewMockStore())
	_, err := a.SetWeeklyPick(shared.User{UserID: "alice", Username: "Alice"}, "Lions")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no games scheduled for week 3 yet")
}

func TestGetWeekTeams(t *testing.T) {
	m := NewMockStore()
	m.WeekGames[3] = map[string]interface{}{
		"g1": liveGame("Detroit Lions", "Chicago Bears"),
		"g2": liveGame("Green Bay Packers", "Minnesota Vikings"),
	}

	a := newTestAPI(t, m)
	teams, err := a.GetWeekTeams()
	require.NoError(t, err)
	assert.Equal(t, []string{"Chicago Bears", "Detroit Lions", "Green Bay Packers", "Minnesota Vikings"}, teams)
}
