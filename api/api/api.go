/* api.go
 * This file contains the public methods for interacting with this package. For
 * consistent results, functions should only be called from this file and audit.go,
 * not the logic or store sub packages directly
 * Authors: Zachary Bower
 */

package api

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"survivor-pool/api/calendar"
	"survivor-pool/api/logic"
	"survivor-pool/api/shared"
	"survivor-pool/api/store"
)

// API provides methods for interacting with the survivor pool data layer
type API struct {
	Store    store.Interface
	Cache    *PoolCache
	Calendar *calendar.Calendar
	Now      func() time.Time
}

// NewAPI creates a new API instance with the provided configuration
func NewAPI(dbName string, mongoURI string, pool string, cacheTTL time.Duration) (*API, error) {
	if dbName == "" || pool == "" {
		return nil, fmt.Errorf("dbName and pool are required")
	}

	s, err := store.NewStore(dbName, mongoURI, pool)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}

	return &API{
		Store:    s,
		Cache:    NewPoolCache(cacheTTL, DefaultRefreshBudget),
		Calendar: calendar.Default(),
		Now:      time.Now,
	}, nil
}

// CurrentWeek resolves the season week number for the present moment
// Preconditions: Receives receiver pointer to api
// Postconditions: Returns the current week number from the injected calendar
func (a *API) CurrentWeek() int {
	return a.Calendar.ResolveWeek(a.Now())
}

// GetPoolSnapshot returns the whole pool survivor state, served from the cache
// when the entry is fresh enough and recomputed under a bounded budget otherwise
// Preconditions: Receives receiver pointer to api
// Postconditions: Returns a pool snapshot (possibly a stale one when recompute
// overran the budget), or an error naming the aggregation stage that failed
func (a *API) GetPoolSnapshot() (*PoolSnapshot, error) {
	if snapshot, ok := a.Cache.Cached(a.Now()); ok {
		return snapshot, nil
	}
	return a.Cache.Refresh(func() (*PoolSnapshot, error) {
		return a.computeSnapshot(a.Now())
	})
}

// loadResults fetches and aggregates every stored week of raw game records and
// resolves the evaluable week list
// Preconditions: Receives the time to resolve the current week against
// Postconditions: Returns aggregated results keyed by week, the current week and
// the evaluable weeks ascending, or an error if the results stage failed
func (a *API) loadResults(now time.Time) (map[int]shared.GameResult, int, []int, error) {
	rawWeeks, err := a.Store.FetchAllWeekGames()
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, 0, nil, fmt.Errorf("results aggregation stage failed: %w", err)
	}

	results := make(map[int]shared.GameResult, len(rawWeeks))
	for week, games := range rawWeeks {
		results[week] = logic.AggregateWeek(games)
	}

	currentWeek := a.Calendar.ResolveWeek(now)
	weeks := logic.AvailableWeeks(results, currentWeek)
	return results, currentWeek, weeks, nil
}

// computeSnapshot derives a fresh snapshot by running the elimination walk for
// every enrolled participant. A participant whose picks cannot be read becomes an
// error entry rather than aborting the snapshot
// Preconditions: Receives the time the snapshot is generated at
// Postconditions: Returns the assembled snapshot, or an error naming the failed stage
func (a *API) computeSnapshot(now time.Time) (*PoolSnapshot, error) {
	roster, err := a.Store.FetchRoster()
	if err != nil {
		return nil, fmt.Errorf("roster stage failed: %w", err)
	}

	results, currentWeek, weeks, err := a.loadResults(now)
	if err != nil {
		return nil, err
	}

	snapshot := &PoolSnapshot{
		Pool:        a.Store.GetPool(),
		CurrentWeek: currentWeek,
		GeneratedAt: now,
	}

	for _, doc := range roster {
		if !doc.Enrolled {
			continue
		}
		participant := doc.ToParticipant()

		sheet, err := a.Store.FetchPickSheet(participant.ID)
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Zero recorded picks, the participant never entered the pool and is
			// absent from every derived view
			continue
		}
		if err != nil {
			snapshot.Errors = append(snapshot.Errors, ParticipantState{
				ID:    participant.ID,
				Name:  participant.Name(),
				Error: err.Error(),
			})
			snapshot.Summary.Errors++
			continue
		}

		picks := sheet.ToWeeklyPicks()
		if len(picks) == 0 {
			continue
		}

		record := logic.ComputeSurvivorRecord(picks, results, weeks)
		state := ParticipantState{
			ID:             participant.ID,
			Name:           participant.Name(),
			Status:         record.Status,
			EliminatedWeek: record.EliminatedWeek,
			EliminatedBy:   record.EliminatedBy,
			WinningPicks:   record.WinningPicks,
		}
		flagStatusSuggestion(&state, participant, record)

		switch record.Status {
		case shared.StatusAlive:
			snapshot.Alive = append(snapshot.Alive, state)
			snapshot.Summary.Alive++
		case shared.StatusEliminated:
			snapshot.Eliminated = append(snapshot.Eliminated, state)
			snapshot.Summary.Eliminated++
		case shared.StatusNotParticipating:
			snapshot.NotParticipating = append(snapshot.NotParticipating, state)
			snapshot.Summary.NotParticipating++
		}
	}

	return snapshot, nil
}

// flagStatusSuggestion attaches an informational suggestion when the computed
// status disagrees with the externally tracked participation flag. The flag
// itself is never mutated here, that is an explicit admin or correction write
// Preconditions: Receives the snapshot entry, the roster participant and the computed record
// Postconditions: Sets ShouldUpdateStatus and StatusReason on disagreement
func flagStatusSuggestion(state *ParticipantState, participant shared.Participant, record shared.SurvivorRecord) {
	if participant.Active == nil {
		return
	}
	if record.Status == shared.StatusAlive && !*participant.Active {
		state.ShouldUpdateStatus = true
		state.StatusReason = "computed alive but participation flag is inactive"
	}
	if record.Status == shared.StatusEliminated && *participant.Active {
		state.ShouldUpdateStatus = true
		state.StatusReason = fmt.Sprintf("computed eliminated in week %d but participation flag is active", record.EliminatedWeek)
	}
}

// CheckParticipant contains the logic required to report one participant's state.
// It receives a user struct and receiver pointer to api.
// It returns a string containing the participant's survival status, or an error if it occurs.
func (a *API) CheckParticipant(user shared.User) (string, error) {
	sheet, err := a.Store.FetchPickSheet(user.UserID)
	if err != nil {
		return "", err
	}

	results, _, weeks, err := a.loadResults(a.Now())
	if err != nil {
		return "", err
	}

	record := logic.ComputeSurvivorRecord(sheet.ToWeeklyPicks(), results, weeks)

	var response strings.Builder
	switch record.Status {
	case shared.StatusNotParticipating:
		response.WriteString(fmt.Sprintf("%s is not in the pool this season, a week 1 pick is required to enter\n", user.Username))
	case shared.StatusEliminated:
		response.WriteString(fmt.Sprintf("%s was eliminated in week %d by %s\n", user.Username, record.EliminatedWeek, record.EliminatedBy))
	default:
		response.WriteString(fmt.Sprintf("%s is still alive\n", user.Username))
	}
	for _, pick := range record.WinningPicks {
		response.WriteString(fmt.Sprintf("- Week %d: %s [Won]\n", pick.Week, pick.Team))
	}
	return response.String(), nil
}

// SetWeeklyPick validates and stores the user's pick for the current week.
// It receives a user struct and the team name as entered.
// It returns a confirmation string, or an error if validation or the write fails.
func (a *API) SetWeeklyPick(user shared.User, teamInput string) (string, error) {
	currentWeek := a.CurrentWeek()

	rawGames, err := a.Store.FetchWeekGames(currentWeek)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", fmt.Errorf("no games scheduled for week %d yet", currentWeek)
		}
		return "", err
	}

	validTeams := logic.TeamsInWeek(rawGames)
	team, ok := logic.MatchTeamName(teamInput, validTeams)
	if !ok {
		return "", fmt.Errorf("'%s' does not match any team playing in week %d", teamInput, currentWeek)
	}

	if err := a.Store.StoreWeeklyPick(user.UserID, user.Username, currentWeek, team); err != nil {
		return "", err
	}

	return fmt.Sprintf("%s's week %d pick is %s", user.Username, currentWeek, team), nil
}

// GetWeekTeams lists the teams playing in the current week, used for pick entry
// Preconditions: Receives receiver pointer to api
// Postconditions: Returns the sorted team names, or an error if it occurs
func (a *API) GetWeekTeams() ([]string, error) {
	currentWeek := a.CurrentWeek()

	rawGames, err := a.Store.FetchWeekGames(currentWeek)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("no games scheduled for week %d yet", currentWeek)
		}
		return nil, err
	}

	return logic.TeamsInWeek(rawGames), nil
}
