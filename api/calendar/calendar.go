/* calendar.go
 * Contains the week calendar resolver that maps a wall clock time to a season week
 * number. The season table is static configuration, there is no I/O in this package
 * Authors: Zachary Bower
 */

package calendar

import (
	"fmt"
	"time"
)

// NumWeeks is the number of weeks in a regular season
const NumWeeks = 18

// Calendar holds an ordered table of week start times. Week n covers the interval
// [starts[n-1], starts[n]), the final week extends to the end of the season
type Calendar struct {
	starts []time.Time
}

// New builds a Calendar from an ordered slice of week start times
// Preconditions: Receives a slice with one start time per week, sorted ascending
// Postconditions: Returns a pointer to the Calendar, or an error if the table is empty or out of order
func New(starts []time.Time) (*Calendar, error) {
	if len(starts) == 0 {
		return nil, fmt.Errorf("week calendar requires at least one start date")
	}
	for i := 1; i < len(starts); i++ {
		if !starts[i].After(starts[i-1]) {
			return nil, fmt.Errorf("week calendar start dates must be strictly ascending, week %d is not after week %d", i+1, i)
		}
	}
	return &Calendar{starts: starts}, nil
}

// Default returns the calendar for the 2025 season. Weeks flip on Tuesdays at
// 08:00 UTC, two days after the last Sunday games so Monday night results are in
// Preconditions: None
// Postconditions: Returns a pointer to a Calendar with NumWeeks weeks
func Default() *Calendar {
	first := time.Date(2025, time.September, 2, 8, 0, 0, 0, time.UTC)
	starts := make([]time.Time, NumWeeks)
	for i := range starts {
		starts[i] = first.AddDate(0, 0, 7*i)
	}
	cal, _ := New(starts)
	return cal
}

// ResolveWeek maps a wall clock time to the season week number
// Preconditions: Receives the time to resolve
// Postconditions: Returns week 1 before the season starts, the final week after the
// last start date, else the week whose interval contains the input time
func (c *Calendar) ResolveWeek(now time.Time) int {
	if now.Before(c.starts[0]) {
		return 1
	}
	for i := len(c.starts) - 1; i >= 0; i-- {
		if !now.Before(c.starts[i]) {
			return i + 1
		}
	}
	return 1
}

// WeekStart returns the start time for a week number
// Preconditions: Receives a week number between 1 and the table length
// Postconditions: Returns the start time, or an error for an out of range week
func (c *Calendar) WeekStart(week int) (time.Time, error) {
	if week < 1 || week > len(c.starts) {
		return time.Time{}, fmt.Errorf("week %d is outside the season calendar", week)
	}
	return c.starts[week-1], nil
}
