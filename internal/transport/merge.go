// Package transport merges community rides and the fixed bus timetable into
// a single time-ordered board.
package transport

import (
	"fmt"
	"sort"
	"strings"

	"ridesboard/internal/domain"
	"ridesboard/internal/domain/models"
)

// Merge returns the rides and bus departures that pass the filter, ordered by
// departure time. Rides precede bus departures at equal times and each group
// keeps its input order. Inputs are never modified or retained.
func Merge(rides []models.Ride, lines []models.BusLine, f models.FeedFilter) []models.FeedItem {
	out := make([]models.FeedItem, 0, len(rides))

	for i := range rides {
		r := rides[i]
		if !MatchesDestination(f.Destination, r.Origin, r.Destination) {
			continue
		}
		if !r.OccursOn(f.Date) || !f.Window.Contains(r.Time) {
			continue
		}
		// copy so callers holding the feed cannot reach back into the snapshot
		ride := r
		ride.RecurringWeekdays = append([]int(nil), r.RecurringWeekdays...)
		out = append(out, models.FeedItem{
			ID:      ride.ID,
			Kind:    models.FeedRide,
			Ride:    &ride,
			SortKey: ride.Time,
		})
	}

	for li, line := range lines {
		if !MatchesDestination(f.Destination, line.Origin, line.Destination) {
			continue
		}
		var snapshot *models.BusLine
		for di, dep := range line.DepartureTimes {
			if !f.Window.Contains(dep) {
				continue
			}
			if snapshot == nil {
				l := line
				l.DepartureTimes = append([]string(nil), line.DepartureTimes...)
				snapshot = &l
			}
			out = append(out, models.FeedItem{
				ID:      BusDepartureID(line.LineID, li, di, dep),
				Kind:    models.FeedBus,
				Bus:     &models.BusDeparture{Line: *snapshot, DepartureTime: dep},
				SortKey: dep,
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].SortKey < out[j].SortKey })
	return out
}

// MatchesDestination applies the board's destination rule: the sentinel
// matches everything, any other value is a substring search over the fields.
func MatchesDestination(filter string, fields ...string) bool {
	if filter == domain.AllDestinations {
		return true
	}
	for _, f := range fields {
		if strings.Contains(f, filter) {
			return true
		}
	}
	return false
}

// BusDepartureID identifies one departure of one configured line. Line ids
// repeat across directions, so the line and departure positions are part of
// the key.
func BusDepartureID(lineID string, lineIdx, depIdx int, departure string) string {
	return fmt.Sprintf("bus-%s-%d-%d-%s", lineID, lineIdx, depIdx, departure)
}
