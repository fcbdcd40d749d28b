package models

import "time"

// RideKind distinguishes drivers offering seats from passengers looking for one.
type RideKind string

const (
	RideOffer   RideKind = "offer"
	RideRequest RideKind = "request"
)

func (k RideKind) Valid() bool {
	return k == RideOffer || k == RideRequest
}

// Ride mirrors one row of the rides table.
type Ride struct {
	ID                string   `json:"id"`
	OwnerID           string   `json:"ownerId"`
	Kind              RideKind `json:"type"`
	PosterName        string   `json:"driverName"`
	Origin            string   `json:"origin"`
	Destination       string   `json:"destination"`
	Time              string   `json:"time"`
	SeatCount         int      `json:"seats"`
	Phone             string   `json:"phone"`
	Date              string   `json:"date"`
	IsRecurring       bool     `json:"isRecurring,omitempty"`
	RecurringWeekdays []int    `json:"recurringDays,omitempty"`
	Notes             string   `json:"notes,omitempty"`
	CreatedAt         string   `json:"createdAt,omitempty"`
}

// OccursOn reports whether the ride applies to the given calendar date.
// date is YYYY-MM-DD; an unparseable date never matches a weekday set.
func (r Ride) OccursOn(date string) bool {
	if r.IsRecurring && len(r.RecurringWeekdays) > 0 {
		wd, ok := weekdayOf(date)
		if !ok {
			return false
		}
		for _, d := range r.RecurringWeekdays {
			if d == wd {
				return true
			}
		}
		return false
	}
	return r.Date == date
}

// weekdayOf returns 0 (Sunday) .. 6 (Saturday) for a YYYY-MM-DD string.
func weekdayOf(date string) (int, bool) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return -1, false
	}
	return int(t.Weekday()), true
}
