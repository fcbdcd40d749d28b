package models

// TimeWindow is an inclusive "HH:mm" range. Start must not be after End.
type TimeWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Contains compares zero-padded "HH:mm" strings lexicographically.
func (w TimeWindow) Contains(hhmm string) bool {
	return hhmm >= w.Start && hhmm <= w.End
}

type FeedKind string

const (
	FeedRide FeedKind = "ride"
	FeedBus  FeedKind = "bus"
)

// FeedItem is one row of the merged board. Exactly one of Ride and Bus is
// set, matching Kind.
type FeedItem struct {
	ID      string        `json:"id"`
	Kind    FeedKind      `json:"type"`
	Ride    *Ride         `json:"ride,omitempty"`
	Bus     *BusDeparture `json:"bus,omitempty"`
	SortKey string        `json:"sortTime"`
}

// FeedFilter carries the board's filter controls.
type FeedFilter struct {
	Destination string
	Window      TimeWindow
	Date        string
}
