package models

// BusLine is one directional route with all of its daily departures.
type BusLine struct {
	LineID         string   `json:"line"`
	Operator       string   `json:"operator"`
	Origin         string   `json:"origin"`
	Destination    string   `json:"destination"`
	DepartureTimes []string `json:"schedule"`
}

// BusDeparture is a single concrete departure of a line.
type BusDeparture struct {
	Line          BusLine `json:"line"`
	DepartureTime string  `json:"departureTime"`
}
