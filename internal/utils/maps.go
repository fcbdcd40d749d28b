package utils

import "net/url"

const mapsDirBase = "https://www.google.com/maps/dir/?api=1"

// TravelMode is the Google Maps directions mode.
type TravelMode string

const (
	ModeDriving TravelMode = "driving"
	ModeTransit TravelMode = "transit"
)

// GoogleMapsLink builds a directions link between two place names.
func GoogleMapsLink(origin, destination string, mode TravelMode) string {
	q := url.Values{}
	q.Set("origin", origin)
	q.Set("destination", destination)
	q.Set("travelmode", string(mode))
	return mapsDirBase + "&" + q.Encode()
}
