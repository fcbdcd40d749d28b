package transport

import (
	"sort"

	"ridesboard/internal/domain/models"
)

// FilterEmailRequests keeps the requests matching the destination filter. The
// original message body is searched too, since detection is best-effort.
// Output is newest first.
func FilterEmailRequests(reqs []models.EmailRideRequest, destination string) []models.EmailRideRequest {
	out := make([]models.EmailRideRequest, 0, len(reqs))
	for _, r := range reqs {
		if MatchesDestination(destination, r.DetectedOrigin, r.DetectedDestination, r.Body) {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ReceivedAt.After(out[j].ReceivedAt) })
	return out
}
