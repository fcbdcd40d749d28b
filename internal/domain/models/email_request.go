package models

import "time"

// EmailRideRequest is a ride request that arrived by e-mail and was parsed
// into origin/destination/time hints.
type EmailRideRequest struct {
	ID                  string    `json:"id"`
	Subject             string    `json:"originalSubject"`
	Body                string    `json:"originalBody"`
	SenderName          string    `json:"senderName"`
	SenderEmail         string    `json:"senderEmail"`
	DetectedOrigin      string    `json:"detectedOrigin"`
	DetectedDestination string    `json:"detectedDestination"`
	DetectedTime        string    `json:"detectedTime,omitempty"`
	ReceivedAt          time.Time `json:"receivedAt"`
}
