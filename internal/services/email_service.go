package services

import (
	"context"
	"strings"
	"time"

	"ridesboard/internal/domain"
	"ridesboard/internal/domain/models"
	"ridesboard/internal/transport"
	"ridesboard/internal/utils"

	"github.com/google/uuid"
)

type EmailRequestStore interface {
	List(ctx context.Context) ([]models.EmailRideRequest, error)
	Create(ctx context.Context, e models.EmailRideRequest) error
}

// EmailRequestService serves ride requests that came in by e-mail.
type EmailRequestService struct {
	Store     EmailRequestStore
	Now       func() time.Time
	RequestID string
}

// List returns the requests matching destination, newest first.
func (s EmailRequestService) List(ctx context.Context, destination string) ([]models.EmailRideRequest, error) {
	all, err := s.Store.List(ctx)
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to load e-mail requests", Err: err}
	}
	return transport.FilterEmailRequests(all, destination), nil
}

// Ingest stores one parsed e-mail. Only admins may ingest.
func (s EmailRequestService) Ingest(ctx context.Context, rc domain.RequestContext, e models.EmailRideRequest) (models.EmailRideRequest, error) {
	if !rc.IsAdmin {
		return models.EmailRideRequest{}, domain.ForbiddenError{Resource: "e-mail requests", Action: "ingest"}
	}
	e.Subject = strings.TrimSpace(e.Subject)
	e.SenderName = utils.NormalizeSpace(e.SenderName)
	e.SenderEmail = strings.TrimSpace(e.SenderEmail)
	e.DetectedOrigin = utils.NormalizeSpace(e.DetectedOrigin)
	e.DetectedDestination = utils.NormalizeSpace(e.DetectedDestination)
	e.DetectedTime = strings.TrimSpace(e.DetectedTime)

	if e.Subject == "" && strings.TrimSpace(e.Body) == "" {
		return e, domain.ValidationError{Field: "originalBody", Msg: "subject or body is required"}
	}
	if e.SenderEmail == "" {
		return e, domain.ValidationError{Field: "senderEmail", Msg: "is required"}
	}
	if e.DetectedTime != "" && !utils.IsHHMM(e.DetectedTime) {
		return e, domain.ValidationError{Field: "detectedTime", Msg: "must be HH:mm"}
	}
	if e.ReceivedAt.IsZero() {
		now := time.Now
		if s.Now != nil {
			now = s.Now
		}
		e.ReceivedAt = now()
	}
	e.ID = uuid.NewString()

	if err := s.Store.Create(ctx, e); err != nil {
		return e, domain.InternalError{Msg: "failed to store e-mail request", Err: err}
	}
	utils.LogEvent(s.RequestID, "email", "ingest", "id="+e.ID)
	return e, nil
}
