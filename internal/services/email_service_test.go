package services

import (
	"context"
	"testing"
	"time"

	"ridesboard/internal/domain"
	"ridesboard/internal/domain/models"
)

type memEmailStore struct{ reqs []models.EmailRideRequest }

func (m *memEmailStore) List(ctx context.Context) ([]models.EmailRideRequest, error) {
	return append([]models.EmailRideRequest(nil), m.reqs...), nil
}

func (m *memEmailStore) Create(ctx context.Context, e models.EmailRideRequest) error {
	m.reqs = append(m.reqs, e)
	return nil
}

func TestEmailRequestServiceIngestAndList(t *testing.T) {
	store := &memEmailStore{}
	now := time.Date(2024, 5, 1, 7, 0, 0, 0, time.UTC)
	svc := EmailRequestService{Store: store, Now: func() time.Time { return now }}
	ctx := context.Background()
	in := models.EmailRideRequest{
		Subject:             "מחפשת טרמפ לירושלים",
		Body:                "צריכה להגיע לגבעת שאול",
		SenderEmail:         "racheli@example.com",
		DetectedDestination: "ירושלים",
		DetectedTime:        "08:00",
	}

	if _, err := svc.Ingest(ctx, domain.RequestContext{UserID: "u1"}, in); !domain.IsForbidden(err) {
		t.Fatalf("non-admin ingest should be forbidden, got %v", err)
	}
	saved, err := svc.Ingest(ctx, domain.RequestContext{UserID: "a", IsAdmin: true}, in)
	if err != nil {
		t.Fatalf("Ingest error: %v", err)
	}
	if saved.ID == "" || !saved.ReceivedAt.Equal(now) {
		t.Fatalf("unexpected saved request: %+v", saved)
	}

	got, err := svc.List(ctx, "גבעת שאול")
	if err != nil || len(got) != 1 {
		t.Fatalf("body search failed: %v %v", got, err)
	}
	got, err = svc.List(ctx, "תקוע")
	if err != nil || len(got) != 0 {
		t.Fatalf("expected no match: %v %v", got, err)
	}
}

func TestEmailRequestServiceValidation(t *testing.T) {
	svc := EmailRequestService{Store: &memEmailStore{}}
	admin := domain.RequestContext{UserID: "a", IsAdmin: true}

	bad := []models.EmailRideRequest{
		{SenderEmail: "x@example.com"},
		{Subject: "s"},
		{Subject: "s", SenderEmail: "x@example.com", DetectedTime: "8am"},
	}
	for i, in := range bad {
		if _, err := svc.Ingest(context.Background(), admin, in); !domain.IsValidation(err) {
			t.Fatalf("case %d: expected validation error, got %v", i, err)
		}
	}
}
