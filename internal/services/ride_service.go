package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ridesboard/internal/domain"
	"ridesboard/internal/domain/models"
	"ridesboard/internal/utils"

	"github.com/google/uuid"
)

const maxSeats = 8

// RideStore is the persistence the ride service needs.
type RideStore interface {
	List(ctx context.Context) ([]models.Ride, error)
	GetByID(ctx context.Context, id string) (models.Ride, error)
	Create(ctx context.Context, ride models.Ride) error
	Delete(ctx context.Context, id string) error
}

// RideEvents is notified after a ride is stored or removed.
type RideEvents interface {
	RideCreated(ride models.Ride, actorID string)
	RideDeleted(rideID, actorID string)
}

type RideMetrics interface {
	RideCreated()
	RideDeleted()
}

// RideInput is the user-supplied part of a ride; id and owner are assigned here.
type RideInput struct {
	Kind        models.RideKind `json:"type"`
	PosterName  string          `json:"driverName"`
	Origin      string          `json:"origin"`
	Destination string          `json:"destination"`
	Time        string          `json:"time"`
	Seats       int             `json:"seats"`
	Phone       string          `json:"phone"`
	Date        string          `json:"date"`
	IsRecurring bool            `json:"isRecurring"`
	Weekdays    []int           `json:"recurringDays"`
	Notes       string          `json:"notes"`
}

// RideService validates and stores rides and keeps the feed cache coherent.
type RideService struct {
	Store     RideStore
	Events    RideEvents
	Metrics   RideMetrics
	Feed      *FeedService
	Location  *time.Location
	Now       func() time.Time
	NewID     func() string
	RequestID string
}

// WithRequestID returns a copy that tags its logs with requestID.
func (s RideService) WithRequestID(requestID string) RideService {
	s.RequestID = requestID
	return s
}

func (s RideService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s RideService) loc() *time.Location {
	if s.Location != nil {
		return s.Location
	}
	return time.Local
}

func (s RideService) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}

func (s RideService) List(ctx context.Context) ([]models.Ride, error) {
	return s.Store.List(ctx)
}

// Create validates in, assigns id and owner and stores the ride.
func (s RideService) Create(ctx context.Context, rc domain.RequestContext, in RideInput) (models.Ride, error) {
	if rc.UserID == "" {
		return models.Ride{}, domain.UnauthorizedError{Msg: "session required to post a ride"}
	}
	ride, err := s.normalize(in)
	if err != nil {
		return models.Ride{}, err
	}
	ride.ID = s.newID()
	ride.OwnerID = rc.UserID

	if err := s.Store.Create(ctx, ride); err != nil {
		utils.LogEvent(s.RequestID, "rides", "create_error", err.Error())
		if domain.IsConflict(err) {
			return models.Ride{}, err
		}
		return models.Ride{}, domain.InternalError{Msg: "failed to store ride", Err: err}
	}
	utils.LogEvent(s.RequestID, "rides", "create", fmt.Sprintf("id=%s kind=%s time=%s recurring=%t", ride.ID, ride.Kind, ride.Time, ride.IsRecurring))

	s.Feed.Invalidate()
	if s.Metrics != nil {
		s.Metrics.RideCreated()
	}
	if s.Events != nil {
		s.Events.RideCreated(ride, rc.UserID)
	}
	return ride, nil
}

// Delete removes a ride when the caller owns it or is an admin.
func (s RideService) Delete(ctx context.Context, rc domain.RequestContext, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.ValidationError{Field: "id", Msg: "ride id is required"}
	}
	if rc.UserID == "" && !rc.IsAdmin {
		return domain.UnauthorizedError{Msg: "session required to delete a ride"}
	}
	ride, err := s.Store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !rc.CanModify(ride.OwnerID) {
		utils.LogEvent(s.RequestID, "rides", "delete_denied", "id="+id)
		return domain.ForbiddenError{Resource: "ride", Action: "delete"}
	}
	if err := s.Store.Delete(ctx, id); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "rides", "delete", fmt.Sprintf("id=%s admin=%t", id, rc.IsAdmin))

	s.Feed.Invalidate()
	if s.Metrics != nil {
		s.Metrics.RideDeleted()
	}
	if s.Events != nil {
		s.Events.RideDeleted(id, rc.UserID)
	}
	return nil
}

func (s RideService) normalize(in RideInput) (models.Ride, error) {
	ride := models.Ride{
		Kind:        models.RideKind(strings.ToLower(strings.TrimSpace(string(in.Kind)))),
		PosterName:  utils.NormalizeSpace(in.PosterName),
		Origin:      utils.NormalizeSpace(in.Origin),
		Destination: utils.NormalizeSpace(in.Destination),
		Time:        utils.TrimOrEmpty(in.Time),
		SeatCount:   in.Seats,
		Phone:       utils.TrimOrEmpty(in.Phone),
		Date:        utils.TrimOrEmpty(in.Date),
		IsRecurring: in.IsRecurring,
		Notes:       strings.TrimSpace(in.Notes),
	}

	if !ride.Kind.Valid() {
		return ride, domain.ValidationError{Field: "type", Msg: "must be offer or request"}
	}
	required := []struct{ field, value string }{
		{"driverName", ride.PosterName},
		{"origin", ride.Origin},
		{"destination", ride.Destination},
		{"phone", ride.Phone},
	}
	for _, r := range required {
		if r.value == "" {
			return ride, domain.ValidationError{Field: r.field, Msg: "is required"}
		}
	}
	if !utils.IsHHMM(ride.Time) {
		return ride, domain.ValidationError{Field: "time", Msg: "must be HH:mm"}
	}
	if ride.SeatCount < 1 || ride.SeatCount > maxSeats {
		return ride, domain.ValidationError{Field: "seats", Msg: fmt.Sprintf("must be between 1 and %d", maxSeats)}
	}

	if ride.IsRecurring {
		ride.RecurringWeekdays = utils.NormalizeWeekdays(in.Weekdays)
		if len(ride.RecurringWeekdays) == 0 || len(ride.RecurringWeekdays) != len(dedupe(in.Weekdays)) {
			return ride, domain.ValidationError{Field: "recurringDays", Msg: "recurring rides need weekdays between 0 and 6"}
		}
		if ride.Date == "" {
			ride.Date = utils.FormatDate(s.now(), s.loc())
		}
	}
	if !utils.IsDate(ride.Date) {
		return ride, domain.ValidationError{Field: "date", Msg: "must be YYYY-MM-DD"}
	}
	return ride, nil
}

func dedupe(days []int) []int {
	seen := map[int]bool{}
	out := []int{}
	for _, d := range days {
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	return out
}
