package services

import (
	"context"
	"errors"
	"sync"

	"ridesboard/internal/domain"
	"ridesboard/internal/domain/models"
)

type memRideStore struct {
	mu    sync.Mutex
	rides []models.Ride
	lists int
	err   error
}

func (m *memRideStore) List(ctx context.Context) ([]models.Ride, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lists++
	if m.err != nil {
		return nil, m.err
	}
	return append([]models.Ride(nil), m.rides...), nil
}

func (m *memRideStore) GetByID(ctx context.Context, id string) (models.Ride, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rides {
		if r.ID == id {
			return r, nil
		}
	}
	return models.Ride{}, domain.NotFoundError{Resource: "ride"}
}

func (m *memRideStore) Create(ctx context.Context, ride models.Ride) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.rides = append(m.rides, ride)
	return nil
}

func (m *memRideStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.rides {
		if r.ID == id {
			m.rides = append(m.rides[:i], m.rides[i+1:]...)
			return nil
		}
	}
	return domain.NotFoundError{Resource: "ride"}
}

type recordedEvents struct {
	created []string
	deleted []string
}

func (r *recordedEvents) RideCreated(ride models.Ride, actorID string) {
	r.created = append(r.created, ride.ID)
}
func (r *recordedEvents) RideDeleted(rideID, actorID string) { r.deleted = append(r.deleted, rideID) }

type feedCounters struct{ built, hits, misses int }

func (f *feedCounters) FeedBuilt(int)  { f.built++ }
func (f *feedCounters) FeedCacheHit()  { f.hits++ }
func (f *feedCounters) FeedCacheMiss() { f.misses++ }

var errBoom = errors.New("boom")
