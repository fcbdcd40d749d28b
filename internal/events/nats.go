// Package events publishes ride lifecycle notifications to NATS.
package events

import (
	"encoding/json"
	"log"
	"time"

	"ridesboard/internal/domain/models"

	"github.com/nats-io/nats.go"
)

const (
	SubjectRideCreated = "rides.created"
	SubjectRideDeleted = "rides.deleted"
)

// PublisherMetrics receives publish outcomes; nil disables reporting.
type PublisherMetrics interface {
	EventPublishedInc()
	EventPublishErrInc()
	EventsSetConnected(connected bool)
}

// RideEvent is the JSON payload on both subjects. Ride is omitted on delete.
type RideEvent struct {
	RideID    string       `json:"rideId"`
	ActorID   string       `json:"actorId,omitempty"`
	Ride      *models.Ride `json:"ride,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

// Conn is the subset of *nats.Conn the publisher needs.
type Conn interface {
	Publish(subj string, data []byte) error
	Drain() error
	Close()
}

type NATSPublisher struct {
	nc      Conn
	metrics PublisherMetrics
	now     func() time.Time
}

func NewNATSPublisher(url string, m PublisherMetrics) (*NATSPublisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("ridesboard"),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if m != nil {
				m.EventsSetConnected(false)
			}
			log.Printf("[EVENTS] nats disconnected: %v", err)
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			if m != nil {
				m.EventsSetConnected(true)
			}
			log.Printf("[EVENTS] nats reconnected")
		}),
		nats.ClosedHandler(func(_ *nats.Conn) {
			if m != nil {
				m.EventsSetConnected(false)
			}
			log.Printf("[EVENTS] nats closed")
		}),
	)
	if err != nil {
		return nil, err
	}
	if m != nil {
		m.EventsSetConnected(true)
	}
	return NewPublisherWithConn(nc, m), nil
}

// NewPublisherWithConn wraps an existing connection.
func NewPublisherWithConn(nc Conn, m PublisherMetrics) *NATSPublisher {
	return &NATSPublisher{nc: nc, metrics: m, now: time.Now}
}

func (p *NATSPublisher) Close() {
	if p == nil || p.nc == nil {
		return
	}
	_ = p.nc.Drain()
	p.nc.Close()
}

func (p *NATSPublisher) RideCreated(ride models.Ride, actorID string) {
	r := ride
	p.publish(SubjectRideCreated, RideEvent{RideID: ride.ID, ActorID: actorID, Ride: &r})
}

func (p *NATSPublisher) RideDeleted(rideID, actorID string) {
	p.publish(SubjectRideDeleted, RideEvent{RideID: rideID, ActorID: actorID})
}

// publish is fire-and-forget; failures are logged and counted only.
func (p *NATSPublisher) publish(subject string, ev RideEvent) {
	if p == nil || p.nc == nil {
		return
	}
	ev.Timestamp = p.now().UTC()
	b, err := json.Marshal(ev)
	if err == nil {
		err = p.nc.Publish(subject, b)
	}
	if err != nil {
		log.Printf("[EVENTS] publish subject=%s ride_id=%s error=%v", subject, ev.RideID, err)
		if p.metrics != nil {
			p.metrics.EventPublishErrInc()
		}
		return
	}
	if p.metrics != nil {
		p.metrics.EventPublishedInc()
	}
}
