package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	reg *prometheus.Registry

	HTTPRequests *prometheus.CounterVec // route, method, status
	HTTPDuration *prometheus.HistogramVec

	FeedBuilds      prometheus.Counter
	FeedItems       prometheus.Histogram
	FeedCacheHits   prometheus.Counter
	FeedCacheMisses prometheus.Counter

	RidesCreated prometheus.Counter
	RidesDeleted prometheus.Counter

	EventsPublished    prometheus.Counter
	EventPublishErrs   prometheus.Counter
	EventsConnected    prometheus.Gauge
	BusLinesConfigured prometheus.Gauge
}

func NewCollector(busLines int) *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ridesboard_http_requests_total",
			Help: "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ridesboard_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 15),
		}, []string{"route"}),
		FeedBuilds: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ridesboard_feed_builds_total",
			Help: "Feeds merged from rides and bus lines (cache misses).",
		}),
		FeedItems: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "ridesboard_feed_items",
			Help:    "Number of items in each merged feed.",
			Buckets: prometheus.LinearBuckets(0, 5, 12),
		}),
		FeedCacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ridesboard_feed_cache_hits_total",
			Help: "Feed requests served from cache.",
		}),
		FeedCacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ridesboard_feed_cache_misses_total",
			Help: "Feed requests that had to merge.",
		}),
		RidesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ridesboard_rides_created_total",
			Help: "Rides posted.",
		}),
		RidesDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ridesboard_rides_deleted_total",
			Help: "Rides deleted by owner or admin.",
		}),
		EventsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ridesboard_events_published_total",
			Help: "Ride events published to NATS.",
		}),
		EventPublishErrs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ridesboard_event_publish_errors_total",
			Help: "Ride events that failed to publish.",
		}),
		EventsConnected: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ridesboard_nats_connected",
			Help: "1 if NATS connection is established, 0 otherwise.",
		}),
		BusLinesConfigured: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ridesboard_bus_lines_configured",
			Help: "Bus lines loaded from the schedule configuration.",
		}),
	}

	reg.MustRegister(
		c.HTTPRequests, c.HTTPDuration,
		c.FeedBuilds, c.FeedItems, c.FeedCacheHits, c.FeedCacheMisses,
		c.RidesCreated, c.RidesDeleted,
		c.EventsPublished, c.EventPublishErrs, c.EventsConnected, c.BusLinesConfigured,
	)

	c.BusLinesConfigured.Set(float64(busLines))
	return c
}

func (c *Collector) Handler() http.Handler { return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{}) }

// ObserveRequest records one finished HTTP request.
func (c *Collector) ObserveRequest(route, method string, status int, d time.Duration) {
	if c == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	c.HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	c.HTTPDuration.WithLabelValues(route).Observe(d.Seconds())
}

// The methods below let the collector serve as the events and feed hooks.

func (c *Collector) EventPublishedInc()  { c.EventsPublished.Inc() }
func (c *Collector) EventPublishErrInc() { c.EventPublishErrs.Inc() }
func (c *Collector) EventsSetConnected(b bool) {
	if b {
		c.EventsConnected.Set(1)
	} else {
		c.EventsConnected.Set(0)
	}
}

func (c *Collector) FeedBuilt(items int) {
	c.FeedBuilds.Inc()
	c.FeedItems.Observe(float64(items))
}
func (c *Collector) FeedCacheHit()  { c.FeedCacheHits.Inc() }
func (c *Collector) FeedCacheMiss() { c.FeedCacheMisses.Inc() }
func (c *Collector) RideCreated()   { c.RidesCreated.Inc() }
func (c *Collector) RideDeleted()   { c.RidesDeleted.Inc() }
