package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the community service
type Metrics struct {
	// Chat metrics
	ChatMessagesPosted  prometheus.Counter
	ChatMessagesDeleted prometheus.Counter
	ChatListRequests    prometheus.Counter

	// News metrics
	NewsPublished prometheus.Counter
	NewsDeleted   prometheus.Counter

	// Profile metrics
	ProfilesSaved *prometheus.CounterVec

	// Media metrics
	ImagesStored    *prometheus.CounterVec
	ImagesRejected  *prometheus.CounterVec
	ImageUploadTime prometheus.Histogram

	// Event publishing metrics
	EventsPublished     *prometheus.CounterVec
	EventPublishErrors  *prometheus.CounterVec
	EventPublishLatency prometheus.Histogram

	// Request errors by domain and kind
	OperationErrors *prometheus.CounterVec
}

var (
	// DefaultMetrics is the default metrics instance
	DefaultMetrics *Metrics
	once           sync.Once
)

// GetDefaultMetrics returns the singleton metrics instance
func GetDefaultMetrics() *Metrics {
	once.Do(func() {
		DefaultMetrics = NewMetrics()
	})
	return DefaultMetrics
}

// NewMetrics registers all collectors on the default registry. It must be
// called once per process, use GetDefaultMetrics instead.
func NewMetrics() *Metrics {
	return &Metrics{
		ChatMessagesPosted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "drevlegrad_chat_messages_posted_total",
			Help: "Total number of chat messages posted",
		}),
		ChatMessagesDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "drevlegrad_chat_messages_deleted_total",
			Help: "Total number of chat messages deleted",
		}),
		ChatListRequests: promauto.NewCounter(prometheus.CounterOpts{
			Name: "drevlegrad_chat_list_requests_total",
			Help: "Total number of chat list requests, mostly client polls",
		}),

		NewsPublished: promauto.NewCounter(prometheus.CounterOpts{
			Name: "drevlegrad_news_published_total",
			Help: "Total number of news posts published",
		}),
		NewsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "drevlegrad_news_deleted_total",
			Help: "Total number of news posts deleted",
		}),

		ProfilesSaved: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "drevlegrad_profiles_saved_total",
				Help: "Total number of profile saves",
			},
			[]string{"kind"},
		),

		ImagesStored: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "drevlegrad_images_stored_total",
				Help: "Total number of images stored",
			},
			[]string{"backend"},
		),
		ImagesRejected: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "drevlegrad_images_rejected_total",
				Help: "Total number of rejected image payloads",
			},
			[]string{"reason"},
		),
		ImageUploadTime: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "drevlegrad_image_upload_duration_seconds",
			Help:    "Duration of object storage uploads in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),

		EventsPublished: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "drevlegrad_events_published_total",
				Help: "Total number of domain events published to Kafka",
			},
			[]string{"topic"},
		),
		EventPublishErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "drevlegrad_event_publish_errors_total",
				Help: "Total number of Kafka publish errors",
			},
			[]string{"topic"},
		),
		EventPublishLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "drevlegrad_event_publish_duration_seconds",
			Help:    "Duration of Kafka publish operations in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),

		OperationErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "drevlegrad_operation_errors_total",
				Help: "Total number of failed operations",
			},
			[]string{"domain", "operation"},
		),
	}
}

// RecordProfileSaved records a profile upsert, kind is "created" or "updated"
func (m *Metrics) RecordProfileSaved(created bool) {
	kind := "updated"
	if created {
		kind = "created"
	}
	m.ProfilesSaved.WithLabelValues(kind).Inc()
}

// RecordImageStored records a stored image, backend is "s3" or "inline"
func (m *Metrics) RecordImageStored(backend string, duration float64) {
	m.ImagesStored.WithLabelValues(backend).Inc()
	if backend == "s3" {
		m.ImageUploadTime.Observe(duration)
	}
}

// RecordImageRejected records a rejected image payload
func (m *Metrics) RecordImageRejected(reason string) {
	if reason == "" {
		reason = "unknown"
	}
	m.ImagesRejected.WithLabelValues(reason).Inc()
}

// RecordEvent records a published event with duration
func (m *Metrics) RecordEvent(topic string, duration float64) {
	m.EventsPublished.WithLabelValues(topic).Inc()
	m.EventPublishLatency.Observe(duration)
}

// RecordEventError records a failed publish
func (m *Metrics) RecordEventError(topic string) {
	m.EventPublishErrors.WithLabelValues(topic).Inc()
}

// RecordError records a failed operation
func (m *Metrics) RecordError(domain, operation string) {
	m.OperationErrors.WithLabelValues(domain, operation).Inc()
}
