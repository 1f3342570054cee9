package domain

import "context"

// Event topics published by the community service
const (
	TopicChatMessageCreated = "chat.message.created"
	TopicChatMessageDeleted = "chat.message.deleted"
	TopicNewsCreated        = "news.created"
	TopicProfileSaved       = "profile.saved"
)

// ImageStore persists images embedded in news posts and avatars
type ImageStore interface {
	// Store persists a data URI under prefix and returns the value to keep
	// in the database, either a public URL or the data URI itself
	Store(ctx context.Context, prefix, dataURI string) (string, error)
}

// EventPublisher publishes domain events to the message bus
type EventPublisher interface {
	// Publish sends payload as JSON to topic with the given key
	Publish(ctx context.Context, topic, key string, payload interface{}) error

	// Close flushes pending messages and closes the publisher
	Close() error
}

// HealthChecker is implemented by infrastructure components reported on /health
type HealthChecker interface {
	// Name identifies the component in the health report
	Name() string

	// HealthCheck returns nil when the component is reachable
	HealthCheck(ctx context.Context) error
}
