package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client   *pubsub.Client
	teardown func() error
}

// EventType represents the type of event/message sent via pubsub.
type EventType string

const (
	EventRoundRecorded EventType = "round-recorded"
)
