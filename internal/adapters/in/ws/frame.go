package ws

import "encoding/json"

// Frame types.
const (
	FrameSubscribe   = "SUBSCRIBE"
	FrameUnsubscribe = "UNSUBSCRIBE"
	FrameSend        = "SEND"
	FrameMessage     = "MESSAGE"
	FrameError       = "ERROR"
)

// Destination prefixes. Clients subscribe to broker topics and send to application
// destinations.
const (
	TopicPrefix = "/topic/"
	AppPrefix   = "/app/"
)

// Frame is the JSON envelope exchanged in both directions.
type Frame struct {
	Type        string          `json:"type"`
	Destination string          `json:"destination,omitempty"`
	Body        json.RawMessage `json:"body,omitempty"`
	Message     string          `json:"message,omitempty"`
}

func errorFrame(message string) Frame {
	return Frame{Type: FrameError, Message: message}
}
