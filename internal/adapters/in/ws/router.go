package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownDestination is returned by Dispatch for destinations without a handler.
var ErrUnknownDestination = errors.New("unknown destination")

// HandlerFunc processes the body of a SEND frame. Nothing is sent back to the client.
type HandlerFunc func(ctx context.Context, body json.RawMessage) error

// Router is the routing table of application destinations. Register handlers before
// the gateway starts accepting connections; the table is read without locking.
type Router struct {
	routes map[string]HandlerFunc
}

func NewRouter() *Router {
	return &Router{routes: make(map[string]HandlerFunc)}
}

// Handle registers fn for destination, replacing any earlier registration.
func (r *Router) Handle(destination string, fn HandlerFunc) {
	r.routes[destination] = fn
}

// Dispatch runs the handler registered for destination.
func (r *Router) Dispatch(ctx context.Context, destination string, body json.RawMessage) error {
	fn, ok := r.routes[destination]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownDestination, destination)
	}
	return fn(ctx, body)
}

// Destinations lists the registered destinations.
func (r *Router) Destinations() []string {
	out := make([]string, 0, len(r.routes))
	for d := range r.routes {
		out = append(out, d)
	}
	return out
}
