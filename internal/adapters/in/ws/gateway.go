package ws

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"shoporders/internal/pkg/hub"

	"github.com/labstack/echo/v4"
	"golang.org/x/net/websocket"
)

const controlBuffer = 8

// Subscriptions is the part of the notification hub a connection needs.
type Subscriptions interface {
	Subscribe(topic string, sub hub.Subscriber) error
	Unsubscribe(topic string, sub hub.Subscriber)
}

// Gateway serves the streaming endpoint. Every connection is a hub subscriber with
// its own bounded queue: a reader goroutine handles client frames and a writer
// goroutine drains the queue, so a slow client only ever loses its own messages.
type Gateway struct {
	subs    Subscriptions
	router  *Router
	buffer  int
	metrics *Metrics
	logger  *slog.Logger
}

// NewGateway creates a gateway. buffer is the per-connection queue size; metrics may be nil.
func NewGateway(subs Subscriptions, router *Router, buffer int, metrics *Metrics, logger *slog.Logger) *Gateway {
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	return &Gateway{
		subs:    subs,
		router:  router,
		buffer:  buffer,
		metrics: metrics,
		logger:  logger.With("component", "ws_gateway"),
	}
}

// Handler returns the echo handler that upgrades GET /ws. Origins are not checked;
// access control belongs in front of this service.
func (g *Gateway) Handler() echo.HandlerFunc {
	server := websocket.Server{
		Handshake: func(*websocket.Config, *http.Request) error { return nil },
		Handler:   g.serve,
	}
	return func(c echo.Context) error {
		server.ServeHTTP(c.Response(), c.Request())
		return nil
	}
}

func (g *Gateway) serve(conn *websocket.Conn) {
	ctx := conn.Request().Context()
	sub := hub.NewChannelSubscriber(g.buffer)
	c := &connection{
		gateway: g,
		conn:    conn,
		sub:     sub,
		control: make(chan Frame, controlBuffer),
		logger:  g.logger.With("subscriber", sub.ID()),
	}

	g.metrics.connections.Inc()
	defer g.metrics.connections.Dec()
	c.logger.DebugContext(ctx, "Client connected", "remote", conn.Request().RemoteAddr)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.writeLoop(ctx)
	}()

	c.readLoop(ctx)

	c.sub.Close()
	wg.Wait()
	c.logger.DebugContext(ctx, "Client disconnected")
}

type connection struct {
	gateway *Gateway
	conn    *websocket.Conn
	sub     *hub.ChannelSubscriber
	control chan Frame
	logger  *slog.Logger
}

func (c *connection) readLoop(ctx context.Context) {
	for {
		var data []byte
		if err := websocket.Message.Receive(c.conn, &data); err != nil {
			if !errors.Is(err, io.EOF) {
				c.logger.DebugContext(ctx, "Read failed", "error", err)
			}
			return
		}

		select {
		case <-c.sub.Done():
			return
		default:
		}

		var frame Frame
		if err := json.Unmarshal(data, &frame); err != nil {
			c.gateway.metrics.frames.WithLabelValues("malformed").Inc()
			c.reply(errorFrame("malformed frame"))
			continue
		}
		c.handle(ctx, frame)
	}
}

func (c *connection) handle(ctx context.Context, frame Frame) {
	metrics := c.gateway.metrics
	switch frame.Type {
	case FrameSubscribe:
		metrics.frames.WithLabelValues(FrameSubscribe).Inc()
		if !strings.HasPrefix(frame.Destination, TopicPrefix) {
			c.reply(errorFrame("subscriptions must target " + TopicPrefix + "*"))
			return
		}
		if err := c.gateway.subs.Subscribe(frame.Destination, c.sub); err != nil {
			c.logger.WarnContext(ctx, "Subscribe failed", "destination", frame.Destination, "error", err)
			c.reply(errorFrame("subscribe failed"))
		}

	case FrameUnsubscribe:
		metrics.frames.WithLabelValues(FrameUnsubscribe).Inc()
		c.gateway.subs.Unsubscribe(frame.Destination, c.sub)

	case FrameSend:
		metrics.frames.WithLabelValues(FrameSend).Inc()
		if !strings.HasPrefix(frame.Destination, AppPrefix) {
			c.reply(errorFrame("messages must target " + AppPrefix + "*"))
			return
		}
		err := c.gateway.router.Dispatch(ctx, frame.Destination, frame.Body)
		switch {
		case errors.Is(err, ErrUnknownDestination):
			c.reply(errorFrame("unknown destination " + frame.Destination))
		case err != nil:
			c.logger.ErrorContext(ctx, "Message handling failed", "destination", frame.Destination, "error", err)
		}

	default:
		metrics.frames.WithLabelValues("malformed").Inc()
		c.reply(errorFrame("unknown frame type " + frame.Type))
	}
}

// reply queues a frame for the writer. Replies are dropped when the queue is full.
func (c *connection) reply(frame Frame) {
	select {
	case c.control <- frame:
	default:
		c.logger.Debug("Reply dropped", "type", frame.Type)
	}
}

func (c *connection) writeLoop(ctx context.Context) {
	defer c.conn.Close()

	for {
		var frame Frame
		select {
		case <-c.sub.Done():
			return
		case frame = <-c.control:
		case msg := <-c.sub.Messages():
			frame = Frame{Type: FrameMessage, Destination: msg.Topic, Body: msg.Payload}
		}

		if err := websocket.JSON.Send(c.conn, frame); err != nil {
			c.logger.DebugContext(ctx, "Write failed", "error", err)
			c.sub.Close()
			return
		}
	}
}
