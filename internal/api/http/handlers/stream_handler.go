package handlers

import (
	"bufio"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"github.com/spec-kit/cocktail-service/internal/observability"
	"github.com/spec-kit/cocktail-service/internal/stream"
)

// StreamHandler exposes the server-push stock update stream.
type StreamHandler struct {
	hub     *stream.Hub
	metrics *observability.Metrics
}

// NewStreamHandler constructs handler.
func NewStreamHandler(hub *stream.Hub, metrics *observability.Metrics) *StreamHandler {
	return &StreamHandler{hub: hub, metrics: metrics}
}

// Subscribe handles GET /api/stream. The connection stays open delivering
// named events until the client disconnects, a write fails, or the hub shuts
// down; a write failure unsubscribes this connection without affecting others.
func (h *StreamHandler) Subscribe(c *fiber.Ctx) error {
	sub := h.hub.Subscribe()
	h.metrics.SubscriberOpened()

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer func() {
			h.hub.Unsubscribe(sub.ID)
			h.metrics.SubscriberClosed()
		}()

		for ev := range sub.C {
			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Name, ev.Data); err != nil {
				return
			}
			if err := w.Flush(); err != nil {
				return
			}
		}
	}))

	return nil
}
