package handler

import (
	"encoding/json"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/cekapguard/agency-api/internal/infrastructure/stream"
)

// EventsHandler streams change notifications to connected clients over
// server-sent events, so the document and customer lists refresh
// without polling.
type EventsHandler struct {
	broker *stream.Broker
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(broker *stream.Broker) *EventsHandler {
	return &EventsHandler{broker: broker}
}

// Stream subscribes the client to collection change events
func (h *EventsHandler) Stream(c *gin.Context) {
	events, cancel := h.broker.Subscribe()
	defer cancel()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case event, ok := <-events:
			if !ok {
				return false
			}
			payload, err := json.Marshal(event)
			if err != nil {
				return true
			}
			c.SSEvent("change", string(payload))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
