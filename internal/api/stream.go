package api

import (
	"io"
	"net/http"

	"evaluo/server/internal/bus"

	"github.com/gin-gonic/gin"
)

var streamChannels = map[string]bool{
	bus.ChannelOrders:        true,
	bus.ChannelAdmin:         true,
	bus.ChannelNotifications: true,
	bus.ChannelSales:         true,
	bus.ChannelUsers:         true,
}

// StreamEvents bridges one bus channel onto a server-sent event stream.
// A slow client drops events rather than backing up the bus.
func (h *Handler) StreamEvents(c *gin.Context) {
	channel := c.Param("channel")
	if !streamChannels[channel] {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown event channel"})
		return
	}

	events := make(chan interface{}, 16)
	unsubscribe := h.bus.Subscribe(channel, func(payload interface{}) {
		select {
		case events <- payload:
		default:
		}
	})
	defer unsubscribe()

	h.logger.WithField("channel", channel).Debug("Event stream opened")

	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Stream(func(w io.Writer) bool {
		select {
		case payload := <-events:
			c.SSEvent("message", payload)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
