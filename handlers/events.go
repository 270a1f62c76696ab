package handlers

import "github.com/gin-gonic/gin"

// Events upgrades to a WebSocket that streams task events the caller may see.
func (h *Handler) Events(c *gin.Context) {
	identity, admin := h.caller(c)
	if err := h.hub.Serve(c.Writer, c.Request, identity.ID, admin); err != nil {
		// The upgrader has already written the HTTP error
		h.log.WithField("operation", "handlers.Handler.Events").WithError(err).Warn("websocket upgrade failed")
	}
}
