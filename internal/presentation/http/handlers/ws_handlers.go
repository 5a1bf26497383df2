package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/AssetGridHQ/assetgrid-go/internal/infrastructure/messaging"
	"github.com/AssetGridHQ/assetgrid-go/internal/infrastructure/observability/logging"
	"github.com/AssetGridHQ/assetgrid-go/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
)

// WSHandlers contains websocket endpoints: workflow outcome push and log
// streaming for the admin console.
type WSHandlers struct {
	hub    *messaging.Hub
	logger *logging.ChanneledLogger
}

// NewWSHandlers creates websocket handlers with injected dependencies
func NewWSHandlers(hub *messaging.Hub, logger *logging.ChanneledLogger) *WSHandlers {
	return &WSHandlers{
		hub:    hub,
		logger: logger,
	}
}

// Outcomes upgrades the connection and streams workflow outcome events for
// the tenant until the client disconnects
func (h *WSHandlers) Outcomes(c *gin.Context) {
	tenantCtx, exists := middleware.GetTenantContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "tenant context not found"})
		return
	}
	sessionID := middleware.GetSessionID(c)
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sessionId query param is required"})
		return
	}

	if err := h.hub.HandleConnection(c.Writer, c.Request, tenantCtx.TenantID, sessionID); err != nil {
		h.logger.WS().Error("Websocket upgrade failed", "tenantId", tenantCtx.TenantID, "error", err)
	}
}

// StreamLogs streams structured log lines over SSE, filtered by channel and
// level query params
func (h *WSHandlers) StreamLogs(c *gin.Context) {
	channel := logging.Channel(c.DefaultQuery("channel", "all"))
	level := parseLevel(c.DefaultQuery("level", "info"))

	broadcaster := logging.GetBroadcaster()
	client := broadcaster.NewClient(logging.StreamFilters{Channel: channel, Level: level})
	broadcaster.RegisterClient(client)
	defer broadcaster.UnregisterClient(client)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Flush()

	for {
		select {
		case <-c.Request.Context().Done():
			return
		case message, ok := <-client.Out:
			if !ok {
				return
			}
			c.Writer.Write([]byte("data: "))
			c.Writer.Write(message)
			c.Writer.Write([]byte("\n\n"))
			c.Writer.Flush()
		}
	}
}

func parseLevel(value string) slog.Level {
	switch strings.ToLower(value) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
