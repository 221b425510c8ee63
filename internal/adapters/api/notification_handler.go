package api

import (
	"net/http"
	"time"

	"log/slog"

	"github.com/gin-gonic/gin"
	"weathernotify.app/internal/adapters/infrastructure"
	"weathernotify.app/internal/core/notification"
	"weathernotify.app/internal/ports"
)

// OutcomeResponse describes what happened to one subscription during a tick
type OutcomeResponse struct {
	ChannelID int64  `json:"channel_id"`
	State     string `json:"state"`
	Result    string `json:"result"`
	Error     string `json:"error,omitempty"`
}

// TickReportResponse represents the HTTP response for a manual tick
type TickReportResponse struct {
	TickID     string            `json:"tick_id"`
	At         time.Time         `json:"at"`
	Due        int               `json:"due"`
	Skipped    int               `json:"skipped"`
	Fired      int               `json:"fired"`
	Failed     int               `json:"failed"`
	Conflict   int               `json:"conflict"`
	DurationMS int64             `json:"duration_ms"`
	Outcomes   []OutcomeResponse `json:"outcomes"`
}

// HealthResponse represents the aggregated health of all components
type HealthResponse struct {
	Status     string                        `json:"status"`
	Components map[string]ports.HealthStatus `json:"components"`
}

func newTickReportResponse(report *notification.TickReport) TickReportResponse {
	outcomes := make([]OutcomeResponse, 0, len(report.Outcomes))
	for _, outcome := range report.Outcomes {
		item := OutcomeResponse{
			ChannelID: outcome.ChannelID,
			State:     outcome.State.String(),
			Result:    outcome.Result.String(),
		}
		if outcome.Err != nil {
			item.Error = outcome.Err.Error()
		}
		outcomes = append(outcomes, item)
	}

	return TickReportResponse{
		TickID:     report.TickID,
		At:         report.At,
		Due:        report.Due,
		Skipped:    report.Skipped,
		Fired:      report.Fired,
		Failed:     report.Failed,
		Conflict:   report.Conflict,
		DurationMS: report.Duration.Milliseconds(),
		Outcomes:   outcomes,
	}
}

// runTick handles POST /api/ticks requests
func (s *HTTPServerAdapter) runTick(c *gin.Context) {
	report, err := s.notificationUseCase.RunTick(c.Request.Context())
	if err != nil {
		s.handleError(c, err)
		return
	}

	slog.Info("Manual tick completed", "tick_id", report.TickID, "fired", report.Fired, "failed", report.Failed)
	c.JSON(http.StatusOK, newTickReportResponse(report))
}

// sendNotification handles POST /api/subscriptions/:channel_id/send requests
func (s *HTTPServerAdapter) sendNotification(c *gin.Context) {
	channelID, err := channelIDParam(c)
	if err != nil {
		s.handleError(c, err)
		return
	}

	if err := s.notificationUseCase.SendNow(c.Request.Context(), channelID); err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Notification sent"})
}

// previewNotification handles GET /api/subscriptions/:channel_id/preview requests
func (s *HTTPServerAdapter) previewNotification(c *gin.Context) {
	channelID, err := channelIDParam(c)
	if err != nil {
		s.handleError(c, err)
		return
	}

	message, err := s.notificationUseCase.Preview(c.Request.Context(), channelID)
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, message)
}

// getHealth handles GET /health requests
func (s *HTTPServerAdapter) getHealth(c *gin.Context) {
	statuses := s.healthChecker.CheckAll(c.Request.Context())

	status := http.StatusOK
	overall := "healthy"
	if !infrastructure.IsHealthy(statuses) {
		status = http.StatusServiceUnavailable
		overall = "unhealthy"
	}

	c.JSON(status, HealthResponse{Status: overall, Components: statuses})
}
