package api

import (
	"net/http"
	"strconv"
	"time"

	"log/slog"

	"github.com/gin-gonic/gin"
	"weathernotify.app/internal/core/subscription"
	"weathernotify.app/pkg/errors"
)

// SubscriptionRequest represents the HTTP request body for registering a subscription
type SubscriptionRequest struct {
	TimeOfDay     string   `json:"time_of_day" binding:"required,timeofday"`
	IntervalHours int      `json:"interval_hours" binding:"omitempty,min=1,max=8760"`
	Lat           *float64 `json:"lat" binding:"required,min=-90,max=90"`
	Lon           *float64 `json:"lon" binding:"required,min=-180,max=180"`
	IsForecast    bool     `json:"is_forecast"`
}

// SubscriptionResponse represents a stored subscription
type SubscriptionResponse struct {
	ChannelID     int64      `json:"channel_id"`
	TimeOfDay     string     `json:"time_of_day"`
	IntervalHours float64    `json:"interval_hours"`
	Lat           float64    `json:"lat"`
	Lon           float64    `json:"lon"`
	IsForecast    bool       `json:"is_forecast"`
	LastFired     *time.Time `json:"last_fired,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// MessageResponse represents a success message
type MessageResponse struct {
	Message string `json:"message"`
}

func newSubscriptionResponse(sub *subscription.Subscription) SubscriptionResponse {
	return SubscriptionResponse{
		ChannelID:     sub.ChannelID,
		TimeOfDay:     sub.TimeOfDay.String(),
		IntervalHours: sub.Interval.Hours(),
		Lat:           sub.Location.Lat,
		Lon:           sub.Location.Lon,
		IsForecast:    sub.IsForecast,
		LastFired:     sub.LastFired,
		CreatedAt:     sub.CreatedAt,
		UpdatedAt:     sub.UpdatedAt,
	}
}

// channelIDParam parses the :channel_id path parameter
func channelIDParam(c *gin.Context) (int64, error) {
	channelID, err := strconv.ParseInt(c.Param("channel_id"), 10, 64)
	if err != nil || channelID <= 0 {
		return 0, errors.NewValidationError("channel_id must be a positive integer")
	}
	return channelID, nil
}

// registerSubscription handles PUT /api/subscriptions/:channel_id requests
func (s *HTTPServerAdapter) registerSubscription(c *gin.Context) {
	channelID, err := channelIDParam(c)
	if err != nil {
		s.handleError(c, err)
		return
	}

	var req SubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Debug("Invalid subscription request", "error", err, "channel_id", channelID)
		s.handleError(c, errors.NewValidationError("invalid subscription request"))
		return
	}

	sub, err := s.subscriptionUseCase.Register(c.Request.Context(), subscription.RegisterParams{
		ChannelID:  channelID,
		TimeOfDay:  req.TimeOfDay,
		Interval:   time.Duration(req.IntervalHours) * time.Hour,
		Lat:        *req.Lat,
		Lon:        *req.Lon,
		IsForecast: req.IsForecast,
	})
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, newSubscriptionResponse(sub))
}

// getSubscription handles GET /api/subscriptions/:channel_id requests
func (s *HTTPServerAdapter) getSubscription(c *gin.Context) {
	channelID, err := channelIDParam(c)
	if err != nil {
		s.handleError(c, err)
		return
	}

	sub, err := s.subscriptionUseCase.Get(c.Request.Context(), channelID)
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, newSubscriptionResponse(sub))
}

// listSubscriptions handles GET /api/subscriptions requests
func (s *HTTPServerAdapter) listSubscriptions(c *gin.Context) {
	subs, err := s.subscriptionUseCase.List(c.Request.Context())
	if err != nil {
		s.handleError(c, err)
		return
	}

	response := make([]SubscriptionResponse, 0, len(subs))
	for _, sub := range subs {
		response = append(response, newSubscriptionResponse(sub))
	}
	c.JSON(http.StatusOK, response)
}

// cancelSubscription handles DELETE /api/subscriptions/:channel_id requests
func (s *HTTPServerAdapter) cancelSubscription(c *gin.Context) {
	channelID, err := channelIDParam(c)
	if err != nil {
		s.handleError(c, err)
		return
	}

	if err := s.subscriptionUseCase.Cancel(c.Request.Context(), channelID); err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Unsubscribed successfully"})
}
