package external

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"weathernotify.app/internal/ports"
	"weathernotify.app/pkg/errors"
)

const defaultDiscordURL = "https://discord.com/api/v10"

// DiscordNotifierAdapter implements Notifier port by posting one embed per
// notification through the Discord REST API
type DiscordNotifierAdapter struct {
	token   string
	baseURL string
	client  HTTPClient
	circuit *gobreaker.CircuitBreaker
	logger  ports.Logger
}

// DiscordNotifierParams holds parameters for creating the Discord notifier
type DiscordNotifierParams struct {
	Token   string
	BaseURL string
	Timeout time.Duration
	Client  HTTPClient
	Logger  ports.Logger
}

type discordMessage struct {
	Embeds []discordEmbed `json:"embeds"`
}

type discordEmbed struct {
	Title       string              `json:"title"`
	Description string              `json:"description,omitempty"`
	Thumbnail   *discordURL         `json:"thumbnail,omitempty"`
	Fields      []discordEmbedField `json:"fields,omitempty"`
	Footer      *discordFooter      `json:"footer,omitempty"`
}

type discordURL struct {
	URL string `json:"url"`
}

type discordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type discordFooter struct {
	Text    string `json:"text"`
	IconURL string `json:"icon_url,omitempty"`
}

// NewDiscordNotifierAdapter creates a new Discord notifier
func NewDiscordNotifierAdapter(params DiscordNotifierParams) *DiscordNotifierAdapter {
	baseURL := params.BaseURL
	if baseURL == "" {
		baseURL = defaultDiscordURL
	}

	timeout := params.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := params.Client
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}

	return &DiscordNotifierAdapter{
		token:   params.Token,
		baseURL: baseURL,
		client:  client,
		circuit: newCircuitBreaker("discord"),
		logger:  params.Logger,
	}
}

// Notify posts the message to the channel. Failed posts are not retried here;
// the next tick retries the delivery.
func (n *DiscordNotifierAdapter) Notify(ctx context.Context, notification ports.Notification) error {
	if notification.ChannelID <= 0 {
		return errors.NewValidationError("channel id must be positive")
	}

	body, err := json.Marshal(discordMessage{Embeds: []discordEmbed{toEmbed(notification.Message)}})
	if err != nil {
		return errors.NewDeliveryError("failed to encode Discord message", err)
	}

	endpoint := fmt.Sprintf("%s/channels/%d/messages", n.baseURL, notification.ChannelID)
	noRetry := BackoffConfig{MaxRetries: 0, InitialInterval: time.Second}

	resp, err := doRequestWithResilience(ctx, n.client, noRetry, n.circuit, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bot "+n.token)
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	})
	if err != nil {
		var status *statusError
		if stderrors.As(err, &status) {
			return errors.NewDeliveryError(fmt.Sprintf("Discord returned status %d", status.code), err)
		}
		return errors.NewDeliveryError("failed to call Discord", err)
	}
	drainAndClose(resp)

	n.logger.Debug("Discord message posted",
		ports.F("channel_id", notification.ChannelID),
		ports.F("title", notification.Message.Title))
	return nil
}

// GetNotifierName returns the name of this notifier
func (n *DiscordNotifierAdapter) GetNotifierName() string {
	return "discord"
}

func toEmbed(message ports.Message) discordEmbed {
	embed := discordEmbed{
		Title:       message.Title,
		Description: message.Description,
	}
	if message.ThumbnailURL != "" {
		embed.Thumbnail = &discordURL{URL: message.ThumbnailURL}
	}
	for _, field := range message.Fields {
		embed.Fields = append(embed.Fields, discordEmbedField{
			Name:   field.Name,
			Value:  field.Value,
			Inline: field.Inline,
		})
	}
	if message.Footer != "" {
		embed.Footer = &discordFooter{Text: message.Footer, IconURL: message.FooterIcon}
	}
	return embed
}

// LogNotifierAdapter writes notifications to the log instead of delivering them
type LogNotifierAdapter struct {
	logger ports.Logger
}

// NewLogNotifierAdapter creates a dry-run notifier
func NewLogNotifierAdapter(logger ports.Logger) *LogNotifierAdapter {
	return &LogNotifierAdapter{logger: logger}
}

// Notify logs the rendered message
func (n *LogNotifierAdapter) Notify(ctx context.Context, notification ports.Notification) error {
	if err := ctx.Err(); err != nil {
		return errors.NewDeliveryError("notification cancelled", err)
	}

	fields := []ports.Field{
		ports.F("channel_id", notification.ChannelID),
		ports.F("title", notification.Message.Title),
		ports.F("description", notification.Message.Description),
		ports.F("thumbnail", notification.Message.ThumbnailURL),
	}
	for _, field := range notification.Message.Fields {
		fields = append(fields, ports.F(field.Name, field.Value))
	}
	n.logger.Info("Weather notification", fields...)
	return nil
}

// GetNotifierName returns the name of this notifier
func (n *LogNotifierAdapter) GetNotifierName() string {
	return "log"
}
