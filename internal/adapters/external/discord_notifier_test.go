package external

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weathernotify.app/internal/ports"
	"weathernotify.app/pkg/errors"
)

var (
	_ ports.Notifier = (*DiscordNotifierAdapter)(nil)
	_ ports.Notifier = (*LogNotifierAdapter)(nil)
)

func sampleNotification() ports.Notification {
	return ports.Notification{
		ChannelID: 1234567890,
		Message: ports.Message{
			Title:        "Tokyo",
			Description:  "現在09時00分時点でのお天気は晴天です。",
			ThumbnailURL: "https://openweathermap.org/img/wn/01d@4x.png",
			Fields: []ports.MessageField{
				{Name: "気温", Value: "21.5°C", Inline: true},
				{Name: "湿度", Value: "40%", Inline: true},
			},
			Footer:     "OpenWeatherを参照しています。",
			FooterIcon: "https://example.test/icon.png",
		},
	}
}

func TestDiscordNotifier_Notify_PostsEmbed(t *testing.T) {
	var received map[string]interface{}
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/channels/1234567890/messages", r.URL.Path)
		assert.Equal(t, "Bot secret-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.NoError(t, json.Unmarshal(body, &received))

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id": "1"}`))
	}))
	defer mockServer.Close()

	notifier := NewDiscordNotifierAdapter(DiscordNotifierParams{
		Token:   "secret-token",
		BaseURL: mockServer.URL,
		Logger:  setupLoggerMock(t),
	})

	err := notifier.Notify(context.Background(), sampleNotification())

	require.NoError(t, err)
	embeds, ok := received["embeds"].([]interface{})
	require.True(t, ok)
	require.Len(t, embeds, 1)

	embed := embeds[0].(map[string]interface{})
	assert.Equal(t, "Tokyo", embed["title"])
	assert.Equal(t, "現在09時00分時点でのお天気は晴天です。", embed["description"])
	assert.Equal(t, "https://openweathermap.org/img/wn/01d@4x.png", embed["thumbnail"].(map[string]interface{})["url"])
	fields := embed["fields"].([]interface{})
	require.Len(t, fields, 2)
	assert.Equal(t, "気温", fields[0].(map[string]interface{})["name"])
	assert.Equal(t, true, fields[0].(map[string]interface{})["inline"])
	footer := embed["footer"].(map[string]interface{})
	assert.Equal(t, "OpenWeatherを参照しています。", footer["text"])
	assert.Equal(t, "https://example.test/icon.png", footer["icon_url"])
}

func TestDiscordNotifier_Notify_OmitsEmptyThumbnail(t *testing.T) {
	var received map[string]interface{}
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer mockServer.Close()

	notifier := NewDiscordNotifierAdapter(DiscordNotifierParams{Token: "t", BaseURL: mockServer.URL, Logger: setupLoggerMock(t)})

	notification := sampleNotification()
	notification.Message.ThumbnailURL = ""
	require.NoError(t, notifier.Notify(context.Background(), notification))

	embed := received["embeds"].([]interface{})[0].(map[string]interface{})
	assert.NotContains(t, embed, "thumbnail")
}

func TestDiscordNotifier_Notify_Failures(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		wantMessage string
	}{
		{name: "forbidden", status: http.StatusForbidden, wantMessage: "Discord returned status 403"},
		{name: "server error", status: http.StatusBadGateway, wantMessage: "failed to call Discord"},
		{name: "rate limited", status: http.StatusTooManyRequests, wantMessage: "failed to call Discord"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls++
				w.WriteHeader(tt.status)
			}))
			defer mockServer.Close()

			notifier := NewDiscordNotifierAdapter(DiscordNotifierParams{Token: "t", BaseURL: mockServer.URL, Logger: setupLoggerMock(t)})

			err := notifier.Notify(context.Background(), sampleNotification())

			require.Error(t, err)
			var appErr *errors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, errors.DeliveryError, appErr.Type)
			assert.Contains(t, appErr.Message, tt.wantMessage)
			assert.Equal(t, 1, calls, "posts are not retried")
		})
	}
}

func TestDiscordNotifier_Notify_InvalidChannel(t *testing.T) {
	notifier := NewDiscordNotifierAdapter(DiscordNotifierParams{Token: "t", Logger: setupLoggerMock(t)})

	notification := sampleNotification()
	notification.ChannelID = 0

	assert.True(t, errors.IsValidationError(notifier.Notify(context.Background(), notification)))
	assert.Equal(t, "discord", notifier.GetNotifierName())
}

func TestLogNotifier_Notify(t *testing.T) {
	testLogger := &testLogger{}
	notifier := NewLogNotifierAdapter(testLogger)

	require.NoError(t, notifier.Notify(context.Background(), sampleNotification()))

	require.Len(t, testLogger.entries, 1)
	entry := testLogger.entries[0]
	assert.Equal(t, "INFO", entry.level)
	assert.Equal(t, int64(1234567890), entry.fields["channel_id"])
	assert.Equal(t, "Tokyo", entry.fields["title"])
	assert.Equal(t, "21.5°C", entry.fields["気温"])
	assert.Equal(t, "log", notifier.GetNotifierName())
}

func TestLogNotifier_Notify_CancelledContext(t *testing.T) {
	notifier := NewLogNotifierAdapter(&testLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.True(t, errors.IsDeliveryError(notifier.Notify(ctx, sampleNotification())))
}
