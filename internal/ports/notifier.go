package ports

import "context"

// MessageField is one labelled value of a notification message
type MessageField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// Message is the rendered body of a weather notification
type Message struct {
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	ThumbnailURL string         `json:"thumbnail_url,omitempty"`
	Fields       []MessageField `json:"fields"`
	Footer       string         `json:"footer"`
	FooterIcon   string         `json:"footer_icon,omitempty"`
}

// Notification addresses a message to a chat channel
type Notification struct {
	ChannelID int64
	Message   Message
}

// Notifier pushes notifications and reports the outcome synchronously
type Notifier interface {
	Notify(ctx context.Context, notification Notification) error
	GetNotifierName() string
}
