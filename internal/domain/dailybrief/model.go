package dailybrief

import (
	"context"
	"time"
)

// Notification is the daily outfit message sent to the user.
type Notification struct {
	City    string    `json:"city"`
	Weather string    `json:"weather"`
	Outfit  string    `json:"outfit"`
	Emoji   string    `json:"emoji"`
	Reason  string    `json:"reason"`
	SentAt  time.Time `json:"sentAt"`
}

// Publisher delivers notifications.
type Publisher interface {
	Publish(ctx context.Context, n Notification) error
}

// Config wires runtime knobs for the daily brief.
type Config struct {
	DefaultCity string
}
