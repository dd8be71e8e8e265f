package bot

import (
	"time"
)

// BotConfig represents the configuration for the bot
type BotConfig struct {
	// Long-poll timeout passed to getUpdates
	PollTimeout int
	// Delay before retrying a failed update fetch
	RetryDelay time.Duration
	// Buffer size of the inbound update channel
	UpdateBuffer int
	// Age after which an unanswered question triggers a reminder
	ReminderAge time.Duration
}

// DefaultConfig returns the default bot configuration
func DefaultConfig() *BotConfig {
	return &BotConfig{
		PollTimeout:  10,
		RetryDelay:   5 * time.Second,
		UpdateBuffer: 100,
		ReminderAge:  6 * time.Hour,
	}
}
