package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Client wraps the Telegram Bot API with the small surface the game
// needs: a polling loop feeding updates into a channel, plain and
// question messages, and emoji reactions.
type Client struct {
	api              *tgbotapi.BotAPI
	pollTimeout      int
	retryDelay       time.Duration
	questionKeyboard tgbotapi.ReplyKeyboardMarkup
}

// New creates a client, registers the command menu and builds the
// fixed answer keyboard.
func New(token string, pollTimeout int, retryDelay time.Duration) (*Client, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("unable to create bot: %v", err)
	}
	log.Printf("Authorized on account %s", api.Self.UserName)

	c := &Client{
		api:              api,
		pollTimeout:      pollTimeout,
		retryDelay:       retryDelay,
		questionKeyboard: buildQuestionKeyboard(),
	}
	if err := c.setBotCommands(); err != nil {
		return nil, fmt.Errorf("failed to set bot commands: %v", err)
	}
	return c, nil
}

// Poll fetches updates in a loop and forwards them, in arrival order,
// onto the given channel. The offset is advanced only after an update
// has been forwarded, so nothing is skipped if the process dies
// mid-batch. Fetch errors are retried after a fixed delay and are never
// fatal; the loop exits only when ctx is cancelled.
func (c *Client) Poll(ctx context.Context, updates chan<- tgbotapi.Update) {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = c.pollTimeout

	for {
		if ctx.Err() != nil {
			return
		}

		batch, err := c.api.GetUpdates(cfg)
		if err != nil {
			log.Printf("Error getting updates: %v", err)
			select {
			case <-time.After(c.retryDelay):
			case <-ctx.Done():
				return
			}
			continue
		}

		for _, update := range batch {
			select {
			case updates <- update:
			case <-ctx.Done():
				return
			}
			cfg.Offset = update.UpdateID + 1
		}
	}
}

// SendText sends a plain text message
func (c *Client) SendText(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := c.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send message: %v", err)
	}
	return nil
}

// SendQuestion sends a message with the gender answer keyboard attached
func (c *Client) SendQuestion(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = c.questionKeyboard
	if _, err := c.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send question: %v", err)
	}
	return nil
}

// React attaches an emoji reaction to the given message. The library
// predates Bot API 7.0, so the call goes through the raw request path.
func (c *Client) React(chatID int64, messageID int, emoji string) error {
	reaction, err := json.Marshal([]map[string]string{
		{"type": "emoji", "emoji": emoji},
	})
	if err != nil {
		return fmt.Errorf("failed to marshal reaction: %v", err)
	}

	params := tgbotapi.Params{
		"chat_id":    strconv.FormatInt(chatID, 10),
		"message_id": strconv.Itoa(messageID),
		"reaction":   string(reaction),
	}
	if _, err := c.api.MakeRequest("setMessageReaction", params); err != nil {
		return fmt.Errorf("failed to send reaction: %v", err)
	}
	return nil
}

// setBotCommands registers the command menu shown by Telegram clients
func (c *Client) setBotCommands() error {
	commands := tgbotapi.NewSetMyCommands(
		tgbotapi.BotCommand{Command: "start", Description: "Play the game"},
		tgbotapi.BotCommand{Command: "stop", Description: "Stop the game"},
		tgbotapi.BotCommand{Command: "help", Description: "Show help information"},
		tgbotapi.BotCommand{Command: "stats", Description: "Show your statistics"},
	)
	_, err := c.api.Request(commands)
	return err
}

// buildQuestionKeyboard builds the one-row keyboard with the three
// gender classes.
func buildQuestionKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("Masculine"),
			tgbotapi.NewKeyboardButton("Feminine"),
			tgbotapi.NewKeyboardButton("Any"),
		),
	)
}
