package bot

import (
	"context"
	"log"
	"math/rand"
	"time"

	"github.com/example/genderbot/pkg/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// playerRepository is the player persistence surface the engine needs
type playerRepository interface {
	GetOrCreate(telegramID int64) (*models.Player, error)
}

// nounRepository is the vocabulary persistence surface the engine needs
type nounRepository interface {
	GetByID(id int64) (*models.Noun, error)
	GetRandom() (*models.Noun, error)
}

// attemptRepository is the attempt persistence surface the engine needs
type attemptRepository interface {
	GetOpenForPlayer(playerID int64) (*models.Attempt, error)
	Create(playerID, nounID int64) (int64, error)
	Close(id int64, correct bool) error
	Delete(id int64) error
}

// sender is the outbound side of the chat transport
type sender interface {
	SendText(chatID int64, text string) error
	SendQuestion(chatID int64, text string) error
	React(chatID int64, messageID int, emoji string) error
}

// Bot is the session engine. It consumes inbound updates one at a
// time, derives the player's game state from storage and applies the
// matching transition. Processing is strictly sequential, so there is
// never more than one state transition in flight.
type Bot struct {
	players  playerRepository
	nouns    nounRepository
	attempts attemptRepository
	sender   sender
	rand     *rand.Rand
}

// New creates a bot wired to the given repositories and transport
func New(players playerRepository, nouns nounRepository, attempts attemptRepository, sender sender) *Bot {
	return &Bot{
		players:  players,
		nouns:    nouns,
		attempts: attempts,
		sender:   sender,
		rand:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run consumes updates until the context is cancelled or the channel
// is closed. An error while processing one update is logged and
// confined to that update; the loop keeps its place in the stream.
func (b *Bot) Run(ctx context.Context, updates <-chan tgbotapi.Update) {
	for {
		select {
		case <-ctx.Done():
			log.Println("Stopping update loop...")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if err := b.handleUpdate(update); err != nil {
				log.Printf("Error handling update %d: %v", update.UpdateID, err)
			}
		}
	}
}

// handleUpdate runs one turn of the state machine
func (b *Bot) handleUpdate(update tgbotapi.Update) error {
	message := update.Message
	if message == nil || message.From == nil || message.Text == "" {
		return nil
	}

	// Player bootstrap runs on every branch, so the whole machine is
	// idempotent with respect to first contact.
	player, err := b.players.GetOrCreate(message.From.ID)
	if err != nil {
		return err
	}

	chatID := message.Chat.ID
	switch message.Text {
	case "/start":
		return b.handleStart(player, chatID)
	case "/stop":
		return b.handleStop(player, chatID)
	case "/help":
		return b.handleHelp(chatID)
	case "/stats":
		return b.handleStats(chatID)
	default:
		return b.handleAnswer(player, chatID, message.MessageID, message.Text)
	}
}
