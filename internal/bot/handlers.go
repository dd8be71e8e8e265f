package bot

import (
	"fmt"
	"log"

	"github.com/example/genderbot/pkg/models"
)

const welcomeText = "Welcome to 'El la la' game.\n\n" +
	"Your knowledge on Spanish nouns' gender is going to be tested.\n" +
	"Type /help for further information."

const stopText = "Stopping the game for now.\n" +
	"Send /help for further information"

const helpText = "/start -> Play the game\n" +
	"/stop -> Stop the game\n" +
	"/stats -> Check your current playing statistics"

var positiveReactions = []string{"👍", "👌", "🔥", "👏", "💯", "🏆"}

const negativeReaction = "💩"

// handleStart greets the player and asks the first question. Any
// abandoned open question is discarded inside askNext.
func (b *Bot) handleStart(player *models.Player, chatID int64) error {
	if err := b.sender.SendText(chatID, welcomeText); err != nil {
		log.Printf("Error sending welcome to chat %d: %v", chatID, err)
	}
	return b.askNext(player, chatID)
}

// handleStop discards the open question, if any, and acknowledges
func (b *Bot) handleStop(player *models.Player, chatID int64) error {
	log.Printf("Stopping the game for player %d", player.TelegramID)
	if err := b.discardOpenAttempt(player); err != nil {
		return err
	}
	if err := b.sender.SendText(chatID, stopText); err != nil {
		log.Printf("Error sending stop ack to chat %d: %v", chatID, err)
	}
	return nil
}

func (b *Bot) handleHelp(chatID int64) error {
	if err := b.sender.SendText(chatID, helpText); err != nil {
		log.Printf("Error sending help to chat %d: %v", chatID, err)
	}
	return nil
}

func (b *Bot) handleStats(chatID int64) error {
	// TODO: real statistics once their scope is decided; closed
	// attempts are already retained for it.
	if err := b.sender.SendText(chatID, "Coming soon"); err != nil {
		log.Printf("Error sending stats to chat %d: %v", chatID, err)
	}
	return nil
}

// handleAnswer grades free text against the player's open question,
// reacts, and asks the next one. Free text without an open question is
// ignored: the player isn't in a game.
func (b *Bot) handleAnswer(player *models.Player, chatID int64, messageID int, text string) error {
	attempt, err := b.attempts.GetOpenForPlayer(player.ID)
	if err != nil {
		return err
	}
	if attempt == nil {
		log.Printf("No active question for player %d, ignoring %q", player.TelegramID, text)
		return nil
	}

	noun, err := b.nouns.GetByID(attempt.NounID)
	if err != nil {
		return err
	}

	result := models.Grade(text, noun.Gender)
	// Persist the grade before any feedback: a failed reaction must
	// never undo or repeat a grading decision.
	if err := b.attempts.Close(attempt.ID, result == models.Correct); err != nil {
		return err
	}

	emoji := negativeReaction
	if result == models.Correct {
		emoji = positiveReactions[b.rand.Intn(len(positiveReactions))]
	}
	if err := b.sender.React(chatID, messageID, emoji); err != nil {
		log.Printf("Error reacting in chat %d: %v", chatID, err)
	}

	return b.askNext(player, chatID)
}

// askNext draws a random noun, opens an attempt for it and sends the
// question. Discarding first keeps at most one open attempt per player
// even if the previous question was abandoned.
func (b *Bot) askNext(player *models.Player, chatID int64) error {
	if err := b.discardOpenAttempt(player); err != nil {
		return err
	}

	noun, err := b.nouns.GetRandom()
	if err != nil {
		return err
	}

	if _, err := b.attempts.Create(player.ID, noun.ID); err != nil {
		return err
	}

	question := fmt.Sprintf("What's the gender of '%s' (%s)?", noun.Spanish, noun.English)
	if err := b.sender.SendQuestion(chatID, question); err != nil {
		log.Printf("Error sending question to chat %d: %v", chatID, err)
	}
	return nil
}

// discardOpenAttempt deletes the player's open attempt, if any
func (b *Bot) discardOpenAttempt(player *models.Player) error {
	attempt, err := b.attempts.GetOpenForPlayer(player.ID)
	if err != nil {
		return err
	}
	if attempt == nil {
		return nil
	}
	return b.attempts.Delete(attempt.ID)
}

// SendReminder implements the scheduler.Notifier interface. For
// private chats the chat ID equals the Telegram user ID.
func (b *Bot) SendReminder(telegramID int64) error {
	text := "You still have an unanswered question! Answer it or send /start for a fresh one."
	return b.sender.SendText(telegramID, text)
}
