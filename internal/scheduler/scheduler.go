package scheduler

import (
	"log"
	"time"

	"github.com/example/genderbot/pkg/models"
	"github.com/go-co-op/gocron"
)

// Notifier interface for sending reminders
type Notifier interface {
	SendReminder(telegramID int64) error
}

// attemptRepository is the persistence surface the scheduler needs
type attemptRepository interface {
	StalePlayers(cutoff time.Time) ([]models.Player, error)
}

// Scheduler nudges players who left a question unanswered for too
// long. It only sends messages; attempt state is never touched here.
type Scheduler struct {
	scheduler *gocron.Scheduler
	notifier  Notifier
	attempts  attemptRepository
	staleAge  time.Duration
}

// New creates a new scheduler instance
func New(notifier Notifier, attempts attemptRepository, staleAge time.Duration) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		notifier:  notifier,
		attempts:  attempts,
		staleAge:  staleAge,
	}
}

// Start begins running all scheduled tasks
func (s *Scheduler) Start() {
	s.scheduler.Every(1).Hour().Do(s.checkAndSendReminders)
	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// checkAndSendReminders finds players with a stale open question and
// sends each one a reminder.
func (s *Scheduler) checkAndSendReminders() {
	cutoff := time.Now().Add(-s.staleAge)
	players, err := s.attempts.StalePlayers(cutoff)
	if err != nil {
		log.Printf("Error getting players for reminders: %v", err)
		return
	}

	for _, player := range players {
		if err := s.notifier.SendReminder(player.TelegramID); err != nil {
			log.Printf("Error sending reminder to player %d: %v", player.TelegramID, err)
		}
	}
}
