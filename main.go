package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/example/genderbot/internal/bot"
	"github.com/example/genderbot/internal/database"
	"github.com/example/genderbot/internal/excel"
	"github.com/example/genderbot/internal/scheduler"
	"github.com/example/genderbot/internal/telegram"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	importFile := flag.String("import", "", "seed nouns from an .xlsx or .csv file before starting")
	flag.Parse()

	if err := database.Connect(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	if *importFile != "" {
		result, err := excel.ImportNouns(excel.DefaultImportConfig(*importFile))
		if err != nil {
			log.Fatalf("Failed to import nouns: %v", err)
		}
		log.Printf("Imported nouns: %d created, %d skipped of %d rows",
			result.Created, result.Skipped, result.TotalProcessed)
		for _, msg := range result.Errors {
			log.Printf("Import error: %s", msg)
		}
	}

	nounRepo := database.NewNounRepository()
	if count, err := nounRepo.Count(); err != nil {
		log.Fatalf("Failed to count nouns: %v", err)
	} else if count == 0 {
		log.Println("Warning: no nouns in the database, seed them with -import")
	}

	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN environment variable is not set")
	}

	config := bot.DefaultConfig()
	client, err := telegram.New(token, config.PollTimeout, config.RetryDelay)
	if err != nil {
		log.Fatalf("Failed to create Telegram client: %v", err)
	}

	b := bot.New(database.NewPlayerRepository(), nounRepo, database.NewAttemptRepository(), client)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	updates := make(chan tgbotapi.Update, config.UpdateBuffer)
	go client.Poll(ctx, updates)

	sched := scheduler.New(b, database.NewAttemptRepository(), config.ReminderAge)
	sched.Start()

	done := make(chan struct{})
	go func() {
		b.Run(ctx, updates)
		close(done)
	}()

	log.Println("Bot started. Press Ctrl+C to stop.")
	sig := <-sigChan
	log.Printf("Received signal: %v", sig)

	cancel()
	sched.Stop()
	<-done
	log.Println("Bot stopped")
}
