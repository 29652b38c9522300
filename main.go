package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"ordersbot/bot"
	"ordersbot/config"
	"ordersbot/database"
	"ordersbot/states"
	"ordersbot/telegram"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf(".env not found, using system environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Printf("close database: %v", err)
		}
	}()

	resolver := config.NewResolver(cfg.AdminsFile)
	if err := resolver.Reload(); err != nil {
		log.Fatalf("admin allowlist: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go resolver.Watch(ctx, cfg.AdminsReload)

	router := bot.NewRouter(database.NewStore(db), states.NewTracker(), resolver)

	adapter, err := telegram.New(cfg.BotToken, router, cfg.UpdateTimeout, cfg.TransportDebug)
	if err != nil {
		log.Fatalf("telegram: %v", err)
	}

	adapter.Run(ctx)
	log.Println("Shutting down")
}
