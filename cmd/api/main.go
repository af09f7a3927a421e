package main

import (
	"log"

	"chartsync/internal/api"
	"chartsync/internal/config"
	database "chartsync/internal/db"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting Chart API Server...")

	cfg := config.Load()

	db := database.New(cfg)
	db.AutoMigrate()

	server := api.New(db)

	log.Printf("🎧 API listening on %s", cfg.Server.APIPort)
	if err := server.Start(cfg.Server.APIPort); err != nil {
		log.Fatalf("API server failed: %v", err)
	}
}
