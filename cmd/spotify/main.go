package main

import (
	"context"
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"chartsync/internal/chart"
	"chartsync/internal/config"
	database "chartsync/internal/db"
	"chartsync/internal/pipeline"
	"chartsync/internal/store"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting Spotify Chart Ingestion...")

	cfg := config.Load()
	if cfg.Spotify.ClientID == "" || cfg.Spotify.ClientSecret == "" {
		log.Fatal("Critical: Spotify credentials missing (CHART_SPOTIFY_CLIENT_ID / CHART_SPOTIFY_CLIENT_SECRET)")
	}

	db := database.New(cfg)
	db.AutoMigrate()

	pipeline.RegisterMetrics()
	go func() {
		http.Handle("/metrics", promhttp.Handler())
		log.Printf("📊 Metrics exposed at http://localhost%s/metrics", cfg.Server.MetricsPort)
		log.Fatal(http.ListenAndServe(cfg.Server.MetricsPort, nil))
	}()

	src := chart.NewSpotify(cfg.Spotify.ClientID, cfg.Spotify.ClientSecret, cfg.Spotify.ChartPlaylist)

	runner := pipeline.New(store.New(db.DB), store.MergeNone)
	if err := runner.Run(context.Background(), src); err != nil {
		log.Fatalf("❌ Run aborted: %v", err)
	}
}
