package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"chartsync/internal/chart"
	"chartsync/internal/config"
	database "chartsync/internal/db"
	"chartsync/internal/media"
	"chartsync/internal/pipeline"
	"chartsync/internal/storage"
	"chartsync/internal/store"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting iTunes Top Songs Ingestion (US + VN)...")

	// 1. Setup Configuration
	cfg := config.Load()

	// 2. Initialize Infrastructure
	db := database.New(cfg)
	db.AutoMigrate()
	files := storage.New(cfg)

	// 3. Setup Metrics
	pipeline.RegisterMetrics()
	go func() {
		http.Handle("/metrics", promhttp.Handler())
		log.Printf("📊 Metrics exposed at http://localhost%s/metrics", cfg.Server.MetricsPort)
		log.Fatal(http.ListenAndServe(cfg.Server.MetricsPort, nil))
	}()

	// 4. Media acquisition for this source only: lyrics + audio + offload
	timeout := time.Duration(cfg.Server.TimeoutSeconds) * time.Second
	downloads := media.NewDownloader(cfg.Server.DownloadDir, timeout)
	acquirer := &media.Acquirer{
		Lyrics:    media.NewLyricsClient(cfg.Genius.Token, timeout),
		Downloads: downloads,
	}

	runner := pipeline.New(store.New(db.DB), store.MergeNone).WithMedia(acquirer, files)

	// 5. Run both country editions; one failed feed must not stop the other
	ctx := context.Background()
	for _, country := range []string{"us", "vn"} {
		src := chart.NewITunesFeed(country, timeout)
		if err := runner.Run(ctx, src); err != nil {
			log.Printf("❌ %s run aborted: %v", src.Platform(), err)
		}
	}

	// 6. Remove whatever failed offloads left behind
	downloads.Sweep()
}
