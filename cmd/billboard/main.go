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
	"chartsync/internal/pipeline"
	"chartsync/internal/store"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting Billboard Hot 100 Ingestion...")

	// 1. Setup Configuration
	cfg := config.Load()

	// 2. Initialize Infrastructure
	db := database.New(cfg)
	db.AutoMigrate()

	// 3. Setup Metrics
	pipeline.RegisterMetrics()
	go func() {
		http.Handle("/metrics", promhttp.Handler())
		log.Printf("📊 Metrics exposed at http://localhost%s/metrics", cfg.Server.MetricsPort)
		log.Fatal(http.ListenAndServe(cfg.Server.MetricsPort, nil))
	}()

	// 4. Run
	timeout := time.Duration(cfg.Server.TimeoutSeconds) * time.Second
	src := chart.NewBillboard(timeout)

	// The scraped chart is the one source that backfills missing artwork.
	runner := pipeline.New(store.New(db.DB), store.MergeFillIfMissing)
	if err := runner.Run(context.Background(), src); err != nil {
		log.Fatalf("❌ Run aborted: %v", err)
	}
}
