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
	log.Println("Starting ZingMP3 Chart Ingestion...")

	cfg := config.Load()
	db := database.New(cfg)
	db.AutoMigrate()

	pipeline.RegisterMetrics()
	go func() {
		http.Handle("/metrics", promhttp.Handler())
		log.Printf("📊 Metrics exposed at http://localhost%s/metrics", cfg.Server.MetricsPort)
		log.Fatal(http.ListenAndServe(cfg.Server.MetricsPort, nil))
	}()

	timeout := time.Duration(cfg.Server.TimeoutSeconds) * time.Second
	src := chart.NewZing(timeout)

	runner := pipeline.New(store.New(db.DB), store.MergeNone)
	if err := runner.Run(context.Background(), src); err != nil {
		log.Fatalf("❌ Run aborted: %v", err)
	}
}
