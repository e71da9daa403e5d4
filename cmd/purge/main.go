package main

import (
	"log"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"stockadvisor/db"
	"stockadvisor/internal/repository"
)

// One-shot retention sweep: deletes analysis rows older than
// RETENTION_DAYS (default 30). Meant to run from cron.
func main() {
	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	days := 30
	if v := os.Getenv("RETENTION_DAYS"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			log.Fatalf("invalid RETENTION_DAYS: %q", v)
		}
		days = parsed
	}

	if err := db.Connect(); err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	stockRepo := repository.NewStockRepository(db.DB)

	count, err := stockRepo.PurgeOlderThan(time.Duration(days) * 24 * time.Hour)
	if err != nil {
		log.Fatalf("error purging old analyses: %v", err)
	}

	slog.Info("purged old analysis rows", "count", count, "retention_days", days)
}
