// cmd/purge-checked runs the checked-submission retention purge once and
// exits. Meant to be scheduled (cron) alongside the API.
package main

import (
	"flag"
	"log"

	"homework-tracker-api/config"
	"homework-tracker-api/models"
	"homework-tracker-api/services"

	"github.com/joho/godotenv"
)

func main() {
	months := flag.Int("months", services.DefaultRetentionMonths, "retention window in calendar months")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config.InitDB()

	if err := config.DB.AutoMigrate(&models.StorageRecord{}); err != nil {
		log.Fatal("Failed to migrate storage_records table:", err)
	}

	store := services.NewGormStore(config.DB)
	checked := services.NewCheckedSubmissionService(store, services.NewNotifier())

	removed := checked.PurgeOlderThan(*months)
	log.Printf("Purged %d checked submission(s) older than %d month(s)", removed, *months)
}
