package main

import (
	"context"
	"fmt"
	"log"

	"github.com/kylasweb/IOC-Spinwheel/internal/config"
	"github.com/kylasweb/IOC-Spinwheel/internal/database"
	"github.com/kylasweb/IOC-Spinwheel/internal/database/postgres"
	"github.com/kylasweb/IOC-Spinwheel/internal/database/sqlite"
	"github.com/kylasweb/IOC-Spinwheel/internal/domain"
)

// Dumps every ledger profile and its win history from the configured database
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()
	var (
		profiles []*domain.Profile
		issued   int
	)

	if cfg.UseSQLite() {
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			log.Fatalf("Failed to open sqlite ledger: %v", err)
		}
		defer db.Close()

		if profiles, err = sqlite.NewPlayerRepository(db).ListProfiles(ctx); err != nil {
			log.Fatalf("Failed to list players: %v", err)
		}
		if issued, err = sqlite.NewCodeRegistry(db).Count(ctx); err != nil {
			log.Printf("Failed to count issued codes: %v", err)
		}
	} else {
		dbPool, err := database.NewPool(ctx, cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer dbPool.Close()

		if profiles, err = postgres.NewPlayerRepository(dbPool).ListProfiles(ctx); err != nil {
			log.Fatalf("Failed to list players: %v", err)
		}
		if err := dbPool.QueryRow(ctx, "SELECT COUNT(*) FROM issued_codes").Scan(&issued); err != nil {
			log.Printf("Failed to count issued codes: %v", err)
		}
	}

	fmt.Println("--- Players ---")
	for _, p := range profiles {
		fmt.Printf("Mobile: %s, Attempts: %d, Droplets: %d, Daily: %d (%s), LastActivity: %s\n",
			p.Mobile, p.Attempts, p.DropletsBalance, p.DailyPlays, p.DailyPlaysDate, p.LastActivity.Format("2006-01-02 15:04:05"))
		for _, rec := range p.History {
			fmt.Printf("  [%s] %s (%s) claim=%q\n", rec.WonAt.Format("2006-01-02 15:04"), rec.Prize.Label, rec.Prize.Category, rec.ClaimCode)
		}
	}

	fmt.Println("\n--- Issued codes ---")
	fmt.Printf("Total: %d\n", issued)
}
