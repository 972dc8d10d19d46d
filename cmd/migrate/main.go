package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/geocoder89/todohub/internal/config"
	"github.com/geocoder89/todohub/internal/db"
	"github.com/geocoder89/todohub/internal/observability"
)

// usage: migrate [up|down|status|reset|version]
func main() {
	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	cfg, err := config.Parse()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log := observability.NewLogger(cfg.Env)

	ctx, cancel := config.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := db.Migrate(ctx, cfg.DBURL, command); err != nil {
		log.Error("migration failed", "command", command, "err", err)
		os.Exit(1)
	}

	log.Info("migration complete", "command", command)
}
