// Command migrate runs schema operations for the server database.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"shareit/internal/config"
	"shareit/internal/database"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func usage() error {
	return fmt.Errorf("usage: go run ./cmd/migrate <up|down|status|version> [-dir migrations]")
}

func run() error {
	dir := flag.String("dir", "migrations", "Directory with migration files")
	flag.Parse()
	if flag.NArg() < 1 {
		return usage()
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	mg, err := database.NewMigrator(cfg, *dir)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	defer mg.Close()

	ctx := context.Background()
	cmd := strings.ToLower(strings.TrimSpace(flag.Arg(0)))
	switch cmd {
	case "up":
		if err := mg.Up(ctx); err != nil {
			return err
		}
		log.Println("migrations applied")
	case "down":
		if err := mg.Down(ctx); err != nil {
			return err
		}
		log.Println("rolled back one migration")
	case "status":
		return mg.Status(ctx)
	case "version":
		version, err := mg.Version(ctx)
		if err != nil {
			return err
		}
		log.Printf("current version: %d", version)
	default:
		return usage()
	}

	return nil
}
