// Command seed populates the database with sample data.
package main

import (
	"flag"
	"log"

	"shareit/internal/config"
	"shareit/internal/database"
	"shareit/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 25, "Number of users to create")
	numItems := flag.Int("items", 60, "Number of items to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	preset := flag.String("preset", "", "Apply a YAML preset file instead of random data")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if *preset != "" {
		p, err := seed.LoadPreset(*preset)
		if err != nil {
			log.Fatalf("❌ Preset load failed: %v", err)
		}
		if err := p.Apply(db); err != nil {
			log.Fatalf("❌ Preset seeding failed: %v", err)
		}
		log.Println("✨ Preset applied.")
		return
	}

	s := seed.NewSeeder(db)
	if err := s.Seed(seed.Options{
		NumUsers:    *numUsers,
		NumItems:    *numItems,
		ShouldClean: *shouldClean,
	}); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Println("✨ All done! Your database is now populated with test data.")
}
