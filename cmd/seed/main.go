// Command main populates the database with demo users and sighting records.
package main

import (
	"flag"
	"log"

	"birdlog/internal/config"
	"birdlog/internal/database"
	"birdlog/internal/seed"

	"github.com/joho/godotenv"
)

func main() {
	numUsers := flag.Int("users", 20, "Number of users to create")
	numNotes := flag.Int("notes", 100, "Number of sighting records to create")
	maxDays := flag.Int("days", 90, "Spread records over this many past days")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db)

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	behaviours, err := s.SeedBehaviours()
	if err != nil {
		log.Fatalf("Behaviour seeding failed: %v", err)
	}

	users, err := s.SeedUsers(*numUsers)
	if err != nil {
		log.Fatalf("User seeding failed: %v", err)
	}

	if err := s.SeedNotes(users, behaviours, *numNotes, *maxDays); err != nil {
		log.Fatalf("Record seeding failed: %v", err)
	}

	log.Printf("Done. All demo accounts use the password %q.", seed.DemoPassword)
}
