// Command main runs the database seeder for TaskQuest.
package main

import (
	"flag"
	"log"

	"taskquest/internal/config"
	"taskquest/internal/database"
	"taskquest/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 25, "Number of demo users to create")
	numTasks := flag.Int("tasks", 100, "Number of demo tasks to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")
	log.Printf("Target: %d users, %d tasks, clean=%v\n", *numUsers, *numTasks, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Seed(db, seed.Options{
		NumUsers:    *numUsers,
		NumTasks:    *numTasks,
		ShouldClean: *shouldClean,
	}); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}
}
