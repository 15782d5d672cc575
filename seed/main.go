package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/prophesy-fun/prophesy_api/model"
	"github.com/prophesy-fun/prophesy_api/seed/seeders"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found, using system environment variables")
	}

	var (
		seedType = flag.String("type", "all", "Type of seeding: all, users, tweets")
		dbPath   = flag.String("db", "", "Sqlite database path (overrides DB_DATABASE env var)")
		help     = flag.Bool("help", false, "Show help message")
	)
	flag.Parse()

	if *help {
		showHelp()
		return
	}

	db, err := openDatabase(*dbPath)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(model.All()...); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	mainSeeder := seeders.NewMainSeeder(db)

	switch *seedType {
	case "all":
		log.Info("Running complete database seeding...")
		err = mainSeeder.SeedAll()
	case "users":
		log.Info("Seeding users only...")
		err = mainSeeder.SeedUsersOnly()
	case "tweets":
		log.Info("Seeding tweets only...")
		err = mainSeeder.SeedTweetsOnly()
	default:
		log.Fatalf("Unknown seed type: %s. Use 'all', 'users' or 'tweets'", *seedType)
	}
	if err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	log.Info("Seeding operation completed successfully!")
}

// openDatabase prefers DATABASE_URL (postgres) unless a sqlite path is
// given on the command line.
func openDatabase(dbPath string) (*gorm.DB, error) {
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)}

	if dsn := os.Getenv("DATABASE_URL"); dsn != "" && dbPath == "" {
		log.Info("Connecting to postgres from DATABASE_URL")
		return gorm.Open(postgres.Open(dsn), cfg)
	}

	if dbPath == "" {
		dbPath = os.Getenv("DB_DATABASE")
	}
	if dbPath == "" {
		dbPath = "prophesy.db"
	}
	log.WithField("path", dbPath).Info("Connecting to sqlite")
	return gorm.Open(sqlite.Open(dbPath), cfg)
}

func showHelp() {
	fmt.Println(`
Database Seeding Tool

Usage: go run ./seed [flags]

Flags:
  -type string
        Type of seeding to perform (default "all")
        Options: all, users, tweets
  -db string
        Sqlite database path (overrides DB_DATABASE environment variable)
  -help
        Show this help message

Examples:
  # Seed everything into the local sqlite database
  go run ./seed

  # Seed only users into postgres
  DATABASE_URL=postgres://... go run ./seed -type=users

Environment Variables:
  DATABASE_URL - Postgres connection string
  DB_DATABASE  - Sqlite database path (default: prophesy.db)`)
}
