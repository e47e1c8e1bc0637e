package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"

	"forge/internal/shared/config"
)

const usage = `Forge Admin CLI - Management commands for the Forge API

Usage:
  admin <command> [options]

Commands:
  migrate-up       Apply all pending database migrations
  migrate-down     Roll back migrations
  migrate-version  Print the current migration version

Examples:
  # Apply all pending migrations
  admin migrate-up

  # Roll back the most recent migration
  admin migrate-down --steps=1

  # Roll back everything
  admin migrate-down --all

  # Show the current schema version
  admin migrate-version
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "migrate-up":
		runMigrateUp(os.Args[2:])
	case "migrate-down":
		runMigrateDown(os.Args[2:])
	case "migrate-version":
		runMigrateVersion(os.Args[2:])
	case "help", "-h", "--help":
		fmt.Print(usage)
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		fmt.Print(usage)
		os.Exit(1)
	}
}

func newMigrator(sourcePath string) *migrate.Migrate {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	m, err := migrate.New("file://"+sourcePath, cfg.Database.URL())
	if err != nil {
		log.Fatalf("Failed to initialize migrator: %v", err)
	}
	return m
}

func runMigrateUp(args []string) {
	fs := flag.NewFlagSet("migrate-up", flag.ExitOnError)
	source := fs.String("source", "migrations", "Path to the migrations directory")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	m := newMigrator(*source)
	defer m.Close()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Println("No pending migrations")
			return
		}
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Migrations applied")
}

func runMigrateDown(args []string) {
	fs := flag.NewFlagSet("migrate-down", flag.ExitOnError)
	source := fs.String("source", "migrations", "Path to the migrations directory")
	steps := fs.Int("steps", 1, "Number of migrations to roll back")
	all := fs.Bool("all", false, "Roll back all migrations")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	m := newMigrator(*source)
	defer m.Close()

	var err error
	if *all {
		err = m.Down()
	} else {
		err = m.Steps(-*steps)
	}
	if err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Println("Nothing to roll back")
			return
		}
		log.Fatalf("Rollback failed: %v", err)
	}
	log.Println("Rollback complete")
}

func runMigrateVersion(args []string) {
	fs := flag.NewFlagSet("migrate-version", flag.ExitOnError)
	source := fs.String("source", "migrations", "Path to the migrations directory")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	m := newMigrator(*source)
	defer m.Close()

	version, dirty, err := m.Version()
	if err != nil {
		if errors.Is(err, migrate.ErrNilVersion) {
			log.Println("No migrations applied yet")
			return
		}
		log.Fatalf("Failed to read version: %v", err)
	}
	log.Printf("Version %d (dirty: %v)", version, dirty)
}
