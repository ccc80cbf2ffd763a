// Command migrate manages the careflow database schema.
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"careflow/internal/config"
)

const migrationsSource = "file://db/migrations"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("migrate: load config: %v", err)
	}

	m, err := migrate.New(migrationsSource, cfg.DB.DSN())
	if err != nil {
		log.Fatalf("migrate: open %s: %v", migrationsSource, err)
	}
	defer m.Close()

	if len(os.Args) < 2 {
		usage()
	}

	switch os.Args[1] {
	case "up":
		if err := m.Up(); err != nil && err != migrate.ErrNoChange {
			log.Fatalf("migrate: up: %v", err)
		}
		log.Println("migrate: careflow schema is up to date")

	case "down":
		if err := m.Down(); err != nil && err != migrate.ErrNoChange {
			log.Fatalf("migrate: down: %v", err)
		}
		log.Println("migrate: careflow schema reverted")

	case "steps":
		n := intArg(2, "steps requires a signed count")
		if err := m.Steps(n); err != nil && err != migrate.ErrNoChange {
			log.Fatalf("migrate: steps %d: %v", n, err)
		}
		log.Printf("migrate: applied %d steps", n)

	case "force":
		// Clears a dirty flag left by an interrupted migration.
		v := intArg(2, "force requires a version")
		if err := m.Force(v); err != nil {
			log.Fatalf("migrate: force %d: %v", v, err)
		}
		log.Printf("migrate: forced version %d", v)

	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			log.Fatalf("migrate: version: %v", err)
		}
		fmt.Printf("version: %d, dirty: %v\n", version, dirty)

	default:
		usage()
	}
}

func intArg(pos int, msg string) int {
	if len(os.Args) <= pos {
		log.Fatalf("migrate: %s", msg)
	}
	n, err := strconv.Atoi(os.Args[pos])
	if err != nil {
		log.Fatalf("migrate: %s: %v", msg, err)
	}
	return n
}

func usage() {
	fmt.Println("Usage: migrate [up|down|steps N|force V|version]")
	os.Exit(1)
}
