package main

import (
	"errors"
	"flag"
	"fmt"
	"log"

	"loan-tracker/internal/config"
	"loan-tracker/migrations"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
)

func main() {
	cmd := flag.String("cmd", "up", "up | down | steps | version | force")
	n := flag.Int("n", 0, "step count for -cmd=steps, version for -cmd=force")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	dbURL, err := cfg.MigrateURL()
	if err != nil {
		log.Fatal(err)
	}
	src, err := migrations.Source(cfg.DBDriver)
	if err != nil {
		log.Fatal(err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, dbURL)
	if err != nil {
		log.Fatalf("migrate: %v", err)
	}

	err = run(m, *cmd, *n)
	if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
		log.Printf("migrate: close: source=%v db=%v", srcErr, dbErr)
	}
	if err != nil {
		log.Fatalf("migrate %s: %v", *cmd, err)
	}
	log.Printf("migrate %s: done (driver=%s)", *cmd, cfg.DBDriver)
}

// run executes one migrate command. ErrNoChange is not a failure.
func run(m *migrate.Migrate, cmd string, n int) error {
	var err error
	switch cmd {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	case "steps":
		err = m.Steps(n)
	case "force":
		err = m.Force(n)
	case "version":
		v, dirty, verr := m.Version()
		if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
			return verr
		}
		log.Printf("migrate: version=%d dirty=%v", v, dirty)
		return nil
	default:
		return fmt.Errorf("unknown -cmd %q", cmd)
	}

	if errors.Is(err, migrate.ErrNoChange) {
		log.Println("migrate: no change")
		return nil
	}
	return err
}
