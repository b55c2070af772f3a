// Package main applies the schema migrations under migrations/ against
// the database named in the server config.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/viper"

	"github.com/cory-johannsen/charter/internal/config"
)

func main() {
	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	direction := flag.String("direction", "up", "migration direction: up or down")
	steps := flag.Int("steps", 0, "number of steps (0 = all)")
	flag.Parse()

	dsn, err := databaseDSN(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	m, err := migrate.New("file://migrations", dsn)
	if err != nil {
		log.Fatalf("creating migrator: %v", err)
	}
	defer m.Close()

	switch *direction {
	case "up":
		if *steps > 0 {
			err = m.Steps(*steps)
		} else {
			err = m.Up()
		}
	case "down":
		if *steps > 0 {
			err = m.Steps(-*steps)
		} else {
			err = m.Down()
		}
	default:
		log.Fatalf("invalid direction %q: must be 'up' or 'down'", *direction)
	}

	noChange := errors.Is(err, migrate.ErrNoChange)
	if err != nil && !noChange {
		log.Fatalf("migration failed: %v", err)
	}

	version, dirty, _ := m.Version()
	if noChange {
		fmt.Printf("no changes (version=%d dirty=%v)\n", version, dirty)
		return
	}
	fmt.Printf("migrated %s to version=%d dirty=%v\n", *direction, version, dirty)
}

// databaseDSN reads only the database section of the server config, so
// the tool works against configs whose other sections are incomplete.
func databaseDSN(path string) (string, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return "", fmt.Errorf("reading config: %w", err)
	}
	section := v.Sub("database")
	if section == nil {
		return "", fmt.Errorf("config %s has no database section", path)
	}
	var dbCfg config.DatabaseConfig
	if err := section.Unmarshal(&dbCfg); err != nil {
		return "", fmt.Errorf("parsing database config: %w", err)
	}
	return dbCfg.DSN(), nil
}
