package main

import (
	"flag"

	"hotel-ortus/config"
	"hotel-ortus/internal/infrastructure/database"

	"github.com/sirupsen/logrus"
)

func main() {
	direction := flag.String("direction", "up", "migration direction: up or down")
	steps := flag.Int("steps", 1, "number of migrations to roll back when direction is down")
	flag.Parse()

	logrus.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	switch *direction {
	case "up":
		err = database.MigrateUp(cfg.Migrations.Path, cfg.DB)
	case "down":
		err = database.MigrateDown(cfg.Migrations.Path, cfg.DB, *steps)
		if err == nil {
			logrus.Infof("Rolled back %d migration(s)", *steps)
		}
	default:
		logrus.Fatalf("Unknown direction %q, expected up or down", *direction)
	}
	if err != nil {
		logrus.Fatalf("Migration failed: %v", err)
	}
}
