package main

import (
	"flag"
	"log"

	migrate "github.com/rubenv/sql-migrate"
	"go.uber.org/zap"

	"github.com/johnquangdev/polyglot-minutes/internal/infrastructure/database"
	"github.com/johnquangdev/polyglot-minutes/pkg/config"
)

func main() {
	direction := flag.String("direction", "up", "migration direction: up or down")
	limit := flag.Int("limit", 0, "maximum number of migrations to apply (0 = all)")
	dir := flag.String("dir", "", "migrations directory (defaults to DB_MIGRATIONS_DIR)")
	flag.Parse()

	cfg, err := config.LoadDatabase()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	var dirn migrate.MigrationDirection
	switch *direction {
	case "up":
		dirn = migrate.Up
	case "down":
		dirn = migrate.Down
		// down rolls back a single step unless -limit says otherwise
		if *limit == 0 {
			*limit = 1
		}
	default:
		logger.Fatal("Unknown migration direction", zap.String("direction", *direction))
	}

	migrationsDir := cfg.Database.Migrations
	if *dir != "" {
		migrationsDir = *dir
	}

	db, err := database.NewPostgresDB(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.CloseDB(db)

	logger.Info("🔄 Applying migrations",
		zap.String("dir", migrationsDir),
		zap.String("direction", *direction),
	)

	n, err := database.Migrate(db, migrationsDir, dirn, *limit, logger)
	if err != nil {
		logger.Fatal("Migration failed", zap.Error(err))
	}

	logger.Info("✅ Done", zap.Int("migrations", n))
}
