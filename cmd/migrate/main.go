package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"gorm.io/gorm"

	"github.com/narwhalmedia/storefront/pkg/database"
	"github.com/narwhalmedia/storefront/pkg/interfaces"
	"github.com/narwhalmedia/storefront/pkg/logger"
)

func main() {
	var (
		driver   = flag.String("driver", getEnv("DB_DRIVER", "postgres"), "Database driver (postgres or sqlite)")
		host     = flag.String("host", getEnv("DB_HOST", "localhost"), "Database host")
		port     = flag.Int("port", getEnvAsInt("DB_PORT", 5432), "Database port")
		user     = flag.String("user", getEnv("DB_USER", "storefront"), "Database user")
		password = flag.String("password", getEnv("DB_PASSWORD", "storefront"), "Database password")
		dbname   = flag.String("dbname", getEnv("DB_NAME", "storefront"), "Database name")
		sslmode  = flag.String("sslmode", getEnv("DB_SSLMODE", "disable"), "SSL mode")
		sqlite   = flag.String("sqlite-path", getEnv("DB_SQLITE_PATH", "storefront.db"), "SQLite database file")
		status   = flag.Bool("status", false, "Show migration status")
		dryRun   = flag.Bool("dry-run", false, "Show pending migrations without applying them")
	)
	flag.Parse()

	cfg := database.DefaultConfig()
	cfg.Driver = *driver
	cfg.Host = *host
	cfg.Port = *port
	cfg.User = *user
	cfg.Password = *password
	cfg.Database = *dbname
	cfg.SSLMode = *sslmode
	cfg.SQLitePath = *sqlite
	cfg.LogLevel = database.ParseLogLevel("info")

	db, err := database.NewGormDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	appLogger, err := logger.New("development", "info")
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	switch {
	case *status:
		showMigrationStatus(db, appLogger)
	case *dryRun:
		showPendingMigrations(db, appLogger)
	default:
		runMigrations(db, appLogger)
	}
}

// runMigrations applies all pending migrations
func runMigrations(db *gorm.DB, appLogger interfaces.Logger) {
	fmt.Println("Running database migrations...")

	if err := database.RunMigrations(db, appLogger); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	fmt.Println("Migrations completed successfully!")
}

// showMigrationStatus displays the current migration status
func showMigrationStatus(db *gorm.DB, appLogger interfaces.Logger) {
	migrator := database.NewMigrator(db, appLogger)

	pending, err := migrator.GetPendingMigrations()
	if err != nil {
		log.Fatalf("Failed to get pending migrations: %v", err)
	}

	applied, err := migrator.GetAppliedMigrations()
	if err != nil {
		log.Fatalf("Failed to get migrations: %v", err)
	}

	if len(applied) == 0 {
		fmt.Println("No migrations have been applied yet.")
	} else {
		fmt.Println("Applied migrations:")
		fmt.Println("==================")
		for _, m := range applied {
			fmt.Printf("%s | %s | Applied at: %s\n", m.Version, m.Name, m.AppliedAt.Format("2006-01-02 15:04:05"))
		}
	}

	if len(pending) > 0 {
		fmt.Println("\nPending migrations:")
		fmt.Println("==================")
		for _, m := range pending {
			fmt.Printf("%s | %s\n", m.Version, m.Name)
		}
	} else {
		fmt.Println("\nAll migrations are up to date!")
	}
}

// showPendingMigrations displays migrations that would be applied
func showPendingMigrations(db *gorm.DB, appLogger interfaces.Logger) {
	pending, err := database.GetPendingMigrations(db, appLogger)
	if err != nil {
		log.Fatalf("Failed to get pending migrations: %v", err)
	}

	if len(pending) == 0 {
		fmt.Println("No pending migrations.")
		return
	}

	fmt.Println("Pending migrations that would be applied:")
	fmt.Println("========================================")
	for _, m := range pending {
		fmt.Printf("%s | %s\n", m.Version, m.Name)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var intVal int
		if _, err := fmt.Sscanf(value, "%d", &intVal); err == nil {
			return intVal
		}
	}
	return defaultValue
}
