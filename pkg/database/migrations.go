package database

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	orderdomain "github.com/narwhalmedia/storefront/internal/order/domain"
	paymentdomain "github.com/narwhalmedia/storefront/internal/payment/domain"
	productdomain "github.com/narwhalmedia/storefront/internal/product/domain"
	userdomain "github.com/narwhalmedia/storefront/internal/user/domain"
	"github.com/narwhalmedia/storefront/pkg/interfaces"
)

// Migration represents an applied database migration
type Migration struct {
	ID        uint      `gorm:"primaryKey"`
	Version   string    `gorm:"uniqueIndex;not null"`
	Name      string    `gorm:"not null"`
	AppliedAt time.Time `gorm:"not null"`
}

// MigrationFunc is a function that performs a migration
type MigrationFunc func(*gorm.DB) error

// MigrationEntry represents a single migration
type MigrationEntry struct {
	Version string
	Name    string
	Up      MigrationFunc
}

// Migrator handles database migrations
type Migrator struct {
	db         *gorm.DB
	logger     interfaces.Logger
	migrations []MigrationEntry
}

// NewMigrator creates a new migrator instance
func NewMigrator(db *gorm.DB, logger interfaces.Logger) *Migrator {
	return &Migrator{
		db:         db,
		logger:     logger,
		migrations: getAllMigrations(),
	}
}

// Migrate runs all pending migrations, each in its own transaction
func (m *Migrator) Migrate() error {
	pending, err := m.GetPendingMigrations()
	if err != nil {
		return err
	}

	for _, migration := range pending {
		m.logger.Info("Running migration",
			interfaces.String("version", migration.Version),
			interfaces.String("name", migration.Name))

		err := m.db.Transaction(func(tx *gorm.DB) error {
			if err := migration.Up(tx); err != nil {
				return err
			}

			return tx.Create(&Migration{
				Version:   migration.Version,
				Name:      migration.Name,
				AppliedAt: time.Now(),
			}).Error
		})
		if err != nil {
			return fmt.Errorf("failed to run migration %s: %w", migration.Version, err)
		}
	}

	return nil
}

// GetPendingMigrations returns migrations that have not been applied yet
func (m *Migrator) GetPendingMigrations() ([]MigrationEntry, error) {
	if err := m.db.AutoMigrate(&Migration{}); err != nil {
		return nil, fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied, err := m.GetAppliedMigrations()
	if err != nil {
		return nil, err
	}

	done := make(map[string]bool, len(applied))
	for _, migration := range applied {
		done[migration.Version] = true
	}

	var pending []MigrationEntry
	for _, migration := range m.migrations {
		if !done[migration.Version] {
			pending = append(pending, migration)
		}
	}

	return pending, nil
}

// GetAppliedMigrations returns applied migrations, newest first
func (m *Migrator) GetAppliedMigrations() ([]Migration, error) {
	var applied []Migration
	if err := m.db.Order("applied_at DESC").Find(&applied).Error; err != nil {
		return nil, fmt.Errorf("failed to get applied migrations: %w", err)
	}
	return applied, nil
}

// getAllMigrations returns all migrations in order
func getAllMigrations() []MigrationEntry {
	return []MigrationEntry{
		{
			Version: "20240601_001",
			Name:    "Create initial schema",
			Up:      migration001CreateInitialSchema,
		},
		{
			Version: "20240601_002",
			Name:    "Add search and dashboard indexes",
			Up:      migration002AddIndexes,
		},
		{
			Version: "20240601_003",
			Name:    "Add value constraints",
			Up:      migration003AddConstraints,
		},
	}
}

// migration001CreateInitialSchema creates the storefront tables. Users are
// migrated before orders because orders preload customer names from them.
func migration001CreateInitialSchema(tx *gorm.DB) error {
	if err := tx.AutoMigrate(&userdomain.User{}); err != nil {
		return fmt.Errorf("failed to migrate users: %w", err)
	}

	if err := tx.AutoMigrate(&productdomain.Product{}, &paymentdomain.Coupon{}); err != nil {
		return fmt.Errorf("failed to migrate catalog models: %w", err)
	}

	if err := tx.AutoMigrate(&orderdomain.Order{}, &orderdomain.Item{}); err != nil {
		return fmt.Errorf("failed to migrate order models: %w", err)
	}

	return nil
}

// migration002AddIndexes adds indexes for product search and the dashboard
// time window queries
func migration002AddIndexes(tx *gorm.DB) error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_products_name_lower ON products (LOWER(name))",
		"CREATE INDEX IF NOT EXISTS idx_products_category_price ON products (category, price)",
		"CREATE INDEX IF NOT EXISTS idx_products_stock ON products (stock)",
		"CREATE INDEX IF NOT EXISTS idx_orders_user_created ON orders (user_id, created_at)",
		"CREATE INDEX IF NOT EXISTS idx_orders_status_created ON orders (status, created_at)",
	}

	for _, index := range indexes {
		if err := tx.Exec(index).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

// migration003AddConstraints adds check constraints. SQLite cannot add
// constraints to existing tables, so this is a no-op there.
func migration003AddConstraints(tx *gorm.DB) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}

	constraints := []string{
		"ALTER TABLE products ADD CONSTRAINT chk_products_price CHECK (price >= 0)",
		"ALTER TABLE coupons ADD CONSTRAINT chk_coupons_amount CHECK (amount > 0)",
		"ALTER TABLE order_items ADD CONSTRAINT chk_order_items_quantity CHECK (quantity > 0)",
	}

	for _, constraint := range constraints {
		if err := tx.Exec(constraint).Error; err != nil {
			if !isConstraintExistsError(err) {
				return fmt.Errorf("failed to add constraint: %w", err)
			}
		}
	}

	return nil
}

func isConstraintExistsError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "already exists") || strings.Contains(errStr, "duplicate key")
}
