// Package migration owns schema management. Development environments use
// GORM AutoMigrate for fast iteration; everywhere else the versioned SQL
// scripts under scripts/migrations run through golang-migrate, so schema
// history stays reviewable.
package migration

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/gorm"

	"deskflow/internal/infrastructure/persistence/models"
	"deskflow/internal/shared/config"
	"deskflow/internal/shared/constants"
	"deskflow/internal/shared/logger"
)

const defaultScriptsPath = "scripts/migrations"

// Run applies the schema for the given environment.
func Run(env string, db *gorm.DB, cfg *config.DatabaseConfig, log logger.Interface) error {
	if env == constants.EnvDevelopment || env == constants.EnvTest {
		return AutoMigrate(db, log)
	}
	return RunScripts(cfg, defaultScriptsPath, log)
}

// AutoMigrate syncs the GORM models directly into the schema.
func AutoMigrate(db *gorm.DB, log logger.Interface) error {
	err := db.AutoMigrate(
		&models.TicketModel{},
		&models.TicketTrackingModel{},
		&models.ContactModel{},
		&models.UserModel{},
		&models.QueueMemberModel{},
		&models.CompanySettingModel{},
		&models.KanbanBoardModel{},
		&models.KanbanLaneModel{},
		&models.KanbanCardModel{},
		&models.ChecklistTemplateModel{},
		&models.ChecklistItemModel{},
		&models.KanbanMetricModel{},
	)
	if err != nil {
		return fmt.Errorf("auto-migration failed: %w", err)
	}

	log.Infow("schema auto-migrated")
	return nil
}

// RunScripts applies the versioned SQL migrations.
func RunScripts(cfg *config.DatabaseConfig, scriptsPath string, log logger.Interface) error {
	m, err := open(cfg, scriptsPath)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Infow("schema already up to date")
			return nil
		}
		return fmt.Errorf("migration failed: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return fmt.Errorf("failed to read migration version: %w", err)
	}

	log.Infow("schema migrated", "version", version, "dirty", dirty)
	return nil
}

// RollbackScripts rolls the versioned SQL migrations back by steps.
func RollbackScripts(cfg *config.DatabaseConfig, scriptsPath string, steps int, log logger.Interface) error {
	m, err := open(cfg, scriptsPath)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Steps(-steps); err != nil {
		return fmt.Errorf("rollback failed: %w", err)
	}

	log.Infow("schema rolled back", "steps", steps)
	return nil
}

// ScriptsVersion reports the current migration version and dirty flag.
func ScriptsVersion(cfg *config.DatabaseConfig, scriptsPath string) (uint, bool, error) {
	m, err := open(cfg, scriptsPath)
	if err != nil {
		return 0, false, err
	}
	defer m.Close()

	version, dirty, err := m.Version()
	if err != nil {
		if errors.Is(err, migrate.ErrNilVersion) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to read migration version: %w", err)
	}

	return version, dirty, nil
}

func open(cfg *config.DatabaseConfig, scriptsPath string) (*migrate.Migrate, error) {
	dsn := fmt.Sprintf("mysql://%s:%s@tcp(%s:%d)/%s?multiStatements=true",
		cfg.Username, cfg.Password, cfg.Host, cfg.Port, cfg.Database)

	m, err := migrate.New("file://"+scriptsPath, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open migrations: %w", err)
	}
	return m, nil
}
