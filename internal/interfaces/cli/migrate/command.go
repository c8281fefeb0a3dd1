package migrate

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"deskflow/internal/infrastructure/config"
	"deskflow/internal/infrastructure/database"
	"deskflow/internal/infrastructure/migration"
	"deskflow/internal/shared/biztime"
	"deskflow/internal/shared/logger"
)

var (
	env   string
	steps int
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Manage database schema migrations: apply pending migrations, roll them back, and inspect the current version.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment override (development, test, production)")

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newStatusCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		Long:  `Apply all pending database migrations to bring the schema up to date.`,
		RunE:  runUp,
	}
}

func newDownCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		Long:  `Rollback a specified number of database migrations.`,
		RunE:  runDown,
	}

	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to rollback")

	return cmd
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		Long:  `Display the current migration version of the database.`,
		RunE:  runStatus,
	}
}

func initEnv() (*config.Config, logger.Interface, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if env != "" {
		cfg.Environment = env
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger()

	if err := biztime.Init(cfg.Sync.BusinessTimezone); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return cfg, log, nil
}

func scriptsPath() (string, error) {
	path, err := filepath.Abs("./scripts/migrations")
	if err != nil {
		return "", fmt.Errorf("failed to resolve scripts path: %w", err)
	}
	return path, nil
}

func runUp(cmd *cobra.Command, args []string) error {
	cfg, log, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	log.Infow("running up migrations", "environment", cfg.Environment)

	if err := migration.Run(cfg.Environment, database.Get(), &cfg.Database, log); err != nil {
		log.Errorw("migration failed", "error", err)
		return fmt.Errorf("migration failed: %w", err)
	}

	log.Infow("migrations completed successfully")
	return nil
}

func runDown(cmd *cobra.Command, args []string) error {
	cfg, log, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	path, err := scriptsPath()
	if err != nil {
		return err
	}

	log.Infow("running down migrations", "environment", cfg.Environment, "steps", steps)

	if err := migration.RollbackScripts(&cfg.Database, path, steps, log); err != nil {
		log.Errorw("down migration failed", "error", err)
		return fmt.Errorf("down migration failed: %w", err)
	}

	log.Infow("down migration completed successfully")
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, _, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	path, err := scriptsPath()
	if err != nil {
		return err
	}

	version, dirty, err := migration.ScriptsVersion(&cfg.Database, path)
	if err != nil {
		return fmt.Errorf("failed to read migration status: %w", err)
	}

	fmt.Printf("\nMigration Status:\n")
	fmt.Printf("  Environment:     %s\n", cfg.Environment)
	fmt.Printf("  Current Version: %d\n", version)
	fmt.Printf("  Dirty:           %t\n", dirty)

	return nil
}
