// Package sweep exposes the backlog sweep as a CLI command, for running
// after bulk ticket imports that bypassed the live event path.
package sweep

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	kanbanusecases "deskflow/internal/application/kanban/usecases"
	ticketsync "deskflow/internal/application/sync"
	ticketusecases "deskflow/internal/application/ticket/usecases"
	"deskflow/internal/domain/shared/events"
	"deskflow/internal/infrastructure/access"
	"deskflow/internal/infrastructure/cache"
	"deskflow/internal/infrastructure/config"
	"deskflow/internal/infrastructure/database"
	"deskflow/internal/infrastructure/messaging"
	"deskflow/internal/infrastructure/realtime"
	"deskflow/internal/infrastructure/repository"
	"deskflow/internal/infrastructure/settings"
	"deskflow/internal/shared/biztime"
	"deskflow/internal/shared/db"
	"deskflow/internal/shared/logger"
)

const dispatcherBufferSize = 256

var (
	env         string
	companyID   uint
	windowHours int
	batchSize   int
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Mirror imported tickets onto the kanban board",
		Long:  `Walk recent active tickets of a company and create kanban cards for the ones that have none. Intended for backlogs created by bulk imports.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "", "Environment override (development, test, production)")
	cmd.Flags().UintVar(&companyID, "company", 0, "Company ID to sweep (required)")
	cmd.Flags().IntVar(&windowHours, "window-hours", 0, "Trailing window in hours (default from config)")
	cmd.Flags().IntVar(&batchSize, "batch-size", 0, "Page size for the ticket scan (default from config)")
	cmd.MarkFlagRequired("company")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if env != "" {
		cfg.Environment = env
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger()

	if err := biztime.Init(cfg.Sync.BusinessTimezone); err != nil {
		return fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	redisClient, err := database.NewRedisClient(&cfg.Redis)
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	defer redisClient.Close()

	gormDB := database.Get()

	ticketRepo := repository.NewTicketRepository(gormDB)
	trackingRepo := repository.NewTrackingRepository(gormDB)
	contactRepo := repository.NewContactRepository(gormDB)
	boardRepo := repository.NewBoardRepository(gormDB)
	laneRepo := repository.NewLaneRepository(gormDB)
	cardRepo := repository.NewCardRepository(gormDB)

	tx := db.NewTransactionManager(gormDB)
	settingsProvider := settings.NewProvider(gormDB)
	accessChecker := access.NewChecker(gormDB)
	dedup := cache.NewDedupCache(redisClient)
	rt := realtime.NewPublisher(redisClient)
	messenger := messaging.NewGatewaySender(&cfg.Messaging, log)

	dispatcher := events.NewInMemoryEventDispatcher(dispatcherBufferSize, log)
	if err := dispatcher.Start(); err != nil {
		return fmt.Errorf("failed to start event dispatcher: %w", err)
	}
	defer dispatcher.Stop()

	createCard := kanbanusecases.NewCreateCardUseCase(laneRepo, cardRepo, contactRepo, tx, log)
	updateTicket := ticketusecases.NewUpdateTicketUseCase(
		ticketRepo, trackingRepo, contactRepo, tx,
		dispatcher, accessChecker, settingsProvider, messenger, dedup, rt, log,
	)
	if cfg.Messaging.DedupTTLMinutes > 0 {
		updateTicket.SetDedupTTL(time.Duration(cfg.Messaging.DedupTTLMinutes) * time.Minute)
	}

	bridge := ticketsync.NewBridge(
		ticketRepo, cardRepo, laneRepo, boardRepo,
		createCard, updateTicket, settingsProvider, log,
	)
	if err := bridge.Register(dispatcher); err != nil {
		return fmt.Errorf("failed to register sync bridge: %w", err)
	}
	sweeper := ticketsync.NewSweeper(ticketRepo, cardRepo, bridge, log)

	hours := windowHours
	if hours <= 0 {
		hours = cfg.Sync.SweepWindowHours
	}
	size := batchSize
	if size <= 0 {
		size = cfg.Sync.SweepBatchSize
	}

	result, err := sweeper.ProcessImportedTickets(cmd.Context(), ticketsync.SweepCommand{
		CompanyID: companyID,
		Window:    time.Duration(hours) * time.Hour,
		BatchSize: size,
	})
	if err != nil {
		log.Errorw("backlog sweep failed", "company_id", companyID, "error", err)
		return fmt.Errorf("backlog sweep failed: %w", err)
	}

	fmt.Printf("\nSweep Result:\n")
	fmt.Printf("  Scanned: %d\n", result.Scanned)
	fmt.Printf("  Created: %d\n", result.Created)
	fmt.Printf("  Skipped: %d\n", result.Skipped)

	return nil
}
