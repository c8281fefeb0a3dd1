package sync

import (
	"context"
	"time"

	"deskflow/internal/domain/kanban"
	"deskflow/internal/domain/ticket"
	vo "deskflow/internal/domain/ticket/valueobjects"
	"deskflow/internal/shared/errors"
	"deskflow/internal/shared/logger"
)

const (
	defaultSweepWindow    = 72 * time.Hour
	defaultSweepBatchSize = 200
)

type SweepCommand struct {
	CompanyID uint

	// Window bounds how far back the sweep looks for unmirrored tickets.
	// Zero falls back to the default trailing window.
	Window time.Duration

	BatchSize int
}

type SweepResult struct {
	Scanned int
	Created int
	Skipped int
}

// Sweeper is the batch leg of the bridge: after a bulk import that skipped
// the live event path, it walks recent active tickets and mirrors the ones
// without a card. Per-ticket failures are logged and counted, never fatal.
type Sweeper struct {
	ticketRepo ticket.TicketRepository
	cardRepo   kanban.CardRepository
	bridge     *Bridge
	logger     logger.Interface
}

func NewSweeper(
	ticketRepo ticket.TicketRepository,
	cardRepo kanban.CardRepository,
	bridge *Bridge,
	log logger.Interface,
) *Sweeper {
	return &Sweeper{
		ticketRepo: ticketRepo,
		cardRepo:   cardRepo,
		bridge:     bridge,
		logger:     log.Named("sync.sweep"),
	}
}

// ProcessImportedTickets mirrors recent pending/open tickets that have no
// active card, page by page.
func (s *Sweeper) ProcessImportedTickets(ctx context.Context, cmd SweepCommand) (*SweepResult, error) {
	if cmd.CompanyID == 0 {
		return nil, errors.NewValidationError("company ID is required")
	}

	window := cmd.Window
	if window <= 0 {
		window = defaultSweepWindow
	}
	batchSize := cmd.BatchSize
	if batchSize <= 0 {
		batchSize = defaultSweepBatchSize
	}

	since := time.Now().UTC().Add(-window)
	result := &SweepResult{}

	for _, status := range []vo.TicketStatus{vo.StatusPending, vo.StatusOpen} {
		if err := s.sweepStatus(ctx, cmd.CompanyID, status, since, batchSize, result); err != nil {
			return nil, err
		}
	}

	s.logger.Infow("backlog sweep finished",
		"company_id", cmd.CompanyID,
		"scanned", result.Scanned,
		"created", result.Created,
		"skipped", result.Skipped,
	)
	return result, nil
}

func (s *Sweeper) sweepStatus(
	ctx context.Context,
	companyID uint,
	status vo.TicketStatus,
	since time.Time,
	batchSize int,
	result *SweepResult,
) error {
	for page := 1; ; page++ {
		tickets, total, err := s.ticketRepo.List(ctx, ticket.TicketFilter{
			CompanyID:    companyID,
			Status:       &status,
			CreatedAfter: &since,
			Page:         page,
			PageSize:     batchSize,
		})
		if err != nil {
			s.logger.Errorw("failed to list tickets for sweep",
				"company_id", companyID, "status", status.String(), "error", err)
			return errors.NewInternalError("failed to list tickets for sweep")
		}
		if len(tickets) == 0 {
			return nil
		}

		for _, t := range tickets {
			result.Scanned++

			card, err := s.cardRepo.FindActiveByTicket(ctx, t.ID(), companyID)
			if err != nil {
				s.logger.Warnw("card lookup failed during sweep", "ticket_id", t.ID(), "error", err)
				result.Skipped++
				continue
			}
			if card != nil {
				result.Skipped++
				continue
			}

			// The ungated mirror: the operator asked for this sweep, so the
			// kanbanAutoCreateCards flag does not apply here.
			if err := s.bridge.createCardForTicket(ctx, companyID, t.ID(), t.ContactID(), t.Status().String()); err != nil {
				s.logger.Warnw("failed to mirror ticket during sweep",
					"ticket_id", t.ID(), "company_id", companyID, "error", err)
				result.Skipped++
				continue
			}
			result.Created++
		}

		if int64(page*batchSize) >= total {
			return nil
		}
	}
}
