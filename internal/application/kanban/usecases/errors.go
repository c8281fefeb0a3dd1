package usecases

import (
	stderrors "errors"

	"deskflow/internal/domain/kanban"
	"deskflow/internal/shared/errors"
)

// positionError maps the position planner's sentinel errors onto the
// application error taxonomy.
func positionError(err error) error {
	switch {
	case stderrors.Is(err, kanban.ErrInvalidPosition):
		return errors.NewValidationError(err.Error()).WithReason(errors.ReasonInvalidPosition)
	case stderrors.Is(err, kanban.ErrSetMismatch):
		return errors.NewValidationError(err.Error()).WithReason(errors.ReasonSetMismatch)
	default:
		return err
	}
}
