package usecases

import "context"

// Executor interfaces let the CLI and the sync bridge depend on the
// operations without importing concrete usecase types.

type CreateBoardExecutor interface {
	Execute(ctx context.Context, cmd CreateBoardCommand) (*CreateBoardResult, error)
}

type CreateCardExecutor interface {
	Execute(ctx context.Context, cmd CreateCardCommand) (*CreateCardResult, error)
}

type MoveCardExecutor interface {
	Execute(ctx context.Context, cmd MoveCardCommand) (*MoveCardResult, error)
}

type RecordCardMovementExecutor interface {
	Execute(ctx context.Context, cmd RecordCardMovementCommand)
}

type GetBoardMetricsExecutor interface {
	Execute(ctx context.Context, query GetBoardMetricsQuery) (*BoardMetrics, error)
}
