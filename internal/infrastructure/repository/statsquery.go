package repository

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"deskflow/internal/domain/kanban"
	"deskflow/internal/shared/db"
)

// StatsQuery is the read side of the metrics aggregator: derived numbers
// computed from the card table and the append-only metric log. Averages
// over timestamps are computed in Go so the same queries run on MySQL and
// the in-memory sqlite used by tests.
type StatsQuery struct {
	db *gorm.DB
}

func NewStatsQuery(gormDB *gorm.DB) *StatsQuery {
	return &StatsQuery{db: gormDB}
}

func (q *StatsQuery) AvgTimeInLane(ctx context.Context, boardID, companyID uint, from, to time.Time) ([]kanban.LaneDwell, error) {
	tx := db.GetTxFromContext(ctx, q.db)

	var rows []kanban.LaneDwell
	err := tx.
		Table("kanban_metrics m").
		Select("m.lane_id AS lane_id, l.name AS lane_name, AVG(m.value) AS avg_seconds, COUNT(*) AS sample_count").
		Joins("JOIN kanban_lanes l ON l.id = m.lane_id").
		Where("m.company_id = ? AND m.board_id = ? AND m.metric_type = ?", companyID, boardID, kanban.MetricTimeInLane).
		Where("m.created_at >= ? AND m.created_at <= ?", from, to).
		Group("m.lane_id, l.name").
		Order("m.lane_id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate lane dwell: %w", err)
	}

	return rows, nil
}

func (q *StatsQuery) ThroughputByDay(ctx context.Context, boardID, companyID uint, from, to time.Time) ([]kanban.DayThroughput, error) {
	tx := db.GetTxFromContext(ctx, q.db)

	var rows []kanban.DayThroughput
	err := tx.
		Table("kanban_cards c").
		Select("DATE(c.completed_at) AS day, COUNT(*) AS count").
		Joins("JOIN kanban_lanes l ON l.id = c.lane_id").
		Joins("JOIN kanban_boards b ON b.id = l.board_id").
		Where("b.company_id = ? AND b.id = ?", companyID, boardID).
		Where("c.completed_at IS NOT NULL AND c.completed_at >= ? AND c.completed_at <= ?", from, to).
		Group("DATE(c.completed_at)").
		Order("day ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate throughput: %w", err)
	}

	return rows, nil
}

func (q *StatsQuery) LeadTimeHours(ctx context.Context, boardID, companyID uint, from, to time.Time) (float64, error) {
	spans, err := q.completionSpans(ctx, boardID, companyID, from, to)
	if err != nil {
		return 0, err
	}
	if len(spans) == 0 {
		return 0, nil
	}

	var total float64
	for _, s := range spans {
		total += s.CompletedAt.Sub(s.CreatedAt).Hours()
	}
	return total / float64(len(spans)), nil
}

func (q *StatsQuery) ProductivityByUser(ctx context.Context, boardID, companyID uint, from, to time.Time) ([]kanban.UserProductivity, error) {
	tx := db.GetTxFromContext(ctx, q.db)

	var rows []struct {
		UserID      uint
		CreatedAt   time.Time
		CompletedAt *time.Time
	}
	err := tx.
		Table("kanban_cards c").
		Select("c.assigned_user_id AS user_id, c.created_at AS created_at, c.completed_at AS completed_at").
		Joins("JOIN kanban_lanes l ON l.id = c.lane_id").
		Joins("JOIN kanban_boards b ON b.id = l.board_id").
		Where("b.company_id = ? AND b.id = ?", companyID, boardID).
		Where("c.assigned_user_id IS NOT NULL").
		Where("c.created_at >= ? AND c.created_at <= ?", from, to).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to read productivity rows: %w", err)
	}

	type acc struct {
		assigned   int64
		completed  int64
		totalHours float64
	}
	byUser := make(map[uint]*acc)
	for _, row := range rows {
		a := byUser[row.UserID]
		if a == nil {
			a = &acc{}
			byUser[row.UserID] = a
		}
		a.assigned++
		if row.CompletedAt != nil {
			a.completed++
			a.totalHours += row.CompletedAt.Sub(row.CreatedAt).Hours()
		}
	}

	result := make([]kanban.UserProductivity, 0, len(byUser))
	for userID, a := range byUser {
		p := kanban.UserProductivity{
			UserID:         userID,
			AssignedCount:  a.assigned,
			CompletedCount: a.completed,
		}
		if a.completed > 0 {
			p.AvgCompletionHours = a.totalHours / float64(a.completed)
		}
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].UserID < result[j].UserID })

	return result, nil
}

func (q *StatsQuery) CardDistribution(ctx context.Context, boardID, companyID uint) ([]kanban.LaneDistribution, error) {
	tx := db.GetTxFromContext(ctx, q.db)

	var rows []kanban.LaneDistribution
	err := tx.
		Table("kanban_lanes l").
		Select("l.id AS lane_id, l.name AS lane_name, COUNT(c.id) AS count").
		Joins("JOIN kanban_boards b ON b.id = l.board_id").
		Joins("LEFT JOIN kanban_cards c ON c.lane_id = l.id AND c.is_archived = ?", false).
		Where("b.company_id = ? AND b.id = ?", companyID, boardID).
		Group("l.id, l.name, l.position").
		Order("l.position ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate card distribution: %w", err)
	}

	return rows, nil
}

// CameFromLaneCounts reads the came-from marker out of the card metadata
// JSON. json_extract exists on both MySQL and sqlite.
func (q *StatsQuery) CameFromLaneCounts(ctx context.Context, laneID, companyID uint) (int64, int64, error) {
	tx := db.GetTxFromContext(ctx, q.db)

	base := func() *gorm.DB {
		return tx.
			Table("kanban_cards c").
			Joins("JOIN kanban_lanes l ON l.id = c.lane_id").
			Joins("JOIN kanban_boards b ON b.id = l.board_id").
			Where("b.company_id = ?", companyID).
			Where(fmt.Sprintf("json_extract(c.metadata, '$.%s') = ?", kanban.MetaCameFromLane), laneID)
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return 0, 0, fmt.Errorf("failed to count came-from cards: %w", err)
	}

	var completed int64
	if err := base().Where("c.completed_at IS NOT NULL").Count(&completed).Error; err != nil {
		return 0, 0, fmt.Errorf("failed to count completed came-from cards: %w", err)
	}

	return total, completed, nil
}

type completionSpan struct {
	CreatedAt   time.Time
	CompletedAt time.Time
}

func (q *StatsQuery) completionSpans(ctx context.Context, boardID, companyID uint, from, to time.Time) ([]completionSpan, error) {
	tx := db.GetTxFromContext(ctx, q.db)

	var spans []completionSpan
	err := tx.
		Table("kanban_cards c").
		Select("c.created_at AS created_at, c.completed_at AS completed_at").
		Joins("JOIN kanban_lanes l ON l.id = c.lane_id").
		Joins("JOIN kanban_boards b ON b.id = l.board_id").
		Where("b.company_id = ? AND b.id = ?", companyID, boardID).
		Where("c.completed_at IS NOT NULL AND c.completed_at >= ? AND c.completed_at <= ?", from, to).
		Scan(&spans).Error
	if err != nil {
		return nil, fmt.Errorf("failed to read completion spans: %w", err)
	}

	return spans, nil
}
