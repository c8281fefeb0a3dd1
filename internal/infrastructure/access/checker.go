// Package access answers the permission questions the ticket state machine
// asks: queue membership and the admin bypass.
package access

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"deskflow/internal/infrastructure/persistence/models"
	"deskflow/internal/shared/db"
)

const adminProfile = "admin"

type Checker struct {
	db *gorm.DB
}

func NewChecker(gormDB *gorm.DB) *Checker {
	return &Checker{db: gormDB}
}

func (c *Checker) UserHasQueueAccess(ctx context.Context, userID, queueID uint) (bool, error) {
	var count int64
	tx := db.GetTxFromContext(ctx, c.db)

	err := tx.
		Model(&models.QueueMemberModel{}).
		Where("user_id = ? AND queue_id = ?", userID, queueID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check queue membership: %w", err)
	}

	return count > 0, nil
}

func (c *Checker) IsAdmin(ctx context.Context, userID uint) (bool, error) {
	var model models.UserModel
	tx := db.GetTxFromContext(ctx, c.db)

	err := tx.
		Select("profile").
		First(&model, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read user profile: %w", err)
	}

	return model.Profile == adminProfile, nil
}
