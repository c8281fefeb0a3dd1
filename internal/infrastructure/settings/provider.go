// Package settings provides the DB-backed company settings lookup behind
// the application's SettingsProvider port.
package settings

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"deskflow/internal/infrastructure/persistence/models"
	"deskflow/internal/shared/db"
)

// Provider reads per-company settings rows. A missing key is not an
// error: callers treat ("", nil) as "setting unset".
type Provider struct {
	db *gorm.DB
}

func NewProvider(gormDB *gorm.DB) *Provider {
	return &Provider{db: gormDB}
}

func (p *Provider) GetSetting(ctx context.Context, companyID uint, key string) (string, error) {
	var model models.CompanySettingModel
	tx := db.GetTxFromContext(ctx, p.db)

	err := tx.
		Where("company_id = ? AND setting_key = ?", companyID, key).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read setting %s: %w", key, err)
	}

	return model.Value, nil
}
