package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"deskflow/internal/domain/contact"
	"deskflow/internal/infrastructure/persistence/mappers"
	"deskflow/internal/infrastructure/persistence/models"
	"deskflow/internal/shared/db"
)

type ContactRepository struct {
	db     *gorm.DB
	mapper mappers.ContactMapper
}

func NewContactRepository(gormDB *gorm.DB) *ContactRepository {
	return &ContactRepository{
		db:     gormDB,
		mapper: mappers.NewContactMapper(),
	}
}

func (r *ContactRepository) GetByID(ctx context.Context, id, companyID uint) (*contact.Contact, error) {
	var model models.ContactModel
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.
		Scopes(db.CompanyScope(companyID)).
		First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find contact: %w", err)
	}

	return r.mapper.ToDomain(&model)
}
