package mappers

import (
	"deskflow/internal/domain/contact"
	"deskflow/internal/infrastructure/persistence/models"
)

type ContactMapper interface {
	ToDomain(model *models.ContactModel) (*contact.Contact, error)
}

type ContactMapperImpl struct{}

func NewContactMapper() ContactMapper {
	return &ContactMapperImpl{}
}

func (m *ContactMapperImpl) ToDomain(model *models.ContactModel) (*contact.Contact, error) {
	return contact.ReconstructContact(
		model.ID,
		model.CompanyID,
		model.Name,
		model.Number,
		model.IsGroup,
	)
}
