package kanban

import (
	"fmt"
	"time"
)

// ChecklistTemplate is a reusable ordered list of checklist items applied
// onto cards.
type ChecklistTemplate struct {
	id        uint
	companyID uint
	name      string
	items     []TemplateItem
	createdAt time.Time
	updatedAt time.Time
}

// TemplateItem is one entry of a template; position is dense within the
// template.
type TemplateItem struct {
	Description string
	Position    int
}

func NewChecklistTemplate(companyID uint, name string, items []TemplateItem) (*ChecklistTemplate, error) {
	if companyID == 0 {
		return nil, fmt.Errorf("company ID is required")
	}
	if len(name) == 0 {
		return nil, fmt.Errorf("template name is required")
	}

	now := time.Now().UTC()

	return &ChecklistTemplate{
		companyID: companyID,
		name:      name,
		items:     items,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructChecklistTemplate(
	id uint,
	companyID uint,
	name string,
	items []TemplateItem,
	createdAt, updatedAt time.Time,
) (*ChecklistTemplate, error) {
	if id == 0 {
		return nil, fmt.Errorf("template ID cannot be zero")
	}
	if companyID == 0 {
		return nil, fmt.Errorf("company ID is required")
	}

	return &ChecklistTemplate{
		id:        id,
		companyID: companyID,
		name:      name,
		items:     items,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

func (t *ChecklistTemplate) ID() uint             { return t.id }
func (t *ChecklistTemplate) CompanyID() uint      { return t.companyID }
func (t *ChecklistTemplate) Name() string         { return t.name }
func (t *ChecklistTemplate) CreatedAt() time.Time { return t.createdAt }
func (t *ChecklistTemplate) UpdatedAt() time.Time { return t.updatedAt }

func (t *ChecklistTemplate) Items() []TemplateItem {
	itemsCopy := make([]TemplateItem, len(t.items))
	copy(itemsCopy, t.items)
	return itemsCopy
}

func (t *ChecklistTemplate) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("template ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("template ID cannot be zero")
	}
	t.id = id
	return nil
}

// ChecklistItem is one checklist entry on a card; position is dense within
// the card, maintained by the same planner as lane positions.
type ChecklistItem struct {
	id          uint
	cardID      uint
	description string
	position    int
	checkedAt   *time.Time
	checkedBy   *uint
	createdAt   time.Time
	updatedAt   time.Time
}

func NewChecklistItem(cardID uint, description string, position int) (*ChecklistItem, error) {
	if cardID == 0 {
		return nil, fmt.Errorf("card ID is required")
	}
	if len(description) == 0 {
		return nil, fmt.Errorf("item description is required")
	}
	if position < 0 {
		return nil, fmt.Errorf("item position cannot be negative")
	}

	now := time.Now().UTC()

	return &ChecklistItem{
		cardID:      cardID,
		description: description,
		position:    position,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructChecklistItem(
	id uint,
	cardID uint,
	description string,
	position int,
	checkedAt *time.Time,
	checkedBy *uint,
	createdAt, updatedAt time.Time,
) (*ChecklistItem, error) {
	if id == 0 {
		return nil, fmt.Errorf("item ID cannot be zero")
	}
	if cardID == 0 {
		return nil, fmt.Errorf("card ID is required")
	}

	return &ChecklistItem{
		id:          id,
		cardID:      cardID,
		description: description,
		position:    position,
		checkedAt:   checkedAt,
		checkedBy:   checkedBy,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func (i *ChecklistItem) ID() uint              { return i.id }
func (i *ChecklistItem) CardID() uint          { return i.cardID }
func (i *ChecklistItem) Description() string   { return i.description }
func (i *ChecklistItem) Position() int         { return i.position }
func (i *ChecklistItem) CheckedAt() *time.Time { return i.checkedAt }
func (i *ChecklistItem) CheckedBy() *uint      { return i.checkedBy }
func (i *ChecklistItem) CreatedAt() time.Time  { return i.createdAt }
func (i *ChecklistItem) UpdatedAt() time.Time  { return i.updatedAt }

func (i *ChecklistItem) SetID(id uint) error {
	if i.id != 0 {
		return fmt.Errorf("item ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("item ID cannot be zero")
	}
	i.id = id
	return nil
}

func (i *ChecklistItem) SetPosition(position int) error {
	if position < 0 {
		return fmt.Errorf("item position cannot be negative")
	}
	i.position = position
	i.touch()
	return nil
}

func (i *ChecklistItem) IsChecked() bool {
	return i.checkedAt != nil
}

// Check stamps the item as done by a user.
func (i *ChecklistItem) Check(userID uint) error {
	if userID == 0 {
		return fmt.Errorf("user ID is required")
	}
	now := time.Now().UTC()
	i.checkedAt = &now
	i.checkedBy = &userID
	i.touch()
	return nil
}

// Uncheck clears the check stamps.
func (i *ChecklistItem) Uncheck() {
	i.checkedAt = nil
	i.checkedBy = nil
	i.touch()
}

func (i *ChecklistItem) touch() {
	i.updatedAt = time.Now().UTC()
}
