// Package kanban holds the board/lane/card aggregates, the dense-position
// planner shared by lanes and checklist items, and the metric facts derived
// from card movement.
package kanban

import (
	"fmt"
	"time"
)

// SeedLaneNames are the lanes every new board starts with.
var SeedLaneNames = []string{"Entrada", "Em Atendimento", "Resolvido"}

// Board is a named collection of lanes scoped to a company. Exactly one
// board per company may be the default; the promotion sequence (demote all,
// then promote one) maintains that, not a DB constraint.
type Board struct {
	id          uint
	companyID   uint
	name        string
	isDefault   bool
	defaultView string
	active      bool
	createdAt   time.Time
	updatedAt   time.Time
}

func NewBoard(companyID uint, name string, isDefault bool, defaultView string) (*Board, error) {
	if companyID == 0 {
		return nil, fmt.Errorf("company ID is required")
	}
	if len(name) == 0 {
		return nil, fmt.Errorf("board name is required")
	}
	if len(name) > 100 {
		return nil, fmt.Errorf("board name exceeds maximum length of 100 characters")
	}
	if defaultView == "" {
		defaultView = "kanban"
	}

	now := time.Now().UTC()

	return &Board{
		companyID:   companyID,
		name:        name,
		isDefault:   isDefault,
		defaultView: defaultView,
		active:      true,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructBoard(
	id uint,
	companyID uint,
	name string,
	isDefault bool,
	defaultView string,
	active bool,
	createdAt, updatedAt time.Time,
) (*Board, error) {
	if id == 0 {
		return nil, fmt.Errorf("board ID cannot be zero")
	}
	if companyID == 0 {
		return nil, fmt.Errorf("company ID is required")
	}
	if len(name) == 0 {
		return nil, fmt.Errorf("board name is required")
	}

	return &Board{
		id:          id,
		companyID:   companyID,
		name:        name,
		isDefault:   isDefault,
		defaultView: defaultView,
		active:      active,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func (b *Board) ID() uint {
	return b.id
}

func (b *Board) CompanyID() uint {
	return b.companyID
}

func (b *Board) Name() string {
	return b.name
}

func (b *Board) IsDefault() bool {
	return b.isDefault
}

func (b *Board) DefaultView() string {
	return b.defaultView
}

func (b *Board) Active() bool {
	return b.active
}

func (b *Board) CreatedAt() time.Time {
	return b.createdAt
}

func (b *Board) UpdatedAt() time.Time {
	return b.updatedAt
}

func (b *Board) SetID(id uint) error {
	if b.id != 0 {
		return fmt.Errorf("board ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("board ID cannot be zero")
	}
	b.id = id
	return nil
}

func (b *Board) Rename(name string) error {
	if len(name) == 0 {
		return fmt.Errorf("board name is required")
	}
	if len(name) > 100 {
		return fmt.Errorf("board name exceeds maximum length of 100 characters")
	}
	b.name = name
	b.touch()
	return nil
}

// Promote marks this board as the company default. Callers must demote the
// company's other boards first, in the same transaction.
func (b *Board) Promote() {
	b.isDefault = true
	b.touch()
}

func (b *Board) Demote() {
	b.isDefault = false
	b.touch()
}

func (b *Board) SetDefaultView(view string) {
	b.defaultView = view
	b.touch()
}

func (b *Board) Deactivate() error {
	if b.isDefault {
		return fmt.Errorf("the default board cannot be deactivated")
	}
	b.active = false
	b.touch()
	return nil
}

func (b *Board) touch() {
	b.updatedAt = time.Now().UTC()
}
