package kanban

import (
	"fmt"
	"time"
)

// Lane is an ordered column within a board. Positions within a board are
// dense: 0..N-1 with no gaps or duplicates. A board always keeps at least
// one lane.
type Lane struct {
	id        uint
	boardID   uint
	name      string
	position  int
	cardLimit int
	queueID   *uint
	createdAt time.Time
	updatedAt time.Time
}

func NewLane(boardID uint, name string, position int, cardLimit int, queueID *uint) (*Lane, error) {
	if boardID == 0 {
		return nil, fmt.Errorf("board ID is required")
	}
	if len(name) == 0 {
		return nil, fmt.Errorf("lane name is required")
	}
	if len(name) > 100 {
		return nil, fmt.Errorf("lane name exceeds maximum length of 100 characters")
	}
	if position < 0 {
		return nil, fmt.Errorf("lane position cannot be negative")
	}
	if cardLimit < 0 {
		return nil, fmt.Errorf("card limit cannot be negative")
	}

	now := time.Now().UTC()

	return &Lane{
		boardID:   boardID,
		name:      name,
		position:  position,
		cardLimit: cardLimit,
		queueID:   queueID,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructLane(
	id uint,
	boardID uint,
	name string,
	position int,
	cardLimit int,
	queueID *uint,
	createdAt, updatedAt time.Time,
) (*Lane, error) {
	if id == 0 {
		return nil, fmt.Errorf("lane ID cannot be zero")
	}
	if boardID == 0 {
		return nil, fmt.Errorf("board ID is required")
	}

	return &Lane{
		id:        id,
		boardID:   boardID,
		name:      name,
		position:  position,
		cardLimit: cardLimit,
		queueID:   queueID,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

func (l *Lane) ID() uint {
	return l.id
}

func (l *Lane) BoardID() uint {
	return l.boardID
}

func (l *Lane) Name() string {
	return l.name
}

func (l *Lane) Position() int {
	return l.position
}

// CardLimit is the maximum number of non-archived cards; 0 means unlimited.
func (l *Lane) CardLimit() int {
	return l.cardLimit
}

func (l *Lane) QueueID() *uint {
	return l.queueID
}

func (l *Lane) CreatedAt() time.Time {
	return l.createdAt
}

func (l *Lane) UpdatedAt() time.Time {
	return l.updatedAt
}

func (l *Lane) SetID(id uint) error {
	if l.id != 0 {
		return fmt.Errorf("lane ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("lane ID cannot be zero")
	}
	l.id = id
	return nil
}

func (l *Lane) Rename(name string) error {
	if len(name) == 0 {
		return fmt.Errorf("lane name is required")
	}
	if len(name) > 100 {
		return fmt.Errorf("lane name exceeds maximum length of 100 characters")
	}
	l.name = name
	l.touch()
	return nil
}

func (l *Lane) SetPosition(position int) error {
	if position < 0 {
		return fmt.Errorf("lane position cannot be negative")
	}
	l.position = position
	l.touch()
	return nil
}

func (l *Lane) SetCardLimit(limit int) error {
	if limit < 0 {
		return fmt.Errorf("card limit cannot be negative")
	}
	l.cardLimit = limit
	l.touch()
	return nil
}

func (l *Lane) LinkQueue(queueID *uint) {
	l.queueID = queueID
	l.touch()
}

// HasCapacity reports whether another card fits given the current
// non-archived card count.
func (l *Lane) HasCapacity(currentCount int64) bool {
	if l.cardLimit == 0 {
		return true
	}
	return currentCount < int64(l.cardLimit)
}

func (l *Lane) touch() {
	l.updatedAt = time.Now().UTC()
}
