package kanban

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uintPtr(v uint) *uint { return &v }

func reconstructTestCard(t *testing.T, laneID uint, startedAt *time.Time, metadata map[string]interface{}) *Card {
	t.Helper()
	created := time.Now().UTC().Add(-time.Hour)
	card, err := ReconstructCard(
		1, laneID, "Negotiation", "", 0, nil, 0, "", nil, nil, uintPtr(12),
		startedAt, 0, metadata, false, false, nil, created, created,
	)
	require.NoError(t, err)
	return card
}

func TestNewCard(t *testing.T) {
	card, err := NewCard(5, "Follow up")
	require.NoError(t, err)
	assert.Equal(t, uint(5), card.LaneID())
	assert.NotNil(t, card.StartedAt())
	assert.False(t, card.IsArchived())
	assert.Empty(t, card.Metadata())
}

func TestNewCard_Validation(t *testing.T) {
	_, err := NewCard(0, "Follow up")
	assert.Error(t, err)

	_, err = NewCard(5, "")
	assert.Error(t, err)

	_, err = NewCard(5, strings.Repeat("x", 201))
	assert.Error(t, err)
}

func TestCard_MoveToLane(t *testing.T) {
	now := time.Now().UTC()
	entered := now.Add(-90 * time.Second)
	card := reconstructTestCard(t, 5, &entered, nil)

	dwell, err := card.MoveToLane(8, now)
	require.NoError(t, err)

	assert.Equal(t, int64(90), dwell)
	assert.Equal(t, uint(8), card.LaneID())
	assert.Equal(t, int64(90), card.TimeInLane())
	require.NotNil(t, card.StartedAt())
	assert.Equal(t, now, *card.StartedAt())

	from, ok := card.CameFromLane()
	require.True(t, ok)
	assert.Equal(t, uint(5), from)
}

func TestCard_MoveToLane_SameLaneIsNoOp(t *testing.T) {
	now := time.Now().UTC()
	entered := now.Add(-time.Minute)
	card := reconstructTestCard(t, 5, &entered, nil)

	dwell, err := card.MoveToLane(5, now)
	require.NoError(t, err)

	assert.Zero(t, dwell)
	assert.Equal(t, uint(5), card.LaneID())
	_, ok := card.CameFromLane()
	assert.False(t, ok)
}

func TestCard_MoveToLane_ClockSkewClampsToZero(t *testing.T) {
	now := time.Now().UTC()
	entered := now.Add(time.Minute)
	card := reconstructTestCard(t, 5, &entered, nil)

	dwell, err := card.MoveToLane(8, now)
	require.NoError(t, err)
	assert.Zero(t, dwell)
}

func TestCard_MoveToLane_RequiresTarget(t *testing.T) {
	card := reconstructTestCard(t, 5, nil, nil)
	_, err := card.MoveToLane(0, time.Now().UTC())
	assert.Error(t, err)
}

func TestCard_CameFromLane_JSONRoundTrip(t *testing.T) {
	// Metadata loaded from a JSON column carries numbers as float64.
	card := reconstructTestCard(t, 5, nil, map[string]interface{}{MetaCameFromLane: float64(3)})

	from, ok := card.CameFromLane()
	require.True(t, ok)
	assert.Equal(t, uint(3), from)
}

func TestCard_Complete_Idempotent(t *testing.T) {
	card := reconstructTestCard(t, 5, nil, nil)

	card.Complete()
	require.NotNil(t, card.CompletedAt())
	first := *card.CompletedAt()
	assert.True(t, card.IsArchived())

	card.Complete()
	assert.Equal(t, first, *card.CompletedAt())
}

func TestCard_Mirror(t *testing.T) {
	card := reconstructTestCard(t, 5, nil, nil)

	card.Mirror(uintPtr(7), 2500, "PLANO-B", 2)

	require.NotNil(t, card.AssignedUserID())
	assert.Equal(t, uint(7), *card.AssignedUserID())
	assert.Equal(t, 2500.0, card.Value())
	assert.Equal(t, "PLANO-B", card.SKU())
	assert.Equal(t, 2, card.Priority())
}

func TestCard_MetadataReturnsCopy(t *testing.T) {
	card := reconstructTestCard(t, 5, nil, map[string]interface{}{"k": "v"})

	m := card.Metadata()
	m["k"] = "changed"

	assert.Equal(t, "v", card.Metadata()["k"])
}
