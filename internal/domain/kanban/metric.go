package kanban

import (
	"fmt"
	"time"
)

// Metric types recorded by the aggregator's write path.
const (
	MetricTimeInLane     = "time_in_lane"
	MetricConversionRate = "conversion_rate"
)

// Metric is an append-only denormalized fact row written on card movement
// and read back by the aggregation queries. Never updated in place.
type Metric struct {
	id          uint
	companyID   uint
	boardID     uint
	laneID      *uint
	cardID      *uint
	metricType  string
	value       float64
	metricData  map[string]interface{}
	windowStart *time.Time
	windowEnd   *time.Time
	createdAt   time.Time
}

func NewMetric(companyID, boardID uint, metricType string, value float64) (*Metric, error) {
	if companyID == 0 {
		return nil, fmt.Errorf("company ID is required")
	}
	if boardID == 0 {
		return nil, fmt.Errorf("board ID is required")
	}
	if metricType == "" {
		return nil, fmt.Errorf("metric type is required")
	}

	return &Metric{
		companyID:  companyID,
		boardID:    boardID,
		metricType: metricType,
		value:      value,
		metricData: make(map[string]interface{}),
		createdAt:  time.Now().UTC(),
	}, nil
}

func ReconstructMetric(
	id uint,
	companyID uint,
	boardID uint,
	laneID *uint,
	cardID *uint,
	metricType string,
	value float64,
	metricData map[string]interface{},
	windowStart *time.Time,
	windowEnd *time.Time,
	createdAt time.Time,
) (*Metric, error) {
	if id == 0 {
		return nil, fmt.Errorf("metric ID cannot be zero")
	}
	if metricData == nil {
		metricData = make(map[string]interface{})
	}

	return &Metric{
		id:          id,
		companyID:   companyID,
		boardID:     boardID,
		laneID:      laneID,
		cardID:      cardID,
		metricType:  metricType,
		value:       value,
		metricData:  metricData,
		windowStart: windowStart,
		windowEnd:   windowEnd,
		createdAt:   createdAt,
	}, nil
}

func (m *Metric) ID() uint                { return m.id }
func (m *Metric) CompanyID() uint         { return m.companyID }
func (m *Metric) BoardID() uint           { return m.boardID }
func (m *Metric) LaneID() *uint           { return m.laneID }
func (m *Metric) CardID() *uint           { return m.cardID }
func (m *Metric) MetricType() string      { return m.metricType }
func (m *Metric) Value() float64          { return m.value }
func (m *Metric) WindowStart() *time.Time { return m.windowStart }
func (m *Metric) WindowEnd() *time.Time   { return m.windowEnd }
func (m *Metric) CreatedAt() time.Time    { return m.createdAt }

func (m *Metric) MetricData() map[string]interface{} {
	dataCopy := make(map[string]interface{}, len(m.metricData))
	for k, v := range m.metricData {
		dataCopy[k] = v
	}
	return dataCopy
}

func (m *Metric) SetID(id uint) error {
	if m.id != 0 {
		return fmt.Errorf("metric ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("metric ID cannot be zero")
	}
	m.id = id
	return nil
}

func (m *Metric) AttachLane(laneID uint) {
	m.laneID = &laneID
}

func (m *Metric) AttachCard(cardID uint) {
	m.cardID = &cardID
}

func (m *Metric) PutData(key string, value interface{}) {
	m.metricData[key] = value
}

func (m *Metric) SetWindow(start, end time.Time) {
	m.windowStart = &start
	m.windowEnd = &end
}
