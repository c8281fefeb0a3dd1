package mappers

import (
	"encoding/json"
	"fmt"

	"deskflow/internal/domain/kanban"
	"deskflow/internal/infrastructure/persistence/models"
)

// KanbanMapper handles the conversion between kanban domain entities and
// persistence models.
type KanbanMapper interface {
	BoardToModel(b *kanban.Board) *models.KanbanBoardModel
	BoardToDomain(model *models.KanbanBoardModel) (*kanban.Board, error)

	LaneToModel(l *kanban.Lane) *models.KanbanLaneModel
	LaneToDomain(model *models.KanbanLaneModel) (*kanban.Lane, error)

	CardToModel(c *kanban.Card) (*models.KanbanCardModel, error)
	CardToDomain(model *models.KanbanCardModel) (*kanban.Card, error)

	TemplateToModel(t *kanban.ChecklistTemplate) (*models.ChecklistTemplateModel, error)
	TemplateToDomain(model *models.ChecklistTemplateModel) (*kanban.ChecklistTemplate, error)

	ItemToModel(i *kanban.ChecklistItem) *models.ChecklistItemModel
	ItemToDomain(model *models.ChecklistItemModel) (*kanban.ChecklistItem, error)

	MetricToModel(m *kanban.Metric) (*models.KanbanMetricModel, error)
}

type KanbanMapperImpl struct{}

func NewKanbanMapper() KanbanMapper {
	return &KanbanMapperImpl{}
}

func (m *KanbanMapperImpl) BoardToModel(b *kanban.Board) *models.KanbanBoardModel {
	return &models.KanbanBoardModel{
		ID:          b.ID(),
		CompanyID:   b.CompanyID(),
		Name:        b.Name(),
		IsDefault:   b.IsDefault(),
		DefaultView: b.DefaultView(),
		Active:      b.Active(),
		CreatedAt:   b.CreatedAt(),
		UpdatedAt:   b.UpdatedAt(),
	}
}

func (m *KanbanMapperImpl) BoardToDomain(model *models.KanbanBoardModel) (*kanban.Board, error) {
	return kanban.ReconstructBoard(
		model.ID,
		model.CompanyID,
		model.Name,
		model.IsDefault,
		model.DefaultView,
		model.Active,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *KanbanMapperImpl) LaneToModel(l *kanban.Lane) *models.KanbanLaneModel {
	return &models.KanbanLaneModel{
		ID:        l.ID(),
		BoardID:   l.BoardID(),
		Name:      l.Name(),
		Position:  l.Position(),
		CardLimit: l.CardLimit(),
		QueueID:   l.QueueID(),
		CreatedAt: l.CreatedAt(),
		UpdatedAt: l.UpdatedAt(),
	}
}

func (m *KanbanMapperImpl) LaneToDomain(model *models.KanbanLaneModel) (*kanban.Lane, error) {
	return kanban.ReconstructLane(
		model.ID,
		model.BoardID,
		model.Name,
		model.Position,
		model.CardLimit,
		model.QueueID,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *KanbanMapperImpl) CardToModel(c *kanban.Card) (*models.KanbanCardModel, error) {
	model := &models.KanbanCardModel{
		ID:             c.ID(),
		LaneID:         c.LaneID(),
		Title:          c.Title(),
		Description:    c.Description(),
		Priority:       c.Priority(),
		DueDate:        c.DueDate(),
		Value:          c.Value(),
		SKU:            c.SKU(),
		AssignedUserID: c.AssignedUserID(),
		ContactID:      c.ContactID(),
		TicketID:       c.TicketID(),
		StartedAt:      c.StartedAt(),
		TimeInLane:     c.TimeInLane(),
		IsArchived:     c.IsArchived(),
		IsBlocked:      c.IsBlocked(),
		CompletedAt:    c.CompletedAt(),
		CreatedAt:      c.CreatedAt(),
		UpdatedAt:      c.UpdatedAt(),
	}

	if meta := c.Metadata(); len(meta) > 0 {
		metaJSON, err := json.Marshal(meta)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal card metadata (id=%d): %w", c.ID(), err)
		}
		model.Metadata = metaJSON
	}

	return model, nil
}

func (m *KanbanMapperImpl) CardToDomain(model *models.KanbanCardModel) (*kanban.Card, error) {
	var metadata map[string]interface{}
	if len(model.Metadata) > 0 {
		if err := json.Unmarshal(model.Metadata, &metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal card metadata (id=%d): %w", model.ID, err)
		}
	}

	return kanban.ReconstructCard(
		model.ID,
		model.LaneID,
		model.Title,
		model.Description,
		model.Priority,
		model.DueDate,
		model.Value,
		model.SKU,
		model.AssignedUserID,
		model.ContactID,
		model.TicketID,
		model.StartedAt,
		model.TimeInLane,
		metadata,
		model.IsArchived,
		model.IsBlocked,
		model.CompletedAt,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *KanbanMapperImpl) TemplateToModel(t *kanban.ChecklistTemplate) (*models.ChecklistTemplateModel, error) {
	model := &models.ChecklistTemplateModel{
		ID:        t.ID(),
		CompanyID: t.CompanyID(),
		Name:      t.Name(),
		CreatedAt: t.CreatedAt(),
		UpdatedAt: t.UpdatedAt(),
	}

	if items := t.Items(); len(items) > 0 {
		itemsJSON, err := json.Marshal(items)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal template items (id=%d): %w", t.ID(), err)
		}
		model.Items = itemsJSON
	}

	return model, nil
}

func (m *KanbanMapperImpl) TemplateToDomain(model *models.ChecklistTemplateModel) (*kanban.ChecklistTemplate, error) {
	var items []kanban.TemplateItem
	if len(model.Items) > 0 {
		if err := json.Unmarshal(model.Items, &items); err != nil {
			return nil, fmt.Errorf("failed to unmarshal template items (id=%d): %w", model.ID, err)
		}
	}

	return kanban.ReconstructChecklistTemplate(
		model.ID,
		model.CompanyID,
		model.Name,
		items,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *KanbanMapperImpl) ItemToModel(i *kanban.ChecklistItem) *models.ChecklistItemModel {
	return &models.ChecklistItemModel{
		ID:          i.ID(),
		CardID:      i.CardID(),
		Description: i.Description(),
		Position:    i.Position(),
		CheckedAt:   i.CheckedAt(),
		CheckedBy:   i.CheckedBy(),
		CreatedAt:   i.CreatedAt(),
		UpdatedAt:   i.UpdatedAt(),
	}
}

func (m *KanbanMapperImpl) ItemToDomain(model *models.ChecklistItemModel) (*kanban.ChecklistItem, error) {
	return kanban.ReconstructChecklistItem(
		model.ID,
		model.CardID,
		model.Description,
		model.Position,
		model.CheckedAt,
		model.CheckedBy,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *KanbanMapperImpl) MetricToModel(metric *kanban.Metric) (*models.KanbanMetricModel, error) {
	model := &models.KanbanMetricModel{
		ID:          metric.ID(),
		CompanyID:   metric.CompanyID(),
		BoardID:     metric.BoardID(),
		LaneID:      metric.LaneID(),
		CardID:      metric.CardID(),
		MetricType:  metric.MetricType(),
		Value:       metric.Value(),
		WindowStart: metric.WindowStart(),
		WindowEnd:   metric.WindowEnd(),
		CreatedAt:   metric.CreatedAt(),
	}

	if data := metric.MetricData(); len(data) > 0 {
		dataJSON, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal metric data: %w", err)
		}
		model.MetricData = dataJSON
	}

	return model, nil
}
