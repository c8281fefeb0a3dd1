// Package constants defines shared constants used across the application.
package constants

// Environment names.
const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"
)

// Table names.
const (
	TableUsers              = "users"
	TableTickets            = "tickets"
	TableTicketTrackings    = "ticket_trackings"
	TableContacts           = "contacts"
	TableQueueMembers       = "queue_members"
	TableCompanySettings    = "company_settings"
	TableKanbanBoards       = "kanban_boards"
	TableKanbanLanes        = "kanban_lanes"
	TableKanbanCards        = "kanban_cards"
	TableChecklistTemplates = "kanban_checklist_templates"
	TableChecklistItems     = "kanban_checklist_items"
	TableKanbanMetrics      = "kanban_metrics"
)

// Setting keys consumed through the settings provider.
const (
	SettingKanbanAutoCreateCards    = "kanbanAutoCreateCards"
	SettingKanbanDefaultBoardID     = "kanbanDefaultBoardId"
	SettingKanbanLaneStatusMap      = "kanbanLaneStatusMap"
	SettingRequireQueueOnAccept     = "requireQueueOnAccept"
	SettingSendTransferMessage      = "sendMsgTransfTicket"
	SettingNewTicketOnTransferQueue = "newTicketOnTransferQueueIds"
)

// Realtime topics, formatted with the company ID.
const (
	TopicCompanyTicket = "company-%d-ticket"
	TopicCompanyKanban = "company-%d-kanban"
)
