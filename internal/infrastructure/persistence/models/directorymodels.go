package models

import (
	"time"

	"deskflow/internal/shared/constants"
)

// The directory models below back the ticket core's lookups into company
// data it consumes but does not own: contacts, users, queue membership and
// per-company settings.

type ContactModel struct {
	ID        uint   `gorm:"primarykey"`
	CompanyID uint   `gorm:"not null;index"`
	Name      string `gorm:"not null;size:100"`
	Number    string `gorm:"not null;size:50;index"`
	IsGroup   bool   `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ContactModel) TableName() string {
	return constants.TableContacts
}

type UserModel struct {
	ID        uint   `gorm:"primarykey"`
	CompanyID uint   `gorm:"not null;index"`
	Name      string `gorm:"not null;size:100"`
	Email     string `gorm:"uniqueIndex;not null;size:255"`
	Profile   string `gorm:"not null;default:user;size:20"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (UserModel) TableName() string {
	return constants.TableUsers
}

type QueueMemberModel struct {
	ID      uint `gorm:"primarykey"`
	QueueID uint `gorm:"not null;uniqueIndex:idx_queue_members_queue_user"`
	UserID  uint `gorm:"not null;uniqueIndex:idx_queue_members_queue_user"`
}

func (QueueMemberModel) TableName() string {
	return constants.TableQueueMembers
}

type CompanySettingModel struct {
	ID        uint   `gorm:"primarykey"`
	CompanyID uint   `gorm:"not null;uniqueIndex:idx_company_settings_key"`
	Key       string `gorm:"column:setting_key;not null;size:100;uniqueIndex:idx_company_settings_key"`
	Value     string `gorm:"column:setting_value;type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (CompanySettingModel) TableName() string {
	return constants.TableCompanySettings
}
