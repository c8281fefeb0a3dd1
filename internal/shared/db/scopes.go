package db

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CompanyScope filters rows by tenant. Every read/write path must apply it
// with the company ID taken from the authenticated caller context, never
// from client-supplied data.
//
// Example usage:
//
//	tx.Model(&models.CardModel{}).Scopes(db.CompanyScope(companyID)).Find(&rows)
func CompanyScope(companyID uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("company_id = ?", companyID)
	}
}

// ForUpdate acquires row locks for the selected set. Used on sibling sets
// during position shifts; requires an open transaction.
func ForUpdate() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
}

// NotArchived filters out archived kanban cards.
func NotArchived() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("is_archived = ?", false)
	}
}
