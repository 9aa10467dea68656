package database

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReplaceChildren deletes every row of T owned by parentID and inserts rows in
// their place. An empty rows slice leaves the parent with no children. Call it
// inside a transaction so the delete and insert land together.
func ReplaceChildren[T any](tx *gorm.DB, foreignKey, parentID string, rows []T) error {
	if err := tx.Where(clause.Eq{Column: clause.Column{Name: foreignKey}, Value: parentID}).Delete(new(T)).Error; err != nil {
		return err
	}
	return InsertChildren(tx, rows)
}

// InsertChildren inserts rows as plain INSERTs. A row whose id already exists
// fails with a key violation instead of being moved to another parent.
func InsertChildren[T any](tx *gorm.DB, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	return tx.Omit(clause.Associations).Create(&rows).Error
}
