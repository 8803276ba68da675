package models

import (
	"time"

	"gorm.io/gorm"
)

type BaseModel struct {
	ID        uint      `json:"id,omitempty" gorm:"primarykey"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// ---------------------------------------------------------------------------------//
// Scopes
// --------------------------------------------------------------------------------//

func favorites(favoritesOnly bool) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if !favoritesOnly {
			return db
		}
		return db.Where("is_favorite = ?", true)
	}
}

func withMethods(db *gorm.DB) *gorm.DB {
	return db.Preload("Methods", func(db *gorm.DB) *gorm.DB {
		return db.Order("contact_methods.id asc")
	})
}
