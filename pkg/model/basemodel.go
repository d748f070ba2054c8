package model

import (
	"time"

	"gorm.io/gorm"
)

// BaseModel gives rows a database-generated UUID key and soft deletes.
// Saved games are referenced by that id in check reports and events, so it
// must stay stable and opaque rather than a sequential uint.
type BaseModel struct {
	ID        string         `gorm:"primarykey;type:uuid;default:gen_random_uuid()" json:"id"`
	CreatedAt time.Time      `gorm:"index"                                          json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
