package model

import "github.com/fystack/lotofacil-generator/pkg/common/enum"

// SavedGame is a generated game a user chose to keep.
type SavedGame struct {
	BaseModel
	UserID  string          `gorm:"type:varchar(64);index;not null" json:"user_id"`
	Numbers []int           `gorm:"serializer:json;not null"        json:"numbers"`
	Source  enum.GameSource `gorm:"type:varchar(16);not null"       json:"source"`
	Gap     string          `gorm:"type:varchar(8)"                 json:"gap"`
	Std     string          `gorm:"type:varchar(8)"                 json:"std"`
}

func (SavedGame) TableName() string {
	return "saved_games"
}
