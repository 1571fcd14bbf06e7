package types

import (
  "time"
  "github.com/google/uuid"
)

type Quote struct {
  ID          uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
  Text        string      `gorm:"not null;column:text" json:"text"`
  Author      string      `gorm:"column:author" json:"author"`
  CreatedAt   time.Time   `gorm:"not null" json:"created_at"`
}

func (Quote) TableName() string {
  return "quote"
}
