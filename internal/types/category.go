package types

import (
  "time"
  "github.com/google/uuid"
)

type Category struct {
  ID          uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
  Name        string      `gorm:"uniqueIndex;not null;column:name" json:"name"`
  CreatedAt   time.Time   `gorm:"not null" json:"created_at"`
}

func (Category) TableName() string {
  return "category"
}
