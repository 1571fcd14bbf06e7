package types

import (
  "time"
  "github.com/google/uuid"
)

// UserPriority rows are derived state: fully replaced whenever the
// questionnaire is (re)submitted or the user reorders manually.
type UserPriority struct {
  ID          uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
  UserID      uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_user_priority_user_category;column:user_id" json:"user_id"`
  CategoryID  uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_user_priority_user_category;column:category_id" json:"category_id"`
  Score       float64     `gorm:"not null;column:score" json:"score"`
  Rank        int         `gorm:"not null;column:rank" json:"rank"`
  CreatedAt   time.Time   `gorm:"not null" json:"created_at"`
}

func (UserPriority) TableName() string {
  return "user_priority"
}
