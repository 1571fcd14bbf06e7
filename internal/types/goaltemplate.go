package types

import (
  "time"
  "github.com/google/uuid"
)

const (
  FrequencyDaily  = "daily"
  FrequencyWeekly = "weekly"
)

// GoalTemplate is a catalog entry users can subscribe to. BaseXP is the
// unmultiplied reward; priority bonuses are applied at completion time
// only and never written back here.
type GoalTemplate struct {
  ID            uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
  CategoryID    uuid.UUID     `gorm:"type:uuid;not null;index;column:category_id" json:"category_id"`
  Title         string        `gorm:"not null;column:title" json:"title"`
  Description   string        `gorm:"column:description" json:"description"`
  BaseXP        int           `gorm:"not null;column:base_xp" json:"base_xp"`
  Frequency     string        `gorm:"not null;column:frequency" json:"frequency"`
  Enabled       bool          `gorm:"not null;default:true;column:enabled" json:"enabled"`
  OwnerID       *uuid.UUID    `gorm:"type:uuid;index;column:owner_id" json:"owner_id,omitempty"`
  CreatedAt     time.Time     `gorm:"not null" json:"created_at"`
  UpdatedAt     time.Time     `gorm:"not null" json:"updated_at"`
}

func (GoalTemplate) TableName() string {
  return "goal_template"
}
