package types

import (
  "time"
  "github.com/google/uuid"
)

const (
  UserGoalStatusActive    = "active"
  UserGoalStatusArchived  = "archived"
)

// UserGoal is a user's subscription to a template. CompletedPeriod holds
// the period key (day or ISO week) of the last completion; the goal is
// completable again once the current period key differs.
type UserGoal struct {
  ID                uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
  UserID            uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:idx_user_goal_user_template;column:user_id" json:"user_id"`
  TemplateID        uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:idx_user_goal_user_template;column:template_id" json:"template_id"`
  Status            string        `gorm:"not null;default:active;column:status" json:"status"`
  DueDate           *time.Time    `gorm:"column:due_date" json:"due_date,omitempty"`
  CompletedPeriod   string        `gorm:"column:completed_period" json:"completed_period"`
  LastCompletedAt   *time.Time    `gorm:"column:last_completed_at" json:"last_completed_at,omitempty"`
  XPRewardOverride  *int          `gorm:"column:xp_reward_override" json:"xp_reward_override,omitempty"`
  CreatedAt         time.Time     `gorm:"not null" json:"created_at"`
  UpdatedAt         time.Time     `gorm:"not null" json:"updated_at"`
}

func (UserGoal) TableName() string {
  return "user_goal"
}
