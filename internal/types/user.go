package types

import (
  "time"
  "github.com/google/uuid"
)

type User struct {
  ID              uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
  Username        string        `gorm:"uniqueIndex;not null;column:username" json:"username"`
  Email           string        `gorm:"uniqueIndex;not null;column:email" json:"email"`
  Password        string        `gorm:"not null;column:password" json:"-"`
  Level           int           `gorm:"not null;default:1;column:level" json:"level"`
  XP              int           `gorm:"not null;default:0;column:xp" json:"xp"`
  OnboardingDone  bool          `gorm:"not null;default:false;column:onboarding_done" json:"onboarding_done"`
  CreatedAt       time.Time     `gorm:"not null" json:"created_at"`
  UpdatedAt       time.Time     `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string {
  return "user"
}
