package types

import (
  "time"
  "github.com/google/uuid"
)

type OnboardingQuestion struct {
  ID          uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
  Language    string      `gorm:"not null;index;column:language" json:"language"`
  Question    string      `gorm:"not null;column:question" json:"question"`
  Position    int         `gorm:"not null;column:position" json:"position"`
  Active      bool        `gorm:"not null;default:true;column:active" json:"active"`
  CreatedAt   time.Time   `gorm:"not null" json:"created_at"`
}

func (OnboardingQuestion) TableName() string {
  return "onboarding_question"
}

// QuestionCategoryWeight maps a question onto the categories it scores.
// Questions without any weight rows are calibration questions; answers to
// them contribute nothing.
type QuestionCategoryWeight struct {
  ID          uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
  QuestionID  uuid.UUID   `gorm:"type:uuid;not null;index;column:question_id" json:"question_id"`
  CategoryID  uuid.UUID   `gorm:"type:uuid;not null;index;column:category_id" json:"category_id"`
  Weight      float64     `gorm:"not null;column:weight" json:"weight"`
}

func (QuestionCategoryWeight) TableName() string {
  return "question_category_weight"
}
