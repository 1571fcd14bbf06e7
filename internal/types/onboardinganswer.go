package types

import (
  "time"
  "github.com/google/uuid"
)

type OnboardingAnswer struct {
  ID          uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
  UserID      uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_onboarding_answer_user_question;column:user_id" json:"user_id"`
  QuestionID  uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_onboarding_answer_user_question;column:question_id" json:"question_id"`
  Value       int         `gorm:"not null;column:value" json:"value"`
  CreatedAt   time.Time   `gorm:"not null" json:"created_at"`
}

func (OnboardingAnswer) TableName() string {
  return "onboarding_answer"
}
