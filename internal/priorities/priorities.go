package priorities

import (
  "math"
  "sort"
  "strings"
  "github.com/google/uuid"
  "github.com/leveluphq/levelup-backend/internal/apierr"
)

// MinAnsweredQuestions gates onboarding completion.
const MinAnsweredQuestions = 12

const (
  MinAnswerValue = 1
  MaxAnswerValue = 5
)

type Answer struct {
  QuestionID  uuid.UUID `json:"question_id"`
  Value       int       `json:"value"`
}

type CategoryWeight struct {
  CategoryID  uuid.UUID
  Weight      float64
}

type Ranked struct {
  CategoryID  uuid.UUID `json:"category_id"`
  Score       float64   `json:"score"`
  Rank        int       `json:"rank"`
}

// ValidateAnswers enforces the onboarding gate: every answer in 1..5 and
// at least MinAnsweredQuestions of them.
func ValidateAnswers(answers []Answer) error {
  seen := make(map[uuid.UUID]bool, len(answers))
  for _, a := range answers {
    if a.QuestionID == uuid.Nil {
      return apierr.Validation("answer is missing a question id")
    }
    if a.Value < MinAnswerValue || a.Value > MaxAnswerValue {
      return apierr.Validation("answer value %d for question %s is outside %d..%d", a.Value, a.QuestionID, MinAnswerValue, MaxAnswerValue)
    }
    if seen[a.QuestionID] {
      return apierr.Validation("duplicate answer for question %s", a.QuestionID)
    }
    seen[a.QuestionID] = true
  }
  if len(seen) < MinAnsweredQuestions {
    return apierr.Validation("at least %d answered questions required, got %d", MinAnsweredQuestions, len(seen))
  }
  return nil
}

// ScoreFromAnswers accumulates value*weight per category. Every category
// referenced by the weight table appears in the result, so unanswered
// categories score 0 instead of vanishing. Answers for questions without
// a weight mapping contribute nothing; the caller decides whether to log
// them.
func ScoreFromAnswers(answers []Answer, weights map[uuid.UUID][]CategoryWeight) map[uuid.UUID]float64 {
  raw := make(map[uuid.UUID]float64)
  for _, ws := range weights {
    for _, w := range ws {
      if _, ok := raw[w.CategoryID]; !ok {
        raw[w.CategoryID] = 0
      }
    }
  }
  for _, a := range answers {
    for _, w := range weights[a.QuestionID] {
      raw[w.CategoryID] += float64(a.Value) * w.Weight
    }
  }
  return raw
}

// NormalizeScores rescales linearly so the max raw score maps to 100.
// All-zero input stays all-zero.
func NormalizeScores(raw map[uuid.UUID]float64) map[uuid.UUID]float64 {
  maxScore := 0.0
  for _, s := range raw {
    if s > maxScore {
      maxScore = s
    }
  }
  out := make(map[uuid.UUID]float64, len(raw))
  for cid, s := range raw {
    if maxScore == 0 {
      out[cid] = 0
      continue
    }
    out[cid] = math.Round(100*100*s/maxScore) / 100
  }
  return out
}

// RankCategories orders by score descending, ties broken by category id
// ascending so the ranking is deterministic. Rank is 1-based.
func RankCategories(scores map[uuid.UUID]float64) []Ranked {
  out := make([]Ranked, 0, len(scores))
  for cid, s := range scores {
    out = append(out, Ranked{CategoryID: cid, Score: s})
  }
  sort.Slice(out, func(i, j int) bool {
    if out[i].Score != out[j].Score {
      return out[i].Score > out[j].Score
    }
    return strings.Compare(out[i].CategoryID.String(), out[j].CategoryID.String()) < 0
  })
  for i := range out {
    out[i].Rank = i + 1
  }
  return out
}

// BonusMultiplierForRank is the single source of truth for the completion
// bonus table. A nil rank means the category is unranked.
func BonusMultiplierForRank(rank *int) float64 {
  if rank == nil {
    return 1.0
  }
  switch *rank {
  case 1:
    return 1.5
  case 2:
    return 1.25
  default:
    return 1.0
  }
}

// ApplyManualOrder turns an explicit category ordering into a rank
// mapping. Categories omitted from the sequence stay unranked.
func ApplyManualOrder(orderedCategoryIDs []uuid.UUID) (map[uuid.UUID]int, error) {
  if len(orderedCategoryIDs) == 0 {
    return nil, apierr.Validation("ordered_category_ids must not be empty")
  }
  ranks := make(map[uuid.UUID]int, len(orderedCategoryIDs))
  for i, cid := range orderedCategoryIDs {
    if cid == uuid.Nil {
      return nil, apierr.Validation("ordered_category_ids contains an empty id")
    }
    if _, ok := ranks[cid]; ok {
      return nil, apierr.Validation("duplicate category id %s in manual order", cid)
    }
    ranks[cid] = i + 1
  }
  return ranks, nil
}

// SyntheticScores spaces scores evenly from 100 down so that
// RankCategories over the stored rows reproduces the manual order.
func SyntheticScores(orderedCategoryIDs []uuid.UUID) map[uuid.UUID]float64 {
  n := len(orderedCategoryIDs)
  out := make(map[uuid.UUID]float64, n)
  if n == 0 {
    return out
  }
  step := 0.0
  if n > 1 {
    step = 100.0 / float64(n)
  }
  for i, cid := range orderedCategoryIDs {
    score := 100.0 - float64(i)*step
    out[cid] = math.Round(score*100) / 100
  }
  return out
}
