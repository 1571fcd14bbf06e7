package levels

import (
  "math"
  "github.com/leveluphq/levelup-backend/internal/apierr"
)

// XPToNext is the incremental XP needed to go from level to level+1.
// The curve is a compatibility contract with stored user rows: changing
// it re-levels every account.
func XPToNext(level int) int {
  if level < 1 {
    level = 1
  }
  return int(math.Floor(50*float64(level) + math.Pow(float64(level), 1.8)))
}

// ThresholdForLevel is the cumulative XP required to reach level from 0.
// ThresholdForLevel(1) == 0.
func ThresholdForLevel(level int) int {
  total := 0
  for k := 1; k < level; k++ {
    total += XPToNext(k)
  }
  return total
}

type Progress struct {
  Level       int     `json:"level"`
  CurrentXP   int     `json:"current_xp"`
  SpanXP      int     `json:"xp_for_next_level"`
  Percent     float64 `json:"progress_percent"`
}

// advance walks total XP through the level curve step by step. The loop
// terminates because XPToNext is strictly increasing. Kept as an explicit
// loop so the gain path and the display path accumulate identically.
func advance(totalXP int) (level int, remaining int) {
  level = 1
  remaining = totalXP
  for remaining >= XPToNext(level) {
    remaining -= XPToNext(level)
    level++
  }
  return level, remaining
}

func ProgressForTotalXP(totalXP int) (Progress, error) {
  if totalXP < 0 {
    return Progress{}, apierr.Validation("total xp must be >= 0, got %d", totalXP)
  }
  level, current := advance(totalXP)
  span := XPToNext(level)
  percent := math.Round(100*100*float64(current)/float64(span)) / 100
  if percent < 0 {
    percent = 0
  }
  if percent > 100 {
    percent = 100
  }
  return Progress{
    Level:     level,
    CurrentXP: current,
    SpanXP:    span,
    Percent:   percent,
  }, nil
}

type GainResult struct {
  NewTotalXP    int  `json:"new_total_xp"`
  NewLevel      int  `json:"new_level"`
  LeveledUp     bool `json:"leveled_up"`
  LevelsGained  int  `json:"levels_gained"`
}

// ApplyGain adds gained XP to the authoritative total and recomputes the
// level. XP and level never decrease; a recomputed level below the stored
// one means the caller handed us corrupt state.
func ApplyGain(totalXP, currentLevel, gained int) (GainResult, error) {
  if totalXP < 0 {
    return GainResult{}, apierr.Validation("total xp must be >= 0, got %d", totalXP)
  }
  if currentLevel < 1 {
    return GainResult{}, apierr.Validation("level must be >= 1, got %d", currentLevel)
  }
  if gained < 0 {
    return GainResult{}, apierr.Validation("gained xp must be >= 0, got %d", gained)
  }
  newTotal := totalXP + gained
  newLevel, _ := advance(newTotal)
  if newLevel < currentLevel {
    return GainResult{}, apierr.Invariant("computed level %d is below stored level %d for xp %d", newLevel, currentLevel, newTotal)
  }
  return GainResult{
    NewTotalXP:   newTotal,
    NewLevel:     newLevel,
    LeveledUp:    newLevel > currentLevel,
    LevelsGained: newLevel - currentLevel,
  }, nil
}
