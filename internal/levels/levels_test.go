package levels

import (
  "errors"
  "testing"
  "github.com/leveluphq/levelup-backend/internal/apierr"
)

func TestXPToNextCurve(t *testing.T) {
  cases := []struct {
    level   int
    want    int
  }{
    {level: 1, want: 51},
    {level: 2, want: 103},
    {level: 3, want: 157},
    {level: 4, want: 212},
    {level: 7, want: 383},
  }
  for _, tc := range cases {
    got := XPToNext(tc.level)
    if got != tc.want {
      t.Fatalf("XPToNext(%d)=%d, want %d", tc.level, got, tc.want)
    }
  }
}

func TestXPToNextStrictlyIncreasing(t *testing.T) {
  prev := 0
  for level := 1; level <= 200; level++ {
    got := XPToNext(level)
    if got <= prev {
      t.Fatalf("XPToNext(%d)=%d not greater than XPToNext(%d)=%d", level, got, level-1, prev)
    }
    prev = got
  }
}

func TestThresholdForLevel(t *testing.T) {
  if got := ThresholdForLevel(1); got != 0 {
    t.Fatalf("ThresholdForLevel(1)=%d, want 0", got)
  }
  if got := ThresholdForLevel(2); got != 51 {
    t.Fatalf("ThresholdForLevel(2)=%d, want 51", got)
  }
  if got := ThresholdForLevel(4); got != 51+103+157 {
    t.Fatalf("ThresholdForLevel(4)=%d, want %d", got, 51+103+157)
  }
}

func TestProgressForTotalXP(t *testing.T) {
  cases := []struct {
    name        string
    totalXP     int
    wantLevel   int
    wantCurrent int
    wantSpan    int
    wantPercent float64
  }{
    {name: "fresh_user", totalXP: 0, wantLevel: 1, wantCurrent: 0, wantSpan: 51, wantPercent: 0},
    {name: "one_short_of_level_2", totalXP: 50, wantLevel: 1, wantCurrent: 50, wantSpan: 51, wantPercent: 98.04},
    {name: "exact_level_2_boundary", totalXP: 51, wantLevel: 2, wantCurrent: 0, wantSpan: 103, wantPercent: 0},
    {name: "mid_level_4", totalXP: 343, wantLevel: 4, wantCurrent: 32, wantSpan: 212, wantPercent: 15.09},
  }
  for _, tc := range cases {
    t.Run(tc.name, func(t *testing.T) {
      got, err := ProgressForTotalXP(tc.totalXP)
      if err != nil {
        t.Fatalf("ProgressForTotalXP(%d): %v", tc.totalXP, err)
      }
      if got.Level != tc.wantLevel {
        t.Fatalf("level: want=%d got=%d", tc.wantLevel, got.Level)
      }
      if got.CurrentXP != tc.wantCurrent {
        t.Fatalf("current xp: want=%d got=%d", tc.wantCurrent, got.CurrentXP)
      }
      if got.SpanXP != tc.wantSpan {
        t.Fatalf("span xp: want=%d got=%d", tc.wantSpan, got.SpanXP)
      }
      if got.Percent != tc.wantPercent {
        t.Fatalf("percent: want=%v got=%v", tc.wantPercent, got.Percent)
      }
    })
  }
}

func TestProgressForTotalXPBounds(t *testing.T) {
  for totalXP := 0; totalXP <= 5000; totalXP += 7 {
    got, err := ProgressForTotalXP(totalXP)
    if err != nil {
      t.Fatalf("ProgressForTotalXP(%d): %v", totalXP, err)
    }
    if got.Level < 1 {
      t.Fatalf("level < 1 for xp %d", totalXP)
    }
    if got.CurrentXP < 0 || got.CurrentXP >= got.SpanXP {
      t.Fatalf("current xp %d out of [0,%d) for xp %d", got.CurrentXP, got.SpanXP, totalXP)
    }
    if got.Percent < 0 || got.Percent > 100 {
      t.Fatalf("percent %v out of [0,100] for xp %d", got.Percent, totalXP)
    }
  }
}

func TestProgressForTotalXPRejectsNegative(t *testing.T) {
  _, err := ProgressForTotalXP(-1)
  var ae *apierr.Error
  if !errors.As(err, &ae) || ae.Code != apierr.CodeValidation {
    t.Fatalf("ProgressForTotalXP(-1): want validation error, got %v", err)
  }
}

func TestApplyGainZeroIsIdempotent(t *testing.T) {
  got, err := ApplyGain(343, 4, 0)
  if err != nil {
    t.Fatalf("ApplyGain: %v", err)
  }
  if got.NewTotalXP != 343 || got.NewLevel != 4 || got.LeveledUp || got.LevelsGained != 0 {
    t.Fatalf("zero gain changed state: %+v", got)
  }
}

func TestApplyGainLevelUp(t *testing.T) {
  // 50 + 1 crosses the level 1->2 boundary exactly.
  got, err := ApplyGain(50, 1, 1)
  if err != nil {
    t.Fatalf("ApplyGain: %v", err)
  }
  if got.NewTotalXP != 51 || got.NewLevel != 2 || !got.LeveledUp || got.LevelsGained != 1 {
    t.Fatalf("boundary gain: %+v", got)
  }
  prog, err := ProgressForTotalXP(got.NewTotalXP)
  if err != nil {
    t.Fatalf("ProgressForTotalXP: %v", err)
  }
  if prog.CurrentXP != 0 || prog.Percent != 0 {
    t.Fatalf("user at exact boundary should report 0 progress, got %+v", prog)
  }
}

func TestApplyGainMultipleLevels(t *testing.T) {
  got, err := ApplyGain(0, 1, 51+103+157+10)
  if err != nil {
    t.Fatalf("ApplyGain: %v", err)
  }
  if got.NewLevel != 4 || got.LevelsGained != 3 {
    t.Fatalf("multi level gain: %+v", got)
  }
}

func TestApplyGainNeverDecreases(t *testing.T) {
  xp, level := 0, 1
  for _, gained := range []int{0, 5, 51, 0, 400, 12, 0} {
    got, err := ApplyGain(xp, level, gained)
    if err != nil {
      t.Fatalf("ApplyGain(%d,%d,%d): %v", xp, level, gained, err)
    }
    if got.NewTotalXP < xp || got.NewLevel < level {
      t.Fatalf("xp or level decreased: before=(%d,%d) after=%+v", xp, level, got)
    }
    xp, level = got.NewTotalXP, got.NewLevel
  }
}

func TestApplyGainRejectsNegative(t *testing.T) {
  _, err := ApplyGain(100, 1, -5)
  var ae *apierr.Error
  if !errors.As(err, &ae) || ae.Code != apierr.CodeValidation {
    t.Fatalf("negative gain: want validation error, got %v", err)
  }
}

func TestApplyGainDetectsCorruptLevel(t *testing.T) {
  // Stored level 9 with only 10 XP cannot be right.
  _, err := ApplyGain(10, 9, 0)
  var ae *apierr.Error
  if !errors.As(err, &ae) || ae.Code != apierr.CodeInvariant {
    t.Fatalf("corrupt level: want invariant violation, got %v", err)
  }
}
