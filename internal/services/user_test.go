package services

import (
  "context"
  "errors"
  "testing"
  "github.com/google/uuid"
  "github.com/leveluphq/levelup-backend/internal/apierr"
)

func TestGetMeNotFound(t *testing.T) {
  env := newTestEnv(t)
  us := NewUserService(env.db, env.log, env.userRepo)

  _, err := us.GetMe(context.Background(), uuid.New())
  var ae *apierr.Error
  if !errors.As(err, &ae) || ae.Code != apierr.CodeNotFound {
    t.Fatalf("missing user: want not found, got %v", err)
  }
}

func TestXPProgress(t *testing.T) {
  env := newTestEnv(t)
  us := NewUserService(env.db, env.log, env.userRepo)
  user := env.createUser(t, "alice", 343, 4)

  prog, err := us.XPProgress(context.Background(), user.ID)
  if err != nil {
    t.Fatalf("XPProgress: %v", err)
  }
  if prog.Level != 4 || prog.CurrentXP != 32 || prog.SpanXP != 212 {
    t.Fatalf("progress: %+v", prog)
  }
}

func TestXPProgressDetectsStaleLevel(t *testing.T) {
  env := newTestEnv(t)
  us := NewUserService(env.db, env.log, env.userRepo)
  user := env.createUser(t, "bob", 343, 2)

  _, err := us.XPProgress(context.Background(), user.ID)
  var ae *apierr.Error
  if !errors.As(err, &ae) || ae.Code != apierr.CodeInvariant {
    t.Fatalf("stale level: want invariant violation, got %v", err)
  }
}

func TestLeaderboardOrdering(t *testing.T) {
  env := newTestEnv(t)
  us := NewUserService(env.db, env.log, env.userRepo)

  env.createUser(t, "low", 10, 1)
  top := env.createUser(t, "top", 500, 4)
  env.createUser(t, "mid", 120, 2)

  entries, err := us.Leaderboard(context.Background())
  if err != nil {
    t.Fatalf("Leaderboard: %v", err)
  }
  if len(entries) != 3 {
    t.Fatalf("entry count: %d", len(entries))
  }
  if entries[0].UserID != top.ID || entries[0].Position != 1 {
    t.Fatalf("top entry: %+v", entries[0])
  }
  for i := 1; i < len(entries); i++ {
    if entries[i].XP > entries[i-1].XP {
      t.Fatalf("leaderboard not sorted by xp: %+v", entries)
    }
    if entries[i].Position != i+1 {
      t.Fatalf("positions not sequential: %+v", entries)
    }
  }
}

func TestLeaderboardCapsAtTen(t *testing.T) {
  env := newTestEnv(t)
  us := NewUserService(env.db, env.log, env.userRepo)

  for i := 0; i < 13; i++ {
    env.createUser(t, "user"+string(rune('a'+i)), i*10, 1)
  }
  entries, err := us.Leaderboard(context.Background())
  if err != nil {
    t.Fatalf("Leaderboard: %v", err)
  }
  if len(entries) != 10 {
    t.Fatalf("leaderboard size: want=10 got=%d", len(entries))
  }
}
