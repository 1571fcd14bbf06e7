package services

import (
  "context"
  "fmt"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/leveluphq/levelup-backend/internal/apierr"
  "github.com/leveluphq/levelup-backend/internal/levels"
  "github.com/leveluphq/levelup-backend/internal/logger"
  "github.com/leveluphq/levelup-backend/internal/repos"
  "github.com/leveluphq/levelup-backend/internal/types"
)

const leaderboardLimit = 10

type LeaderboardEntry struct {
  UserID    uuid.UUID   `json:"user_id"`
  Username  string      `json:"username"`
  XP        int         `json:"xp"`
  Level     int         `json:"level"`
  Position  int         `json:"position"`
}

type UserService interface {
  GetMe(ctx context.Context, userID uuid.UUID) (*types.User, error)
  XPProgress(ctx context.Context, userID uuid.UUID) (levels.Progress, error)
  Leaderboard(ctx context.Context) ([]LeaderboardEntry, error)
}

type userService struct {
  db        *gorm.DB
  log       *logger.Logger
  userRepo  repos.UserRepo
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo) UserService {
  serviceLog := log.With("service", "UserService")
  return &userService{db: db, log: serviceLog, userRepo: userRepo}
}

func (us *userService) GetMe(ctx context.Context, userID uuid.UUID) (*types.User, error) {
  users, err := us.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
  if err != nil {
    return nil, fmt.Errorf("Failed to load user: %w", err)
  }
  if len(users) == 0 {
    return nil, apierr.NotFound("user %s not found", userID)
  }
  return users[0], nil
}

func (us *userService) XPProgress(ctx context.Context, userID uuid.UUID) (levels.Progress, error) {
  user, err := us.GetMe(ctx, userID)
  if err != nil {
    return levels.Progress{}, err
  }
  prog, err := levels.ProgressForTotalXP(user.XP)
  if err != nil {
    return levels.Progress{}, err
  }
  if prog.Level != user.Level {
    us.log.Warn("Stored level disagrees with xp-derived level", "user_id", userID, "stored", user.Level, "derived", prog.Level)
    return levels.Progress{}, apierr.Invariant("stored level %d does not match xp %d", user.Level, user.XP)
  }
  return prog, nil
}

func (us *userService) Leaderboard(ctx context.Context) ([]LeaderboardEntry, error) {
  users, err := us.userRepo.ListTopByXP(ctx, nil, leaderboardLimit)
  if err != nil {
    return nil, fmt.Errorf("Failed to load leaderboard: %w", err)
  }
  entries := make([]LeaderboardEntry, 0, len(users))
  for i, u := range users {
    entries = append(entries, LeaderboardEntry{
      UserID:   u.ID,
      Username: u.Username,
      XP:       u.XP,
      Level:    u.Level,
      Position: i + 1,
    })
  }
  return entries, nil
}
