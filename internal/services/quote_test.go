package services

import (
  "context"
  "errors"
  "testing"
  "time"
  "github.com/google/uuid"
  "github.com/leveluphq/levelup-backend/internal/apierr"
  "github.com/leveluphq/levelup-backend/internal/types"
)

func seedQuotes(t *testing.T, env *testEnv, texts ...string) {
  t.Helper()
  base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
  for i, text := range texts {
    q := &types.Quote{ID: uuid.New(), Text: text, CreatedAt: base.Add(time.Duration(i) * time.Hour)}
    if err := env.db.Create(q).Error; err != nil {
      t.Fatalf("create quote: %v", err)
    }
  }
}

func TestQuoteOfTheDayIsStableWithinADay(t *testing.T) {
  env := newTestEnv(t)
  qs := NewQuoteService(env.db, env.log, env.quoteRepo).(*quoteService)
  seedQuotes(t, env, "first", "second", "third")

  morning := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
  evening := time.Date(2025, 3, 10, 22, 0, 0, 0, time.UTC)

  qs.now = func() time.Time { return morning }
  q1, err := qs.QuoteOfTheDay(context.Background())
  if err != nil {
    t.Fatalf("QuoteOfTheDay: %v", err)
  }
  qs.now = func() time.Time { return evening }
  q2, err := qs.QuoteOfTheDay(context.Background())
  if err != nil {
    t.Fatalf("QuoteOfTheDay: %v", err)
  }
  if q1.ID != q2.ID {
    t.Fatalf("quote changed within the same day: %s vs %s", q1.Text, q2.Text)
  }
}

func TestQuoteOfTheDayRotatesAcrossDays(t *testing.T) {
  env := newTestEnv(t)
  qs := NewQuoteService(env.db, env.log, env.quoteRepo).(*quoteService)
  seedQuotes(t, env, "first", "second", "third")

  day := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
  seen := make(map[uuid.UUID]bool)
  for i := 0; i < 3; i++ {
    at := day.AddDate(0, 0, i)
    qs.now = func() time.Time { return at }
    q, err := qs.QuoteOfTheDay(context.Background())
    if err != nil {
      t.Fatalf("QuoteOfTheDay day %d: %v", i, err)
    }
    seen[q.ID] = true
  }
  if len(seen) != 3 {
    t.Fatalf("three consecutive days should cycle all three quotes, saw %d", len(seen))
  }
}

func TestQuoteOfTheDayEmptyCatalog(t *testing.T) {
  env := newTestEnv(t)
  qs := NewQuoteService(env.db, env.log, env.quoteRepo)

  _, err := qs.QuoteOfTheDay(context.Background())
  var ae *apierr.Error
  if !errors.As(err, &ae) || ae.Code != apierr.CodeNotFound {
    t.Fatalf("empty catalog: want not found, got %v", err)
  }
}
