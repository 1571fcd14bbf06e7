package db

import (
  "fmt"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/leveluphq/levelup-backend/internal/types"
)

type seedQuestion struct {
  question string
  weights  map[string]float64
}

// The default French questionnaire from the original catalog: 15 Likert
// questions, each weighted onto one or two categories. Three categories
// exist at seed time; more can be added through the API later.
var seedCategories = []string{"sport", "freelance", "mindset"}

var seedQuestions = []seedQuestion{
  {question: "Je veux améliorer ma condition physique cette année.", weights: map[string]float64{"sport": 1}},
  {question: "Faire du sport plusieurs fois par semaine me motive.", weights: map[string]float64{"sport": 1}},
  {question: "Je me sens mieux les jours où je bouge.", weights: map[string]float64{"sport": 1}},
  {question: "Je veux progresser sur un objectif sportif précis.", weights: map[string]float64{"sport": 1}},
  {question: "Je veux développer mon activité indépendante.", weights: map[string]float64{"freelance": 1}},
  {question: "Trouver de nouveaux clients est une priorité pour moi.", weights: map[string]float64{"freelance": 1}},
  {question: "Je veux consacrer du temps chaque semaine à mes projets pro.", weights: map[string]float64{"freelance": 1}},
  {question: "Augmenter mes revenus indépendants compte beaucoup pour moi.", weights: map[string]float64{"freelance": 1}},
  {question: "Je veux travailler sur ma discipline personnelle.", weights: map[string]float64{"mindset": 1}},
  {question: "Méditer ou tenir un journal m'intéresse.", weights: map[string]float64{"mindset": 1}},
  {question: "Je veux mieux gérer mon stress au quotidien.", weights: map[string]float64{"mindset": 1}},
  {question: "Prendre du recul sur mes habitudes est important pour moi.", weights: map[string]float64{"mindset": 1}},
  {question: "Je veux construire une routine matinale stable.", weights: map[string]float64{"mindset": 0.5, "sport": 0.5}},
  {question: "Apprendre en continu fait partie de mes objectifs.", weights: map[string]float64{"freelance": 0.5, "mindset": 0.5}},
  // Calibration question: no category weights on purpose.
  {question: "Je réponds à ce questionnaire honnêtement.", weights: nil},
}

var seedQuotes = []types.Quote{
  {Text: "Le succès est la somme de petits efforts répétés jour après jour.", Author: "Robert Collier"},
  {Text: "La discipline est le pont entre les objectifs et les accomplissements.", Author: "Jim Rohn"},
  {Text: "Fais de ta vie un rêve, et d'un rêve, une réalité.", Author: "Antoine de Saint-Exupéry"},
  {Text: "Le meilleur moment pour planter un arbre était il y a vingt ans. Le deuxième meilleur moment, c'est maintenant.", Author: ""},
  {Text: "On ne subit pas l'avenir, on le fait.", Author: "Georges Bernanos"},
}

// SeedDefaults inserts the reference data (categories, questionnaire,
// quotes) when the tables are empty. Running it twice is a no-op.
func (s *PostgresService) SeedDefaults() error {
  return s.db.Transaction(func(tx *gorm.DB) error {
    var categoryCount int64
    if err := tx.Model(&types.Category{}).Count(&categoryCount).Error; err != nil {
      return fmt.Errorf("Failed to count categories: %w", err)
    }
    categoryIDs := make(map[string]uuid.UUID, len(seedCategories))
    if categoryCount == 0 {
      for _, name := range seedCategories {
        cat := types.Category{ID: uuid.New(), Name: name}
        if err := tx.Create(&cat).Error; err != nil {
          return fmt.Errorf("Failed to seed category %s: %w", name, err)
        }
        categoryIDs[name] = cat.ID
      }
      s.log.Info("Seeded categories", "count", len(seedCategories))
    } else {
      var existing []types.Category
      if err := tx.Find(&existing).Error; err != nil {
        return fmt.Errorf("Failed to load categories: %w", err)
      }
      for _, cat := range existing {
        categoryIDs[cat.Name] = cat.ID
      }
    }

    var questionCount int64
    if err := tx.Model(&types.OnboardingQuestion{}).Count(&questionCount).Error; err != nil {
      return fmt.Errorf("Failed to count onboarding questions: %w", err)
    }
    if questionCount == 0 {
      for i, sq := range seedQuestions {
        q := types.OnboardingQuestion{
          ID:       uuid.New(),
          Language: "fr",
          Question: sq.question,
          Position: i + 1,
          Active:   true,
        }
        if err := tx.Create(&q).Error; err != nil {
          return fmt.Errorf("Failed to seed question %d: %w", i+1, err)
        }
        for name, weight := range sq.weights {
          cid, ok := categoryIDs[name]
          if !ok {
            return fmt.Errorf("Seed question %d references unknown category %s", i+1, name)
          }
          w := types.QuestionCategoryWeight{
            ID:         uuid.New(),
            QuestionID: q.ID,
            CategoryID: cid,
            Weight:     weight,
          }
          if err := tx.Create(&w).Error; err != nil {
            return fmt.Errorf("Failed to seed weight for question %d: %w", i+1, err)
          }
        }
      }
      s.log.Info("Seeded onboarding questionnaire", "questions", len(seedQuestions))
    }

    var quoteCount int64
    if err := tx.Model(&types.Quote{}).Count(&quoteCount).Error; err != nil {
      return fmt.Errorf("Failed to count quotes: %w", err)
    }
    if quoteCount == 0 {
      for _, q := range seedQuotes {
        q.ID = uuid.New()
        if err := tx.Create(&q).Error; err != nil {
          return fmt.Errorf("Failed to seed quote: %w", err)
        }
      }
      s.log.Info("Seeded quotes", "count", len(seedQuotes))
    }
    return nil
  })
}
