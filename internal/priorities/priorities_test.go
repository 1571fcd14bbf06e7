package priorities

import (
  "errors"
  "testing"
  "github.com/google/uuid"
  "github.com/leveluphq/levelup-backend/internal/apierr"
)

var (
  catSport     = uuid.MustParse("00000000-0000-0000-0000-000000000001")
  catFreelance = uuid.MustParse("00000000-0000-0000-0000-000000000002")
  catMindset   = uuid.MustParse("00000000-0000-0000-0000-000000000003")
)

func qid(n byte) uuid.UUID {
  return uuid.UUID{0xaa, 15: n}
}

func testWeights() map[uuid.UUID][]CategoryWeight {
  weights := make(map[uuid.UUID][]CategoryWeight)
  for n := byte(1); n <= 4; n++ {
    weights[qid(n)] = []CategoryWeight{{CategoryID: catSport, Weight: 1}}
  }
  for n := byte(5); n <= 8; n++ {
    weights[qid(n)] = []CategoryWeight{{CategoryID: catFreelance, Weight: 1}}
  }
  for n := byte(9); n <= 12; n++ {
    weights[qid(n)] = []CategoryWeight{{CategoryID: catMindset, Weight: 0.5}}
  }
  return weights
}

func TestBonusMultiplierForRank(t *testing.T) {
  rank := func(r int) *int { return &r }
  cases := []struct {
    name    string
    rank    *int
    want    float64
  }{
    {name: "rank_1", rank: rank(1), want: 1.5},
    {name: "rank_2", rank: rank(2), want: 1.25},
    {name: "rank_3", rank: rank(3), want: 1.0},
    {name: "rank_9", rank: rank(9), want: 1.0},
    {name: "unranked", rank: nil, want: 1.0},
  }
  for _, tc := range cases {
    t.Run(tc.name, func(t *testing.T) {
      if got := BonusMultiplierForRank(tc.rank); got != tc.want {
        t.Fatalf("BonusMultiplierForRank=%v, want %v", got, tc.want)
      }
    })
  }
}

func TestScoreFromAnswersAccumulates(t *testing.T) {
  weights := map[uuid.UUID][]CategoryWeight{
    qid(1): {{CategoryID: catSport, Weight: 2}, {CategoryID: catMindset, Weight: 1}},
    qid(2): {{CategoryID: catFreelance, Weight: 1}},
  }
  answers := []Answer{
    {QuestionID: qid(1), Value: 4},
    {QuestionID: qid(2), Value: 3},
  }
  raw := ScoreFromAnswers(answers, weights)
  if raw[catSport] != 8 {
    t.Fatalf("sport raw score: want=8 got=%v", raw[catSport])
  }
  if raw[catMindset] != 4 {
    t.Fatalf("mindset raw score: want=4 got=%v", raw[catMindset])
  }
  if raw[catFreelance] != 3 {
    t.Fatalf("freelance raw score: want=3 got=%v", raw[catFreelance])
  }
}

func TestScoreFromAnswersCoversUnansweredCategories(t *testing.T) {
  weights := testWeights()
  answers := []Answer{{QuestionID: qid(1), Value: 5}}
  raw := ScoreFromAnswers(answers, weights)
  if got, ok := raw[catMindset]; !ok || got != 0 {
    t.Fatalf("unanswered category should score 0, got %v (present=%v)", got, ok)
  }
}

func TestScoreFromAnswersIgnoresUnknownQuestion(t *testing.T) {
  weights := testWeights()
  unknown := uuid.MustParse("ffffffff-ffff-ffff-ffff-ffffffffffff")
  raw := ScoreFromAnswers([]Answer{{QuestionID: unknown, Value: 5}}, weights)
  for cid, s := range raw {
    if s != 0 {
      t.Fatalf("unknown question contributed %v to %s", s, cid)
    }
  }
}

func TestNormalizeScores(t *testing.T) {
  raw := map[uuid.UUID]float64{catSport: 40, catFreelance: 20, catMindset: 0}
  norm := NormalizeScores(raw)
  if norm[catSport] != 100 {
    t.Fatalf("max raw should normalize to 100, got %v", norm[catSport])
  }
  if norm[catFreelance] != 50 {
    t.Fatalf("half of max should normalize to 50, got %v", norm[catFreelance])
  }
  if norm[catMindset] != 0 {
    t.Fatalf("zero raw should stay 0, got %v", norm[catMindset])
  }
}

func TestNormalizeScoresAllZero(t *testing.T) {
  norm := NormalizeScores(map[uuid.UUID]float64{catSport: 0, catFreelance: 0})
  for cid, s := range norm {
    if s != 0 {
      t.Fatalf("all-zero input should normalize to 0, got %v for %s", s, cid)
    }
  }
}

func TestRankCategoriesDeterministicTieBreak(t *testing.T) {
  scores := map[uuid.UUID]float64{catSport: 80, catFreelance: 80, catMindset: 100}
  for i := 0; i < 20; i++ {
    ranked := RankCategories(scores)
    if len(ranked) != 3 {
      t.Fatalf("ranked length: want=3 got=%d", len(ranked))
    }
    if ranked[0].CategoryID != catMindset || ranked[0].Rank != 1 {
      t.Fatalf("rank 1: want=%s got=%+v", catMindset, ranked[0])
    }
    // Ties resolve by ascending category id.
    if ranked[1].CategoryID != catSport || ranked[2].CategoryID != catFreelance {
      t.Fatalf("tie break not deterministic: %+v", ranked)
    }
  }
}

func TestValidateAnswersGate(t *testing.T) {
  makeAnswers := func(n int) []Answer {
    out := make([]Answer, 0, n)
    for i := 1; i <= n; i++ {
      out = append(out, Answer{QuestionID: qid(byte(i)), Value: 3})
    }
    return out
  }
  if err := ValidateAnswers(makeAnswers(12)); err != nil {
    t.Fatalf("12 answers should pass: %v", err)
  }
  err := ValidateAnswers(makeAnswers(11))
  var ae *apierr.Error
  if !errors.As(err, &ae) || ae.Code != apierr.CodeValidation {
    t.Fatalf("11 answers: want validation error, got %v", err)
  }
}

func TestValidateAnswersValueRange(t *testing.T) {
  answers := []Answer{{QuestionID: qid(1), Value: 6}}
  err := ValidateAnswers(answers)
  var ae *apierr.Error
  if !errors.As(err, &ae) || ae.Code != apierr.CodeValidation {
    t.Fatalf("value 6: want validation error, got %v", err)
  }
}

func TestApplyManualOrder(t *testing.T) {
  ranks, err := ApplyManualOrder([]uuid.UUID{catMindset, catSport})
  if err != nil {
    t.Fatalf("ApplyManualOrder: %v", err)
  }
  if ranks[catMindset] != 1 || ranks[catSport] != 2 {
    t.Fatalf("ranks: %v", ranks)
  }
  if _, ok := ranks[catFreelance]; ok {
    t.Fatalf("omitted category should stay unranked")
  }
}

func TestApplyManualOrderRejectsDuplicates(t *testing.T) {
  _, err := ApplyManualOrder([]uuid.UUID{catSport, catSport})
  var ae *apierr.Error
  if !errors.As(err, &ae) || ae.Code != apierr.CodeValidation {
    t.Fatalf("duplicate ids: want validation error, got %v", err)
  }
}

func TestSyntheticScoresReproduceOrder(t *testing.T) {
  order := []uuid.UUID{catFreelance, catMindset, catSport}
  scores := SyntheticScores(order)
  ranked := RankCategories(scores)
  for i, cid := range order {
    if ranked[i].CategoryID != cid {
      t.Fatalf("rank %d: want=%s got=%s", i+1, cid, ranked[i].CategoryID)
    }
  }
}

func TestEndToEndScoringDeterminism(t *testing.T) {
  weights := testWeights()
  answers := []Answer{
    {QuestionID: qid(1), Value: 5}, {QuestionID: qid(2), Value: 5},
    {QuestionID: qid(3), Value: 4}, {QuestionID: qid(4), Value: 4},
    {QuestionID: qid(5), Value: 3}, {QuestionID: qid(6), Value: 3},
    {QuestionID: qid(7), Value: 2}, {QuestionID: qid(8), Value: 2},
    {QuestionID: qid(9), Value: 5}, {QuestionID: qid(10), Value: 5},
    {QuestionID: qid(11), Value: 5}, {QuestionID: qid(12), Value: 5},
  }
  if err := ValidateAnswers(answers); err != nil {
    t.Fatalf("ValidateAnswers: %v", err)
  }
  first := RankCategories(NormalizeScores(ScoreFromAnswers(answers, weights)))
  for i := 0; i < 10; i++ {
    again := RankCategories(NormalizeScores(ScoreFromAnswers(answers, weights)))
    for j := range first {
      if first[j] != again[j] {
        t.Fatalf("ranking not deterministic: run %d position %d: %+v vs %+v", i, j, first[j], again[j])
      }
    }
  }
  // sport: 5+5+4+4 = 18 -> 100; freelance: 3+3+2+2 = 10; mindset: (5+5+5+5)*0.5 = 10.
  if first[0].CategoryID != catSport || first[0].Score != 100 {
    t.Fatalf("rank 1: %+v", first[0])
  }
  if first[1].Score != first[2].Score {
    t.Fatalf("expected tie between freelance and mindset: %+v", first[1:])
  }
  if first[1].CategoryID != catFreelance || first[2].CategoryID != catMindset {
    t.Fatalf("tie break by category id: %+v", first[1:])
  }
}
