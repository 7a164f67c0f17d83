package quizmanager

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/pylearn-api/internal/domain/entity"
)

var textQuestion = &entity.Question{ID: "t", Type: entity.QuestionTypeText}

func TestApplyResult_StreakBonusStartsAtThirdCorrect(t *testing.T) {
	engine := NewScoringEngine(nil)
	tally := Tally{}

	tally = engine.ApplyResult(tally, textQuestion, entity.DifficultyBeginner, true)
	assert.Equal(t, 10, tally.Score)
	tally = engine.ApplyResult(tally, textQuestion, entity.DifficultyBeginner, true)
	assert.Equal(t, 20, tally.Score)
	tally = engine.ApplyResult(tally, textQuestion, entity.DifficultyBeginner, true)

	assert.Equal(t, 35, tally.Score, "10+10+(10+5)")
	assert.Equal(t, 3, tally.Streak)
	assert.Equal(t, 3, tally.BestStreak)
}

func TestApplyResult_BestStreakNeverDecreases(t *testing.T) {
	engine := NewScoringEngine(nil)
	tally := Tally{}

	sequence := []bool{true, true, false, true, true, true}
	expectedStreaks := []int{1, 2, 0, 1, 2, 3}
	expectedBest := []int{1, 2, 2, 2, 2, 3}

	for i, correct := range sequence {
		prevBest := tally.BestStreak
		tally = engine.ApplyResult(tally, textQuestion, entity.DifficultyBeginner, correct)

		assert.Equal(t, expectedStreaks[i], tally.Streak, "шаг %d", i)
		assert.Equal(t, expectedBest[i], tally.BestStreak, "шаг %d", i)
		assert.GreaterOrEqual(t, tally.BestStreak, prevBest)
		assert.GreaterOrEqual(t, tally.BestStreak, tally.Streak)
	}
	assert.Equal(t, 10+10+10+10+15, tally.Score)
}

func TestApplyResult_IncorrectKeepsScore(t *testing.T) {
	engine := NewScoringEngine(nil)

	tally := engine.ApplyResult(Tally{Score: 42, Streak: 4, BestStreak: 6}, textQuestion, entity.DifficultyAdvanced, false)

	assert.Equal(t, Tally{Score: 42, Streak: 0, BestStreak: 6}, tally)
}

func TestApplyResult_PointTable(t *testing.T) {
	engine := NewScoringEngine(nil)

	testCases := []struct {
		difficulty entity.Difficulty
		qType      entity.QuestionType
		expected   int
	}{
		{entity.DifficultyBeginner, entity.QuestionTypeText, 10},
		{entity.DifficultyBeginner, entity.QuestionTypeMultipleChoice, 10},
		{entity.DifficultyBeginner, entity.QuestionTypeCode, 20},
		{entity.DifficultyIntermediate, entity.QuestionTypeText, 15},
		{entity.DifficultyIntermediate, entity.QuestionTypeCode, 30},
		{entity.DifficultyAdvanced, entity.QuestionTypeMultipleChoice, 20},
		{entity.DifficultyAdvanced, entity.QuestionTypeCode, 40},
	}

	for _, tc := range testCases {
		t.Run(string(tc.difficulty)+"/"+string(tc.qType), func(t *testing.T) {
			q := &entity.Question{Type: tc.qType}
			tally := engine.ApplyResult(Tally{}, q, tc.difficulty, true)
			assert.Equal(t, tc.expected, tally.Score)
		})
	}
}

func TestApplyResult_IgnoresQuestionPoints(t *testing.T) {
	engine := NewScoringEngine(nil)
	q := &entity.Question{Type: entity.QuestionTypeText, Points: 999}

	tally := engine.ApplyResult(Tally{}, q, entity.DifficultyBeginner, true)

	assert.Equal(t, 10, tally.Score, "Очки берутся из таблицы, а не из вопроса")
}

func TestScoringConfig_Validate(t *testing.T) {
	require.NoError(t, DefaultScoringConfig().Validate())

	broken := DefaultScoringConfig()
	broken.Points[entity.DifficultyAdvanced][entity.QuestionTypeCode] = 5
	assert.Error(t, broken.Validate())

	noBonusStart := DefaultScoringConfig()
	noBonusStart.StreakThreshold = 0
	assert.Error(t, noBonusStart.Validate())

	missingRow := DefaultScoringConfig()
	delete(missingRow.Points, entity.DifficultyIntermediate)
	assert.Error(t, missingRow.Validate())
}

func TestGetBasePoints_UnknownDifficulty(t *testing.T) {
	cfg := DefaultScoringConfig()
	assert.Zero(t, cfg.GetBasePoints(entity.Difficulty("expert"), entity.QuestionTypeText))
	assert.Equal(t, 10, cfg.GetBasePoints(entity.DifficultyBeginner, entity.QuestionType("essay")))
}
