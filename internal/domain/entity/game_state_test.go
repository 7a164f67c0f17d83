package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitialGameState(t *testing.T) {
	s := InitialGameState()

	assert.Equal(t, PhaseWelcome, s.Phase)
	assert.Equal(t, DifficultyBeginner, s.Difficulty)
	assert.Empty(t, s.PlayerName)
	assert.Zero(t, s.CurrentQuestionIndex)
	assert.Zero(t, s.Score)
	assert.Zero(t, s.Streak)
	assert.Zero(t, s.BestStreak)
	assert.NotNil(t, s.Answers)
	assert.Empty(t, s.Answers)
}

func TestGameState_CloneDoesNotShareAnswers(t *testing.T) {
	s := InitialGameState()
	s.Answers = append(s.Answers, AnswerRecord{QuestionID: "q1", Correct: true})

	clone := s.Clone()
	clone.Answers[0].Correct = false

	assert.True(t, s.Answers[0].Correct, "Изменение копии не должно затрагивать оригинал")
}

func TestGameState_CorrectCount(t *testing.T) {
	s := GameState{Answers: []AnswerRecord{
		{QuestionID: "1", Correct: true},
		{QuestionID: "2", Correct: false},
		{QuestionID: "3", Correct: true},
	}}

	assert.Equal(t, 2, s.CorrectCount())
}

func TestCalculateAccuracy(t *testing.T) {
	testCases := []struct {
		name     string
		correct  int
		total    int
		expected int
	}{
		{"нет вопросов", 0, 0, 0},
		{"все верно", 5, 5, 100},
		{"ничего", 0, 5, 0},
		{"2 из 3 округляется вверх", 2, 3, 67},
		{"1 из 3 округляется вниз", 1, 3, 33},
		{"половина округляется вверх", 1, 8, 13},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, CalculateAccuracy(tc.correct, tc.total))
		})
	}
}

func TestGrade(t *testing.T) {
	assert.Equal(t, "Master", Grade(90))
	assert.Equal(t, "Great Job", Grade(89))
	assert.Equal(t, "Great Job", Grade(70))
	assert.Equal(t, "Good Effort", Grade(50))
	assert.Equal(t, "Keep Learning", Grade(49))
}
