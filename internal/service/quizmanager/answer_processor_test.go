package quizmanager

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/pylearn-api/internal/domain/entity"
)

// fixedSource всегда возвращает один и тот же индекс
type fixedSource int

func (f fixedSource) Intn(n int) int { return int(f) % n }

func processorSession(t *testing.T, questions ...entity.Question) *Session {
	t.Helper()
	s := NewSession(staticCatalog{entity.DifficultyBeginner: questions}, nil)
	require.NoError(t, s.SetPlayerName("Ada"))
	require.NoError(t, s.StartGame(context.Background()))
	return s
}

func TestProcessAnswer_CorrectTextAnswer(t *testing.T) {
	s := processorSession(t, entity.Question{ID: "t1", Type: entity.QuestionTypeText, CorrectAnswer: "variable", Hint: "h"})
	ap := NewAnswerProcessor(NewFeedbackPicker(fixedSource(1)))

	outcome, err := ap.ProcessAnswer(s, "it is a variable")

	require.NoError(t, err)
	assert.True(t, outcome.Correct)
	assert.Equal(t, Encouragements[1], outcome.Feedback)
	assert.Equal(t, 10, outcome.PointsEarned)
	assert.Equal(t, 10, outcome.Score)
	assert.Equal(t, 1, outcome.Streak)
	assert.Empty(t, outcome.CorrectAnswer)
	assert.Len(t, s.State().Answers, 1)
}

func TestProcessAnswer_WrongTextAnswerAddsHint(t *testing.T) {
	s := processorSession(t, entity.Question{ID: "t1", Type: entity.QuestionTypeText, CorrectAnswer: "variable", Hint: "Think of a named box."})
	ap := NewAnswerProcessor(NewFeedbackPicker(fixedSource(0)))

	outcome, err := ap.ProcessAnswer(s, "varible")

	require.NoError(t, err)
	assert.False(t, outcome.Correct)
	assert.Equal(t, HintsOnWrong[0]+" Think of a named box.", outcome.Feedback)
	assert.Zero(t, outcome.PointsEarned)
	assert.Empty(t, outcome.CorrectAnswer, "Для текстовых вопросов ответ не раскрывается")
}

func TestProcessAnswer_WrongChoiceRevealsAnswer(t *testing.T) {
	s := processorSession(t, entity.Question{
		ID: "m1", Type: entity.QuestionTypeMultipleChoice,
		Choices: entity.StringArray{"list", "tuple"}, CorrectAnswer: "tuple",
	})
	ap := NewAnswerProcessor(NewSeededFeedbackPicker(1))

	outcome, err := ap.ProcessAnswer(s, "list")

	require.NoError(t, err)
	assert.False(t, outcome.Correct)
	assert.Equal(t, "The correct answer is: tuple", outcome.Feedback)
	assert.Equal(t, "tuple", outcome.CorrectAnswer)
}

func TestProcessAnswer_WrongCodeUsesEvaluatorFeedback(t *testing.T) {
	s := processorSession(t, *codeQuestion(greetSolution))
	ap := NewAnswerProcessor(NewSeededFeedbackPicker(1))

	outcome, err := ap.ProcessAnswer(s, "print('hello')")

	require.NoError(t, err)
	assert.False(t, outcome.Correct)
	assert.Equal(t, "Not quite. Use the return keyword.", outcome.Feedback)
	assert.Equal(t, greetSolution, outcome.CorrectAnswer)
}

func TestProcessAnswer_RejectsEmptyAndDuplicate(t *testing.T) {
	s := processorSession(t, entity.Question{ID: "t1", Type: entity.QuestionTypeText, CorrectAnswer: "loop"})
	ap := NewAnswerProcessor(nil)

	_, err := ap.ProcessAnswer(s, "   ")
	assert.ErrorIs(t, err, ErrEmptyAnswer)
	assert.Empty(t, s.State().Answers)

	_, err = ap.ProcessAnswer(s, "loop")
	require.NoError(t, err)

	_, err = ap.ProcessAnswer(s, "loop")
	assert.ErrorIs(t, err, ErrAlreadyAnswered)
	assert.Len(t, s.State().Answers, 1)
}

func TestProcessAnswer_NoActiveQuestion(t *testing.T) {
	s := NewSession(staticCatalog{}, nil)
	ap := NewAnswerProcessor(nil)

	_, err := ap.ProcessAnswer(s, "anything")

	assert.ErrorIs(t, err, ErrNoActiveQuestion)
}

func TestProcessAnswer_PointsEarnedIncludesStreakBonus(t *testing.T) {
	q := func(id string) entity.Question {
		return entity.Question{ID: id, Type: entity.QuestionTypeText, CorrectAnswer: "loop"}
	}
	s := processorSession(t, q("t1"), q("t2"), q("t3"))
	ap := NewAnswerProcessor(NewSeededFeedbackPicker(7))

	var earned []int
	for i := 0; i < 3; i++ {
		outcome, err := ap.ProcessAnswer(s, "a loop")
		require.NoError(t, err)
		earned = append(earned, outcome.PointsEarned)
		require.NoError(t, s.NextQuestion())
	}

	assert.Equal(t, []int{10, 10, 15}, earned)
	assert.Equal(t, 35, s.Tally().Score)
}
