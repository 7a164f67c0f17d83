package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/pylearn-api/internal/domain/entity"
	apperrors "github.com/yourusername/pylearn-api/internal/pkg/errors"
)

func TestBuiltinQuestions_CoverEveryDifficulty(t *testing.T) {
	repo := NewBuiltinQuestionRepo()
	ctx := context.Background()

	for _, d := range entity.AllDifficulties() {
		questions, err := repo.GetByDifficulty(ctx, d)
		require.NoError(t, err)
		require.NotEmpty(t, questions, "уровень %s пуст", d)

		types := map[entity.QuestionType]bool{}
		for i, q := range questions {
			assert.Equal(t, d, q.Difficulty)
			assert.True(t, q.Type.Valid(), "вопрос %s", q.ID)
			assert.NotEmpty(t, q.CorrectAnswer, "вопрос %s", q.ID)
			if q.Type == entity.QuestionTypeMultipleChoice {
				assert.True(t, q.HasChoices(), "вопрос %s", q.ID)
				assert.Contains(t, []string(q.Choices), q.CorrectAnswer, "вопрос %s", q.ID)
			}
			if i > 0 {
				assert.Less(t, questions[i-1].ID, q.ID)
			}
			types[q.Type] = true
		}
		assert.Len(t, types, 3, "уровень %s должен содержать все типы вопросов", d)
	}
}

func TestBuiltinQuestions_UniqueIDs(t *testing.T) {
	seen := map[string]bool{}
	for _, q := range BuiltinQuestions() {
		assert.False(t, seen[q.ID], "дубликат ID %s", q.ID)
		seen[q.ID] = true
	}
}

func TestQuestionRepo_GetByID(t *testing.T) {
	repo := NewBuiltinQuestionRepo()

	q, err := repo.GetByID(context.Background(), "b02")
	require.NoError(t, err)
	assert.Equal(t, "str", q.CorrectAnswer)

	_, err = repo.GetByID(context.Background(), "zzz")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestQuestionRepo_CreateBatchConflict(t *testing.T) {
	repo := NewQuestionRepo(nil)
	ctx := context.Background()
	batch := []entity.Question{
		{ID: "x1", Difficulty: entity.DifficultyBeginner, Type: entity.QuestionTypeText},
		{ID: "x2", Difficulty: entity.DifficultyAdvanced, Type: entity.QuestionTypeText},
	}

	require.NoError(t, repo.CreateBatch(ctx, batch))
	err := repo.CreateBatch(ctx, []entity.Question{{ID: "x3"}, {ID: "x1"}})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	counts, err := repo.CountByDifficulty(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[entity.DifficultyBeginner])
	assert.Equal(t, int64(1), counts[entity.DifficultyAdvanced])
	_, err = repo.GetByID(ctx, "x3")
	assert.ErrorIs(t, err, apperrors.ErrNotFound, "пакет с конфликтом не применяется")
}
