package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/yourusername/pylearn-api/internal/domain/entity"
)

// MockQuestionRepository реализует repository.QuestionRepository
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) GetByDifficulty(ctx context.Context, difficulty entity.Difficulty) ([]entity.Question, error) {
	args := m.Called(ctx, difficulty)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Question), args.Error(1)
}

func (m *MockQuestionRepository) GetByID(ctx context.Context, id string) (*entity.Question, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Question), args.Error(1)
}

func (m *MockQuestionRepository) CreateBatch(ctx context.Context, questions []entity.Question) error {
	args := m.Called(ctx, questions)
	return args.Error(0)
}

func (m *MockQuestionRepository) CountByDifficulty(ctx context.Context) (map[entity.Difficulty]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[entity.Difficulty]int64), args.Error(1)
}

// zeroSource всегда выбирает индекс 0
type zeroSource struct{}

func (zeroSource) Intn(int) int { return 0 }

func beginnerQuestions(ids ...string) []entity.Question {
	out := make([]entity.Question, len(ids))
	for i, id := range ids {
		out[i] = entity.Question{ID: id, Type: entity.QuestionTypeText, Difficulty: entity.DifficultyBeginner}
	}
	return out
}

func questionIDs(questions []entity.Question) []string {
	ids := make([]string, len(questions))
	for i, q := range questions {
		ids[i] = q.ID
	}
	return ids
}

func TestCatalogService_KeepsOrderAndFiltersDifficulty(t *testing.T) {
	ctx := context.Background()
	stored := append(beginnerQuestions("b1", "b2"), entity.Question{ID: "x", Difficulty: entity.DifficultyAdvanced})
	repo := new(MockQuestionRepository)
	repo.On("GetByDifficulty", ctx, entity.DifficultyBeginner).Return(stored, nil)
	svc := NewCatalogService(repo, CatalogOptions{}, nil)

	got := svc.GetQuestionsForDifficulty(ctx, entity.DifficultyBeginner)

	assert.Equal(t, []string{"b1", "b2"}, questionIDs(got))
	repo.AssertExpectations(t)
}

func TestCatalogService_RepositoryErrorYieldsEmpty(t *testing.T) {
	ctx := context.Background()
	repo := new(MockQuestionRepository)
	repo.On("GetByDifficulty", ctx, entity.DifficultyIntermediate).Return(nil, errors.New("db down"))
	svc := NewCatalogService(repo, CatalogOptions{}, nil)

	got := svc.GetQuestionsForDifficulty(ctx, entity.DifficultyIntermediate)

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCatalogService_ShuffleAndCap(t *testing.T) {
	ctx := context.Background()
	stored := beginnerQuestions("a", "b", "c")
	repo := new(MockQuestionRepository)
	repo.On("GetByDifficulty", ctx, entity.DifficultyBeginner).Return(stored, nil)

	shuffled := NewCatalogService(repo, CatalogOptions{Shuffle: true}, zeroSource{})
	assert.Equal(t, []string{"b", "c", "a"}, questionIDs(shuffled.GetQuestionsForDifficulty(ctx, entity.DifficultyBeginner)))
	assert.Equal(t, []string{"a", "b", "c"}, questionIDs(stored), "исходный срез не меняется")

	capped := NewCatalogService(repo, CatalogOptions{QuestionsPerGame: 2}, nil)
	assert.Equal(t, []string{"a", "b"}, questionIDs(capped.GetQuestionsForDifficulty(ctx, entity.DifficultyBeginner)))
}

func TestCatalogService_Difficulties(t *testing.T) {
	ctx := context.Background()
	repo := new(MockQuestionRepository)
	repo.On("CountByDifficulty", ctx).Return(map[entity.Difficulty]int64{
		entity.DifficultyBeginner: 6,
		entity.DifficultyAdvanced: 2,
	}, nil)
	svc := NewCatalogService(repo, CatalogOptions{QuestionsPerGame: 5}, nil)

	levels := svc.Difficulties(ctx)

	if assert.Len(t, levels, 3) {
		assert.Equal(t, entity.DifficultyBeginner, levels[0].Key)
		assert.Equal(t, int64(5), levels[0].QuestionCount)
		assert.Equal(t, int64(0), levels[1].QuestionCount)
		assert.Equal(t, int64(2), levels[2].QuestionCount)
		assert.NotEmpty(t, levels[2].Topics)
	}
}
