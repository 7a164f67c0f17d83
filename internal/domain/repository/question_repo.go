package repository

import (
	"context"

	"github.com/yourusername/pylearn-api/internal/domain/entity"
)

// QuestionRepository определяет методы для работы с каталогом вопросов
type QuestionRepository interface {
	// GetByDifficulty возвращает вопросы уровня в стабильном порядке (по ID)
	GetByDifficulty(ctx context.Context, difficulty entity.Difficulty) ([]entity.Question, error)
	GetByID(ctx context.Context, id string) (*entity.Question, error)
	CreateBatch(ctx context.Context, questions []entity.Question) error
	CountByDifficulty(ctx context.Context) (map[entity.Difficulty]int64, error)
}
