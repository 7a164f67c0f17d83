package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/yourusername/pylearn-api/internal/domain/entity"
	apperrors "github.com/yourusername/pylearn-api/internal/pkg/errors"
)

// QuestionRepo реализует repository.QuestionRepository поверх PostgreSQL
type QuestionRepo struct {
	db *gorm.DB
}

// NewQuestionRepo создает новый репозиторий вопросов
func NewQuestionRepo(db *gorm.DB) *QuestionRepo {
	return &QuestionRepo{db: db}
}

// GetByDifficulty возвращает вопросы уровня, упорядоченные по ID
func (r *QuestionRepo) GetByDifficulty(ctx context.Context, difficulty entity.Difficulty) ([]entity.Question, error) {
	var questions []entity.Question
	err := r.db.WithContext(ctx).
		Where("difficulty = ?", difficulty).
		Order("id").
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

// GetByID возвращает вопрос по ID
func (r *QuestionRepo) GetByID(ctx context.Context, id string) (*entity.Question, error) {
	var question entity.Question
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&question).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &question, nil
}

// CreateBatch создает пакет вопросов в одной транзакции.
// Повторный ID возвращает apperrors.ErrConflict.
func (r *QuestionRepo) CreateBatch(ctx context.Context, questions []entity.Question) error {
	if len(questions) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SET CLIENT_ENCODING TO 'UTF8'").Error; err != nil {
			return err
		}
		return tx.Create(&questions).Error
	})
	if isUniqueViolation(err) {
		return apperrors.ErrConflict
	}
	return err
}

// CountByDifficulty возвращает количество вопросов по уровням
func (r *QuestionRepo) CountByDifficulty(ctx context.Context) (map[entity.Difficulty]int64, error) {
	var rows []struct {
		Difficulty entity.Difficulty
		Total      int64
	}
	err := r.db.WithContext(ctx).
		Model(&entity.Question{}).
		Select("difficulty, COUNT(*) AS total").
		Group("difficulty").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[entity.Difficulty]int64, len(rows))
	for _, row := range rows {
		counts[row.Difficulty] = row.Total
	}
	return counts, nil
}

// isUniqueViolation проверяет Postgres unique violation (23505) для pgconn и lib/pq драйверов
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
