package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/yourusername/pylearn-api/internal/domain/entity"
	"github.com/yourusername/pylearn-api/internal/domain/repository"
	apperrors "github.com/yourusername/pylearn-api/internal/pkg/errors"
	"github.com/yourusername/pylearn-api/internal/service/quizmanager"
)

// CatalogOptions задаёт порядок и размер набора вопросов на игру
type CatalogOptions struct {
	Shuffle          bool
	QuestionsPerGame int // 0 - все вопросы уровня
}

// DifficultyInfo - описание уровня вместе с размером каталога
type DifficultyInfo struct {
	entity.DifficultyLevel
	QuestionCount int64 `json:"questionCount"`
}

// CatalogService реализует quizmanager.QuestionCatalog поверх репозитория вопросов
type CatalogService struct {
	repo    repository.QuestionRepository
	options CatalogOptions

	mu  sync.Mutex
	rnd quizmanager.RandomSource
}

// NewCatalogService создает сервис каталога; rnd == nil - источник на текущем времени
func NewCatalogService(repo repository.QuestionRepository, options CatalogOptions, rnd quizmanager.RandomSource) *CatalogService {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &CatalogService{repo: repo, options: options, rnd: rnd}
}

// GetQuestionsForDifficulty возвращает вопросы уровня в порядке игры.
// Ошибка репозитория логируется, результат при этом пустой.
func (s *CatalogService) GetQuestionsForDifficulty(ctx context.Context, difficulty entity.Difficulty) []entity.Question {
	stored, err := s.repo.GetByDifficulty(ctx, difficulty)
	if err != nil {
		log.Printf("[CatalogService] Ошибка загрузки вопросов уровня %s: %v", difficulty, err)
		return []entity.Question{}
	}

	questions := make([]entity.Question, 0, len(stored))
	for _, q := range stored {
		if q.Difficulty != difficulty {
			log.Printf("[CatalogService] Вопрос %s имеет уровень %s вместо %s, пропускаем", q.ID, q.Difficulty, difficulty)
			continue
		}
		questions = append(questions, q)
	}

	if s.options.Shuffle {
		s.shuffle(questions)
	}
	if n := s.options.QuestionsPerGame; n > 0 && len(questions) > n {
		questions = questions[:n]
	}
	return questions
}

// Difficulties возвращает описания уровней с количеством вопросов
func (s *CatalogService) Difficulties(ctx context.Context) []DifficultyInfo {
	counts, err := s.repo.CountByDifficulty(ctx)
	if err != nil {
		log.Printf("[CatalogService] Ошибка подсчёта вопросов: %v", err)
		counts = map[entity.Difficulty]int64{}
	}

	levels := entity.DifficultyLevels()
	out := make([]DifficultyInfo, 0, len(levels))
	for _, level := range levels {
		count := counts[level.Key]
		if n := int64(s.options.QuestionsPerGame); n > 0 && count > n {
			count = n
		}
		out = append(out, DifficultyInfo{DifficultyLevel: level, QuestionCount: count})
	}
	return out
}

// shuffle - перестановка Фишера-Йетса
func (s *CatalogService) shuffle(questions []entity.Question) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(questions) - 1; i > 0; i-- {
		j := s.rnd.Intn(i + 1)
		questions[i], questions[j] = questions[j], questions[i]
	}
}

// SeedCatalog добавляет в репозиторий вопросы, которых там ещё нет, одним пакетом.
// Уже существующие ID пропускаются. Возвращает число добавленных вопросов.
func SeedCatalog(ctx context.Context, repo repository.QuestionRepository, questions []entity.Question) (int, error) {
	var missing []entity.Question
	for _, q := range questions {
		_, err := repo.GetByID(ctx, q.ID)
		switch {
		case err == nil:
			continue
		case errors.Is(err, apperrors.ErrNotFound):
			missing = append(missing, q)
		default:
			return 0, fmt.Errorf("failed to check question %s: %w", q.ID, err)
		}
	}
	if len(missing) == 0 {
		log.Printf("[CatalogService] Все %d вопросов уже в каталоге", len(questions))
		return 0, nil
	}

	if err := repo.CreateBatch(ctx, missing); err != nil {
		return 0, fmt.Errorf("failed to insert %d questions: %w", len(missing), err)
	}
	log.Printf("[CatalogService] Добавлено вопросов: %d из %d", len(missing), len(questions))
	return len(missing), nil
}
