package quizmanager

import (
	"context"
	"errors"

	"github.com/yourusername/pylearn-api/internal/domain/entity"
)

// Максимальная длина имени игрока (в символах)
const MaxPlayerNameLength = 30

// Ошибки нарушения контракта сессии. Состояние при этом не меняется.
var (
	ErrInvalidPhase      = errors.New("operation is not allowed in the current phase")
	ErrInvalidDifficulty = errors.New("unknown difficulty")
	ErrEmptyPlayerName   = errors.New("player name is empty")
	ErrPlayerNameTooLong = errors.New("player name is too long")
	ErrNoActiveQuestion  = errors.New("no active question")
	ErrAlreadyAnswered   = errors.New("current question is already answered")
	ErrEmptyAnswer       = errors.New("answer is empty")
)

// QuestionCatalog отдаёт последовательность вопросов для уровня сложности.
// Порядок результата считается порядком игры.
type QuestionCatalog interface {
	GetQuestionsForDifficulty(ctx context.Context, difficulty entity.Difficulty) []entity.Question
}

// Snapshot - состояние сессии вместе с производными значениями
type Snapshot struct {
	State           entity.GameState
	CurrentQuestion *entity.Question
	TotalQuestions  int
	Progress        float64
	IsGameOver      bool
	Answered        bool
}
