package quizmanager

import (
	"github.com/yourusername/pylearn-api/internal/domain/entity"
)

// Tally - часть состояния, которую меняет подсчёт очков
type Tally struct {
	Score      int
	Streak     int
	BestStreak int
}

// ScoringEngine начисляет очки по таблице и бонус за серию
type ScoringEngine struct {
	config *ScoringConfig
}

// NewScoringEngine создает движок подсчёта очков; nil означает таблицу по умолчанию
func NewScoringEngine(config *ScoringConfig) *ScoringEngine {
	if config == nil {
		config = DefaultScoringConfig()
	}
	return &ScoringEngine{config: config}
}

// ApplyResult возвращает новые счёт и серию после ответа на вопрос.
// difficulty - сложность сессии, тип берётся у только что отвеченного вопроса.
func (e *ScoringEngine) ApplyResult(current Tally, question *entity.Question, difficulty entity.Difficulty, correct bool) Tally {
	if !correct {
		return Tally{
			Score:      current.Score,
			Streak:     0,
			BestStreak: current.BestStreak,
		}
	}

	newStreak := current.Streak + 1
	qType := entity.QuestionTypeText
	if question != nil {
		qType = question.Type
	}
	points := e.config.GetBasePoints(difficulty, qType)
	if newStreak >= e.config.StreakThreshold {
		points += e.config.StreakBonus
	}

	return Tally{
		Score:      current.Score + points,
		Streak:     newStreak,
		BestStreak: max(current.BestStreak, newStreak),
	}
}
