package quizmanager

import (
	"fmt"

	"github.com/yourusername/pylearn-api/internal/domain/entity"
)

// Значения по умолчанию для бонуса за серию
const (
	DefaultStreakBonus     = 5
	DefaultStreakThreshold = 3
)

// ScoringConfig содержит таблицу очков и настройки бонуса за серию
type ScoringConfig struct {
	// Points - базовые очки за правильный ответ: сложность → тип вопроса
	Points map[entity.Difficulty]map[entity.QuestionType]int

	// StreakBonus - фиксированный бонус, добавляемый к базовым очкам
	StreakBonus int

	// StreakThreshold - длина серии, начиная с которой начисляется бонус
	StreakThreshold int
}

// DefaultScoringConfig возвращает таблицу очков по умолчанию
func DefaultScoringConfig() *ScoringConfig {
	return &ScoringConfig{
		Points: map[entity.Difficulty]map[entity.QuestionType]int{
			entity.DifficultyBeginner: {
				entity.QuestionTypeText:           10,
				entity.QuestionTypeMultipleChoice: 10,
				entity.QuestionTypeCode:           20,
			},
			entity.DifficultyIntermediate: {
				entity.QuestionTypeText:           15,
				entity.QuestionTypeMultipleChoice: 15,
				entity.QuestionTypeCode:           30,
			},
			entity.DifficultyAdvanced: {
				entity.QuestionTypeText:           20,
				entity.QuestionTypeMultipleChoice: 20,
				entity.QuestionTypeCode:           40,
			},
		},
		StreakBonus:     DefaultStreakBonus,
		StreakThreshold: DefaultStreakThreshold,
	}
}

// GetBasePoints возвращает базовые очки для сложности и типа вопроса.
// Неизвестный тип оценивается как текстовый вопрос, неизвестная сложность даёт 0.
func (c *ScoringConfig) GetBasePoints(difficulty entity.Difficulty, qType entity.QuestionType) int {
	row, ok := c.Points[difficulty]
	if !ok {
		return 0
	}
	if points, ok := row[qType]; ok {
		return points
	}
	return row[entity.QuestionTypeText]
}

// Validate проверяет монотонность таблицы: код дороже текста и выбора,
// а внутри типа более высокая сложность дороже
func (c *ScoringConfig) Validate() error {
	if c.StreakBonus < 0 {
		return fmt.Errorf("streak bonus must be non-negative, got %d", c.StreakBonus)
	}
	if c.StreakThreshold < 1 {
		return fmt.Errorf("streak threshold must be at least 1, got %d", c.StreakThreshold)
	}

	types := []entity.QuestionType{entity.QuestionTypeText, entity.QuestionTypeMultipleChoice, entity.QuestionTypeCode}
	for _, d := range entity.AllDifficulties() {
		row, ok := c.Points[d]
		if !ok {
			return fmt.Errorf("points table has no row for difficulty %q", d)
		}
		for _, t := range types {
			if row[t] <= 0 {
				return fmt.Errorf("points for %s/%s must be positive", d, t)
			}
		}
		if row[entity.QuestionTypeText] != row[entity.QuestionTypeMultipleChoice] {
			return fmt.Errorf("text and multiple-choice points differ for %s", d)
		}
		if row[entity.QuestionTypeCode] <= row[entity.QuestionTypeText] {
			return fmt.Errorf("code points must exceed text points for %s", d)
		}
	}

	levels := entity.AllDifficulties()
	for i := 1; i < len(levels); i++ {
		for _, t := range types {
			if c.Points[levels[i]][t] <= c.Points[levels[i-1]][t] {
				return fmt.Errorf("%s points for %s must exceed %s", t, levels[i], levels[i-1])
			}
		}
	}
	return nil
}
