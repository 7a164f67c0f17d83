package entity

import "time"

// ScoreEntry - строка лидерборда, создаётся один раз по завершении сессии
type ScoreEntry struct {
	PlayerName string     `json:"playerName"`
	Score      int        `json:"score"`
	Accuracy   int        `json:"accuracy"` // 0-100
	BestStreak int        `json:"bestStreak"`
	Difficulty Difficulty `json:"difficulty"`
	Date       time.Time  `json:"date"`
}

// CalculateAccuracy возвращает процент правильных ответов, округлённый до целого.
// Для нуля вопросов возвращает 0.
func CalculateAccuracy(correct, total int) int {
	if total <= 0 {
		return 0
	}
	// Округление половины вверх, как Math.round для неотрицательных значений
	return (correct*200 + total) / (total * 2)
}

// Grade возвращает текстовую оценку результата по точности
func Grade(accuracy int) string {
	switch {
	case accuracy >= 90:
		return "Master"
	case accuracy >= 70:
		return "Great Job"
	case accuracy >= 50:
		return "Good Effort"
	default:
		return "Keep Learning"
	}
}
