package quizmanager

import (
	"strings"
	"unicode"

	"github.com/yourusername/pylearn-api/internal/domain/entity"
)

// Пороговые значения доли совпавших строк для проверки кода
const (
	CodePassRatio    = 0.8
	CodePartialRatio = 0.5
)

// Тексты обратной связи для проверки кода
const (
	FeedbackPerfectMatch = "Perfect match! Your code is correct."
	FeedbackGreatJob     = "Great job! Your solution works correctly."
	FeedbackStructure    = "You're on the right track! Check the structure of your code carefully."
	FeedbackNotQuite     = "Not quite."
)

// Verdict - результат проверки ответа
type Verdict struct {
	Correct    bool
	Feedback   string  // Заполняется только для вопросов с кодом
	MatchRatio float64 // Доля совпавших строк эталона, только для кода
}

// Evaluate проверяет ответ в зависимости от типа вопроса.
// Неизвестный тип всегда считается неверным ответом.
func Evaluate(answer string, question *entity.Question) Verdict {
	switch question.Type {
	case entity.QuestionTypeText:
		return Verdict{Correct: EvaluateText(answer, question)}
	case entity.QuestionTypeMultipleChoice:
		return Verdict{Correct: EvaluateMultipleChoice(answer, question)}
	case entity.QuestionTypeCode:
		return EvaluateCode(answer, question)
	default:
		return Verdict{}
	}
}

// EvaluateText проверяет, содержит ли ответ ключевое слово правильного ответа (без учёта регистра)
func EvaluateText(answer string, question *entity.Question) bool {
	normalized := strings.ToLower(trimCodeSpace(answer))
	keyword := strings.ToLower(trimCodeSpace(question.CorrectAnswer))
	return strings.Contains(normalized, keyword)
}

// EvaluateMultipleChoice проверяет точное совпадение выбранного варианта
func EvaluateMultipleChoice(selected string, question *entity.Question) bool {
	return selected == question.CorrectAnswer
}

// EvaluateCode сравнивает код со структурой эталонного решения.
// Код не исполняется: сравниваются нормализованные строки.
func EvaluateCode(code string, question *entity.Question) Verdict {
	cleanUser := normalizeCode(code)
	cleanExpected := normalizeCode(question.CorrectAnswer)
	ratio := matchRatio(cleanUser, extractKeyParts(question.CorrectAnswer))

	switch {
	case cleanUser == cleanExpected:
		return Verdict{Correct: true, Feedback: FeedbackPerfectMatch, MatchRatio: ratio}
	case ratio >= CodePassRatio:
		return Verdict{Correct: true, Feedback: FeedbackGreatJob, MatchRatio: ratio}
	case ratio >= CodePartialRatio:
		return Verdict{Correct: false, Feedback: FeedbackStructure, MatchRatio: ratio}
	default:
		return Verdict{Correct: false, Feedback: FeedbackNotQuite + " " + question.Hint, MatchRatio: ratio}
	}
}

// matchRatio возвращает долю ключевых строк, найденных в нормализованном коде.
// Для пустого списка возвращает 0.
func matchRatio(cleanUser string, keyParts []string) float64 {
	if len(keyParts) == 0 {
		return 0
	}
	matched := 0
	for _, part := range keyParts {
		if strings.Contains(cleanUser, normalizeCode(part)) {
			matched++
		}
	}
	return float64(matched) / float64(len(keyParts))
}

// normalizeCode убирает пустые строки и комментарии, приводит к нижнему регистру
// и схлопывает пробельные последовательности в один пробел
func normalizeCode(code string) string {
	lines := extractKeyParts(code)
	joined := strings.ToLower(strings.Join(lines, "\n"))
	return strings.Join(strings.FieldsFunc(joined, isCodeSpace), " ")
}

// extractKeyParts возвращает значимые строки кода: обрезанные, без пустых и без комментариев
func extractKeyParts(code string) []string {
	var parts []string
	for _, line := range strings.Split(code, "\n") {
		line = trimCodeSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts = append(parts, line)
	}
	return parts
}

// isCodeSpace считает пробельными также U+FEFF (BOM), который оставляют некоторые редакторы
func isCodeSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

func trimCodeSpace(s string) string {
	return strings.TrimFunc(s, isCodeSpace)
}
