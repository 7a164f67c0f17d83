package quizmanager

import (
	"log"
	"strings"

	"github.com/yourusername/pylearn-api/internal/domain/entity"
)

// AnswerOutcome - результат обработки ответа для отображения игроку
type AnswerOutcome struct {
	QuestionID    string
	Correct       bool
	Feedback      string
	PointsEarned  int
	Score         int
	Streak        int
	BestStreak    int
	MatchRatio    float64
	CorrectAnswer string // Раскрывается для неверных ответов на выбор варианта и на код
}

// AnswerProcessor отвечает за проверку ответа, подбор текста и запись в сессию
type AnswerProcessor struct {
	feedback *FeedbackPicker
}

// NewAnswerProcessor создает новый процессор ответов
func NewAnswerProcessor(feedback *FeedbackPicker) *AnswerProcessor {
	if feedback == nil {
		feedback = NewFeedbackPicker(nil)
	}
	return &AnswerProcessor{feedback: feedback}
}

// ProcessAnswer проверяет ответ на текущий вопрос сессии и записывает его.
// Пустой ответ отклоняется до проверки.
func (ap *AnswerProcessor) ProcessAnswer(session *Session, answer string) (*AnswerOutcome, error) {
	question := session.CurrentQuestion()
	if question == nil || session.Phase() != entity.PhasePlaying {
		return nil, ErrNoActiveQuestion
	}
	if session.Answered() {
		return nil, ErrAlreadyAnswered
	}
	if strings.TrimSpace(answer) == "" {
		return nil, ErrEmptyAnswer
	}

	verdict := Evaluate(answer, question)
	feedback := ap.feedbackFor(question, verdict)

	before := session.Tally()
	if err := session.SubmitAnswer(answer, verdict.Correct); err != nil {
		return nil, err
	}
	after := session.Tally()

	log.Printf("[AnswerProcessor] Ответ игрока %q на вопрос %s (%s): верно=%t, очки %d → %d, серия %d",
		session.state.PlayerName, question.ID, question.Type, verdict.Correct, before.Score, after.Score, after.Streak)

	outcome := &AnswerOutcome{
		QuestionID:   question.ID,
		Correct:      verdict.Correct,
		Feedback:     feedback,
		PointsEarned: after.Score - before.Score,
		Score:        after.Score,
		Streak:       after.Streak,
		BestStreak:   after.BestStreak,
		MatchRatio:   verdict.MatchRatio,
	}
	if !verdict.Correct && question.Type != entity.QuestionTypeText {
		outcome.CorrectAnswer = question.CorrectAnswer
	}
	return outcome, nil
}

// feedbackFor подбирает текст обратной связи по типу вопроса
func (ap *AnswerProcessor) feedbackFor(question *entity.Question, verdict Verdict) string {
	if verdict.Correct {
		return ap.feedback.Encouragement()
	}
	switch question.Type {
	case entity.QuestionTypeText:
		return ap.feedback.WrongHint() + " " + question.Hint
	case entity.QuestionTypeMultipleChoice:
		return "The correct answer is: " + question.CorrectAnswer
	case entity.QuestionTypeCode:
		return verdict.Feedback
	default:
		return ap.feedback.WrongHint()
	}
}
