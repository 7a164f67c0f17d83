package dto

import (
	"github.com/yourusername/pylearn-api/internal/domain/entity"
	"github.com/yourusername/pylearn-api/internal/service"
	"github.com/yourusername/pylearn-api/internal/service/quizmanager"
)

// SetPlayerRequest - запрос на установку имени игрока
type SetPlayerRequest struct {
	Name string `json:"name"`
}

// SetDifficultyRequest - запрос на выбор уровня сложности
type SetDifficultyRequest struct {
	Difficulty entity.Difficulty `json:"difficulty"`
}

// AnswerRequest - ответ игрока на текущий вопрос
type AnswerRequest struct {
	Answer string `json:"answer"`
}

// QuestionResponse - вопрос без правильного ответа
type QuestionResponse struct {
	ID             string              `json:"id"`
	Type           entity.QuestionType `json:"type"`
	Difficulty     entity.Difficulty   `json:"difficulty"`
	Topic          string              `json:"topic"`
	Question       string              `json:"question"`
	Choices        []string            `json:"choices,omitempty"`
	Hint           string              `json:"hint,omitempty"`
	Points         int                 `json:"points"`
	CodeTemplate   string              `json:"codeTemplate,omitempty"`
	ExpectedOutput string              `json:"expectedOutput,omitempty"`
}

// SessionResponse - снимок игровой сессии для клиента
type SessionResponse struct {
	ID              string              `json:"id"`
	State           entity.GameState    `json:"state"`
	CurrentQuestion *QuestionResponse   `json:"currentQuestion"`
	TotalQuestions  int                 `json:"totalQuestions"`
	Progress        float64             `json:"progress"`
	IsGameOver      bool                `json:"isGameOver"`
	Answered        bool                `json:"answered"`
	Result          *service.GameResult `json:"result,omitempty"`
}

// AnswerResponse - результат проверки ответа
type AnswerResponse struct {
	QuestionID    string          `json:"questionId"`
	Correct       bool            `json:"correct"`
	Feedback      string          `json:"feedback"`
	PointsEarned  int             `json:"pointsEarned"`
	Score         int             `json:"score"`
	Streak        int             `json:"streak"`
	BestStreak    int             `json:"bestStreak"`
	MatchRatio    float64         `json:"matchRatio,omitempty"`
	CorrectAnswer string          `json:"correctAnswer,omitempty"`
	Session       SessionResponse `json:"session"`
}

// LeaderboardResponse - таблица рекордов
type LeaderboardResponse struct {
	Entries    []entity.ScoreEntry `json:"entries"`
	MaxEntries int                 `json:"maxEntries"`
}

// NewQuestionResponse создает DTO вопроса; nil остаётся nil
func NewQuestionResponse(q *entity.Question) *QuestionResponse {
	if q == nil {
		return nil
	}
	resp := &QuestionResponse{
		ID:             q.ID,
		Type:           q.Type,
		Difficulty:     q.Difficulty,
		Topic:          q.Topic,
		Question:       q.Question,
		Hint:           q.Hint,
		Points:         q.Points,
		CodeTemplate:   q.CodeTemplate,
		ExpectedOutput: q.ExpectedOutput,
	}
	// Варианты отдаются только вопросам с выбором
	if q.HasChoices() {
		resp.Choices = append([]string(nil), q.Choices...)
	}
	return resp
}

// NewSessionResponse создает DTO снимка сессии
func NewSessionResponse(view service.SessionView) SessionResponse {
	return SessionResponse{
		ID:              view.ID,
		State:           view.Snapshot.State,
		CurrentQuestion: NewQuestionResponse(view.Snapshot.CurrentQuestion),
		TotalQuestions:  view.Snapshot.TotalQuestions,
		Progress:        view.Snapshot.Progress,
		IsGameOver:      view.Snapshot.IsGameOver,
		Answered:        view.Snapshot.Answered,
		Result:          view.Result,
	}
}

// NewAnswerResponse создает DTO результата ответа
func NewAnswerResponse(outcome *quizmanager.AnswerOutcome, view service.SessionView) AnswerResponse {
	return AnswerResponse{
		QuestionID:    outcome.QuestionID,
		Correct:       outcome.Correct,
		Feedback:      outcome.Feedback,
		PointsEarned:  outcome.PointsEarned,
		Score:         outcome.Score,
		Streak:        outcome.Streak,
		BestStreak:    outcome.BestStreak,
		MatchRatio:    outcome.MatchRatio,
		CorrectAnswer: outcome.CorrectAnswer,
		Session:       NewSessionResponse(view),
	}
}
