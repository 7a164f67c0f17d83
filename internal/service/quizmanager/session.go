package quizmanager

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/yourusername/pylearn-api/internal/domain/entity"
)

// Session - конечный автомат одной игровой сессии:
// welcome → difficulty → playing → results, и сброс из любой фазы в welcome.
//
// Session не потокобезопасна: у сессии должен быть ровно один владелец
// (см. GameService, который сериализует доступ мьютексом).
type Session struct {
	state     entity.GameState
	questions []entity.Question

	// answered - ответ на текущий вопрос уже принят
	answered bool

	catalog QuestionCatalog
	scoring *ScoringEngine
}

// NewSession создает сессию в начальном состоянии
func NewSession(catalog QuestionCatalog, scoring *ScoringEngine) *Session {
	if scoring == nil {
		scoring = NewScoringEngine(nil)
	}
	return &Session{
		state:   entity.InitialGameState(),
		catalog: catalog,
		scoring: scoring,
	}
}

// State возвращает копию текущего состояния
func (s *Session) State() entity.GameState {
	return s.state.Clone()
}

// Phase возвращает текущую фазу без копирования состояния
func (s *Session) Phase() entity.Phase {
	return s.state.Phase
}

// Tally возвращает текущие счёт и серию
func (s *Session) Tally() Tally {
	return Tally{Score: s.state.Score, Streak: s.state.Streak, BestStreak: s.state.BestStreak}
}

// TotalQuestions возвращает количество вопросов в текущей игре
func (s *Session) TotalQuestions() int {
	return len(s.questions)
}

// CurrentQuestion возвращает текущий вопрос или nil, если его нет
func (s *Session) CurrentQuestion() *entity.Question {
	idx := s.state.CurrentQuestionIndex
	if idx < 0 || idx >= len(s.questions) {
		return nil
	}
	q := s.questions[idx]
	return &q
}

// Progress возвращает процент пройденных вопросов (0 при отсутствии вопросов)
func (s *Session) Progress() float64 {
	total := len(s.questions)
	if total == 0 {
		return 0
	}
	return float64(s.state.CurrentQuestionIndex) / float64(total) * 100
}

// IsGameOver возвращает true, когда все вопросы пройдены
func (s *Session) IsGameOver() bool {
	total := len(s.questions)
	return s.state.CurrentQuestionIndex >= total && total > 0
}

// Answered сообщает, принят ли уже ответ на текущий вопрос
func (s *Session) Answered() bool {
	return s.answered
}

// Snapshot возвращает состояние вместе с производными значениями
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		State:           s.State(),
		CurrentQuestion: s.CurrentQuestion(),
		TotalQuestions:  s.TotalQuestions(),
		Progress:        s.Progress(),
		IsGameOver:      s.IsGameOver(),
		Answered:        s.answered,
	}
}

// SetPlayerName задаёт имя игрока и переводит сессию к выбору сложности
func (s *Session) SetPlayerName(name string) error {
	if s.state.Phase != entity.PhaseWelcome {
		return ErrInvalidPhase
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyPlayerName
	}
	if utf8.RuneCountInString(name) > MaxPlayerNameLength {
		return ErrPlayerNameTooLong
	}

	next := s.state.Clone()
	next.PlayerName = name
	next.Phase = entity.PhaseDifficulty
	s.state = next
	return nil
}

// SetDifficulty меняет уровень сложности до начала игры
func (s *Session) SetDifficulty(d entity.Difficulty) error {
	if !d.Valid() {
		return ErrInvalidDifficulty
	}
	if s.state.Phase != entity.PhaseWelcome && s.state.Phase != entity.PhaseDifficulty {
		return ErrInvalidPhase
	}

	next := s.state.Clone()
	next.Difficulty = d
	s.state = next
	return nil
}

// StartGame фиксирует последовательность вопросов для выбранной сложности
// и обнуляет счётчики. Пустой каталог не ошибка: в игре просто 0 вопросов.
func (s *Session) StartGame(ctx context.Context) error {
	if s.state.Phase != entity.PhaseDifficulty {
		return ErrInvalidPhase
	}

	var questions []entity.Question
	if s.catalog != nil {
		questions = s.catalog.GetQuestionsForDifficulty(ctx, s.state.Difficulty)
	}

	next := s.state.Clone()
	next.Phase = entity.PhasePlaying
	next.CurrentQuestionIndex = 0
	next.Score = 0
	next.Streak = 0
	next.BestStreak = 0
	next.Answers = []entity.AnswerRecord{}

	s.questions = append([]entity.Question(nil), questions...)
	s.answered = false
	s.state = next
	return nil
}

// SubmitAnswer записывает ответ на текущий вопрос и пересчитывает очки.
// Повторный ответ на тот же вопрос до NextQuestion отклоняется.
func (s *Session) SubmitAnswer(answer string, correct bool) error {
	if s.state.Phase != entity.PhasePlaying {
		return ErrInvalidPhase
	}
	question := s.CurrentQuestion()
	if question == nil {
		return ErrNoActiveQuestion
	}
	if s.answered {
		return ErrAlreadyAnswered
	}

	tally := s.scoring.ApplyResult(Tally{
		Score:      s.state.Score,
		Streak:     s.state.Streak,
		BestStreak: s.state.BestStreak,
	}, question, s.state.Difficulty, correct)

	next := s.state.Clone()
	next.Score = tally.Score
	next.Streak = tally.Streak
	next.BestStreak = tally.BestStreak
	next.Answers = append(next.Answers, entity.AnswerRecord{
		QuestionID: question.ID,
		Correct:    correct,
		Answer:     answer,
	})

	s.state = next
	s.answered = true
	return nil
}

// NextQuestion переходит к следующему вопросу; после последнего - к результатам
func (s *Session) NextQuestion() error {
	if s.state.Phase != entity.PhasePlaying {
		return ErrInvalidPhase
	}
	if s.CurrentQuestion() == nil {
		return ErrNoActiveQuestion
	}

	next := s.state.Clone()
	next.CurrentQuestionIndex++
	if next.CurrentQuestionIndex >= len(s.questions) {
		next.Phase = entity.PhaseResults
	}

	s.state = next
	s.answered = false
	return nil
}

// ResetGame возвращает сессию в начальное состояние из любой фазы
func (s *Session) ResetGame() {
	s.state = entity.InitialGameState()
	s.questions = nil
	s.answered = false
}
