package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/pylearn-api/internal/domain/entity"
	"github.com/yourusername/pylearn-api/internal/service/quizmanager"
)

// DefaultSessionTTL - время простоя, после которого сессия удаляется
const DefaultSessionTTL = 2 * time.Hour

// ScoreRecorder сохраняет итог завершённой игры
type ScoreRecorder interface {
	SaveScore(ctx context.Context, entry entity.ScoreEntry) ([]entity.ScoreEntry, error)
}

// GameResult - итоги для экрана результатов
type GameResult struct {
	CorrectCount   int    `json:"correctCount"`
	TotalQuestions int    `json:"totalQuestions"`
	Accuracy       int    `json:"accuracy"`
	Grade          string `json:"grade"`
	Saved          bool   `json:"saved"`
}

// SessionView - снимок сессии для транспорта
type SessionView struct {
	ID       string
	Snapshot quizmanager.Snapshot
	Result   *GameResult // только в фазе results
}

// AnswerView - результат ответа вместе с новым снимком
type AnswerView struct {
	Outcome *quizmanager.AnswerOutcome
	Session SessionView
}

// gameSession - сессия с единственным владельцем в каждый момент времени
type gameSession struct {
	mu         sync.Mutex
	session    *quizmanager.Session
	saved      bool
	lastActive time.Time
}

// GameService - реестр игровых сессий. Каждая сессия защищена своим мьютексом,
// сессии между собой не взаимодействуют.
type GameService struct {
	catalog     quizmanager.QuestionCatalog
	scoring     *quizmanager.ScoringEngine
	processor   *quizmanager.AnswerProcessor
	leaderboard ScoreRecorder
	ttl         time.Duration
	now         func() time.Time

	mu       sync.RWMutex
	sessions map[string]*gameSession
}

// NewGameService создает сервис игровых сессий
func NewGameService(
	catalog quizmanager.QuestionCatalog,
	scoring *quizmanager.ScoringEngine,
	processor *quizmanager.AnswerProcessor,
	leaderboard ScoreRecorder,
	ttl time.Duration,
) *GameService {
	if scoring == nil {
		scoring = quizmanager.NewScoringEngine(nil)
	}
	if processor == nil {
		processor = quizmanager.NewAnswerProcessor(nil)
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &GameService{
		catalog:     catalog,
		scoring:     scoring,
		processor:   processor,
		leaderboard: leaderboard,
		ttl:         ttl,
		now:         time.Now,
		sessions:    make(map[string]*gameSession),
	}
}

// CreateSession создает новую сессию в фазе welcome
func (s *GameService) CreateSession() SessionView {
	id := uuid.NewString()
	gs := &gameSession{
		session:    quizmanager.NewSession(s.catalog, s.scoring),
		lastActive: s.now(),
	}
	view := s.view(id, gs)

	s.mu.Lock()
	s.sessions[id] = gs
	total := len(s.sessions)
	s.mu.Unlock()

	log.Printf("[GameService] Создана сессия %s (всего активных: %d)", id, total)
	return view
}

// GetSession возвращает снимок сессии
func (s *GameService) GetSession(id string) (SessionView, error) {
	var view SessionView
	err := s.withSession(id, func(gs *gameSession) error {
		view = s.view(id, gs)
		return nil
	})
	return view, err
}

// DeleteSession удаляет сессию
func (s *GameService) DeleteSession(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, id)
	log.Printf("[GameService] Сессия %s удалена", id)
	return nil
}

// SessionCount возвращает количество активных сессий
func (s *GameService) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// SetPlayerName задаёт имя игрока
func (s *GameService) SetPlayerName(id, name string) (SessionView, error) {
	return s.mutate(id, func(gs *gameSession) error {
		return gs.session.SetPlayerName(name)
	})
}

// SetDifficulty выбирает уровень сложности
func (s *GameService) SetDifficulty(id string, difficulty entity.Difficulty) (SessionView, error) {
	return s.mutate(id, func(gs *gameSession) error {
		return gs.session.SetDifficulty(difficulty)
	})
}

// StartGame начинает игру с вопросами выбранного уровня
func (s *GameService) StartGame(ctx context.Context, id string) (SessionView, error) {
	return s.mutate(id, func(gs *gameSession) error {
		if err := gs.session.StartGame(ctx); err != nil {
			return err
		}
		gs.saved = false
		state := gs.session.State()
		total := gs.session.TotalQuestions()
		if total == 0 {
			log.Printf("[GameService] Сессия %s: для уровня %s нет вопросов", id, state.Difficulty)
		} else {
			log.Printf("[GameService] Сессия %s: игра начата (%s, вопросов: %d)", id, state.Difficulty, total)
		}
		return nil
	})
}

// SubmitAnswer проверяет и записывает ответ на текущий вопрос
func (s *GameService) SubmitAnswer(id, answer string) (*AnswerView, error) {
	var result *AnswerView
	err := s.withSession(id, func(gs *gameSession) error {
		outcome, err := s.processor.ProcessAnswer(gs.session, answer)
		if err != nil {
			return err
		}
		gs.lastActive = s.now()
		result = &AnswerView{Outcome: outcome, Session: s.view(id, gs)}
		return nil
	})
	return result, err
}

// NextQuestion переходит к следующему вопросу. При переходе к результатам
// итог записывается в таблицу рекордов ровно один раз.
func (s *GameService) NextQuestion(ctx context.Context, id string) (SessionView, error) {
	return s.mutate(id, func(gs *gameSession) error {
		if err := gs.session.NextQuestion(); err != nil {
			return err
		}
		if gs.session.Phase() == entity.PhaseResults {
			s.recordResult(ctx, id, gs)
		}
		return nil
	})
}

// ResetGame возвращает сессию в начальное состояние
func (s *GameService) ResetGame(id string) (SessionView, error) {
	return s.mutate(id, func(gs *gameSession) error {
		gs.session.ResetGame()
		gs.saved = false
		return nil
	})
}

// CleanupExpired удаляет сессии, простаивающие дольше TTL
func (s *GameService) CleanupExpired() int {
	deadline := s.now().Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, gs := range s.sessions {
		if !gs.mu.TryLock() {
			continue // сессия сейчас занята, значит активна
		}
		expired := gs.lastActive.Before(deadline)
		gs.mu.Unlock()
		if expired {
			delete(s.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		log.Printf("[GameService] Удалено просроченных сессий: %d (осталось: %d)", removed, len(s.sessions))
	}
	return removed
}

// RunCleanup периодически удаляет просроченные сессии до отмены контекста
func (s *GameService) RunCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Printf("[GameService] Очистка сессий остановлена")
			return
		case <-ticker.C:
			s.CleanupExpired()
		}
	}
}

func (s *GameService) recordResult(ctx context.Context, id string, gs *gameSession) {
	total := gs.session.TotalQuestions()
	if gs.saved || total == 0 || s.leaderboard == nil {
		return
	}

	state := gs.session.State()
	entry := entity.ScoreEntry{
		PlayerName: state.PlayerName,
		Score:      state.Score,
		Accuracy:   entity.CalculateAccuracy(state.CorrectCount(), total),
		BestStreak: state.BestStreak,
		Difficulty: state.Difficulty,
		Date:       s.now().UTC(),
	}
	if _, err := s.leaderboard.SaveScore(ctx, entry); err != nil {
		log.Printf("[GameService] Сессия %s: не удалось сохранить результат: %v", id, err)
		return
	}
	gs.saved = true
}

func (s *GameService) lookup(id string) (*gameSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	gs, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, ErrSessionNotFound)
	}
	return gs, nil
}

func (s *GameService) withSession(id string, fn func(gs *gameSession) error) error {
	gs, err := s.lookup(id)
	if err != nil {
		return err
	}
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return fn(gs)
}

func (s *GameService) mutate(id string, fn func(gs *gameSession) error) (SessionView, error) {
	var view SessionView
	err := s.withSession(id, func(gs *gameSession) error {
		if err := fn(gs); err != nil {
			return err
		}
		gs.lastActive = s.now()
		view = s.view(id, gs)
		return nil
	})
	return view, err
}

// view вызывается под мьютексом сессии
func (s *GameService) view(id string, gs *gameSession) SessionView {
	snapshot := gs.session.Snapshot()
	view := SessionView{ID: id, Snapshot: snapshot}
	if snapshot.State.Phase == entity.PhaseResults {
		correct := snapshot.State.CorrectCount()
		accuracy := entity.CalculateAccuracy(correct, snapshot.TotalQuestions)
		view.Result = &GameResult{
			CorrectCount:   correct,
			TotalQuestions: snapshot.TotalQuestions,
			Accuracy:       accuracy,
			Grade:          entity.Grade(accuracy),
			Saved:          gs.saved,
		}
	}
	return view
}
