package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"

	"github.com/yourusername/pylearn-api/internal/domain/entity"
	"github.com/yourusername/pylearn-api/internal/domain/repository"
	apperrors "github.com/yourusername/pylearn-api/internal/pkg/errors"
)

// Параметры таблицы рекордов по умолчанию
const (
	DefaultLeaderboardKey        = "pylearn_scoreboard"
	DefaultLeaderboardMaxEntries = 10
)

// LeaderboardService хранит таблицу рекордов одним JSON-документом в KVStore
type LeaderboardService struct {
	store      repository.KVStore
	key        string
	maxEntries int

	// mu сериализует read-modify-write документа
	mu sync.Mutex
}

// NewLeaderboardService создает сервис таблицы рекордов
func NewLeaderboardService(store repository.KVStore, key string, maxEntries int) *LeaderboardService {
	if key == "" {
		key = DefaultLeaderboardKey
	}
	if maxEntries <= 0 {
		maxEntries = DefaultLeaderboardMaxEntries
	}
	return &LeaderboardService{store: store, key: key, maxEntries: maxEntries}
}

// MaxEntries возвращает размер таблицы
func (s *LeaderboardService) MaxEntries() int {
	return s.maxEntries
}

// GetScoreboard возвращает таблицу рекордов. Отсутствующий или повреждённый
// документ считается пустой таблицей.
func (s *LeaderboardService) GetScoreboard(ctx context.Context) []entity.ScoreEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// SaveScore добавляет запись, сортирует по убыванию очков (равные сохраняют
// порядок добавления), обрезает до MaxEntries и сохраняет.
func (s *LeaderboardService) SaveScore(ctx context.Context, entry entity.ScoreEntry) ([]entity.ScoreEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	board := append(s.load(ctx), entry)
	sort.SliceStable(board, func(i, j int) bool {
		return board[i].Score > board[j].Score
	})
	if len(board) > s.maxEntries {
		board = board[:s.maxEntries]
	}

	if err := s.persist(ctx, board); err != nil {
		return nil, err
	}
	log.Printf("[LeaderboardService] Сохранён результат игрока %q: %d очков (%s)", entry.PlayerName, entry.Score, entry.Difficulty)
	return board, nil
}

// RemoveScore удаляет запись по индексу
func (s *LeaderboardService) RemoveScore(ctx context.Context, index int) ([]entity.ScoreEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	board := s.load(ctx)
	if index < 0 || index >= len(board) {
		return nil, fmt.Errorf("leaderboard index %d: %w", index, apperrors.ErrNotFound)
	}
	board = append(board[:index], board[index+1:]...)

	if err := s.persist(ctx, board); err != nil {
		return nil, err
	}
	return board, nil
}

// ClearScoreboard удаляет таблицу целиком
func (s *LeaderboardService) ClearScoreboard(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("failed to clear leaderboard: %w", err)
	}
	log.Printf("[LeaderboardService] Таблица рекордов очищена")
	return nil
}

func (s *LeaderboardService) load(ctx context.Context) []entity.ScoreEntry {
	raw, err := s.store.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			log.Printf("[LeaderboardService] Ошибка чтения таблицы рекордов: %v", err)
		}
		return []entity.ScoreEntry{}
	}

	var board []entity.ScoreEntry
	if err := json.Unmarshal([]byte(raw), &board); err != nil {
		log.Printf("[LeaderboardService] Повреждённая таблица рекордов, используется пустая: %v", err)
		return []entity.ScoreEntry{}
	}
	if board == nil {
		board = []entity.ScoreEntry{}
	}
	return board
}

func (s *LeaderboardService) persist(ctx context.Context, board []entity.ScoreEntry) error {
	data, err := json.Marshal(board)
	if err != nil {
		return fmt.Errorf("failed to encode leaderboard: %w", err)
	}
	if err := s.store.Set(ctx, s.key, string(data)); err != nil {
		return fmt.Errorf("failed to save leaderboard: %w", err)
	}
	return nil
}
