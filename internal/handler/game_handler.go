package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/pylearn-api/internal/handler/dto"
	"github.com/yourusername/pylearn-api/internal/middleware"
	"github.com/yourusername/pylearn-api/internal/service"
)

// GameHandler обрабатывает запросы игровых сессий
type GameHandler struct {
	gameService    *service.GameService
	catalogService *service.CatalogService
}

// NewGameHandler создает новый обработчик игровых сессий
func NewGameHandler(gameService *service.GameService, catalogService *service.CatalogService) *GameHandler {
	return &GameHandler{
		gameService:    gameService,
		catalogService: catalogService,
	}
}

// CreateSession создает новую игровую сессию
// POST /api/sessions
func (h *GameHandler) CreateSession(c *gin.Context) {
	view := h.gameService.CreateSession()
	c.JSON(http.StatusCreated, dto.NewSessionResponse(view))
}

// GetSession возвращает снимок сессии
// GET /api/sessions/:id
func (h *GameHandler) GetSession(c *gin.Context) {
	view, err := h.gameService.GetSession(c.GetString(middleware.SessionIDKey))
	h.respond(c, view, err)
}

// DeleteSession удаляет сессию
// DELETE /api/sessions/:id
func (h *GameHandler) DeleteSession(c *gin.Context) {
	if err := h.gameService.DeleteSession(c.GetString(middleware.SessionIDKey)); err != nil {
		respondError(c, "GameHandler", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SetPlayer задаёт имя игрока
// PUT /api/sessions/:id/player
func (h *GameHandler) SetPlayer(c *gin.Context) {
	var req dto.SetPlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	view, err := h.gameService.SetPlayerName(c.GetString(middleware.SessionIDKey), req.Name)
	h.respond(c, view, err)
}

// SetDifficulty выбирает уровень сложности
// PUT /api/sessions/:id/difficulty
func (h *GameHandler) SetDifficulty(c *gin.Context) {
	var req dto.SetDifficultyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	view, err := h.gameService.SetDifficulty(c.GetString(middleware.SessionIDKey), req.Difficulty)
	h.respond(c, view, err)
}

// StartGame начинает игру
// POST /api/sessions/:id/start
func (h *GameHandler) StartGame(c *gin.Context) {
	view, err := h.gameService.StartGame(c.Request.Context(), c.GetString(middleware.SessionIDKey))
	h.respond(c, view, err)
}

// SubmitAnswer проверяет ответ на текущий вопрос
// POST /api/sessions/:id/answer
func (h *GameHandler) SubmitAnswer(c *gin.Context) {
	var req dto.AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	result, err := h.gameService.SubmitAnswer(c.GetString(middleware.SessionIDKey), req.Answer)
	if err != nil {
		respondError(c, "GameHandler", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAnswerResponse(result.Outcome, result.Session))
}

// NextQuestion переходит к следующему вопросу
// POST /api/sessions/:id/next
func (h *GameHandler) NextQuestion(c *gin.Context) {
	view, err := h.gameService.NextQuestion(c.Request.Context(), c.GetString(middleware.SessionIDKey))
	h.respond(c, view, err)
}

// ResetGame сбрасывает сессию
// POST /api/sessions/:id/reset
func (h *GameHandler) ResetGame(c *gin.Context) {
	view, err := h.gameService.ResetGame(c.GetString(middleware.SessionIDKey))
	h.respond(c, view, err)
}

// GetDifficulties возвращает описания уровней сложности
// GET /api/difficulties
func (h *GameHandler) GetDifficulties(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"difficulties": h.catalogService.Difficulties(c.Request.Context())})
}

func (h *GameHandler) respond(c *gin.Context, view service.SessionView, err error) {
	if err != nil {
		respondError(c, "GameHandler", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSessionResponse(view))
}
