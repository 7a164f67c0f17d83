package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	gorillaws "github.com/gorilla/websocket"

	"github.com/yourusername/pylearn-api/internal/handler/dto"
	"github.com/yourusername/pylearn-api/internal/service"
	"github.com/yourusername/pylearn-api/internal/websocket"
)

// WSHandler обрабатывает WebSocket соединения, управляющие игровой сессией
type WSHandler struct {
	gameService *service.GameService
	wsManager   *websocket.Manager
	upgrader    gorillaws.Upgrader
}

// NewWSHandler создает новый обработчик WebSocket
func NewWSHandler(gameService *service.GameService, allowedOrigins []string) *WSHandler {
	h := &WSHandler{
		gameService: gameService,
		wsManager:   websocket.NewManager(),
		upgrader: gorillaws.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}

	// Регистрируем обработчики сообщений один раз при создании обработчика
	h.registerMessageHandlers()
	return h
}

// originChecker разрешает запросы без Origin (не браузер) и из списка разрешённых
func originChecker(allowedOrigins []string) func(r *http.Request) bool {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || allowed[origin] {
			return true
		}
		log.Printf("WebSocket: rejected unauthorized origin: %s", origin)
		return false
	}
}

// HandleConnection подключает клиента к существующей сессии
// GET /ws?session=<id>
func (h *WSHandler) HandleConnection(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Query("session"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid session parameter"})
		return
	}
	view, err := h.gameService.GetSession(sessionID.String())
	if err != nil {
		respondError(c, "WSHandler", err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade уже записал ответ клиенту
		log.Printf("[WSHandler] Error upgrading connection: %v", err)
		return
	}

	client := websocket.NewClient(conn, view.ID)
	log.Printf("[WSHandler] Соединение %s подключено к сессии %s", client.ConnectionID, client.SessionID)

	if err := client.SendEvent(websocket.STATE, dto.NewSessionResponse(view)); err != nil {
		log.Printf("[WSHandler] Не удалось отправить начальное состояние: %v", err)
	}
	client.StartPumps(h.wsManager.HandleMessage)
}

// registerMessageHandlers регистрирует обработчики для намерений игрока
func (h *WSHandler) registerMessageHandlers() {
	h.wsManager.RegisterHandler(websocket.STATE, func(_ json.RawMessage, client *websocket.Client) error {
		view, err := h.gameService.GetSession(client.SessionID)
		return h.replyState(client, view, err)
	})

	h.wsManager.RegisterHandler(websocket.SET_PLAYER, func(data json.RawMessage, client *websocket.Client) error {
		var req dto.SetPlayerRequest
		if !h.decode(client, websocket.SET_PLAYER, data, &req) {
			return nil
		}
		view, err := h.gameService.SetPlayerName(client.SessionID, req.Name)
		return h.replyState(client, view, err)
	})

	h.wsManager.RegisterHandler(websocket.SET_DIFFICULTY, func(data json.RawMessage, client *websocket.Client) error {
		var req dto.SetDifficultyRequest
		if !h.decode(client, websocket.SET_DIFFICULTY, data, &req) {
			return nil
		}
		view, err := h.gameService.SetDifficulty(client.SessionID, req.Difficulty)
		return h.replyState(client, view, err)
	})

	h.wsManager.RegisterHandler(websocket.START, func(_ json.RawMessage, client *websocket.Client) error {
		view, err := h.gameService.StartGame(client.Context(), client.SessionID)
		return h.replyState(client, view, err)
	})

	h.wsManager.RegisterHandler(websocket.ANSWER, func(data json.RawMessage, client *websocket.Client) error {
		var req dto.AnswerRequest
		if !h.decode(client, websocket.ANSWER, data, &req) {
			return nil
		}
		result, err := h.gameService.SubmitAnswer(client.SessionID, req.Answer)
		if err != nil {
			h.sendServiceError(client, err)
			return nil
		}
		return h.send(client, websocket.ANSWER_RESULT, dto.NewAnswerResponse(result.Outcome, result.Session))
	})

	h.wsManager.RegisterHandler(websocket.NEXT, func(_ json.RawMessage, client *websocket.Client) error {
		view, err := h.gameService.NextQuestion(client.Context(), client.SessionID)
		return h.replyState(client, view, err)
	})

	h.wsManager.RegisterHandler(websocket.RESET, func(_ json.RawMessage, client *websocket.Client) error {
		view, err := h.gameService.ResetGame(client.SessionID)
		return h.replyState(client, view, err)
	})
}

// decode разбирает данные сообщения; при ошибке клиент получает ERROR
func (h *WSHandler) decode(client *websocket.Client, eventType string, data json.RawMessage, dst interface{}) bool {
	if len(data) == 0 {
		data = json.RawMessage("{}")
	}
	if err := json.Unmarshal(data, dst); err != nil {
		log.Printf("[WSHandler] Ошибка парсинга %s: %v, Data: %s", eventType, err, string(data))
		h.wsManager.SendError(client, "invalid_format", fmt.Sprintf("Failed to parse %s event", eventType))
		return false
	}
	return true
}

func (h *WSHandler) replyState(client *websocket.Client, view service.SessionView, err error) error {
	if err != nil {
		h.sendServiceError(client, err)
		return nil
	}
	return h.send(client, websocket.STATE, dto.NewSessionResponse(view))
}

// sendServiceError сообщает об ошибке намерения; соединение не закрывается
func (h *WSHandler) sendServiceError(client *websocket.Client, err error) {
	code := errorCode(err)
	message := err.Error()
	if code == "internal_error" {
		log.Printf("[WSHandler] Внутренняя ошибка сессии %s: %v", client.SessionID, err)
		message = "Internal server error"
	}
	h.wsManager.SendError(client, code, message)
}

// send ставит сообщение в очередь; закрытый клиент завершает обработку
func (h *WSHandler) send(client *websocket.Client, eventType string, data interface{}) error {
	if err := client.SendEvent(eventType, data); err != nil {
		if errors.Is(err, websocket.ErrClientClosed) {
			return err
		}
		log.Printf("[WSHandler] Не удалось отправить %s сессии %s: %v", eventType, client.SessionID, err)
	}
	return nil
}
