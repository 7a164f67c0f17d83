package websocket

import (
	"encoding/json"
	"fmt"
	"log"
)

// HandlerFunc обрабатывает данные сообщения одного типа
type HandlerFunc func(data json.RawMessage, client *Client) error

// Manager направляет входящие сообщения обработчикам по типу
type Manager struct {
	handlers map[string]HandlerFunc
}

// NewManager создает новый менеджер WebSocket
func NewManager() *Manager {
	return &Manager{handlers: make(map[string]HandlerFunc)}
}

// RegisterHandler регистрирует обработчик для типа сообщений
func (m *Manager) RegisterHandler(eventType string, handler HandlerFunc) {
	m.handlers[eventType] = handler
	log.Printf("[WebSocketManager] Зарегистрирован обработчик для сообщений типа: %s", eventType)
}

// HandleMessage обрабатывает входящее сообщение от клиента.
// Ошибка означает, что соединение нужно закрыть.
func (m *Manager) HandleMessage(message []byte, client *Client) error {
	var event IncomingEvent
	if err := json.Unmarshal(message, &event); err != nil {
		log.Printf("[WebSocketManager] Некорректное сообщение от сессии %s: %v", client.SessionID, err)
		m.SendError(client, "invalid_message_format", "Invalid JSON format")
		return err
	}

	handler, ok := m.handlers[event.Type]
	if !ok {
		m.SendError(client, "unknown_message_type", fmt.Sprintf("Unknown message type: %s", event.Type))
		return nil
	}

	if err := handler(event.Data, client); err != nil {
		log.Printf("[WebSocketManager] Обработчик '%s' вернул ошибку для сессии %s: %v", event.Type, client.SessionID, err)
		return err
	}
	return nil
}

// SendError отправляет клиенту сообщение ERROR, не закрывая соединение
func (m *Manager) SendError(client *Client, code, message string) {
	if err := client.SendEvent(ERROR, ErrorData{Code: code, Message: message}); err != nil {
		log.Printf("[WebSocketManager] Не удалось отправить ошибку сессии %s: %v", client.SessionID, err)
	}
}
