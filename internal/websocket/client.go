package websocket

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"runtime/debug"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// Время, которое разрешено писать сообщение клиенту.
	writeWait = 10 * time.Second

	// Время ожидания следующего сообщения или pong от клиента.
	pongWait = 60 * time.Second

	// Периодичность отправки ping-сообщений клиенту.
	pingPeriod = (pongWait * 9) / 10

	// Максимальный размер входящего сообщения (ответ с кодом может быть длинным)
	maxMessageSize = 16 * 1024

	// Размер буфера канала отправки
	defaultClientBufferSize = 16
)

var (
	newline = []byte{'\n'}
	space   = []byte{' '}
)

// Ошибки отправки
var (
	ErrClientClosed   = errors.New("websocket client is closed")
	ErrSendBufferFull = errors.New("websocket send buffer is full")
)

// MessageHandler обрабатывает сырое входящее сообщение.
// Возвращённая ошибка закрывает соединение.
type MessageHandler func(message []byte, client *Client) error

// Client связывает одно WebSocket-соединение с одной игровой сессией
type Client struct {
	// ID игровой сессии, которой управляет соединение
	SessionID string

	// Уникальный ID соединения
	ConnectionID string

	conn *websocket.Conn

	// Буферизованный канал исходящих сообщений
	send       chan []byte
	sendClosed atomic.Bool

	// ctx отменяется при завершении readPump
	ctx    context.Context
	cancel context.CancelFunc
}

// NewClient создает клиента для соединения
func NewClient(conn *websocket.Conn, sessionID string) *Client {
	ctx, cancel := context.WithCancel(context.Background())
	return &Client{
		SessionID:    sessionID,
		ConnectionID: uuid.New().String(),
		conn:         conn,
		send:         make(chan []byte, defaultClientBufferSize),
		ctx:          ctx,
		cancel:       cancel,
	}
}

// Context возвращает контекст, живущий пока соединение открыто
func (c *Client) Context() context.Context {
	return c.ctx
}

// SendJSON сериализует сообщение и ставит его в очередь отправки
func (c *Client) SendJSON(v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal websocket message: %w", err)
	}
	return c.enqueue(data)
}

// SendEvent отправляет сообщение заданного типа
func (c *Client) SendEvent(eventType string, data interface{}) error {
	return c.SendJSON(Event{Type: eventType, Data: data})
}

func (c *Client) enqueue(data []byte) (err error) {
	if c.sendClosed.Load() {
		return ErrClientClosed
	}
	// Канал мог закрыться между проверкой и отправкой
	defer func() {
		if recover() != nil {
			err = ErrClientClosed
		}
	}()
	select {
	case c.send <- data:
		return nil
	default:
		log.Printf("[Client %s][Conn %s] Буфер отправки переполнен", c.SessionID, c.ConnectionID)
		return ErrSendBufferFull
	}
}

// CloseSend безопасно закрывает канал send (только один раз)
func (c *Client) CloseSend() bool {
	if c.sendClosed.CompareAndSwap(false, true) {
		close(c.send)
		return true
	}
	return false
}

// StartPumps запускает горутины чтения и записи
func (c *Client) StartPumps(handler MessageHandler) {
	go c.writePump()
	go c.readPump(handler)
}

// readPump читает сообщения от клиента и передает их обработчику
func (c *Client) readPump(handler MessageHandler) {
	defer func() {
		c.cancel()
		c.CloseSend()
		c.conn.Close()
		log.Printf("WebSocket Client Read Pump STOPPED for Session: %s, ConnID: %s", c.SessionID, c.ConnectionID)
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("WebSocket Client Read Error (Session: %s, ConnID: %s): %v", c.SessionID, c.ConnectionID, err)
			}
			return
		}
		c.conn.SetReadDeadline(time.Now().Add(pongWait))

		if handlerErr := safeHandleMessage(message, c, handler); handlerErr != nil {
			log.Printf("WebSocket Client Handler Error (Session: %s, ConnID: %s): %v. Closing connection.", c.SessionID, c.ConnectionID, handlerErr)
			return
		}
	}
}

// safeHandleMessage вызывает обработчик с recover; паника считается фатальной
func safeHandleMessage(message []byte, client *Client, handler MessageHandler) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("PANIC recovered in message handler for Session: %s, ConnID: %s. Panic: %v\nStack trace:\n%s",
				client.SessionID, client.ConnectionID, r, string(debug.Stack()))
			err = fmt.Errorf("panic recovered: %v", r)
		}
	}()
	message = bytes.TrimSpace(bytes.Replace(message, newline, space, -1))
	if handler == nil {
		return nil
	}
	return handler(message, client)
}

// writePump отправляет сообщения из канала send и пинги
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("WebSocket Client Write Error (Session: %s, ConnID: %s): %v", c.SessionID, c.ConnectionID, err)
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
