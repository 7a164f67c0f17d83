package websocket

import "encoding/json"

// Входящие сообщения (намерения игрока)
const (
	SET_PLAYER     = "SET_PLAYER"
	SET_DIFFICULTY = "SET_DIFFICULTY"
	START          = "START"
	ANSWER         = "ANSWER"
	NEXT           = "NEXT"
	RESET          = "RESET"
	// STATE во входящем сообщении - запрос текущего снимка
	STATE = "STATE"
)

// Исходящие сообщения
const (
	// ANSWER_RESULT - результат проверки ответа вместе с новым снимком
	ANSWER_RESULT = "ANSWER_RESULT"

	// ERROR - ошибка обработки сообщения, соединение остаётся открытым
	ERROR = "ERROR"
)

// Event - исходящее WebSocket-сообщение
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// IncomingEvent - входящее сообщение; Data разбирается обработчиком типа
type IncomingEvent struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// ErrorData - содержимое сообщения ERROR
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
