package service

import "errors"

// Ошибки сервисного слоя
var (
	ErrSessionNotFound = errors.New("game session not found")
)
