package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yourusername/pylearn-api/internal/pkg/errors"
	"github.com/yourusername/pylearn-api/internal/service"
	"github.com/yourusername/pylearn-api/internal/service/quizmanager"
)

// errorStatus сопоставляет ошибку сервисного слоя с HTTP-статусом
func errorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrSessionNotFound), errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, quizmanager.ErrEmptyPlayerName),
		errors.Is(err, quizmanager.ErrPlayerNameTooLong),
		errors.Is(err, quizmanager.ErrInvalidDifficulty),
		errors.Is(err, quizmanager.ErrEmptyAnswer),
		errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, quizmanager.ErrInvalidPhase),
		errors.Is(err, quizmanager.ErrNoActiveQuestion),
		errors.Is(err, quizmanager.ErrAlreadyAnswered),
		errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError отправляет ошибку клиенту; внутренние ошибки логируются и не раскрываются
func respondError(c *gin.Context, component string, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("ERROR: Internal server error in %s: %v", component, err)
		c.JSON(status, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// errorCode возвращает машинный код ошибки для сообщений WebSocket
func errorCode(err error) string {
	codes := []struct {
		target error
		code   string
	}{
		{service.ErrSessionNotFound, "session_not_found"},
		{quizmanager.ErrInvalidPhase, "invalid_phase"},
		{quizmanager.ErrInvalidDifficulty, "invalid_difficulty"},
		{quizmanager.ErrEmptyPlayerName, "empty_player_name"},
		{quizmanager.ErrPlayerNameTooLong, "player_name_too_long"},
		{quizmanager.ErrNoActiveQuestion, "no_active_question"},
		{quizmanager.ErrAlreadyAnswered, "already_answered"},
		{quizmanager.ErrEmptyAnswer, "empty_answer"},
	}
	for _, c := range codes {
		if errors.Is(err, c.target) {
			return c.code
		}
	}
	return "internal_error"
}
