package handler

import (
	"encoding/csv"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/yourusername/pylearn-api/internal/domain/entity"
	"github.com/yourusername/pylearn-api/internal/handler/dto"
	"github.com/yourusername/pylearn-api/internal/middleware"
	"github.com/yourusername/pylearn-api/internal/service"
)

var exportHeaders = []string{"Rank", "Player", "Score", "Accuracy (%)", "Best Streak", "Difficulty", "Date"}

// LeaderboardHandler обрабатывает запросы таблицы рекордов
type LeaderboardHandler struct {
	leaderboardService *service.LeaderboardService
}

// NewLeaderboardHandler создает новый обработчик таблицы рекордов
func NewLeaderboardHandler(leaderboardService *service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardService: leaderboardService}
}

// GetLeaderboard возвращает таблицу рекордов
// GET /api/leaderboard
func (h *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	c.JSON(http.StatusOK, dto.LeaderboardResponse{
		Entries:    h.leaderboardService.GetScoreboard(c.Request.Context()),
		MaxEntries: h.leaderboardService.MaxEntries(),
	})
}

// RemoveScore удаляет запись по индексу
// DELETE /api/leaderboard/:index
func (h *LeaderboardHandler) RemoveScore(c *gin.Context) {
	index := c.MustGet(middleware.IndexKey).(int)

	board, err := h.leaderboardService.RemoveScore(c.Request.Context(), index)
	if err != nil {
		respondError(c, "LeaderboardHandler", err)
		return
	}
	c.JSON(http.StatusOK, dto.LeaderboardResponse{Entries: board, MaxEntries: h.leaderboardService.MaxEntries()})
}

// ClearLeaderboard очищает таблицу рекордов
// DELETE /api/leaderboard
func (h *LeaderboardHandler) ClearLeaderboard(c *gin.Context) {
	if err := h.leaderboardService.ClearScoreboard(c.Request.Context()); err != nil {
		respondError(c, "LeaderboardHandler", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ExportLeaderboard выгружает таблицу рекордов в CSV или XLSX
// GET /api/leaderboard/export?format=csv|xlsx
func (h *LeaderboardHandler) ExportLeaderboard(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")
	board := h.leaderboardService.GetScoreboard(c.Request.Context())
	filename := fmt.Sprintf("pylearn_leaderboard_%s", time.Now().Format("2006-01-02"))

	switch format {
	case "xlsx":
		h.exportXLSX(c, board, filename)
	case "csv":
		h.exportCSV(c, board, filename)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported export format"})
	}
}

func exportRow(rank int, e entity.ScoreEntry) []string {
	return []string{
		strconv.Itoa(rank),
		sanitizeForExcel(e.PlayerName),
		strconv.Itoa(e.Score),
		strconv.Itoa(e.Accuracy),
		strconv.Itoa(e.BestStreak),
		string(e.Difficulty),
		e.Date.Format(time.RFC3339),
	}
}

// exportCSV экспортирует таблицу в CSV
func (h *LeaderboardHandler) exportCSV(c *gin.Context, board []entity.ScoreEntry, filename string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", filename))

	// BOM для корректного отображения UTF-8 в Excel
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write(exportHeaders)
	for i, e := range board {
		writer.Write(exportRow(i+1, e))
	}
}

// exportXLSX экспортирует таблицу в Excel через StreamWriter
func (h *LeaderboardHandler) exportXLSX(c *gin.Context, board []entity.ScoreEntry, filename string) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Leaderboard"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		log.Printf("[LeaderboardHandler] Ошибка переименования листа: %v", err)
	}

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		log.Printf("[LeaderboardHandler] Ошибка создания StreamWriter: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}

	headers := make([]interface{}, len(exportHeaders))
	for i, title := range exportHeaders {
		headers[i] = title
	}
	if err := sw.SetRow("A1", headers); err != nil {
		log.Printf("[LeaderboardHandler] Ошибка записи заголовков: %v", err)
	}

	for i, e := range board {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{i + 1, sanitizeForExcel(e.PlayerName), e.Score, e.Accuracy, e.BestStreak, string(e.Difficulty), e.Date.Format(time.RFC3339)}
		if err := sw.SetRow(cell, row); err != nil {
			log.Printf("[LeaderboardHandler] Ошибка записи строки %d: %v", i+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		log.Printf("[LeaderboardHandler] Ошибка при Flush: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))
	if err := f.Write(c.Writer); err != nil {
		log.Printf("[LeaderboardHandler] Ошибка записи Excel в response: %v", err)
	}
}

// sanitizeForExcel экранирует данные для защиты от formula injection в Excel/CSV
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + s
	}
	return s
}
