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

	"github.com/yourusername/quizzify-api/internal/service"
)

// ResultHandler обрабатывает сдачу викторин и чтение результатов
type ResultHandler struct {
	resultService *service.ResultService
}

// NewResultHandler создает новый обработчик результатов
func NewResultHandler(resultService *service.ResultService) *ResultHandler {
	return &ResultHandler{resultService: resultService}
}

// submitRequest — тело запроса на сдачу сохраненной викторины
type submitRequest struct {
	Answers     []service.SubmittedAnswer `json:"answers"`
	Duration    int                       `json:"duration"`
	StartTime   time.Time                 `json:"startTime"`
	SubmittedAt time.Time                 `json:"submittedAt"`
}

// SubmitQuiz принимает ответы и возвращает краткий итог сдачи
func (h *ResultHandler) SubmitQuiz(c *gin.Context) {
	user, ok := mustCurrentUser(c)
	if !ok {
		return
	}
	quizID := c.MustGet("quizID").(uint)

	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.SubmittedAt.IsZero() {
		req.SubmittedAt = time.Now()
	}

	summary, err := h.resultService.SubmitQuiz(quizID, user, service.SubmitInput{
		Answers:     req.Answers,
		DurationSec: req.Duration,
		StartedAt:   req.StartTime,
		SubmittedAt: req.SubmittedAt,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Quiz submitted successfully",
		"result":  summary,
	})
}

// customSubmitRequest — тело запроса на сдачу кастомной викторины
type customSubmitRequest struct {
	QuizCode    string                 `json:"quizCode"`
	Course      string                 `json:"course"`
	Answers     []service.CustomAnswer `json:"answers"`
	Duration    int                    `json:"duration"`
	StartedAt   time.Time              `json:"startedAt"`
	SubmittedAt time.Time              `json:"submittedAt"`
}

// SubmitCustomQuiz принимает уже разрешенные клиентом ответы кастомной викторины
func (h *ResultHandler) SubmitCustomQuiz(c *gin.Context) {
	user, ok := mustCurrentUser(c)
	if !ok {
		return
	}

	var req customSubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.SubmittedAt.IsZero() {
		req.SubmittedAt = time.Now()
	}

	result, err := h.resultService.SubmitCustomQuiz(user, service.CustomSubmitInput{
		QuizCode:    req.QuizCode,
		Course:      req.Course,
		Answers:     req.Answers,
		DurationSec: req.Duration,
		StartedAt:   req.StartedAt,
		SubmittedAt: req.SubmittedAt,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "result": result})
}

// GetLeaderboard возвращает лидерборд викторины по id
func (h *ResultHandler) GetLeaderboard(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)

	board, err := h.resultService.GetLeaderboard(quizID)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, board)
}

// GetLeaderboardByCode возвращает лидерборд по коду викторины
func (h *ResultHandler) GetLeaderboardByCode(c *gin.Context) {
	board, err := h.resultService.GetLeaderboardByCode(c.Param("code"))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, board)
}

// GetAnalytics возвращает агрегированную аналитику викторины
func (h *ResultHandler) GetAnalytics(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)

	analytics, err := h.resultService.GetAnalytics(quizID)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, analytics)
}

// GetUserHistory возвращает все результаты текущего пользователя, новые первыми
func (h *ResultHandler) GetUserHistory(c *gin.Context) {
	user, ok := mustCurrentUser(c)
	if !ok {
		return
	}

	results, err := h.resultService.GetUserHistory(user.ID)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

// GetUserQuizResult возвращает последний результат пользователя по викторине
func (h *ResultHandler) GetUserQuizResult(c *gin.Context) {
	user, ok := mustCurrentUser(c)
	if !ok {
		return
	}
	quizID := c.MustGet("quizID").(uint)

	result, err := h.resultService.GetUserQuizResult(user.ID, quizID)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ExportLeaderboard выгружает лидерборд викторины в CSV или XLSX
func (h *ResultHandler) ExportLeaderboard(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)
	format := c.DefaultQuery("format", "csv")

	board, err := h.resultService.GetLeaderboard(quizID)
	if err != nil {
		handleError(c, err)
		return
	}

	filename := fmt.Sprintf("quiz_%d_leaderboard_%s", quizID, time.Now().Format("2006-01-02"))

	switch format {
	case "xlsx":
		h.exportXLSX(c, board, filename)
	default:
		h.exportCSV(c, board, filename)
	}
}

// exportCSV выгружает лидерборд в CSV с экранированием спецсимволов
func (h *ResultHandler) exportCSV(c *gin.Context, board *service.Leaderboard, filename string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", filename))

	// BOM для корректного отображения UTF-8 в Excel
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write([]string{"Место", "Студент", "Email", "Филиал", "Очки", "Всего вопросов", "Время (сек)"})

	for _, e := range board.Leaderboard {
		writer.Write([]string{
			strconv.Itoa(e.Rank),
			sanitizeForExcel(e.StudentName),
			sanitizeForExcel(e.Email),
			sanitizeForExcel(e.Branch),
			strconv.Itoa(e.Score),
			strconv.Itoa(e.Total),
			strconv.Itoa(e.Duration),
		})
	}
}

// exportXLSX выгружает лидерборд в Excel через StreamWriter
func (h *ResultHandler) exportXLSX(c *gin.Context, board *service.Leaderboard, filename string) {
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Лидерборд"
	f.SetSheetName("Sheet1", sheetName)

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		log.Printf("[ResultHandler] Ошибка создания StreamWriter: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}

	headers := []interface{}{"Место", "Студент", "Email", "Филиал", "Очки", "Всего вопросов", "Время (сек)"}
	if err := sw.SetRow("A1", headers); err != nil {
		log.Printf("[ResultHandler] Ошибка записи заголовков: %v", err)
	}

	for i, e := range board.Leaderboard {
		cell := fmt.Sprintf("A%d", i+2)
		row := []interface{}{
			e.Rank,
			sanitizeForExcel(e.StudentName),
			sanitizeForExcel(e.Email),
			sanitizeForExcel(e.Branch),
			e.Score,
			e.Total,
			e.Duration,
		}
		if err := sw.SetRow(cell, row); err != nil {
			log.Printf("[ResultHandler] Ошибка записи строки %d: %v", i+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		log.Printf("[ResultHandler] Ошибка при Flush: %v", err)
	}
	if err := f.Write(c.Writer); err != nil {
		log.Printf("[ResultHandler] Ошибка записи Excel в response: %v", err)
	}
}

// sanitizeForExcel экранирует данные для защиты от formula injection в Excel/CSV
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	// Символы, начинающие формулу в Excel/LibreOffice: = + - @ \t \r
	if s[0] == '=' || s[0] == '+' || s[0] == '-' || s[0] == '@' || s[0] == '\t' || s[0] == '\r' {
		return "'" + s
	}
	return s
}
