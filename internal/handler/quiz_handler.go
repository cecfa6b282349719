package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quizzify-api/internal/handler/dto"
	"github.com/yourusername/quizzify-api/internal/service"
)

// QuizHandler обрабатывает запросы управления викторинами
type QuizHandler struct {
	quizService *service.QuizService
}

// NewQuizHandler создает новый обработчик викторин
func NewQuizHandler(quizService *service.QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

// CreateQuiz создает викторину с вопросами
func (h *QuizHandler) CreateQuiz(c *gin.Context) {
	user, ok := mustCurrentUser(c)
	if !ok {
		return
	}

	var input service.QuizInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	quiz, err := h.quizService.CreateQuiz(user, input)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewQuizResponse(quiz, true, true))
}

// GetQuiz возвращает викторину по id с проверкой доступа.
// Правильные ответы видят только создатель и администратор.
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	user, ok := mustCurrentUser(c)
	if !ok {
		return
	}
	quizID := c.MustGet("quizID").(uint)

	quiz, err := h.quizService.GetQuizForUser(quizID, user)
	if err != nil {
		handleError(c, err)
		return
	}

	reveal := user.IsAdmin() || quiz.IsOwnedBy(user.ID)
	c.JSON(http.StatusOK, dto.NewQuizResponse(quiz, true, reveal))
}

// GetQuizByCode возвращает викторину по коду присоединения
func (h *QuizHandler) GetQuizByCode(c *gin.Context) {
	user, ok := mustCurrentUser(c)
	if !ok {
		return
	}
	code := c.Param("code")

	quiz, err := h.quizService.GetQuizByCodeForUser(code, user)
	if err != nil {
		handleError(c, err)
		return
	}

	reveal := user.IsAdmin() || quiz.IsOwnedBy(user.ID)
	c.JSON(http.StatusOK, dto.NewQuizResponse(quiz, true, reveal))
}

// ListLive возвращает опубликованные викторины, доступные филиалу
// пользователя и открытые в текущий момент
func (h *QuizHandler) ListLive(c *gin.Context) {
	user, ok := mustCurrentUser(c)
	if !ok {
		return
	}

	quizzes, err := h.quizService.ListLiveQuizzes(user)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"quizzes": dto.NewQuizListResponse(quizzes)})
}

// ListMine возвращает викторины, созданные пользователем
func (h *QuizHandler) ListMine(c *gin.Context) {
	user, ok := mustCurrentUser(c)
	if !ok {
		return
	}

	quizzes, err := h.quizService.ListMyQuizzes(user.ID)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"quizzes": dto.NewQuizListResponse(quizzes)})
}

// UpdateQuiz обновляет викторину и, если присланы вопросы, весь их набор
func (h *QuizHandler) UpdateQuiz(c *gin.Context) {
	user, ok := mustCurrentUser(c)
	if !ok {
		return
	}
	quizID := c.MustGet("quizID").(uint)

	var input service.QuizInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	quiz, err := h.quizService.UpdateQuiz(quizID, user, input)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewQuizResponse(quiz, true, true))
}

// SetPublished переключает флаг публикации
func (h *QuizHandler) SetPublished(c *gin.Context) {
	user, ok := mustCurrentUser(c)
	if !ok {
		return
	}
	quizID := c.MustGet("quizID").(uint)

	var req struct {
		IsPublished *bool `json:"is_published" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "is_published is required"})
		return
	}

	if err := h.quizService.SetPublished(quizID, user, *req.IsPublished); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Publish state updated", "is_published": *req.IsPublished})
}

// AddQuestion добавляет один вопрос в существующую викторину
func (h *QuizHandler) AddQuestion(c *gin.Context) {
	user, ok := mustCurrentUser(c)
	if !ok {
		return
	}
	quizID := c.MustGet("quizID").(uint)

	var input service.QuestionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	question, err := h.quizService.AddQuestion(quizID, user, input)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewQuestionResponse(question, true))
}

// UpdateQuestion обновляет один вопрос викторины
func (h *QuizHandler) UpdateQuestion(c *gin.Context) {
	user, ok := mustCurrentUser(c)
	if !ok {
		return
	}
	quizID := c.MustGet("quizID").(uint)
	questionID := c.MustGet("questionID").(uint)

	var input service.QuestionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	question, err := h.quizService.UpdateQuestion(quizID, questionID, user, input)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewQuestionResponse(question, true))
}

// DeleteQuestion удаляет один вопрос викторины
func (h *QuizHandler) DeleteQuestion(c *gin.Context) {
	user, ok := mustCurrentUser(c)
	if !ok {
		return
	}
	quizID := c.MustGet("quizID").(uint)
	questionID := c.MustGet("questionID").(uint)

	if err := h.quizService.DeleteQuestion(quizID, questionID, user); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Question deleted"})
}

// DeleteQuiz удаляет викторину вместе с вопросами
func (h *QuizHandler) DeleteQuiz(c *gin.Context) {
	user, ok := mustCurrentUser(c)
	if !ok {
		return
	}
	quizID := c.MustGet("quizID").(uint)

	if err := h.quizService.DeleteQuiz(quizID, user); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Quiz deleted"})
}
