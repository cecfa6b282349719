package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quizzify-api/internal/handler/dto"
	"github.com/yourusername/quizzify-api/internal/service"
)

// AdminHandler обрабатывает административные запросы
type AdminHandler struct {
	userService *service.UserService
}

// NewAdminHandler создает новый административный обработчик
func NewAdminHandler(userService *service.UserService) *AdminHandler {
	return &AdminHandler{userService: userService}
}

// TotalUsers возвращает общее число пользователей
func (h *AdminHandler) TotalUsers(c *gin.Context) {
	count, err := h.userService.CountUsers()
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total_users": count})
}

// TotalQuizzes возвращает число викторин. Параметр creator_email
// сужает подсчет до одного создателя.
func (h *AdminHandler) TotalQuizzes(c *gin.Context) {
	count, err := h.userService.CountQuizzesByCreator(c.Query("creator_email"))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total_quizzes": count})
}

// ListUsers возвращает всех студентов
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListStudents()
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": dto.NewUserListResponse(users)})
}

// DeleteUser удаляет учетную запись
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	admin, ok := mustCurrentUser(c)
	if !ok {
		return
	}
	targetID := c.MustGet("userID").(uint)

	if err := h.userService.DeleteUser(admin.ID, targetID); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}
