package handler

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yourusername/quizzify-api/internal/handler/dto"
	"github.com/yourusername/quizzify-api/internal/service"
)

// maxUploadSize — максимальный размер загружаемого изображения
const maxUploadSize = 5 << 20 // 5 MiB

// allowedImageExts — допустимые расширения загружаемых изображений
var allowedImageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

// AuthHandler обрабатывает запросы аутентификации и профиля
type AuthHandler struct {
	authService *service.AuthService
	uploadsDir  string
}

// NewAuthHandler создает новый обработчик аутентификации
func NewAuthHandler(authService *service.AuthService, uploadsDir string) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		uploadsDir:  uploadsDir,
	}
}

// Register обрабатывает регистрацию нового пользователя
func (h *AuthHandler) Register(c *gin.Context) {
	var input service.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	user, token, err := h.authService.Register(input)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.AuthResponse{
		Token: token,
		User:  dto.NewUserResponse(user),
	})
}

// Login обрабатывает вход пользователя
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}

	user, token, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{
		Token: token,
		User:  dto.NewUserResponse(user),
	})
}

// Me возвращает профиль текущего пользователя
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := mustCurrentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// CheckEmail сообщает, занят ли email. Используется формой регистрации.
func (h *AuthHandler) CheckEmail(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email query parameter is required"})
		return
	}

	exists, err := h.authService.EmailExists(email)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"exists": exists})
}

// UpdateProfile частично обновляет профиль текущего пользователя
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	user, ok := mustCurrentUser(c)
	if !ok {
		return
	}

	var input service.ProfileUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	updated, err := h.authService.UpdateProfile(user.ID, input)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(updated))
}

// UploadProfilePicture сохраняет аватар на диск и прописывает путь в профиль.
// Имя файла генерируется сервером: клиентское имя не попадает в путь.
func (h *AuthHandler) UploadProfilePicture(c *gin.Context) {
	user, ok := mustCurrentUser(c)
	if !ok {
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	if file.Size > maxUploadSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File too large"})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Unsupported image format"})
		return
	}

	filename := uuid.New().String() + ext
	dst := filepath.Join(h.uploadsDir, filename)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		handleError(c, fmt.Errorf("сохранение файла: %w", err))
		return
	}

	picture := "/uploads/" + filename
	updated, err := h.authService.UpdateProfile(user.ID, service.ProfileUpdateInput{
		ProfilePicture: &picture,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewUserResponse(updated))
}

// RemoveProfilePicture возвращает профилю аватар по умолчанию.
// Сам файл на диске не удаляется: на него могут ссылаться старые результаты.
func (h *AuthHandler) RemoveProfilePicture(c *gin.Context) {
	user, ok := mustCurrentUser(c)
	if !ok {
		return
	}

	picture := "/profile.png"
	updated, err := h.authService.UpdateProfile(user.ID, service.ProfileUpdateInput{
		ProfilePicture: &picture,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewUserResponse(updated))
}
