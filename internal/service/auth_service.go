package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/yourusername/quizzify-api/internal/domain/entity"
	"github.com/yourusername/quizzify-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizzify-api/internal/pkg/errors"
)

// TokenGenerator выдает подписанный токен для пользователя
type TokenGenerator interface {
	GenerateToken(userID uint, email, role, branch string) (string, error)
}

// RegisterInput — параметры регистрации
type RegisterInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Phone     string `json:"phone"`
	Country   string `json:"country"`
	Branch    string `json:"branch"`
}

// ProfileUpdateInput — изменяемые поля профиля. nil означает "не трогать".
type ProfileUpdateInput struct {
	FirstName      *string `json:"first_name"`
	LastName       *string `json:"last_name"`
	Phone          *string `json:"phone"`
	Country        *string `json:"country"`
	Branch         *string `json:"branch"`
	ProfilePicture *string `json:"profile_picture"`
}

// AuthService отвечает за регистрацию, вход и профиль пользователя
type AuthService struct {
	userRepo repository.UserRepository
	tokens   TokenGenerator
	emailSvc EmailService
}

// NewAuthService создает новый сервис аутентификации.
// emailSvc может быть NoopEmailService, если почта выключена.
func NewAuthService(userRepo repository.UserRepository, tokens TokenGenerator, emailSvc EmailService) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		emailSvc: emailSvc,
	}
}

// Register создает учетную запись и возвращает пользователя с токеном
func (s *AuthService) Register(input RegisterInput) (*entity.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, "", fmt.Errorf("%w: некорректный email", apperrors.ErrValidation)
	}
	if len(input.Password) < 6 {
		return nil, "", fmt.Errorf("%w: пароль короче 6 символов", apperrors.ErrValidation)
	}
	if strings.TrimSpace(input.FirstName) == "" {
		return nil, "", fmt.Errorf("%w: имя обязательно", apperrors.ErrValidation)
	}
	branch := strings.ToUpper(strings.TrimSpace(input.Branch))
	if branch != "" && !entity.IsKnownBranch(branch) {
		return nil, "", fmt.Errorf("%w: неизвестный филиал %q", apperrors.ErrValidation, branch)
	}

	if _, err := s.userRepo.GetByEmail(email); err == nil {
		return nil, "", fmt.Errorf("%w: email уже зарегистрирован", apperrors.ErrConflict)
	}

	user := &entity.User{
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
		Email:     email,
		Password:  input.Password, // хешируется в BeforeSave
		Phone:     strings.TrimSpace(input.Phone),
		Country:   strings.TrimSpace(input.Country),
		Role:      entity.RoleStudent,
		Branch:    branch,
	}

	if err := s.userRepo.Create(user); err != nil {
		log.Printf("[AuthService] Ошибка создания пользователя %s: %v", email, err)
		return nil, "", err
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Email, user.Role, user.Branch)
	if err != nil {
		return nil, "", err
	}

	// Приветственное письмо не должно блокировать или срывать регистрацию
	if s.emailSvc != nil {
		go func(email, name string) {
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := s.emailSvc.SendWelcome(ctx, email, name); err != nil {
				log.Printf("[AuthService] Ошибка отправки приветственного письма %s: %v", email, err)
			}
		}(user.Email, user.FirstName)
	}

	log.Printf("[AuthService] Зарегистрирован пользователь %d (%s)", user.ID, user.Email)
	return user, token, nil
}

// Login проверяет учетные данные и возвращает пользователя с токеном
func (s *AuthService) Login(email, password string) (*entity.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		// Не раскрываем, существует ли email
		return nil, "", fmt.Errorf("%w: неверный email или пароль", apperrors.ErrUnauthorized)
	}

	if !user.CheckPassword(password) {
		return nil, "", fmt.Errorf("%w: неверный email или пароль", apperrors.ErrUnauthorized)
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Email, user.Role, user.Branch)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// GetUser возвращает пользователя по id
func (s *AuthService) GetUser(userID uint) (*entity.User, error) {
	return s.userRepo.GetByID(userID)
}

// EmailExists проверяет, занят ли email
func (s *AuthService) EmailExists(email string) (bool, error) {
	_, err := s.userRepo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// UpdateProfile частично обновляет профиль пользователя
func (s *AuthService) UpdateProfile(userID uint, input ProfileUpdateInput) (*entity.User, error) {
	fields := map[string]interface{}{}
	if input.FirstName != nil {
		if strings.TrimSpace(*input.FirstName) == "" {
			return nil, fmt.Errorf("%w: имя не может быть пустым", apperrors.ErrValidation)
		}
		fields["first_name"] = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		fields["last_name"] = strings.TrimSpace(*input.LastName)
	}
	if input.Phone != nil {
		fields["phone"] = strings.TrimSpace(*input.Phone)
	}
	if input.Country != nil {
		fields["country"] = strings.TrimSpace(*input.Country)
	}
	if input.ProfilePicture != nil {
		fields["profile_picture"] = *input.ProfilePicture
	}
	if input.Branch != nil {
		branch := strings.ToUpper(strings.TrimSpace(*input.Branch))
		if branch != "" && !entity.IsKnownBranch(branch) {
			return nil, fmt.Errorf("%w: неизвестный филиал %q", apperrors.ErrValidation, branch)
		}
		fields["branch"] = branch
	}

	if len(fields) == 0 {
		return s.userRepo.GetByID(userID)
	}

	if err := s.userRepo.UpdateProfile(userID, fields); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(userID)
}
