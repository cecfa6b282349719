package dto

import (
	"time"

	"github.com/yourusername/quizzify-api/internal/domain/entity"
)

// UserResponse представляет пользователя в формате для ответа клиенту
type UserResponse struct {
	ID             uint      `json:"id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone,omitempty"`
	Country        string    `json:"country,omitempty"`
	ProfilePicture string    `json:"profile_picture"`
	Role           string    `json:"role"`
	Branch         string    `json:"branch"`
	CreatedAt      time.Time `json:"created_at"`
}

// AuthResponse — ответ на регистрацию и вход
type AuthResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}

// NewUserResponse создает DTO для пользователя
func NewUserResponse(u *entity.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:             u.ID,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Email:          u.Email,
		Phone:          u.Phone,
		Country:        u.Country,
		ProfilePicture: u.ProfilePicture,
		Role:           u.Role,
		Branch:         u.Branch,
		CreatedAt:      u.CreatedAt,
	}
}

// NewUserListResponse создает DTO для списка пользователей
func NewUserListResponse(users []entity.User) []*UserResponse {
	out := make([]*UserResponse, len(users))
	for i := range users {
		out[i] = NewUserResponse(&users[i])
	}
	return out
}
