package repository

import (
	"github.com/yourusername/quizzify-api/internal/domain/entity"
)

// UserRepository определяет методы для работы с пользователями
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id uint) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	// GetByIDs возвращает карту пользователей по множеству идентификаторов.
	// Используется для fallback-join лидерборда.
	GetByIDs(ids []uint) (map[uint]*entity.User, error)
	Update(user *entity.User) error
	UpdateProfile(userID uint, updates map[string]interface{}) error
	ListByRole(role string) ([]entity.User, error)
	Count() (int64, error)
	Delete(id uint) error
}
