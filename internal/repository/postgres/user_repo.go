package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/quizzify-api/internal/domain/entity"
	apperrors "github.com/yourusername/quizzify-api/internal/pkg/errors"
)

// UserRepo реализует repository.UserRepository
type UserRepo struct {
	db *gorm.DB
}

// NewUserRepo создает новый репозиторий пользователей
func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create создает нового пользователя
func (r *UserRepo) Create(user *entity.User) error {
	return r.db.Create(user).Error
}

// GetByID возвращает пользователя по ID
func (r *UserRepo) GetByID(id uint) (*entity.User, error) {
	var user entity.User
	err := r.db.First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByEmail возвращает пользователя по email
func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	var user entity.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByIDs возвращает карту пользователей по множеству идентификаторов
func (r *UserRepo) GetByIDs(ids []uint) (map[uint]*entity.User, error) {
	users := make(map[uint]*entity.User, len(ids))
	if len(ids) == 0 {
		return users, nil
	}

	var rows []entity.User
	if err := r.db.Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for i := range rows {
		users[rows[i].ID] = &rows[i]
	}
	return users, nil
}

// Update сохраняет изменённого пользователя
func (r *UserRepo) Update(user *entity.User) error {
	return r.db.Save(user).Error
}

// UpdateProfile точечно обновляет поля профиля без full Save
func (r *UserRepo) UpdateProfile(userID uint, updates map[string]interface{}) error {
	result := r.db.Model(&entity.User{}).Where("id = ?", userID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListByRole возвращает пользователей с указанной ролью
func (r *UserRepo) ListByRole(role string) ([]entity.User, error) {
	var users []entity.User
	err := r.db.Where("role = ?", role).
		Order("created_at DESC").
		Find(&users).Error
	return users, err
}

// Count возвращает общее количество пользователей
func (r *UserRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&entity.User{}).Count(&count).Error
	return count, err
}

// Delete удаляет пользователя по ID
func (r *UserRepo) Delete(id uint) error {
	result := r.db.Delete(&entity.User{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
