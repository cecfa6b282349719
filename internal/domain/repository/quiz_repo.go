package repository

import (
	"time"

	"github.com/yourusername/quizzify-api/internal/domain/entity"
)

// QuizRepository определяет методы для работы с викторинами
type QuizRepository interface {
	// Create сохраняет викторину вместе с вопросами
	Create(quiz *entity.Quiz) error
	GetByID(id uint) (*entity.Quiz, error)
	GetWithQuestions(id uint) (*entity.Quiz, error)
	GetByCode(code string) (*entity.Quiz, error)
	GetByCodeWithQuestions(code string) (*entity.Quiz, error)
	// ListByCreator возвращает викторины пользователя, новые первыми
	ListByCreator(userID uint) ([]entity.Quiz, error)
	// ListLiveForBranch возвращает опубликованные админские викторины,
	// доступные филиалу и открытые на момент now
	ListLiveForBranch(branch string, now time.Time) ([]entity.Quiz, error)
	Update(quiz *entity.Quiz) error
	// ReplaceQuestions атомарно заменяет набор вопросов викторины
	ReplaceQuestions(quizID uint, questions []entity.Question) error
	SetPublished(quizID uint, published bool) error
	// Delete удаляет викторину вместе с вопросами
	Delete(id uint) error
	CountByCreatorEmail(email string) (int64, error)
}
