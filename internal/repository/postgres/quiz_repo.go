package postgres

import (
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/yourusername/quizzify-api/internal/domain/entity"
	apperrors "github.com/yourusername/quizzify-api/internal/pkg/errors"
)

// QuizRepo реализует repository.QuizRepository
type QuizRepo struct {
	db *gorm.DB
}

// NewQuizRepo создает новый репозиторий викторин
func NewQuizRepo(db *gorm.DB) *QuizRepo {
	return &QuizRepo{db: db}
}

// Create сохраняет викторину вместе с вопросами (GORM каскадно создаёт ассоциацию)
func (r *QuizRepo) Create(quiz *entity.Quiz) error {
	return r.db.Create(quiz).Error
}

// GetByID возвращает викторину без вопросов
func (r *QuizRepo) GetByID(id uint) (*entity.Quiz, error) {
	var quiz entity.Quiz
	err := r.db.First(&quiz, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &quiz, nil
}

// GetWithQuestions возвращает викторину вместе с вопросами
func (r *QuizRepo) GetWithQuestions(id uint) (*entity.Quiz, error) {
	var quiz entity.Quiz
	err := r.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("questions.id ASC")
	}).First(&quiz, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &quiz, nil
}

// GetByCode возвращает викторину по короткому коду
func (r *QuizRepo) GetByCode(code string) (*entity.Quiz, error) {
	var quiz entity.Quiz
	err := r.db.Where("code = ?", code).First(&quiz).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &quiz, nil
}

// GetByCodeWithQuestions возвращает викторину по коду вместе с вопросами
func (r *QuizRepo) GetByCodeWithQuestions(code string) (*entity.Quiz, error) {
	var quiz entity.Quiz
	err := r.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("questions.id ASC")
	}).Where("code = ?", code).First(&quiz).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &quiz, nil
}

// ListByCreator возвращает викторины пользователя, новые первыми
func (r *QuizRepo) ListByCreator(userID uint) ([]entity.Quiz, error) {
	var quizzes []entity.Quiz
	err := r.db.Preload("Questions").
		Where("created_by = ?", userID).
		Order("created_at DESC").
		Find(&quizzes).Error
	return quizzes, err
}

// ListLiveForBranch возвращает опубликованные админские викторины, доступные
// филиалу (или "All") и открытые на момент now.
// Фильтр по branches выполняется по JSONB-массиву оператором @>.
func (r *QuizRepo) ListLiveForBranch(branch string, now time.Time) ([]entity.Quiz, error) {
	var quizzes []entity.Quiz
	err := r.db.Preload("Questions").
		Where("creator_role = ? AND is_published = ?", entity.RoleAdmin, true).
		Where("(branches @> ? OR branches @> ?)", jsonbArray(branch), jsonbArray(entity.BranchAll)).
		Where("(start_date IS NULL OR start_date <= ?)", now).
		Where("(end_date IS NULL OR end_date >= ?)", now).
		Order("created_at DESC").
		Find(&quizzes).Error
	return quizzes, err
}

// jsonbArray формирует JSON-массив из одного элемента для оператора @>
func jsonbArray(value string) string {
	// Значения филиалов — короткие коды без кавычек/бэкслешей, ручная сборка безопасна
	return `["` + value + `"]`
}

// Update сохраняет изменённую викторину (без ассоциаций)
func (r *QuizRepo) Update(quiz *entity.Quiz) error {
	return r.db.Omit("Questions").Save(quiz).Error
}

// ReplaceQuestions атомарно заменяет набор вопросов викторины:
// старые удаляются и новые вставляются в одной транзакции
func (r *QuizRepo) ReplaceQuestions(quizID uint, questions []entity.Question) error {
	tx := r.db.Begin()
	defer func() {
		if rec := recover(); rec != nil {
			tx.Rollback()
			log.Printf("PANIC recovered during ReplaceQuestions transaction: %v", rec)
		}
	}()
	if tx.Error != nil {
		return tx.Error
	}

	if err := tx.Where("quiz_id = ?", quizID).Delete(&entity.Question{}).Error; err != nil {
		tx.Rollback()
		return err
	}

	if len(questions) > 0 {
		for i := range questions {
			questions[i].ID = 0
			questions[i].QuizID = quizID
		}
		if err := tx.Create(&questions).Error; err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit().Error
}

// SetPublished обновляет флаг публикации
func (r *QuizRepo) SetPublished(quizID uint, published bool) error {
	result := r.db.Model(&entity.Quiz{}).
		Where("id = ?", quizID).
		Update("is_published", published)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete удаляет викторину вместе с вопросами в одной транзакции
func (r *QuizRepo) Delete(id uint) error {
	tx := r.db.Begin()
	defer func() {
		if rec := recover(); rec != nil {
			tx.Rollback()
			log.Printf("PANIC recovered during quiz Delete transaction: %v", rec)
		}
	}()
	if tx.Error != nil {
		return tx.Error
	}

	if err := tx.Where("quiz_id = ?", id).Delete(&entity.Question{}).Error; err != nil {
		tx.Rollback()
		return err
	}

	result := tx.Delete(&entity.Quiz{}, id)
	if result.Error != nil {
		tx.Rollback()
		return result.Error
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		return apperrors.ErrNotFound
	}

	return tx.Commit().Error
}

// CountByCreatorEmail возвращает количество викторин, созданных с указанного email
func (r *QuizRepo) CountByCreatorEmail(email string) (int64, error) {
	var count int64
	err := r.db.Model(&entity.Quiz{}).
		Where("creator_email = ?", email).
		Count(&count).Error
	return count, err
}
