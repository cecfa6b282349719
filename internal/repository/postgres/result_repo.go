package postgres

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/yourusername/quizzify-api/internal/domain/entity"
	"github.com/yourusername/quizzify-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizzify-api/internal/pkg/errors"
)

// ResultRepo реализует repository.ResultRepository
type ResultRepo struct {
	db *gorm.DB
}

// NewResultRepo создает новый репозиторий результатов
func NewResultRepo(db *gorm.DB) *ResultRepo {
	return &ResultRepo{db: db}
}

// SaveResultWithAttempt атомарно сохраняет Result и QuizAttempt в одной транзакции.
// Либо записываются оба документа, либо ни одного: частичное состояние
// (результат без записи в истории попыток) невозможно.
func (r *ResultRepo) SaveResultWithAttempt(result *entity.Result, attempt *entity.QuizAttempt) error {
	tx := r.db.Begin()
	defer func() {
		if rec := recover(); rec != nil {
			tx.Rollback()
			log.Printf("PANIC recovered during SaveResultWithAttempt transaction: %v", rec)
		}
	}()
	if tx.Error != nil {
		return tx.Error
	}

	if err := tx.Create(result).Error; err != nil {
		tx.Rollback()
		log.Printf("[ResultRepo] Ошибка сохранения результата в транзакции: %v", err)
		return err
	}

	if attempt != nil {
		if err := tx.Create(attempt).Error; err != nil {
			tx.Rollback()
			log.Printf("[ResultRepo] Ошибка сохранения попытки в транзакции: %v", err)
			return err
		}
	}

	return tx.Commit().Error
}

// GetRecentByUser возвращает последние limit результатов пользователя, новые первыми
func (r *ResultRepo) GetRecentByUser(userID uint, limit int) ([]entity.Result, error) {
	var results []entity.Result
	err := r.db.Where("user_id = ?", userID).
		Order("submitted_at DESC").
		Limit(limit).
		Find(&results).Error
	return results, err
}

// GetUserResults возвращает все результаты пользователя, новые первыми
func (r *ResultRepo) GetUserResults(userID uint) ([]entity.Result, error) {
	var results []entity.Result
	err := r.db.Where("user_id = ?", userID).
		Order("submitted_at DESC").
		Find(&results).Error
	return results, err
}

// GetLatestUserResult возвращает последний результат пользователя для викторины
func (r *ResultRepo) GetLatestUserResult(userID uint, quizID uint) (*entity.Result, error) {
	var result entity.Result
	err := r.db.Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Order("submitted_at DESC").
		First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &result, nil
}

// GetByQuizID возвращает все результаты викторины.
// Пустой слайс — валидный результат, ErrRecordNotFound здесь не проверяем.
func (r *ResultRepo) GetByQuizID(quizID uint) ([]entity.Result, error) {
	var results []entity.Result
	err := r.db.Where("quiz_id = ?", quizID).
		Order("submitted_at ASC").
		Find(&results).Error
	return results, err
}

// GetByQuizCode возвращает все результаты по коду викторины
func (r *ResultRepo) GetByQuizCode(code string) ([]entity.Result, error) {
	var results []entity.Result
	err := r.db.Where("quiz_code = ?", code).
		Order("submitted_at ASC").
		Find(&results).Error
	return results, err
}

// GetQuizAggregates возвращает агрегированную аналитику викторины одним SQL-запросом
func (r *ResultRepo) GetQuizAggregates(quizID uint) (*repository.QuizAggregates, error) {
	var agg repository.QuizAggregates
	err := r.db.Table("results").
		Select(`
			COUNT(*) as total_submissions,
			COALESCE(AVG(score), 0) as average_score,
			COALESCE(AVG(duration_sec), 0) as average_duration
		`).
		Where("quiz_id = ?", quizID).
		Scan(&agg).Error
	if err != nil {
		return nil, err
	}
	return &agg, nil
}
