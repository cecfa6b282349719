package repository

import (
	"github.com/yourusername/quizzify-api/internal/domain/entity"
)

// QuizAggregates — агрегаты по результатам викторины для аналитики
type QuizAggregates struct {
	TotalSubmissions int64
	AverageScore     float64
	AverageDuration  float64
}

// ResultRepository определяет методы для работы с результатами попыток
type ResultRepository interface {
	// SaveResultWithAttempt атомарно сохраняет Result и QuizAttempt
	// в одной транзакции: либо записываются оба, либо ни одного.
	SaveResultWithAttempt(result *entity.Result, attempt *entity.QuizAttempt) error
	// GetRecentByUser возвращает последние limit результатов пользователя,
	// новые первыми. Используется для расчёта бейджей по истории.
	GetRecentByUser(userID uint, limit int) ([]entity.Result, error)
	// GetUserResults возвращает все результаты пользователя, новые первыми
	GetUserResults(userID uint) ([]entity.Result, error)
	// GetLatestUserResult возвращает последний результат пользователя для викторины
	GetLatestUserResult(userID uint, quizID uint) (*entity.Result, error)
	// GetByQuizID возвращает все результаты викторины
	GetByQuizID(quizID uint) ([]entity.Result, error)
	// GetByQuizCode возвращает все результаты по коду викторины
	GetByQuizCode(code string) ([]entity.Result, error)
	// GetQuizAggregates возвращает агрегированную аналитику викторины
	GetQuizAggregates(quizID uint) (*QuizAggregates, error)
}
