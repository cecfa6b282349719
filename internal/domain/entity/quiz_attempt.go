package entity

import (
	"time"
)

// QuizAttempt — облегчённая append-only запись о попытке для статистики профиля.
// Записывается вместе с Result в одной транзакции; никогда не обновляется.
type QuizAttempt struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	QuizID      *uint     `gorm:"index" json:"quiz_id,omitempty"`
	Score       int       `gorm:"not null;default:0" json:"score"`
	Total       int       `gorm:"not null;default:0" json:"total"`
	SubmittedAt time.Time `gorm:"not null" json:"submittedAt"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}
