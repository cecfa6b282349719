package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// EvaluatedAnswer — зафиксированный на момент сдачи ответ.
// Текст вопроса и вариантов снапшотится: последующие правки вопроса
// не меняют исторические результаты.
type EvaluatedAnswer struct {
	QuestionID     uint    `json:"questionId,omitempty"`
	QuestionText   string  `json:"questionText"`
	SelectedOption *int    `json:"selectedOption"`
	SelectedAnswer *string `json:"selectedAnswer"`
	CorrectAnswer  string  `json:"correctAnswer"`
	IsCorrect      bool    `json:"isCorrect"`
}

// EvaluatedAnswerList - пользовательский тип для хранения ответов в JSONB
type EvaluatedAnswerList []EvaluatedAnswer

// Scan реализует интерфейс sql.Scanner для EvaluatedAnswerList
func (l *EvaluatedAnswerList) Scan(value interface{}) error {
	if value == nil {
		*l = EvaluatedAnswerList{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal JSONB value: expected []byte")
	}

	if len(bytes) == 0 {
		*l = EvaluatedAnswerList{}
		return nil
	}

	return json.Unmarshal(bytes, l)
}

// Value реализует интерфейс driver.Valuer для EvaluatedAnswerList
func (l EvaluatedAnswerList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

// Result представляет итог одной попытки прохождения викторины.
// Создаётся при сдаче и далее неизменяем.
type Result struct {
	ID     uint  `gorm:"primaryKey" json:"id"`
	UserID uint  `gorm:"not null;index" json:"user_id"`
	// QuizID nullable: кастомные викторины могут не иметь сохранённой записи Quiz
	QuizID *uint `gorm:"index" json:"quiz_id,omitempty"`
	// QuizCode — денормализованный код для поиска лидерборда кастомной викторины
	QuizCode string `gorm:"size:10;not null;default:'';index" json:"quiz_code,omitempty"`
	// Course — денормализованное название курса/викторины
	Course string `gorm:"size:200;not null;default:''" json:"course,omitempty"`

	// Снапшот данных студента: лидерборд должен отображаться даже после
	// удаления или изменения учетной записи
	StudentName  string `gorm:"size:200;not null;default:''" json:"student_name"`
	StudentEmail string `gorm:"size:100;not null;default:''" json:"student_email"`
	Branch       string `gorm:"size:10;not null;default:''" json:"branch"`

	Answers     EvaluatedAnswerList `gorm:"type:jsonb;not null" json:"answers"`
	Score       int                 `gorm:"not null;default:0" json:"score"`
	DurationSec int                 `gorm:"not null;default:0" json:"duration"`
	Badges      StringArray         `gorm:"type:jsonb;not null" json:"badges"`
	StartedAt   time.Time           `gorm:"not null" json:"startedAt"`
	SubmittedAt time.Time           `gorm:"not null;index" json:"submittedAt"`
	CreatedAt   time.Time           `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (Result) TableName() string {
	return "results"
}

// AnswerCount возвращает количество оценённых ответов.
// Внимание: это НЕ обязательно равно числу вопросов викторины
// (неизвестные questionId отбрасываются при сдаче).
func (r *Result) AnswerCount() int {
	return len(r.Answers)
}
