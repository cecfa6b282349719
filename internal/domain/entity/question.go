package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// StringArray - пользовательский тип для работы с JSONB
type StringArray []string

// Scan реализует интерфейс sql.Scanner для StringArray
// Используется GORM для чтения JSONB данных из базы
func (o *StringArray) Scan(value interface{}) error {
	// Обработка NULL значений из базы данных
	if value == nil {
		*o = StringArray{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal JSONB value: expected []byte")
	}

	if len(bytes) == 0 {
		*o = StringArray{}
		return nil
	}

	return json.Unmarshal(bytes, o)
}

// Value реализует интерфейс driver.Valuer для StringArray
// Используется GORM для записи StringArray в JSONB в базе
func (o StringArray) Value() (driver.Value, error) {
	if len(o) == 0 {
		return []byte("[]"), nil // Возвращаем пустой JSON массив вместо null
	}
	return json.Marshal(o)
}

// Contains проверяет наличие значения в массиве
func (o StringArray) Contains(value string) bool {
	for _, v := range o {
		if v == value {
			return true
		}
	}
	return false
}

// Question представляет вопрос викторины
type Question struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	QuizID        uint        `gorm:"not null;index" json:"quiz_id"`
	Text          string      `gorm:"size:1000;not null" json:"question_text"`
	Options       StringArray `gorm:"type:jsonb;not null" json:"options"`
	CorrectOption int         `gorm:"not null" json:"-"` // Скрыто от клиента
	Image         string      `gorm:"type:text;not null;default:''" json:"image,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Question) TableName() string {
	return "questions"
}

// IsCorrect проверяет, является ли выбранный вариант правильным.
// nil означает "не отвечено": никогда не равно валидному индексу и не паникует.
func (q *Question) IsCorrect(selectedOption *int) bool {
	return selectedOption != nil && *selectedOption == q.CorrectOption
}

// OptionText возвращает текст варианта по индексу, либо пустую строку,
// если индекс отсутствует или выходит за границы списка
func (q *Question) OptionText(index *int) string {
	if index == nil || *index < 0 || *index >= len(q.Options) {
		return ""
	}
	return q.Options[*index]
}

// CorrectText возвращает текст правильного варианта
func (q *Question) CorrectText() string {
	if q.CorrectOption < 0 || q.CorrectOption >= len(q.Options) {
		return ""
	}
	return q.Options[q.CorrectOption]
}

// IsValidOption проверяет, является ли выбранный вариант допустимым
func (q *Question) IsValidOption(selectedOption int) bool {
	return selectedOption >= 0 && selectedOption < len(q.Options)
}
