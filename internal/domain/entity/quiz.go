package entity

import (
	"strings"
	"time"
)

// Quiz представляет викторину
type Quiz struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"size:200;not null" json:"title"`
	Description string `gorm:"size:1000;not null;default:''" json:"description"`
	// TimeLimitMin — лимит прохождения в минутах
	TimeLimitMin int `gorm:"not null;default:0" json:"time_limit"`
	// Branches — список филиалов с доступом, либо сентинел "All"
	Branches StringArray `gorm:"type:jsonb;not null" json:"branches"`
	Image    string      `gorm:"size:255;not null;default:'/defaultlive.jpg'" json:"image"`
	// Code — короткий код для присоединения к викторине
	Code         string     `gorm:"size:10;not null;uniqueIndex" json:"code"`
	CreatedBy    uint       `gorm:"not null;index" json:"created_by"`
	CreatorEmail string     `gorm:"size:100;not null;default:''" json:"creator_email"`
	CreatorRole  string     `gorm:"size:20;not null;default:'student'" json:"creator_role"`
	IsPublished  bool       `gorm:"not null;default:false;index" json:"is_published"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	Questions    []Question `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Quiz) TableName() string {
	return "quizzes"
}

// AllowsBranch проверяет доступ филиала к викторине.
// Пустой список трактуем как "All" (legacy данные).
func (q *Quiz) AllowsBranch(branch string) bool {
	if len(q.Branches) == 0 || q.Branches.Contains(BranchAll) {
		return true
	}
	branch = strings.ToUpper(strings.TrimSpace(branch))
	for _, b := range q.Branches {
		if strings.EqualFold(b, branch) {
			return true
		}
	}
	return false
}

// IsOpenAt проверяет, попадает ли момент времени в окно доступности.
// Отсутствующая граница не ограничивает.
func (q *Quiz) IsOpenAt(now time.Time) bool {
	if q.StartDate != nil && q.StartDate.After(now) {
		return false
	}
	if q.EndDate != nil && q.EndDate.Before(now) {
		return false
	}
	return true
}

// IsVisibleTo проверяет инвариант видимости для студента:
// опубликована, филиал разрешён и текущее время внутри окна
func (q *Quiz) IsVisibleTo(branch string, now time.Time) bool {
	return q.IsPublished && q.AllowsBranch(branch) && q.IsOpenAt(now)
}

// IsOwnedBy проверяет, создана ли викторина данным пользователем
func (q *Quiz) IsOwnedBy(userID uint) bool {
	return q.CreatedBy == userID
}
