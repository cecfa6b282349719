package entity

import (
	"log"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Роли пользователей
const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// BranchAll — сентинел "для всех филиалов" в списке branches викторины
const BranchAll = "All"

// KnownBranches — закрытый список организационных филиалов (кафедр)
var KnownBranches = []string{"CSE", "CSM", "CSO", "IT", "ECE", "ME", "CE", "EE"}

// IsKnownBranch проверяет, входит ли филиал в закрытый список
func IsKnownBranch(branch string) bool {
	for _, b := range KnownBranches {
		if b == branch {
			return true
		}
	}
	return false
}

// User представляет пользователя в системе
type User struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	FirstName      string     `gorm:"size:100;not null" json:"first_name"`
	LastName       string     `gorm:"size:100;not null" json:"last_name"`
	Email          string     `gorm:"size:100;not null;uniqueIndex" json:"email"`
	Password       string     `gorm:"size:100;not null" json:"-"`
	Phone          string     `gorm:"size:20;not null;default:''" json:"phone,omitempty"`
	Country        string     `gorm:"size:100;not null;default:''" json:"country,omitempty"`
	ProfilePicture string     `gorm:"size:255;not null;default:'/profile.png'" json:"profile_picture"`
	Role           string     `gorm:"size:20;not null;default:'student';index" json:"role"`
	Branch         string     `gorm:"size:10;not null;default:''" json:"branch"`

	// Attempts — append-only история попыток (профильная статистика).
	// Записи никогда не изменяются и не удаляются.
	Attempts []QuizAttempt `gorm:"foreignKey:UserID" json:"quiz_attempts,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (User) TableName() string {
	return "users"
}

// FullName возвращает отображаемое имя пользователя
func (u *User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return "Unnamed"
	}
	return name
}

// IsAdmin проверяет, является ли пользователь администратором
func (u *User) IsAdmin() bool {
	return strings.EqualFold(u.Role, RoleAdmin)
}

// BeforeSave хеширует пароль перед сохранением, только если он не является bcrypt-хешем
func (u *User) BeforeSave(tx *gorm.DB) error {
	// Хешируем пароль только если он:
	// 1. Не пустой
	// 2. Не является уже bcrypt-хешем (начинается с "$2a$", "$2b$" или "$2y$")
	if len(u.Password) > 0 && !strings.HasPrefix(u.Password, "$2a$") &&
		!strings.HasPrefix(u.Password, "$2b$") && !strings.HasPrefix(u.Password, "$2y$") {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("[User.BeforeSave] Ошибка при хешировании пароля для email=%s: %v", u.Email, err)
			return err
		}
		u.Password = string(hashedPassword)
	}
	return nil
}

// CheckPassword проверяет, соответствует ли переданный пароль хешу
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}
