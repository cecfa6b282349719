package service

import (
	"fmt"
	"log"

	"github.com/yourusername/quizzify-api/internal/domain/entity"
	"github.com/yourusername/quizzify-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizzify-api/internal/pkg/errors"
)

// UserService — административные операции над учетными записями
type UserService struct {
	userRepo repository.UserRepository
	quizRepo repository.QuizRepository
}

// NewUserService создает новый сервис пользователей
func NewUserService(userRepo repository.UserRepository, quizRepo repository.QuizRepository) *UserService {
	return &UserService{userRepo: userRepo, quizRepo: quizRepo}
}

// ListStudents возвращает всех студентов
func (s *UserService) ListStudents() ([]entity.User, error) {
	return s.userRepo.ListByRole(entity.RoleStudent)
}

// CountUsers возвращает общее число пользователей
func (s *UserService) CountUsers() (int64, error) {
	return s.userRepo.Count()
}

// CountQuizzesByCreator возвращает число викторин по email создателя
func (s *UserService) CountQuizzesByCreator(email string) (int64, error) {
	return s.quizRepo.CountByCreatorEmail(email)
}

// DeleteUser удаляет учетную запись. Администратор не может удалить сам себя.
// Результаты пользователя остаются: лидерборды читают снапшот с результата.
func (s *UserService) DeleteUser(actorID, targetID uint) error {
	if actorID == targetID {
		return fmt.Errorf("%w: нельзя удалить собственную учетную запись", apperrors.ErrForbidden)
	}
	if err := s.userRepo.Delete(targetID); err != nil {
		return err
	}
	log.Printf("[UserService] Пользователь %d удален администратором %d", targetID, actorID)
	return nil
}
