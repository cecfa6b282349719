package service

import (
	"crypto/rand"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/yourusername/quizzify-api/internal/domain/entity"
	"github.com/yourusername/quizzify-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizzify-api/internal/pkg/errors"
)

// codeAlphabet — алфавит кода викторины: без строчных букв, код вводится вручную
const codeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// codeLength — длина кода викторины
const codeLength = 6

// codeAttempts — число попыток сгенерировать уникальный код
const codeAttempts = 5

// QuestionInput — один вопрос при создании или обновлении викторины
type QuestionInput struct {
	Text          string   `json:"question_text"`
	Options       []string `json:"options"`
	CorrectOption int      `json:"correct_option"`
	Image         string   `json:"image"`
}

// QuizInput — параметры создания или обновления викторины
type QuizInput struct {
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	TimeLimitMin int             `json:"time_limit"`
	Branches     []string        `json:"branches"`
	Image        string          `json:"image"`
	StartDate    *time.Time      `json:"start_date"`
	EndDate      *time.Time      `json:"end_date"`
	Questions    []QuestionInput `json:"questions"`
}

// QuizService управляет жизненным циклом викторин и проверками доступа
type QuizService struct {
	quizRepo     repository.QuizRepository
	questionRepo repository.QuestionRepository
}

// NewQuizService создает новый сервис викторин
func NewQuizService(quizRepo repository.QuizRepository, questionRepo repository.QuestionRepository) *QuizService {
	return &QuizService{quizRepo: quizRepo, questionRepo: questionRepo}
}

// CreateQuiz валидирует входные данные, генерирует уникальный код
// и сохраняет викторину вместе с вопросами
func (s *QuizService) CreateQuiz(creator *entity.User, input QuizInput) (*entity.Quiz, error) {
	if err := validateQuizInput(input); err != nil {
		return nil, err
	}

	branches, err := resolveBranches(input.Branches)
	if err != nil {
		return nil, err
	}

	questions := make([]entity.Question, 0, len(input.Questions))
	for _, q := range input.Questions {
		questions = append(questions, entity.Question{
			Text:          q.Text,
			Options:       entity.StringArray(q.Options),
			CorrectOption: q.CorrectOption,
			Image:         q.Image,
		})
	}

	quiz := &entity.Quiz{
		Title:        input.Title,
		Description:  input.Description,
		TimeLimitMin: input.TimeLimitMin,
		Branches:     branches,
		Image:        input.Image,
		CreatedBy:    creator.ID,
		CreatorEmail: creator.Email,
		CreatorRole:  creator.Role,
		StartDate:    input.StartDate,
		EndDate:      input.EndDate,
		Questions:    questions,
	}

	// Коллизия кода маловероятна, но уникальный индекс может ее отклонить
	for attempt := 0; attempt < codeAttempts; attempt++ {
		code, err := generateQuizCode()
		if err != nil {
			return nil, err
		}
		quiz.Code = code

		if err := s.quizRepo.Create(quiz); err == nil {
			log.Printf("[QuizService] Создана викторина %d (%s) пользователем %d", quiz.ID, quiz.Code, creator.ID)
			return quiz, nil
		} else if attempt == codeAttempts-1 {
			log.Printf("[QuizService] Ошибка создания викторины: %v", err)
			return nil, err
		}
	}
	return nil, fmt.Errorf("не удалось сгенерировать уникальный код викторины")
}

// GetQuizForUser возвращает викторину с проверкой доступа: студент видит
// только опубликованные викторины своего филиала внутри временного окна.
// Создатель и администратор видят викторину всегда.
func (s *QuizService) GetQuizForUser(quizID uint, user *entity.User) (*entity.Quiz, error) {
	quiz, err := s.quizRepo.GetWithQuestions(quizID)
	if err != nil {
		return nil, err
	}
	if err := s.checkAccess(quiz, user); err != nil {
		return nil, err
	}
	return quiz, nil
}

// GetQuizByCodeForUser возвращает викторину по коду с той же проверкой доступа
func (s *QuizService) GetQuizByCodeForUser(code string, user *entity.User) (*entity.Quiz, error) {
	quiz, err := s.quizRepo.GetByCodeWithQuestions(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return nil, err
	}
	if err := s.checkAccess(quiz, user); err != nil {
		return nil, err
	}
	return quiz, nil
}

// checkAccess проверяет видимость викторины для пользователя
func (s *QuizService) checkAccess(quiz *entity.Quiz, user *entity.User) error {
	if user.IsAdmin() || quiz.IsOwnedBy(user.ID) {
		return nil
	}
	if !quiz.IsPublished {
		return fmt.Errorf("%w: викторина не опубликована", apperrors.ErrForbidden)
	}
	if !quiz.AllowsBranch(user.Branch) {
		return fmt.Errorf("%w: викторина недоступна вашему филиалу", apperrors.ErrForbidden)
	}
	if !quiz.IsOpenAt(time.Now()) {
		return fmt.Errorf("%w: викторина сейчас закрыта", apperrors.ErrForbidden)
	}
	return nil
}

// ListLiveQuizzes возвращает опубликованные викторины, доступные
// филиалу пользователя и открытые в текущий момент
func (s *QuizService) ListLiveQuizzes(user *entity.User) ([]entity.Quiz, error) {
	return s.quizRepo.ListLiveForBranch(user.Branch, time.Now())
}

// ListMyQuizzes возвращает викторины, созданные пользователем
func (s *QuizService) ListMyQuizzes(userID uint) ([]entity.Quiz, error) {
	return s.quizRepo.ListByCreator(userID)
}

// UpdateQuiz обновляет викторину. Разрешено только создателю и администратору.
// Если присланы вопросы, набор вопросов заменяется целиком.
func (s *QuizService) UpdateQuiz(quizID uint, user *entity.User, input QuizInput) (*entity.Quiz, error) {
	quiz, err := s.quizRepo.GetByID(quizID)
	if err != nil {
		return nil, err
	}
	if !quiz.IsOwnedBy(user.ID) && !user.IsAdmin() {
		return nil, fmt.Errorf("%w: редактировать может только создатель", apperrors.ErrForbidden)
	}

	if err := validateQuizInput(input); err != nil {
		return nil, err
	}
	branches, err := resolveBranches(input.Branches)
	if err != nil {
		return nil, err
	}

	quiz.Title = input.Title
	quiz.Description = input.Description
	quiz.TimeLimitMin = input.TimeLimitMin
	quiz.Branches = branches
	if input.Image != "" {
		quiz.Image = input.Image
	}
	quiz.StartDate = input.StartDate
	quiz.EndDate = input.EndDate

	if err := s.quizRepo.Update(quiz); err != nil {
		return nil, err
	}

	if len(input.Questions) > 0 {
		questions := make([]entity.Question, 0, len(input.Questions))
		for _, q := range input.Questions {
			questions = append(questions, entity.Question{
				QuizID:        quiz.ID,
				Text:          q.Text,
				Options:       entity.StringArray(q.Options),
				CorrectOption: q.CorrectOption,
				Image:         q.Image,
			})
		}
		if err := s.quizRepo.ReplaceQuestions(quiz.ID, questions); err != nil {
			return nil, err
		}
	}

	return s.quizRepo.GetWithQuestions(quiz.ID)
}

// SetPublished переключает флаг публикации. Разрешено создателю и администратору.
func (s *QuizService) SetPublished(quizID uint, user *entity.User, published bool) error {
	quiz, err := s.quizRepo.GetByID(quizID)
	if err != nil {
		return err
	}
	if !quiz.IsOwnedBy(user.ID) && !user.IsAdmin() {
		return fmt.Errorf("%w: публиковать может только создатель", apperrors.ErrForbidden)
	}
	return s.quizRepo.SetPublished(quizID, published)
}

// DeleteQuiz удаляет викторину вместе с вопросами.
// Разрешено создателю и администратору.
func (s *QuizService) DeleteQuiz(quizID uint, user *entity.User) error {
	quiz, err := s.quizRepo.GetByID(quizID)
	if err != nil {
		return err
	}
	if !quiz.IsOwnedBy(user.ID) && !user.IsAdmin() {
		return fmt.Errorf("%w: удалять может только создатель", apperrors.ErrForbidden)
	}
	log.Printf("[QuizService] Удаление викторины %d пользователем %d", quizID, user.ID)
	return s.quizRepo.Delete(quizID)
}

// AddQuestion добавляет один вопрос к существующей викторине
func (s *QuizService) AddQuestion(quizID uint, user *entity.User, input QuestionInput) (*entity.Question, error) {
	quiz, err := s.quizRepo.GetByID(quizID)
	if err != nil {
		return nil, err
	}
	if !quiz.IsOwnedBy(user.ID) && !user.IsAdmin() {
		return nil, fmt.Errorf("%w: редактировать может только создатель", apperrors.ErrForbidden)
	}
	if err := validateQuestionInput(input, 0); err != nil {
		return nil, err
	}

	question := &entity.Question{
		QuizID:        quizID,
		Text:          input.Text,
		Options:       entity.StringArray(input.Options),
		CorrectOption: input.CorrectOption,
		Image:         input.Image,
	}
	if err := s.questionRepo.Create(question); err != nil {
		return nil, err
	}
	return question, nil
}

// UpdateQuestion обновляет один вопрос викторины
func (s *QuizService) UpdateQuestion(quizID, questionID uint, user *entity.User, input QuestionInput) (*entity.Question, error) {
	quiz, err := s.quizRepo.GetByID(quizID)
	if err != nil {
		return nil, err
	}
	if !quiz.IsOwnedBy(user.ID) && !user.IsAdmin() {
		return nil, fmt.Errorf("%w: редактировать может только создатель", apperrors.ErrForbidden)
	}

	question, err := s.questionRepo.GetByID(questionID)
	if err != nil {
		return nil, err
	}
	if question.QuizID != quizID {
		return nil, fmt.Errorf("%w: вопрос принадлежит другой викторине", apperrors.ErrNotFound)
	}
	if err := validateQuestionInput(input, 0); err != nil {
		return nil, err
	}

	question.Text = input.Text
	question.Options = entity.StringArray(input.Options)
	question.CorrectOption = input.CorrectOption
	question.Image = input.Image
	if err := s.questionRepo.Update(question); err != nil {
		return nil, err
	}
	return question, nil
}

// DeleteQuestion удаляет один вопрос викторины.
/// Исторические результаты не трогаются: текст вопроса заморожен в снапшоте,
// а ответы на удаленный вопрос впоследствии просто отбрасываются при сдаче.
func (s *QuizService) DeleteQuestion(quizID, questionID uint, user *entity.User) error {
	quiz, err := s.quizRepo.GetByID(quizID)
	if err != nil {
		return err
	}
	if !quiz.IsOwnedBy(user.ID) && !user.IsAdmin() {
		return fmt.Errorf("%w: редактировать может только создатель", apperrors.ErrForbidden)
	}

	question, err := s.questionRepo.GetByID(questionID)
	if err != nil {
		return err
	}
	if question.QuizID != quizID {
		return fmt.Errorf("%w: вопрос принадлежит другой викторине", apperrors.ErrNotFound)
	}
	return s.questionRepo.Delete(questionID)
}

// CountQuizzes возвращает общее число викторин по email создателя.
// Пустой email означает все викторины — тогда считается по всем создателям.
func (s *QuizService) CountByCreatorEmail(email string) (int64, error) {
	return s.quizRepo.CountByCreatorEmail(email)
}

// validateQuizInput проверяет инварианты викторины и вопросов
func validateQuizInput(input QuizInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return fmt.Errorf("%w: название викторины обязательно", apperrors.ErrValidation)
	}
	if input.TimeLimitMin < 0 {
		return fmt.Errorf("%w: лимит времени не может быть отрицательным", apperrors.ErrValidation)
	}
	if input.StartDate != nil && input.EndDate != nil && input.EndDate.Before(*input.StartDate) {
		return fmt.Errorf("%w: дата закрытия раньше даты открытия", apperrors.ErrValidation)
	}
	for i, q := range input.Questions {
		if err := validateQuestionInput(q, i+1); err != nil {
			return err
		}
	}
	return nil
}

// validateQuestionInput проверяет инварианты одного вопроса.
// position используется в сообщении об ошибке; 0 означает одиночный вопрос.
func validateQuestionInput(q QuestionInput, position int) error {
	label := ""
	if position > 0 {
		label = fmt.Sprintf("вопрос %d: ", position)
	}
	if strings.TrimSpace(q.Text) == "" {
		return fmt.Errorf("%w: %sтекст вопроса обязателен", apperrors.ErrValidation, label)
	}
	if len(q.Options) < 2 {
		return fmt.Errorf("%w: %sминимум 2 варианта ответа", apperrors.ErrValidation, label)
	}
	// Индекс правильного ответа обязан попадать в границы списка вариантов
	if q.CorrectOption < 0 || q.CorrectOption >= len(q.Options) {
		return fmt.Errorf("%w: %sиндекс правильного ответа вне диапазона", apperrors.ErrValidation, label)
	}
	return nil
}

// resolveBranches нормализует список филиалов. Сентинел "All" (или пустой
// список) означает доступ для всех и хранится как пустой список.
func resolveBranches(branches []string) (entity.StringArray, error) {
	resolved := make(entity.StringArray, 0, len(branches))
	for _, b := range branches {
		b = strings.TrimSpace(b)
		if b == "" {
			continue
		}
		if strings.EqualFold(b, entity.BranchAll) {
			return entity.StringArray{}, nil
		}
		if !entity.IsKnownBranch(b) {
			return nil, fmt.Errorf("%w: неизвестный филиал %q", apperrors.ErrValidation, b)
		}
		resolved = append(resolved, strings.ToUpper(b))
	}
	return resolved, nil
}

// generateQuizCode генерирует короткий код для присоединения к викторине
func generateQuizCode() (string, error) {
	buf := make([]byte, codeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	code := make([]byte, codeLength)
	for i, b := range buf {
		code[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(code), nil
}
