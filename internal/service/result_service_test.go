package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/quizzify-api/internal/domain/entity"
	"github.com/yourusername/quizzify-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizzify-api/internal/pkg/errors"
)

// ============================================================================
// Моки для ResultService
// ============================================================================

// MockResultRepo реализует repository.ResultRepository
type MockResultRepo struct {
	mock.Mock
}

func (m *MockResultRepo) SaveResultWithAttempt(result *entity.Result, attempt *entity.QuizAttempt) error {
	args := m.Called(result, attempt)
	return args.Error(0)
}

func (m *MockResultRepo) GetRecentByUser(userID uint, limit int) ([]entity.Result, error) {
	args := m.Called(userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Result), args.Error(1)
}

func (m *MockResultRepo) GetUserResults(userID uint) ([]entity.Result, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Result), args.Error(1)
}

func (m *MockResultRepo) GetLatestUserResult(userID uint, quizID uint) (*entity.Result, error) {
	args := m.Called(userID, quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Result), args.Error(1)
}

func (m *MockResultRepo) GetByQuizID(quizID uint) ([]entity.Result, error) {
	args := m.Called(quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Result), args.Error(1)
}

func (m *MockResultRepo) GetByQuizCode(code string) ([]entity.Result, error) {
	args := m.Called(code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Result), args.Error(1)
}

func (m *MockResultRepo) GetQuizAggregates(quizID uint) (*repository.QuizAggregates, error) {
	args := m.Called(quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.QuizAggregates), args.Error(1)
}

// MockQuizRepo реализует repository.QuizRepository
type MockQuizRepo struct {
	mock.Mock
}

func (m *MockQuizRepo) Create(quiz *entity.Quiz) error {
	args := m.Called(quiz)
	return args.Error(0)
}

func (m *MockQuizRepo) GetByID(id uint) (*entity.Quiz, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Quiz), args.Error(1)
}

func (m *MockQuizRepo) GetWithQuestions(id uint) (*entity.Quiz, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Quiz), args.Error(1)
}

func (m *MockQuizRepo) GetByCode(code string) (*entity.Quiz, error) {
	args := m.Called(code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Quiz), args.Error(1)
}

func (m *MockQuizRepo) GetByCodeWithQuestions(code string) (*entity.Quiz, error) {
	args := m.Called(code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Quiz), args.Error(1)
}

func (m *MockQuizRepo) ListByCreator(userID uint) ([]entity.Quiz, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Quiz), args.Error(1)
}

func (m *MockQuizRepo) ListLiveForBranch(branch string, now time.Time) ([]entity.Quiz, error) {
	args := m.Called(branch, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Quiz), args.Error(1)
}

func (m *MockQuizRepo) Update(quiz *entity.Quiz) error {
	args := m.Called(quiz)
	return args.Error(0)
}

func (m *MockQuizRepo) ReplaceQuestions(quizID uint, questions []entity.Question) error {
	args := m.Called(quizID, questions)
	return args.Error(0)
}

func (m *MockQuizRepo) SetPublished(quizID uint, published bool) error {
	args := m.Called(quizID, published)
	return args.Error(0)
}

func (m *MockQuizRepo) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockQuizRepo) CountByCreatorEmail(email string) (int64, error) {
	args := m.Called(email)
	return args.Get(0).(int64), args.Error(1)
}

// MockUserRepo реализует repository.UserRepository
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepo) GetByID(id uint) (*entity.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(email string) (*entity.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepo) GetByIDs(ids []uint) (map[uint]*entity.User, error) {
	args := m.Called(ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uint]*entity.User), args.Error(1)
}

func (m *MockUserRepo) Update(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepo) UpdateProfile(id uint, fields map[string]interface{}) error {
	args := m.Called(id, fields)
	return args.Error(0)
}

func (m *MockUserRepo) ListByRole(role string) ([]entity.User, error) {
	args := m.Called(role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.User), args.Error(1)
}

func (m *MockUserRepo) Count() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepo) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// ============================================================================
// Вспомогательные данные
// ============================================================================

func intPtr(v int) *int {
	return &v
}

// fiveQuestionQuiz — викторина из 5 вопросов с правильными индексами 0..4
func fiveQuestionQuiz() *entity.Quiz {
	questions := make([]entity.Question, 5)
	for i := range questions {
		questions[i] = entity.Question{
			ID:            uint(i + 1),
			QuizID:        1,
			Text:          "Вопрос",
			Options:       entity.StringArray{"A", "B", "C", "D", "E"},
			CorrectOption: i,
		}
	}
	return &entity.Quiz{
		ID:        1,
		Title:     "Тестовая викторина",
		Code:      "ABC123",
		Questions: questions,
	}
}

func testStudent() *entity.User {
	return &entity.User{
		ID:        42,
		FirstName: "Иван",
		LastName:  "Петров",
		Email:     "ivan@example.com",
		Branch:    "CSE",
	}
}

// ============================================================================
// Тесты для SubmitQuiz
// ============================================================================

func TestResultService_SubmitQuiz_ScoreAndBadges(t *testing.T) {
	// Arrange: 4 из 5 верно, последний вопрос пропущен, 100 секунд
	mockResultRepo := new(MockResultRepo)
	mockQuizRepo := new(MockQuizRepo)

	mockQuizRepo.On("GetWithQuestions", uint(1)).Return(fiveQuestionQuiz(), nil)
	mockResultRepo.On("GetRecentByUser", uint(42), 5).Return([]entity.Result{}, nil)
	mockResultRepo.On("SaveResultWithAttempt", mock.AnythingOfType("*entity.Result"), mock.AnythingOfType("*entity.QuizAttempt")).Return(nil)

	svc := NewResultService(mockResultRepo, mockQuizRepo, nil, nil, nil)

	input := SubmitInput{
		Answers: []SubmittedAnswer{
			{QuestionID: 1, SelectedOption: intPtr(0)},
			{QuestionID: 2, SelectedOption: intPtr(1)},
			{QuestionID: 3, SelectedOption: intPtr(2)},
			{QuestionID: 4, SelectedOption: intPtr(3)},
			{QuestionID: 5, SelectedOption: nil},
		},
		DurationSec: 100,
		StartedAt:   time.Now().Add(-100 * time.Second),
		SubmittedAt: time.Now(),
	}

	// Act
	summary, err := svc.SubmitQuiz(1, testStudent(), input)

	// Assert
	require.NoError(t, err, "Сдача должна быть успешной")
	assert.Equal(t, 4, summary.Score, "4 правильных ответа")
	assert.Equal(t, 5, summary.Total, "В знаменателе полное число вопросов")
	assert.Contains(t, summary.Badges, "powerPlayer", "80% дают powerPlayer")
	assert.Contains(t, summary.Badges, "speedster", "20 сек/вопрос быстрее порога")
	assert.NotContains(t, summary.Badges, "winner")
	mockResultRepo.AssertExpectations(t)
	mockQuizRepo.AssertExpectations(t)
}

func TestResultService_SubmitQuiz_UnknownQuestionDropped(t *testing.T) {
	// Arrange: ответ на несуществующий вопрос молча отбрасывается
	mockResultRepo := new(MockResultRepo)
	mockQuizRepo := new(MockQuizRepo)

	mockQuizRepo.On("GetWithQuestions", uint(1)).Return(fiveQuestionQuiz(), nil)
	mockResultRepo.On("GetRecentByUser", uint(42), 5).Return([]entity.Result{}, nil)

	var savedResult *entity.Result
	mockResultRepo.On("SaveResultWithAttempt", mock.AnythingOfType("*entity.Result"), mock.AnythingOfType("*entity.QuizAttempt")).
		Run(func(args mock.Arguments) {
			savedResult = args.Get(0).(*entity.Result)
		}).Return(nil)

	svc := NewResultService(mockResultRepo, mockQuizRepo, nil, nil, nil)

	input := SubmitInput{
		Answers: []SubmittedAnswer{
			{QuestionID: 1, SelectedOption: intPtr(0)},
			{QuestionID: 999, SelectedOption: intPtr(0)}, // устаревший клиент
		},
		DurationSec: 50,
		SubmittedAt: time.Now(),
	}

	// Act
	summary, err := svc.SubmitQuiz(1, testStudent(), input)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Score)
	assert.Equal(t, 5, summary.Total, "Знаменатель не зависит от числа присланных ответов")
	require.NotNil(t, savedResult)
	assert.Len(t, savedResult.Answers, 1, "Неизвестный вопрос не попадает в результат")
}

func TestResultService_SubmitQuiz_SnapshotsStudent(t *testing.T) {
	// Лидерборд должен переживать удаление учетной записи:
	// имя, email и филиал снапшотятся на результат
	mockResultRepo := new(MockResultRepo)
	mockQuizRepo := new(MockQuizRepo)

	mockQuizRepo.On("GetWithQuestions", uint(1)).Return(fiveQuestionQuiz(), nil)
	mockResultRepo.On("GetRecentByUser", uint(42), 5).Return([]entity.Result{}, nil)

	var savedResult *entity.Result
	var savedAttempt *entity.QuizAttempt
	mockResultRepo.On("SaveResultWithAttempt", mock.AnythingOfType("*entity.Result"), mock.AnythingOfType("*entity.QuizAttempt")).
		Run(func(args mock.Arguments) {
			savedResult = args.Get(0).(*entity.Result)
			savedAttempt = args.Get(1).(*entity.QuizAttempt)
		}).Return(nil)

	svc := NewResultService(mockResultRepo, mockQuizRepo, nil, nil, nil)

	// Act
	_, err := svc.SubmitQuiz(1, testStudent(), SubmitInput{
		Answers:     []SubmittedAnswer{{QuestionID: 1, SelectedOption: intPtr(0)}},
		DurationSec: 10,
		SubmittedAt: time.Now(),
	})

	// Assert
	require.NoError(t, err)
	require.NotNil(t, savedResult)
	assert.Equal(t, "Иван Петров", savedResult.StudentName)
	assert.Equal(t, "ivan@example.com", savedResult.StudentEmail)
	assert.Equal(t, "CSE", savedResult.Branch)
	assert.Equal(t, "ABC123", savedResult.QuizCode)
	require.NotNil(t, savedAttempt)
	assert.Equal(t, 5, savedAttempt.Total)
}

func TestResultService_SubmitQuiz_QuizNotFound(t *testing.T) {
	mockResultRepo := new(MockResultRepo)
	mockQuizRepo := new(MockQuizRepo)

	mockQuizRepo.On("GetWithQuestions", uint(77)).Return(nil, apperrors.ErrNotFound)

	svc := NewResultService(mockResultRepo, mockQuizRepo, nil, nil, nil)

	// Act
	summary, err := svc.SubmitQuiz(77, testStudent(), SubmitInput{})

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Nil(t, summary)
	mockResultRepo.AssertNotCalled(t, "SaveResultWithAttempt", mock.Anything, mock.Anything)
}

func TestResultService_SubmitQuiz_HistoryFetchedBeforeSave(t *testing.T) {
	// Снимок истории должен исключать текущую попытку: perfectionist
	// не начисляется, если прошлый стопроцентный результат — это мы сами
	// после сохранения. Проверяем порядок вызовов.
	mockResultRepo := new(MockResultRepo)
	mockQuizRepo := new(MockQuizRepo)

	historyFetched := false
	mockQuizRepo.On("GetWithQuestions", uint(1)).Return(fiveQuestionQuiz(), nil)
	mockResultRepo.On("GetRecentByUser", uint(42), 5).
		Run(func(mock.Arguments) { historyFetched = true }).
		Return([]entity.Result{
			{Score: 5, Answers: make(entity.EvaluatedAnswerList, 5)},
		}, nil)
	mockResultRepo.On("SaveResultWithAttempt", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			assert.True(t, historyFetched, "История должна читаться до сохранения")
		}).Return(nil)

	svc := NewResultService(mockResultRepo, mockQuizRepo, nil, nil, nil)

	// Act: все пять ответов верны
	summary, err := svc.SubmitQuiz(1, testStudent(), SubmitInput{
		Answers: []SubmittedAnswer{
			{QuestionID: 1, SelectedOption: intPtr(0)},
			{QuestionID: 2, SelectedOption: intPtr(1)},
			{QuestionID: 3, SelectedOption: intPtr(2)},
			{QuestionID: 4, SelectedOption: intPtr(3)},
			{QuestionID: 5, SelectedOption: intPtr(4)},
		},
		DurationSec: 60,
		SubmittedAt: time.Now(),
	})

	// Assert
	require.NoError(t, err)
	assert.Contains(t, summary.Badges, "winner")
	assert.Contains(t, summary.Badges, "perfectionist", "Прошлый результат тоже 100%")
	assert.Contains(t, summary.Badges, "streakMaster")
}

// ============================================================================
// Тесты для SubmitCustomQuiz
// ============================================================================

func TestResultService_SubmitCustomQuiz_RecomputesScore(t *testing.T) {
	// Arrange: клиентскому isCorrect не доверяем, счет пересчитывается
	mockResultRepo := new(MockResultRepo)
	mockQuizRepo := new(MockQuizRepo)

	mockQuizRepo.On("GetByCode", "ZZZ999").Return(nil, apperrors.ErrNotFound)
	mockResultRepo.On("GetRecentByUser", uint(42), 5).Return([]entity.Result{}, nil)
	mockResultRepo.On("SaveResultWithAttempt", mock.Anything, mock.Anything).Return(nil)

	svc := NewResultService(mockResultRepo, mockQuizRepo, nil, nil, nil)

	right := "Париж"
	wrong := "Лондон"
	input := CustomSubmitInput{
		QuizCode: "ZZZ999",
		Course:   "География",
		Answers: []CustomAnswer{
			{QuestionText: "Столица Франции?", SelectedAnswer: &right, CorrectAnswer: "Париж", IsCorrect: false},
			{QuestionText: "Столица Англии?", SelectedAnswer: &wrong, CorrectAnswer: "Лондон", IsCorrect: true},
			{QuestionText: "Без ответа?", SelectedAnswer: nil, CorrectAnswer: "X", IsCorrect: true},
		},
		DurationSec: 30,
		SubmittedAt: time.Now(),
	}

	// Act
	result, err := svc.SubmitCustomQuiz(testStudent(), input)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 2, result.Score, "Счет пересчитан по совпадению текста ответа")
	assert.Nil(t, result.QuizID, "Сохраненной викторины с таким кодом нет")
	assert.Equal(t, "География", result.Course)
	assert.True(t, result.Answers[0].IsCorrect)
	assert.False(t, result.Answers[2].IsCorrect, "Пропуск — никогда не верный ответ")
}

func TestResultService_SubmitCustomQuiz_EmptyAnswers(t *testing.T) {
	svc := NewResultService(new(MockResultRepo), new(MockQuizRepo), nil, nil, nil)

	_, err := svc.SubmitCustomQuiz(testStudent(), CustomSubmitInput{QuizCode: "ABC123"})

	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestResultService_SubmitCustomQuiz_LinksStoredQuiz(t *testing.T) {
	// Если код указывает на сохраненную викторину, результат привязывается к ней
	mockResultRepo := new(MockResultRepo)
	mockQuizRepo := new(MockQuizRepo)

	mockQuizRepo.On("GetByCode", "ABC123").Return(&entity.Quiz{ID: 7, Code: "ABC123"}, nil)
	mockResultRepo.On("GetRecentByUser", uint(42), 5).Return([]entity.Result{}, nil)
	mockResultRepo.On("SaveResultWithAttempt", mock.Anything, mock.Anything).Return(nil)

	svc := NewResultService(mockResultRepo, mockQuizRepo, nil, nil, nil)

	answer := "A"
	result, err := svc.SubmitCustomQuiz(testStudent(), CustomSubmitInput{
		QuizCode:    "ABC123",
		Answers:     []CustomAnswer{{QuestionText: "Q", SelectedAnswer: &answer, CorrectAnswer: "A"}},
		SubmittedAt: time.Now(),
	})

	require.NoError(t, err)
	require.NotNil(t, result.QuizID)
	assert.Equal(t, uint(7), *result.QuizID)
}

// ============================================================================
// Тесты для лидерборда
// ============================================================================

func TestResultService_GetLeaderboard_SortAndRank(t *testing.T) {
	// Arrange: сортировка по счету по убыванию, при равенстве — кто раньше сдал
	mockResultRepo := new(MockResultRepo)
	mockQuizRepo := new(MockQuizRepo)
	mockUserRepo := new(MockUserRepo)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	results := []entity.Result{
		{UserID: 1, StudentName: "Анна", StudentEmail: "a@x.com", Branch: "IT", Score: 3, DurationSec: 90, SubmittedAt: base.Add(2 * time.Minute), Answers: make(entity.EvaluatedAnswerList, 5)},
		{UserID: 2, StudentName: "Борис", StudentEmail: "b@x.com", Branch: "CSE", Score: 5, DurationSec: 120, SubmittedAt: base.Add(3 * time.Minute), Answers: make(entity.EvaluatedAnswerList, 5)},
		{UserID: 3, StudentName: "Вера", StudentEmail: "v@x.com", Branch: "ECE", Score: 5, DurationSec: 100, SubmittedAt: base.Add(1 * time.Minute), Answers: make(entity.EvaluatedAnswerList, 5)},
	}

	mockQuizRepo.On("GetByID", uint(1)).Return(&entity.Quiz{ID: 1, Title: "Тестовая викторина"}, nil)
	mockResultRepo.On("GetByQuizID", uint(1)).Return(results, nil)

	svc := NewResultService(mockResultRepo, mockQuizRepo, mockUserRepo, nil, nil)

	// Act
	board, err := svc.GetLeaderboard(1)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Тестовая викторина", board.QuizTitle)
	assert.Equal(t, 3, board.TotalSubmissions)
	require.Len(t, board.Leaderboard, 3)
	assert.Equal(t, "Вера", board.Leaderboard[0].StudentName, "При равном счете выше сдавший раньше")
	assert.Equal(t, 1, board.Leaderboard[0].Rank)
	assert.Equal(t, "Борис", board.Leaderboard[1].StudentName)
	assert.Equal(t, 2, board.Leaderboard[1].Rank)
	assert.Equal(t, "Анна", board.Leaderboard[2].StudentName)
	assert.Equal(t, 3, board.Leaderboard[2].Rank)
}

func TestResultService_GetLeaderboard_FallbackToUserRecord(t *testing.T) {
	// Старые результаты без снапшота подтягивают данные из учетной записи
	mockResultRepo := new(MockResultRepo)
	mockQuizRepo := new(MockQuizRepo)
	mockUserRepo := new(MockUserRepo)

	results := []entity.Result{
		{UserID: 42, Score: 4, SubmittedAt: time.Now(), Answers: make(entity.EvaluatedAnswerList, 5)},
	}

	mockQuizRepo.On("GetByID", uint(1)).Return(&entity.Quiz{ID: 1, Title: "Викторина"}, nil)
	mockResultRepo.On("GetByQuizID", uint(1)).Return(results, nil)
	mockUserRepo.On("GetByIDs", []uint{42}).Return(map[uint]*entity.User{
		42: testStudent(),
	}, nil)

	svc := NewResultService(mockResultRepo, mockQuizRepo, mockUserRepo, nil, nil)

	// Act
	board, err := svc.GetLeaderboard(1)

	// Assert
	require.NoError(t, err)
	require.Len(t, board.Leaderboard, 1)
	assert.Equal(t, "Иван Петров", board.Leaderboard[0].StudentName)
	assert.Equal(t, "ivan@example.com", board.Leaderboard[0].Email)
	mockUserRepo.AssertExpectations(t)
}

func TestResultService_GetLeaderboardByCode_NotFound(t *testing.T) {
	mockResultRepo := new(MockResultRepo)
	mockQuizRepo := new(MockQuizRepo)

	mockResultRepo.On("GetByQuizCode", "NOPE42").Return([]entity.Result{}, nil)

	svc := NewResultService(mockResultRepo, mockQuizRepo, nil, nil, nil)

	_, err := svc.GetLeaderboardByCode("NOPE42")

	assert.ErrorIs(t, err, apperrors.ErrNotFound, "Код без результатов — NotFound")
}

// ============================================================================
// Тесты для аналитики
// ============================================================================

func TestResultService_GetAnalytics(t *testing.T) {
	mockResultRepo := new(MockResultRepo)
	mockQuizRepo := new(MockQuizRepo)

	mockQuizRepo.On("GetByID", uint(1)).Return(&entity.Quiz{ID: 1}, nil)
	mockResultRepo.On("GetQuizAggregates", uint(1)).Return(&repository.QuizAggregates{
		TotalSubmissions: 10,
		AverageScore:     3.5,
		AverageDuration:  95.2,
	}, nil)

	svc := NewResultService(mockResultRepo, mockQuizRepo, nil, nil, nil)

	analytics, err := svc.GetAnalytics(1)

	require.NoError(t, err)
	assert.Equal(t, int64(10), analytics.TotalSubmissions)
	assert.InDelta(t, 3.5, analytics.AverageScore, 0.001)
	assert.InDelta(t, 95.2, analytics.AverageDuration, 0.001)
}

func TestResultService_GetAnalytics_QuizNotFound(t *testing.T) {
	mockResultRepo := new(MockResultRepo)
	mockQuizRepo := new(MockQuizRepo)

	mockQuizRepo.On("GetByID", uint(5)).Return(nil, apperrors.ErrNotFound)

	svc := NewResultService(mockResultRepo, mockQuizRepo, nil, nil, nil)

	_, err := svc.GetAnalytics(5)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	mockResultRepo.AssertNotCalled(t, "GetQuizAggregates", mock.Anything)
}
