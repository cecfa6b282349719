package service

import (
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/yourusername/quizzify-api/internal/domain/entity"
	"github.com/yourusername/quizzify-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizzify-api/internal/pkg/errors"
	"github.com/yourusername/quizzify-api/internal/service/scoring"
)

// recentHistoryLimit — сколько последних результатов пользователя
// участвует в расчете бейджей по истории
const recentHistoryLimit = 5

// leaderboardCacheTTL — время жизни кешированного лидерборда
const leaderboardCacheTTL = 30 * time.Second

// LeaderboardNotifier уведомляет подписчиков об обновлении лидерборда
type LeaderboardNotifier interface {
	NotifyLeaderboardUpdated(quizKey string)
}

// SubmittedAnswer — один ответ из тела запроса на сдачу викторины.
// SelectedOption == nil означает пропущенный вопрос.
type SubmittedAnswer struct {
	QuestionID     uint `json:"questionId"`
	SelectedOption *int `json:"selectedOption"`
}

// SubmitInput — параметры сдачи сохраненной викторины
type SubmitInput struct {
	Answers     []SubmittedAnswer
	DurationSec int
	StartedAt   time.Time
	SubmittedAt time.Time
}

// CustomAnswer — один уже разрешенный клиентом ответ кастомной викторины:
// вместо ссылок на сохраненные вопросы приходят тексты
type CustomAnswer struct {
	QuestionText   string  `json:"questionText"`
	SelectedAnswer *string `json:"selectedAnswer"`
	CorrectAnswer  string  `json:"correctAnswer"`
	IsCorrect      bool    `json:"isCorrect"`
}

// CustomSubmitInput — параметры сдачи кастомной викторины
type CustomSubmitInput struct {
	QuizCode    string
	Course      string
	Answers     []CustomAnswer
	DurationSec int
	StartedAt   time.Time
	SubmittedAt time.Time
}

// SubmitSummary — краткий итог сдачи. Полная детализация ответов
// доступна отдельно через историю результатов.
type SubmitSummary struct {
	Score  int      `json:"score"`
	Total  int      `json:"total"`
	Badges []string `json:"badges"`
}

// LeaderboardEntry — одна строка лидерборда
type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	StudentName string `json:"studentName"`
	Email       string `json:"email"`
	Branch      string `json:"branch"`
	Score       int    `json:"score"`
	Total       int    `json:"total"`
	Duration    int    `json:"duration"`
}

// Leaderboard — лидерборд викторины
type Leaderboard struct {
	QuizTitle        string             `json:"quizTitle"`
	TotalSubmissions int                `json:"totalSubmissions"`
	Leaderboard      []LeaderboardEntry `json:"leaderboard"`
}

// QuizAnalytics — агрегированная аналитика викторины
type QuizAnalytics struct {
	TotalSubmissions int64   `json:"totalSubmissions"`
	AverageScore     float64 `json:"averageScore"`
	AverageDuration  float64 `json:"averageDuration"`
}

// ResultService обрабатывает сдачу викторин, расчет бейджей и чтение
// результатов (лидерборды, аналитика, история)
type ResultService struct {
	resultRepo repository.ResultRepository
	quizRepo   repository.QuizRepository
	userRepo   repository.UserRepository
	cacheRepo  repository.CacheRepository
	notifier   LeaderboardNotifier
}

// NewResultService создает новый сервис результатов. notifier может быть nil.
func NewResultService(
	resultRepo repository.ResultRepository,
	quizRepo repository.QuizRepository,
	userRepo repository.UserRepository,
	cacheRepo repository.CacheRepository,
	notifier LeaderboardNotifier,
) *ResultService {
	return &ResultService{
		resultRepo: resultRepo,
		quizRepo:   quizRepo,
		userRepo:   userRepo,
		cacheRepo:  cacheRepo,
		notifier:   notifier,
	}
}

// SubmitQuiz оценивает ответы пользователя по сохраненной викторине,
// начисляет бейджи и атомарно сохраняет результат с записью попытки.
//
// Ответы с неизвестным questionId молча отбрасываются: клиент мог загрузить
// викторину до удаления вопроса. Пропущенный вопрос (selectedOption == nil)
// оценивается как неверный ответ.
func (s *ResultService) SubmitQuiz(quizID uint, user *entity.User, input SubmitInput) (*SubmitSummary, error) {
	quiz, err := s.quizRepo.GetWithQuestions(quizID)
	if err != nil {
		return nil, err
	}

	questionsByID := make(map[uint]*entity.Question, len(quiz.Questions))
	for i := range quiz.Questions {
		questionsByID[quiz.Questions[i].ID] = &quiz.Questions[i]
	}

	evaluated := make(entity.EvaluatedAnswerList, 0, len(input.Answers))
	score := 0
	for _, answer := range input.Answers {
		question, ok := questionsByID[answer.QuestionID]
		if !ok {
			continue
		}

		isCorrect := question.IsCorrect(answer.SelectedOption)
		if isCorrect {
			score++
		}

		var selectedAnswer *string
		if text := question.OptionText(answer.SelectedOption); text != "" {
			selectedAnswer = &text
		}

		evaluated = append(evaluated, entity.EvaluatedAnswer{
			QuestionID:     question.ID,
			QuestionText:   question.Text,
			SelectedOption: answer.SelectedOption,
			SelectedAnswer: selectedAnswer,
			CorrectAnswer:  question.CorrectText(),
			IsCorrect:      isCorrect,
		})
	}

	// В знаменателе процента — полное число вопросов викторины:
	// пропущенный вопрос тоже считается против сдающего
	total := len(quiz.Questions)

	badges, err := s.computeBadges(user.ID, score, total, input.DurationSec)
	if err != nil {
		return nil, err
	}

	result := &entity.Result{
		UserID:       user.ID,
		QuizID:       &quiz.ID,
		QuizCode:     quiz.Code,
		Course:       quiz.Title,
		StudentName:  user.FullName(),
		StudentEmail: user.Email,
		Branch:       user.Branch,
		Answers:      evaluated,
		Score:        score,
		DurationSec:  input.DurationSec,
		Badges:       badges,
		StartedAt:    input.StartedAt,
		SubmittedAt:  input.SubmittedAt,
	}
	attempt := &entity.QuizAttempt{
		UserID:      user.ID,
		QuizID:      &quiz.ID,
		Score:       score,
		Total:       total,
		SubmittedAt: input.SubmittedAt,
	}

	if err := s.resultRepo.SaveResultWithAttempt(result, attempt); err != nil {
		log.Printf("[ResultService] Ошибка сохранения результата: user=%d quiz=%d: %v", user.ID, quizID, err)
		return nil, err
	}

	s.afterSubmit(quizKeyByID(quiz.ID), quizKeyByCode(quiz.Code))

	return &SubmitSummary{Score: score, Total: total, Badges: badges}, nil
}

// SubmitCustomQuiz обрабатывает сдачу кастомной викторины: определения
// вопросов приходят уже разрешенными в самом теле запроса, сохраненной
// записи Quiz может не существовать. Алгоритм оценки и бейджей тот же,
// меняется только источник данных.
func (s *ResultService) SubmitCustomQuiz(user *entity.User, input CustomSubmitInput) (*entity.Result, error) {
	if len(input.Answers) == 0 {
		return nil, fmt.Errorf("%w: список ответов пуст", apperrors.ErrValidation)
	}

	evaluated := make(entity.EvaluatedAnswerList, 0, len(input.Answers))
	score := 0
	for _, answer := range input.Answers {
		// Корректность пересчитывается на сервере, клиентскому флагу не доверяем
		isCorrect := answer.SelectedAnswer != nil && *answer.SelectedAnswer == answer.CorrectAnswer
		if isCorrect {
			score++
		}
		evaluated = append(evaluated, entity.EvaluatedAnswer{
			QuestionText:   answer.QuestionText,
			SelectedAnswer: answer.SelectedAnswer,
			CorrectAnswer:  answer.CorrectAnswer,
			IsCorrect:      isCorrect,
		})
	}

	total := len(input.Answers)

	badges, err := s.computeBadges(user.ID, score, total, input.DurationSec)
	if err != nil {
		return nil, err
	}

	// Если код указывает на сохраненную викторину, результат привязывается
	// к ней для лидерборда по id; иначе останется только поиск по коду
	var quizID *uint
	if input.QuizCode != "" {
		if quiz, err := s.quizRepo.GetByCode(input.QuizCode); err == nil {
			quizID = &quiz.ID
		}
	}

	result := &entity.Result{
		UserID:       user.ID,
		QuizID:       quizID,
		QuizCode:     input.QuizCode,
		Course:       input.Course,
		StudentName:  user.FullName(),
		StudentEmail: user.Email,
		Branch:       user.Branch,
		Answers:      evaluated,
		Score:        score,
		DurationSec:  input.DurationSec,
		Badges:       badges,
		StartedAt:    input.StartedAt,
		SubmittedAt:  input.SubmittedAt,
	}
	attempt := &entity.QuizAttempt{
		UserID:      user.ID,
		QuizID:      quizID,
		Score:       score,
		Total:       total,
		SubmittedAt: input.SubmittedAt,
	}

	if err := s.resultRepo.SaveResultWithAttempt(result, attempt); err != nil {
		log.Printf("[ResultService] Ошибка сохранения кастомного результата: user=%d code=%s: %v", user.ID, input.QuizCode, err)
		return nil, err
	}

	if input.QuizCode != "" {
		keys := []string{quizKeyByCode(input.QuizCode)}
		if quizID != nil {
			keys = append(keys, quizKeyByID(*quizID))
		}
		s.afterSubmit(keys...)
	}

	return result, nil
}

// computeBadges собирает снимок истории пользователя ДО сохранения текущего
// результата и вычисляет бейджи. Снимок без текущей попытки гарантирует
// одинаковый набор бейджей независимо от момента записи.
func (s *ResultService) computeBadges(userID uint, score, total, durationSec int) ([]string, error) {
	recent, err := s.resultRepo.GetRecentByUser(userID, recentHistoryLimit)
	if err != nil {
		return nil, err
	}

	history := make([]scoring.HistoryEntry, 0, len(recent))
	for i := range recent {
		history = append(history, scoring.HistoryEntry{
			Score:       recent[i].Score,
			AnswerCount: recent[i].AnswerCount(),
		})
	}

	return scoring.AwardBadges(scoring.Context{
		Score:          score,
		TotalQuestions: total,
		DurationSec:    durationSec,
		Recent:         history,
	}), nil
}

// afterSubmit инвалидирует кеш лидерборда и уведомляет подписчиков.
// Ошибки кеша не срывают уже зафиксированную сдачу.
func (s *ResultService) afterSubmit(quizKeys ...string) {
	for _, key := range quizKeys {
		if s.cacheRepo != nil {
			if err := s.cacheRepo.Delete(key); err != nil {
				log.Printf("[ResultService] Ошибка инвалидации кеша %s: %v", key, err)
			}
		}
		if s.notifier != nil {
			s.notifier.NotifyLeaderboardUpdated(key)
		}
	}
}

// GetLeaderboard строит лидерборд по id сохраненной викторины
func (s *ResultService) GetLeaderboard(quizID uint) (*Leaderboard, error) {
	cacheKey := quizKeyByID(quizID)
	if cached := s.leaderboardFromCache(cacheKey); cached != nil {
		return cached, nil
	}

	quiz, err := s.quizRepo.GetByID(quizID)
	if err != nil {
		return nil, err
	}

	results, err := s.resultRepo.GetByQuizID(quizID)
	if err != nil {
		return nil, err
	}

	board, err := s.buildLeaderboard(quiz.Title, results)
	if err != nil {
		return nil, err
	}
	s.leaderboardToCache(cacheKey, board)
	return board, nil
}

// GetLeaderboardByCode строит лидерборд по коду викторины. Работает и для
// кастомных викторин, у которых нет сохраненной записи Quiz.
func (s *ResultService) GetLeaderboardByCode(code string) (*Leaderboard, error) {
	cacheKey := quizKeyByCode(code)
	if cached := s.leaderboardFromCache(cacheKey); cached != nil {
		return cached, nil
	}

	results, err := s.resultRepo.GetByQuizCode(code)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, apperrors.ErrNotFound
	}

	// Заголовок берем из записи Quiz, если она есть, иначе из снапшота
	title := results[0].Course
	if quiz, err := s.quizRepo.GetByCode(code); err == nil {
		title = quiz.Title
	}

	board, err := s.buildLeaderboard(title, results)
	if err != nil {
		return nil, err
	}
	s.leaderboardToCache(cacheKey, board)
	return board, nil
}

// buildLeaderboard сортирует результаты и проецирует строки лидерборда.
// Имя/email/филиал читаются из снапшота на результате; для старых записей
// без снапшота — из актуальной учетной записи пользователя.
func (s *ResultService) buildLeaderboard(title string, results []entity.Result) (*Leaderboard, error) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		// При равном счете выше тот, кто сдал раньше
		return results[i].SubmittedAt.Before(results[j].SubmittedAt)
	})

	users, err := s.usersForResults(results)
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(results))
	for i := range results {
		r := &results[i]
		name, email, branch := r.StudentName, r.StudentEmail, r.Branch
		if name == "" || email == "" {
			if u, ok := users[r.UserID]; ok {
				if name == "" {
					name = u.FullName()
				}
				if email == "" {
					email = u.Email
				}
				if branch == "" {
					branch = u.Branch
				}
			}
		}
		entries = append(entries, LeaderboardEntry{
			Rank:        i + 1,
			StudentName: name,
			Email:       email,
			Branch:      branch,
			Score:       r.Score,
			Total:       r.AnswerCount(),
			Duration:    r.DurationSec,
		})
	}

	return &Leaderboard{
		QuizTitle:        title,
		TotalSubmissions: len(results),
		Leaderboard:      entries,
	}, nil
}

// usersForResults подгружает учетные записи для результатов без снапшота
func (s *ResultService) usersForResults(results []entity.Result) (map[uint]*entity.User, error) {
	ids := make([]uint, 0)
	seen := make(map[uint]bool)
	for i := range results {
		r := &results[i]
		if (r.StudentName == "" || r.StudentEmail == "") && !seen[r.UserID] {
			seen[r.UserID] = true
			ids = append(ids, r.UserID)
		}
	}
	if len(ids) == 0 {
		return map[uint]*entity.User{}, nil
	}
	return s.userRepo.GetByIDs(ids)
}

func (s *ResultService) leaderboardFromCache(key string) *Leaderboard {
	if s.cacheRepo == nil {
		return nil
	}
	var board Leaderboard
	if err := s.cacheRepo.GetJSON(key, &board); err != nil {
		return nil
	}
	return &board
}

func (s *ResultService) leaderboardToCache(key string, board *Leaderboard) {
	if s.cacheRepo == nil {
		return
	}
	if err := s.cacheRepo.SetJSON(key, board, leaderboardCacheTTL); err != nil {
		log.Printf("[ResultService] Ошибка записи лидерборда в кеш %s: %v", key, err)
	}
}

// GetAnalytics возвращает агрегированную аналитику по викторине
func (s *ResultService) GetAnalytics(quizID uint) (*QuizAnalytics, error) {
	if _, err := s.quizRepo.GetByID(quizID); err != nil {
		return nil, err
	}
	agg, err := s.resultRepo.GetQuizAggregates(quizID)
	if err != nil {
		return nil, err
	}
	return &QuizAnalytics{
		TotalSubmissions: agg.TotalSubmissions,
		AverageScore:     agg.AverageScore,
		AverageDuration:  agg.AverageDuration,
	}, nil
}

// GetUserHistory возвращает все результаты пользователя, новые первыми
func (s *ResultService) GetUserHistory(userID uint) ([]entity.Result, error) {
	return s.resultRepo.GetUserResults(userID)
}

// GetUserQuizResult возвращает последний результат пользователя по викторине
func (s *ResultService) GetUserQuizResult(userID uint, quizID uint) (*entity.Result, error) {
	return s.resultRepo.GetLatestUserResult(userID, quizID)
}

func quizKeyByID(quizID uint) string {
	return fmt.Sprintf("leaderboard:quiz:%d", quizID)
}

func quizKeyByCode(code string) string {
	return fmt.Sprintf("leaderboard:code:%s", code)
}
