package dto

import (
	"time"

	"github.com/yourusername/quizzify-api/internal/domain/entity"
)

// QuestionResponse представляет вопрос в формате для ответа клиенту.
// Индекс правильного ответа включается только для создателя и администратора.
type QuestionResponse struct {
	ID            uint     `json:"id"`
	QuizID        uint     `json:"quiz_id"`
	Text          string   `json:"question_text"`
	Options       []string `json:"options"`
	CorrectOption *int     `json:"correct_option,omitempty"`
	Image         string   `json:"image,omitempty"`
}

// QuizResponse представляет викторину в формате для ответа клиенту
type QuizResponse struct {
	ID            uint               `json:"id"`
	Title         string             `json:"title"`
	Description   string             `json:"description,omitempty"`
	TimeLimitMin  int                `json:"time_limit"`
	Branches      []string           `json:"branches"`
	Image         string             `json:"image"`
	Code          string             `json:"code"`
	CreatedBy     uint               `json:"created_by"`
	IsPublished   bool               `json:"is_published"`
	StartDate     *time.Time         `json:"start_date,omitempty"`
	EndDate       *time.Time         `json:"end_date,omitempty"`
	QuestionCount int                `json:"question_count"`
	Questions     []QuestionResponse `json:"questions,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
}

// NewQuestionResponse создает DTO для вопроса.
// revealAnswer управляет видимостью правильного ответа.
func NewQuestionResponse(q *entity.Question, revealAnswer bool) QuestionResponse {
	resp := QuestionResponse{
		ID:      q.ID,
		QuizID:  q.QuizID,
		Text:    q.Text,
		Options: q.Options,
		Image:   q.Image,
	}
	if revealAnswer {
		correct := q.CorrectOption
		resp.CorrectOption = &correct
	}
	return resp
}

// NewQuizResponse создает DTO для викторины
func NewQuizResponse(quiz *entity.Quiz, includeQuestions, revealAnswers bool) *QuizResponse {
	if quiz == nil {
		return nil
	}

	branches := quiz.Branches
	if branches == nil {
		branches = entity.StringArray{}
	}

	resp := &QuizResponse{
		ID:            quiz.ID,
		Title:         quiz.Title,
		Description:   quiz.Description,
		TimeLimitMin:  quiz.TimeLimitMin,
		Branches:      branches,
		Image:         quiz.Image,
		Code:          quiz.Code,
		CreatedBy:     quiz.CreatedBy,
		IsPublished:   quiz.IsPublished,
		StartDate:     quiz.StartDate,
		EndDate:       quiz.EndDate,
		QuestionCount: len(quiz.Questions),
		CreatedAt:     quiz.CreatedAt,
	}

	if includeQuestions {
		resp.Questions = make([]QuestionResponse, len(quiz.Questions))
		for i := range quiz.Questions {
			resp.Questions[i] = NewQuestionResponse(&quiz.Questions[i], revealAnswers)
		}
	}
	return resp
}

// NewQuizListResponse создает DTO для списка викторин без вопросов
func NewQuizListResponse(quizzes []entity.Quiz) []*QuizResponse {
	out := make([]*QuizResponse, len(quizzes))
	for i := range quizzes {
		out[i] = NewQuizResponse(&quizzes[i], false, false)
	}
	return out
}
