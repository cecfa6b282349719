// Package scoring содержит правила начисления бейджей за прохождение викторины.
//
// Правила оформлены как явный упорядоченный список независимых предикатов над
// read-only контекстом: каждое правило видит одни и те же входные данные и не
// может влиять на срабатывание остальных. Бейджи не взаимоисключающие.
package scoring

// Бейджи за прохождение викторины. Закрытый набор тегов.
const (
	BadgeWinner        = "winner"
	BadgePowerPlayer   = "powerPlayer"
	BadgeSpeedster     = "speedster"
	BadgeLucky         = "lucky"
	BadgeStreakMaster  = "streakMaster"
	BadgeComeback      = "comeback"
	BadgePerfectionist = "perfectionist"
)

// HistoryEntry — сводка одного прошлого результата пользователя.
// AnswerCount — число оцененных ответов в том результате (не обязательно
// полное число вопросов той викторины: пропущенные и неизвестные вопросы
// в этот счетчик не входят).
type HistoryEntry struct {
	Score       int
	AnswerCount int
}

// Percentage возвращает процент правильных ответов исторического результата
func (h HistoryEntry) Percentage() float64 {
	if h.AnswerCount == 0 {
		return 0
	}
	return float64(h.Score) / float64(h.AnswerCount) * 100
}

// Context — снимок данных для вычисления бейджей. История Recent содержит
// до пяти последних результатов пользователя, новые первыми, и снята ДО
// сохранения текущего результата: текущая попытка в нее не входит.
type Context struct {
	Score          int
	TotalQuestions int
	DurationSec    int
	Recent         []HistoryEntry
}

// Percentage возвращает процент правильных ответов текущей попытки
func (c Context) Percentage() float64 {
	if c.TotalQuestions == 0 {
		return 0
	}
	return float64(c.Score) / float64(c.TotalQuestions) * 100
}

// secondsPerQuestion возвращает среднее время на вопрос
func (c Context) secondsPerQuestion() float64 {
	if c.TotalQuestions == 0 {
		return 0
	}
	return float64(c.DurationSec) / float64(c.TotalQuestions)
}

// Rule — одно правило начисления: предикат и присуждаемый тег
type Rule struct {
	Badge string
	Award func(c Context) bool
}

// Rules — полный упорядоченный список правил. Порядок определяет порядок
// тегов в списке бейджей результата.
var Rules = []Rule{
	{BadgeWinner, func(c Context) bool {
		return c.Percentage() == 100
	}},
	{BadgePowerPlayer, func(c Context) bool {
		return c.Percentage() >= 80
	}},
	{BadgeSpeedster, func(c Context) bool {
		return c.TotalQuestions > 0 && c.secondsPerQuestion() < 30
	}},
	{BadgeLucky, func(c Context) bool {
		p := c.Percentage()
		return p >= 30 && p < 50
	}},
	{BadgeStreakMaster, func(c Context) bool {
		if c.Percentage() < 80 {
			return false
		}
		for _, h := range c.Recent {
			if h.Percentage() >= 80 {
				return true
			}
		}
		return false
	}},
	{BadgeComeback, func(c Context) bool {
		if c.Percentage() < 80 || len(c.Recent) < 2 {
			return false
		}
		return c.Recent[0].Percentage() < 50 && c.Recent[1].Percentage() < 50
	}},
	{BadgePerfectionist, func(c Context) bool {
		if c.Percentage() != 100 || len(c.Recent) == 0 {
			return false
		}
		return c.Recent[0].Percentage() == 100
	}},
}

// AwardBadges вычисляет все причитающиеся бейджи для контекста
func AwardBadges(c Context) []string {
	badges := make([]string, 0, len(Rules))
	for _, rule := range Rules {
		if rule.Award(c) {
			badges = append(badges, rule.Badge)
		}
	}
	return badges
}
