package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAwardBadges_PowerPlayerAndSpeedster(t *testing.T) {
	// Arrange: 4 из 5 за 100 секунд — 80% и 20 сек/вопрос
	ctx := Context{Score: 4, TotalQuestions: 5, DurationSec: 100}

	// Act
	badges := AwardBadges(ctx)

	// Assert
	assert.Contains(t, badges, BadgePowerPlayer, "80% должны давать powerPlayer")
	assert.Contains(t, badges, BadgeSpeedster, "20 сек/вопрос — меньше 30")
	assert.NotContains(t, badges, BadgeWinner, "winner только при 100%")
	assert.NotContains(t, badges, BadgeLucky)
}

func TestAwardBadges_WinnerWithoutSpeedster(t *testing.T) {
	// Arrange: 5 из 5, но 40 сек/вопрос
	ctx := Context{Score: 5, TotalQuestions: 5, DurationSec: 200}

	badges := AwardBadges(ctx)

	assert.Contains(t, badges, BadgeWinner)
	assert.Contains(t, badges, BadgePowerPlayer, "100% покрывает и порог 80%")
	assert.NotContains(t, badges, BadgeSpeedster, "40 сек/вопрос — медленнее порога")
}

func TestAwardBadges_Lucky(t *testing.T) {
	ctx := Context{Score: 2, TotalQuestions: 5, DurationSec: 300}

	badges := AwardBadges(ctx)

	assert.Contains(t, badges, BadgeLucky, "40% попадает в диапазон [30, 50)")
	assert.NotContains(t, badges, BadgePowerPlayer)
}

func TestAwardBadges_LuckyBoundaries(t *testing.T) {
	// 30% — нижняя граница включена
	low := Context{Score: 3, TotalQuestions: 10, DurationSec: 600}
	assert.Contains(t, AwardBadges(low), BadgeLucky)

	// 50% — верхняя граница исключена
	high := Context{Score: 5, TotalQuestions: 10, DurationSec: 600}
	assert.NotContains(t, AwardBadges(high), BadgeLucky)
}

func TestAwardBadges_AllUnanswered(t *testing.T) {
	// Arrange: все ответы пропущены
	ctx := Context{Score: 0, TotalQuestions: 5, DurationSec: 10}

	badges := AwardBadges(ctx)

	assert.NotContains(t, badges, BadgeWinner)
	assert.NotContains(t, badges, BadgePowerPlayer)
	assert.NotContains(t, badges, BadgeLucky)
	assert.Contains(t, badges, BadgeSpeedster, "speedster не зависит от процента")
}

func TestAwardBadges_StreakMaster(t *testing.T) {
	// Arrange: текущая попытка 80%+, в пяти последних есть результат с 80%+
	ctx := Context{
		Score: 4, TotalQuestions: 5, DurationSec: 400,
		Recent: []HistoryEntry{
			{Score: 1, AnswerCount: 5},
			{Score: 4, AnswerCount: 5},
		},
	}

	badges := AwardBadges(ctx)

	assert.Contains(t, badges, BadgeStreakMaster)
}

func TestAwardBadges_StreakMasterRequiresHighCurrent(t *testing.T) {
	// История хорошая, но текущий результат ниже 80%
	ctx := Context{
		Score: 3, TotalQuestions: 5, DurationSec: 400,
		Recent: []HistoryEntry{{Score: 5, AnswerCount: 5}},
	}

	assert.NotContains(t, AwardBadges(ctx), BadgeStreakMaster)
}

func TestAwardBadges_Comeback(t *testing.T) {
	// Arrange: два последних результата ниже 50%, текущий 80%+
	ctx := Context{
		Score: 5, TotalQuestions: 5, DurationSec: 400,
		Recent: []HistoryEntry{
			{Score: 1, AnswerCount: 5},
			{Score: 2, AnswerCount: 5},
			{Score: 5, AnswerCount: 5},
		},
	}

	badges := AwardBadges(ctx)

	assert.Contains(t, badges, BadgeComeback, "два провала подряд перед успехом")
}

func TestAwardBadges_ComebackRequiresTwoPriorResults(t *testing.T) {
	ctx := Context{
		Score: 5, TotalQuestions: 5, DurationSec: 400,
		Recent: []HistoryEntry{{Score: 1, AnswerCount: 5}},
	}

	assert.NotContains(t, AwardBadges(ctx), BadgeComeback, "нужно минимум два прошлых результата")
}

func TestAwardBadges_ComebackBrokenByRecentSuccess(t *testing.T) {
	// Самый свежий результат хороший — возвращения не было
	ctx := Context{
		Score: 5, TotalQuestions: 5, DurationSec: 400,
		Recent: []HistoryEntry{
			{Score: 4, AnswerCount: 5},
			{Score: 1, AnswerCount: 5},
		},
	}

	assert.NotContains(t, AwardBadges(ctx), BadgeComeback)
}

func TestAwardBadges_Perfectionist(t *testing.T) {
	ctx := Context{
		Score: 5, TotalQuestions: 5, DurationSec: 100,
		Recent: []HistoryEntry{{Score: 3, AnswerCount: 3}},
	}

	badges := AwardBadges(ctx)

	assert.Contains(t, badges, BadgePerfectionist, "два стопроцентных результата подряд")
	assert.Contains(t, badges, BadgeWinner, "winner и perfectionist совместимы")
}

func TestAwardBadges_PerfectionistNeverOnFirstSubmission(t *testing.T) {
	// Первая попытка пользователя: истории нет
	ctx := Context{Score: 5, TotalQuestions: 5, DurationSec: 100}

	badges := AwardBadges(ctx)

	assert.Contains(t, badges, BadgeWinner)
	assert.NotContains(t, badges, BadgePerfectionist, "без прошлых результатов бейдж не выдается")
}

func TestAwardBadges_HistoryPercentageUsesAnswerCount(t *testing.T) {
	// Исторический процент считается от числа оцененных ответов,
	// а не от полного размера той викторины
	ctx := Context{
		Score: 5, TotalQuestions: 5, DurationSec: 100,
		Recent: []HistoryEntry{{Score: 4, AnswerCount: 4}},
	}

	assert.Contains(t, AwardBadges(ctx), BadgePerfectionist, "4 из 4 оцененных — это 100%")
}

func TestAwardBadges_EmptyQuiz(t *testing.T) {
	ctx := Context{Score: 0, TotalQuestions: 0, DurationSec: 0}

	badges := AwardBadges(ctx)

	assert.Empty(t, badges, "викторина без вопросов не дает бейджей")
}

func TestAwardBadges_Order(t *testing.T) {
	// Порядок тегов соответствует порядку правил
	ctx := Context{
		Score: 5, TotalQuestions: 5, DurationSec: 50,
		Recent: []HistoryEntry{{Score: 5, AnswerCount: 5}},
	}

	badges := AwardBadges(ctx)

	assert.Equal(t, []string{
		BadgeWinner, BadgePowerPlayer, BadgeSpeedster,
		BadgeStreakMaster, BadgePerfectionist,
	}, badges)
}
