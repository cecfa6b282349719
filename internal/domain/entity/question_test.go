package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestion_IsCorrect_CorrectAnswer(t *testing.T) {
	// Arrange
	question := &Question{
		ID:            1,
		QuizID:        1,
		Text:          "Какой язык используется в Go?",
		Options:       StringArray{"Python", "Go", "Java", "Rust"},
		CorrectOption: 1, // "Go" — индекс 1
	}
	selected := 1

	// Act & Assert
	assert.True(t, question.IsCorrect(&selected), "IsCorrect должен вернуть true для правильного ответа")
}

func TestQuestion_IsCorrect_IncorrectAnswer(t *testing.T) {
	// Arrange
	question := &Question{
		ID:            1,
		CorrectOption: 2,
	}

	// Act & Assert
	for _, wrong := range []int{0, 1, 3} {
		wrong := wrong
		assert.False(t, question.IsCorrect(&wrong), "IsCorrect должен вернуть false для неправильного ответа")
	}
}

func TestQuestion_IsCorrect_NilMeansUnanswered(t *testing.T) {
	// Arrange
	question := &Question{
		CorrectOption: 0,
	}

	// Act & Assert: nil — это "не отвечено", даже если правильный индекс 0
	assert.False(t, question.IsCorrect(nil), "nil не должен засчитываться как ответ")
}

func TestQuestion_OptionText(t *testing.T) {
	// Arrange
	question := &Question{
		Options: StringArray{"A", "B", "C"},
	}
	valid := 1
	negative := -1
	outOfRange := 3

	// Act & Assert
	assert.Equal(t, "B", question.OptionText(&valid))
	assert.Equal(t, "", question.OptionText(nil), "nil должен давать пустой текст")
	assert.Equal(t, "", question.OptionText(&negative), "Отрицательный индекс должен давать пустой текст")
	assert.Equal(t, "", question.OptionText(&outOfRange), "Индекс вне диапазона должен давать пустой текст")
}

func TestQuestion_CorrectText(t *testing.T) {
	// Arrange
	question := &Question{
		Options:       StringArray{"A", "B", "C"},
		CorrectOption: 2,
	}

	// Act & Assert
	assert.Equal(t, "C", question.CorrectText())

	// Assert: битый индекс не паникует
	question.CorrectOption = 10
	assert.Equal(t, "", question.CorrectText())
}

func TestQuestion_IsValidOption(t *testing.T) {
	// Arrange
	question := &Question{
		Options: StringArray{"A", "B", "C", "D"},
	}

	// Act & Assert: валидные опции
	assert.True(t, question.IsValidOption(0), "Индекс 0 должен быть валидным")
	assert.True(t, question.IsValidOption(3), "Индекс 3 должен быть валидным")

	// Assert: невалидные опции
	assert.False(t, question.IsValidOption(-1), "Отрицательный индекс должен быть невалидным")
	assert.False(t, question.IsValidOption(4), "Индекс вне диапазона должен быть невалидным")
}

func TestStringArray_ScanValue_RoundTrip(t *testing.T) {
	// Arrange
	original := StringArray{"CSE", "IT"}

	// Act
	value, err := original.Value()
	require.NoError(t, err)

	var restored StringArray
	err = restored.Scan(value)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, original, restored, "Scan должен восстанавливать исходный массив")
}

func TestStringArray_Scan_Nil(t *testing.T) {
	// Arrange
	var arr StringArray

	// Act
	err := arr.Scan(nil)

	// Assert: NULL из базы превращается в пустой массив
	require.NoError(t, err)
	assert.Empty(t, arr)
}

func TestStringArray_Value_EmptyIsJSONArray(t *testing.T) {
	// Arrange
	var arr StringArray

	// Act
	value, err := arr.Value()

	// Assert: пустой массив пишется как "[]", а не NULL
	require.NoError(t, err)
	assert.Equal(t, []byte("[]"), value)
}
