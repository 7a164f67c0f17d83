package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestion_HasChoices(t *testing.T) {
	question := &Question{
		ID:            "b-mc-1",
		Type:          QuestionTypeMultipleChoice,
		Choices:       StringArray{"int", "str", "float", "bool"},
		CorrectAnswer: "str",
	}
	assert.True(t, question.HasChoices())

	empty := &Question{Type: QuestionTypeMultipleChoice}
	assert.False(t, empty.HasChoices())
}

func TestQuestion_HasChoices_NotMultipleChoice(t *testing.T) {
	question := &Question{Type: QuestionTypeText, Choices: StringArray{"a"}}
	assert.False(t, question.HasChoices(), "Варианты учитываются только для multiple-choice")
}

func TestQuestion_JSONHidesCorrectAnswer(t *testing.T) {
	// Arrange
	question := Question{ID: "q1", Type: QuestionTypeText, CorrectAnswer: "variable"}

	// Act
	data, err := json.Marshal(question)

	// Assert
	require.NoError(t, err)
	assert.NotContains(t, string(data), "variable", "Правильный ответ не должен сериализоваться")
}

func TestQuestionType_Valid(t *testing.T) {
	testCases := []struct {
		name     string
		qType    QuestionType
		expected bool
	}{
		{"text", QuestionTypeText, true},
		{"multiple-choice", QuestionTypeMultipleChoice, true},
		{"code", QuestionTypeCode, true},
		{"неизвестный", QuestionType("essay"), false},
		{"пустой", QuestionType(""), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.qType.Valid())
		})
	}
}

func TestDifficulty_Valid(t *testing.T) {
	for _, d := range AllDifficulties() {
		assert.True(t, d.Valid(), "Уровень %s должен быть валидным", d)
	}
	assert.False(t, Difficulty("expert").Valid())
	assert.Len(t, DifficultyLevels(), len(AllDifficulties()))
}

func TestQuestion_TableName(t *testing.T) {
	question := Question{}
	assert.Equal(t, "questions", question.TableName())
}

// Тесты для StringArray (JSONB сериализация)

func TestStringArray_Scan_ValidJSON(t *testing.T) {
	var arr StringArray

	err := arr.Scan([]byte(`["print()", "echo", "puts"]`))

	require.NoError(t, err)
	assert.Equal(t, StringArray{"print()", "echo", "puts"}, arr)
}

func TestStringArray_Scan_NullValue(t *testing.T) {
	var arr StringArray

	err := arr.Scan(nil)

	require.NoError(t, err)
	assert.Len(t, arr, 0)
}

func TestStringArray_Scan_InvalidType(t *testing.T) {
	var arr StringArray

	err := arr.Scan("not a byte slice")

	assert.Error(t, err, "Scan должен возвращать ошибку для неподдерживаемого типа")
}

func TestStringArray_Value_Empty(t *testing.T) {
	var arr StringArray

	val, err := arr.Value()

	require.NoError(t, err)
	bytes, ok := val.([]byte)
	require.True(t, ok)
	assert.Equal(t, "[]", string(bytes), "nil должен сериализоваться в []")
}
