package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// StringArray - пользовательский тип для работы с JSONB
type StringArray []string

// Scan реализует интерфейс sql.Scanner для StringArray
// Используется GORM для чтения JSONB данных из базы
func (o *StringArray) Scan(value interface{}) error {
	// Обработка NULL значений из базы данных
	if value == nil {
		*o = StringArray{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal JSONB value: expected []byte")
	}

	if len(bytes) == 0 {
		*o = StringArray{}
		return nil
	}

	return json.Unmarshal(bytes, o)
}

// Value реализует интерфейс driver.Valuer для StringArray
func (o StringArray) Value() (driver.Value, error) {
	if len(o) == 0 {
		return []byte("[]"), nil // Пустой JSON массив вместо null
	}
	return json.Marshal(o)
}

// QuestionType определяет способ проверки ответа
type QuestionType string

const (
	QuestionTypeText           QuestionType = "text"
	QuestionTypeMultipleChoice QuestionType = "multiple-choice"
	QuestionTypeCode           QuestionType = "code"
)

// Valid проверяет, что тип вопроса известен
func (t QuestionType) Valid() bool {
	switch t {
	case QuestionTypeText, QuestionTypeMultipleChoice, QuestionTypeCode:
		return true
	}
	return false
}

// Question представляет вопрос каталога. После загрузки не изменяется.
type Question struct {
	ID             string       `gorm:"primaryKey;size:64" json:"id"`
	Type           QuestionType `gorm:"size:32;not null" json:"type"`
	Difficulty     Difficulty   `gorm:"size:32;not null;index" json:"difficulty"`
	Topic          string       `gorm:"size:100" json:"topic"`
	Question       string       `gorm:"type:text;not null" json:"question"`
	Choices        StringArray  `gorm:"type:jsonb" json:"choices,omitempty"`
	CorrectAnswer  string       `gorm:"type:text;not null" json:"-"` // Скрыто от клиента
	Hint           string       `gorm:"type:text" json:"hint"`
	Points         int          `gorm:"not null;default:10" json:"points"` // Только для отображения
	CodeTemplate   string       `gorm:"type:text" json:"code_template,omitempty"`
	ExpectedOutput string       `gorm:"type:text" json:"expected_output,omitempty"`
	CreatedAt      time.Time    `json:"-"`
	UpdatedAt      time.Time    `json:"-"`
}

// TableName определяет имя таблицы для GORM
func (Question) TableName() string {
	return "questions"
}

// HasChoices возвращает true, если вопрос с выбором варианта и варианты заданы
func (q *Question) HasChoices() bool {
	return q.Type == QuestionTypeMultipleChoice && len(q.Choices) > 0
}
