package entity

// Difficulty - уровень сложности. Выбирает и пул вопросов, и строку таблицы очков.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// AllDifficulties возвращает уровни в порядке возрастания сложности
func AllDifficulties() []Difficulty {
	return []Difficulty{DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced}
}

// Valid проверяет, что уровень сложности известен
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// DifficultyLevel описывает уровень для экрана выбора сложности
type DifficultyLevel struct {
	Key         Difficulty `json:"key"`
	Label       string     `json:"label"`
	Description string     `json:"description"`
	Topics      []string   `json:"topics"`
}

// DifficultyLevels возвращает описания всех уровней
func DifficultyLevels() []DifficultyLevel {
	return []DifficultyLevel{
		{
			Key:         DifficultyBeginner,
			Label:       "Beginner",
			Description: "Start from scratch",
			Topics:      []string{"Variables", "Data Types", "Print", "Input/Output"},
		},
		{
			Key:         DifficultyIntermediate,
			Label:       "Intermediate",
			Description: "Level up your skills",
			Topics:      []string{"Conditionals", "Loops", "Lists", "Functions"},
		},
		{
			Key:         DifficultyAdvanced,
			Label:       "Advanced",
			Description: "Challenge yourself",
			Topics:      []string{"Recursion", "Algorithms", "Nested Loops", "Problem Solving"},
		},
	}
}
