package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/yourusername/pylearn-api/internal/domain/entity"
	apperrors "github.com/yourusername/pylearn-api/internal/pkg/errors"
)

// QuestionRepo реализует repository.QuestionRepository в памяти
type QuestionRepo struct {
	mu        sync.RWMutex
	questions map[string]entity.Question
}

// NewQuestionRepo создает репозиторий с заданными вопросами
func NewQuestionRepo(questions []entity.Question) *QuestionRepo {
	r := &QuestionRepo{questions: make(map[string]entity.Question, len(questions))}
	for _, q := range questions {
		r.questions[q.ID] = q
	}
	return r
}

// NewBuiltinQuestionRepo создает репозиторий со встроенным курсом Python
func NewBuiltinQuestionRepo() *QuestionRepo {
	return NewQuestionRepo(BuiltinQuestions())
}

// GetByDifficulty возвращает вопросы уровня, отсортированные по ID
func (r *QuestionRepo) GetByDifficulty(_ context.Context, difficulty entity.Difficulty) ([]entity.Question, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []entity.Question
	for _, q := range r.questions {
		if q.Difficulty == difficulty {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// GetByID возвращает вопрос по ID
func (r *QuestionRepo) GetByID(_ context.Context, id string) (*entity.Question, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q, ok := r.questions[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &q, nil
}

// CreateBatch добавляет вопросы; существующий ID - конфликт, пакет не применяется
func (r *QuestionRepo) CreateBatch(_ context.Context, questions []entity.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, q := range questions {
		if _, exists := r.questions[q.ID]; exists {
			return apperrors.ErrConflict
		}
	}
	for _, q := range questions {
		r.questions[q.ID] = q
	}
	return nil
}

// CountByDifficulty возвращает количество вопросов по уровням
func (r *QuestionRepo) CountByDifficulty(_ context.Context) (map[entity.Difficulty]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[entity.Difficulty]int64)
	for _, q := range r.questions {
		counts[q.Difficulty]++
	}
	return counts, nil
}

// BuiltinQuestions возвращает встроенный каталог вопросов
func BuiltinQuestions() []entity.Question {
	return []entity.Question{
		// --- Beginner ---
		{
			ID: "b01", Type: entity.QuestionTypeText, Difficulty: entity.DifficultyBeginner, Topic: "Variables",
			Question:      "What do you call a named container that stores a value in Python?",
			CorrectAnswer: "variable",
			Hint:          "You create one with the = sign, like x = 5.",
			Points:        10,
		},
		{
			ID: "b02", Type: entity.QuestionTypeMultipleChoice, Difficulty: entity.DifficultyBeginner, Topic: "Data Types",
			Question:      "What is the type of the value \"hello\"?",
			Choices:       entity.StringArray{"int", "str", "float", "bool"},
			CorrectAnswer: "str",
			Hint:          "Text in quotes is a string.",
			Points:        10,
		},
		{
			ID: "b03", Type: entity.QuestionTypeCode, Difficulty: entity.DifficultyBeginner, Topic: "Print",
			Question:       "Write code that prints Hello, World!",
			CorrectAnswer:  "print(\"Hello, World!\")",
			Hint:           "Use the print() function with the text in quotes.",
			Points:         20,
			CodeTemplate:   "# Print a greeting\n",
			ExpectedOutput: "Hello, World!",
		},
		{
			ID: "b04", Type: entity.QuestionTypeMultipleChoice, Difficulty: entity.DifficultyBeginner, Topic: "Data Types",
			Question:      "Which of these values is a float?",
			Choices:       entity.StringArray{"3", "\"3\"", "3.0", "True"},
			CorrectAnswer: "3.0",
			Hint:          "Floats have a decimal point.",
			Points:        10,
		},
		{
			ID: "b05", Type: entity.QuestionTypeText, Difficulty: entity.DifficultyBeginner, Topic: "Input/Output",
			Question:      "Which built-in function reads a line of text typed by the user?",
			CorrectAnswer: "input",
			Hint:          "It is the opposite of print.",
			Points:        10,
		},
		{
			ID: "b06", Type: entity.QuestionTypeCode, Difficulty: entity.DifficultyBeginner, Topic: "Variables",
			Question:       "Create a variable name set to \"Ada\" and print it.",
			CorrectAnswer:  "name = \"Ada\"\nprint(name)",
			Hint:           "Assign with = then pass the variable to print().",
			Points:         20,
			CodeTemplate:   "# Store and print a name\n",
			ExpectedOutput: "Ada",
		},

		// --- Intermediate ---
		{
			ID: "i01", Type: entity.QuestionTypeMultipleChoice, Difficulty: entity.DifficultyIntermediate, Topic: "Conditionals",
			Question:      "Which keyword checks another condition after an if?",
			Choices:       entity.StringArray{"else if", "elif", "elseif", "otherwise"},
			CorrectAnswer: "elif",
			Hint:          "It is a short combination of else and if.",
			Points:        15,
		},
		{
			ID: "i02", Type: entity.QuestionTypeText, Difficulty: entity.DifficultyIntermediate, Topic: "Loops",
			Question:      "Which built-in function produces a sequence of numbers for a for loop?",
			CorrectAnswer: "range",
			Hint:          "range(5) gives 0 to 4.",
			Points:        15,
		},
		{
			ID: "i03", Type: entity.QuestionTypeCode, Difficulty: entity.DifficultyIntermediate, Topic: "Functions",
			Question:     "Write a function add(a, b) that returns the sum of a and b.",
			CorrectAnswer: "def add(a, b):\n    return a + b",
			Hint:         "Start with def and use the return keyword.",
			Points:       30,
			CodeTemplate: "def add(a, b):\n    # your code here\n",
		},
		{
			ID: "i04", Type: entity.QuestionTypeMultipleChoice, Difficulty: entity.DifficultyIntermediate, Topic: "Lists",
			Question:      "Which method adds an item to the end of a list?",
			Choices:       entity.StringArray{"add()", "push()", "append()", "insert()"},
			CorrectAnswer: "append()",
			Hint:          "It appends.",
			Points:        15,
		},
		{
			ID: "i05", Type: entity.QuestionTypeCode, Difficulty: entity.DifficultyIntermediate, Topic: "Loops",
			Question:       "Print the numbers 1 to 5 using a for loop.",
			CorrectAnswer:  "for i in range(1, 6):\n    print(i)",
			Hint:           "range(1, 6) stops before 6.",
			Points:         30,
			CodeTemplate:   "# Loop from 1 to 5\n",
			ExpectedOutput: "1\n2\n3\n4\n5",
		},
		{
			ID: "i06", Type: entity.QuestionTypeText, Difficulty: entity.DifficultyIntermediate, Topic: "Lists",
			Question:      "Which built-in function returns the number of items in a list?",
			CorrectAnswer: "len",
			Hint:          "It is short for length.",
			Points:        15,
		},

		// --- Advanced ---
		{
			ID: "a01", Type: entity.QuestionTypeText, Difficulty: entity.DifficultyAdvanced, Topic: "Recursion",
			Question:      "What do you call the condition that stops a recursive function from calling itself?",
			CorrectAnswer: "base case",
			Hint:          "It is the simplest case that returns directly.",
			Points:        20,
		},
		{
			ID: "a02", Type: entity.QuestionTypeCode, Difficulty: entity.DifficultyAdvanced, Topic: "Recursion",
			Question: "Write a recursive function factorial(n).",
			CorrectAnswer: "def factorial(n):\n" +
				"    if n <= 1:\n" +
				"        return 1\n" +
				"    return n * factorial(n - 1)",
			Hint:         "Return 1 for n <= 1, otherwise n * factorial(n - 1).",
			Points:       40,
			CodeTemplate: "def factorial(n):\n    # your code here\n",
		},
		{
			ID: "a03", Type: entity.QuestionTypeMultipleChoice, Difficulty: entity.DifficultyAdvanced, Topic: "Algorithms",
			Question:      "What is the time complexity of binary search on a sorted list?",
			Choices:       entity.StringArray{"O(n)", "O(log n)", "O(n log n)", "O(1)"},
			CorrectAnswer: "O(log n)",
			Hint:          "Each step halves the search space.",
			Points:        20,
		},
		{
			ID: "a04", Type: entity.QuestionTypeCode, Difficulty: entity.DifficultyAdvanced, Topic: "Nested Loops",
			Question: "Print a 3x3 multiplication table, one row per line, values separated by spaces.",
			CorrectAnswer: "for i in range(1, 4):\n" +
				"    row = []\n" +
				"    for j in range(1, 4):\n" +
				"        row.append(str(i * j))\n" +
				"    print(\" \".join(row))",
			Hint:           "Use an inner loop to build each row.",
			Points:         40,
			ExpectedOutput: "1 2 3\n2 4 6\n3 6 9",
		},
		{
			ID: "a05", Type: entity.QuestionTypeMultipleChoice, Difficulty: entity.DifficultyAdvanced, Topic: "Problem Solving",
			Question:      "Which data structure gives average O(1) membership checks?",
			Choices:       entity.StringArray{"list", "tuple", "set", "str"},
			CorrectAnswer: "set",
			Hint:          "It is backed by a hash table and holds unique items.",
			Points:        20,
		},
		{
			ID: "a06", Type: entity.QuestionTypeCode, Difficulty: entity.DifficultyAdvanced, Topic: "Algorithms",
			Question: "Write is_palindrome(s) that returns True when s reads the same backwards.",
			CorrectAnswer: "def is_palindrome(s):\n" +
				"    return s == s[::-1]",
			Hint:         "Slicing with [::-1] reverses a string.",
			Points:       40,
			CodeTemplate: "def is_palindrome(s):\n    # your code here\n",
		},
	}
}
