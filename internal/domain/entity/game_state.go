package entity

// Phase - фаза игровой сессии. Единственный источник правды для маршрутизации экранов.
type Phase string

const (
	PhaseWelcome    Phase = "welcome"
	PhaseDifficulty Phase = "difficulty"
	PhasePlaying    Phase = "playing"
	PhaseResults    Phase = "results"
)

// AnswerRecord - запись об одном ответе игрока
type AnswerRecord struct {
	QuestionID string `json:"questionId"`
	Correct    bool   `json:"correct"`
	Answer     string `json:"answer"`
}

// GameState - агрегат состояния сессии.
// Меняется только целиком через переходы quizmanager.Session.
type GameState struct {
	PlayerName           string         `json:"playerName"`
	Difficulty           Difficulty     `json:"difficulty"`
	CurrentQuestionIndex int            `json:"currentQuestionIndex"`
	Score                int            `json:"score"`
	Streak               int            `json:"streak"`
	BestStreak           int            `json:"bestStreak"`
	Answers              []AnswerRecord `json:"answers"`
	Phase                Phase          `json:"phase"`
}

// InitialGameState возвращает начальное состояние
func InitialGameState() GameState {
	return GameState{
		Difficulty: DifficultyBeginner,
		Answers:    []AnswerRecord{},
		Phase:      PhaseWelcome,
	}
}

// Clone возвращает копию состояния, не разделяющую слайс ответов
func (s GameState) Clone() GameState {
	out := s
	out.Answers = make([]AnswerRecord, len(s.Answers))
	copy(out.Answers, s.Answers)
	return out
}

// CorrectCount возвращает количество правильных ответов
func (s GameState) CorrectCount() int {
	n := 0
	for _, a := range s.Answers {
		if a.Correct {
			n++
		}
	}
	return n
}
