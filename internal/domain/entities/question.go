package entities

// QuizQuestion is one generated multiple-choice item.
// CorrectAnswer is expected to be one of Options; the generator is trusted on that.
type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
}

// IsCorrect reports whether answer matches the designated correct option exactly.
func (q QuizQuestion) IsCorrect(answer string) bool {
	return answer == q.CorrectAnswer
}

// ReviewItem is a single row of the post-quiz review.
type ReviewItem struct {
	Number        int    // 1-based question number
	Question      string // question text
	GivenAnswer   string // answer recorded for the question
	CorrectAnswer string // designated correct option
	IsCorrect     bool   // whether GivenAnswer matched CorrectAnswer
}
