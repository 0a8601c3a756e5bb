package entities

import (
	"errors"
	"testing"
)

func threeQuestions() []QuizQuestion {
	return []QuizQuestion{
		{Question: "Q1", Options: []string{"A", "X"}, CorrectAnswer: "A"},
		{Question: "Q2", Options: []string{"B", "X"}, CorrectAnswer: "B"},
		{Question: "Q3", Options: []string{"C", "X"}, CorrectAnswer: "C"},
	}
}

func TestComputeScore(t *testing.T) {
	tests := []struct {
		name    string
		answers []string
		want    ScoreSummary
	}{
		{"two of three", []string{"A", "X", "C"}, ScoreSummary{Correct: 2, Total: 3, Percentage: 67}},
		{"all correct", []string{"A", "B", "C"}, ScoreSummary{Correct: 3, Total: 3, Percentage: 100}},
		{"none correct", []string{"X", "X", "X"}, ScoreSummary{Correct: 0, Total: 3, Percentage: 0}},
		{"one of three", []string{"A", "X", "X"}, ScoreSummary{Correct: 1, Total: 3, Percentage: 33}},
		{"partial answers", []string{"A"}, ScoreSummary{Correct: 1, Total: 3, Percentage: 33}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeScore(threeQuestions(), tc.answers)
			if got != tc.want {
				t.Errorf("expected %+v, got %+v", tc.want, got)
			}
		})
	}
}

func TestComputeScore_NoQuestions(t *testing.T) {
	got := ComputeScore(nil, nil)
	if got != (ScoreSummary{}) {
		t.Errorf("expected zero summary, got %+v", got)
	}
}

func TestComputeScore_RoundsHalfUp(t *testing.T) {
	qs := []QuizQuestion{
		{Question: "Q1", CorrectAnswer: "A"},
		{Question: "Q2", CorrectAnswer: "B"},
		{Question: "Q3", CorrectAnswer: "C"},
		{Question: "Q4", CorrectAnswer: "D"},
		{Question: "Q5", CorrectAnswer: "E"},
		{Question: "Q6", CorrectAnswer: "F"},
		{Question: "Q7", CorrectAnswer: "G"},
		{Question: "Q8", CorrectAnswer: "H"},
	}
	// 1/8 = 12.5%
	got := ComputeScore(qs, []string{"A", "x", "x", "x", "x", "x", "x", "x"})
	if got.Percentage != 13 {
		t.Errorf("expected 13, got %d", got.Percentage)
	}
}

func TestNewQuizSession_Defaults(t *testing.T) {
	s := NewQuizSession()

	if s.Screen != ScreenInput {
		t.Errorf("expected input screen, got %s", s.Screen)
	}
	if s.SourceMode != SourceTopic {
		t.Errorf("expected topic mode, got %s", s.SourceMode)
	}
	if s.QuestionCount != DefaultQuestionCount {
		t.Errorf("expected count %d, got %d", DefaultQuestionCount, s.QuestionCount)
	}
	if s.Topic != "" || s.CustomCount != "" || s.Error != "" || s.Loading {
		t.Errorf("expected empty selections, got %+v", s)
	}
	if len(s.Questions) != 0 || len(s.Answers) != 0 || s.SelectedAnswer != nil {
		t.Errorf("expected no questions or answers, got %+v", s)
	}
}

func TestEffectiveCount(t *testing.T) {
	tests := []struct {
		name     string
		preset   int
		custom   string
		want     int
		wantCode string
	}{
		{"preset", 10, "", 10, ""},
		{"custom wins", 10, "7", 7, ""},
		{"custom trimmed", 10, " 12 ", 12, ""},
		{"upper bound", 5, "50", 50, ""},
		{"zero", 5, "0", 0, CodeInvalidCount},
		{"negative", 5, "-3", 0, CodeInvalidCount},
		{"non-numeric", 5, "abc", 0, CodeInvalidCount},
		{"fractional", 5, "2.5", 0, CodeInvalidCount},
		{"too large", 5, "51", 0, CodeCountTooLarge},
		{"preset zero", 0, "", 0, CodeInvalidCount},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewQuizSession()
			s.QuestionCount = tc.preset
			s.CustomCount = tc.custom

			got, err := s.EffectiveCount()
			if tc.wantCode == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if got != tc.want {
					t.Errorf("expected %d, got %d", tc.want, got)
				}
				return
			}

			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if vErr.Code != tc.wantCode {
				t.Errorf("expected code %q, got %q", tc.wantCode, vErr.Code)
			}
		})
	}
}

func TestSourceValue(t *testing.T) {
	s := NewQuizSession()
	s.Topic = "  Sumber ajaran Islam "
	s.UploadedFile = "notes.pdf"

	if got := s.SourceValue(); got != "Sumber ajaran Islam" {
		t.Errorf("expected trimmed topic, got %q", got)
	}

	s.SourceMode = SourceUploadedFile
	if got := s.SourceValue(); got != "notes.pdf" {
		t.Errorf("expected file name, got %q", got)
	}
}

func TestProgressAndLastQuestion(t *testing.T) {
	s := NewQuizSession()
	s.Questions = threeQuestions()

	if s.Progress() != 33 || s.IsLastQuestion() {
		t.Errorf("unexpected progress at index 0: %d last=%v", s.Progress(), s.IsLastQuestion())
	}

	s.CurrentIndex = 2
	if s.Progress() != 100 || !s.IsLastQuestion() {
		t.Errorf("unexpected progress at index 2: %d last=%v", s.Progress(), s.IsLastQuestion())
	}
	if q := s.CurrentQuestion(); q == nil || q.Question != "Q3" {
		t.Errorf("expected Q3, got %+v", q)
	}
}

func TestReview(t *testing.T) {
	s := NewQuizSession()
	s.Questions = threeQuestions()
	s.Answers = []string{"A", "X", "C"}

	items := s.Review()
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if !items[0].IsCorrect || items[1].IsCorrect || !items[2].IsCorrect {
		t.Errorf("unexpected correctness: %+v", items)
	}
	if items[1].GivenAnswer != "X" || items[1].CorrectAnswer != "B" || items[1].Number != 2 {
		t.Errorf("unexpected second item: %+v", items[1])
	}
}

func TestClone_IsDeep(t *testing.T) {
	s := NewQuizSession()
	s.Questions = threeQuestions()
	s.Answers = []string{"A"}
	sel := "B"
	s.SelectedAnswer = &sel

	c := s.Clone()
	c.Questions[0].Options[0] = "changed"
	c.Answers[0] = "changed"
	*c.SelectedAnswer = "changed"

	if s.Questions[0].Options[0] != "A" || s.Answers[0] != "A" || *s.SelectedAnswer != "B" {
		t.Errorf("clone shares memory with original: %+v", s)
	}
}
