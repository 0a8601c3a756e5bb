package entities

import (
	"strconv"
	"strings"
)

const (
	DefaultQuestionCount = 5  // preset selected on a fresh session
	MaxQuestionCount     = 50 // upper bound accepted by the generator
)

// Screen is the current view of a quiz session.
type Screen int

const (
	ScreenInput Screen = iota
	ScreenPlaying
	ScreenFinished
)

func (s Screen) String() string {
	switch s {
	case ScreenInput:
		return "input"
	case ScreenPlaying:
		return "playing"
	case ScreenFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// SourceMode selects what the questions are generated from.
type SourceMode int

const (
	SourceTopic SourceMode = iota
	SourceUploadedFile
)

func (m SourceMode) String() string {
	if m == SourceUploadedFile {
		return "file"
	}
	return "topic"
}

// QuizSession holds the whole state of one quiz flow.
// It tracks the source selection, fetched questions, progress and recorded answers.
type QuizSession struct {
	Screen         Screen         // current view
	SourceMode     SourceMode     // manual topic or uploaded file
	Topic          string         // manual topic
	UploadedFile   string         // selected uploaded file name
	QuestionCount  int            // preset count
	CustomCount    string         // free-text count, wins over the preset when non-empty
	Questions      []QuizQuestion // empty until fetched
	CurrentIndex   int            // index of the question being answered
	SelectedAnswer *string        // tentative choice for the current question
	Answers        []string       // one per answered question
	Error          string         // user-facing message
	Loading        bool           // a remote call is in flight
	UploadedFiles  []string       // cached uploaded file names
	FilesLoaded    bool           // whether UploadedFiles was fetched this session
}

// NewQuizSession creates a session on the input screen with default selections.
func NewQuizSession() *QuizSession {
	return &QuizSession{
		Screen:        ScreenInput,
		SourceMode:    SourceTopic,
		QuestionCount: DefaultQuestionCount,
	}
}

// SourceValue returns the selected source for the active mode.
func (s *QuizSession) SourceValue() string {
	if s.SourceMode == SourceUploadedFile {
		return strings.TrimSpace(s.UploadedFile)
	}
	return strings.TrimSpace(s.Topic)
}

// EffectiveCount resolves the requested question count and validates it.
func (s *QuizSession) EffectiveCount() (int, error) {
	n := s.QuestionCount
	if custom := strings.TrimSpace(s.CustomCount); custom != "" {
		parsed, err := strconv.Atoi(custom)
		if err != nil {
			return 0, NewValidationError(CodeInvalidCount)
		}
		n = parsed
	}

	if n <= 0 {
		return 0, NewValidationError(CodeInvalidCount)
	}
	if n > MaxQuestionCount {
		return 0, NewValidationError(CodeCountTooLarge)
	}

	return n, nil
}

// CurrentQuestion returns the question being answered, or nil outside of play.
func (s *QuizSession) CurrentQuestion() *QuizQuestion {
	if s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Questions) {
		return nil
	}
	return &s.Questions[s.CurrentIndex]
}

// IsLastQuestion reports whether the current question is the final one.
func (s *QuizSession) IsLastQuestion() bool {
	return s.CurrentIndex >= len(s.Questions)-1
}

// Progress returns the share of questions reached, current one included.
func (s *QuizSession) Progress() int {
	return percent(s.CurrentIndex+1, len(s.Questions))
}

// Score computes the summary over the recorded answers.
func (s *QuizSession) Score() ScoreSummary {
	return ComputeScore(s.Questions, s.Answers)
}

// Review builds the per-question review in question order.
func (s *QuizSession) Review() []ReviewItem {
	items := make([]ReviewItem, 0, len(s.Questions))
	for i, q := range s.Questions {
		var given string
		if i < len(s.Answers) {
			given = s.Answers[i]
		}
		items = append(items, ReviewItem{
			Number:        i + 1,
			Question:      q.Question,
			GivenAnswer:   given,
			CorrectAnswer: q.CorrectAnswer,
			IsCorrect:     q.IsCorrect(given),
		})
	}
	return items
}

// Clone returns a deep copy safe to read without holding the owner's lock.
func (s *QuizSession) Clone() *QuizSession {
	c := *s

	if s.Questions != nil {
		c.Questions = make([]QuizQuestion, len(s.Questions))
		for i, q := range s.Questions {
			q.Options = append([]string(nil), q.Options...)
			c.Questions[i] = q
		}
	}
	if s.SelectedAnswer != nil {
		v := *s.SelectedAnswer
		c.SelectedAnswer = &v
	}
	c.Answers = append([]string(nil), s.Answers...)
	c.UploadedFiles = append([]string(nil), s.UploadedFiles...)

	return &c
}
