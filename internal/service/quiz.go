package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/aliskhannn/kuis-bot/internal/domain/entities"
)

// QuestionSource is the remote generator as seen by the flow.
type QuestionSource interface {
	FetchGeneratedQuestions(ctx context.Context, topic string, count int, uploadedFile string) ([]entities.QuizQuestion, error)
	FetchUploadedFileNames(ctx context.Context) ([]string, error)
}

var (
	// ErrInvalidTransition is returned for intents the current screen does not accept.
	ErrInvalidTransition = errors.New("operation not valid for current screen")
	// ErrBusy is returned while a remote call for the session is in flight.
	ErrBusy = errors.New("request already in flight")
	// ErrStaleResult is returned when a restart happened while a remote call was in flight.
	ErrStaleResult = errors.New("session restarted before result arrived")
	// ErrNoQuestions is returned when the generator answered with an empty quiz.
	ErrNoQuestions = errors.New("generator returned no questions")
)

// User-facing messages stored in QuizSession.Error.
const (
	MsgMissingTopic  = "Silakan pilih materi terlebih dahulu"
	MsgMissingFile   = "Silakan pilih file terlebih dahulu"
	MsgInvalidCount  = "Jumlah pertanyaan tidak valid"
	MsgCountTooLarge = "Maksimum 50 pertanyaan"
	MsgFetchFailed   = "Gagal memuat pertanyaan. Pastikan backend sudah berjalan."
	MsgFilesFailed   = "Gagal memuat daftar file. Silakan coba lagi."
	MsgNoSelection   = "Silakan pilih jawaban terlebih dahulu"
)

// QuizFlow drives a single quiz session through input, playing and finished screens.
// The lock is never held across a remote call; a generation counter bumped on restart
// lets late results be discarded.
type QuizFlow struct {
	mu         sync.Mutex
	source     QuestionSource
	logger     *zap.Logger
	session    *entities.QuizSession
	generation uint64
}

// NewQuizFlow creates a flow on the input screen.
func NewQuizFlow(source QuestionSource, logger *zap.Logger) *QuizFlow {
	return &QuizFlow{
		source:  source,
		logger:  logger,
		session: entities.NewQuizSession(),
	}
}

// Snapshot returns a copy of the current session.
func (f *QuizFlow) Snapshot() *entities.QuizSession {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.session.Clone()
}

// Score computes the score summary of the current session.
func (f *QuizFlow) Score() entities.ScoreSummary {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.session.Score()
}

// SelectSource switches between manual topic and uploaded file.
// The first switch to uploaded files in a session fetches the file list.
func (f *QuizFlow) SelectSource(ctx context.Context, mode entities.SourceMode) error {
	f.mu.Lock()
	s := f.session
	if s.Screen != entities.ScreenInput {
		f.mu.Unlock()
		return ErrInvalidTransition
	}

	needFiles := mode == entities.SourceUploadedFile && !s.FilesLoaded
	if needFiles && s.Loading {
		f.mu.Unlock()
		return ErrBusy
	}

	s.SourceMode = mode
	s.Error = ""
	if !needFiles {
		f.mu.Unlock()
		return nil
	}

	s.Loading = true
	gen := f.generation
	f.mu.Unlock()

	files, err := f.source.FetchUploadedFileNames(ctx)

	f.mu.Lock()
	defer f.mu.Unlock()

	if gen != f.generation {
		return ErrStaleResult
	}

	s.Loading = false
	if err != nil {
		f.logger.Warn("failed to fetch uploaded files", zap.Error(err))
		s.Error = MsgFilesFailed
		return fmt.Errorf("fetch uploaded files: %w", err)
	}

	s.UploadedFiles = files
	s.FilesLoaded = true
	return nil
}

// SetTopic records the manual topic.
func (f *QuizFlow) SetTopic(topic string) error {
	return f.onInput(func(s *entities.QuizSession) {
		s.Topic = topic
	})
}

// SelectUploadedFile records the uploaded file to generate questions from
// and switches the session to the uploaded-file source.
func (f *QuizFlow) SelectUploadedFile(name string) error {
	return f.onInput(func(s *entities.QuizSession) {
		s.SourceMode = entities.SourceUploadedFile
		s.UploadedFile = name
	})
}

// SetQuestionCount selects a preset count and drops any custom count.
func (f *QuizFlow) SetQuestionCount(n int) error {
	return f.onInput(func(s *entities.QuizSession) {
		s.QuestionCount = n
		s.CustomCount = ""
	})
}

// SetCustomCount records the free-text count override.
func (f *QuizFlow) SetCustomCount(text string) error {
	return f.onInput(func(s *entities.QuizSession) {
		s.CustomCount = text
	})
}

// StartQuiz validates the selection and fetches the questions.
// On success the session moves to the playing screen.
func (f *QuizFlow) StartQuiz(ctx context.Context) error {
	f.mu.Lock()
	s := f.session
	if s.Screen != entities.ScreenInput {
		f.mu.Unlock()
		return ErrInvalidTransition
	}
	if s.Loading {
		f.mu.Unlock()
		return ErrBusy
	}

	if s.SourceValue() == "" {
		s.Error = MsgMissingTopic
		if s.SourceMode == entities.SourceUploadedFile {
			s.Error = MsgMissingFile
		}
		f.mu.Unlock()
		return entities.NewValidationError(entities.CodeMissingSource)
	}

	count, err := s.EffectiveCount()
	if err != nil {
		s.Error = validationMessage(err)
		f.mu.Unlock()
		return err
	}

	var topic, file string
	if s.SourceMode == entities.SourceUploadedFile {
		file = s.SourceValue()
	} else {
		topic = s.SourceValue()
	}

	s.Loading = true
	s.Error = ""
	gen := f.generation
	f.mu.Unlock()

	questions, err := f.source.FetchGeneratedQuestions(ctx, topic, count, file)
	if err == nil && len(questions) == 0 {
		err = ErrNoQuestions
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if gen != f.generation {
		f.logger.Debug("discarding stale quiz result", zap.Error(err))
		return ErrStaleResult
	}

	s.Loading = false
	if err != nil {
		f.logger.Warn("failed to fetch questions",
			zap.String("topic", topic),
			zap.String("uploaded_file", file),
			zap.Int("count", count),
			zap.Error(err),
		)
		s.Error = MsgFetchFailed
		return fmt.Errorf("fetch questions: %w", err)
	}

	s.Questions = questions
	s.CurrentIndex = 0
	s.Answers = nil
	s.SelectedAnswer = nil
	s.Screen = entities.ScreenPlaying

	return nil
}

// SelectAnswer records the tentative answer for the current question.
func (f *QuizFlow) SelectAnswer(option string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.session.Screen != entities.ScreenPlaying {
		return ErrInvalidTransition
	}

	f.session.SelectedAnswer = &option
	return nil
}

// Advance records the selected answer and moves to the next question
// or to the finished screen after the last one.
func (f *QuizFlow) Advance() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	s := f.session
	if s.Screen != entities.ScreenPlaying {
		return ErrInvalidTransition
	}
	if s.SelectedAnswer == nil {
		s.Error = MsgNoSelection
		return entities.NewValidationError(entities.CodeNoSelection)
	}

	s.Answers = append(s.Answers, *s.SelectedAnswer)
	s.SelectedAnswer = nil
	s.Error = ""

	if s.IsLastQuestion() {
		s.Screen = entities.ScreenFinished
		return nil
	}

	s.CurrentIndex++
	return nil
}

// Restart discards the session and starts over on the input screen.
func (f *QuizFlow) Restart() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.generation++
	f.session = entities.NewQuizSession()
}

func (f *QuizFlow) onInput(fn func(s *entities.QuizSession)) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.session.Screen != entities.ScreenInput {
		return ErrInvalidTransition
	}

	fn(f.session)
	return nil
}

func validationMessage(err error) string {
	var vErr *entities.ValidationError
	if !errors.As(err, &vErr) {
		return MsgInvalidCount
	}

	switch vErr.Code {
	case entities.CodeMissingSource:
		return MsgMissingTopic
	case entities.CodeCountTooLarge:
		return MsgCountTooLarge
	case entities.CodeNoSelection:
		return MsgNoSelection
	default:
		return MsgInvalidCount
	}
}
