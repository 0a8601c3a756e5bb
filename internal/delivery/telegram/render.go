package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/kuis-bot/internal/domain/entities"
)

// screenView is the rendered text and keyboard of the session's screen message.
type screenView struct {
	text     string
	keyboard tgbotapi.InlineKeyboardMarkup
}

// renderScreen renders the screen the session is currently on.
func renderScreen(s *entities.QuizSession, topics []string, presets []int) screenView {
	switch s.Screen {
	case entities.ScreenPlaying:
		return screenView{text: renderQuestion(s), keyboard: buildQuestionKeyboard(s)}
	case entities.ScreenFinished:
		return screenView{text: renderResult(s.Score()), keyboard: buildRestartKeyboard()}
	default:
		return screenView{text: renderInput(s), keyboard: buildInputKeyboard(s, topics, presets)}
	}
}

func renderInput(s *entities.QuizSession) string {
	var sb strings.Builder

	sb.WriteString("📝 " + bold(msgQuizTitle) + "\n\n")

	if s.SourceMode == entities.SourceUploadedFile {
		sb.WriteString("Sumber: <b>File</b>\n")
		sb.WriteString("File: " + orDash(s.UploadedFile) + "\n")
	} else {
		sb.WriteString("Sumber: <b>Materi</b>\n")
		sb.WriteString("Materi: " + orDash(strings.TrimSpace(s.Topic)) + "\n")
	}

	if s.CustomCount != "" {
		sb.WriteString(fmt.Sprintf("Jumlah pertanyaan: <b>%s</b> (kustom)\n", esc(s.CustomCount)))
	} else {
		sb.WriteString(fmt.Sprintf("Jumlah pertanyaan: <b>%d</b>\n", s.QuestionCount))
	}

	if s.SourceMode == entities.SourceUploadedFile && s.FilesLoaded && len(s.UploadedFiles) == 0 {
		sb.WriteString("\n" + esc(msgNoFiles) + "\n")
	}

	switch {
	case s.Loading && s.SourceMode == entities.SourceUploadedFile && !s.FilesLoaded:
		sb.WriteString("\n⏳ " + esc(msgLoadingFiles) + "\n")
	case s.Loading:
		sb.WriteString("\n⏳ " + esc(msgCreatingQuiz) + "\n")
	}

	if s.Error != "" {
		sb.WriteString("\n⚠️ " + esc(s.Error) + "\n")
	}

	sb.WriteString("\n" + esc(msgCustomCountHint))

	return sb.String()
}

func renderQuestion(s *entities.QuizSession) string {
	q := s.CurrentQuestion()
	if q == nil {
		return esc(msgInternalError)
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Pertanyaan %d dari %d\n", s.CurrentIndex+1, len(s.Questions)))
	sb.WriteString(fmt.Sprintf("%s %d%%\n\n", buildProgressBar(s.CurrentIndex+1, len(s.Questions), progressBarLen), s.Progress()))
	sb.WriteString(bold(q.Question) + "\n\n")

	for i, opt := range q.Options {
		sb.WriteString(fmt.Sprintf("%s. %s\n", optionLabel(i), esc(opt)))
	}

	if s.Error != "" {
		sb.WriteString("\n⚠️ " + esc(s.Error))
	}

	return strings.TrimRight(sb.String(), "\n")
}

func renderResult(score entities.ScoreSummary) string {
	var sb strings.Builder

	sb.WriteString("🏁 " + bold(msgResultTitle) + "\n\n")
	sb.WriteString(fmt.Sprintf("Skor: <b>%d/%d</b>\n", score.Correct, score.Total))
	sb.WriteString(fmt.Sprintf("Persentase: <b>%d%%</b>\n\n", score.Percentage))
	sb.WriteString(verdict(score.Percentage))

	return sb.String()
}

// renderReview renders the answer review split into messages that fit Telegram's limit.
func renderReview(items []entities.ReviewItem) []string {
	if len(items) == 0 {
		return nil
	}

	var (
		chunks []string
		sb     strings.Builder
		size   int
	)

	sb.WriteString(bold(msgReviewTitle))
	size = len([]rune(msgReviewTitle))

	for _, item := range items {
		entry := renderReviewItem(item)
		entrySize := len([]rune(entry))

		if size+entrySize > maxMessageRunes && sb.Len() > 0 {
			chunks = append(chunks, sb.String())
			sb.Reset()
			size = 0
		}

		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(entry)
		size += entrySize
	}

	if sb.Len() > 0 {
		chunks = append(chunks, sb.String())
	}

	return chunks
}

func renderReviewItem(item entities.ReviewItem) string {
	icon := "❌"
	if item.IsCorrect {
		icon = "✅"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s <b>%d. %s</b>\n", icon, item.Number, esc(item.Question)))
	sb.WriteString("Jawaban Anda: " + orDash(item.GivenAnswer))
	if !item.IsCorrect {
		sb.WriteString("\nJawaban Benar: " + esc(item.CorrectAnswer))
	}

	return sb.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return esc(s)
}
