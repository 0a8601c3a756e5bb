package telegram

import (
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/kuis-bot/internal/domain/entities"
)

func mark(selected bool, label string) string {
	if selected {
		return markSelected + label
	}
	return label
}

// buildInputKeyboard builds the source, choice, count and start rows of the input screen.
func buildInputKeyboard(s *entities.QuizSession, topics []string, presets []int) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(
			mark(s.SourceMode == entities.SourceTopic, btnSourceTopic),
			buildSourceCallback(sourceTopic),
		),
		tgbotapi.NewInlineKeyboardButtonData(
			mark(s.SourceMode == entities.SourceUploadedFile, btnSourceFile),
			buildSourceCallback(sourceFile),
		),
	))

	if s.SourceMode == entities.SourceTopic {
		for i, topic := range topics {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(
					mark(topic == s.Topic, truncate(topic, maxButtonRunes)),
					buildTopicCallback(i),
				),
			))
		}
	} else {
		for i, name := range s.UploadedFiles {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(
					mark(name == s.UploadedFile, "📄 "+truncate(name, maxButtonRunes)),
					buildFileCallback(i),
				),
			))
		}
	}

	if len(presets) > 0 {
		countRow := make([]tgbotapi.InlineKeyboardButton, 0, len(presets))
		for _, n := range presets {
			selected := s.CustomCount == "" && s.QuestionCount == n
			countRow = append(countRow, tgbotapi.NewInlineKeyboardButtonData(
				mark(selected, strconv.Itoa(n)),
				buildCountCallback(n),
			))
		}
		rows = append(rows, countRow)
	}

	startLabel := btnStart
	if s.Loading {
		startLabel = btnStarting
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(startLabel, buildStartCallback()),
	))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildQuestionKeyboard builds one button per option plus the advance button.
func buildQuestionKeyboard(s *entities.QuizSession) tgbotapi.InlineKeyboardMarkup {
	q := s.CurrentQuestion()
	if q == nil {
		return buildRestartKeyboard()
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for i, opt := range q.Options {
		selected := s.SelectedAnswer != nil && *s.SelectedAnswer == opt
		label := optionLabel(i) + ". " + truncate(opt, maxButtonRunes)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				mark(selected, label),
				buildAnswerCallback(s.CurrentIndex, i),
			),
		))
	}

	nextLabel := btnNext
	if s.IsLastQuestion() {
		nextLabel = btnFinish
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(nextLabel, buildNextCallback()),
	))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func buildRestartKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(btnRestart, buildRestartCallback()),
		),
	)
}
