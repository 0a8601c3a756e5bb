package telegram

import (
	"context"

	"github.com/aliskhannn/kuis-bot/internal/domain/entities"
)

// quizHandler shows the current screen as a new message,
// followed by the answer review once the quiz is finished.
func (h *Handler) quizHandler() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		s := h.flows.GetOrCreate(chatID).Snapshot()
		if err := h.sendScreen(chatID, s); err != nil {
			return err
		}

		if s.Screen == entities.ScreenFinished {
			h.sendReview(chatID, s)
		}
		return nil
	}
}

// topicHandler sets a manual topic typed by the user.
func (h *Handler) topicHandler(topic string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if topic == "" {
			h.send(newPlainMessage(chatID, msgUseTopic))
			return nil
		}

		flow := h.flows.GetOrCreate(chatID)

		// Switching to the topic source never calls the generator.
		if err := flow.SelectSource(ctx, entities.SourceTopic); err != nil {
			return err
		}
		if err := flow.SetTopic(topic); err != nil {
			return err
		}

		return h.sendScreen(chatID, flow.Snapshot())
	}
}

// countHandler records a custom question count.
func (h *Handler) countHandler(arg string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if arg == "" {
			h.send(newPlainMessage(chatID, msgUseCount))
			return nil
		}

		flow := h.flows.GetOrCreate(chatID)

		if err := flow.SetCustomCount(arg); err != nil {
			return err
		}

		return h.sendScreen(chatID, flow.Snapshot())
	}
}

func (h *Handler) restartHandler() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		flow := h.flows.GetOrCreate(chatID)
		flow.Restart()
		return h.sendScreen(chatID, flow.Snapshot())
	}
}

// sendScreen sends the rendered screen and remembers it as the chat's screen message.
func (h *Handler) sendScreen(chatID int64, s *entities.QuizSession) error {
	view := renderScreen(s, h.topics, h.presetCounts)

	msg := newMessage(chatID, view.text)
	msg.ReplyMarkup = view.keyboard

	sent, err := h.send(msg)
	if err != nil {
		return err
	}

	h.flows.StoreMessageID(chatID, sent.MessageID)
	return nil
}

// showScreen edits msgID to display the session's screen.
func (h *Handler) showScreen(chatID int64, msgID int, s *entities.QuizSession) {
	view := renderScreen(s, h.topics, h.presetCounts)
	if err := h.edit(chatID, msgID, view.text, view.keyboard); err != nil {
		return
	}
	h.flows.StoreMessageID(chatID, msgID)
}

// sendReview sends the per-question review after the result screen.
func (h *Handler) sendReview(chatID int64, s *entities.QuizSession) {
	for _, chunk := range renderReview(s.Review()) {
		h.send(newMessage(chatID, chunk))
	}
}
