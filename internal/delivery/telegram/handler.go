package telegram

import (
	"context"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type Handler struct {
	bot          BotAPI
	logger       *zap.Logger
	flows        FlowStorage
	topics       []string
	presetCounts []int

	// wg tracks remote calls started from callbacks.
	wg sync.WaitGroup
}

func NewHandler(
	bot BotAPI,
	logger *zap.Logger,
	flows FlowStorage,
	topics []string,
	presetCounts []int,
) *Handler {
	return &Handler{
		bot:          bot,
		logger:       logger,
		flows:        flows,
		topics:       topics,
		presetCounts: presetCounts,
	}
}

// Run consumes updates until ctx is cancelled or the updates channel closes.
func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			h.bot.StopReceivingUpdates()
			h.wg.Wait()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				h.wg.Wait()
				return nil
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if m := update.MyChatMember; m != nil && (m.NewChatMember.HasLeft() || m.NewChatMember.WasKicked()) {
		h.logger.Info("bot removed from chat", zap.Int64("chat_id", m.Chat.ID))
		h.flows.Delete(m.Chat.ID)
		return
	}

	if update.Message == nil || update.Message.Chat == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	chatID := update.Message.Chat.ID

	if update.Message.IsCommand() {
		args := strings.TrimSpace(update.Message.CommandArguments())

		switch update.Message.Command() {
		case "start":
			h.send(newMessage(chatID, esc(msgWelcome)))
			_ = h.withErrorHandling(h.restartHandler())(ctx, chatID)

		case "quiz":
			_ = h.withErrorHandling(h.quizHandler())(ctx, chatID)

		case "topic":
			_ = h.withErrorHandling(h.topicHandler(args))(ctx, chatID)

		case "count":
			_ = h.withErrorHandling(h.countHandler(args))(ctx, chatID)

		case "restart":
			_ = h.withErrorHandling(h.restartHandler())(ctx, chatID)

		default:
			h.send(newPlainMessage(chatID, msgUnknownCommand))
		}

		return
	}

	text := strings.TrimSpace(update.Message.Text)
	if text == "" {
		return
	}

	_ = h.withErrorHandling(h.topicHandler(text))(ctx, chatID)
}

func (h *Handler) sendError(chatID int64, err string) {
	h.send(newPlainMessage(chatID, err))
}

func (h *Handler) send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	msg, err := h.bot.Send(c)
	if err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
	}
	return msg, err
}

// edit replaces the text and keyboard of an existing message.
// Telegram rejects edits that change nothing; those are not errors here.
func (h *Handler) edit(chatID int64, msgID int, text string, kb tgbotapi.InlineKeyboardMarkup) error {
	_, err := h.bot.Send(newEdit(chatID, msgID, text, kb))
	if err != nil && strings.Contains(err.Error(), "message is not modified") {
		return nil
	}
	if err != nil {
		h.logger.Error("failed to edit telegram message",
			zap.Int64("chat_id", chatID),
			zap.Int("message_id", msgID),
			zap.Error(err),
		)
	}
	return err
}

// answerCallback acknowledges a button press, optionally with a toast.
func (h *Handler) answerCallback(id, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(id, text)); err != nil {
		h.logger.Warn("failed to answer callback", zap.Error(err))
	}
}

func (h *Handler) sendTyping(chatID int64) {
	if _, err := h.bot.Request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)); err != nil {
		h.logger.Debug("failed to send chat action", zap.Error(err))
	}
}

// goAsync runs fn in the background and tracks it for shutdown.
func (h *Handler) goAsync(fn func()) {
	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		fn()
	}()
}
