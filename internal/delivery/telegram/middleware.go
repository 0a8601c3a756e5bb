package telegram

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/aliskhannn/kuis-bot/internal/service"
)

type HandlerFunc func(ctx context.Context, chatID int64) error

// withErrorHandling turns flow errors into chat replies.
// Intents rejected by the current screen or by an in-flight call get a hint;
// anything else is logged and answered with a generic message.
func (h *Handler) withErrorHandling(fn HandlerFunc) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		err := fn(ctx, chatID)
		switch {
		case err == nil:
		case errors.Is(err, service.ErrInvalidTransition):
			h.sendError(chatID, msgUseButtons)
		case errors.Is(err, service.ErrBusy):
			h.sendError(chatID, msgLoading)
		default:
			h.logger.Error("handle error",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
			h.sendError(chatID, msgInternalError)
		}
		return nil
	}
}
