package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/kuis-bot/internal/service"
)

// BotAPI is the subset of the Telegram client used by the handler.
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// FlowStorage keeps one quiz flow and its screen message per chat.
type FlowStorage interface {
	GetOrCreate(chatID int64) *service.QuizFlow
	StoreMessageID(chatID int64, messageID int)
	GetMessageID(chatID int64) (int, bool)
	Delete(chatID int64)
}
