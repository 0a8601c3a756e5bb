package telegram

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/kuis-bot/internal/domain/entities"
	"github.com/aliskhannn/kuis-bot/internal/service"
)

func (h *Handler) handleCallback(ctx context.Context, q *tgbotapi.CallbackQuery) {
	if q.Message == nil || q.Message.Chat == nil {
		h.answerCallback(q.ID, "")
		return
	}

	chatID := q.Message.Chat.ID
	msgID := q.Message.MessageID
	flow := h.flows.GetOrCreate(chatID)
	cd := decodeCallback(q.Data)

	switch cd.Action {
	case actionSource:
		h.handleSourceCallback(ctx, q.ID, chatID, msgID, flow, cd)
	case actionTopic:
		h.handleTopicCallback(q.ID, chatID, msgID, flow, cd)
	case actionFile:
		h.handleFileCallback(q.ID, chatID, msgID, flow, cd)
	case actionCount:
		h.handleCountCallback(q.ID, chatID, msgID, flow, cd)
	case actionStart:
		h.handleStartCallback(ctx, q.ID, chatID, msgID, flow)
	case actionAnswer:
		h.handleAnswerCallback(q.ID, chatID, msgID, flow, cd)
	case actionNext:
		h.handleNextCallback(q.ID, chatID, msgID, flow)
	case actionRestart:
		flow.Restart()
		h.answerCallback(q.ID, "")
		h.showScreen(chatID, msgID, flow.Snapshot())
	default:
		h.logger.Debug("unknown callback", zap.String("data", cd.Raw))
		h.answerCallback(q.ID, msgOutdatedButton)
	}
}

func (h *Handler) handleSourceCallback(
	ctx context.Context,
	callbackID string,
	chatID int64,
	msgID int,
	flow *service.QuizFlow,
	cd callbackData,
) {
	var mode entities.SourceMode
	switch {
	case len(cd.Params) == 1 && cd.Params[0] == sourceTopic:
		mode = entities.SourceTopic
	case len(cd.Params) == 1 && cd.Params[0] == sourceFile:
		mode = entities.SourceUploadedFile
	default:
		h.answerCallback(callbackID, msgOutdatedButton)
		return
	}

	s := flow.Snapshot()
	if s.Screen != entities.ScreenInput {
		h.answerCallback(callbackID, msgOutdatedButton)
		return
	}

	if mode == entities.SourceUploadedFile && !s.FilesLoaded {
		if s.Loading {
			h.answerCallback(callbackID, msgLoading)
			return
		}

		h.answerCallback(callbackID, msgLoadingFiles)

		s.SourceMode = mode
		s.Loading = true
		s.Error = ""
		h.showScreen(chatID, msgID, s)

		h.goAsync(func() {
			err := flow.SelectSource(ctx, mode)
			h.afterRemote(chatID, msgID, flow, err)
		})
		return
	}

	err := flow.SelectSource(ctx, mode)
	if h.answerFlowError(callbackID, err) {
		return
	}

	h.answerCallback(callbackID, "")
	h.showScreen(chatID, msgID, flow.Snapshot())
}

func (h *Handler) handleTopicCallback(callbackID string, chatID int64, msgID int, flow *service.QuizFlow, cd callbackData) {
	i, ok := cd.intParam(0)
	if !ok || i >= len(h.topics) {
		h.answerCallback(callbackID, msgOutdatedButton)
		return
	}

	if h.answerFlowError(callbackID, flow.SetTopic(h.topics[i])) {
		return
	}

	h.answerCallback(callbackID, "")
	h.showScreen(chatID, msgID, flow.Snapshot())
}

func (h *Handler) handleFileCallback(callbackID string, chatID int64, msgID int, flow *service.QuizFlow, cd callbackData) {
	s := flow.Snapshot()

	i, ok := cd.intParam(0)
	if !ok || i >= len(s.UploadedFiles) {
		h.answerCallback(callbackID, msgOutdatedButton)
		return
	}

	if h.answerFlowError(callbackID, flow.SelectUploadedFile(s.UploadedFiles[i])) {
		return
	}

	h.answerCallback(callbackID, "")
	h.showScreen(chatID, msgID, flow.Snapshot())
}

func (h *Handler) handleCountCallback(callbackID string, chatID int64, msgID int, flow *service.QuizFlow, cd callbackData) {
	n, ok := cd.intParam(0)
	if !ok || n == 0 {
		h.answerCallback(callbackID, msgOutdatedButton)
		return
	}

	if h.answerFlowError(callbackID, flow.SetQuestionCount(n)) {
		return
	}

	h.answerCallback(callbackID, "")
	h.showScreen(chatID, msgID, flow.Snapshot())
}

// handleStartCallback starts generation in the background and shows the loading state meanwhile.
func (h *Handler) handleStartCallback(ctx context.Context, callbackID string, chatID int64, msgID int, flow *service.QuizFlow) {
	s := flow.Snapshot()
	if s.Screen != entities.ScreenInput {
		h.answerCallback(callbackID, msgOutdatedButton)
		return
	}
	if s.Loading {
		h.answerCallback(callbackID, msgLoading)
		return
	}

	_, countErr := s.EffectiveCount()
	if s.SourceValue() != "" && countErr == nil {
		h.answerCallback(callbackID, msgCreatingQuiz)

		s.Loading = true
		s.Error = ""
		h.showScreen(chatID, msgID, s)
		h.sendTyping(chatID)
	} else {
		h.answerCallback(callbackID, "")
	}

	h.goAsync(func() {
		err := flow.StartQuiz(ctx)
		h.afterRemote(chatID, msgID, flow, err)
	})
}

func (h *Handler) handleAnswerCallback(callbackID string, chatID int64, msgID int, flow *service.QuizFlow, cd callbackData) {
	s := flow.Snapshot()

	qi, ok1 := cd.intParam(0)
	oi, ok2 := cd.intParam(1)
	q := s.CurrentQuestion()
	if !ok1 || !ok2 || s.Screen != entities.ScreenPlaying || q == nil || qi != s.CurrentIndex || oi >= len(q.Options) {
		h.answerCallback(callbackID, msgOutdatedButton)
		return
	}

	if h.answerFlowError(callbackID, flow.SelectAnswer(q.Options[oi])) {
		return
	}

	h.answerCallback(callbackID, "")
	h.showScreen(chatID, msgID, flow.Snapshot())
}

func (h *Handler) handleNextCallback(callbackID string, chatID int64, msgID int, flow *service.QuizFlow) {
	err := flow.Advance()

	var vErr *entities.ValidationError
	if errors.As(err, &vErr) {
		h.answerCallback(callbackID, service.MsgNoSelection)
		h.showScreen(chatID, msgID, flow.Snapshot())
		return
	}
	if h.answerFlowError(callbackID, err) {
		return
	}

	h.answerCallback(callbackID, "")

	s := flow.Snapshot()
	h.showScreen(chatID, msgID, s)

	if s.Screen == entities.ScreenFinished {
		h.sendReview(chatID, s)
	}
}

// afterRemote re-renders the screen once a background call finished.
// Results of a restarted session are dropped; a rejected call still
// replaces the optimistic loading screen with the actual state.
func (h *Handler) afterRemote(chatID int64, msgID int, flow *service.QuizFlow, err error) {
	switch {
	case errors.Is(err, service.ErrStaleResult):
		h.logger.Debug("background result dropped",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		return
	case err != nil:
		h.logger.Debug("background call failed",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}

	// A newer screen message may have been sent while the call was in flight.
	if id, ok := h.flows.GetMessageID(chatID); ok {
		msgID = id
	}

	h.showScreen(chatID, msgID, flow.Snapshot())
}

// answerFlowError answers the callback for flow errors and reports whether err was handled.
func (h *Handler) answerFlowError(callbackID string, err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, service.ErrBusy):
		h.answerCallback(callbackID, msgLoading)
	case errors.Is(err, service.ErrInvalidTransition):
		h.answerCallback(callbackID, msgOutdatedButton)
	default:
		h.logger.Error("callback failed", zap.Error(err))
		h.answerCallback(callbackID, msgInternalError)
	}
	return true
}
