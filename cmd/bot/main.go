package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/kuis-bot/internal/client"
	"github.com/aliskhannn/kuis-bot/internal/config"
	"github.com/aliskhannn/kuis-bot/internal/delivery/telegram"
	"github.com/aliskhannn/kuis-bot/internal/logger"
	"github.com/aliskhannn/kuis-bot/internal/service"
	"github.com/aliskhannn/kuis-bot/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		lg.Fatal("failed to create bot", zap.Error(err))
	}

	// Set commands.
	commands := []tgbotapi.BotCommand{
		{
			Command:     "start",
			Description: "Mulai bot",
		},
		{
			Command:     "quiz",
			Description: "Tampilkan kuis",
		},
		{
			Command:     "topic",
			Description: "Tentukan materi (contoh: /topic Sumber ajaran Islam)",
		},
		{
			Command:     "count",
			Description: "Jumlah pertanyaan kustom (contoh: /count 12)",
		},
		{
			Command:     "restart",
			Description: "Mulai kuis baru",
		},
	}

	_, err = bot.Request(tgbotapi.NewSetMyCommands(commands...))
	if err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	bot.Debug = cfg.Debug
	lg.Info("authorized on account", zap.String("username", bot.Self.UserName))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	generator := client.NewGeneratorClient(client.Options{
		BaseURL:      cfg.Generator.BaseURL,
		GeneratePath: cfg.Generator.GeneratePath,
		FilesPath:    cfg.Generator.FilesPath,
		Timeout:      cfg.Generator.Timeout,
	}, lg)

	flows := storage.NewFlowStorage(func() *service.QuizFlow {
		return service.NewQuizFlow(generator, lg)
	})

	handler := telegram.NewHandler(
		bot,
		lg,
		flows,
		cfg.Quiz.Topics,
		cfg.Quiz.PresetCounts,
	)
	if err := handler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		lg.Fatal("handler stopped", zap.Error(err))
	}

	lg.Info("shutdown signal received")
}
