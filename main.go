package main

import (
	"time"

	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
	"github.com/korjavin/lppositions/config"
	"github.com/korjavin/lppositions/plugin"
	"github.com/korjavin/lppositions/uniswap"
	"go.uber.org/zap"
)

func newLogger(debug bool) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func main() {
	cfg, cfgErr := config.Load(".env")

	logger := newLogger(cfg != nil && cfg.Debug)
	defer logger.Sync()
	sugar := logger.Sugar()

	if cfgErr != nil {
		sugar.Fatalf("Invalid configuration: %v", cfgErr)
	}
	if err := cfg.ValidateBot(); err != nil {
		sugar.Fatalf("Invalid configuration: %v", err)
	}

	db, err := initDB(cfg.DBPath)
	if err != nil {
		sugar.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	service, err := uniswap.NewLPPositionService(uniswap.ServiceConfig{
		BaseURL:      cfg.AlchemyBaseURL,
		APIKey:       cfg.AlchemyAPIKey,
		Timeout:      cfg.HTTPTimeout,
		MockFallback: cfg.MockFallback,
	}, sugar)
	if err != nil {
		sugar.Fatalf("Failed to initialize LP position service: %v", err)
	}
	lpPlugin := plugin.New(service, sugar)
	defer lpPlugin.Close()

	bot, err := gotgbot.NewBot(cfg.TelegramToken, &gotgbot.BotOpts{
		RequestOpts: &gotgbot.RequestOpts{
			Timeout: 60 * time.Second,
		},
	})
	if err != nil {
		sugar.Fatalf("Failed to create bot: %v", err)
	}

	dispatcher := ext.NewDispatcher(&ext.DispatcherOpts{
		Error: func(b *gotgbot.Bot, ctx *ext.Context, err error) ext.DispatcherAction {
			sugar.Errorw("Error in handler", "error", err)
			return ext.DispatcherActionNoop
		},
	})

	updater := ext.NewUpdater(dispatcher, &ext.UpdaterOpts{})

	handlers := NewBotHandlers(bot, db, lpPlugin, sugar)
	handlers.RegisterHandlers(dispatcher)

	sugar.Infow("Bot started successfully", "plugin", lpPlugin.Name, "mockFallback", cfg.MockFallback)
	err = updater.StartPolling(bot, &ext.PollingOpts{
		DropPendingUpdates: true,
	})
	if err != nil {
		sugar.Fatalf("Failed to start polling: %v", err)
	}

	updater.Idle()
}
