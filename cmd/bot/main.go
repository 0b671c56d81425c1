package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/amis-classroom-bot/internal/config"
	httpdelivery "github.com/aliskhannn/amis-classroom-bot/internal/delivery/http"
	"github.com/aliskhannn/amis-classroom-bot/internal/delivery/telegram"
	"github.com/aliskhannn/amis-classroom-bot/internal/domain/entities"
	"github.com/aliskhannn/amis-classroom-bot/internal/infra/assets"
	"github.com/aliskhannn/amis-classroom-bot/internal/infra/tts"
	"github.com/aliskhannn/amis-classroom-bot/internal/logger"
	"github.com/aliskhannn/amis-classroom-bot/internal/repository"
	"github.com/aliskhannn/amis-classroom-bot/internal/service"
	"github.com/aliskhannn/amis-classroom-bot/internal/storage"
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize repositories and services.
	catalogRepo, err := repository.NewCatalogRepository(cfg.CatalogJSONPath)
	if err != nil {
		lg.Fatal("failed to load lesson catalog", zap.String("path", cfg.CatalogJSONPath), zap.Error(err))
	}

	assetStore := assets.NewOSStore()
	synthesizer := newSynthesizer(ctx, cfg, lg)

	sessions := storage.NewSessionStorage()
	quizService, err := service.NewQuizService(sessions, entities.DefaultQuestions(), lg)
	if err != nil {
		lg.Fatal("invalid quiz", zap.Error(err))
	}

	resolver := service.NewAudioResolver(assetStore, synthesizer, cfg.Audio.Dir, cfg.TTS.LanguageCode, lg)
	lessonService := service.NewLessonService(catalogRepo, quizService, resolver, cfg.Audio.FallbackToSpeech, lg)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return sessions.RunJanitor(gctx, cfg.Session.SweepInterval, cfg.Session.IdleTTL, func(removed int) {
			lg.Debug("idle quiz sessions evicted", zap.Int("removed", removed))
		})
	})

	if cfg.Telegram.Enabled {
		bot, err := tgbotapi.NewBotAPI(cfg.Telegram.APIToken)
		if err != nil {
			lg.Fatal("failed to create telegram bot", zap.Error(err))
		}
		bot.Debug = cfg.Telegram.Debug

		// Set commands.
		commands := []tgbotapi.BotCommand{
			{
				Command:     "start",
				Description: "開始",
			},
			{
				Command:     "learn",
				Description: "學習單詞",
			},
			{
				Command:     "quiz",
				Description: "練習挑戰",
			},
			{
				Command:     "restart",
				Description: "再玩一次",
			},
			{
				Command:     "help",
				Description: "說明",
			},
		}

		if _, err := bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
			lg.Warn("failed to set bot commands", zap.Error(err))
		}

		lg.Info("authorized on telegram", zap.String("account", bot.Self.UserName))

		handler := telegram.NewHandler(bot, lg, lessonService, quizService, assetStore, cfg.Quiz.Celebrate)
		g.Go(func() error {
			defer bot.StopReceivingUpdates()
			return handler.Run(gctx)
		})
	}

	if cfg.HTTP.Enabled {
		if cfg.Env == "production" {
			gin.SetMode(gin.ReleaseMode)
		}

		router := httpdelivery.NewRouter(httpdelivery.RouterConfig{
			Handler:        httpdelivery.NewHandler(lessonService, quizService, assetStore, lg),
			Logger:         lg,
			AllowedOrigins: cfg.HTTP.AllowedOrigins,
			SecureCookies:  cfg.HTTP.SecureCookies,
		})

		server := httpdelivery.NewServer(cfg.HTTP.Addr, router, lg)
		g.Go(func() error {
			return server.Run(gctx)
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		lg.Fatal("service stopped", zap.Error(err))
	}

	lg.Info("shutdown complete")
}

// newSynthesizer picks Google Cloud TTS when configured and falls back to a
// disabled synthesizer otherwise.
func newSynthesizer(ctx context.Context, cfg *config.Config, lg *zap.Logger) service.SpeechSynthesizer {
	if !cfg.TTS.Enabled {
		lg.Info("speech synthesis disabled")
		return tts.Disabled{}
	}

	client, err := tts.NewGoogleClient(ctx, tts.Config{
		APIKey:          cfg.TTS.APIKey,
		CredentialsFile: cfg.TTS.CredentialsFile,
		VoiceName:       cfg.TTS.VoiceName,
		Timeout:         cfg.TTS.Timeout,
	})
	if err != nil {
		lg.Warn("speech synthesis unavailable", zap.Error(err))
		return tts.Disabled{}
	}

	return client
}
