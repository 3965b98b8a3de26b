package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"time"

	"assistbot/internal/adapters/file"
	"assistbot/internal/adapters/handler"
	"assistbot/internal/adapters/history"
	"assistbot/internal/adapters/mailbox"
	"assistbot/internal/adapters/provider"
	"assistbot/internal/adapters/sender"
	"assistbot/internal/adapters/speaker"
	"assistbot/internal/core/port"
	"assistbot/internal/core/service"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func main() {
	log.Info().Msg("starting assistbot...")

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, relying on environment")
	}

	viper.AddConfigPath(".")
	viper.SetConfigType("toml")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	log.Info().Msg("reading config file...")
	if err := viper.ReadInConfig(); err != nil {
		log.Fatal().Err(err).Msg("could not read config file")
	}

	var logLevel zerolog.Level

	switch viper.GetString("bot.log_level") {
	case "info":
		logLevel = zerolog.InfoLevel
	case "debug":
		logLevel = zerolog.DebugLevel
	default:
		logLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(logLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	providers := service.DefaultProviders()
	registry := service.NewRegistry(providers)
	invoker := service.NewInvoker(registry,
		viper.GetDuration("providers.text_timeout"),
		viper.GetDuration("providers.image_timeout"))

	or := providers["openrouter"]
	invoker.Register(provider.NewOpenRouter(or.CredentialKey, or.BaseURL, or.Model("text"), or.Model("image")))

	ds := providers["deepseek"]
	invoker.Register(provider.NewDeepSeek(ds.CredentialKey, ds.BaseURL, ds.Model("text")))

	hf := providers["huggingface"]
	invoker.Register(provider.NewHuggingFace(hf.CredentialKey, hf.BaseURL, hf.Model("text"),
		hf.Model("translation"), []string{hf.Model("image_xl"), hf.Model("flux"), hf.Model("image")}))

	gm := providers["gemini"]
	invoker.Register(provider.NewGemini(gm.CredentialKey, gm.Model("text"), gm.Model("image")))

	tg := providers["together"]
	invoker.Register(provider.NewTogether(tg.CredentialKey, tg.BaseURL, tg.Model("text"), tg.Model("image")))

	dbPath := viper.GetString("history.db_path")
	if dbPath == "" {
		dbPath = "assistbot.db"
	}

	var store port.History
	sqliteStore, err := history.NewStore(dbPath)
	if err != nil {
		log.Warn().Err(err).Msg("history store unavailable, running without persistence")
	} else {
		store = sqliteStore
		defer sqliteStore.Close()
	}

	voice := speaker.NewHTTPSpeaker(viper.GetString("speech.endpoint"), viper.GetDuration("speech.timeout"))

	imageDir := viper.GetString("images.dir")
	if imageDir == "" {
		imageDir = "generated_images"
	}
	saveImage := func(data []byte) (string, error) {
		return file.SaveImage(imageDir, data)
	}

	writer := service.NewWriter(invoker)
	dispatcher := service.NewDispatcher(invoker, writer, registry, store, voice, sender.NewFacebook(), saveImage)

	gmail := mailbox.NewGmail()
	whatsapp := sender.NewWhatsApp()
	autoReply := service.NewAutoReplyProcessor(invoker, store,
		viper.GetInt("autoreply.batch_size"),
		service.Platform{Name: "email", Fetcher: gmail, Sender: gmail},
		service.Platform{Name: "whatsapp", Fetcher: whatsapp, Sender: whatsapp},
	)

	go runAutoReplyLoop(ctx, autoReply)

	b, err := bot.New(viper.GetString("telegram.bot_token"),
		bot.WithDefaultHandler(noOpHandler))
	if err != nil {
		log.Panic().Err(err).Msg("failed initializing telegram bot")
	}

	handlerTimeout := viper.GetDuration("handler.timeout")
	if handlerTimeout <= 0 {
		handlerTimeout = 2 * time.Minute
	}

	commandHandler := handler.NewCommandHandler(dispatcher, sender.NewTelegramSender(b), handlerTimeout)

	b.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, commandHandler.Handle)

	log.Info().Msg("bot listening")
	b.Start(ctx)
}

func noOpHandler(_ context.Context, _ *bot.Bot, _ *models.Update) {}

func runAutoReplyLoop(ctx context.Context, processor *service.AutoReplyProcessor) {
	interval := viper.GetDuration("autoreply.interval")
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			outcomes := processor.Run(ctx)
			if len(outcomes) > 0 {
				log.Info().Int("processed", len(outcomes)).Msg("auto-reply pass finished")
			}
		case <-ctx.Done():
			log.Info().Msg("stopping auto-reply loop")
			return
		}
	}
}
