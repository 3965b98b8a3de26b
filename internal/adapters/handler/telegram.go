package handler

import (
	"context"
	"os"
	"time"

	"assistbot/internal/core/port"
	"assistbot/internal/core/service"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
)

// CommandHandler feeds free-form Telegram messages into the dispatcher and
// replies with the result. Processing is detached from the Telegram update
// loop so a slow provider chain never stalls other chats.
type CommandHandler struct {
	dispatcher *service.Dispatcher
	sender     port.ReplySender
	timeout    time.Duration
}

func NewCommandHandler(dispatcher *service.Dispatcher, sender port.ReplySender, timeout time.Duration) *CommandHandler {
	return &CommandHandler{dispatcher: dispatcher, sender: sender, timeout: timeout}
}

func (h *CommandHandler) Handle(_ context.Context, _ *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}

	chatID := update.Message.Chat.ID
	messageID := update.Message.ID
	text := update.Message.Text

	log.Debug().Int64("chatID", chatID).Str("message", text).Msg("received command")

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
		defer cancel()

		result := h.dispatcher.ProcessCommand(ctx, text)

		if err := h.sender.SendMessageReply(ctx, chatID, messageID, result.Message); err != nil {
			log.Error().Err(err).Int64("chatID", chatID).Msg("failed to send command result")
		}

		if path, ok := result.Data["image_path"].(string); ok && path != "" {
			h.replyWithImage(ctx, chatID, messageID, path)
		}
	}()
}

func (h *CommandHandler) replyWithImage(ctx context.Context, chatID int64, messageID int, path string) {
	file, err := os.ReadFile(path)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("failed to read generated image")
		return
	}

	if err := h.sender.SendImageFileReply(ctx, chatID, messageID, file); err != nil {
		log.Error().Err(err).Int64("chatID", chatID).Msg("failed to send image reply")
	}
}
