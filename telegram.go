package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"twentyfour/config"
)

const (
	startMessage      = "Let's start. Press the buttons."
	badRequestMessage = "I don't understand..."
	clockButton       = "Clock"
	sunButton         = "Sun today"
)

// sender is the part of the bot API the handlers need
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

var keyboard = tgbotapi.NewReplyKeyboard(
	tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(clockButton),
		tgbotapi.NewKeyboardButton(sunButton),
	),
)

// mono() returns monospaced escaped Markdown
func mono(s string) string {
	return "```\n" + tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s) + "\n```"
}

// authChat() makes sure no one else except the configured chat can interact with this bot
func authChat(chatID int64, allowedChatID string) bool {
	return strconv.FormatInt(chatID, 10) == allowedChatID
}

// clockDocument() renders the face of place at now as an SVG document for chatID
func clockDocument(chatID int64, cfg config.Config, place Place, now time.Time) (tgbotapi.DocumentConfig, error) {
	face, err := newFace(cfg, place, now)
	if err != nil {
		return tgbotapi.DocumentConfig{}, err
	}
	summary := summarize(face, place.Name)

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  "twentyfour-" + summary.Date + ".svg",
		Bytes: []byte(face.SVG()),
	})
	caption := fmt.Sprintf("%s %s %s", summary.Day, summary.Date, summary.UTCOffset)
	if place.Name != "" {
		caption = place.Name + " " + caption
	}
	doc.Caption = tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, caption)
	doc.ParseMode = tgbotapi.ModeMarkdownV2
	return doc, nil
}

// sunMessage() returns the day summary of place at now as a monospaced message
func sunMessage(chatID int64, cfg config.Config, place Place, now time.Time) (tgbotapi.MessageConfig, error) {
	face, err := newFace(cfg, place, now)
	if err != nil {
		return tgbotapi.MessageConfig{}, err
	}
	msg := tgbotapi.NewMessage(chatID, mono(summarize(face, place.Name).Print()))
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	return msg, nil
}

// handleChat() is telegram bot handler for chat interactions
func handleChat(bot sender, update tgbotapi.Update, cfg config.Config, place Place, now time.Time) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID
	if !authChat(chatID, cfg.TelegramChatID) {
		logger.Warn("Chat unauthorized", zap.Int64("chat_id", chatID))
		return
	}
	user := ""
	if update.Message.From != nil {
		user = update.Message.From.UserName
	}
	logger.Info("Message received", zap.String("user", user), zap.String("text", update.Message.Text))

	var reply tgbotapi.Chattable
	var err error
	switch {
	case update.Message.IsCommand() && update.Message.Command() == "start":
		msg := tgbotapi.NewMessage(chatID, mono(startMessage))
		msg.ParseMode = tgbotapi.ModeMarkdownV2
		msg.ReplyMarkup = keyboard
		reply = msg
	case update.Message.Command() == "clock" || update.Message.Text == clockButton:
		reply, err = clockDocument(chatID, cfg, place, now)
	case update.Message.Command() == "sun" || update.Message.Text == sunButton:
		reply, err = sunMessage(chatID, cfg, place, now)
	default:
		msg := tgbotapi.NewMessage(chatID, mono(badRequestMessage))
		msg.ParseMode = tgbotapi.ModeMarkdownV2
		msg.ReplyMarkup = keyboard
		reply = msg
	}
	if err != nil {
		logger.Error("Cannot build reply", zap.Error(err))
		msg := tgbotapi.NewMessage(chatID, mono(err.Error()))
		msg.ParseMode = tgbotapi.ModeMarkdownV2
		reply = msg
	}

	logger.Info("Sending message to Telegram")
	if _, err := bot.Send(reply); err != nil {
		logger.Error("Cannot send message", zap.Error(err))
	}
}

// runBot() serves the configured chat and posts the daily clock until ctx is done
func runBot(ctx context.Context, cfg config.Config, place Place) error {
	if cfg.TelegramBotToken == "" || cfg.TelegramChatID == "" {
		return errors.New("one of environment variables TG_BOT_TOKEN or CHAT_ID is not set")
	}
	chatID, err := cfg.ChatID()
	if err != nil {
		return err
	}

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return fmt.Errorf("creating bot: %w", err)
	}
	logger.Info("Authorized on account", zap.String("account", bot.Self.UserName))

	scheduler, err := scheduleDailyClock(bot, chatID, cfg, place)
	if err != nil {
		return err
	}
	defer scheduler.Stop()
	logger.Info("Background cron job activated", zap.String("cron", cfg.CronExpression))

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := bot.GetUpdatesChan(u)
	logger.Info("Bot started")

	for {
		select {
		case <-ctx.Done():
			bot.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			handleChat(bot, update, cfg, place, time.Now())
		}
	}
}
