package main

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"

	"twentyfour/config"
)

// scheduleDailyClock() is the cron job which posts the face of the day to chatID
func scheduleDailyClock(bot sender, chatID int64, cfg config.Config, place Place) (*gocron.Scheduler, error) {
	loc := place.Location
	if loc == nil {
		loc = time.Local
	}
	state := State{Path: cfg.StateFilePath}
	if err := state.Init(); err != nil {
		return nil, err
	}

	s := gocron.NewScheduler(loc)
	_, err := s.Cron(cfg.CronExpression).SingletonMode().Do(func() {
		logger.Info("Starting cron job")
		postDailyClock(bot, chatID, cfg, place, state, time.Now().In(loc))
	})
	if err != nil {
		return nil, fmt.Errorf("invalid CRON_EXPRESSION %q: %w", cfg.CronExpression, err)
	}
	s.StartAsync()
	return s, nil
}

// postDailyClock() sends the face of now unless its date was posted already.
// It reports whether a message went out.
func postDailyClock(bot sender, chatID int64, cfg config.Config, place Place, state State, now time.Time) bool {
	if state.Posted(now) {
		logger.Info("Clock already posted today", zap.String("date", now.Format(time.DateOnly)))
		return false
	}
	doc, err := clockDocument(chatID, cfg, place, now)
	if err != nil {
		logger.Error("Cannot render clock", zap.Error(err))
		return false
	}
	if _, err := bot.Send(doc); err != nil {
		logger.Error("Can't send message to Telegram", zap.Error(err))
		return false
	}
	if err := state.Set(now); err != nil {
		logger.Error("Cannot update state", zap.Error(err))
	}
	return true
}
