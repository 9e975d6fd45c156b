package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
)

// State remembers in a file the last local date a clock was posted for
type State struct {
	Path string
}

// Init() creates an empty state file unless one exists already
func (s State) Init() error {
	_, err := os.Stat(s.Path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("state file %s: %w", s.Path, err)
	}
	if err := os.WriteFile(s.Path, nil, 0644); err != nil {
		return fmt.Errorf("can't write to state file %s: %w", s.Path, err)
	}
	logger.Info("State file initialized", zap.String("path", s.Path))
	return nil
}

// Set() writes the date of day to the state file
func (s State) Set(day time.Time) error {
	if err := os.WriteFile(s.Path, []byte(day.Format(time.DateOnly)), 0644); err != nil {
		return fmt.Errorf("can't write to state file %s: %w", s.Path, err)
	}
	logger.Info("State file updated", zap.String("date", day.Format(time.DateOnly)))
	return nil
}

// LastPosted() returns the date in the state file, "" when nothing was posted yet
func (s State) LastPosted() (string, error) {
	dat, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("can't read from state file %s: %w", s.Path, err)
	}
	return strings.TrimSpace(string(dat)), nil
}

// Posted() reports whether the date of day is already in the state file
func (s State) Posted(day time.Time) bool {
	last, err := s.LastPosted()
	if err != nil {
		logger.Error("Reading state", zap.Error(err))
		return false
	}
	return last == day.Format(time.DateOnly)
}
