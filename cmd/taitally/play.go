package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lox/taitally/internal/game"
	"github.com/lox/taitally/internal/tui"
)

// PlayCmd runs the interactive scoreboard
type PlayCmd struct {
	Stakes `embed:""`

	LogFile string `help:"Write logs to this file instead of the configured one"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, err := g.load(c.Stakes)
	if err != nil {
		return err
	}
	catalogue, err := cfg.Catalogue()
	if err != nil {
		return err
	}

	logPath := cfg.UI.LogFile
	if c.LogFile != "" {
		logPath = c.LogFile
	}
	// Bubble Tea owns the terminal, so logs go to a file
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()

	logger := g.logger(cfg, logFile, "taitally")
	settings := cfg.Settings()
	logger.Info("Starting session",
		"base_fee", settings.BaseFee,
		"point_value", settings.PointValue,
		"initial_balance", settings.InitialBalance,
		"total_rounds", settings.TotalRounds,
		"rules", catalogue.Len())

	session := game.NewSession(game.SessionConfig{
		Settings:  settings,
		Catalogue: catalogue,
		Logger:    logger,
	})
	model := tui.NewModel(session, logger)

	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("scoreboard failed: %w", err)
	}

	fmt.Print(model.Ledger().Summary())
	return nil
}
