package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"

	"github.com/lox/taitally/internal/config"
)

// Globals are flags shared by every command
type Globals struct {
	Config   string `short:"c" default:"taitally.hcl" type:"path" help:"Configuration file (defaults apply when missing)"`
	LogLevel string `help:"Override the configured log level (debug, info, warn, error)"`
	NoColor  bool   `help:"Disable colour output"`
}

// Stakes are the table settings a command can override from the command line
type Stakes struct {
	BaseFee        string `help:"Base fee per payer (default 300)"`
	PointValue     string `help:"Value of one tai (default 100)"`
	InitialBalance string `help:"Starting balance per seat (default 20000)"`
	TotalRounds    string `help:"Wind rounds to play (default 4)"`
}

// load reads the configuration file and applies command line overrides
func (g *Globals) load(stakes Stakes) (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", g.Config, err)
	}
	cfg.Apply(config.Overrides{
		BaseFee:        stakes.BaseFee,
		PointValue:     stakes.PointValue,
		InitialBalance: stakes.InitialBalance,
		TotalRounds:    stakes.TotalRounds,
		LogLevel:       g.LogLevel,
	})
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if g.NoColor || cfg.UI.NoColor {
		disableColor()
	}
	return cfg, nil
}

// logger creates a logger writing to w at the configured level
func (g *Globals) logger(cfg *config.Config, w io.Writer, prefix string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           cfg.LogLevel(),
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          prefix,
	})
}

func stderrLogger(g *Globals, cfg *config.Config) *log.Logger {
	return g.logger(cfg, os.Stderr, "taitally")
}

func disableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
	pterm.DisableColor()
}
