package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Globals `embed:""`

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"1" help:"Keep score at the table (interactive)"`
	Settle   SettleCmd        `cmd:"" help:"Price a single win without starting a session"`
	Rules    RulesCmd         `cmd:"" help:"List the scoring rules"`
	Simulate SimulateCmd      `cmd:"" help:"Play random sessions and report statistics"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("taitally"),
		kong.Description("Tai scorekeeper for four-seat mahjong tables"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
