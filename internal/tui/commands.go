package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lox/taitally/internal/config"
	"github.com/lox/taitally/internal/game"
)

// CommandKind identifies an operator command
type CommandKind int

const (
	CmdHu CommandKind = iota
	CmdConfirm
	CmdCancel
	CmdNext
	CmdLian
	CmdEnd
	CmdRules
	CmdNew
	CmdHelp
	CmdQuit
)

var commandNames = map[string]CommandKind{
	"hu":      CmdHu,
	"win":     CmdHu,
	"yes":     CmdConfirm,
	"y":       CmdConfirm,
	"confirm": CmdConfirm,
	"no":      CmdCancel,
	"n":       CmdCancel,
	"cancel":  CmdCancel,
	"next":    CmdNext,
	"lian":    CmdLian,
	"end":     CmdEnd,
	"rules":   CmdRules,
	"new":     CmdNew,
	"help":    CmdHelp,
	"?":       CmdHelp,
	"quit":    CmdQuit,
	"q":       CmdQuit,
	"exit":    CmdQuit,
}

var (
	ErrEmptyCommand   = errors.New("empty command")
	ErrUnknownCommand = errors.New("unknown command")
)

// Command is a parsed line of operator input
type Command struct {
	Kind  CommandKind
	Claim game.Claim
}

// ParseCommand parses a line of input. Win claims take the form
//
//	hu <seat> [from <seat>] [rule ...] [+N]
//
// where the loser is omitted for a self-draw and +N adds manual tai.
func ParseCommand(input string) (Command, error) {
	fields := strings.Fields(strings.ToLower(input))
	if len(fields) == 0 {
		return Command{}, ErrEmptyCommand
	}

	kind, ok := commandNames[fields[0]]
	if !ok {
		return Command{}, fmt.Errorf("%w: %s", ErrUnknownCommand, fields[0])
	}
	if kind != CmdHu {
		return Command{Kind: kind}, nil
	}

	claim, err := parseClaim(fields[1:])
	if err != nil {
		return Command{}, err
	}
	return Command{Kind: CmdHu, Claim: claim}, nil
}

func parseClaim(args []string) (game.Claim, error) {
	if len(args) == 0 {
		return game.Claim{}, fmt.Errorf("hu needs a winning seat")
	}

	winner, err := game.ParseSeat(args[0])
	if err != nil {
		return game.Claim{}, err
	}
	claim := game.Claim{Winner: winner, Loser: game.NoSeat}
	args = args[1:]

	if len(args) > 0 && args[0] == "from" {
		if len(args) < 2 {
			return game.Claim{}, fmt.Errorf("from needs a discarding seat")
		}
		loser, err := game.ParseSeat(args[1])
		if err != nil {
			return game.Claim{}, err
		}
		claim.Loser = loser
		args = args[2:]
	}

	for _, arg := range args {
		if strings.HasPrefix(arg, "+") {
			claim.ManualExtra += config.CoercePoints(arg[1:])
			continue
		}
		claim.RuleIDs = append(claim.RuleIDs, arg)
	}
	return claim, nil
}

const helpText = `Commands:
  hu <seat> [from <seat>] [rule ...] [+N]   propose a win (self-draw without from)
  yes | no                                  confirm or cancel the pending settlement
  next                                      pass the deal
  lian                                      add to the dealer streak
  end                                       final settlement now
  rules                                     list scoring rules
  new                                       start a new session
  quit                                      leave`
