package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"github.com/lox/taitally/internal/config"
	"github.com/lox/taitally/internal/game"
	"github.com/lox/taitally/internal/ledger"
	"github.com/lox/taitally/internal/rules"
)

// SettleCmd prices one win against a table position given on the command line
type SettleCmd struct {
	Stakes `embed:""`

	Winner string   `arg:"" help:"Winning seat (east, s, 2, 北, ...)"`
	Rules  []string `arg:"" optional:"" help:"Rule IDs claimed"`
	From   string   `help:"Discarding seat; omit for a self-draw"`
	Extra  string   `help:"Manual tai added to the rules"`
	Dealer string   `default:"east" help:"Seat holding the deal"`
	Streak int      `default:"1" help:"Dealer streak (1 for a first deal)"`
}

func (c *SettleCmd) Run(g *Globals) error {
	cfg, err := g.load(c.Stakes)
	if err != nil {
		return err
	}
	catalogue, err := cfg.Catalogue()
	if err != nil {
		return err
	}

	claim, err := c.claim(catalogue)
	if err != nil {
		return err
	}
	dealer, err := game.ParseSeat(c.Dealer)
	if err != nil {
		return err
	}

	settings := cfg.Settings()
	state := game.NewState(settings)
	state.Dealer = dealer
	state.Streak = max(c.Streak, 1)

	txn, err := game.ComputeSettlement(state, claim, settings.Stakes(), catalogue)
	if err != nil {
		return err
	}

	pterm.DefaultBox.
		WithTitle(pterm.LightYellow("|SETTLEMENT|")).
		WithTitleTopCenter().
		WithHorizontalPadding(4).
		Println(breakdown(txn, settings))

	return pterm.DefaultTable.WithHasHeader().WithData(paymentTable(state, txn)).Render()
}

func (c *SettleCmd) claim(catalogue *rules.Catalogue) (game.Claim, error) {
	winner, err := game.ParseSeat(c.Winner)
	if err != nil {
		return game.Claim{}, err
	}
	if err := catalogue.Check(c.Rules); err != nil {
		return game.Claim{}, err
	}
	claim := game.Claim{
		Winner:      winner,
		Loser:       game.NoSeat,
		RuleIDs:     c.Rules,
		ManualExtra: config.CoercePoints(c.Extra),
	}
	if c.From != "" {
		loser, err := game.ParseSeat(c.From)
		if err != nil {
			return game.Claim{}, err
		}
		claim.Loser = loser
	}
	return claim, nil
}

// breakdown explains how the amount was reached
func breakdown(txn game.Transaction, settings game.Settings) string {
	var b strings.Builder

	if txn.Kind == game.SelfDraw {
		fmt.Fprintf(&b, "%s self-draws\n", txn.Winner)
	} else {
		fmt.Fprintf(&b, "%s wins off %s\n", txn.Winner, txn.Loser)
	}
	for _, r := range txn.Rules {
		fmt.Fprintf(&b, "  %-12s %2d tai\n", r.Name, r.Tai)
	}
	if txn.ManualExtra > 0 {
		fmt.Fprintf(&b, "  %-12s %2d tai\n", "Extra", txn.ManualExtra)
	}
	fmt.Fprintf(&b, "Base points: %d\n", txn.BasePoints)
	if txn.DealerInvolved {
		fmt.Fprintf(&b, "Dealer bonus: %d\n", txn.DealerBonus)
	}
	fmt.Fprintf(&b, "Amount: $%d + %d x $%d = $%d per payer\n",
		settings.BaseFee, txn.FinalPoints, settings.PointValue, txn.Amount)
	fmt.Fprintf(&b, "Total: $%d x%d = $%d", txn.Amount, len(txn.Payers()), txn.Total())
	return b.String()
}

// paymentTable lists each seat's balance before and after the transfer
func paymentTable(state game.State, txn game.Transaction) pterm.TableData {
	data := pterm.TableData{{"Seat", "Before", "Change", "After"}}
	for _, p := range state.Players {
		delta := ledger.Delta(txn, p.Seat)
		seat := p.Seat.Glyph() + " " + p.Name
		if p.Seat == state.Dealer {
			seat += " (dealer)"
		}
		data = append(data, []string{
			seat,
			strconv.Itoa(p.Balance),
			fmt.Sprintf("%+d", delta),
			strconv.Itoa(p.Balance + delta),
		})
	}
	return data
}
