package main

import (
	"strconv"

	"github.com/pterm/pterm"

	"github.com/lox/taitally/internal/rules"
)

// RulesCmd prints the scoring catalogue, including house rules from the config
type RulesCmd struct{}

func (c *RulesCmd) Run(g *Globals) error {
	cfg, err := g.load(Stakes{})
	if err != nil {
		return err
	}
	catalogue, err := cfg.Catalogue()
	if err != nil {
		return err
	}
	return pterm.DefaultTable.WithHasHeader().WithData(rulesTable(catalogue)).Render()
}

func rulesTable(catalogue *rules.Catalogue) pterm.TableData {
	data := pterm.TableData{{"ID", "Name", "Tai"}}
	for _, r := range catalogue.All() {
		data = append(data, []string{r.ID, r.Name, strconv.Itoa(r.Tai)})
	}
	return data
}
