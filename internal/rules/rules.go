// Package rules holds the catalogue of scoring rules a winning hand can claim.
package rules

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownRule is returned for an identifier that is not in the catalogue
var ErrUnknownRule = errors.New("unknown rule")

// Rule is a single scoring entry worth a fixed number of tai
type Rule struct {
	ID   string
	Name string
	Tai  int
}

// Catalogue is an ordered, read-only table of rules indexed by identifier.
// It is built once and shared by every settlement.
type Catalogue struct {
	rules []Rule
	byID  map[string]int
}

var standard = []Rule{
	{ID: "zimo", Name: "Self-drawn (自摸)", Tai: 1},
	{ID: "menqing", Name: "Concealed hand (門清)", Tai: 1},
	{ID: "wind_seat", Name: "Seat wind (門風)", Tai: 1},
	{ID: "wind_round", Name: "Round wind (圈風)", Tai: 1},
	{ID: "dragon", Name: "Dragon pung (中/發/白)", Tai: 1},
	{ID: "flower", Name: "Flower, each (花牌)", Tai: 1},
	{ID: "pinghu", Name: "All chows (平胡)", Tai: 2},
	{ID: "sankan", Name: "Three concealed pungs (三暗刻)", Tai: 2},
	{ID: "pong", Name: "All pungs (碰碰胡)", Tai: 4},
	{ID: "mix", Name: "Mixed one suit (混一色)", Tai: 4},
	{ID: "pure", Name: "Pure one suit (清一色)", Tai: 8},
	{ID: "small3", Name: "Little three dragons (小三元)", Tai: 4},
	{ID: "big3", Name: "Big three dragons (大三元)", Tai: 8},
	{ID: "small4", Name: "Little four winds (小四喜)", Tai: 8},
	{ID: "big4", Name: "Big four winds (大四喜)", Tai: 16},
	{ID: "tianhu", Name: "Heavenly/earthly hand (天胡/地胡)", Tai: 16},
	{ID: "words", Name: "All honours (字一色)", Tai: 16},
}

var standardCatalogue = mustBuild(standard)

// Standard returns the built-in catalogue
func Standard() *Catalogue {
	return standardCatalogue
}

// New builds a catalogue from the given rules, preserving their order.
// Identifiers are case-insensitive and must be unique and non-empty.
func New(rules []Rule) (*Catalogue, error) {
	c := &Catalogue{
		rules: make([]Rule, 0, len(rules)),
		byID:  make(map[string]int, len(rules)),
	}
	for _, r := range rules {
		r.ID = normalizeID(r.ID)
		if r.ID == "" {
			return nil, fmt.Errorf("rule %q: identifier is required", r.Name)
		}
		if r.Tai < 0 {
			return nil, fmt.Errorf("rule %s: tai must not be negative, got %d", r.ID, r.Tai)
		}
		if _, exists := c.byID[r.ID]; exists {
			return nil, fmt.Errorf("rule %s: duplicate identifier", r.ID)
		}
		if r.Name == "" {
			r.Name = r.ID
		}
		c.byID[r.ID] = len(c.rules)
		c.rules = append(c.rules, r)
	}
	return c, nil
}

// Extend returns a new catalogue with overrides applied. An override whose
// identifier already exists replaces that entry in place; the rest are
// appended in the order given. The receiver is left untouched.
func (c *Catalogue) Extend(overrides []Rule) (*Catalogue, error) {
	merged := c.All()
	for _, o := range overrides {
		id := normalizeID(o.ID)
		if idx, ok := c.byID[id]; ok {
			if o.Name == "" {
				o.Name = merged[idx].Name
			}
			o.ID = id
			merged[idx] = o
			continue
		}
		merged = append(merged, o)
	}
	return New(merged)
}

// Lookup finds a rule by identifier
func (c *Catalogue) Lookup(id string) (Rule, bool) {
	idx, ok := c.byID[normalizeID(id)]
	if !ok {
		return Rule{}, false
	}
	return c.rules[idx], true
}

// All returns a copy of the rules in catalogue order
func (c *Catalogue) All() []Rule {
	out := make([]Rule, len(c.rules))
	copy(out, c.rules)
	return out
}

// Len returns the number of rules
func (c *Catalogue) Len() int {
	return len(c.rules)
}

// Check returns ErrUnknownRule naming the first identifier not in the
// catalogue. Select skips such identifiers, so input from an operator should
// be checked first.
func (c *Catalogue) Check(ids []string) error {
	for _, id := range ids {
		if _, ok := c.Lookup(id); !ok {
			return fmt.Errorf("%w: %q", ErrUnknownRule, id)
		}
	}
	return nil
}

// Select resolves a selection of identifiers into rules. The selection is a
// set: repeats count once, unknown identifiers are skipped and the result is
// in catalogue order regardless of the order requested.
func (c *Catalogue) Select(ids []string) []Rule {
	if len(ids) == 0 {
		return nil
	}
	chosen := make([]bool, len(c.rules))
	for _, id := range ids {
		if idx, ok := c.byID[normalizeID(id)]; ok {
			chosen[idx] = true
		}
	}
	var selected []Rule
	for i, r := range c.rules {
		if chosen[i] {
			selected = append(selected, r)
		}
	}
	return selected
}

// Points sums the tai of the selected rules
func (c *Catalogue) Points(ids []string) int {
	total := 0
	for _, r := range c.Select(ids) {
		total += r.Tai
	}
	return total
}

func normalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

func mustBuild(rules []Rule) *Catalogue {
	c, err := New(rules)
	if err != nil {
		panic("invalid built-in rule catalogue: " + err.Error())
	}
	return c
}
