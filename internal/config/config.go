// Package config loads table settings from HCL and coerces loose numeric
// input to documented defaults.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/taitally/internal/game"
	"github.com/lox/taitally/internal/rules"
)

// Config represents the complete configuration file
type Config struct {
	Game  *GameSettings `hcl:"game,block"`
	UI    *UISettings   `hcl:"ui,block"`
	Rules []RuleConfig  `hcl:"rule,block"`
}

// GameSettings holds the table stakes. Values are kept as text so that a
// missing or malformed number falls back to its default instead of failing.
type GameSettings struct {
	BaseFee        string `hcl:"base_fee,optional"`
	PointValue     string `hcl:"point_value,optional"`
	InitialBalance string `hcl:"initial_balance,optional"`
	TotalRounds    string `hcl:"total_rounds,optional"`
}

// UISettings contains front end settings
type UISettings struct {
	LogLevel string `hcl:"log_level,optional"`
	LogFile  string `hcl:"log_file,optional"`
	NoColor  bool   `hcl:"no_color,optional"`
}

// RuleConfig adds a house rule or overrides the tai of a standard one
type RuleConfig struct {
	ID   string `hcl:"id,label"`
	Name string `hcl:"name,optional"`
	Tai  int    `hcl:"tai"`
}

// Overrides are command line values applied over the file. Empty fields
// leave the file value alone.
type Overrides struct {
	BaseFee        string
	PointValue     string
	InitialBalance string
	TotalRounds    string
	LogLevel       string
	LogFile        string
}

const (
	defaultLogLevel = "info"
	defaultLogFile  = "taitally.log"
)

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Game: &GameSettings{
			BaseFee:        strconv.Itoa(game.DefaultBaseFee),
			PointValue:     strconv.Itoa(game.DefaultPointValue),
			InitialBalance: strconv.Itoa(game.DefaultInitialBalance),
			TotalRounds:    strconv.Itoa(game.DefaultTotalRounds),
		},
		UI: &UISettings{
			LogLevel: defaultLogLevel,
			LogFile:  defaultLogFile,
		},
	}
}

// Load reads configuration from an HCL file. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Game == nil {
		c.Game = Default().Game
	}
	if c.UI == nil {
		c.UI = Default().UI
	}
	if c.UI.LogLevel == "" {
		c.UI.LogLevel = defaultLogLevel
	}
	if c.UI.LogFile == "" {
		c.UI.LogFile = defaultLogFile
	}
}

// Apply copies the non-empty overrides into the configuration
func (c *Config) Apply(o Overrides) {
	c.applyDefaults()
	if o.BaseFee != "" {
		c.Game.BaseFee = o.BaseFee
	}
	if o.PointValue != "" {
		c.Game.PointValue = o.PointValue
	}
	if o.InitialBalance != "" {
		c.Game.InitialBalance = o.InitialBalance
	}
	if o.TotalRounds != "" {
		c.Game.TotalRounds = o.TotalRounds
	}
	if o.LogLevel != "" {
		c.UI.LogLevel = o.LogLevel
	}
	if o.LogFile != "" {
		c.UI.LogFile = o.LogFile
	}
}

// Settings coerces the game block into table settings
func (c *Config) Settings() game.Settings {
	g := c.Game
	if g == nil {
		g = &GameSettings{}
	}
	return game.Settings{
		BaseFee:        Coerce(g.BaseFee, game.DefaultBaseFee),
		PointValue:     Coerce(g.PointValue, game.DefaultPointValue),
		InitialBalance: Coerce(g.InitialBalance, game.DefaultInitialBalance),
		TotalRounds:    Coerce(g.TotalRounds, game.DefaultTotalRounds),
	}
}

// Catalogue builds the rule catalogue: the standard rules with any house
// rules from the file applied
func (c *Config) Catalogue() (*rules.Catalogue, error) {
	if len(c.Rules) == 0 {
		return rules.Standard(), nil
	}
	overrides := make([]rules.Rule, 0, len(c.Rules))
	for _, r := range c.Rules {
		overrides = append(overrides, rules.Rule{ID: r.ID, Name: r.Name, Tai: r.Tai})
	}
	catalogue, err := rules.Standard().Extend(overrides)
	if err != nil {
		return nil, fmt.Errorf("house rules: %w", err)
	}
	return catalogue, nil
}

// Validate checks the parts of the configuration that cannot be coerced
func (c *Config) Validate() error {
	if c.UI != nil {
		switch c.UI.LogLevel {
		case "", "debug", "info", "warn", "error":
		default:
			return fmt.Errorf("invalid log level: %s", c.UI.LogLevel)
		}
	}
	if _, err := c.Catalogue(); err != nil {
		return err
	}
	return nil
}

// LogLevel returns the configured level, info when unset
func (c *Config) LogLevel() log.Level {
	if c.UI == nil {
		return log.InfoLevel
	}
	switch c.UI.LogLevel {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// Coerce reads a positive whole number from loose text input. A leading
// integer is used even when followed by other characters ("300 chips");
// anything else, including zero and negatives, yields def.
func Coerce(raw string, def int) int {
	n, ok := leadingInt(raw)
	if !ok || n <= 0 {
		return def
	}
	return n
}

// CoercePoints reads a manual tai adjustment. Unreadable or negative input
// counts as zero.
func CoercePoints(raw string) int {
	n, ok := leadingInt(raw)
	if !ok || n < 0 {
		return 0
	}
	return n
}

func leadingInt(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
