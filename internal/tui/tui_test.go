package tui

import (
	"io"
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/taitally/internal/game"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func newTestModel(t *testing.T, settings game.Settings) (*Model, *game.Session) {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
	clock := quartz.NewMock(t)
	clock.Set(time.Date(2026, 3, 1, 21, 0, 0, 0, time.UTC))

	session := game.NewSession(game.SessionConfig{
		Settings: settings,
		Logger:   logger,
		Clock:    clock,
	})
	return NewModel(session, logger), session
}

func logText(m *Model) string {
	return strings.Join(m.Log(), "\n")
}

func TestModelProposeAndConfirm(t *testing.T) {
	m, session := newTestModel(t, game.DefaultSettings())

	assert.Nil(t, m.Execute("hu south zimo pinghu"))
	status, isErr := m.Status()
	assert.False(t, isErr)
	assert.Contains(t, status, "3 tai, $1800")

	pending, ok := session.Pending()
	require.True(t, ok)
	assert.Equal(t, 600, pending.Amount)

	assert.Nil(t, m.Execute("yes"))
	_, ok = session.Pending()
	assert.False(t, ok)

	assert.Equal(t, 21800, session.State().Balance(game.South))
	assert.Equal(t, game.South, session.State().Dealer)
	assert.Equal(t, 1, m.Ledger().Len())

	text := logText(m)
	assert.Contains(t, text, "#1 東: South self-draws, 3 tai, $600 x3 = $1800")
	assert.Contains(t, text, "Deal passes East -> South")
}

func TestModelCancel(t *testing.T) {
	m, session := newTestModel(t, game.DefaultSettings())

	m.Execute("hu west from north")
	m.Execute("no")

	status, isErr := m.Status()
	assert.False(t, isErr)
	assert.Equal(t, "Settlement cancelled", status)
	assert.Equal(t, game.NewState(game.DefaultSettings()).Players, session.State().Players)

	m.Execute("cancel")
	_, isErr = m.Status()
	assert.True(t, isErr)
}

func TestModelReportsErrors(t *testing.T) {
	m, session := newTestModel(t, game.DefaultSettings())

	m.Execute("hu east from east")
	status, isErr := m.Status()
	assert.True(t, isErr)
	assert.Contains(t, status, "winner and loser")

	m.Execute("raise 10")
	status, isErr = m.Status()
	assert.True(t, isErr)
	assert.Contains(t, status, "unknown command")

	m.Execute("yes")
	_, isErr = m.Status()
	assert.True(t, isErr)

	// empty input clears the status and does nothing else
	m.Execute("")
	status, isErr = m.Status()
	assert.Empty(t, status)
	assert.False(t, isErr)
	assert.Zero(t, session.HandsPlayed())
}

func TestModelManualOverrides(t *testing.T) {
	m, session := newTestModel(t, game.DefaultSettings())

	m.Execute("lian")
	assert.Equal(t, 2, session.State().Streak)
	assert.Contains(t, logText(m), "East streak raised to 2")

	m.Execute("next")
	assert.Equal(t, game.South, session.State().Dealer)
	assert.Equal(t, 1, session.State().Streak)
}

func TestModelEndAndNew(t *testing.T) {
	m, session := newTestModel(t, game.DefaultSettings())
	firstID := session.ID()

	m.Execute("hu north from east big3")
	m.Execute("y")
	m.Execute("end")

	assert.True(t, session.State().IsOver())
	text := logText(m)
	assert.Contains(t, text, "Final standings")
	assert.Contains(t, text, "1. North $21400 (+1400)")

	m.Execute("hu north")
	_, isErr := m.Status()
	assert.True(t, isErr)

	m.Execute("new")
	assert.NotEqual(t, firstID, session.ID())
	assert.False(t, session.State().IsOver())
	assert.Zero(t, m.Ledger().Len())
	assert.NotContains(t, logText(m), "Final standings")
	assert.Contains(t, logText(m), session.ID())
}

func TestModelRulesAndHelp(t *testing.T) {
	m, _ := newTestModel(t, game.DefaultSettings())

	m.Execute("rules")
	text := logText(m)
	assert.Contains(t, text, "pinghu")
	assert.Contains(t, text, "big4")

	m.Execute("help")
	assert.Contains(t, logText(m), "hu <seat> [from <seat>]")
}

func TestModelQuit(t *testing.T) {
	m, _ := newTestModel(t, game.DefaultSettings())

	cmd := m.Execute("quit")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}

func TestModelView(t *testing.T) {
	settings := game.DefaultSettings()
	settings.TotalRounds = 2
	m, _ := newTestModel(t, settings)

	assert.Equal(t, "Loading...", m.View())

	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m.Execute("hu east from south pure +1")

	view := m.View()
	assert.Contains(t, view, "East round (1/2)")
	assert.Contains(t, view, "莊x1")
	assert.Contains(t, view, "Pending: East wins off South")
	assert.Contains(t, view, "pure 8, extra 1 = 9 tai")
	assert.Contains(t, view, "dealer bonus 3, total 12 tai")
	assert.Contains(t, view, "$1500 x1 = $1500")
}

func TestRoundLabel(t *testing.T) {
	state := game.NewState(game.DefaultSettings())
	assert.Equal(t, "East round (1/4)", roundLabel(state))

	state.Round = 3
	assert.Equal(t, "West round (3/4)", roundLabel(state))

	assert.Equal(t, "Game over", roundLabel(game.Conclude(state)))
}

func TestModelRejectsUnknownRule(t *testing.T) {
	m, session := newTestModel(t, game.DefaultSettings())

	for _, input := range []string{"hu south from west prue", "hu south from west 5"} {
		m.Execute(input)

		status, isErr := m.Status()
		assert.True(t, isErr, input)
		assert.Contains(t, status, "unknown rule", input)

		_, pending := session.Pending()
		assert.False(t, pending, input)
	}

	m.Execute("yes")
	assert.Zero(t, session.HandsPlayed())
	assert.Equal(t, 20000, session.State().Balance(game.West))
}
