// Package tui is the terminal scoreboard: a Bubble Tea model that drives a
// game.Session from typed commands.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/taitally/internal/game"
	"github.com/lox/taitally/internal/ledger"
)

const sidebarWidth = 30

// Model is the Bubble Tea model for the scoreboard
type Model struct {
	session *game.Session
	ledger  *ledger.Ledger
	logger  *log.Logger

	// UI components
	logViewport  viewport.Model
	commandInput textinput.Model

	// State
	gameLog     []string
	status      string
	statusError bool
	quitting    bool
	focusedPane int // 0 = log, 1 = input

	// Dimensions
	width       int
	height      int
	initialized bool
}

// NewModel creates a scoreboard for the session. The model subscribes to the
// session's events and keeps its own ledger.
func NewModel(session *game.Session, logger *log.Logger) *Model {
	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Placeholder = "hu south from east pure +1, next, lian, end, help"
	ti.Focus()
	ti.CharLimit = 120
	ti.Width = 100
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))
	ti.Prompt = "> "

	m := &Model{
		session:      session,
		ledger:       ledger.Attach(session),
		logger:       logger.WithPrefix("tui"),
		logViewport:  vp,
		commandInput: ti,
		focusedPane:  1,
	}
	session.EventBus().Subscribe(game.EventSubscriberFunc(m.onEvent))
	m.addLogEntry(HeaderStyle.Render(fmt.Sprintf(" Session %s ", session.ID())))
	return m
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "tab":
			if m.focusedPane == 0 {
				m.focusedPane = 1
				m.commandInput.Focus()
			} else {
				m.focusedPane = 0
				m.commandInput.Blur()
			}
		case "enter":
			if m.focusedPane == 1 {
				input := strings.TrimSpace(m.commandInput.Value())
				m.commandInput.SetValue("")
				if cmd := m.Execute(input); cmd != nil {
					return m, cmd
				}
			}
		case "up", "k":
			if m.focusedPane == 0 {
				m.logViewport.ScrollUp(1)
			}
		case "down", "j":
			if m.focusedPane == 0 {
				m.logViewport.ScrollDown(1)
			}
		case "pgup":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageUp()
			}
		case "pgdown":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageDown()
			}
		case "home":
			if m.focusedPane == 0 {
				m.logViewport.GotoTop()
			}
		case "end":
			if m.focusedPane == 0 {
				m.logViewport.GotoBottom()
			}
		}
	}

	var cmd tea.Cmd
	if m.focusedPane == 1 {
		m.commandInput, cmd = m.commandInput.Update(msg)
		cmds = append(cmds, cmd)
	}
	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// Execute runs one line of operator input against the session. It returns
// tea.Quit when the operator leaves.
func (m *Model) Execute(input string) tea.Cmd {
	m.status = ""
	m.statusError = false

	command, err := ParseCommand(input)
	if errors.Is(err, ErrEmptyCommand) {
		return nil
	}
	if err != nil {
		m.setError(err)
		return nil
	}
	m.logger.Debug("Executing command", "input", input)

	switch command.Kind {
	case CmdHu:
		if err := m.session.Catalogue().Check(command.Claim.RuleIDs); err != nil {
			m.setError(err)
			return nil
		}
		txn, err := m.session.Propose(command.Claim)
		if err != nil {
			m.setError(err)
			return nil
		}
		m.status = fmt.Sprintf("%d tai, $%d. yes to confirm, no to cancel", txn.FinalPoints, txn.Total())
	case CmdConfirm:
		outcome, err := m.session.Confirm()
		if err != nil {
			m.setError(err)
			return nil
		}
		m.logger.Info("Hand confirmed", "hand", outcome.HandNumber, "winner", outcome.Transaction.Winner, "amount", outcome.Transaction.Amount)
	case CmdCancel:
		if m.session.Cancel() {
			m.status = "Settlement cancelled"
		} else {
			m.setError(game.ErrNoPendingTransaction)
		}
	case CmdNext:
		if err := m.session.NextDealer(); err != nil {
			m.setError(err)
		}
	case CmdLian:
		if err := m.session.AddStreak(); err != nil {
			m.setError(err)
		}
	case CmdEnd:
		m.session.Conclude()
	case CmdRules:
		for _, r := range m.session.Catalogue().All() {
			m.addLogEntry(InfoStyle.Render(fmt.Sprintf("  %-10s %2d  %s", r.ID, r.Tai, r.Name)))
		}
	case CmdNew:
		m.session.Reset()
	case CmdHelp:
		m.addLogEntry(InfoStyle.Render(helpText))
	case CmdQuit:
		m.quitting = true
		return tea.Quit
	}
	return nil
}

func (m *Model) setError(err error) {
	m.status = err.Error()
	m.statusError = true
	m.logger.Debug("Command rejected", "error", err)
}

// onEvent turns session events into log lines
func (m *Model) onEvent(event game.GameEvent) {
	switch e := event.(type) {
	case game.SessionStartEvent:
		m.ClearLog()
		m.addLogEntry(HeaderStyle.Render(fmt.Sprintf(" Session %s ", e.SessionID)))
	case game.SettlementEvent:
		entry := ledger.NewEntry(e)
		m.addLogEntry(SeatStyle(e.Transaction.Winner).Render(entry.Line()))
	case game.DealerRetainedEvent:
		m.addLogEntry(DealerStyle.Render(fmt.Sprintf("%s keeps the deal, streak %d", e.Dealer, e.Streak)))
	case game.StreakAddedEvent:
		m.addLogEntry(DealerStyle.Render(fmt.Sprintf("%s streak raised to %d", e.Dealer, e.Streak)))
	case game.DealerRotatedEvent:
		line := fmt.Sprintf("Deal passes %s -> %s", e.From, e.To)
		if e.NewRound {
			line += fmt.Sprintf(", %s round begins", game.Seat((e.Round-1)%game.NumSeats))
		}
		m.addLogEntry(DealerStyle.Render(line))
	case game.GameOverEvent:
		m.addLogEntry(HeaderStyle.Render(" Final standings "))
		for _, s := range e.Standings {
			m.addLogEntry(SeatStyle(s.Seat).Render(fmt.Sprintf("%d. %-5s $%d (%+d)", s.Rank, s.Name, s.Balance, s.Net)))
		}
	}
}

// View renders the scoreboard
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	actionContent := m.renderActionPane()
	actionHeight := lipgloss.Height(actionContent)

	actionStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#04B575")).
		Width(max(m.width-2, 1)).
		Height(max(actionHeight, 1))
	actionPane := actionStyle.Render(actionContent)

	paneHeight := max(m.height-actionHeight-4, 1)

	sidebarPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(sidebarWidth).
		Height(paneHeight).
		Render(m.renderSidebarPane())

	logWidth := max(m.width-sidebarWidth-4, 1)
	m.logViewport.Width = logWidth
	m.logViewport.Height = paneHeight
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	if !m.initialized && logWidth > 1 && paneHeight > 1 {
		m.logViewport.GotoBottom()
		m.initialized = true
	}

	logStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(logWidth).
		Height(paneHeight)
	if m.focusedPane == 0 {
		logStyle = logStyle.BorderForeground(lipgloss.Color("#04B575"))
	}
	logPane := logStyle.Render(m.logViewport.View())

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, logPane, sidebarPane)
	return lipgloss.JoinVertical(lipgloss.Top, topRow, actionPane)
}

// renderSidebarPane shows the round, the seats and their balances
func (m *Model) renderSidebarPane() string {
	state := m.session.State()
	var content strings.Builder

	content.WriteString(WarningStyle.Render(roundLabel(state)))
	content.WriteString("\n")
	content.WriteString(InfoStyle.Render(fmt.Sprintf("Hands played: %d", m.session.HandsPlayed())))
	content.WriteString("\n\n")

	for _, p := range state.Players {
		line := fmt.Sprintf("%s %-5s $%d", p.Seat.Glyph(), p.Name, p.Balance)
		content.WriteString(SeatStyle(p.Seat).Render(line))
		if p.Seat == state.Dealer && !state.IsOver() {
			content.WriteString(" ")
			content.WriteString(DealerStyle.Render(fmt.Sprintf("莊x%d", state.Streak)))
		}
		content.WriteString("\n")
		content.WriteString(InfoStyle.Render(fmt.Sprintf("    %+d", p.Balance-state.InitialBalance)))
		content.WriteString("\n")
	}

	return content.String()
}

// roundLabel describes the prevailing wind, e.g. "East round (1/4)"
func roundLabel(state game.State) string {
	if state.IsOver() {
		return "Game over"
	}
	return fmt.Sprintf("%s round (%d/%d)", state.RoundWind(), state.Round, state.TotalRounds)
}

// renderActionPane shows the pending settlement, status line and input
func (m *Model) renderActionPane() string {
	var content strings.Builder

	if txn, ok := m.session.Pending(); ok {
		content.WriteString(renderPending(txn))
		content.WriteString("\n")
	}

	if m.status != "" {
		if m.statusError {
			content.WriteString(ErrorStyle.Render(m.status))
		} else {
			content.WriteString(SuccessStyle.Render(m.status))
		}
		content.WriteString("\n")
	}

	content.WriteString(m.commandInput.View())
	content.WriteString("\n")

	if m.focusedPane == 0 {
		content.WriteString(InfoStyle.Render("Log focused: ↑↓ scroll, PgUp/PgDn half page, Home/End, Tab to input"))
	} else {
		content.WriteString(InfoStyle.Render("Tab to scroll log • help for commands • Ctrl+C to quit"))
	}
	return content.String()
}

// renderPending describes a proposed settlement before it is confirmed
func renderPending(txn game.Transaction) string {
	var parts []string
	for _, r := range txn.Rules {
		parts = append(parts, fmt.Sprintf("%s %d", r.ID, r.Tai))
	}
	if txn.ManualExtra > 0 {
		parts = append(parts, fmt.Sprintf("extra %d", txn.ManualExtra))
	}
	if len(parts) == 0 {
		parts = append(parts, "no scoring rules")
	}

	var who string
	if txn.Kind == game.SelfDraw {
		who = fmt.Sprintf("%s self-draw", txn.Winner)
	} else {
		who = fmt.Sprintf("%s wins off %s", txn.Winner, txn.Loser)
	}

	lines := []string{
		PendingStyle.Render("Pending: " + who),
		fmt.Sprintf("  %s = %d tai", strings.Join(parts, ", "), txn.BasePoints),
	}
	if txn.DealerInvolved {
		lines = append(lines, fmt.Sprintf("  dealer bonus %d, total %d tai", txn.DealerBonus, txn.FinalPoints))
	}
	lines = append(lines, fmt.Sprintf("  $%d x%d = $%d", txn.Amount, len(txn.Payers()), txn.Total()))
	return strings.Join(lines, "\n")
}

// addLogEntry appends a line and keeps the newest line visible
func (m *Model) addLogEntry(entry string) {
	m.gameLog = append(m.gameLog, entry)
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// ClearLog clears the game log
func (m *Model) ClearLog() {
	m.gameLog = nil
	m.logViewport.SetContent("")
}

// Log returns a copy of the log lines
func (m *Model) Log() []string {
	return append([]string(nil), m.gameLog...)
}

// Status returns the status line and whether it reports an error
func (m *Model) Status() (string, bool) {
	return m.status, m.statusError
}

// Ledger returns the hands recorded for the current session
func (m *Model) Ledger() *ledger.Ledger {
	return m.ledger
}
