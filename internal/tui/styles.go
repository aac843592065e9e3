package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/lox/taitally/internal/game"
)

// Static styles for content elements
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true)

	PendingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	DealerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)

// seatStyles gives each seat a fixed colour so it can be followed in the log
var seatStyles = [game.NumSeats]lipgloss.Style{
	lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#4ECDC4")).Bold(true),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#FFEAA7")).Bold(true),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#A29BFE")).Bold(true),
}

// SeatStyle returns the display style for a seat
func SeatStyle(seat game.Seat) lipgloss.Style {
	if !seat.Valid() {
		return InfoStyle
	}
	return seatStyles[seat]
}
