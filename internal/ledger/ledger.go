// Package ledger keeps the in-memory record of confirmed hands for a session.
package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/lox/taitally/internal/game"
)

// Entry is one confirmed hand
type Entry struct {
	SessionID  string
	HandNumber int
	Time       time.Time

	// Table position the hand was played at
	Round  int
	Wind   game.Seat
	Dealer game.Seat
	Streak int

	Transaction game.Transaction
	Balances    [game.NumSeats]int
}

// NewEntry builds the ledger entry for a settlement event
func NewEntry(e game.SettlementEvent) Entry {
	entry := Entry{
		SessionID:   e.SessionID,
		HandNumber:  e.HandNumber,
		Time:        e.Timestamp(),
		Round:       e.Before.Round,
		Wind:        e.Before.RoundWind(),
		Dealer:      e.Before.Dealer,
		Streak:      e.Before.Streak,
		Transaction: e.Transaction,
	}
	for i, p := range e.After.Players {
		entry.Balances[i] = p.Balance
	}
	return entry
}

// Ledger records settlements published on a session's event bus. A new
// session start clears it.
type Ledger struct {
	sessionID string
	entries   []Entry
	rotations []string
	final     []game.Standing
}

// New creates an empty ledger
func New() *Ledger {
	return &Ledger{}
}

// Attach creates a ledger subscribed to the session's events
func Attach(session *game.Session) *Ledger {
	l := New()
	l.sessionID = session.ID()
	session.EventBus().Subscribe(l)
	return l
}

// OnEvent implements game.EventSubscriber
func (l *Ledger) OnEvent(event game.GameEvent) {
	switch e := event.(type) {
	case game.SessionStartEvent:
		l.sessionID = e.SessionID
		l.entries = nil
		l.rotations = nil
		l.final = nil
	case game.SettlementEvent:
		l.entries = append(l.entries, NewEntry(e))
	case game.DealerRotatedEvent:
		note := fmt.Sprintf("deal passes %s -> %s", e.From, e.To)
		if e.Manual {
			note += " (manual)"
		}
		l.rotations = append(l.rotations, note)
	case game.GameOverEvent:
		l.final = e.Standings
	}
}

// SessionID returns the session the entries belong to
func (l *Ledger) SessionID() string {
	return l.sessionID
}

// Entries returns a copy of the recorded hands in order
func (l *Ledger) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of recorded hands
func (l *Ledger) Len() int {
	return len(l.entries)
}

// Rotations returns the dealer changes seen so far
func (l *Ledger) Rotations() []string {
	return append([]string(nil), l.rotations...)
}

// Final returns the standings published at game over, or nil
func (l *Ledger) Final() []game.Standing {
	return l.final
}

// Net totals what a seat has won or lost across the recorded hands
func (l *Ledger) Net(seat game.Seat) int {
	net := 0
	for _, e := range l.entries {
		net += Delta(e.Transaction, seat)
	}
	return net
}

// Wins counts the hands a seat has won
func (l *Ledger) Wins(seat game.Seat) int {
	wins := 0
	for _, e := range l.entries {
		if e.Transaction.Winner == seat {
			wins++
		}
	}
	return wins
}

// Delta is the balance change a transaction causes for seat
func Delta(txn game.Transaction, seat game.Seat) int {
	if seat == txn.Winner {
		return txn.Total()
	}
	for _, payer := range txn.Payers() {
		if payer == seat {
			return -txn.Amount
		}
	}
	return 0
}

// Line renders a single entry on one line
func (e Entry) Line() string {
	txn := e.Transaction

	var who string
	if txn.Kind == game.SelfDraw {
		who = fmt.Sprintf("%s self-draws", txn.Winner)
	} else {
		who = fmt.Sprintf("%s wins off %s", txn.Winner, txn.Loser)
	}

	tai := fmt.Sprintf("%d tai", txn.BasePoints)
	if txn.DealerBonus > 0 {
		tai = fmt.Sprintf("%d+%d tai", txn.BasePoints, txn.DealerBonus)
	}

	return fmt.Sprintf("#%d %s: %s, %s, $%d x%d = $%d",
		e.HandNumber, e.Wind.Glyph(), who, tai, txn.Amount, len(txn.Payers()), txn.Total())
}

// Summary renders the hand-by-hand record, dealer changes, running balances
// and, once the game is over, the final standings
func (l *Ledger) Summary() string {
	var b strings.Builder

	fmt.Fprintf(&b, "*** SESSION %s ***\n", l.sessionID)
	if len(l.entries) == 0 {
		b.WriteString("No hands recorded\n")
	}

	for _, e := range l.entries {
		b.WriteString(e.Line())
		b.WriteString("\n")

		parts := make([]string, 0, len(e.Transaction.Rules)+1)
		for _, r := range e.Transaction.Rules {
			parts = append(parts, fmt.Sprintf("%s %d", r.ID, r.Tai))
		}
		if e.Transaction.ManualExtra > 0 {
			parts = append(parts, fmt.Sprintf("extra %d", e.Transaction.ManualExtra))
		}
		if len(parts) > 0 {
			fmt.Fprintf(&b, "   rules: %s\n", strings.Join(parts, ", "))
		}
	}

	if len(l.rotations) > 0 {
		b.WriteString("*** DEALER ***\n")
		for _, note := range l.rotations {
			b.WriteString(note)
			b.WriteString("\n")
		}
	}

	if len(l.entries) > 0 {
		b.WriteString("*** BALANCES ***\n")
		last := l.entries[len(l.entries)-1]
		for _, seat := range game.Seats() {
			fmt.Fprintf(&b, "%-5s $%d (%+d, %d wins)\n", seat, last.Balances[seat], l.Net(seat), l.Wins(seat))
		}
	}

	if l.final != nil {
		b.WriteString("*** FINAL ***\n")
		for _, s := range l.final {
			fmt.Fprintf(&b, "%d. %s $%d (%+d)\n", s.Rank, s.Name, s.Balance, s.Net)
		}
	}
	return b.String()
}
