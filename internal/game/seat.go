package game

import (
	"fmt"
	"strconv"
	"strings"
)

// Seat is a fixed position at the table, numbered counter-clockwise from East
type Seat int

const (
	East Seat = iota
	South
	West
	North
)

// NoSeat marks an absent seat, e.g. the loser of a self-drawn hand
const NoSeat Seat = -1

// NumSeats is the number of players at a table
const NumSeats = 4

var (
	seatNames  = [NumSeats]string{"East", "South", "West", "North"}
	seatGlyphs = [NumSeats]string{"東", "南", "西", "北"}
)

// Seats lists every seat in rotation order
func Seats() []Seat {
	return []Seat{East, South, West, North}
}

// Valid reports whether s is one of the four table seats
func (s Seat) Valid() bool {
	return s >= East && s <= North
}

// Next returns the seat that follows s in dealer rotation
func (s Seat) Next() Seat {
	return (s + 1) % NumSeats
}

// Glyph returns the wind character for the seat
func (s Seat) Glyph() string {
	if !s.Valid() {
		return "?"
	}
	return seatGlyphs[s]
}

func (s Seat) String() string {
	if s == NoSeat {
		return "none"
	}
	if !s.Valid() {
		return fmt.Sprintf("Seat(%d)", int(s))
	}
	return seatNames[s]
}

// ParseSeat accepts a seat index, an English compass name or its initial,
// or the wind glyph.
func ParseSeat(raw string) (Seat, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if v == "" {
		return NoSeat, fmt.Errorf("%w: empty", ErrInvalidSeat)
	}
	if n, err := strconv.Atoi(v); err == nil {
		s := Seat(n)
		if !s.Valid() {
			return NoSeat, fmt.Errorf("%w: %d", ErrInvalidSeat, n)
		}
		return s, nil
	}
	for i := range seatNames {
		name := strings.ToLower(seatNames[i])
		if v == name || v == name[:1] || v == seatGlyphs[i] {
			return Seat(i), nil
		}
	}
	return NoSeat, fmt.Errorf("%w: %q", ErrInvalidSeat, raw)
}
