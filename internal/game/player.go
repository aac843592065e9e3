package game

// Player is one seat's chip account
type Player struct {
	Seat    Seat
	Name    string
	Balance int
}
