package game

import "sort"

// Standing is a seat's final placing
type Standing struct {
	Rank    int
	Seat    Seat
	Name    string
	Balance int
	Net     int
}

// Standings ranks the players by descending balance. Ties keep seat order.
func Standings(state State) []Standing {
	standings := make([]Standing, 0, NumSeats)
	for _, p := range state.Players {
		standings = append(standings, Standing{
			Seat:    p.Seat,
			Name:    p.Name,
			Balance: p.Balance,
			Net:     p.Balance - state.InitialBalance,
		})
	}
	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Balance > standings[j].Balance
	})
	for i := range standings {
		standings[i].Rank = i + 1
	}
	return standings
}
