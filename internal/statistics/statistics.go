// Package statistics aggregates the results of simulated sessions.
package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/taitally/internal/game"
)

// SessionResult represents the outcome of a single simulated session
type SessionResult struct {
	Seed       int64 // RNG seed for this session (for replay)
	Hands      int   // Hands confirmed before game over
	MaxStreak  int   // Longest dealer streak seen
	SelfDraws  int
	DirectHits int
	DealerWins int // Hands won by the seat holding the deal
	Net        [game.NumSeats]int
	Leader     game.Seat // Top of the final standings
}

// Series accumulates a sample of values
type Series struct {
	N      int
	Sum    float64
	Sum2   float64   // Sum of squares for variance calculation
	Values []float64 // Kept for median/percentile calculation
}

// Add appends a value to the series
func (s *Series) Add(v float64) {
	s.N++
	s.Sum += v
	s.Sum2 += v * v
	s.Values = append(s.Values, v)
}

// Mean returns the arithmetic mean
func (s *Series) Mean() float64 {
	if s.N == 0 {
		return 0
	}
	return s.Sum / float64(s.N)
}

// Variance returns the sample variance
func (s *Series) Variance() float64 {
	if s.N < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.Sum2 - float64(s.N)*mean*mean) / float64(s.N-1)
}

// StdDev returns the sample standard deviation
func (s *Series) StdDev() float64 {
	return math.Sqrt(math.Max(s.Variance(), 0))
}

// StdError returns the standard error of the mean
func (s *Series) StdError() float64 {
	if s.N == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.N))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Series) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the median value
func (s *Series) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Series) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Statistics tracks results across simulated sessions
type Statistics struct {
	Sessions int

	HandsPerSession Series
	LeaderNet       Series // What the session leader finished up by
	Seats           [game.NumSeats]Series

	Hands      int
	SelfDraws  int
	DirectHits int
	DealerWins int
	MaxStreak  int
	LeaderWins [game.NumSeats]int
}

// Add incorporates a session result into the statistics
func (s *Statistics) Add(result SessionResult) {
	s.Sessions++
	s.Hands += result.Hands
	s.SelfDraws += result.SelfDraws
	s.DirectHits += result.DirectHits
	s.DealerWins += result.DealerWins
	s.HandsPerSession.Add(float64(result.Hands))

	if result.MaxStreak > s.MaxStreak {
		s.MaxStreak = result.MaxStreak
	}

	for seat, net := range result.Net {
		s.Seats[seat].Add(float64(net))
	}
	if result.Leader.Valid() {
		s.LeaderWins[result.Leader]++
		s.LeaderNet.Add(float64(result.Net[result.Leader]))
	}
}

// SelfDrawRate returns the share of hands won by self-draw
func (s *Statistics) SelfDrawRate() float64 {
	if s.Hands == 0 {
		return 0
	}
	return float64(s.SelfDraws) / float64(s.Hands)
}

// IsZeroSum checks that the seats' winnings cancel out across all sessions
func (s *Statistics) IsZeroSum() bool {
	total := 0.0
	for _, seat := range s.Seats {
		total += seat.Sum
	}
	return math.Abs(total) <= 1e-6
}

// Validate performs consistency checks on the aggregated data
func (s *Statistics) Validate() error {
	if s.Sessions <= 0 {
		return fmt.Errorf("invalid sessions count: %d", s.Sessions)
	}

	if !s.IsZeroSum() {
		total := 0.0
		for _, seat := range s.Seats {
			total += seat.Sum
		}
		return fmt.Errorf("seat totals do not cancel: %.0f", total)
	}

	if s.SelfDraws+s.DirectHits != s.Hands {
		return fmt.Errorf("win kinds (%d self-draw, %d direct) do not match hands (%d)",
			s.SelfDraws, s.DirectHits, s.Hands)
	}

	if s.DealerWins > s.Hands {
		return fmt.Errorf("dealer wins (%d) exceed total hands (%d)", s.DealerWins, s.Hands)
	}

	for seat, series := range s.Seats {
		if series.N != s.Sessions {
			return fmt.Errorf("seat %d has %d results for %d sessions", seat, series.N, s.Sessions)
		}
	}

	return nil
}
