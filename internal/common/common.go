package common

// Reward amounts of the roulette and the cumulative upper bound of their
// band over a 1..100 draw.
var RouletteRewards = []RouletteBand{
	{UpperBound: 40, Points: 100},
	{UpperBound: 70, Points: 300},
	{UpperBound: 90, Points: 500},
	{UpperBound: 100, Points: 1000},
}

type RouletteBand struct {
	UpperBound int
	Points     int64
}

const (
	MinProductNameLength        = 2
	MaxProductNameLength        = 100
	MinProductDescriptionLength = 1
	MaxProductDescriptionLength = 500
	MinProductPrice             = 1
	MaxProductPrice             = 1_000_000
	MaxProductStock             = 1_000_000
)

const (
	DefaultPageLimit = 50
	MaxPageLimit     = 200
)
