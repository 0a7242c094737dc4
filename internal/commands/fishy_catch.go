package commands

import (
	"fmt"
	"math"
	"math/big"
	"math/rand/v2"
)

// Catchable is something that can be caught with the fishy command.
type Catchable string

const (
	Anchovy        Catchable = "anchovy"
	Salmon         Catchable = "salmon"
	AtlanticSalmon Catchable = "atlantic salmon"
	Tuna           Catchable = "tuna"
	Halibut        Catchable = "halibut"
	SeaBass        Catchable = "sea bass"
	YellowfinTuna  Catchable = "yellow tuna"
	PufferFish     Catchable = "puffer"
	WildKingSalmon Catchable = "wild king salmon"
	SwordFish      Catchable = "swordfish"
	BluefinTuna    Catchable = "bluefin tuna"

	Seaweed Catchable = "seaweed"
	Algae   Catchable = "algae"

	Golden     Catchable = "golden"
	Rotten     Catchable = "rotten"
	MrsPuff    Catchable = "Mrs. Puff"
	RustySpoon Catchable = "rusty spoon"
)

// Scaled catchables are picked from a skewed distribution, so earlier entries
// are more common and worth less.
var scaledCatchables = []Catchable{
	Anchovy, Salmon, AtlanticSalmon, Tuna, Halibut, SeaBass,
	YellowfinTuna, PufferFish, WildKingSalmon, SwordFish, BluefinTuna,
}

// Normal catchables have a constant chance each.
var normalCatchables = []Catchable{Seaweed, Algae}

// Rare catchables have a 1 in 101 chance each.
var rareCatchables = []Catchable{Golden, Rotten, MrsPuff, RustySpoon}

// valueRange is the distribution of a catchable's worth.
type valueRange struct {
	min, max, skew float64
}

var catchValues = map[Catchable]valueRange{
	Anchovy:        {5, 10, 3},
	Salmon:         {15, 30, 3},
	Halibut:        {10, 30, 3},
	AtlanticSalmon: {20, 25, 3},
	Tuna:           {30, 40, 3},
	SeaBass:        {40, 50, 3},
	YellowfinTuna:  {40, 50, 3},
	PufferFish:     {20, 30, 3},
	WildKingSalmon: {20, 30, 3},
	SwordFish:      {40, 60, 3},
	BluefinTuna:    {40, 70, 3},
	Seaweed:        {8, 15, 1},
	Algae:          {1, 5, 1},
	Golden:         {100, 300, 3},
	Rotten:         {1, 5, 3},
	MrsPuff:        {50, 80, 3},
	RustySpoon:     {1, 2, 1},
}

// Random is the randomness source of a roll. *rand.Rand satisfies it.
type Random interface {
	IntN(n int) int
	Float64() float64
}

// globalRandom uses the goroutine-safe top level math/rand/v2 functions.
type globalRandom struct{}

func (globalRandom) IntN(n int) int   { return rand.IntN(n) }
func (globalRandom) Float64() float64 { return rand.Float64() }

// Catch is the result of a single roll.
type Catch struct {
	Type   Catchable
	Amount int64
}

// RollCatch picks a catchable and its worth.
func RollCatch(r Random) Catch {
	typ := randomCatchable(r)
	v := catchValues[typ]

	return Catch{
		Type:   typ,
		Amount: int64(math.Floor(skewedRandom(r, v.min, v.max, v.skew))),
	}
}

func randomCatchable(r Random) Catchable {
	n := r.IntN(101)
	if n < len(rareCatchables) {
		return rareCatchables[n]
	}

	if n < len(rareCatchables)+len(normalCatchables) {
		return normalCatchables[n%len(normalCatchables)]
	}

	idx := int(skewedRandom(r, 0, float64(len(scaledCatchables)), 3))

	return scaledCatchables[min(idx, len(scaledCatchables)-1)]
}

// skewedRandom draws from a normal distribution squeezed into [0, 1], raised
// to skew and stretched over [lo, hi]. A skew above 1 favors lo.
func skewedRandom(r Random, lo, hi, skew float64) float64 {
	for {
		u, v := 0.0, 0.0
		for u == 0 {
			u = r.Float64()
		}
		for v == 0 {
			v = r.Float64()
		}

		num := math.Sqrt(-2.0*math.Log(u))*math.Cos(2.0*math.Pi*v)/10.0 + 0.5
		if num < 0 || num > 1 {
			continue
		}

		return math.Pow(num, skew)*(hi-lo) + lo
	}
}

// AddFishies adds caught to a decimal fishy count. An empty count is zero.
func AddFishies(current string, caught int64) (string, error) {
	total := new(big.Int)
	if current != "" {
		if _, ok := total.SetString(current, 10); !ok {
			return "", fmt.Errorf("invalid fishy count %q", current)
		}
	}

	return total.Add(total, big.NewInt(caught)).String(), nil
}
