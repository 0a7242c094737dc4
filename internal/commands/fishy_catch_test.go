package commands

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRollCatch_ValuesInRange(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))

	seen := make(map[Catchable]bool)
	for range 5000 {
		c := RollCatch(r)
		seen[c.Type] = true

		v, ok := catchValues[c.Type]
		require.True(t, ok, "unknown catchable %q", c.Type)
		assert.GreaterOrEqual(t, float64(c.Amount), v.min, c.Type)
		assert.LessOrEqual(t, float64(c.Amount), v.max, c.Type)
	}

	// Common fish and the constant-chance types show up in a run this long.
	assert.True(t, seen[Anchovy])
	assert.True(t, seen[Seaweed])
	assert.True(t, seen[Algae])
}

func TestCatchValues_CoverEveryCatchable(t *testing.T) {
	all := append(append(append([]Catchable{}, scaledCatchables...), normalCatchables...), rareCatchables...)
	for _, c := range all {
		_, ok := catchValues[c]
		assert.True(t, ok, "missing value range for %q", c)
	}
	assert.Len(t, catchValues, len(all))
}

type fixedIntN int

func (n fixedIntN) IntN(int) int   { return int(n) }
func (fixedIntN) Float64() float64 { return 0.5 }

func TestRandomCatchable_Tiers(t *testing.T) {
	assert.Equal(t, Golden, randomCatchable(fixedIntN(0)))
	assert.Equal(t, RustySpoon, randomCatchable(fixedIntN(3)))
	assert.Equal(t, Seaweed, randomCatchable(fixedIntN(4)))
	assert.Equal(t, Algae, randomCatchable(fixedIntN(5)))
	assert.Contains(t, scaledCatchables, randomCatchable(fixedIntN(6)))
}

func TestSkewedRandom_Bounds(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	for range 1000 {
		v := skewedRandom(r, 10, 20, 3)
		assert.GreaterOrEqual(t, v, 10.0)
		assert.LessOrEqual(t, v, 20.0)
	}
}

func TestAddFishies(t *testing.T) {
	got, err := AddFishies("", 5)
	require.NoError(t, err)
	assert.Equal(t, "5", got)

	got, err = AddFishies("99999999999999999999999999", 1)
	require.NoError(t, err)
	assert.Equal(t, "100000000000000000000000000", got)

	_, err = AddFishies("12abc", 1)
	assert.Error(t, err)
}
