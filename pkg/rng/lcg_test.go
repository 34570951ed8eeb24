package rng_test

import (
	"testing"

	"github.com/sherine-k/qnetsim/pkg/rng"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestFirstDrawsWithDefaults(t *testing.T) {
	chk := require.New(t)

	g := rng.NewDefault()
	chk.Equal(float64(1022226848)/float64(1<<32), g.Next01())
	chk.InDelta(0.2380057, float64(1022226848)/float64(1<<32), 1e-7)
	chk.Equal(float64(3144284287)/float64(1<<32), g.Next01())
	chk.Equal(float64(1043999698)/float64(1<<32), g.Next01())
	chk.EqualValues(3, g.Used())
}

func TestUniformScalesDraw(t *testing.T) {
	chk := require.New(t)

	a, b := rng.NewDefault(), rng.NewDefault()
	u := a.Next01()
	chk.Equal(3+(4-3)*u, b.Uniform(3, 4))
	chk.EqualValues(1, b.Used())
}

func TestZeroModulusFallsBack(t *testing.T) {
	g := rng.New(rng.Params{Seed: 5, Multiplier: rng.DefaultMultiplier, Increment: rng.DefaultIncrement})
	require.Equal(t, rng.DefaultModulus, g.Params().Modulus)
	require.Equal(t, rng.NewDefault().Next01(), g.Next01())
}

func TestDrawsStayInUnitInterval(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := rng.Params{
			Seed:       rapid.Uint64().Draw(t, "seed"),
			Multiplier: rapid.Uint64Range(1, 1<<40).Draw(t, "a"),
			Increment:  rapid.Uint64().Draw(t, "c"),
			Modulus:    rapid.Uint64Range(2, 1<<53).Draw(t, "m"),
		}
		g := rng.New(p)
		n := rapid.IntRange(1, 200).Draw(t, "n")
		for i := 0; i < n; i++ {
			u := g.Next01()
			if u < 0 || u >= 1 {
				t.Fatalf("draw %v outside [0,1)", u)
			}
		}
		if g.Used() != int64(n) {
			t.Fatalf("used %d, want %d", g.Used(), n)
		}
	})
}

func TestSameParamsSameSequence(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		seed := rapid.Uint64Range(0, 1<<32-1).Draw(t, "seed")
		p := rng.DefaultParams()
		p.Seed = seed
		a, b := rng.New(p), rng.New(p)
		for i := 0; i < 50; i++ {
			if a.Next01() != b.Next01() {
				t.Fatalf("sequences diverged for seed %d", seed)
			}
		}
	})
}
