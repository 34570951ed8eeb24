package rng

import "math/bits"

// Default generator parameters. Changing any of them changes every
// simulated trajectory.
const (
	DefaultSeed       uint64 = 5
	DefaultMultiplier uint64 = 1_664_525
	DefaultIncrement  uint64 = 1_013_904_223
	DefaultModulus    uint64 = 1 << 32
)

// Params describes a linear congruential generator x <- (a*x + c) mod m.
type Params struct {
	Seed       uint64
	Multiplier uint64
	Increment  uint64
	Modulus    uint64
}

// DefaultParams returns the parameters used when no override is configured.
func DefaultParams() Params {
	return Params{
		Seed:       DefaultSeed,
		Multiplier: DefaultMultiplier,
		Increment:  DefaultIncrement,
		Modulus:    DefaultModulus,
	}
}

// LCG is a deterministic source of reals in [0,1) that counts its draws.
type LCG struct {
	params Params
	x      uint64
	used   int64
}

// New creates a generator. A zero modulus falls back to DefaultModulus.
// Moduli above 2^53 lose precision in the emitted real.
func New(p Params) *LCG {
	if p.Modulus == 0 {
		p.Modulus = DefaultModulus
	}
	return &LCG{params: p, x: p.Seed}
}

// NewDefault creates a generator with DefaultParams.
func NewDefault() *LCG {
	return New(DefaultParams())
}

// Next01 advances the recurrence and returns x/m.
func (g *LCG) Next01() float64 {
	// 128-bit intermediate so overridden parameters cannot overflow.
	hi, lo := bits.Mul64(g.params.Multiplier, g.x)
	lo, carry := bits.Add64(lo, g.params.Increment, 0)
	hi += carry
	g.x = bits.Rem64(hi, lo, g.params.Modulus)
	g.used++
	return float64(g.x) / float64(g.params.Modulus)
}

// Uniform returns lo + (hi-lo)*Next01().
func (g *LCG) Uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*g.Next01()
}

// Used returns the number of draws taken so far.
func (g *LCG) Used() int64 {
	return g.used
}

// Params returns the generator's configuration.
func (g *LCG) Params() Params {
	return g.params
}
