// Package generator synthesizes telemetry records.
package generator

import (
	"math/rand/v2"
	"time"

	"github.com/vvka-141/pgtelemetry/pkg/telemetry"
)

// Generator produces one telemetry.Record per call from a random source and a clock.
// A Generator is NOT safe for concurrent use; the pipeline is single-threaded.
type Generator struct {
	rng   *rand.Rand
	clock func() time.Time
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed makes the sequence of generated measurements reproducible.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.rng = rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
	}
}

// WithRand uses the given random source.
func WithRand(rng *rand.Rand) Option {
	return func(g *Generator) {
		g.rng = rng
	}
}

// WithClock overrides the wall clock used for RecordedAt.
func WithClock(clock func() time.Time) Option {
	return func(g *Generator) {
		g.clock = clock
	}
}

// New creates a Generator. Without options it is time-seeded and uses time.Now.
func New(opts ...Option) *Generator {
	g := &Generator{
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		now := uint64(time.Now().UnixNano())
		g.rng = rand.New(rand.NewPCG(now, now>>1))
	}
	return g
}

// Generate returns a fresh record. It cannot fail.
func (g *Generator) Generate() telemetry.Record {
	at := g.clock().UTC()
	voltage := g.uniform(telemetry.VoltageSampleMin, telemetry.VoltageSampleMax)
	temp := g.uniform(telemetry.TempSampleMin, telemetry.TempSampleMax)
	sensor := telemetry.SensorName(g.intRange(1, telemetry.SensorCount))
	day := g.intRange(1, telemetry.MissionDayMax)

	return telemetry.NewRecord(at, voltage, temp, sensor, day)
}

// uniform samples [lo, hi].
func (g *Generator) uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*g.rng.Float64()
}

// intRange samples [lo, hi] inclusive.
func (g *Generator) intRange(lo, hi int) int {
	return lo + g.rng.IntN(hi-lo+1)
}

var _ telemetry.RecordGenerator = (*Generator)(nil)
