// Package weather advances wind, sea conditions and drifting mist once per turn.
package weather

import (
	"fmt"
	"math/rand"

	"github.com/mitchelldurbincs/Archipelago/internal/game/core"
)

// Condition is the current state of the sea
type Condition int

const (
	Calm Condition = iota
	Breeze
	Gale
	Storm
	Fog
)

var conditionNames = []string{"calm", "breeze", "gale", "storm", "fog"}

func (c Condition) String() string {
	if c < 0 || int(c) >= len(conditionNames) {
		return fmt.Sprintf("Condition(%d)", int(c))
	}
	return conditionNames[c]
}

// ParseCondition converts a condition name back to its value
func ParseCondition(s string) (Condition, error) {
	for i, n := range conditionNames {
		if n == s {
			return Condition(i), nil
		}
	}
	return Calm, fmt.Errorf("unknown weather condition %q", s)
}

// WindForce is the strength of the wind a condition brings. Only calm leaves mist in place.
func (c Condition) WindForce() int {
	switch c {
	case Breeze, Fog:
		return 1
	case Gale:
		return 2
	case Storm:
		return 3
	default:
		return 0
	}
}

// conditionWeights are the odds of each condition when a spell of weather ends
var conditionWeights = [...]int{Calm: 25, Breeze: 35, Gale: 15, Storm: 10, Fog: 15}

// Config tunes how weather evolves
type Config struct {
	MinDuration     int
	MaxDuration     int
	FogMistSeeds    int
	CalmClearChance float64
}

// DefaultConfig returns the standard weather tuning
func DefaultConfig() Config {
	return Config{MinDuration: 3, MaxDuration: 8, FogMistSeeds: 3, CalmClearChance: 0.25}
}

// Weather is the session-wide wind and sea state
type Weather struct {
	WindDirection core.Direction
	WindForce     int
	Condition     Condition
	TurnsLeft     int

	cfg Config
}

// New starts in calm weather with the wind from a random quarter
func New(cfg Config, rng *rand.Rand) *Weather {
	w := &Weather{cfg: cfg}
	w.WindDirection = core.Direction(rng.Intn(core.NumDirections))
	w.Condition = Calm
	w.TurnsLeft = w.duration(rng)
	return w
}

// Stormy is true while storms make hazards worse
func (w *Weather) Stormy() bool { return w.Condition == Storm }

// Change reports what one Advance did
type Change struct {
	From, To    Condition
	WindShifted bool
	MistMoved   int
	MistLost    int
	MistSeeded  int
	MistCleared int
}

// ConditionChanged is true when a new spell of weather began
func (c Change) ConditionChanged() bool { return c.From != c.To }

// Advance moves weather forward one turn: tick the spell counter (rolling a new
// condition when it expires), drift mist downwind, then apply fog or calm effects.
func (w *Weather) Advance(g *core.Grid, rng *rand.Rand) Change {
	ch := Change{From: w.Condition}

	w.TurnsLeft--
	if w.TurnsLeft <= 0 {
		ch.WindShifted = w.roll(rng)
	}
	ch.To = w.Condition

	if w.WindForce > 0 {
		ch.MistMoved, ch.MistLost = drift(g, w.WindDirection)
	}

	switch w.Condition {
	case Fog:
		ch.MistSeeded = seed(g, rng, w.cfg.FogMistSeeds)
	case Calm:
		ch.MistCleared = burnOff(g, rng, w.cfg.CalmClearChance)
	}
	return ch
}

// roll starts a new spell of weather; the wind veers at most one point
func (w *Weather) roll(rng *rand.Rand) bool {
	total := 0
	for _, wt := range conditionWeights {
		total += wt
	}
	pick := rng.Intn(total)
	for c, wt := range conditionWeights {
		if pick < wt {
			w.Condition = Condition(c)
			break
		}
		pick -= wt
	}
	w.WindForce = w.Condition.WindForce()
	w.TurnsLeft = w.duration(rng)

	shift := rng.Intn(3) - 1
	w.WindDirection = w.WindDirection.Rotate(shift)
	return shift != 0
}

func (w *Weather) duration(rng *rand.Rand) int {
	lo, hi := w.cfg.MinDuration, w.cfg.MaxDuration
	if lo < 1 {
		lo = 1
	}
	if hi < lo {
		hi = lo
	}
	return lo + rng.Intn(hi-lo+1)
}

// drift shifts every mist tile one hex downwind. Mist blown off the map is lost.
func drift(g *core.Grid, dir core.Direction) (moved, lost int) {
	next := make([]bool, len(g.T))
	for i := range g.T {
		if !g.T[i].Mist {
			continue
		}
		x, y := g.XY(i)
		dest := core.Neighbor(core.Coordinate{X: x, Y: y}, dir)
		if !g.Contains(dest) {
			lost++
			continue
		}
		next[g.Idx(dest.X, dest.Y)] = true
		moved++
	}
	for i := range g.T {
		g.T[i].Mist = next[i]
	}
	return moved, lost
}

// seed drops mist on up to n random sailable tiles
func seed(g *core.Grid, rng *rand.Rand, n int) int {
	seeded := 0
	for attempt := 0; attempt < n*4 && seeded < n; attempt++ {
		t := &g.T[rng.Intn(len(g.T))]
		if t.Mist || !t.Elevation.Sailable() {
			continue
		}
		t.Mist = true
		seeded++
	}
	return seeded
}

// burnOff clears each mist tile with the given chance
func burnOff(g *core.Grid, rng *rand.Rand, chance float64) int {
	cleared := 0
	for i := range g.T {
		if g.T[i].Mist && rng.Float64() < chance {
			g.T[i].Mist = false
			cleared++
		}
	}
	return cleared
}

// Record is the plain form of Weather for persistence
type Record struct {
	WindDirection int    `json:"wind_direction"`
	WindForce     int    `json:"wind_force"`
	Condition     string `json:"condition"`
	TurnsLeft     int    `json:"turns_left"`
}

func (w *Weather) ToRecord() Record {
	return Record{
		WindDirection: int(w.WindDirection),
		WindForce:     w.WindForce,
		Condition:     w.Condition.String(),
		TurnsLeft:     w.TurnsLeft,
	}
}

// FromRecord restores weather with the given tuning
func FromRecord(r Record, cfg Config) (*Weather, error) {
	c, err := ParseCondition(r.Condition)
	if err != nil {
		return nil, err
	}
	return &Weather{
		WindDirection: core.Direction(r.WindDirection).Rotate(0),
		WindForce:     r.WindForce,
		Condition:     c,
		TurnsLeft:     r.TurnsLeft,
		cfg:           cfg,
	}, nil
}
