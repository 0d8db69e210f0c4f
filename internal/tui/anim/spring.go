package anim

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// Params describes a spring by stiffness and damping, the way the board's
// motion is specified. Mass is always 1.
type Params struct {
	Stiffness float64
	Damping   float64
}

var (
	// RowParams drive row enter, exit and reorder transitions.
	RowParams = Params{Stiffness: 300, Damping: 30}
	// ProgressParams drive the fill width and the runner offset.
	ProgressParams = Params{Stiffness: 50, Damping: 15}
)

// AngularFrequency returns sqrt(stiffness/mass).
func (p Params) AngularFrequency() float64 {
	return math.Sqrt(p.Stiffness)
}

// DampingRatio returns damping / (2*sqrt(stiffness*mass)).
func (p Params) DampingRatio() float64 {
	if p.Stiffness <= 0 {
		return 0
	}
	return p.Damping / (2 * math.Sqrt(p.Stiffness))
}

// Valid reports whether the parameters describe a spring that settles.
func (p Params) Valid() bool {
	return p.Stiffness > 0 && p.Damping > 0
}

const (
	// restDelta is the distance from the target below which a spring may rest.
	restDelta = 0.005
	// restSpeed is the velocity below which a spring may rest, in units per frame.
	restSpeed = 0.005
)

// Spring is one animated value.
type Spring struct {
	s      harmonica.Spring
	dt     float64
	pos    float64
	vel    float64
	target float64
}

// NewSpring returns a spring resting at value, stepped at fps frames per second.
func NewSpring(fps int, p Params, value float64) *Spring {
	dt := harmonica.FPS(fps)
	return &Spring{
		s:      harmonica.NewSpring(dt, p.AngularFrequency(), p.DampingRatio()),
		dt:     dt,
		pos:    value,
		target: value,
	}
}

// From sets the current value without touching the target, so the next
// steps animate from value toward the target.
func (s *Spring) From(value float64) *Spring {
	s.pos = value
	s.vel = 0
	return s
}

// SetTarget retargets the spring. Velocity is kept, so a value already in
// motion bends toward the new target instead of restarting.
func (s *Spring) SetTarget(target float64) {
	s.target = target
}

// Target returns the value the spring is moving toward.
func (s *Spring) Target() float64 {
	return s.target
}

// Value returns the current value.
func (s *Spring) Value() float64 {
	return s.pos
}

// Step advances the spring by one frame. A spring close enough to its
// target snaps onto it and stops.
func (s *Spring) Step() {
	if s.Settled() {
		return
	}
	s.pos, s.vel = s.s.Update(s.pos, s.vel, s.target)
	if math.Abs(s.pos-s.target) < restDelta && math.Abs(s.vel)*s.dt < restSpeed {
		s.Snap()
	}
}

// Settled reports whether the spring rests on its target.
func (s *Spring) Settled() bool {
	return s.pos == s.target && s.vel == 0
}

// Snap jumps to the target and stops.
func (s *Spring) Snap() {
	s.pos = s.target
	s.vel = 0
}
