package hero

import (
	"math"
	"time"
)

// Spring is a damped harmonic oscillator chasing a target value.
type Spring struct {
	Stiffness float64
	Damping   float64
	Mass      float64

	value    float64
	velocity float64
	target   float64
}

// NewSpring returns the spring used for the frame spread, resting at initial.
func NewSpring(initial float64) *Spring {
	return &Spring{Stiffness: 110, Damping: 30, Mass: 0.6, value: initial, target: initial}
}

const (
	maxSubstep = time.Second / 240
	restDelta  = 0.001
	restSpeed  = 0.01
)

func (s *Spring) SetTarget(v float64) { s.target = v }
func (s *Spring) Value() float64 { return clamp01(s.value) }

// Step integrates dt in sub-steps of at most 1/240 s and returns the clamped value.
func (s *Spring) Step(dt time.Duration) float64 {
	for dt > 0 {
		h := dt
		if h > maxSubstep {
			h = maxSubstep
		}
		dt -= h
		sec := h.Seconds()
		accel := (-s.Stiffness*(s.value-s.target) - s.Damping*s.velocity) / s.Mass
		s.velocity += accel * sec
		s.value += s.velocity * sec
	}
	if math.Abs(s.value-s.target) < restDelta && math.Abs(s.velocity) < restSpeed {
		s.value, s.velocity = s.target, 0
	}
	return s.Value()
}

// Animator turns a stream of (progress, elapsed) samples into frames.
type Animator struct {
	spring  *Spring
	vp      Viewport
	reduced bool
}

func NewAnimator(vp Viewport, reducedMotion bool) *Animator {
	if vp.Width <= 0 || vp.Height <= 0 {
		vp = DefaultViewport
	}
	return &Animator{spring: NewSpring(0), vp: vp, reduced: reducedMotion}
}

// Resize updates the viewport used for corner geometry.
func (a *Animator) Resize(vp Viewport) {
	if vp.Width > 0 && vp.Height > 0 {
		a.vp = vp
	}
}

func (a *Animator) Update(progress float64, dt time.Duration) AnimationFrame {
	if a.reduced {
		return Static()
	}
	a.spring.SetTarget(RawSpread(progress))
	return Frame(progress, a.spring.Step(dt), a.vp)
}
