// Package hero computes the landing-page scroll animation. Frame is a pure
// function of scroll progress; Animator adds spring smoothing on top.
package hero

import "math"

// CornerSize is the edge length of a collapsed corner ornament, in px.
const CornerSize = 64.0

// Viewport is the window size in CSS pixels.
type Viewport struct {
	Width  float64
	Height float64
}

// DefaultViewport is used before the real size is known.
var DefaultViewport = Viewport{Width: 1280, Height: 900}

type Rect struct {
	Left   float64 `json:"left" yaml:"left"`
	Top    float64 `json:"top" yaml:"top"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// AnimationFrame holds every animated value for one render.
type AnimationFrame struct {
	// Animated is false for the reduced-motion frame; the frame layer,
	// the name label and the outro overlay are not rendered at all.
	Animated bool `json:"animated" yaml:"animated"`

	Open      float64 `json:"open" yaml:"open"`
	Close     float64 `json:"close" yaml:"close"`
	SpreadRaw float64 `json:"spread_raw" yaml:"spread_raw"`
	Spread    float64 `json:"spread" yaml:"spread"`

	IntroNameOpacity float64 `json:"intro_name_opacity" yaml:"intro_name_opacity"`
	OutroNameOpacity float64 `json:"outro_name_opacity" yaml:"outro_name_opacity"`
	OutroInteractive bool    `json:"outro_interactive" yaml:"outro_interactive"`

	ContentOpacity float64 `json:"content_opacity" yaml:"content_opacity"`
	ContentY       float64 `json:"content_y" yaml:"content_y"`
	ProfileOpacity float64 `json:"profile_opacity" yaml:"profile_opacity"`
	ProfileY       float64 `json:"profile_y" yaml:"profile_y"`

	CornerMorph float64 `json:"corner_morph" yaml:"corner_morph"`
	TopRight    Rect    `json:"top_right" yaml:"top_right"`
	BottomLeft  Rect    `json:"bottom_left" yaml:"bottom_left"`
}

// Phases splits scroll progress into the open and close phases.
func Phases(progress float64) (open, close float64) {
	return mapRange(progress, 0, 0.34, 0, 1), mapRange(progress, 0.74, 0.99, 0, 1)
}

// RawSpread is the unsmoothed frame spread for progress: 0 with the corners
// gathered at the centre, 1 with them at the viewport edges.
func RawSpread(progress float64) float64 {
	open, close := Phases(progress)
	return math.Max(0, mapRange(open, 0.14, 1, 0, 1)-mapRange(close, 0.08, 1, 0, 1))
}

// Frame computes the frame for progress using spread (normally the smoothed
// RawSpread) to drive the corner geometry.
func Frame(progress, spread float64, vp Viewport) AnimationFrame {
	open, close := Phases(progress)
	spread = clamp01(spread)

	f := AnimationFrame{
		Animated:         true,
		Open:             open,
		Close:            close,
		SpreadRaw:        RawSpread(progress),
		Spread:           spread,
		IntroNameOpacity: mapRange(open, 0, 0.84, 1, 0),
		OutroNameOpacity: mapRange(close, 0.42, 1, 0, 1),
		OutroInteractive: close > 0.54,
		ContentOpacity:   mapRange(open, 0.78, 0.98, 0, 1),
		ContentY:         mapRange(open, 0.78, 0.98, 96, 0),
		ProfileOpacity:   mapRange(open, 0.82, 0.98, 0, 1),
		ProfileY:         mapRange(open, 0.82, 0.98, 26, 0),
		CornerMorph:      mapRange(spread, 0, 0.16, 0, 1),
	}

	halfW := math.Min(280, vp.Width*0.22)
	halfH := math.Min(170, vp.Height*0.22)
	margin := math.Max(20, math.Min(36, vp.Width*0.03))
	pieceW := lerp(halfW*2, CornerSize, f.CornerMorph)
	pieceH := lerp(halfH*2, CornerSize, f.CornerMorph)

	trX := lerp(vp.Width/2+halfW, vp.Width-margin, spread)
	trY := lerp(vp.Height/2-halfH, margin, spread)
	f.TopRight = Rect{Left: trX - pieceW, Top: trY, Width: pieceW, Height: pieceH}

	blX := lerp(vp.Width/2-halfW, margin, spread)
	blY := lerp(vp.Height/2+halfH, vp.Height-margin, spread)
	f.BottomLeft = Rect{Left: blX, Top: blY - pieceH, Width: pieceW, Height: pieceH}

	return f
}

// Static is the reduced-motion frame: content fully visible and in place.
func Static() AnimationFrame {
	return AnimationFrame{ContentOpacity: 1, ProfileOpacity: 1}
}

// mapRange linearly maps v from [inLo, inHi] to [outLo, outHi], clamped.
func mapRange(v, inLo, inHi, outLo, outHi float64) float64 {
	t := (v - inLo) / (inHi - inLo)
	return lerp(outLo, outHi, clamp01(t))
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
