package marquee

import (
	"math"
	"time"
)

const (
	// DefaultSpeed is the autoplay rate in px/s.
	DefaultSpeed = 40.0
	// ClickSuppressDistance is how far a drag may travel before the
	// release stops counting as a click.
	ClickSuppressDistance = 8.0
)

type Mode int

const (
	Autoplay Mode = iota
	Paused
	Dragging
)

func (m Mode) String() string {
	switch m {
	case Paused:
		return "paused"
	case Dragging:
		return "dragging"
	default:
		return "autoplay"
	}
}

// Marquee is the carousel state. It is driven by one caller and is not safe
// for concurrent use.
type Marquee struct {
	mode   Mode
	speed  float64
	offset float64
	loop   float64

	last    time.Time
	ticking bool

	inView      bool
	pageVisible bool

	pointerID     int
	startX, lastX float64
	suppressClick bool
}

func New(speed float64) *Marquee {
	if speed <= 0 {
		speed = DefaultSpeed
	}
	return &Marquee{mode: Autoplay, speed: speed, inView: true, pageVisible: true}
}

func (m *Marquee) Mode() Mode { return m.mode }
func (m *Marquee) Offset() float64 { return m.offset }
func (m *Marquee) LoopLength() float64 { return m.loop }
func (m *Marquee) ClickSuppressed() bool { return m.suppressClick }

// Measure sets the loop length from the start positions of the two track
// segments. Call again whenever the layout changes size.
func (m *Marquee) Measure(firstStart, secondStart float64) {
	m.loop = math.Max(0, secondStart-firstStart)
	m.offset = Normalize(m.offset, m.loop)
}

func (m *Marquee) PointerEnter() {
	if m.mode == Autoplay {
		m.mode = Paused
	}
}

func (m *Marquee) PointerLeave() {
	if m.mode == Paused {
		m.resume()
	}
}

func (m *Marquee) Focus() { m.PointerEnter() }

// Blur resumes autoplay unless focus moved to another element inside the
// carousel.
func (m *Marquee) Blur(focusInside bool) {
	if !focusInside {
		m.PointerLeave()
	}
}

func (m *Marquee) PointerDown(id int, x float64) {
	m.mode = Dragging
	m.pointerID = id
	m.startX, m.lastX = x, x
	m.suppressClick = false
}

func (m *Marquee) PointerMove(id int, x float64) {
	if m.mode != Dragging || id != m.pointerID {
		return
	}
	m.offset = Normalize(m.offset+(x-m.lastX), m.loop)
	m.lastX = x
}

func (m *Marquee) PointerUp(id int, x float64) {
	if m.mode != Dragging || id != m.pointerID {
		return
	}
	m.PointerMove(id, x)
	m.suppressClick = math.Abs(m.lastX-m.startX) > ClickSuppressDistance
	m.resume()
}

// PointerCancel ends a drag without moving the track further.
func (m *Marquee) PointerCancel(id int) {
	if m.mode != Dragging || id != m.pointerID {
		return
	}
	m.suppressClick = math.Abs(m.lastX-m.startX) > ClickSuppressDistance
	m.resume()
}

// Click reports whether a click on a card should navigate. A click that
// follows a drag release is swallowed once.
func (m *Marquee) Click() bool {
	if m.suppressClick {
		m.suppressClick = false
		return false
	}
	return true
}

// SetInView pauses advancement while the carousel is scrolled out of view.
func (m *Marquee) SetInView(v bool) {
	m.inView = v
	m.ticking = false
}

// SetPageVisible pauses advancement while the page is in the background.
func (m *Marquee) SetPageVisible(v bool) {
	m.pageVisible = v
	m.ticking = false
}

// Tick advances autoplay to now and returns the offset. The first tick after
// any pause only records the time, so resuming never jumps.
func (m *Marquee) Tick(now time.Time) float64 {
	if m.mode != Autoplay || !m.inView || !m.pageVisible {
		m.ticking = false
		return m.offset
	}
	if !m.ticking {
		m.last, m.ticking = now, true
		return m.offset
	}
	dt := now.Sub(m.last).Seconds()
	m.last = now
	if dt > 0 {
		m.offset = Normalize(m.offset-m.speed*dt, m.loop)
	}
	return m.offset
}

func (m *Marquee) resume() {
	m.mode = Autoplay
	m.ticking = false
}
