package marquee

import (
	"fmt"
	"sort"
	"time"
)

// Step is one scripted input, applied At after the replay starts.
type Step struct {
	At    time.Duration `json:"at" yaml:"at"`
	Event string        `json:"event" yaml:"event"`
	X     float64       `json:"x,omitempty" yaml:"x,omitempty"`
}

// Sample is the carousel state right after a step was applied.
type Sample struct {
	Seconds  float64 `json:"seconds" yaml:"seconds"`
	Event    string  `json:"event" yaml:"event"`
	Mode     string  `json:"mode" yaml:"mode"`
	Offset   float64 `json:"offset" yaml:"offset"`
	Navigate *bool   `json:"navigate,omitempty" yaml:"navigate,omitempty"`
}

// DemoScript hovers, drags past the click threshold, then backgrounds the page.
func DemoScript() []Step {
	return []Step{
		{At: time.Second, Event: "enter"},
		{At: 1500 * time.Millisecond, Event: "leave"},
		{At: 2 * time.Second, Event: "down", X: 400},
		{At: 2100 * time.Millisecond, Event: "move", X: 340},
		{At: 2200 * time.Millisecond, Event: "up", X: 280},
		{At: 2200 * time.Millisecond, Event: "click"},
		{At: 2300 * time.Millisecond, Event: "click"},
		{At: 3 * time.Second, Event: "hide"},
		{At: 5 * time.Second, Event: "show"},
		{At: 6 * time.Second, Event: "tick"},
	}
}

// Replay drives m through steps in time order, ticking once per frame in
// between, and records a sample after every step. Pointer events use id 1.
func Replay(m *Marquee, steps []Step, frame time.Duration) ([]Sample, error) {
	if frame <= 0 {
		frame = 16 * time.Millisecond
	}
	ordered := append([]Step(nil), steps...)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].At < ordered[j].At })

	start := time.Unix(0, 0)
	var elapsed time.Duration
	m.Tick(start)

	out := make([]Sample, 0, len(ordered))
	for _, step := range ordered {
		for elapsed+frame <= step.At {
			elapsed += frame
			m.Tick(start.Add(elapsed))
		}
		elapsed = step.At
		m.Tick(start.Add(elapsed))

		sample := Sample{Seconds: step.At.Seconds(), Event: step.Event}
		switch step.Event {
		case "enter":
			m.PointerEnter()
		case "leave":
			m.PointerLeave()
		case "focus":
			m.Focus()
		case "blur":
			m.Blur(false)
		case "down":
			m.PointerDown(1, step.X)
		case "move":
			m.PointerMove(1, step.X)
		case "up":
			m.PointerUp(1, step.X)
		case "cancel":
			m.PointerCancel(1)
		case "click":
			nav := m.Click()
			sample.Navigate = &nav
		case "hide":
			m.SetPageVisible(false)
		case "show":
			m.SetPageVisible(true)
		case "out":
			m.SetInView(false)
		case "in":
			m.SetInView(true)
		case "tick":
		default:
			return out, fmt.Errorf("unknown marquee event %q", step.Event)
		}
		sample.Mode = m.Mode().String()
		sample.Offset = m.Offset()
		out = append(out, sample)
	}
	return out, nil
}
