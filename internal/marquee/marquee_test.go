package marquee

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ishanichuri/portfolio/internal/projects/domain"
)

func project(id string, highlighted bool) domain.ProjectRecord {
	return domain.ProjectRecord{ProjectInput: domain.ProjectInput{
		ProjectID: id, Title: "T " + id, Tags: []string{"ux", "web"}, Category: domain.CategoryFreelance,
		IsHighlighted: highlighted,
	}}
}

func TestBuildTrack(t *testing.T) {
	t.Run("highlighted only, duplicated", func(t *testing.T) {
		cards := BuildTrack([]domain.ProjectRecord{project("a", true), project("b", false), project("c", true)})
		require.Len(t, cards, 4)
		ids := []string{cards[0].ProjectID, cards[1].ProjectID, cards[2].ProjectID, cards[3].ProjectID}
		assert.Equal(t, []string{"a", "c", "a", "c"}, ids)
		assert.Equal(t, "a-0", cards[0].Key)
		assert.Equal(t, "a-2", cards[2].Key)
	})

	t.Run("falls back to all projects", func(t *testing.T) {
		cards := BuildTrack([]domain.ProjectRecord{project("a", false), project("b", false)})
		assert.Len(t, cards, 4)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Nil(t, BuildTrack(nil))
	})

	t.Run("card fields", func(t *testing.T) {
		p := project("a", true)
		c := BuildTrack([]domain.ProjectRecord{p})[0]
		assert.Equal(t, "/projects/a", c.Href)
		assert.Equal(t, "/images/project-1.svg", c.ImageURL)
		assert.Equal(t, "T a thumbnail", c.ImageAlt)
		assert.Equal(t, "category-freelance", c.CategoryClass)
		assert.Equal(t, "ux", c.PrimaryTag)

		p.Images = []domain.ProjectImage{{URL: "/x.png", Alt: "x"}}
		c = BuildTrack([]domain.ProjectRecord{p})[0]
		assert.Equal(t, "/x.png", c.ImageURL)
		assert.Equal(t, "x", c.ImageAlt)
	})
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		offset, loop, want float64
	}{
		{0, 100, 0},
		{-50, 100, -50},
		{-100, 100, 0},
		{-250, 100, -50},
		{30, 100, -70},
		{100, 100, 0},
		{12, 0, 0},
	}
	for _, tc := range cases {
		assert.InDelta(t, tc.want, Normalize(tc.offset, tc.loop), 1e-9, "Normalize(%v, %v)", tc.offset, tc.loop)
	}
}

func TestNormalize_PeriodicInLoopLength(t *testing.T) {
	const w = 612.5
	for _, x := range []float64{-1, -300, -611, 5, 1234.25} {
		assert.InDelta(t, Normalize(x, w), Normalize(x-w, w), 1e-9)
		assert.InDelta(t, Normalize(x, w), Normalize(x+3*w, w), 1e-9)
	}
}

func TestAutoplayAdvancesLeftByElapsedTime(t *testing.T) {
	m := New(40)
	m.Measure(0, 1000)
	t0 := time.Unix(100, 0)

	assert.Equal(t, 0.0, m.Tick(t0))
	assert.InDelta(t, -20, m.Tick(t0.Add(500*time.Millisecond)), 1e-9)
	assert.InDelta(t, -60, m.Tick(t0.Add(1500*time.Millisecond)), 1e-9)
}

func TestHoverPausesAndResumesWithoutJump(t *testing.T) {
	m := New(100)
	m.Measure(0, 1000)
	t0 := time.Unix(0, 0)
	m.Tick(t0)
	m.Tick(t0.Add(time.Second))
	require.InDelta(t, -100, m.Offset(), 1e-9)

	m.PointerEnter()
	assert.Equal(t, Paused, m.Mode())
	m.Tick(t0.Add(5 * time.Second))
	assert.InDelta(t, -100, m.Offset(), 1e-9)

	m.PointerLeave()
	assert.Equal(t, Autoplay, m.Mode())
	m.Tick(t0.Add(10 * time.Second))
	assert.InDelta(t, -100, m.Offset(), 1e-9, "first tick after resume must not jump")
	m.Tick(t0.Add(11 * time.Second))
	assert.InDelta(t, -200, m.Offset(), 1e-9)
}

func TestFocusAndBlur(t *testing.T) {
	m := New(0)
	m.Focus()
	assert.Equal(t, Paused, m.Mode())
	m.Blur(true)
	assert.Equal(t, Paused, m.Mode())
	m.Blur(false)
	assert.Equal(t, Autoplay, m.Mode())
}

func TestVisibilitySuspendsAutoplay(t *testing.T) {
	m := New(100)
	m.Measure(0, 1000)
	t0 := time.Unix(0, 0)
	m.Tick(t0)

	m.SetPageVisible(false)
	m.Tick(t0.Add(30 * time.Second))
	assert.Equal(t, 0.0, m.Offset())

	m.SetPageVisible(true)
	m.SetInView(false)
	m.Tick(t0.Add(31 * time.Second))
	assert.Equal(t, 0.0, m.Offset())

	m.SetInView(true)
	m.Tick(t0.Add(40 * time.Second))
	m.Tick(t0.Add(41 * time.Second))
	assert.InDelta(t, -100, m.Offset(), 1e-9)
}

func TestDrag(t *testing.T) {
	m := New(40)
	m.Measure(0, 500)

	m.PointerDown(1, 200)
	assert.Equal(t, Dragging, m.Mode())
	m.PointerMove(2, 0) // other pointer
	assert.Equal(t, 0.0, m.Offset())

	m.PointerMove(1, 150)
	assert.InDelta(t, -50, m.Offset(), 1e-9)
	m.PointerUp(1, 120)
	assert.InDelta(t, -80, m.Offset(), 1e-9)
	assert.Equal(t, Autoplay, m.Mode())

	assert.False(t, m.Click(), "click after a drag is swallowed")
	assert.True(t, m.Click(), "only once")
}

func TestShortDragStillClicks(t *testing.T) {
	m := New(40)
	m.Measure(0, 500)
	m.PointerDown(1, 100)
	m.PointerMove(1, 130)
	m.PointerUp(1, 105) // net 5px
	assert.True(t, m.Click())

	m.PointerDown(1, 100)
	m.PointerMove(1, 120)
	m.PointerCancel(1)
	assert.False(t, m.Click())
}

func TestMeasureRenormalizes(t *testing.T) {
	m := New(40)
	m.Measure(0, 1000)
	m.PointerDown(1, 0)
	m.PointerUp(1, -900)
	require.InDelta(t, -900, m.Offset(), 1e-9)

	m.Measure(0, 400)
	assert.InDelta(t, -100, m.Offset(), 1e-9)
}

func TestOffsetStaysInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	m := New(55)
	loop := 737.0
	m.Measure(12, 12+loop)
	now := time.Unix(0, 0)

	for i := 0; i < 5000; i++ {
		switch rng.Intn(6) {
		case 0:
			m.PointerDown(1, rng.Float64()*2000-1000)
		case 1:
			m.PointerMove(1, rng.Float64()*4000-2000)
		case 2:
			m.PointerUp(1, rng.Float64()*4000-2000)
		case 3:
			m.PointerEnter()
		case 4:
			m.PointerLeave()
		default:
			now = now.Add(time.Duration(rng.Intn(5000)) * time.Millisecond)
			m.Tick(now)
		}
		off := m.Offset()
		require.True(t, off <= 0 && off > -loop, "offset %v out of range after step %d", off, i)
		require.False(t, math.IsNaN(off))
	}
}

func TestReplay_DemoScript(t *testing.T) {
	m := New(0)
	m.Measure(0, 1200)

	samples, err := Replay(m, DemoScript(), 0)
	require.NoError(t, err)
	require.Len(t, samples, len(DemoScript()))

	byEvent := func(i int) Sample { return samples[i] }
	assert.Equal(t, "paused", byEvent(0).Mode)
	assert.InDelta(t, -40, byEvent(0).Offset, 0.01)
	assert.InDelta(t, byEvent(0).Offset, byEvent(1).Offset, 1e-9, "no advance while hovered")
	assert.Equal(t, "dragging", byEvent(2).Mode)
	assert.InDelta(t, byEvent(2).Offset-60, byEvent(3).Offset, 1e-9)
	assert.Equal(t, "autoplay", byEvent(4).Mode)

	require.NotNil(t, byEvent(5).Navigate)
	assert.False(t, *byEvent(5).Navigate, "click after a 120px drag is swallowed")
	require.NotNil(t, byEvent(6).Navigate)
	assert.True(t, *byEvent(6).Navigate)

	assert.InDelta(t, byEvent(7).Offset, byEvent(8).Offset, 1e-9, "no advance while backgrounded")
	assert.Less(t, byEvent(9).Offset, byEvent(8).Offset)
	for _, s := range samples {
		assert.True(t, s.Offset <= 0 && s.Offset > -1200)
	}
}

func TestReplay_SortsStepsAndRejectsUnknownEvents(t *testing.T) {
	m := New(0)
	m.Measure(0, 500)
	samples, err := Replay(m, []Step{{At: 2 * time.Second, Event: "tick"}, {At: time.Second, Event: "enter"}}, 10*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, []string{"enter", "tick"}, []string{samples[0].Event, samples[1].Event})
	assert.Equal(t, "paused", samples[1].Mode)

	_, err = Replay(New(0), []Step{{Event: "wiggle"}}, 0)
	assert.Error(t, err)
}
