package effects

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeanoNET/PicoPixels/internal/frame"
	"github.com/SeanoNET/PicoPixels/internal/render"
)

const (
	panelW = 32
	panelH = 8
)

func newBuf() *frame.Buffer { return frame.New(panelW, panelH) }

func testCfg() *render.Config {
	c := render.DefaultConfig()
	return &c
}

func TestScannerStaysInBoundsAndReversesAtEdges(t *testing.T) {
	s := NewScanner()
	f := newBuf()
	cfg := testCfg()

	prevDir := s.dir
	for i := 0; i < 4*panelW; i++ {
		assert.True(t, s.Advance(f, cfg, 1))
		require.GreaterOrEqual(t, s.pos, 0)
		require.LessOrEqual(t, s.pos, panelW-1)
		if prevDir != s.dir {
			// direction flips only at the two boundary columns
			assert.Contains(t, []int{0, panelW - 1}, s.pos)
		}
		// eye column is lit full height
		for y := 0; y < panelH; y++ {
			assert.True(t, f.Lit(s.pos, y))
		}
		prevDir = s.dir
	}
}

func TestScannerTouchesBothEdges(t *testing.T) {
	s := NewScanner()
	f := newBuf()
	cfg := testCfg()
	hitLeft, hitRight := false, false
	for i := 0; i < 4*panelW; i++ {
		s.Advance(f, cfg, 1)
		if s.pos == 0 {
			hitLeft = true
		}
		if s.pos == panelW-1 {
			hitRight = true
		}
	}
	assert.True(t, hitLeft)
	assert.True(t, hitRight)
}

func TestRainDrawsAndDescends(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	r := NewRain(rng)
	f := newBuf()
	cfg := testCfg()

	assert.True(t, r.Advance(f, cfg, 1))
	require.Len(t, r.drops, rainDrops)

	ys := make([]int, rainDrops)
	for i, d := range r.drops {
		ys[i] = d.y
	}
	assert.True(t, r.Advance(f, cfg, 1))
	for i, d := range r.drops {
		if d.y > ys[i] {
			continue
		}
		// a drop that did not descend must have respawned above the panel
		assert.Less(t, d.y, 0, "drop %d", i)
	}

	// after enough frames something is always on screen
	lit := false
	for i := 0; i < 10; i++ {
		r.Advance(f, cfg, 1)
		lit = lit || f.Any()
	}
	assert.True(t, lit)
}

func TestFireSeedsFromBottom(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	e := NewFire(rng)
	f := newBuf()
	cfg := testCfg()

	for i := 0; i < 5; i++ {
		assert.True(t, e.Advance(f, cfg, 1))
	}
	// heat exists and the hottest cells are near the bottom row
	total := 0
	for x := 0; x < panelW; x++ {
		total += e.heat[panelH-1][x]
	}
	assert.Greater(t, total, 0)
}

func TestFireCoolsAboveSeedRow(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	e := NewFire(rng)
	e.heat = make([][]int, panelH)
	for y := range e.heat {
		e.heat[y] = make([]int, panelW)
		for x := range e.heat[y] {
			e.heat[y][x] = 10
		}
	}

	e.cool(panelW, panelH)
	for y := 0; y < panelH-1; y++ {
		for x := 0; x < panelW; x++ {
			assert.GreaterOrEqual(t, e.heat[y][x], 8, "y=%d x=%d", y, x)
			assert.LessOrEqual(t, e.heat[y][x], 9, "y=%d x=%d", y, x)
		}
	}
	// the seed row is never cooled
	for x := 0; x < panelW; x++ {
		assert.Equal(t, 10, e.heat[panelH-1][x])
	}

	// heat never goes negative
	e.heat[0][0] = 0
	e.cool(panelW, panelH)
	assert.GreaterOrEqual(t, e.heat[0][0], 0)
}

func TestBallsStayInBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	e := NewBalls(rng)
	f := newBuf()
	cfg := testCfg()
	for i := 0; i < 200; i++ {
		assert.True(t, e.Advance(f, cfg, 1))
		for _, b := range e.balls {
			assert.GreaterOrEqual(t, b.x, 0.0)
			assert.LessOrEqual(t, b.x, float64(panelW-1))
			assert.GreaterOrEqual(t, b.y, 0.0)
			assert.LessOrEqual(t, b.y, float64(panelH-1))
		}
	}
}

func TestPongBallStaysOnPanelAndScoresReset(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	e := NewPong(rng)
	f := newBuf()
	cfg := testCfg()
	for i := 0; i < 500; i++ {
		assert.True(t, e.Advance(f, cfg, 1))
		assert.GreaterOrEqual(t, e.by, 0.0)
		assert.LessOrEqual(t, e.by, float64(panelH-1))
		// after the per-step miss handling the ball is always on panel
		assert.GreaterOrEqual(t, int(e.bx), 0)
		assert.Less(t, int(e.bx), panelW)
	}
}

func TestScrollWrapsAfterFullPass(t *testing.T) {
	e := NewScroll()
	f := newBuf()
	cfg := testCfg()
	cfg.SetText("HI")
	width := textWidth("HI")

	e.Advance(f, cfg, 1)
	assert.Equal(t, panelW, e.offset)

	// one decrement per frame until the text has fully scrolled off
	steps := panelW + width + 1
	for i := 0; i < steps; i++ {
		e.Advance(f, cfg, 1)
	}
	assert.Equal(t, panelW, e.offset)
}

func TestScrollRestartsWhenTextChanges(t *testing.T) {
	e := NewScroll()
	f := newBuf()
	cfg := testCfg()
	cfg.SetText("HI")

	for i := 0; i < 6; i++ {
		e.Advance(f, cfg, 1)
	}
	assert.Equal(t, panelW-5, e.offset)

	// a new payload restarts the pass from the right edge
	cfg.SetText("BYE")
	e.Advance(f, cfg, 1)
	assert.Equal(t, panelW, e.offset)

	e.Advance(f, cfg, 1)
	assert.Equal(t, panelW-1, e.offset)
}

func TestScrollDrawsVisibleText(t *testing.T) {
	e := NewScroll()
	f := newBuf()
	cfg := testCfg()
	cfg.SetText("HI")
	// advance until the glyphs are inside the panel
	for i := 0; i < panelW/2; i++ {
		e.Advance(f, cfg, 1)
	}
	assert.True(t, f.Any())
}

func fixedClock(h, m, s int) func() time.Time {
	return func() time.Time {
		return time.Date(2024, 6, 1, h, m, s, 0, time.UTC)
	}
}

func TestClockFace24HourWithSeconds(t *testing.T) {
	e := NewClockFace(fixedClock(13, 5, 2))
	f := newBuf()
	cfg := testCfg()
	cfg.TwelveHour = false
	cfg.ShowSeconds = true
	cfg.BlinkColon = true

	assert.True(t, e.Advance(f, cfg, 1))
	// even second: colon pixels are visible
	want := frame.New(panelW, panelH)
	drawText(want, (panelW-textWidth("13:05:02")+1)/2, 1, "13:05:02")
	assert.Equal(t, want.Snapshot(), f.Snapshot())
}

func TestClockFaceBlinkHidesColonOnOddSeconds(t *testing.T) {
	f := newBuf()
	cfg := testCfg()
	cfg.ShowSeconds = false
	cfg.BlinkColon = true

	NewClockFace(fixedClock(9, 30, 1)).Advance(f, cfg, 1)
	want := frame.New(panelW, panelH)
	drawText(want, (panelW-textWidth("09 30")+1)/2, 1, "09 30")
	assert.Equal(t, want.Snapshot(), f.Snapshot())

	// blink disabled: colon stays on odd seconds
	cfg.BlinkColon = false
	NewClockFace(fixedClock(9, 30, 1)).Advance(f, cfg, 1)
	want.Clear()
	drawText(want, (panelW-textWidth("09:30")+1)/2, 1, "09:30")
	assert.Equal(t, want.Snapshot(), f.Snapshot())
}

func TestClockFace12HourSuffix(t *testing.T) {
	f := newBuf()
	cfg := testCfg()
	cfg.TwelveHour = true
	cfg.BlinkColon = false

	NewClockFace(fixedClock(0, 15, 0)).Advance(f, cfg, 1)
	want := frame.New(panelW, panelH)
	drawText(want, (panelW-textWidth("12:15 AM")+1)/2, 1, "12:15 AM")
	assert.Equal(t, want.Snapshot(), f.Snapshot())

	NewClockFace(fixedClock(15, 45, 0)).Advance(f, cfg, 1)
	want.Clear()
	drawText(want, (panelW-textWidth("03:45 PM")+1)/2, 1, "03:45 PM")
	assert.Equal(t, want.Snapshot(), f.Snapshot())
}

func TestOneShotPatterns(t *testing.T) {
	cfg := testCfg()

	f := newBuf()
	assert.False(t, NewAllOn().Advance(f, cfg, 1))
	assert.True(t, f.Lit(0, 0))
	assert.True(t, f.Lit(panelW-1, panelH-1))

	assert.False(t, NewAllOff().Advance(f, cfg, 1))
	assert.False(t, f.Any())

	assert.False(t, NewBorder().Advance(f, cfg, 1))
	for x := 0; x < panelW; x++ {
		assert.True(t, f.Lit(x, 0))
		assert.True(t, f.Lit(x, panelH-1))
	}
	for y := 0; y < panelH; y++ {
		assert.True(t, f.Lit(0, y))
		assert.True(t, f.Lit(panelW-1, y))
	}
	assert.False(t, f.Lit(panelW/2, panelH/2))
}

func TestSelfTestBlinksThenFinishesWithBorder(t *testing.T) {
	e := NewTest()
	f := newBuf()
	cfg := testCfg()

	frames := 0
	for {
		cont := e.Advance(f, cfg, 1)
		frames++
		if !cont {
			break
		}
		require.Less(t, frames, 20, "self test never finished")
	}
	assert.Equal(t, testFrames, frames)
	// final frame is the border
	assert.True(t, f.Lit(0, 0))
	assert.False(t, f.Lit(panelW/2, panelH/2))
}

func TestRegistryCatalog(t *testing.T) {
	reg := NewRegistry(rand.New(rand.NewSource(1)), time.Now)
	names := reg.Names()
	for _, want := range []string{"matrix", "fire", "wave", "plasma", "balls", "scanner", "dot", "pong", "text", "clock", "on", "off", "border", "test"} {
		assert.Contains(t, names, want)
	}
	// factories yield fresh instances
	factory, ok := reg.Get("scanner")
	require.True(t, ok)
	a, b := factory(), factory()
	assert.NotSame(t, a, b)
}
