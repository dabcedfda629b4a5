package raster

import (
	"image"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// collect records plotted pixels in order, and as a set.
type collect struct {
	seq []image.Point
	set map[image.Point]struct{}
}

func newCollect() *collect {
	return &collect{set: make(map[image.Point]struct{})}
}

func (c *collect) plot(x, y int) {
	p := image.Point{X: x, Y: y}
	c.seq = append(c.seq, p)
	c.set[p] = struct{}{}
}

func (c *collect) has(x, y int) bool {
	_, ok := c.set[image.Point{X: x, Y: y}]
	return ok
}

func TestLineFixed(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 int
		wantY          []int
	}{
		{"gentle positive", 0, 0, 4, 2, []int{0, 0, 1, 1, 2}},
		{"gentle negative", 0, 2, 4, 0, []int{2, 2, 1, 1, 0}},
		{"horizontal", 3, 7, 8, 7, []int{7, 7, 7, 7, 7, 7}},
		{"diagonal", 0, 0, 3, 3, []int{0, 1, 2, 3}},
		{"single pixel", 5, 5, 5, 5, []int{5}},
		{"third slope", 0, 0, 6, 2, []int{0, 0, 1, 1, 1, 2, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCollect()
			Line(tt.x0, tt.y0, tt.x1, tt.y1, c.plot)
			require.Len(t, c.seq, len(tt.wantY))
			for i, p := range c.seq {
				assert.Equal(t, tt.x0+i, p.X, "step %d x", i)
				assert.Equal(t, tt.wantY[i], p.Y, "step %d y", i)
			}
		})
	}
}

func TestLineShallowProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 500; i++ {
		x0 := rng.Intn(84)
		x1 := x0 + rng.Intn(84-x0)
		dx := x1 - x0
		dy := 0
		if dx > 0 {
			dy = rng.Intn(2*dx+1) - dx
		}
		y0 := 24
		y1 := y0 + dy

		c := newCollect()
		Line(x0, y0, x1, y1, c.plot)
		require.Len(t, c.seq, dx+1, "line (%d,%d)-(%d,%d)", x0, y0, x1, y1)
		assert.Equal(t, image.Point{X: x0, Y: y0}, c.seq[0])
		assert.Equal(t, image.Point{X: x1, Y: y1}, c.seq[len(c.seq)-1])
		for k := 1; k < len(c.seq); k++ {
			step := c.seq[k].Y - c.seq[k-1].Y
			if step < -1 || step > 1 {
				t.Fatalf("line (%d,%d)-(%d,%d) jumps %d rows at step %d", x0, y0, x1, y1, step, k)
			}
			if dy >= 0 && step < 0 || dy < 0 && step > 0 {
				t.Fatalf("line (%d,%d)-(%d,%d) is not monotonic at step %d", x0, y0, x1, y1, k)
			}
		}
	}
}

func TestLineSteep(t *testing.T) {
	c := newCollect()
	Line(10, 0, 10, 47, c.plot)
	require.Len(t, c.seq, 48)
	for y, p := range c.seq {
		assert.Equal(t, image.Point{X: 10, Y: y}, p)
	}

	c = newCollect()
	Line(0, 0, 2, 4, c.plot)
	want := []image.Point{{0, 0}, {0, 1}, {1, 2}, {1, 3}, {2, 4}}
	assert.Equal(t, want, c.seq)

	c = newCollect()
	Line(0, 40, 3, 30, c.plot)
	require.Len(t, c.seq, 11)
	assert.Equal(t, image.Point{X: 0, Y: 40}, c.seq[0])
	assert.Equal(t, image.Point{X: 3, Y: 30}, c.seq[10])
}

func TestLineSwapsEndpoints(t *testing.T) {
	a, b := newCollect(), newCollect()
	Line(0, 0, 4, 2, a.plot)
	Line(4, 2, 0, 0, b.plot)
	assert.Equal(t, a.set, b.set)
}

func TestRectOutline(t *testing.T) {
	tests := []struct {
		x0, y0, x1, y1 int
	}{
		{0, 0, 83, 47},
		{10, 10, 20, 15},
		{5, 5, 5, 9},
		{5, 5, 9, 5},
		{7, 7, 7, 7},
		{1, 2, 2, 3},
	}

	for _, tt := range tests {
		c := newCollect()
		Rect(tt.x0, tt.y0, tt.x1, tt.y1, c.plot)
		want := 0
		for y := tt.y0; y <= tt.y1; y++ {
			for x := tt.x0; x <= tt.x1; x++ {
				edge := x == tt.x0 || x == tt.x1 || y == tt.y0 || y == tt.y1
				if edge {
					want++
				}
				if c.has(x, y) != edge {
					t.Errorf("Rect%v pixel (%d,%d) plotted=%v, edge=%v", tt, x, y, c.has(x, y), edge)
				}
			}
		}
		assert.Len(t, c.set, want, "Rect%v plotted outside the rectangle", tt)
	}
}

func TestCircleSymmetry(t *testing.T) {
	for r := 1; r <= 23; r++ {
		cx, cy := 41, 23
		c := newCollect()
		Circle(cx, cy, r, c.plot)
		for p := range c.set {
			dx, dy := p.X-cx, p.Y-cy
			reflections := [][2]int{
				{dx, dy}, {-dx, dy}, {dx, -dy}, {-dx, -dy},
				{dy, dx}, {-dy, dx}, {dy, -dx}, {-dy, -dx},
			}
			for _, m := range reflections {
				if !c.has(cx+m[0], cy+m[1]) {
					t.Fatalf("r=%d: (%d,%d) plotted but reflection (%d,%d) missing", r, dx, dy, m[0], m[1])
				}
			}
			if dx < -r || dx > r || dy < -r || dy > r {
				t.Fatalf("r=%d: (%d,%d) outside bounding box", r, dx, dy)
			}
		}
		assert.True(t, c.has(cx+r, cy))
		assert.True(t, c.has(cx, cy-r))
	}
}

func TestCircleRadiusTwo(t *testing.T) {
	c := newCollect()
	Circle(0, 0, 2, c.plot)
	want := map[image.Point]struct{}{}
	for _, p := range []image.Point{
		{2, 0}, {-2, 0}, {0, 2}, {0, -2},
		{2, 1}, {2, -1}, {-2, 1}, {-2, -1},
		{1, 2}, {-1, 2}, {1, -2}, {-1, -2},
	} {
		want[p] = struct{}{}
	}
	assert.Equal(t, want, c.set)
}

func TestArcQuadrants(t *testing.T) {
	tests := []struct {
		name  string
		q     Quadrant
		signX int
		signY int
	}{
		{"top left", TopLeft, -1, -1},
		{"top right", TopRight, 1, -1},
		{"bottom right", BottomRight, 1, 1},
		{"bottom left", BottomLeft, -1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCollect()
			Arc(0, 0, 5, tt.q, c.plot)
			require.NotEmpty(t, c.set)
			for p := range c.set {
				if p.X*tt.signX < 0 || p.Y*tt.signY < 0 {
					t.Errorf("pixel %v outside quadrant", p)
				}
			}
		})
	}
}

func TestRoundRect(t *testing.T) {
	c := newCollect()
	RoundRect(10, 10, 14, 14, 2, c.plot)

	// Corners are cut
	for _, p := range []image.Point{{10, 10}, {14, 10}, {10, 14}, {14, 14}} {
		assert.False(t, c.has(p.X, p.Y), "corner %v plotted", p)
	}
	// Edge midpoints are kept
	for _, p := range []image.Point{{12, 10}, {12, 14}, {10, 12}, {14, 12}} {
		assert.True(t, c.has(p.X, p.Y), "edge %v missing", p)
	}
	// Arc pixels next to the corners
	for _, p := range []image.Point{{11, 10}, {10, 11}, {13, 10}, {14, 11}, {13, 14}, {14, 13}, {11, 14}, {10, 13}} {
		assert.True(t, c.has(p.X, p.Y), "arc %v missing", p)
	}
	// Nothing inside or outside the outline
	for p := range c.set {
		inside := p.X > 10 && p.X < 14 && p.Y > 10 && p.Y < 14
		outside := p.X < 10 || p.X > 14 || p.Y < 10 || p.Y > 14
		assert.False(t, inside || outside, "pixel %v off the outline", p)
	}
}
