// Package raster converts shape parameters into pixel coordinates.
//
// Every function is pure integer arithmetic: it knows nothing about the
// display and reports each pixel through a Plotter. A pixel may be reported
// more than once; plotting is expected to be idempotent.
package raster

// Plotter receives the pixels of a shape.
type Plotter func(x, y int)

// Quadrant selects corners of a circle for Arc.
type Quadrant uint8

// Circle quadrants, in screen coordinates (y grows downwards).
const (
	TopLeft Quadrant = 1 << iota
	TopRight
	BottomRight
	BottomLeft

	AllQuadrants = TopLeft | TopRight | BottomRight | BottomLeft
)

// Line plots a line from (x0, y0) to (x1, y1) with integer error accumulation.
//
// Lines with |slope| <= 1 emit exactly one pixel per column, x0 through x1;
// y moves by one step when the accumulated error goes past half a pixel.
// Steeper lines emit one pixel per row instead so that they stay connected.
// When x1 < x0 the endpoints are swapped.
func Line(x0, y0, x1, y1 int, plot Plotter) {
	if x1 < x0 {
		x0, x1 = x1, x0
		y0, y1 = y1, y0
	}
	dx := x1 - x0
	dy := y1 - y0
	ystep := 1
	if dy < 0 {
		dy = -dy
		ystep = -1
	}

	if dy <= dx {
		e := 0
		y := y0
		for x := x0; x <= x1; x++ {
			plot(x, y)
			e += 2 * dy
			if e > dx {
				y += ystep
				e -= 2 * dx
			}
		}
		return
	}

	e := 0
	x := x0
	for i := 0; i <= dy; i++ {
		plot(x, y0+i*ystep)
		e += 2 * dx
		if e > dy {
			x++
			e -= 2 * dy
		}
	}
}

// Rect plots the outline of the rectangle with corners (x0, y0) and (x1, y1).
func Rect(x0, y0, x1, y1 int, plot Plotter) {
	Line(x0, y0, x1, y0, plot)
	Line(x0, y1, x1, y1, plot)
	Line(x0, y0, x0, y1, plot)
	Line(x1, y0, x1, y1, plot)
}

// RoundRect plots the outline of a rectangle whose corners are replaced by
// quarter circles of radius r.
//
// The caller must make sure each edge is at least 2*r+1 pixels long.
func RoundRect(x0, y0, x1, y1, r int, plot Plotter) {
	Line(x0+r, y0, x1-r, y0, plot)
	Line(x0+r, y1, x1-r, y1, plot)
	Line(x0, y0+r, x0, y1-r, plot)
	Line(x1, y0+r, x1, y1-r, plot)

	Arc(x0+r, y0+r, r, TopLeft, plot)
	Arc(x1-r, y0+r, r, TopRight, plot)
	Arc(x1-r, y1-r, r, BottomRight, plot)
	Arc(x0+r, y1-r, r, BottomLeft, plot)
}

// Circle plots a circle of radius r centered on (cx, cy).
func Circle(cx, cy, r int, plot Plotter) {
	Arc(cx, cy, r, AllQuadrants, plot)
}

// Arc plots the selected quadrants of a circle of radius r centered on
// (cx, cy) using the midpoint algorithm.
//
// Each step computes one point of the first octant and mirrors it into the
// other seven; only the mirrors falling into q are plotted.
func Arc(cx, cy, r int, q Quadrant, plot Plotter) {
	if r < 0 {
		return
	}
	x, y := r, 0
	d := 1 - r
	for x >= y {
		if q&TopLeft != 0 {
			plot(cx-x, cy-y)
			plot(cx-y, cy-x)
		}
		if q&TopRight != 0 {
			plot(cx+x, cy-y)
			plot(cx+y, cy-x)
		}
		if q&BottomRight != 0 {
			plot(cx+x, cy+y)
			plot(cx+y, cy+x)
		}
		if q&BottomLeft != 0 {
			plot(cx-x, cy+y)
			plot(cx-y, cy+x)
		}
		y++
		if d < 0 {
			d += 2*y + 1
		} else {
			x--
			d += 2*(y-x) + 1
		}
	}
}
