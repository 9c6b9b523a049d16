// SPDX-License-Identifier: MIT

package manifold

import "github.com/katalvlaran/lvgeo/symbolic"

// Chart is a coordinate chart: an ordered list of coordinate symbols and the
// coordinate frame (∂/∂x^i) it induces.
type Chart struct {
	name    string
	coords  []string
	symbols []symbolic.Expr
	start   int
	frame   *Frame
}

// Name returns the chart name.
func (c *Chart) Name() string { return c.name }

// Coords returns a copy of the coordinate names in index order.
func (c *Chart) Coords() []string {
	out := make([]string, len(c.coords))
	copy(out, c.coords)

	return out
}

// Symbols returns the coordinate symbols in index order.
func (c *Chart) Symbols() []symbolic.Expr {
	out := make([]symbolic.Expr, len(c.symbols))
	copy(out, c.symbols)

	return out
}

// Coord returns the coordinate name for the manifold index i
// (StartIndex ≤ i < StartIndex+Dim). It panics on an out-of-range index.
func (c *Chart) Coord(i int) string { return c.coords[i-c.start] }

// Frame returns the coordinate frame of the chart.
func (c *Chart) Frame() *Frame { return c.frame }

// String returns the chart name.
func (c *Chart) String() string { return c.name }

// Frame is a vector frame on the manifold. Coordinate frames know their chart.
type Frame struct {
	name  string
	chart *Chart
}

// Name returns the frame name.
func (f *Frame) Name() string { return f.name }

// Chart returns the chart that induces f, or nil for a non-coordinate frame.
func (f *Frame) Chart() *Chart { return f.chart }

// IsCoordinate reports whether f is induced by a chart.
func (f *Frame) IsCoordinate() bool { return f.chart != nil }

// String returns the frame name.
func (f *Frame) String() string { return f.name }
