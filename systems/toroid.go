// Package systems provides the leaf logic of the chain game: toroidal
// geometry, the movement trail, wander noise, and color tiers.
package systems

import (
	"math"

	"github.com/pthm-cable/tether/components"
)

// Bounds describes a wrap-around plane with centered coordinates.
// Canonical positions lie in [-HalfW, +HalfW] x [-HalfH, +HalfH].
type Bounds struct {
	HalfW, HalfH float32
}

// NewBounds creates bounds for a map of the given full dimensions.
func NewBounds(width, height float32) Bounds {
	return Bounds{HalfW: width / 2, HalfH: height / 2}
}

// Width returns the full map width.
func (b Bounds) Width() float32 { return b.HalfW * 2 }

// Height returns the full map height.
func (b Bounds) Height() float32 { return b.HalfH * 2 }

// wrapAxis folds a coordinate back into [-half, +half].
func wrapAxis(v, half float32) float32 {
	size := half * 2
	for v > half {
		v -= size
	}
	for v < -half {
		v += size
	}
	return v
}

// Wrap folds a position back into the canonical coordinate range.
func (b Bounds) Wrap(p components.Position) components.Position {
	return components.Position{
		X: wrapAxis(p.X, b.HalfW),
		Y: wrapAxis(p.Y, b.HalfH),
	}
}

// wrappedDelta returns the per-axis delta from a to b with the smaller
// magnitude of the direct and the wrapped route.
func wrappedDelta(a, b components.Position, bo Bounds) (float32, float32) {
	dx := b.X - a.X
	if dx > bo.HalfW {
		dx -= bo.Width()
	} else if dx < -bo.HalfW {
		dx += bo.Width()
	}
	dy := b.Y - a.Y
	if dy > bo.HalfH {
		dy -= bo.Height()
	} else if dy < -bo.HalfH {
		dy += bo.Height()
	}
	return dx, dy
}

// WrappedDistance returns the shortest distance between two points on the
// wrap-around plane. Never exceeds the direct Euclidean distance.
func WrappedDistance(a, b components.Position, bo Bounds) float32 {
	dx, dy := wrappedDelta(a, b, bo)
	return float32(math.Sqrt(float64(dx*dx + dy*dy)))
}

// EuclideanDistance returns the direct distance, ignoring wrap-around.
func EuclideanDistance(a, b components.Position) float32 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return float32(math.Sqrt(float64(dx*dx + dy*dy)))
}

// WrappedLerp interpolates from a toward b along the shorter per-axis route,
// folding the result back into canonical range.
func WrappedLerp(a, b components.Position, t float32, bo Bounds) components.Position {
	dx, dy := wrappedDelta(a, b, bo)
	return bo.Wrap(components.Position{
		X: a.X + dx*t,
		Y: a.Y + dy*t,
	})
}

// ShortestMove advances current toward target by the given smoothing factor,
// taking the wrapped route across a map edge when that step is shorter.
// This is what makes chain segments cut across an edge instead of sliding
// the long way around.
func ShortestMove(current, target components.Position, bo Bounds, factor float32) components.Position {
	direct := components.Position{
		X: lerp(current.X, target.X, factor),
		Y: lerp(current.Y, target.Y, factor),
	}

	// Wrap-shifted copy of target, per axis
	wrapTarget := target
	if dx := target.X - current.X; dx > bo.HalfW {
		wrapTarget.X = target.X - bo.Width()
	} else if dx < -bo.HalfW {
		wrapTarget.X = target.X + bo.Width()
	}
	if dy := target.Y - current.Y; dy > bo.HalfH {
		wrapTarget.Y = target.Y - bo.Height()
	} else if dy < -bo.HalfH {
		wrapTarget.Y = target.Y + bo.Height()
	}

	wrapped := components.Position{
		X: lerp(current.X, wrapTarget.X, factor),
		Y: lerp(current.Y, wrapTarget.Y, factor),
	}

	if EuclideanDistance(current, direct) <= EuclideanDistance(current, wrapped) {
		return direct
	}
	return bo.Wrap(wrapped)
}
