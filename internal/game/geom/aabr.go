package geom

import "fmt"

// Aabr is an axis-aligned rectangle with inclusive Min and Max corners.
//
// Invariant: a valid Aabr has Min.X <= Max.X and Min.Y <= Max.Y. Size is
// Max - Min, so a single cell has size (0, 0).
type Aabr struct {
	Min Vec2 `yaml:"min"`
	Max Vec2 `yaml:"max"`
}

// Size returns Max - Min.
func (a Aabr) Size() Vec2 { return a.Max.Sub(a.Min) }

// Area returns the product of Size. A one-cell-wide rectangle has area 0.
func (a Aabr) Area() int { return a.Size().Product() }

// IsValid reports whether Min <= Max on both axes.
func (a Aabr) IsValid() bool { return a.Min.X <= a.Max.X && a.Min.Y <= a.Max.Y }

// MadeValid returns a copy with Min and Max swapped per axis where needed.
//
// Postcondition: the result is valid and covers the same coordinates.
func (a Aabr) MadeValid() Aabr {
	if a.Min.X > a.Max.X {
		a.Min.X, a.Max.X = a.Max.X, a.Min.X
	}
	if a.Min.Y > a.Max.Y {
		a.Min.Y, a.Max.Y = a.Max.Y, a.Min.Y
	}
	return a
}

// Intersection returns the overlap of a and o. The result is invalid when
// the two do not overlap.
func (a Aabr) Intersection(o Aabr) Aabr {
	return Aabr{
		Min: Vec2{max(a.Min.X, o.Min.X), max(a.Min.Y, o.Min.Y)},
		Max: Vec2{min(a.Max.X, o.Max.X), min(a.Max.Y, o.Max.Y)},
	}
}

// CollidesWith reports whether a and o share at least one cell.
func (a Aabr) CollidesWith(o Aabr) bool { return a.Intersection(o).IsValid() }

// ContainsAabr reports whether o lies entirely within a.
func (a Aabr) ContainsAabr(o Aabr) bool {
	return a.Min.X <= o.Min.X && a.Min.Y <= o.Min.Y && a.Max.X >= o.Max.X && a.Max.Y >= o.Max.Y
}

// ContainsPoint reports whether p lies within a.
func (a Aabr) ContainsPoint(p Vec2) bool {
	return a.Min.X <= p.X && p.X <= a.Max.X && a.Min.Y <= p.Y && p.Y <= a.Max.Y
}

// ProjectedPoint clamps p into a.
//
// Precondition: a is valid.
func (a Aabr) ProjectedPoint(p Vec2) Vec2 {
	return Vec2{clamp(p.X, a.Min.X, a.Max.X), clamp(p.Y, a.Min.Y, a.Max.Y)}
}

// Center returns the midpoint, truncated toward zero.
func (a Aabr) Center() Vec2 {
	return Vec2{(a.Min.X + a.Max.X) / 2, (a.Min.Y + a.Max.Y) / 2}
}

// Expand grows a by n on every side; negative n shrinks it.
func (a Aabr) Expand(n int) Aabr {
	return Aabr{Min: a.Min.AddScalar(-n), Max: a.Max.AddScalar(n)}
}

func (a Aabr) String() string { return fmt.Sprintf("[%v..%v]", a.Min, a.Max) }

// Aabb is an axis-aligned voxel box with inclusive Min and Max corners.
type Aabb struct {
	Min Vec3 `yaml:"min"`
	Max Vec3 `yaml:"max"`
}

// XY returns the horizontal footprint of b.
func (b Aabb) XY() Aabr { return Aabr{Min: b.Min.XY(), Max: b.Max.XY()} }

// MadeValid returns a copy with Min and Max swapped per axis where needed.
func (b Aabb) MadeValid() Aabb {
	r := b.XY().MadeValid()
	minZ, maxZ := b.Min.Z, b.Max.Z
	if minZ > maxZ {
		minZ, maxZ = maxZ, minZ
	}
	return Aabb{Min: r.Min.WithZ(minZ), Max: r.Max.WithZ(maxZ)}
}

// OverlapsZ reports whether the inclusive altitude ranges of b and o share a
// level.
func (b Aabb) OverlapsZ(o Aabb) bool {
	return b.Min.Z <= o.Max.Z && o.Min.Z <= b.Max.Z
}

func (b Aabb) String() string { return fmt.Sprintf("[%v..%v]", b.Min, b.Max) }

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp restricts v to [lo, hi].
//
// Precondition: lo <= hi.
func Clamp(v, lo, hi int) int { return clamp(v, lo, hi) }
