package geom

import (
	"fmt"
	"strings"
)

// Dir is one of the four horizontal cardinal directions.
type Dir uint8

// The four directions, in canonical iteration order.
const (
	X Dir = iota
	Y
	NegX
	NegY
)

// AllDirs lists every direction in canonical order. Iterating it is the only
// sanctioned way to loop over directions so that generation stays
// deterministic.
var AllDirs = [4]Dir{X, Y, NegX, NegY}

var dirNames = [4]string{"x", "y", "-x", "-y"}

func (d Dir) String() string {
	if int(d) < len(dirNames) {
		return dirNames[d]
	}
	return fmt.Sprintf("Dir(%d)", uint8(d))
}

// ParseDir parses the String form of a direction.
//
// Postcondition: Returns the direction or an error for unknown names.
func ParseDir(s string) (Dir, error) {
	for i, n := range dirNames {
		if strings.EqualFold(s, n) {
			return Dir(i), nil
		}
	}
	return 0, fmt.Errorf("geom: unknown direction %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (d Dir) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Dir) UnmarshalText(b []byte) error {
	v, err := ParseDir(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// Opposite returns the direction pointing the other way.
func (d Dir) Opposite() Dir {
	switch d {
	case X:
		return NegX
	case Y:
		return NegY
	case NegX:
		return X
	default:
		return Y
	}
}

// Orthogonal returns the positive direction along the other axis.
func (d Dir) Orthogonal() Dir {
	if d.IsX() {
		return Y
	}
	return X
}

// RotatedCCW rotates d a quarter turn counter-clockwise.
func (d Dir) RotatedCCW() Dir {
	switch d {
	case X:
		return Y
	case Y:
		return NegX
	case NegX:
		return NegY
	default:
		return X
	}
}

// RotatedCW rotates d a quarter turn clockwise.
func (d Dir) RotatedCW() Dir {
	switch d {
	case X:
		return NegY
	case Y:
		return X
	case NegX:
		return Y
	default:
		return NegX
	}
}

// IsX reports whether d lies on the x axis.
func (d Dir) IsX() bool { return d == X || d == NegX }

// Abs returns the positive direction on d's axis.
func (d Dir) Abs() Dir {
	if d.IsX() {
		return X
	}
	return Y
}

// Signum is +1 for positive directions and -1 for negative ones.
func (d Dir) Signum() int {
	if d == X || d == Y {
		return 1
	}
	return -1
}

// ToVec2 returns the unit vector of d.
func (d Dir) ToVec2() Vec2 {
	switch d {
	case X:
		return Vec2{1, 0}
	case Y:
		return Vec2{0, 1}
	case NegX:
		return Vec2{-1, 0}
	default:
		return Vec2{0, -1}
	}
}

// FromVec2 returns the direction of the dominant component of v. Ties and
// the zero vector resolve to the y axis.
func FromVec2(v Vec2) Dir {
	if abs(v.X) > abs(v.Y) {
		if v.X > 0 {
			return X
		}
		return NegX
	}
	if v.Y > 0 {
		return Y
	}
	return NegY
}

// Select returns the component of v on d's axis.
func (d Dir) Select(v Vec2) int {
	if d.IsX() {
		return v.X
	}
	return v.Y
}

// SelectWith takes d's axis component from a and the other from b.
func (d Dir) SelectWith(a, b Vec2) Vec2 {
	if d.IsX() {
		return Vec2{a.X, b.Y}
	}
	return Vec2{b.X, a.Y}
}

// SelectAabr returns the coordinate of the side of r facing d.
func (d Dir) SelectAabr(r Aabr) int {
	switch d {
	case X:
		return r.Max.X
	case Y:
		return r.Max.Y
	case NegX:
		return r.Min.X
	default:
		return r.Min.Y
	}
}

// SelectAabrWith returns the point on the side of r facing d whose other
// coordinate is taken from other.
func (d Dir) SelectAabrWith(r Aabr, other Vec2) Vec2 {
	return d.SelectWith(Broadcast(d.SelectAabr(r)), other)
}

// Vec2Abs builds a vector with along on d's axis and across on the other.
func (d Dir) Vec2Abs(along, across int) Vec2 {
	if d.IsX() {
		return Vec2{along, across}
	}
	return Vec2{across, along}
}

// ExtendAabr moves the side of r facing d outward by n. Negative n pulls it
// inward.
func (d Dir) ExtendAabr(r Aabr, n int) Aabr {
	switch d {
	case X:
		r.Max.X += n
	case Y:
		r.Max.Y += n
	case NegX:
		r.Min.X -= n
	default:
		r.Min.Y -= n
	}
	return r
}

// TrimAabr removes n from the side of r facing away from d, keeping the side
// facing d in place.
func (d Dir) TrimAabr(r Aabr, n int) Aabr {
	return d.Opposite().ExtendAabr(r, -n)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// DirSet is a set of directions stored as a bitmask.
type DirSet uint8

// AllDirSet contains every direction.
const AllDirSet DirSet = 0b1111

// DirSetOf builds a set from the given directions.
func DirSetOf(dirs ...Dir) DirSet {
	var s DirSet
	for _, d := range dirs {
		s = s.With(d)
	}
	return s
}

// Has reports whether d is in s.
func (s DirSet) Has(d Dir) bool { return s&(1<<d) != 0 }

// With returns s plus d.
func (s DirSet) With(d Dir) DirSet { return s | 1<<d }

// Without returns s minus d.
func (s DirSet) Without(d Dir) DirSet { return s &^ (1 << d) }

// IsEmpty reports whether s has no members.
func (s DirSet) IsEmpty() bool { return s&AllDirSet == 0 }

// Dirs returns the members of s in canonical order.
func (s DirSet) Dirs() []Dir {
	var out []Dir
	for _, d := range AllDirs {
		if s.Has(d) {
			out = append(out, d)
		}
	}
	return out
}

// Len returns the number of members.
func (s DirSet) Len() int { return len(s.Dirs()) }
