package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func genAabr(t *rapid.T, label string) Aabr {
	x := rapid.IntRange(-50, 50).Draw(t, label+"_x")
	y := rapid.IntRange(-50, 50).Draw(t, label+"_y")
	w := rapid.IntRange(0, 30).Draw(t, label+"_w")
	h := rapid.IntRange(0, 30).Draw(t, label+"_h")
	return Aabr{Min: V2(x, y), Max: V2(x+w, y+h)}
}

func TestDir_OppositeIsInvolution(t *testing.T) {
	for _, d := range AllDirs {
		assert.Equal(t, d, d.Opposite().Opposite())
		assert.NotEqual(t, d, d.Opposite())
		assert.Equal(t, d.ToVec2().Scale(-1), d.Opposite().ToVec2())
	}
}

func TestDir_Rotation(t *testing.T) {
	for _, d := range AllDirs {
		assert.Equal(t, d, d.RotatedCW().RotatedCCW())
		assert.Equal(t, d.Opposite(), d.RotatedCW().RotatedCW())
		assert.NotEqual(t, d.IsX(), d.RotatedCW().IsX())
	}
	assert.Equal(t, Y, X.RotatedCCW())
	assert.Equal(t, NegY, X.RotatedCW())
}

func TestDir_OrthogonalIsPositiveOtherAxis(t *testing.T) {
	assert.Equal(t, Y, X.Orthogonal())
	assert.Equal(t, Y, NegX.Orthogonal())
	assert.Equal(t, X, Y.Orthogonal())
	assert.Equal(t, X, NegY.Orthogonal())
}

func TestDir_FromVec2(t *testing.T) {
	assert.Equal(t, X, FromVec2(V2(3, 1)))
	assert.Equal(t, NegX, FromVec2(V2(-3, 1)))
	assert.Equal(t, Y, FromVec2(V2(0, 2)))
	assert.Equal(t, NegY, FromVec2(V2(1, -4)))
	for _, d := range AllDirs {
		assert.Equal(t, d, FromVec2(d.ToVec2().Scale(5)))
	}
}

func TestDir_SelectAabr(t *testing.T) {
	r := Aabr{Min: V2(1, 2), Max: V2(7, 9)}
	assert.Equal(t, 7, X.SelectAabr(r))
	assert.Equal(t, 9, Y.SelectAabr(r))
	assert.Equal(t, 1, NegX.SelectAabr(r))
	assert.Equal(t, 2, NegY.SelectAabr(r))
	assert.Equal(t, V2(7, 42), X.SelectAabrWith(r, V2(0, 42)))
	assert.Equal(t, V2(42, 2), NegY.SelectAabrWith(r, V2(42, 0)))
}

func TestDir_ExtendAndTrim(t *testing.T) {
	r := Aabr{Min: V2(0, 0), Max: V2(10, 10)}
	assert.Equal(t, Aabr{Min: V2(0, 0), Max: V2(12, 10)}, X.ExtendAabr(r, 2))
	assert.Equal(t, Aabr{Min: V2(0, -3), Max: V2(10, 10)}, NegY.ExtendAabr(r, 3))

	trimmed := X.TrimAabr(r, 7)
	assert.Equal(t, 10, trimmed.Max.X, "trim keeps the side facing the direction")
	assert.Equal(t, 3, trimmed.Size().X)
}

func TestDir_ParseRoundTrip(t *testing.T) {
	for _, d := range AllDirs {
		got, err := ParseDir(d.String())
		require.NoError(t, err)
		assert.Equal(t, d, got)
	}
	_, err := ParseDir("north")
	assert.Error(t, err)
}

func TestDirSet(t *testing.T) {
	s := DirSetOf(X, NegY)
	assert.True(t, s.Has(X))
	assert.False(t, s.Has(Y))
	assert.Equal(t, []Dir{X, NegY}, s.Dirs())
	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Without(X).Without(NegY).IsEmpty())
	assert.Equal(t, 4, AllDirSet.Len())
}

func TestAabr_Basics(t *testing.T) {
	r := Aabr{Min: V2(2, 3), Max: V2(6, 10)}
	assert.Equal(t, V2(4, 7), r.Size())
	assert.Equal(t, 28, r.Area())
	assert.Equal(t, V2(4, 6), r.Center())
	assert.True(t, r.ContainsPoint(V2(2, 10)))
	assert.False(t, r.ContainsPoint(V2(1, 10)))
	assert.Equal(t, V2(6, 3), r.ProjectedPoint(V2(20, -5)))
	assert.False(t, Aabr{Min: V2(1, 0), Max: V2(0, 0)}.IsValid())
}

func TestPropertyIntersectionIsContained(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := genAabr(t, "a")
		b := genAabr(t, "b")
		in := a.Intersection(b)
		if in.IsValid() {
			assert.True(t, a.ContainsAabr(in))
			assert.True(t, b.ContainsAabr(in))
			assert.True(t, a.CollidesWith(b))
		} else {
			assert.False(t, a.CollidesWith(b))
		}
	})
}

func TestPropertyMadeValidIsValid(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := Aabr{
			Min: V2(rapid.IntRange(-20, 20).Draw(t, "x0"), rapid.IntRange(-20, 20).Draw(t, "y0")),
			Max: V2(rapid.IntRange(-20, 20).Draw(t, "x1"), rapid.IntRange(-20, 20).Draw(t, "y1")),
		}
		v := a.MadeValid()
		assert.True(t, v.IsValid())
		assert.Equal(t, v, v.MadeValid())
	})
}

func TestPropertyProjectedPointInside(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := genAabr(t, "a")
		p := V2(rapid.IntRange(-100, 100).Draw(t, "px"), rapid.IntRange(-100, 100).Draw(t, "py"))
		assert.True(t, a.ContainsPoint(a.ProjectedPoint(p)))
	})
}

func TestAabb_OverlapsZ(t *testing.T) {
	a := Aabb{Min: V3(0, 0, 0), Max: V3(1, 1, 5)}
	b := Aabb{Min: V3(0, 0, 5), Max: V3(1, 1, 9)}
	c := Aabb{Min: V3(0, 0, 6), Max: V3(1, 1, 9)}
	assert.True(t, a.OverlapsZ(b))
	assert.False(t, a.OverlapsZ(c))
	assert.Equal(t, Aabr{Min: V2(0, 0), Max: V2(1, 1)}, a.XY())
}
