package tavern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/tavern/internal/game/dice"
	"github.com/cory-johannsen/tavern/internal/game/geom"
)

// cellCover counts, for every cell of bounds, how many of rects contain it.
func cellCover(bounds geom.Aabr, rects []geom.Aabr) map[geom.Vec2]int {
	out := make(map[geom.Vec2]int)
	for x := bounds.Min.X; x <= bounds.Max.X; x++ {
		for y := bounds.Min.Y; y <= bounds.Max.Y; y++ {
			p := geom.V2(x, y)
			for _, r := range rects {
				if r.ContainsPoint(p) {
					out[p]++
				}
			}
		}
	}
	return out
}

func TestDecomposeAreas_NoAvoid(t *testing.T) {
	areas := decomposeAreas(box(0, 0, 5, 3), nil)
	assert.Equal(t, []geom.Aabr{box(0, 0, 5, 3)}, areas)
}

func TestDecomposeAreas_CentreHole(t *testing.T) {
	bounds := box(0, 0, 4, 4)
	areas := decomposeAreas(bounds, []geom.Aabr{box(2, 2, 2, 2)})
	assert.Equal(t, []geom.Aabr{
		box(0, 0, 1, 4),
		box(2, 0, 4, 1),
		box(2, 3, 4, 4),
		box(3, 2, 4, 2),
	}, areas)
}

func TestDecomposeAreas_DoesNotMutateAvoid(t *testing.T) {
	avoid := make([]geom.Aabr, 1, 8)
	avoid[0] = box(1, 1, 2, 2)
	decomposeAreas(box(0, 0, 6, 6), avoid)
	assert.Equal(t, []geom.Aabr{box(1, 1, 2, 2)}, avoid)
	assert.Equal(t, geom.Aabr{}, avoid[:2][1], "spare capacity must stay untouched")
}

func TestDecomposeAreas_PartitionsFreeCells(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		bounds := box(0, 0, rapid.IntRange(0, 15).Draw(rt, "w"), rapid.IntRange(0, 15).Draw(rt, "h"))
		n := rapid.IntRange(0, 4).Draw(rt, "n")
		avoid := make([]geom.Aabr, n)
		for i := range avoid {
			x := rapid.IntRange(0, bounds.Max.X).Draw(rt, "x")
			y := rapid.IntRange(0, bounds.Max.Y).Draw(rt, "y")
			avoid[i] = box(x, y, min(bounds.Max.X, x+rapid.IntRange(0, 5).Draw(rt, "aw")), min(bounds.Max.Y, y+rapid.IntRange(0, 5).Draw(rt, "ah")))
		}

		areas := decomposeAreas(bounds, avoid)
		for _, a := range areas {
			require.True(rt, a.IsValid())
			assert.True(rt, bounds.ContainsAabr(a), "%v outside %v", a, bounds)
			for _, v := range avoid {
				assert.False(rt, a.CollidesWith(v), "%v overlaps avoided %v", a, v)
			}
		}
		free := cellCover(bounds, areas)
		blocked := cellCover(bounds, avoid)
		for x := bounds.Min.X; x <= bounds.Max.X; x++ {
			for y := bounds.Min.Y; y <= bounds.Max.Y; y++ {
				p := geom.V2(x, y)
				if blocked[p] > 0 {
					assert.Zero(rt, free[p])
				} else {
					assert.Equal(rt, 1, free[p], "cell %v covered %d times", p, free[p])
				}
			}
		}
	})
}

func TestTable_Chairs(t *testing.T) {
	d := table(box(0, 0, 2, 2))
	assert.Equal(t, Table, d.Kind)
	assert.Equal(t, geom.V2(1, 1), d.Pos)
	assert.Equal(t, geom.AllDirSet, d.Chairs)

	d = table(box(0, 0, 3, 1))
	assert.Equal(t, geom.V2(1, 0), d.Pos)
	assert.Equal(t, geom.DirSetOf(geom.X, geom.NegX, geom.Y), d.Chairs)
}

func TestEdgeCount(t *testing.T) {
	fp := box(0, 0, 10, 10)
	assert.Equal(t, 4, edgeCount(fp, fp))
	assert.Equal(t, 2, edgeCount(box(0, 0, 3, 3), fp))
	assert.Equal(t, 0, edgeCount(box(2, 2, 3, 3), fp))
}

func TestTakeBest(t *testing.T) {
	areas := []geom.Aabr{box(0, 0, 1, 1), box(0, 0, 4, 4), box(0, 0, 2, 2)}
	best, rest, ok := takeBest(areas, func(a geom.Aabr) int { return a.Area() })
	require.True(t, ok)
	assert.Equal(t, box(0, 0, 4, 4), best)
	assert.ElementsMatch(t, []geom.Aabr{box(0, 0, 1, 1), box(0, 0, 2, 2)}, rest)

	_, rest, ok = takeBest(rest, func(geom.Aabr) int { return 0 })
	assert.False(t, ok)
	assert.Len(t, rest, 2)
}

func furnishedRoom(t *testing.T, kind Kind, seed uint64) Room {
	t.Helper()
	b := newTestBuilder(dice.NewSeededSource(seed), box(-50, -50, 50, 50))
	b.addRoom(geom.Aabb{Min: geom.V3(0, 0, 0), Max: geom.V3(12, 12, 4)}, kind)
	b.partitionWalls()
	b.computeDetailAreas()
	b.furnish()
	return b.rooms[0]
}

func TestFurnish_StageGetsPlatform(t *testing.T) {
	for seed := uint64(0); seed < 10; seed++ {
		room := furnishedRoom(t, Stage, seed)
		require.NotEmpty(t, room.Details)
		assert.Equal(t, StagePlatform, room.Details[0].Kind)
		assert.Equal(t, room.Footprint(), room.Details[0].Area)
		assert.Empty(t, room.DetailAreas)
	}
}

func TestFurnish_BarGetsCounter(t *testing.T) {
	room := furnishedRoom(t, Bar, 1)
	require.Len(t, room.Details, 1)
	assert.Equal(t, BarCounter, room.Details[0].Kind)
}

func TestFurnish_CellarKeepsAreas(t *testing.T) {
	room := furnishedRoom(t, Cellar, 1)
	assert.Empty(t, room.Details)
	assert.Equal(t, []geom.Aabr{room.Footprint()}, room.DetailAreas)
}

func TestFurnish_SeatingConsumesTableAreas(t *testing.T) {
	tables := 0
	for seed := uint64(0); seed < 20; seed++ {
		room := furnishedRoom(t, Seating, seed)
		for _, d := range room.Details {
			require.Equal(t, Table, d.Kind)
			assert.True(t, d.Area.ContainsPoint(d.Pos))
			for _, a := range room.DetailAreas {
				assert.False(t, a.CollidesWith(d.Area))
			}
			tables++
		}
	}
	assert.Positive(t, tables)
}
