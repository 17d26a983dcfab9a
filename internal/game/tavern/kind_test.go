package tavern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/tavern/internal/game/dice"
	"github.com/cory-johannsen/tavern/internal/game/geom"
)

func box(x0, y0, x1, y1 int) geom.Aabr {
	return geom.Aabr{Min: geom.V2(x0, y0), Max: geom.V2(x1, y1)}
}

func TestKind_ParseRoundTrip(t *testing.T) {
	for _, k := range AllKinds {
		got, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	_, err := ParseKind("dungeon")
	assert.Error(t, err)
}

func TestKind_ChanceDecays(t *testing.T) {
	var c Counts
	assert.Equal(t, 1.0, Bar.Chance(&c))
	assert.Equal(t, 1.0, Stage.Chance(&c))
	assert.Equal(t, 0.05, Garden.Chance(&c))
	assert.Equal(t, 0.4, Seating.Chance(&c))
	assert.Equal(t, 0.0, Entrance.Chance(&c))

	c[Bar], c[Stage], c[Garden], c[Seating], c[Cellar] = 1, 1, 1, 1, 9
	assert.Equal(t, 0.01, Bar.Chance(&c))
	assert.Equal(t, 0.0, Stage.Chance(&c))
	assert.InDelta(t, 0.0125, Garden.Chance(&c), 1e-12)
	assert.Equal(t, 0.2, Seating.Chance(&c))
	assert.Equal(t, 1.0, Cellar.Chance(&c))

	c[Bar] = 2
	assert.Equal(t, 0.0, Bar.Chance(&c))
}

func TestKind_Fits(t *testing.T) {
	assert.True(t, Entrance.Fits(box(0, 0, 3, 4)))
	assert.False(t, Entrance.Fits(box(0, 0, 2, 10)), "side too short")
	assert.False(t, Entrance.Fits(box(0, 0, 3, 3)), "area too small")
	assert.True(t, Stage.Fits(box(0, 0, 11, 14)))
	assert.False(t, Stage.Fits(box(0, 0, 10, 40)))
	assert.False(t, Garden.Fits(box(5, 5, 0, 0)), "invalid bounds never fit")
}

func TestKind_BasementOnlyUnderBar(t *testing.T) {
	for _, k := range AllKinds {
		if k == Bar {
			assert.Equal(t, []Kind{Cellar}, k.BasementRooms())
		} else {
			assert.Empty(t, k.BasementRooms())
		}
	}
}

func TestEntranceLottery_ColdExcludesGarden(t *testing.T) {
	l, err := EntranceLottery(0, box(0, 0, 20, 20))
	require.NoError(t, err)
	assert.Equal(t, []Kind{Entrance}, l.Items())

	l, err = EntranceLottery(1, box(0, 0, 20, 20))
	require.NoError(t, err)
	assert.Equal(t, []Kind{Garden, Entrance}, l.Items())
}

func TestEntranceLottery_OnlyFittingKinds(t *testing.T) {
	l, err := EntranceLottery(1, box(0, 0, 4, 4))
	require.NoError(t, err)
	assert.Equal(t, []Kind{Entrance}, l.Items())

	_, err = EntranceLottery(1, box(0, 0, 2, 2))
	assert.ErrorIs(t, err, dice.ErrEmptyLottery)
}

func TestSideRoomLottery_CellarOnlyGrowsCellars(t *testing.T) {
	var c Counts
	l, err := Cellar.SideRoomLottery(box(0, 0, 40, 40), &c, 1)
	require.NoError(t, err)
	assert.Equal(t, []Kind{Cellar}, l.Items())
}

func TestSideRoomLottery_FiltersBySize(t *testing.T) {
	var c Counts
	l, err := Seating.SideRoomLottery(box(0, 0, 8, 8), &c, 1)
	require.NoError(t, err)
	assert.Equal(t, []Kind{Garden, Seating}, l.Items())

	l, err = Seating.SideRoomLottery(box(0, 0, 8, 8), &c, -1)
	require.NoError(t, err)
	assert.Equal(t, []Kind{Seating}, l.Items(), "cold weather removes gardens")

	_, err = Seating.SideRoomLottery(box(0, 0, 3, 3), &c, 1)
	assert.ErrorIs(t, err, dice.ErrEmptyLottery)
}

func TestBasementLottery(t *testing.T) {
	var c Counts
	l, err := Bar.BasementLottery(box(0, 0, 20, 20), &c)
	require.NoError(t, err)
	assert.Equal(t, []Kind{Cellar}, l.Items())

	_, err = Seating.BasementLottery(box(0, 0, 20, 20), &c)
	assert.ErrorIs(t, err, dice.ErrEmptyLottery)
}

// TestSideRoomLottery_NeverOffersMisfit verifies every offered kind fits the
// bounds and has positive weight.
func TestSideRoomLottery_NeverOffersMisfit(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		from := rapid.SampledFrom(AllKinds[:]).Draw(rt, "from")
		b := box(0, 0, rapid.IntRange(0, 30).Draw(rt, "w"), rapid.IntRange(0, 30).Draw(rt, "h"))
		var c Counts
		for i := range c {
			c[i] = rapid.IntRange(0, 3).Draw(rt, "count")
		}
		temp := rapid.Float64Range(-1, 1).Draw(rt, "temp")
		l, err := from.SideRoomLottery(b, &c, temp)
		if err != nil {
			return
		}
		for _, k := range l.Items() {
			assert.True(rt, k.Fits(b), "%v offered in %v", k, b)
			assert.Greater(rt, k.Chance(&c), 0.0)
		}
	})
}
