package dice_test

import (
	"testing"

	"github.com/cory-johannsen/tavern/internal/game/dice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"
)

// fixedSource replays a fixed list of Uint32 values and returns zero otherwise.
type fixedSource struct {
	seeds []uint32
	i     int
}

func (f *fixedSource) Intn(n int) int   { return 0 }
func (f *fixedSource) Float64() float64 { return 0 }
func (f *fixedSource) Uint32() uint32 {
	v := f.seeds[f.i%len(f.seeds)]
	f.i++
	return v
}

func TestCryptoSource_Intn_InRange(t *testing.T) {
	src := dice.NewCryptoSource()
	for i := 0; i < 1000; i++ {
		v := src.Intn(6)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 6)
	}
}

func TestCryptoSource_Intn_PanicsOnZero(t *testing.T) {
	src := dice.NewCryptoSource()
	assert.Panics(t, func() { src.Intn(0) })
}

func TestCryptoSource_Float64_InUnitInterval(t *testing.T) {
	src := dice.NewCryptoSource()
	for i := 0; i < 1000; i++ {
		f := src.Float64()
		assert.GreaterOrEqual(t, f, 0.0)
		assert.Less(t, f, 1.0)
	}
}

func TestNewSeed_NonZero(t *testing.T) {
	assert.NotZero(t, dice.NewSeed())
}

// TestSeededSource_Deterministic verifies equal seeds replay equal streams.
func TestSeededSource_Deterministic(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Uint64().Draw(rt, "seed")
		a := dice.NewSeededSource(seed)
		b := dice.NewSeededSource(seed)
		for i := 0; i < 32; i++ {
			assert.Equal(rt, a.Uint32(), b.Uint32())
			assert.Equal(rt, a.Intn(100), b.Intn(100))
			assert.Equal(rt, a.Float64(), b.Float64())
		}
	})
}

func TestRange_Inclusive(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		lo := rapid.IntRange(-50, 50).Draw(rt, "lo")
		hi := lo + rapid.IntRange(0, 20).Draw(rt, "span")
		src := dice.NewSeededSource(rapid.Uint64().Draw(rt, "seed"))
		v := dice.Range(src, lo, hi)
		assert.GreaterOrEqual(rt, v, lo)
		assert.LessOrEqual(rt, v, hi)
	})
}

func TestRange_PanicsWhenReversed(t *testing.T) {
	assert.Panics(t, func() { dice.Range(dice.NewSeededSource(1), 3, 2) })
}

func TestChance_Extremes(t *testing.T) {
	src := dice.NewSeededSource(7)
	for i := 0; i < 100; i++ {
		assert.False(t, dice.Chance(src, 0))
		assert.True(t, dice.Chance(src, 1))
	}
}

func TestNewLottery_Empty(t *testing.T) {
	_, err := dice.NewLottery[string](nil)
	assert.ErrorIs(t, err, dice.ErrEmptyLottery)
	assert.Panics(t, func() { dice.MustLottery[string](nil) })
}

func TestNewLottery_NegativeWeight(t *testing.T) {
	_, err := dice.NewLottery([]dice.Entry[string]{{Weight: 1, Item: "a"}, {Weight: -1, Item: "b"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "entry 1")
}

func TestLottery_ChooseSeeded_Boundaries(t *testing.T) {
	l := dice.MustLottery([]dice.Entry[string]{
		{Weight: 1, Item: "a"},
		{Weight: 0, Item: "skip"},
		{Weight: 3, Item: "b"},
	})
	assert.Equal(t, 3, l.Len())
	assert.Equal(t, 4.0, l.Total())
	assert.Equal(t, "a", l.ChooseSeeded(0))
	assert.Equal(t, "a", l.ChooseSeeded(16383))
	assert.Equal(t, "b", l.ChooseSeeded(16384))
	assert.Equal(t, "b", l.ChooseSeeded(65535))
	// Only the low 16 bits matter.
	assert.Equal(t, l.ChooseSeeded(5), l.ChooseSeeded(5+1<<16))
}

// TestLottery_NeverPicksZeroWeight verifies that zero-weight entries are never
// chosen when some weight is positive.
func TestLottery_NeverPicksZeroWeight(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		weights := rapid.SliceOfN(rapid.SampledFrom([]float64{0, 0, 0.01, 0.5, 1, 5}), 1, 8).Draw(rt, "weights")
		weights = append(weights, 1)
		entries := make([]dice.Entry[int], len(weights))
		for i, w := range weights {
			entries[i] = dice.Entry[int]{Weight: w, Item: i}
		}
		l := dice.MustLottery(entries)
		got := l.ChooseSeeded(rapid.Uint32().Draw(rt, "seed"))
		assert.Greater(rt, weights[got], 0.0)
	})
}

func TestLottery_ItemsIsCopy(t *testing.T) {
	l := dice.MustLottery([]dice.Entry[int]{{Weight: 1, Item: 1}, {Weight: 1, Item: 2}})
	items := l.Items()
	items[0] = 99
	assert.Equal(t, []int{1, 2}, l.Items())
}

func TestLottery_ChooseUsesSourceSeed(t *testing.T) {
	l := dice.MustLottery([]dice.Entry[string]{{Weight: 1, Item: "a"}, {Weight: 1, Item: "b"}})
	src := &fixedSource{seeds: []uint32{0, 40000}}
	assert.Equal(t, "a", l.Choose(src))
	assert.Equal(t, "b", l.Choose(src))
}

func TestLoggedSource_LogsSeedDraws(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	src := dice.NewLoggedSource(&fixedSource{seeds: []uint32{42}}, zap.New(core))

	assert.Equal(t, uint32(42), src.Uint32())
	_ = src.Intn(3)
	_ = src.Float64()

	assert.Equal(t, 1, src.Draws())
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "seed draw", entry.Message)
	assert.Equal(t, int64(1), entry.ContextMap()["ordinal"])
	assert.Equal(t, uint32(42), entry.ContextMap()["seed"])
}
