package dice

import (
	"errors"
	"fmt"
)

// ErrEmptyLottery is returned when a lottery is built with no entries.
var ErrEmptyLottery = errors.New("dice: lottery has no entries")

// Entry is one weighted item of a Lottery.
type Entry[T any] struct {
	Weight float64
	Item   T
}

// Lottery is a weighted choice over a fixed list of items.
//
// Invariant: items and cumulative ends have equal, non-zero length; ends are
// non-decreasing.
type Lottery[T any] struct {
	items []T
	ends  []float64
	total float64
}

// NewLottery builds a lottery from entries in order.
//
// Precondition: every weight is finite and non-negative.
// Postcondition: Returns ErrEmptyLottery when entries is empty, or an error
// naming the first negative weight.
func NewLottery[T any](entries []Entry[T]) (*Lottery[T], error) {
	if len(entries) == 0 {
		return nil, ErrEmptyLottery
	}
	l := &Lottery[T]{
		items: make([]T, 0, len(entries)),
		ends:  make([]float64, 0, len(entries)),
	}
	for i, e := range entries {
		if e.Weight < 0 {
			return nil, fmt.Errorf("dice: lottery entry %d has negative weight %v", i, e.Weight)
		}
		l.total += e.Weight
		l.items = append(l.items, e.Item)
		l.ends = append(l.ends, l.total)
	}
	return l, nil
}

// MustLottery is NewLottery that panics on error. It is meant for entry lists
// whose non-emptiness the caller has already established.
func MustLottery[T any](entries []Entry[T]) *Lottery[T] {
	l, err := NewLottery(entries)
	if err != nil {
		panic(err)
	}
	return l
}

// Len returns the number of entries.
func (l *Lottery[T]) Len() int { return len(l.items) }

// Items returns the items in entry order.
func (l *Lottery[T]) Items() []T {
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

// Total returns the sum of all weights.
func (l *Lottery[T]) Total() float64 { return l.total }

// ChooseSeeded maps seed onto the cumulative weights and returns the chosen
// item. The mapping only uses the low 16 bits of seed, so equal seeds always
// pick the same item.
//
// Postcondition: if any weight is positive, the result has positive weight.
func (l *Lottery[T]) ChooseSeeded(seed uint32) T {
	x := float64(seed%(1<<16)) / (1 << 16) * l.total
	for i, end := range l.ends {
		if x < end {
			return l.items[i]
		}
	}
	return l.items[l.lastPositive()]
}

// Choose draws a seed from src and returns ChooseSeeded of it.
func (l *Lottery[T]) Choose(src Source) T {
	return l.ChooseSeeded(src.Uint32())
}

// lastPositive returns the index of the last entry with positive weight, or
// the last index when every weight is zero.
func (l *Lottery[T]) lastPositive() int {
	prev := 0.0
	last := len(l.ends) - 1
	for i, end := range l.ends {
		if end > prev {
			last = i
		}
		prev = end
	}
	return last
}
