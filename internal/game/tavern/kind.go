package tavern

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/tavern/internal/game/dice"
	"github.com/cory-johannsen/tavern/internal/game/geom"
)

// Kind is the architectural category of a room.
type Kind uint8

// Room kinds in catalog order.
const (
	Garden Kind = iota
	Stage
	Bar
	Seating
	Entrance
	Cellar
	numKinds
)

// AllKinds lists every kind in catalog order.
var AllKinds = [numKinds]Kind{Garden, Stage, Bar, Seating, Entrance, Cellar}

var kindNames = [numKinds]string{"garden", "stage", "bar", "seating", "entrance", "cellar"}

func (k Kind) String() string {
	if k < numKinds {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ParseKind parses the String form of a kind.
func ParseKind(s string) (Kind, error) {
	for i, n := range kindNames {
		if strings.EqualFold(s, n) {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("tavern: unknown room kind %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Counts tallies how many rooms of each kind exist.
type Counts [numKinds]int

// IntRange is an inclusive integer range.
type IntRange struct {
	Min, Max int
}

// Contains reports whether Min <= v <= Max.
func (r IntRange) Contains(v int) bool { return r.Min <= v && v <= r.Max }

// SizeRange returns the permitted side length and area of a room of kind k.
// Side lengths and area are measured as Aabr.Size and Aabr.Area.
func (k Kind) SizeRange() (side, area IntRange) {
	switch k {
	case Garden:
		return IntRange{5, 20}, IntRange{35, 250}
	case Seating:
		return IntRange{4, 20}, IntRange{35, 250}
	case Cellar:
		return IntRange{6, 12}, IntRange{35, 110}
	case Stage:
		return IntRange{11, 22}, IntRange{150, 400}
	case Bar:
		return IntRange{9, 16}, IntRange{80, 196}
	default:
		return IntRange{3, 7}, IntRange{12, 40}
	}
}

// Chance returns the base weight for adding another room of kind k given the
// rooms that already exist. Weights decay with repetition.
func (k Kind) Chance(counts *Counts) float64 {
	n := counts[k]
	switch k {
	case Garden:
		d := float64(1 + n)
		return 0.05 / (d * d)
	case Seating:
		return 0.4 / float64(1+n)
	case Stage:
		if n == 0 {
			return 1
		}
		return 0
	case Bar:
		switch n {
		case 0:
			return 1
		case 1:
			return 0.01
		default:
			return 0
		}
	case Cellar:
		return 1
	default:
		return 0
	}
}

// Fits reports whether maxBounds is large enough for the smallest room of
// kind k.
func (k Kind) Fits(maxBounds geom.Aabr) bool {
	if !maxBounds.IsValid() {
		return false
	}
	side, area := k.SizeRange()
	return side.Min <= maxBounds.Size().ReduceMin() && area.Min <= maxBounds.Area()
}

// BasementRooms returns the kinds that may be grown directly beneath k.
func (k Kind) BasementRooms() []Kind {
	if k == Bar {
		return []Kind{Cellar}
	}
	return nil
}

// SideRoomCandidates returns the kinds that may be grown sideways from k.
func (k Kind) SideRoomCandidates() []Kind {
	if k == Cellar {
		return []Kind{Cellar}
	}
	return []Kind{Stage, Garden, Bar, Seating}
}

// EntranceLottery returns the lottery for the room just inside the entrance,
// restricted to kinds that fit maxBounds. Warm climates favour a garden.
//
// Postcondition: Returns dice.ErrEmptyLottery when nothing fits.
func EntranceLottery(temperature float64, maxBounds geom.Aabr) (*dice.Lottery[Kind], error) {
	return positiveLottery([]dice.Entry[Kind]{
		{Weight: 0.5 * temperature, Item: Garden},
		{Weight: 2, Item: Entrance},
	}, maxBounds)
}

// SideRoomLottery returns the lottery for a room grown sideways from k.
//
// Postcondition: Returns dice.ErrEmptyLottery when no candidate fits or every
// candidate has zero weight.
func (k Kind) SideRoomLottery(maxBounds geom.Aabr, counts *Counts, temperature float64) (*dice.Lottery[Kind], error) {
	cands := k.SideRoomCandidates()
	entries := make([]dice.Entry[Kind], 0, len(cands))
	for _, c := range cands {
		w := c.Chance(counts)
		if c == Garden {
			w *= temperature
		}
		entries = append(entries, dice.Entry[Kind]{Weight: w, Item: c})
	}
	return positiveLottery(entries, maxBounds)
}

// BasementLottery returns the lottery for a room grown beneath k.
//
// Postcondition: Returns dice.ErrEmptyLottery when k has no basement kinds or
// none fit.
func (k Kind) BasementLottery(maxBounds geom.Aabr, counts *Counts) (*dice.Lottery[Kind], error) {
	cands := k.BasementRooms()
	entries := make([]dice.Entry[Kind], 0, len(cands))
	for _, c := range cands {
		entries = append(entries, dice.Entry[Kind]{Weight: c.Chance(counts), Item: c})
	}
	return positiveLottery(entries, maxBounds)
}

// positiveLottery keeps entries with positive weight whose kind fits.
func positiveLottery(entries []dice.Entry[Kind], maxBounds geom.Aabr) (*dice.Lottery[Kind], error) {
	kept := entries[:0:0]
	for _, e := range entries {
		if e.Weight > 0 && e.Item.Fits(maxBounds) {
			kept = append(kept, e)
		}
	}
	return dice.NewLottery(kept)
}
