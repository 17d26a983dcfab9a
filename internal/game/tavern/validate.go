package tavern

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/tavern/internal/game/geom"
)

// Validate checks every structural invariant of t and reports all
// violations at once.
//
// Postcondition: Returns nil iff rooms at overlapping altitudes never share
// footprint cells, every door lies strictly inside its wall with width 2 or
// 3, every room conforms to its kind's size ranges, exactly one entrance
// room touches the door, every roof sits one above the rooms it covers, and
// detail areas are disjoint and inside their rooms.
func (t *Tavern) Validate() error {
	var errs []string
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Sprintf(format, args...))
	}

	t.validateRooms(add)
	t.validateWalls(add)
	t.validateRoofs(add)
	t.validateEntrance(add)

	if len(errs) > 0 {
		return fmt.Errorf("tavern validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func (t *Tavern) validateRooms(add func(string, ...any)) {
	for i := range t.rooms {
		r := &t.rooms[i]
		if r.Kind >= numKinds {
			add("room %d: unknown kind %d", i, r.Kind)
			continue
		}
		fp := r.Footprint()
		if !fp.IsValid() || r.Bounds.Min.Z > r.Bounds.Max.Z {
			add("room %d: invalid bounds %v", i, r.Bounds)
			continue
		}
		side, area := r.Kind.SizeRange()
		s := fp.Size()
		if !side.Contains(s.X) || !side.Contains(s.Y) {
			add("room %d (%v): sides %v outside %d..%d", i, r.Kind, s, side.Min, side.Max)
		}
		if !area.Contains(fp.Area()) {
			add("room %d (%v): area %d outside %d..%d", i, r.Kind, fp.Area(), area.Min, area.Max)
		}
		for j := i + 1; j < len(t.rooms); j++ {
			o := &t.rooms[j]
			if r.Bounds.OverlapsZ(o.Bounds) && fp.CollidesWith(o.Footprint()) {
				add("rooms %d and %d overlap", i, j)
			}
		}
		for _, list := range r.Walls {
			for _, wid := range list {
				if int(wid) < 0 || int(wid) >= len(t.walls) {
					add("room %d: unknown wall %d", i, wid)
				}
			}
		}
		for _, list := range [][]RoofID{r.Floors, r.Roofs} {
			for _, rid := range list {
				if int(rid) < 0 || int(rid) >= len(t.roofs) {
					add("room %d: unknown roof %d", i, rid)
				}
			}
		}
		for a, da := range r.DetailAreas {
			if !fp.ContainsAabr(da) {
				add("room %d: detail area %v outside footprint", i, da)
			}
			for _, db := range r.DetailAreas[a+1:] {
				if da.CollidesWith(db) {
					add("room %d: detail areas %v and %v overlap", i, da, db)
				}
			}
		}
		for _, d := range r.Details {
			if !fp.ContainsAabr(d.Area) {
				add("room %d: %v detail outside footprint", i, d.Kind)
			}
		}
	}
}

func (t *Tavern) validRoom(id RoomID) bool { return id >= 0 && int(id) < len(t.rooms) }

func (t *Tavern) validateWalls(add func(string, ...any)) {
	for i := range t.walls {
		w := &t.walls[i]
		if w.From != NoRoom && !t.validRoom(w.From) || w.To != NoRoom && !t.validRoom(w.To) {
			add("wall %d: unknown room reference %d/%d", i, w.From, w.To)
		}
		if w.From == w.To {
			add("wall %d: both sides are %d", i, w.From)
		}
		if w.ToDir > geom.NegY {
			add("wall %d: invalid direction %d", i, w.ToDir)
			continue
		}
		if w.ToDir.Select(w.Start) != w.ToDir.Select(w.End) {
			add("wall %d: %v to %v is not straight along %v", i, w.Start, w.End, w.ToDir)
		}
		n := w.Len()
		if n < 0 {
			add("wall %d: reversed", i)
		}
		if w.Door != nil {
			if w.Door.Min < 1 || w.Door.Max > n-1 {
				add("wall %d: door %d..%d not strictly inside length %d", i, w.Door.Min, w.Door.Max, n)
			}
			if wd := w.Door.Width(); wd < 2 || wd > 3 {
				add("wall %d: door width %d", i, wd)
			}
		}
	}
}

func (t *Tavern) validateRoofs(add func(string, ...any)) {
	top := make([]int, len(t.roofs))
	covered := make([]bool, len(t.roofs))
	for i := range t.rooms {
		for _, rid := range t.rooms[i].Roofs {
			if int(rid) < 0 || int(rid) >= len(t.roofs) {
				continue
			}
			z := t.rooms[i].Bounds.Max.Z
			if !covered[rid] || z > top[rid] {
				top[rid] = z
			}
			covered[rid] = true
		}
	}
	for i := range t.roofs {
		r := &t.roofs[i]
		if !r.Bounds.IsValid() {
			add("roof %d: invalid bounds %v", i, r.Bounds)
		}
		if covered[i] && r.MinZ != top[i]+1 {
			add("roof %d: min_z %d, covered rooms top out at %d", i, r.MinZ, top[i])
		}
		if r.Stairs != nil && !r.Stairs.Bounds.XY().IsValid() {
			add("roof %d: invalid stairs %v", i, r.Stairs.Bounds)
		}
	}
}

func (t *Tavern) validateEntrance(add func(string, ...any)) {
	if len(t.rooms) == 0 {
		add("no rooms")
		return
	}
	first := &t.rooms[0]
	if first.Kind != Entrance && first.Kind != Garden {
		add("first room is %v, want entrance or garden", first.Kind)
	}
	entrances := 0
	for i := range t.rooms {
		if t.rooms[i].Kind == Entrance {
			entrances++
		}
	}
	want := 0
	if first.Kind == Entrance {
		want = 1
	}
	if entrances != want {
		add("%d entrance rooms, want %d", entrances, want)
	}
	if !first.Footprint().Expand(1).ContainsPoint(t.doorWpos.XY()) {
		add("entrance room %v does not touch door %v", first.Footprint(), t.doorWpos)
	}
}
