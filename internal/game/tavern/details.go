package tavern

import (
	"github.com/cory-johannsen/tavern/internal/game/dice"
	"github.com/cory-johannsen/tavern/internal/game/geom"
)

// Table placement probability per room kind.
const (
	seatingTableChance = 0.7
	stageTableChance   = 0.8
	barTableChance     = 0.1
)

// avoidAreas returns the parts of room id's footprint that must stay clear:
// the approach to every door, from the wall to the room centre, and every
// staircase footprint in a roof the room touches.
func (b *builder) avoidAreas(id RoomID) []geom.Aabr {
	room := &b.rooms[id]
	fp := room.Footprint()
	var out []geom.Aabr
	for _, dir := range geom.AllDirs {
		for _, wid := range room.Walls[dir] {
			db, ok := b.walls[wid].DoorBounds()
			if !ok {
				continue
			}
			zone := geom.Aabr{
				Min: dir.SelectAabrWith(fp, db.Min),
				Max: dir.SelectWith(fp.Center(), db.Max),
			}.MadeValid().Intersection(fp)
			if zone.IsValid() {
				out = append(out, zone)
			}
		}
	}
	for _, list := range [][]RoofID{room.Floors, room.Roofs} {
		for _, rid := range list {
			st := b.roofs[rid].Stairs
			if st == nil {
				continue
			}
			if in := st.Bounds.XY().Intersection(fp); in.IsValid() {
				out = append(out, in)
			}
		}
	}
	return out
}

// decomposeAreas covers the cells of bounds outside avoid with disjoint
// rectangles, sweeping columns from low x to high x and growing each
// rectangle first along y, then along x.
//
// Postcondition: the returned areas are pairwise disjoint, lie within
// bounds, miss every avoid rectangle, and together with avoid cover bounds.
func decomposeAreas(bounds geom.Aabr, avoid []geom.Aabr) []geom.Aabr {
	avoid = append([]geom.Aabr(nil), avoid...)
	var areas []geom.Aabr
	for x := bounds.Min.X; x <= bounds.Max.X; x++ {
		y := bounds.Min.Y
	column:
		for y <= bounds.Max.Y {
			maxY := bounds.Max.Y
			for _, a := range avoid {
				inX := a.Min.X <= x && x <= a.Max.X
				if inX && a.Min.Y <= y && y <= a.Max.Y {
					y = a.Max.Y + 1
					continue column
				}
				if inX && y < a.Min.Y && a.Min.Y-1 < maxY {
					maxY = a.Min.Y - 1
				}
			}
			maxX := bounds.Max.X
			for _, a := range avoid {
				if a.Min.X > x && a.Min.Y <= maxY && a.Max.Y >= y && a.Min.X-1 < maxX {
					maxX = a.Min.X - 1
				}
			}
			area := geom.Aabr{Min: geom.V2(x, y), Max: geom.V2(maxX, maxY)}
			avoid = append(avoid, area)
			areas = append(areas, area)
			y = maxY + 1
		}
	}
	return areas
}

// computeDetailAreas fills DetailAreas for every room.
func (b *builder) computeDetailAreas() {
	for i := range b.rooms {
		id := RoomID(i)
		b.rooms[i].DetailAreas = decomposeAreas(b.rooms[i].Footprint(), b.avoidAreas(id))
	}
}

// table builds a table centred in area with a chair on every side whose
// neighbouring cell is still inside area.
func table(area geom.Aabr) Detail {
	pos := area.Center()
	var chairs geom.DirSet
	for _, dir := range geom.AllDirs {
		if area.ContainsPoint(pos.Add(dir.ToVec2())) {
			chairs = chairs.With(dir)
		}
	}
	return Detail{Kind: Table, Area: area, Pos: pos, Chairs: chairs}
}

// edgeCount returns how many sides of area lie on the matching side of fp.
func edgeCount(area, fp geom.Aabr) int {
	n := 0
	for _, dir := range geom.AllDirs {
		if dir.SelectAabr(area) == dir.SelectAabr(fp) {
			n++
		}
	}
	return n
}

// takeBest removes and returns the area with the highest positive score.
// Ties keep the earliest area.
func takeBest(areas []geom.Aabr, score func(geom.Aabr) int) (geom.Aabr, []geom.Aabr, bool) {
	best, bestScore := -1, 0
	for i, a := range areas {
		if s := score(a); s > bestScore {
			best, bestScore = i, s
		}
	}
	if best < 0 {
		return geom.Aabr{}, areas, false
	}
	a := areas[best]
	areas[best] = areas[len(areas)-1]
	return a, areas[:len(areas)-1], true
}

// placeTables turns each area larger than a single row into a table with
// probability p, returning the areas left over.
func (b *builder) placeTables(room *Room, areas []geom.Aabr, p float64) []geom.Aabr {
	kept := areas[:0]
	for _, a := range areas {
		if a.Size().ReduceMax() > 1 && dice.Chance(b.src, p) {
			room.Details = append(room.Details, table(a))
			continue
		}
		kept = append(kept, a)
	}
	return kept
}

// furnish consumes detail areas to place per-kind furnishings. Cellars and
// entrances keep their areas for the renderer.
func (b *builder) furnish() {
	for i := range b.rooms {
		room := &b.rooms[i]
		fp := room.Footprint()
		areas := room.DetailAreas
		switch room.Kind {
		case Garden, Seating:
			areas = b.placeTables(room, areas, seatingTableChance)
		case Stage:
			if a, rest, ok := takeBest(areas, func(a geom.Aabr) int { return edgeCount(a, fp) * a.Area() }); ok {
				room.Details = append(room.Details, Detail{Kind: StagePlatform, Area: a})
				areas = rest
			}
			areas = b.placeTables(room, areas, stageTableChance)
		case Bar:
			score := func(a geom.Aabr) int {
				if edgeCount(a, fp) > 0 {
					return a.Area()
				}
				return 0
			}
			if a, rest, ok := takeBest(areas, score); ok {
				room.Details = append(room.Details, Detail{Kind: BarCounter, Area: a})
				areas = rest
			}
			areas = b.placeTables(room, areas, barTableChance)
		}
		room.DetailAreas = areas
	}
}
