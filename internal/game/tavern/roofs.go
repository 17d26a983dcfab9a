package tavern

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/tavern/internal/game/dice"
	"github.com/cory-johannsen/tavern/internal/game/geom"
)

// stairWidth is the number of cells across a staircase.
const stairWidth = 2

// touches reports whether room fp starts at the dir edge of roof and spans
// the roof across dir within a tolerance of 2.
func touches(roof, fp geom.Aabr, dir geom.Dir) bool {
	orth := dir.Orthogonal()
	return dir.SelectAabr(roof) == dir.Opposite().SelectAabr(fp) &&
		orth.SelectAabr(roof) <= orth.SelectAabr(fp)+2 &&
		orth.Opposite().SelectAabr(roof) >= orth.Opposite().SelectAabr(fp)-2
}

// assignRoofs covers every room with a roof, merging neighbours of equal
// height under one roof where they abut.
func (b *builder) assignRoofs() {
	for i := range b.rooms {
		if b.rooms[i].IsCoveredByRoof(b.roofs) {
			continue
		}
		room := &b.rooms[i]
		minZ := room.Bounds.Max.Z + 1
		bounds := room.Footprint().Expand(2)
		over := []RoomID{RoomID(i)}

		dirs := []geom.Dir{geom.X, geom.Y, geom.NegX, geom.NegY}
		for len(dirs) > 0 {
			k := b.src.Intn(len(dirs))
			dir := dirs[k]
			dirs[k] = dirs[len(dirs)-1]
			dirs = dirs[:len(dirs)-1]

			for j := range b.rooms {
				r := &b.rooms[j]
				fp := r.Footprint()
				if r.Bounds.Max.Z+1 != minZ || !touches(bounds, fp, dir) {
					continue
				}
				if r.IsCoveredByRoof(b.roofs) {
					break
				}
				bounds = dir.ExtendAabr(bounds, dir.Select(fp.Size())+2)
				dirs = append(dirs, dir)
				over = append(over, RoomID(j))
				break
			}
		}

		var under []RoomID
		for j := range b.rooms {
			r := &b.rooms[j]
			if r.Bounds.Min.Z-1 == minZ && r.Footprint().CollidesWith(bounds) {
				under = append(under, RoomID(j))
			}
		}

		var style RoofStyle
		var stairs *Stairs
		if len(under) > 0 {
			style = RoofStyle{Kind: Floor}
			cands := b.stairCandidates(over, under)
			if len(cands) > 0 {
				s := dice.Pick(b.src, cands)
				stairs = &s
			}
		} else {
			lottery := dice.MustLottery(b.roofStyleOptions(bounds, minZ, over))
			style = lottery.Choose(b.src)
		}

		id := RoofID(len(b.roofs))
		b.roofs = append(b.roofs, Roof{Bounds: bounds, MinZ: minZ, Style: style, Stairs: stairs})
		for _, r := range over {
			b.rooms[r].Roofs = append(b.rooms[r].Roofs, id)
		}
		for _, r := range under {
			b.rooms[r].Floors = append(b.rooms[r].Floors, id)
		}
	}
	b.logger.Debug("roofs assigned", zap.Int("roofs", len(b.roofs)))
}

// roofStyleOptions lists the weighted styles available to an open roof over
// the given rooms.
//
// Postcondition: the result is non-empty and always offers Flat.
func (b *builder) roofStyleOptions(bounds geom.Aabr, minZ int, over []RoomID) []dice.Entry[RoofStyle] {
	opts := []dice.Entry[RoofStyle]{{Weight: 0.5, Item: RoofStyle{Kind: Flat}}}

	gardens := 0
	for _, id := range over {
		if b.rooms[id].Kind == Garden {
			gardens++
		}
	}
	size := bounds.Size()
	if gardens == len(over) && size.X > 0 && size.Y > 0 {
		ratio := float64(size.X) / float64(size.Y)
		opts = append(opts,
			dice.Entry[RoofStyle]{Weight: 5 * ratio, Item: RoofStyle{Kind: FlatBars, Dir: geom.X}},
			dice.Entry[RoofStyle]{Weight: 5 / ratio, Item: RoofStyle{Kind: FlatBars, Dir: geom.Y}},
		)
	}

	// Altitude of the first taller room abutting each side, if any.
	var sideZ [4]*int
	for _, dir := range geom.AllDirs {
		for j := range b.rooms {
			r := &b.rooms[j]
			if r.Bounds.Max.Z > minZ && touches(bounds, r.Footprint(), dir) {
				z := r.Bounds.Max.Z
				sideZ[dir] = &z
				break
			}
		}
	}

	for _, dir := range []geom.Dir{geom.X, geom.Y} {
		orth := dir.Orthogonal()
		if sideZ[orth] != nil || sideZ[orth.Opposite()] != nil {
			continue
		}
		maxZ := minZ + min(orth.Select(size)/2-1, 7)
		a, c := sideZ[dir], sideZ[dir.Opposite()]
		switch {
		case a != nil && c != nil:
			if m := min(*a, *c); m >= minZ+3 {
				maxZ = min(maxZ, m)
			}
		case a != nil || c != nil:
			continue
		}
		for z := minZ + 3; z <= maxZ; z++ {
			opts = append(opts, dice.Entry[RoofStyle]{Weight: 1, Item: RoofStyle{Kind: Gable, Dir: dir, MaxZ: z}})
		}
	}

	for _, dir := range geom.AllDirs {
		if h := sideZ[dir]; h != nil && sideZ[dir.Opposite()] == nil {
			for z := minZ + 2; z <= *h; z++ {
				opts = append(opts, dice.Entry[RoofStyle]{Weight: 1, Item: RoofStyle{Kind: LeanTo, Dir: dir, MaxZ: z}})
			}
		}
	}

	if sideZ == [4]*int{} {
		for z := minZ + 3; z <= minZ+7; z++ {
			opts = append(opts, dice.Entry[RoofStyle]{Weight: 0.8, Item: RoofStyle{Kind: Hip, MaxZ: z}})
		}
	}
	return opts
}

// stairCandidates lists every staircase that can lead from a room under a
// roof up to a room standing on it without blocking a door.
func (b *builder) stairCandidates(over, under []RoomID) []Stairs {
	var out []Stairs
	for _, to := range under {
		for _, in := range over {
			toB, inB := b.rooms[to].Bounds, b.rooms[in].Bounds
			toFp, inFp := toB.XY(), inB.XY()
			mb := toFp.Intersection(inFp)
			length := toB.Min.Z - 1 - inB.Min.Z
			if !mb.IsValid() || mb.Size().ReduceMin() <= length {
				continue
			}

			var valid []geom.Dir
			for _, dir := range geom.AllDirs {
				if dir.SelectAabr(inFp) == dir.SelectAabr(mb) || dir.SelectAabr(toFp) == dir.SelectAabr(mb) {
					valid = append(valid, dir)
				}
			}
			for _, dir := range valid {
				for _, orth := range valid {
					if orth.IsX() == dir.IsX() {
						continue
					}
					size := mb.Size()
					stair := orth.TrimAabr(
						dir.TrimAabr(mb, dir.Select(size)-length),
						orth.Select(size)-stairWidth+1,
					)
					if !stair.IsValid() || b.blocksDoor(stair.Expand(1), in, to) {
						continue
					}
					out = append(out, Stairs{
						Bounds: geom.Aabb{
							Min: stair.Min.WithZ(inB.Min.Z),
							Max: stair.Max.WithZ(toB.Min.Z - 1),
						},
						Dir: dir,
					})
				}
			}
		}
	}
	return out
}

// blocksDoor reports whether area meets a door in any wall of the given
// rooms.
func (b *builder) blocksDoor(area geom.Aabr, rooms ...RoomID) bool {
	for _, id := range rooms {
		for _, ws := range b.rooms[id].Walls {
			for _, wid := range ws {
				if db, ok := b.walls[wid].DoorBounds(); ok && area.CollidesWith(db) {
					return true
				}
			}
		}
	}
	return false
}
