package tavern

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/tavern/internal/game/dice"
	"github.com/cory-johannsen/tavern/internal/game/geom"
)

// span is an inclusive range of coordinates along a room side.
type span struct{ min, max int }

// wallRanges tracks the still-unwalled parts of each side of a room.
type wallRanges [4][]span

// newWallRanges covers every side of fp completely.
func newWallRanges(fp geom.Aabr) wallRanges {
	var wr wallRanges
	for _, dir := range geom.AllDirs {
		orth := dir.Orthogonal()
		wr[dir] = []span{{orth.Select(fp.Min), orth.Select(fp.Max)}}
	}
	return wr
}

// split removes [lo, hi] from the ranges of side dir, cutting ranges in two
// where needed.
//
// Precondition: lo <= hi.
func (wr *wallRanges) split(dir geom.Dir, lo, hi int) {
	var kept, added []span
	for _, r := range wr[dir] {
		if r.min > hi || r.max < lo {
			kept = append(kept, r)
			continue
		}
		switch {
		case r.min >= lo && r.max <= hi:
		case r.min >= lo:
			kept = append(kept, span{hi + 1, r.max})
		case r.max <= hi:
			kept = append(kept, span{r.min, lo - 1})
		default:
			kept = append(kept, span{r.min, lo - 1})
			added = append(added, span{hi + 1, r.max})
		}
	}
	wr[dir] = append(kept, added...)
}

// partitionWalls completes every room's boundary: shared walls towards
// neighbours at the same altitude and exterior walls for the rest.
func (b *builder) partitionWalls() {
	for i := range b.rooms {
		from := RoomID(i)
		fp := b.rooms[from].Footprint()
		ranges := newWallRanges(fp)

		skip := map[RoomID]bool{from: true}
		for _, dir := range geom.AllDirs {
			orth := dir.Orthogonal()
			for _, wid := range b.rooms[from].Walls[dir] {
				w := &b.walls[wid]
				skip[w.From] = true
				skip[w.To] = true
				lo, hi := orth.Select(w.Start), orth.Select(w.End)
				if lo > hi {
					lo, hi = hi, lo
				}
				if lo+1 <= hi-1 {
					ranges.split(dir, lo+1, hi-1)
				}
			}
		}

		for j := range b.rooms {
			to := RoomID(j)
			if skip[to] {
				continue
			}
			b.sharedWall(from, to, &ranges)
		}

		for _, dir := range geom.AllDirs {
			for _, r := range ranges[dir] {
				wid := b.addWall(Wall{
					Start:   dir.SelectAabrWith(fp, geom.Broadcast(r.min-1)).Add(dir.ToVec2()),
					End:     dir.SelectAabrWith(fp, geom.Broadcast(r.max+1)).Add(dir.ToVec2()),
					BaseAlt: b.rooms[from].Bounds.Min.Z,
					TopAlt:  b.rooms[from].Bounds.Max.Z,
					From:    from,
					To:      NoRoom,
					ToDir:   dir,
				})
				b.rooms[from].Walls[dir] = append(b.rooms[from].Walls[dir], wid)
			}
		}
	}
	b.logger.Debug("walls partitioned", zap.Int("walls", len(b.walls)))
}

// sharedWall adds the wall between from and to when they sit at overlapping
// altitudes and their footprints face each other across one cell.
func (b *builder) sharedWall(from, to RoomID, ranges *wallRanges) {
	a, n := b.rooms[from].Bounds, b.rooms[to].Bounds
	if a.Min.Z >= n.Max.Z || a.Max.Z <= n.Min.Z {
		return
	}
	minZ, maxZ := min(a.Min.Z, n.Min.Z), max(a.Max.Z, n.Max.Z)
	overlap := min(a.Max.Z, n.Max.Z) - max(a.Min.Z, n.Min.Z)
	fp, nfp := a.XY(), n.XY()

	p1 := nfp.ProjectedPoint(fp.Center())
	p0 := fp.ProjectedPoint(p1)
	toDir := geom.FromVec2(p1.Sub(p0))

	inter := toDir.ExtendAabr(fp, 1).Intersection(toDir.Opposite().ExtendAabr(nfp, 1))
	if !inter.IsValid() {
		return
	}
	orth := toDir.Orthogonal()
	lo, hi := orth.Select(inter.Min), orth.Select(inter.Max)
	ranges.split(toDir, lo, hi)

	var door *DoorRange
	if hi-lo > 2 && overlap > 3 && abs(a.Min.Z-n.Min.Z) < 4 && dice.Chance(b.src, 0.8) {
		c := dice.Range(b.src, 1, hi-lo-2)
		door = &DoorRange{Min: c, Max: c + 1}
	}
	step := orth.ToVec2()
	wid := b.addWall(Wall{
		Start:   inter.Min.Sub(step),
		End:     inter.Max.Add(step),
		BaseAlt: minZ,
		TopAlt:  maxZ,
		From:    from,
		To:      to,
		ToDir:   toDir,
		Door:    door,
	})
	b.rooms[from].Walls[toDir] = append(b.rooms[from].Walls[toDir], wid)
	b.rooms[to].Walls[toDir.Opposite()] = append(b.rooms[to].Walls[toDir.Opposite()], wid)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
