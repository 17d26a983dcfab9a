package tavern

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/tavern/internal/game/dice"
	"github.com/cory-johannsen/tavern/internal/game/geom"
	"github.com/cory-johannsen/tavern/internal/game/terrain"
)

// builder holds the mutable arenas while a tavern is being generated.
type builder struct {
	src         dice.Source
	land        terrain.Sampler
	logger      *zap.Logger
	ibounds     geom.Aabr
	temperature float64

	rooms  []Room
	walls  []Wall
	roofs  []Roof
	counts Counts
}

// roomMeta is a frontier entry of the growth loop.
type roomMeta struct {
	id             RoomID
	freeWalls      geom.DirSet
	canAddBasement bool
}

func (b *builder) addRoom(bounds geom.Aabb, kind Kind) RoomID {
	b.rooms = append(b.rooms, Room{Bounds: bounds, Kind: kind})
	b.counts[kind]++
	return RoomID(len(b.rooms) - 1)
}

func (b *builder) addWall(w Wall) WallID {
	b.walls = append(b.walls, w)
	return WallID(len(b.walls) - 1)
}

func (b *builder) softFail(reason string, from RoomID, fields ...zap.Field) {
	fields = append([]zap.Field{
		zap.Int("room", int(from)),
		zap.Stringer("kind", b.rooms[from].Kind),
		zap.String("reason", reason),
	}, fields...)
	b.logger.Debug("growth branch abandoned", fields...)
}

// genRangeSnap draws from [lo, hi] and snaps the result up to snapMax when it
// lands within 2 of it.
//
// Precondition: lo <= hi.
// Postcondition: lo <= result <= hi.
func genRangeSnap(src dice.Source, lo, hi, snapMax int) int {
	res := dice.Range(src, lo, hi)
	if res <= snapMax && snapMax <= hi && snapMax-res <= 2 {
		return snapMax
	}
	return res
}

func ceilDiv(a, b int) int { return (a + b - 1) / b }

// placeSideRoom sizes a room of kind inside maxBounds so that it starts one
// step past inPos in inDir and is roughly centred on inPos across inDir.
//
// Postcondition: ok is false when no size satisfies both the kind's ranges
// and maxBounds; otherwise the result lies within maxBounds and conforms to
// the kind's ranges.
func placeSideRoom(src dice.Source, kind Kind, maxBounds geom.Aabr, inDir geom.Dir, inPos geom.Vec2) (geom.Aabr, bool) {
	if !maxBounds.IsValid() {
		return geom.Aabr{}, false
	}
	side, area := kind.SizeRange()
	snapX := inDir.Select(maxBounds.Size())
	snapY := inDir.Orthogonal().Select(maxBounds.Size())
	maxY := min(snapY, side.Max)
	if maxY < side.Min {
		return geom.Aabr{}, false
	}

	loX := max(side.Min, ceilDiv(area.Min, maxY))
	hiX := min(snapX, side.Max, area.Max/side.Min)
	if hiX < loX {
		return geom.Aabr{}, false
	}
	sizeX := genRangeSnap(src, loX, hiX, snapX)

	loY := max(side.Min, ceilDiv(area.Min, sizeX))
	hiY := min(maxY, area.Max/sizeX)
	if hiY < loY {
		return geom.Aabr{}, false
	}
	sizeY := genRangeSnap(src, loY, hiY, snapY)

	half := sizeY/2 + (sizeY%2)*src.Intn(2)
	fwd := inDir.ToVec2()
	cw := inDir.RotatedCW().ToVec2()
	ccw := inDir.RotatedCCW().ToVec2()

	lo := maxBounds.ProjectedPoint(inPos.Add(fwd).Add(cw.Scale(half)))
	hi := maxBounds.ProjectedPoint(lo.Add(fwd.Scale(sizeX)).Add(ccw.Scale(sizeY)))
	lo = hi.Sub(fwd.Scale(sizeX)).Add(cw.Scale(sizeY))
	return geom.Aabr{Min: lo, Max: hi}.MadeValid(), true
}

// placeDownRoom sizes a room of kind inside maxBounds, anchored at a random
// corner of fromBounds.
//
// Postcondition: ok is false when the fitted box violates the kind's ranges.
func placeDownRoom(src dice.Source, kind Kind, maxBounds, fromBounds geom.Aabr) (geom.Aabr, bool) {
	if !maxBounds.IsValid() {
		return geom.Aabr{}, false
	}
	side, area := kind.SizeRange()
	avail := maxBounds.Size()
	hiX := min(avail.X, side.Max)
	if hiX < side.Min {
		return geom.Aabr{}, false
	}
	sizeX := genRangeSnap(src, side.Min, hiX, avail.X)
	loY := max(side.Min, area.Min/sizeX)
	hiY := min(avail.Y, side.Max, area.Max/sizeX)
	if hiY < loY {
		return geom.Aabr{}, false
	}
	sizeY := genRangeSnap(src, loY, hiY, avail.Y)
	target := geom.V2(sizeX, sizeY)

	dir := dice.Pick(src, geom.AllDirs[:])
	orth := dir.Orthogonal()
	if dice.Chance(src, 0.5) {
		orth = orth.Opposite()
	}
	plane := dir.ToVec2().Add(orth.ToVec2())
	corner := dir.SelectAabrWith(fromBounds, geom.Broadcast(orth.SelectAabr(fromBounds)))
	box := geom.Aabr{Min: corner, Max: corner.Sub(plane.Mul(target))}.MadeValid()

	inside := box.Intersection(maxBounds)
	if inside.IsValid() {
		mv := target.Sub(inside.Size()).Mul(plane)
		box = geom.Aabr{Min: box.Min.Add(mv), Max: box.Max.Add(mv)}
	}
	box = box.Intersection(maxBounds)

	if !box.IsValid() || !area.Contains(box.Area()) {
		return geom.Aabr{}, false
	}
	s := box.Size()
	if !side.Contains(s.X) || !side.Contains(s.Y) {
		return geom.Aabr{}, false
	}
	return box, true
}

// shrinkLimit bounds how far fitRoom may cut maxBounds in a direction. ok is
// false for an unlimited direction.
type shrinkLimit func(dir geom.Dir) (limit int, ok bool)

// fitRoom narrows maxBounds around every obstacle, one obstacle at a time.
// For each obstacle whose footprint grown by 2 overlaps maxBounds, the part
// of maxBounds beyond it in the direction leaving the largest area is kept.
// Candidates must stay at least one cell clear of the obstacle.
//
// Postcondition: ok is false when some obstacle leaves no candidate; the
// result is otherwise valid, inside maxBounds, and clear of every obstacle
// grown by 1.
func fitRoom(obstacles []geom.Aabr, maxBounds geom.Aabr, limit shrinkLimit) (geom.Aabr, bool) {
	for _, obs := range obstacles {
		inter := obs.Expand(2).Intersection(maxBounds)
		if !inter.IsValid() {
			continue
		}
		clearance := obs.Expand(1)
		best, found := geom.Aabr{}, false
		for _, dir := range geom.AllDirs {
			s := dir.Signum()
			if dir.SelectAabr(inter)*s >= dir.SelectAabr(maxBounds)*s {
				continue
			}
			cut := dir.SelectAabr(inter)
			if l, ok := limit(dir); ok {
				cut = min(cut*s, l*s) * s
			}
			far := dir.SelectAabrWith(maxBounds, geom.Broadcast(dir.RotatedCCW().SelectAabr(maxBounds)))
			near := dir.SelectWith(geom.Broadcast(cut), geom.Broadcast(dir.RotatedCW().SelectAabr(maxBounds)))
			cand := geom.Aabr{Min: far, Max: near}.MadeValid().Intersection(maxBounds)
			if !cand.IsValid() || cand.CollidesWith(clearance) {
				continue
			}
			if !found || cand.Area() >= best.Area() {
				best, found = cand, true
			}
		}
		if !found {
			return geom.Aabr{}, false
		}
		maxBounds = best
	}
	return maxBounds, true
}

// obstacles returns the footprints of every room except skip whose altitude
// range, padded by 1, meets [minZ, maxZ].
func (b *builder) obstacles(skip RoomID, minZ, maxZ int) []geom.Aabr {
	var out []geom.Aabr
	for i := range b.rooms {
		r := &b.rooms[i]
		if RoomID(i) == skip {
			continue
		}
		if r.Bounds.Min.Z-1 <= maxZ && r.Bounds.Max.Z+1 >= minZ {
			out = append(out, r.Footprint())
		}
	}
	return out
}

// placeEntrance builds the mandatory first room against the door and its
// exterior wall. door is updated to the final door position.
//
// Postcondition: Returns ErrPlotTooSmall when no entrance kind fits.
func (b *builder) placeEntrance(doorDir geom.Dir, door *geom.Vec3) (roomMeta, error) {
	maxBounds := doorDir.ExtendAabr(b.ibounds, -1)
	lottery, err := EntranceLottery(b.temperature, maxBounds)
	if err != nil {
		return roomMeta{}, ErrPlotTooSmall
	}
	kind := lottery.Choose(b.src)
	hgt := dice.Range(b.src, 3, 4)
	inDir := doorDir.Opposite()
	doorXY := door.XY()
	fp, ok := placeSideRoom(b.src, kind, maxBounds, inDir, doorDir.SelectAabrWith(maxBounds, doorXY).Sub(inDir.ToVec2()))
	if !ok {
		return roomMeta{}, ErrPlotTooSmall
	}

	orth := doorDir.Orthogonal()
	lo, hi := orth.Select(fp.Min), orth.Select(fp.Max)
	c := geom.Clamp(orth.Select(doorXY), lo+1, hi-1)
	line := doorDir.SelectAabr(fp) + doorDir.Signum()
	doorXY = doorDir.Vec2Abs(line, c)
	*door = doorXY.WithZ(door.Z)

	id := b.addRoom(geom.Aabb{Min: fp.Min.WithZ(door.Z), Max: fp.Max.WithZ(door.Z + hgt)}, kind)
	off := c - (lo - 1)
	wid := b.addWall(Wall{
		Start:   doorDir.Vec2Abs(line, lo-1),
		End:     doorDir.Vec2Abs(line, hi+1),
		BaseAlt: door.Z,
		TopAlt:  door.Z + hgt,
		From:    NoRoom,
		To:      id,
		ToDir:   inDir,
		Door:    &DoorRange{Min: off - 1, Max: off + 1},
	})
	b.rooms[id].Walls[doorDir] = append(b.rooms[id].Walls[doorDir], wid)

	return roomMeta{id: id, freeWalls: geom.AllDirSet.Without(doorDir)}, nil
}

// grow runs the frontier loop until no room can be extended further.
func (b *builder) grow(start roomMeta) {
	metas := []roomMeta{start}
	for len(metas) > 0 {
		i := b.src.Intn(len(metas))
		meta := metas[i]
		metas[i] = metas[len(metas)-1]
		metas = metas[:len(metas)-1]

		if !meta.freeWalls.IsEmpty() {
			dir := dice.Pick(b.src, meta.freeWalls.Dirs())
			meta.freeWalls = meta.freeWalls.Without(dir)
			if child, ok := b.growSide(meta.id, dir); ok {
				metas = append(metas, child)
			}
		} else if meta.canAddBasement {
			meta.canAddBasement = false
			if child, ok := b.growBasement(meta.id); ok {
				metas = append(metas, child)
			}
		}

		if !meta.freeWalls.IsEmpty() || meta.canAddBasement {
			metas = append(metas, meta)
		}
	}
}

// growSide attempts to add a room beside from in inDir.
func (b *builder) growSide(from RoomID, inDir geom.Dir) (roomMeta, bool) {
	fromRoom := b.rooms[from]
	fromFp := fromRoom.Footprint()
	s := inDir.Signum()

	near := inDir.SelectAabr(fromFp) + 2*s
	far := inDir.SelectAabr(b.ibounds)
	if (far-near)*s < 0 {
		b.softFail("no space beyond room", from, zap.Stringer("dir", inDir))
		return roomMeta{}, false
	}
	orth := inDir.Orthogonal()
	maxBounds := geom.Aabr{
		Min: inDir.Vec2Abs(near, orth.Select(b.ibounds.Min)),
		Max: inDir.Vec2Abs(far, orth.Select(b.ibounds.Max)),
	}.MadeValid()

	hgt := dice.Range(b.src, 3, 5)
	wantedAlt := fromRoom.Bounds.Min.Z
	if sampled := b.land.AltApprox(maxBounds.Center()); terrain.AltInRange(sampled) {
		wantedAlt = int(sampled) + 1
	}
	stairBase := maxBounds.Size()
	if wantedAlt < fromRoom.Bounds.Min.Z {
		stairBase = fromFp.Size()
	}
	maxStair := min(inDir.Select(stairBase)/2, 5)
	alt := geom.Clamp(wantedAlt, fromRoom.Bounds.Min.Z-maxStair, fromRoom.Bounds.Min.Z+maxStair)
	minZ := min(fromRoom.Bounds.Min.Z, alt)
	maxZ := max(fromRoom.Bounds.Max.Z, alt+hgt)

	inner := fromFp.Expand(-1)
	limit := func(dir geom.Dir) (int, bool) {
		switch dir {
		case inDir:
			return inDir.Opposite().SelectAabr(maxBounds), true
		case inDir.Opposite():
			return 0, false
		default:
			return dir.SelectAabr(inner), true
		}
	}
	fitted, ok := fitRoom(b.obstacles(from, minZ, maxZ), maxBounds, limit)
	if !ok {
		b.softFail("blocked by neighbours", from, zap.Stringer("dir", inDir))
		return roomMeta{}, false
	}

	lottery, err := fromRoom.Kind.SideRoomLottery(fitted, &b.counts, b.temperature)
	if err != nil {
		b.softFail("no side room fits", from, zap.Stringer("dir", inDir), zap.Stringer("bounds", fitted))
		return roomMeta{}, false
	}
	kind := lottery.Choose(b.src)

	left, right := orth.Opposite(), orth
	lo := max(left.SelectAabr(fromFp), left.SelectAabr(fitted))
	hi := min(right.SelectAabr(fromFp), right.SelectAabr(fitted))
	if lo+2 > hi {
		b.softFail("door span too narrow", from, zap.Stringer("dir", inDir))
		return roomMeta{}, false
	}
	line := inDir.SelectAabr(fromFp) + s
	inPos := inDir.Vec2Abs(line, dice.Range(b.src, lo+1, hi-1))

	fp, ok := placeSideRoom(b.src, kind, fitted, inDir, inPos)
	if !ok {
		b.softFail("room does not fit", from, zap.Stringer("dir", inDir), zap.Stringer("new_kind", kind))
		return roomMeta{}, false
	}

	// The door must sit strictly inside the span the two rooms share.
	a := max(orth.Select(fromFp.Min), orth.Select(fp.Min))
	z := min(orth.Select(fromFp.Max), orth.Select(fp.Max))
	if z-a < 1 {
		b.softFail("shared wall too short", from, zap.Stringer("dir", inDir), zap.Stringer("new_kind", kind))
		return roomMeta{}, false
	}
	wallLen := z - a + 2
	c := orth.Select(inPos) - (a - 1)
	doorMin := c
	if dice.Chance(b.src, 0.5) {
		doorMin = c - 1
	}
	doorMin = geom.Clamp(doorMin, 1, wallLen-2)

	id := b.addRoom(geom.Aabb{Min: fp.Min.WithZ(minZ), Max: fp.Max.WithZ(maxZ)}, kind)
	wid := b.addWall(Wall{
		Start:   inDir.Vec2Abs(line, a-1),
		End:     inDir.Vec2Abs(line, z+1),
		BaseAlt: minZ,
		TopAlt:  maxZ,
		From:    from,
		To:      id,
		ToDir:   inDir,
		Door:    &DoorRange{Min: doorMin, Max: doorMin + 1},
	})
	b.rooms[id].Walls[inDir.Opposite()] = append(b.rooms[id].Walls[inDir.Opposite()], wid)
	b.rooms[from].Walls[inDir] = append(b.rooms[from].Walls[inDir], wid)

	return roomMeta{
		id:             id,
		freeWalls:      geom.AllDirSet.Without(inDir.Opposite()),
		canAddBasement: len(kind.BasementRooms()) > 0,
	}, true
}

// growBasement attempts to add a room directly beneath from.
func (b *builder) growBasement(from RoomID) (roomMeta, bool) {
	fromRoom := b.rooms[from]
	fromFp := fromRoom.Footprint()

	hgt := dice.Range(b.src, 3, 5)
	maxZ := fromRoom.Bounds.Min.Z - 2
	minZ := maxZ - hgt

	inner := fromFp.Expand(-2)
	limit := func(dir geom.Dir) (int, bool) {
		return dir.Opposite().SelectAabr(inner), true
	}
	fitted, ok := fitRoom(b.obstacles(from, minZ, maxZ), b.ibounds, limit)
	if !ok {
		b.softFail("basement blocked", from)
		return roomMeta{}, false
	}
	lottery, err := fromRoom.Kind.BasementLottery(fitted, &b.counts)
	if err != nil {
		b.softFail("no basement room fits", from, zap.Stringer("bounds", fitted))
		return roomMeta{}, false
	}
	kind := lottery.Choose(b.src)

	fp, ok := placeDownRoom(b.src, kind, fitted, fromFp)
	if !ok {
		b.softFail("basement does not fit", from, zap.Stringer("new_kind", kind))
		return roomMeta{}, false
	}
	id := b.addRoom(geom.Aabb{Min: fp.Min.WithZ(minZ), Max: fp.Max.WithZ(maxZ)}, kind)
	return roomMeta{
		id:             id,
		freeWalls:      geom.AllDirSet,
		canAddBasement: len(kind.BasementRooms()) > 0,
	}, true
}
