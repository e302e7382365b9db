package snake

import "github.com/kamstrup/intmap"

// occupancy counts how many body segments sit on each cell. A count rather
// than a set keeps it correct while a segment transiently overlaps another.
type occupancy struct {
	cells *intmap.Map[uint64, int32]
}

func newOccupancy(capacity int) *occupancy {
	return &occupancy{
		cells: intmap.New[uint64, int32](capacity),
	}
}

// cellKey packs a position into a map key. Wrapped heads can sit one block
// outside the board, so negative coordinates must stay distinct.
func cellKey(p Position) uint64 {
	return uint64(uint32(int32(p.X)))<<32 | uint64(uint32(int32(p.Y)))
}

func (o *occupancy) add(p Position) {
	key := cellKey(p)
	n, _ := o.cells.Get(key)
	o.cells.Put(key, n+1)
}

func (o *occupancy) remove(p Position) {
	key := cellKey(p)
	n, ok := o.cells.Get(key)
	if !ok {
		return
	}
	if n <= 1 {
		o.cells.Del(key)
		return
	}
	o.cells.Put(key, n-1)
}

func (o *occupancy) has(p Position) bool {
	n, ok := o.cells.Get(cellKey(p))
	return ok && n > 0
}

// distinct returns the number of different cells covered by the body.
func (o *occupancy) distinct() int {
	return o.cells.Len()
}

func (o *occupancy) reset(body []Position) {
	o.cells.Clear()
	for _, p := range body {
		o.add(p)
	}
}
