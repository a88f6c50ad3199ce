package model

import "github.com/willf/bitset"

// Index maps coordinates in both spaces to positions in Map.Cells. The
// target space is a dense grid; occupied marks which of its points hold
// a cell.
type Index struct {
	byFile map[FilePoint]int

	width    int
	height   int
	occupied *bitset.BitSet
	byTarget []int
}

// NewIndex creates an empty index for n cells on a width x height target
// grid
func NewIndex(n, width, height int) *Index {
	return &Index{
		byFile:   make(map[FilePoint]int, n),
		width:    width,
		height:   height,
		occupied: bitset.New(uint(width * height)),
		byTarget: make([]int, width*height),
	}
}

// AddFile records the cell at a file-space point. It returns false if the
// point is already taken.
func (ix *Index) AddFile(p FilePoint, cell int) bool {
	if _, dup := ix.byFile[p]; dup {
		return false
	}
	ix.byFile[p] = cell
	return true
}

// AddTarget records the cell at a target-space point. It returns false if
// the point lies outside the target grid or is already taken.
func (ix *Index) AddTarget(p Point, cell int) bool {
	bit, ok := ix.bit(p)
	if !ok || ix.occupied.Test(bit) {
		return false
	}
	ix.occupied.Set(bit)
	ix.byTarget[bit] = cell
	return true
}

func (ix *Index) bit(p Point) (uint, bool) {
	if p.X < 0 || p.X >= ix.width || p.Y < 0 || p.Y >= ix.height {
		return 0, false
	}
	return uint(p.Y*ix.width + p.X), true
}

// CellAtFile looks up a file-space point
func (ix *Index) CellAtFile(p FilePoint) (int, bool) {
	i, ok := ix.byFile[p]
	return i, ok
}

// CellAt looks up a target-space point
func (ix *Index) CellAt(p Point) (int, bool) {
	bit, ok := ix.bit(p)
	if !ok || !ix.occupied.Test(bit) {
		return 0, false
	}
	return ix.byTarget[bit], true
}

// FileLen returns the number of file-space entries
func (ix *Index) FileLen() int {
	return len(ix.byFile)
}

// TargetLen returns the number of occupied target points
func (ix *Index) TargetLen() int {
	return int(ix.occupied.Count())
}
