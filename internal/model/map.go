package model

import "fmt"

// Map is the decoded map file in a consumer-neutral form. It is filled by
// a single decode pass and is read-only once returned.
type Map struct {
	Header Metadata
	Masses []MassEntry
	Cells  []Cell
	Index  *Index // Built by the coordinate translation pass
}

// Metadata contains the map file preamble
type Metadata struct {
	Title   string
	Author  string
	Terrain TerrainType
	FileID  uint16 // Sync id found after the mass table

	// DeclaredWidth/DeclaredHeight come from the preamble and are zero for
	// layouts without preamble dimensions. Width/Height are authoritative.
	DeclaredWidth  int
	DeclaredHeight int
	Width          int
	Height         int

	MaxPlayers    int
	UnlimitedPlay bool
	PlayerFaces   []PlayerFace // One per player
	RawStarts     []GridPos    // One per player, file addressing

	// Starts holds the translated starting positions. A player whose
	// position could not be translated under the skip policy is absent.
	Starts []StartingPosition
}

// GridPos is a cell address as stored in the file: column and row
type GridPos struct {
	Col int
	Row int
}

// FilePoint converts a column/row address to staggered file-space
// coordinates. Odd rows are inset by one unit.
func (g GridPos) FilePoint() FilePoint {
	return FilePoint{X: g.Col*2 + g.Row&1, Y: g.Row}
}

func (g GridPos) String() string {
	return fmt.Sprintf("(%d,%d)", g.Col, g.Row)
}

// FilePoint is a position in the file's staggered grid, two units per cell
type FilePoint struct {
	X int
	Y int
}

func (p FilePoint) String() string {
	return fmt.Sprintf("file(%d,%d)", p.X, p.Y)
}

// Point is a position in the consumer's target grid
type Point struct {
	X int
	Y int
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// StartingPosition is a player's translated origin
type StartingPosition struct {
	Player   int
	Position Point
}

// MassEntry is one record of the land/water mass table
type MassEntry struct {
	Type     MassType
	Position GridPos
	Total    uint16
}

// Cell is one grid position. It is created by the height block and
// completed in place by the following blocks.
type Cell struct {
	Height           uint8
	TextureBelow     Texture
	TextureDownRight Texture
	ObjectType       uint8
	ObjectProperties uint8
	Resource         Resource
	Animal           Animal // Wild or unrecognized animals only
	Site             BuildableSite

	File   FilePoint
	Target Point
	Placed bool // Target is assigned
}

// NewCell creates a cell with the given height and every code set to its
// zero byte, so the cell reads as empty until later blocks fill it.
func NewCell(height uint8) Cell {
	return Cell{
		Height:           height,
		TextureBelow:     TextureFromCode(0),
		TextureDownRight: TextureFromCode(0),
		Resource:         ResourceFromCode(0),
		Animal:           AnimalFromCode(0),
		Site:             BuildableSiteFromCode(0),
	}
}

// NewMap creates an empty map
func NewMap() *Map {
	return &Map{
		Masses: make([]MassEntry, 0),
		Cells:  make([]Cell, 0),
	}
}

// TargetSize returns the dimensions of the target grid the cells are
// translated into.
func (m *Map) TargetSize() (width, height int) {
	return m.Header.Width*2 + 1, m.Header.Height + 2
}

// SpotAt returns a copy of the cell at a target-space point
func (m *Map) SpotAt(p Point) (Cell, bool) {
	if m.Index == nil {
		return Cell{}, false
	}
	i, ok := m.Index.CellAt(p)
	if !ok {
		return Cell{}, false
	}
	return m.Cells[i], true
}

// SpotAtFile returns a copy of the cell at a file-space point
func (m *Map) SpotAtFile(p FilePoint) (Cell, bool) {
	if m.Index == nil {
		return Cell{}, false
	}
	i, ok := m.Index.CellAtFile(p)
	if !ok {
		return Cell{}, false
	}
	return m.Cells[i], true
}

// Summary counts what is placed on the map
type Summary struct {
	Cells        int
	Placed       int
	Trees        int
	Stones       int
	Decorations  int
	Minerals     map[ResourceKind]int
	WildAnimals  int
	Unrecognized int // Cells carrying at least one unrecognized code
}

// Summarize walks the cells once and counts objects
func (m *Map) Summarize() Summary {
	s := Summary{
		Cells:    len(m.Cells),
		Minerals: make(map[ResourceKind]int),
	}
	for i := range m.Cells {
		c := &m.Cells[i]
		if c.Placed {
			s.Placed++
		}
		if c.HasTree() {
			s.Trees++
		}
		if c.HasStone() {
			s.Stones++
		}
		if c.IsNatureDecoration() {
			s.Decorations++
		}
		if c.HasMineral() {
			s.Minerals[c.Resource.Kind]++
		}
		if c.HasWildAnimal() {
			s.WildAnimals++
		}
		if !c.AllKnown() {
			s.Unrecognized++
		}
	}
	return s
}
