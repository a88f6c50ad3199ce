package model

import "fmt"

// Object type bytes with a fixed meaning
const (
	ObjectTreeGroup1  = 0xC4
	ObjectTreeGroup2  = 0xC5
	ObjectTreeGroup3  = 0xC6
	ObjectDecoration1 = 0xC8
	ObjectDecoration2 = 0xC9
	ObjectStone1      = 0xCC
	ObjectStone2      = 0xCD
)

// TreeKind is a tree species
type TreeKind int

const (
	TreeUnrecognized TreeKind = iota
	TreePine
	TreeBirch
	TreeOak
	TreePalm1
	TreePalm2
	TreePineApple
	TreeCypress
	TreeCherry
	TreeFir
)

var treeNames = map[TreeKind]string{
	TreePine:      "pine",
	TreeBirch:     "birch",
	TreeOak:       "oak",
	TreePalm1:     "palm 1",
	TreePalm2:     "palm 2",
	TreePineApple: "pine apple",
	TreeCypress:   "cypress",
	TreeCherry:    "cherry",
	TreeFir:       "fir",
}

// Tree is the species resolved from a cell's object bytes
type Tree struct {
	Kind       TreeKind
	Type       uint8
	Properties uint8
}

func (t Tree) Known() bool {
	return t.Kind != TreeUnrecognized
}

func (t Tree) String() string {
	if name, ok := treeNames[t.Kind]; ok {
		return name
	}
	return fmt.Sprintf("unrecognized tree 0x%02x/0x%02x", t.Type, t.Properties)
}

// treeBand returns the 8-wide band (0-3) the property falls in, or -1
func treeBand(prop uint8) int {
	if prop&0x0F > 0x07 || prop&0x30 != 0x30 {
		return -1
	}
	return int(prop >> 6)
}

var treeGroups = map[uint8][4]TreeKind{
	ObjectTreeGroup1: {TreePine, TreeBirch, TreeOak, TreePalm1},
	ObjectTreeGroup2: {TreePalm2, TreePineApple, TreeCypress, TreeCherry},
}

// StoneKind is one of the two stone pile variants
type StoneKind int

const (
	StoneNone StoneKind = iota
	Stone1
	Stone2
)

func (s StoneKind) String() string {
	switch s {
	case Stone1:
		return "stone 1"
	case Stone2:
		return "stone 2"
	}
	return "none"
}

// DecorationKind is a nature decoration
type DecorationKind int

const (
	DecorationUnrecognized DecorationKind = iota
	DecorationNone
	DecorationMiniBrownMushroom
	DecorationToadstool
	DecorationMiniStone
	DecorationSmallStone
	DecorationStone
	DecorationDeadTreeLyingDown
	DecorationDeadTree
	DecorationSkeleton
	DecorationSmallSkeleton
	DecorationFlowers
	DecorationLargeBush
	DecorationPileOfStones
	DecorationCactus1
	DecorationCactus2
	DecorationCattail
	DecorationGrass1
	DecorationBush
	DecorationSmallBush
	DecorationMiniBush
	DecorationGrass2
	DecorationMiniGrass
	DecorationPortal
	DecorationShiningPortal
	DecorationBrownMushroom
	DecorationMiniStoneWithGrass
	DecorationSmallStoneWithGrass
	DecorationSomeSmallStones
	DecorationSomeSmallerStones
	DecorationFewSmallStones
	DecorationSparseBush
	DecorationSomeWater
	DecorationLittleGrass
	DecorationSnowman
)

var decorationNames = map[DecorationKind]string{
	DecorationNone:                "none",
	DecorationMiniBrownMushroom:   "mini brown mushroom",
	DecorationToadstool:           "toadstool",
	DecorationMiniStone:           "mini stone",
	DecorationSmallStone:          "small stone",
	DecorationStone:               "stone",
	DecorationDeadTreeLyingDown:   "dead tree lying down",
	DecorationDeadTree:            "dead tree",
	DecorationSkeleton:            "skeleton",
	DecorationSmallSkeleton:       "small skeleton",
	DecorationFlowers:             "flowers",
	DecorationLargeBush:           "large bush",
	DecorationPileOfStones:        "pile of stones",
	DecorationCactus1:             "cactus 1",
	DecorationCactus2:             "cactus 2",
	DecorationCattail:             "cattail",
	DecorationGrass1:              "grass 1",
	DecorationBush:                "bush",
	DecorationSmallBush:           "small bush",
	DecorationMiniBush:            "mini bush",
	DecorationGrass2:              "grass 2",
	DecorationMiniGrass:           "mini grass",
	DecorationPortal:              "portal",
	DecorationShiningPortal:       "shining portal",
	DecorationBrownMushroom:       "brown mushroom",
	DecorationMiniStoneWithGrass:  "mini stone with grass",
	DecorationSmallStoneWithGrass: "small stone with grass",
	DecorationSomeSmallStones:     "some small stones",
	DecorationSomeSmallerStones:   "some smaller stones",
	DecorationFewSmallStones:      "few small stones",
	DecorationSparseBush:          "sparse bush",
	DecorationSomeWater:           "some water",
	DecorationLittleGrass:         "little grass",
	DecorationSnowman:             "snowman",
}

// Decoration is the decoration resolved from an object property byte
type Decoration struct {
	Kind DecorationKind
	Code uint8
}

func (d Decoration) Known() bool {
	return d.Kind != DecorationUnrecognized
}

func (d Decoration) String() string {
	if name, ok := decorationNames[d.Kind]; ok {
		return name
	}
	return fmt.Sprintf("unrecognized decoration 0x%02x", d.Code)
}

// DecorationTable maps object property bytes of decoration objects to
// decorations. Codes mapped to DecorationNone are known to show nothing;
// codes missing from the table are unrecognized.
type DecorationTable map[uint8]DecorationKind

// DefaultDecorations is the table used by Cell.Decoration
var DefaultDecorations = DecorationTable{
	0x00: DecorationMiniBrownMushroom,
	0x01: DecorationToadstool,
	0x02: DecorationMiniStone,
	0x03: DecorationSmallStone,
	0x04: DecorationStone,
	0x05: DecorationDeadTreeLyingDown,
	0x06: DecorationDeadTree,
	0x07: DecorationSkeleton,
	0x08: DecorationSmallSkeleton,
	0x09: DecorationFlowers,
	0x0A: DecorationLargeBush,
	0x0B: DecorationPileOfStones,
	0x0C: DecorationCactus1,
	0x0D: DecorationCactus2,
	0x0E: DecorationCattail,
	0x0F: DecorationGrass1,
	0x10: DecorationBush,
	0x11: DecorationSmallBush,
	0x12: DecorationMiniBush,
	0x13: DecorationGrass2,
	0x14: DecorationMiniGrass,
	0x15: DecorationNone,
	0x16: DecorationPortal,
	0x17: DecorationShiningPortal,
	0x18: DecorationNone,
	0x19: DecorationNone,
	0x1A: DecorationNone,
	0x1B: DecorationNone,
	0x1C: DecorationNone,
	0x1D: DecorationNone,
	0x1E: DecorationNone,
	0x1F: DecorationNone,
	0x20: DecorationNone,
	0x21: DecorationNone,
	0x22: DecorationBrownMushroom,
	0x23: DecorationMiniStoneWithGrass,
	0x24: DecorationSmallStoneWithGrass,
	0x25: DecorationSomeSmallStones,
	0x26: DecorationSomeSmallerStones,
	0x27: DecorationFewSmallStones,
	0x28: DecorationSparseBush,
	0x29: DecorationSomeWater,
	0x2A: DecorationLittleGrass,
	0x2B: DecorationSnowman,
	0x2C: DecorationNone,
	0x2D: DecorationNone,
	0x2E: DecorationNone,
	0x2F: DecorationNone,
	0x30: DecorationNone,
	0x31: DecorationNone,
	0x32: DecorationNone,
	0x33: DecorationNone,
	0x34: DecorationNone,
	0x35: DecorationNone,
	0x36: DecorationNone,
	0x37: DecorationNone,
	0x38: DecorationNone,
}

// Lookup resolves a property byte
func (t DecorationTable) Lookup(code uint8) Decoration {
	kind, ok := t[code]
	if !ok {
		kind = DecorationUnrecognized
	}
	return Decoration{Kind: kind, Code: code}
}

// MineralSize buckets a mineral amount
type MineralSize int

const (
	MineralNone MineralSize = iota
	MineralSmall
	MineralMedium
	MineralLarge
)

func (s MineralSize) String() string {
	switch s {
	case MineralSmall:
		return "small"
	case MineralMedium:
		return "medium"
	case MineralLarge:
		return "large"
	}
	return "none"
}

// SizeForAmount maps 0 to none, 1-2 to small, 3-4 to medium, above to large
func SizeForAmount(amount int) MineralSize {
	switch {
	case amount > 4:
		return MineralLarge
	case amount > 2:
		return MineralMedium
	case amount > 0:
		return MineralSmall
	}
	return MineralNone
}

// HasStone reports whether the cell holds a stone pile
func (c *Cell) HasStone() bool {
	return c.ObjectType == ObjectStone1 || c.ObjectType == ObjectStone2
}

// Stone returns the stone variant
func (c *Cell) Stone() StoneKind {
	switch c.ObjectType {
	case ObjectStone1:
		return Stone1
	case ObjectStone2:
		return Stone2
	}
	return StoneNone
}

// StoneAmount is the object property of a stone pile
func (c *Cell) StoneAmount() int {
	if !c.HasStone() {
		return 0
	}
	return int(c.ObjectProperties)
}

// HasTree reports whether the object property falls in a tree band:
// 0x30-0x37, 0x70-0x77, 0xB0-0xB7 or 0xF0-0xF7.
func (c *Cell) HasTree() bool {
	return treeBand(c.ObjectProperties) >= 0
}

// Tree resolves the species from the object type and the band. The third
// group only has the fir, which uses the wider band 0x30-0x3D.
func (c *Cell) Tree() Tree {
	t := Tree{Kind: TreeUnrecognized, Type: c.ObjectType, Properties: c.ObjectProperties}
	if c.ObjectType == ObjectTreeGroup3 {
		if c.ObjectProperties >= 0x30 && c.ObjectProperties <= 0x3D {
			t.Kind = TreeFir
		}
		return t
	}
	group, ok := treeGroups[c.ObjectType]
	if !ok {
		return t
	}
	if band := treeBand(c.ObjectProperties); band >= 0 {
		t.Kind = group[band]
	}
	return t
}

// IsNatureDecoration reports whether the object type is a decoration
func (c *Cell) IsNatureDecoration() bool {
	return c.ObjectType == ObjectDecoration1 || c.ObjectType == ObjectDecoration2
}

// Decoration resolves the decoration through DefaultDecorations
func (c *Cell) Decoration() Decoration {
	return c.DecorationFrom(DefaultDecorations)
}

// DecorationFrom resolves the decoration through a caller supplied table.
// Cells that are not decorations resolve to DecorationNone.
func (c *Cell) DecorationFrom(table DecorationTable) Decoration {
	if !c.IsNatureDecoration() {
		return Decoration{Kind: DecorationNone, Code: c.ObjectProperties}
	}
	return table.Lookup(c.ObjectProperties)
}

// DeadTreeProperty marks a dead tree on a decoration object. The
// decoration table has no entry for it, so it resolves to no decoration.
const DeadTreeProperty = 0x1F

// HasDeadTree reports whether the decoration is a dead tree, either by the
// dead tree marker or by resolving to a standing or fallen dead tree
func (c *Cell) HasDeadTree() bool {
	if !c.IsNatureDecoration() {
		return false
	}
	if c.ObjectProperties == DeadTreeProperty {
		return true
	}
	kind := c.Decoration().Kind
	return kind == DecorationDeadTree || kind == DecorationDeadTreeLyingDown
}

// HasMineral reports whether the cell holds a non-empty mineral deposit
func (c *Cell) HasMineral() bool {
	return c.Resource.IsMineral() && c.Resource.Amount > 0
}

// MineralSize buckets the deposit; MineralNone if there is no mineral
func (c *Cell) MineralSize() MineralSize {
	if !c.HasMineral() {
		return MineralNone
	}
	return SizeForAmount(c.Resource.Amount)
}

// HasWildAnimal reports whether a wild animal was placed on the cell
func (c *Cell) HasWildAnimal() bool {
	return c.Animal.Wild
}

// AllKnown reports whether every code on the cell was recognized
func (c *Cell) AllKnown() bool {
	return c.TextureBelow.Known() &&
		c.TextureDownRight.Known() &&
		c.Resource.Known() &&
		c.Animal.Known() &&
		c.Site.Known()
}
