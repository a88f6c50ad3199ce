package model

import "fmt"

// Every lookup in this file returns a value for every raw code. Codes
// without a mapping come back with Kind == 0 (the Unrecognized variant)
// and keep the raw code, so callers can decide what to do with them.

// TextureKind identifies a triangle texture
type TextureKind int

const (
	TextureUnrecognized TextureKind = iota
	TextureSavannah
	TextureMountain1
	TextureSnow
	TextureSwamp
	TextureDesert1
	TextureWater
	TextureBuildableWater
	TextureDesert2
	TextureMeadow1
	TextureMeadow2
	TextureMeadow3
	TextureMountain2
	TextureMountain3
	TextureMountain4
	TextureSteppe
	TextureFlowerMeadow
	TextureLava1
	TextureMagenta
	TextureMountainMeadow
	TextureWater2
	TextureLava2
	TextureLava3
	TextureLava4
	TextureBuildableMountain
)

var textureNames = map[TextureKind]string{
	TextureSavannah:          "savannah",
	TextureMountain1:         "mountain 1",
	TextureSnow:              "snow",
	TextureSwamp:             "swamp",
	TextureDesert1:           "desert 1",
	TextureWater:             "water",
	TextureBuildableWater:    "buildable water",
	TextureDesert2:           "desert 2",
	TextureMeadow1:           "meadow 1",
	TextureMeadow2:           "meadow 2",
	TextureMeadow3:           "meadow 3",
	TextureMountain2:         "mountain 2",
	TextureMountain3:         "mountain 3",
	TextureMountain4:         "mountain 4",
	TextureSteppe:            "steppe",
	TextureFlowerMeadow:      "flower meadow",
	TextureLava1:             "lava 1",
	TextureMagenta:           "magenta",
	TextureMountainMeadow:    "mountain meadow",
	TextureWater2:            "water 2",
	TextureLava2:             "lava 2",
	TextureLava3:             "lava 3",
	TextureLava4:             "lava 4",
	TextureBuildableMountain: "buildable mountain",
}

// Texture is a decoded triangle texture code
type Texture struct {
	Kind TextureKind
	Code uint8
}

// TextureFromCode maps a raw texture byte. Codes 0x00-0x17 are known.
func TextureFromCode(code uint8) Texture {
	if code <= 0x17 {
		return Texture{Kind: TextureKind(code) + TextureSavannah, Code: code}
	}
	return Texture{Kind: TextureUnrecognized, Code: code}
}

// Known returns false for unrecognized codes
func (t Texture) Known() bool {
	return t.Kind != TextureUnrecognized
}

func (t Texture) String() string {
	if name, ok := textureNames[t.Kind]; ok {
		return name
	}
	return fmt.Sprintf("unrecognized texture 0x%02x", t.Code)
}

// Vegetation is the ground category a consumer paints a triangle with
type Vegetation int

const (
	VegetationUnrecognized Vegetation = iota
	VegetationSavannah
	VegetationMountain
	VegetationSnow
	VegetationSwamp
	VegetationDesert
	VegetationDeepWater
	VegetationShallowWater
	VegetationMeadow
	VegetationSteppe
	VegetationFlowerMeadow
	VegetationLava
	VegetationMagenta
	VegetationMountainMeadow
	VegetationBuildableMountain
)

var vegetationNames = map[Vegetation]string{
	VegetationSavannah:          "savannah",
	VegetationMountain:          "mountain",
	VegetationSnow:              "snow",
	VegetationSwamp:             "swamp",
	VegetationDesert:            "desert",
	VegetationDeepWater:         "deep water",
	VegetationShallowWater:      "shallow water",
	VegetationMeadow:            "meadow",
	VegetationSteppe:            "steppe",
	VegetationFlowerMeadow:      "flower meadow",
	VegetationLava:              "lava",
	VegetationMagenta:           "magenta",
	VegetationMountainMeadow:    "mountain meadow",
	VegetationBuildableMountain: "buildable mountain",
}

func (v Vegetation) String() string {
	if name, ok := vegetationNames[v]; ok {
		return name
	}
	return "unrecognized"
}

// Vegetation returns the ground category for the texture
func (t Texture) Vegetation() Vegetation {
	switch t.Kind {
	case TextureSavannah:
		return VegetationSavannah
	case TextureMountain1, TextureMountain2, TextureMountain3, TextureMountain4:
		return VegetationMountain
	case TextureSnow:
		return VegetationSnow
	case TextureSwamp:
		return VegetationSwamp
	case TextureDesert1, TextureDesert2:
		return VegetationDesert
	case TextureWater, TextureWater2:
		return VegetationDeepWater
	case TextureBuildableWater:
		return VegetationShallowWater
	case TextureMeadow1, TextureMeadow2, TextureMeadow3:
		return VegetationMeadow
	case TextureSteppe:
		return VegetationSteppe
	case TextureFlowerMeadow:
		return VegetationFlowerMeadow
	case TextureLava1, TextureLava2, TextureLava3, TextureLava4:
		return VegetationLava
	case TextureMagenta:
		return VegetationMagenta
	case TextureMountainMeadow:
		return VegetationMountainMeadow
	case TextureBuildableMountain:
		return VegetationBuildableMountain
	}
	return VegetationUnrecognized
}

// TerrainKind is the map's graphics set
type TerrainKind int

const (
	TerrainUnrecognized TerrainKind = iota
	TerrainGreenland
	TerrainWasteland
	TerrainWinter
)

// TerrainType is a decoded terrain type byte
type TerrainType struct {
	Kind TerrainKind
	Code uint8
}

// TerrainFromCode maps 0 greenland, 1 wasteland, 2 winter
func TerrainFromCode(code uint8) TerrainType {
	if code <= 2 {
		return TerrainType{Kind: TerrainKind(code) + TerrainGreenland, Code: code}
	}
	return TerrainType{Kind: TerrainUnrecognized, Code: code}
}

func (t TerrainType) Known() bool {
	return t.Kind != TerrainUnrecognized
}

func (t TerrainType) String() string {
	switch t.Kind {
	case TerrainGreenland:
		return "greenland"
	case TerrainWasteland:
		return "wasteland"
	case TerrainWinter:
		return "winter"
	}
	return fmt.Sprintf("unrecognized terrain 0x%02x", t.Code)
}

// FaceKind identifies a player portrait
type FaceKind int

const (
	FaceUnrecognized FaceKind = iota
	FaceOctavianus
	FaceJulius
	FaceBrutus
	FaceErik
	FaceKnut
	FaceOlof
	FaceYamauchi
	FaceTsunami
	FaceHakirawashi
	FaceShaka
	FaceTodo
	FaceMngaTscha
)

var faceNames = []string{
	"octavianus", "julius", "brutus", "erik", "knut", "olof",
	"yamauchi", "tsunami", "hakirawashi", "shaka", "todo", "mnga tscha",
}

// PlayerFace is a decoded player face byte
type PlayerFace struct {
	Kind FaceKind
	Code uint8
}

// PlayerFaceFromCode maps codes 0x00-0x0B
func PlayerFaceFromCode(code uint8) PlayerFace {
	if int(code) < len(faceNames) {
		return PlayerFace{Kind: FaceKind(code) + FaceOctavianus, Code: code}
	}
	return PlayerFace{Kind: FaceUnrecognized, Code: code}
}

func (f PlayerFace) Known() bool {
	return f.Kind != FaceUnrecognized
}

func (f PlayerFace) String() string {
	if f.Known() {
		return faceNames[f.Kind-FaceOctavianus]
	}
	return fmt.Sprintf("unrecognized face 0x%02x", f.Code)
}

// ResourceKind identifies what lies under a cell
type ResourceKind int

const (
	ResourceUnrecognized ResourceKind = iota
	ResourceNone
	ResourceWater
	ResourceFish
	ResourceCoal
	ResourceIron
	ResourceGold
	ResourceGranite
)

// Resource is a decoded resource byte. Amount is 0-7 and only set for
// the four mineral kinds.
type Resource struct {
	Kind   ResourceKind
	Amount int
	Code   uint8
}

// ResourceFromCode maps a raw resource byte. Minerals occupy 8-wide bands
// whose low three bits carry the amount.
func ResourceFromCode(code uint8) Resource {
	r := Resource{Code: code}
	switch {
	case code == 0x00:
		r.Kind = ResourceNone
	case code == 0x21:
		r.Kind = ResourceWater
	case code == 0x87:
		r.Kind = ResourceFish
	case code >= 0x40 && code <= 0x47:
		r.Kind = ResourceCoal
	case code >= 0x48 && code <= 0x4F:
		r.Kind = ResourceIron
	case code >= 0x50 && code <= 0x57:
		r.Kind = ResourceGold
	case code >= 0x58 && code <= 0x5F:
		r.Kind = ResourceGranite
	default:
		r.Kind = ResourceUnrecognized
	}
	if r.IsMineral() {
		r.Amount = int(code & 0x07)
	}
	return r
}

// Known returns false for unrecognized codes
func (r Resource) Known() bool {
	return r.Kind != ResourceUnrecognized
}

// Present reports whether the byte denotes any resource, recognized or not
func (r Resource) Present() bool {
	return r.Kind != ResourceNone
}

// IsMineral reports whether the resource is coal, iron, gold or granite
func (r Resource) IsMineral() bool {
	switch r.Kind {
	case ResourceCoal, ResourceIron, ResourceGold, ResourceGranite:
		return true
	}
	return false
}

func (r Resource) String() string {
	switch r.Kind {
	case ResourceNone:
		return "none"
	case ResourceWater:
		return "water"
	case ResourceFish:
		return "fish"
	case ResourceCoal:
		return "coal"
	case ResourceIron:
		return "iron"
	case ResourceGold:
		return "gold"
	case ResourceGranite:
		return "granite"
	}
	return fmt.Sprintf("unrecognized resource 0x%02x", r.Code)
}

// Material is what a mineral yields when mined
type Material int

const (
	MaterialNone Material = iota
	MaterialCoal
	MaterialIron
	MaterialGold
	MaterialStone
)

func (m Material) String() string {
	switch m {
	case MaterialCoal:
		return "coal"
	case MaterialIron:
		return "iron"
	case MaterialGold:
		return "gold"
	case MaterialStone:
		return "stone"
	}
	return "none"
}

// Material maps mineral kinds to their material; others yield MaterialNone
func (r Resource) Material() Material {
	switch r.Kind {
	case ResourceCoal:
		return MaterialCoal
	case ResourceIron:
		return MaterialIron
	case ResourceGold:
		return MaterialGold
	case ResourceGranite:
		return MaterialStone
	}
	return MaterialNone
}

// AnimalKind identifies an animal placed on the map
type AnimalKind int

const (
	AnimalUnrecognized AnimalKind = iota
	AnimalNone
	AnimalRabbit
	AnimalFox
	AnimalStag
	AnimalDeer
	AnimalDuck
	AnimalSheep
	AnimalPackDonkey
)

var animalNames = map[AnimalKind]string{
	AnimalNone:       "none",
	AnimalRabbit:     "rabbit",
	AnimalFox:        "fox",
	AnimalStag:       "stag",
	AnimalDeer:       "deer",
	AnimalDuck:       "duck",
	AnimalSheep:      "sheep",
	AnimalPackDonkey: "pack donkey",
}

// Animal is a decoded animal byte. Deer and duck have a second, tame
// code; the pack donkey is never wild.
type Animal struct {
	Kind AnimalKind
	Code uint8
	Wild bool
}

var animalCodes = map[uint8]Animal{
	0x00: {Kind: AnimalNone},
	0x01: {Kind: AnimalRabbit, Wild: true},
	0x02: {Kind: AnimalFox, Wild: true},
	0x03: {Kind: AnimalStag, Wild: true},
	0x04: {Kind: AnimalDeer, Wild: true},
	0x05: {Kind: AnimalDuck, Wild: true},
	0x06: {Kind: AnimalSheep, Wild: true},
	0x07: {Kind: AnimalDeer},
	0x08: {Kind: AnimalDuck},
	0x09: {Kind: AnimalPackDonkey},
}

// AnimalFromCode maps a raw animal byte
func AnimalFromCode(code uint8) Animal {
	a, ok := animalCodes[code]
	if !ok {
		a = Animal{Kind: AnimalUnrecognized}
	}
	a.Code = code
	return a
}

func (a Animal) Known() bool {
	return a.Kind != AnimalUnrecognized
}

func (a Animal) String() string {
	name, ok := animalNames[a.Kind]
	if !ok {
		return fmt.Sprintf("unrecognized animal 0x%02x", a.Code)
	}
	if a.Kind != AnimalNone && !a.Wild {
		return "tame " + name
	}
	return name
}

// SiteKind classifies what can be built on a cell
type SiteKind int

const (
	SiteUnrecognized SiteKind = iota
	SiteNothing
	SiteFlag
	SiteHut
	SiteHouse
	SiteCastle
	SiteMine
	SiteFlagNextToInaccessible
	SiteOccupiedByTree
	SiteInaccessible
)

var siteCodes = map[uint8]SiteKind{
	0x00: SiteNothing,
	0x01: SiteFlag,
	0x02: SiteHut,
	0x03: SiteHouse,
	0x04: SiteCastle,
	0x05: SiteMine,
	0x09: SiteFlagNextToInaccessible,
	0x68: SiteOccupiedByTree,
	0x78: SiteInaccessible,
}

var siteNames = map[SiteKind]string{
	SiteNothing:                "nothing",
	SiteFlag:                   "flag",
	SiteHut:                    "hut",
	SiteHouse:                  "house",
	SiteCastle:                 "castle",
	SiteMine:                   "mine",
	SiteFlagNextToInaccessible: "flag next to inaccessible terrain",
	SiteOccupiedByTree:         "occupied by tree",
	SiteInaccessible:           "inaccessible",
}

// BuildableSite is a decoded buildable-site byte
type BuildableSite struct {
	Kind SiteKind
	Code uint8
}

// BuildableSiteFromCode maps a raw buildable-site byte
func BuildableSiteFromCode(code uint8) BuildableSite {
	kind, ok := siteCodes[code]
	if !ok {
		kind = SiteUnrecognized
	}
	return BuildableSite{Kind: kind, Code: code}
}

func (s BuildableSite) Known() bool {
	return s.Kind != SiteUnrecognized
}

func (s BuildableSite) String() string {
	if name, ok := siteNames[s.Kind]; ok {
		return name
	}
	return fmt.Sprintf("unrecognized site 0x%02x", s.Code)
}

// MassKind is the kind of a connected land or water area
type MassKind int

const (
	MassUnrecognized MassKind = iota
	MassLand
	MassWater
)

// MassType is a decoded mass table type byte
type MassType struct {
	Kind MassKind
	Code uint8
}

// MassTypeFromCode maps 0 land, 1 water
func MassTypeFromCode(code uint8) MassType {
	switch code {
	case 0x00:
		return MassType{Kind: MassLand, Code: code}
	case 0x01:
		return MassType{Kind: MassWater, Code: code}
	}
	return MassType{Kind: MassUnrecognized, Code: code}
}

func (m MassType) String() string {
	switch m.Kind {
	case MassLand:
		return "land"
	case MassWater:
		return "water"
	}
	return fmt.Sprintf("unrecognized mass 0x%02x", m.Code)
}
