package binary

import (
	"bytes"
	"errors"
	"testing"

	"github.com/dyuri/wldconv/internal/maptest"
	"github.com/dyuri/wldconv/internal/model"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func parse(t *testing.T, b *maptest.Builder, mode Mode) (*model.Map, error) {
	t.Helper()
	return NewReader(bytes.NewReader(b.Bytes()), mode, nil).Parse()
}

// TestReadMinimalMap decodes a 2x2 map with one player
func TestReadMinimalMap(t *testing.T) {
	b := maptest.New(2, 2, []byte{10, 12, 11, 13})
	b.Title = "Two by two"
	b.Author = "Someone"
	b.Terrain = 2
	b.Faces = []byte{3}
	b.Set("texture below", []byte{0x05, 0x00, 0x08, 0x30})
	b.Set("resource", []byte{0x43, 0x00, 0x21, 0x99})

	m, err := parse(t, b, ModeSWD)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	h := m.Header
	if h.Title != "Two by two" {
		t.Errorf("Title = %q, want %q", h.Title, "Two by two")
	}
	if h.Author != "Someone" {
		t.Errorf("Author = %q, want %q", h.Author, "Someone")
	}
	if h.Terrain.Kind != model.TerrainWinter {
		t.Errorf("Terrain = %s, want winter", h.Terrain)
	}
	if h.Width != 2 || h.Height != 2 {
		t.Errorf("Size = %dx%d, want 2x2", h.Width, h.Height)
	}
	if h.MaxPlayers != 1 || len(h.RawStarts) != 1 || len(h.PlayerFaces) != 1 {
		t.Fatalf("players = %d, starts = %d, faces = %d; want 1 each",
			h.MaxPlayers, len(h.RawStarts), len(h.PlayerFaces))
	}
	if h.PlayerFaces[0].Code != 3 {
		t.Errorf("Face code = %d, want 3", h.PlayerFaces[0].Code)
	}
	if !h.UnlimitedPlay {
		t.Error("UnlimitedPlay = false, want true")
	}

	if len(m.Cells) != 4 {
		t.Fatalf("Got %d cells, want 4", len(m.Cells))
	}
	for i, want := range []uint8{10, 12, 11, 13} {
		if m.Cells[i].Height != want {
			t.Errorf("Cell %d height = %d, want %d", i, m.Cells[i].Height, want)
		}
	}

	if v := m.Cells[0].TextureBelow.Vegetation(); v != model.VegetationDeepWater {
		t.Errorf("Cell 0 vegetation = %s, want deep water", v)
	}
	if v := m.Cells[1].TextureBelow.Vegetation(); v != model.VegetationSavannah {
		t.Errorf("Cell 1 vegetation = %s, want savannah", v)
	}
	if tex := m.Cells[3].TextureBelow; tex.Known() || tex.Code != 0x30 {
		t.Errorf("Cell 3 texture = %+v, want unrecognized 0x30", tex)
	}

	if r := m.Cells[0].Resource; r.Kind != model.ResourceCoal || r.Amount != 3 {
		t.Errorf("Cell 0 resource = %s/%d, want coal/3", r, r.Amount)
	}
	if r := m.Cells[2].Resource; r.Kind != model.ResourceWater {
		t.Errorf("Cell 2 resource = %s, want water", r)
	}
	if r := m.Cells[3].Resource; r.Known() {
		t.Errorf("Cell 3 resource = %s, want unrecognized", r)
	}

	if m.Cells[0].Placed {
		t.Error("Parse assigned target positions")
	}
}

func TestReadObjectsAndAnimals(t *testing.T) {
	b := maptest.New(2, 2, make([]byte, 4))
	b.Set("object type", []byte{model.ObjectTreeGroup1, model.ObjectStone2, model.ObjectDecoration1, 0})
	b.Set("object property", []byte{0x70, 0x05, 0x05, 0})
	b.Set("animal", []byte{0x01, 0x07, 0x42, 0x00})
	b.Set("buildable site", []byte{0x04, 0x68, 0x55, 0x00})

	m, err := parse(t, b, ModeSWD)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if tree := m.Cells[0].Tree(); tree.Kind != model.TreeBirch {
		t.Errorf("Cell 0 tree = %s, want birch", tree)
	}
	if !m.Cells[1].HasStone() || m.Cells[1].StoneAmount() != 5 {
		t.Errorf("Cell 1 stone = %v/%d, want stone 2 with 5", m.Cells[1].Stone(), m.Cells[1].StoneAmount())
	}
	if !m.Cells[2].HasDeadTree() {
		t.Errorf("Cell 2 decoration = %s, want a dead tree", m.Cells[2].Decoration())
	}

	if a := m.Cells[0].Animal; a.Kind != model.AnimalRabbit || !a.Wild {
		t.Errorf("Cell 0 animal = %s, want wild rabbit", a)
	}
	if a := m.Cells[1].Animal; a.Kind != model.AnimalNone {
		t.Errorf("Cell 1 animal = %s, tame animals should be dropped", a)
	}
	if a := m.Cells[2].Animal; a.Known() || a.Code != 0x42 {
		t.Errorf("Cell 2 animal = %s, want unrecognized 0x42 kept", a)
	}

	if s := m.Cells[0].Site; s.Kind != model.SiteCastle {
		t.Errorf("Cell 0 site = %s, want castle", s)
	}
	if s := m.Cells[1].Site; s.Kind != model.SiteOccupiedByTree {
		t.Errorf("Cell 1 site = %s, want occupied by tree", s)
	}
	if s := m.Cells[2].Site; s.Known() {
		t.Errorf("Cell 2 site = %s, want unrecognized", s)
	}
	if !m.Cells[3].AllKnown() {
		t.Error("Cell 3 has unrecognized codes, want none")
	}
}

func TestReadWLD(t *testing.T) {
	b := maptest.New(3, 2, []byte{1, 2, 3, 4, 5, 6})
	b.WLD = true
	b.Title = "A title longer than 19"
	b.Players = 2
	b.Starts = [][2]uint8{{1, 0}, {2, 1}}

	m, err := parse(t, b, ModeWLD)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if m.Header.Title != "A title longer than 19" {
		t.Errorf("Title = %q", m.Header.Title)
	}
	if m.Header.DeclaredWidth != 0 {
		t.Errorf("DeclaredWidth = %d, wld has no preamble dimensions", m.Header.DeclaredWidth)
	}
	if m.Header.Width != 3 || m.Header.Height != 2 {
		t.Errorf("Size = %dx%d, want 3x2", m.Header.Width, m.Header.Height)
	}
	if got := m.Header.RawStarts[1]; got != (model.GridPos{Col: 2, Row: 1}) {
		t.Errorf("Start 1 = %v, want (2,1)", got)
	}
	if len(m.Cells) != 6 || m.Cells[5].Height != 6 {
		t.Errorf("cells not decoded: %d", len(m.Cells))
	}
}

func TestReadFillersAndDimensions(t *testing.T) {
	for fillers := 0; fillers <= 2; fillers++ {
		b := maptest.New(2, 2, []byte{1, 2, 3, 4})
		b.HeaderFillers = fillers
		b.PreFillers = fillers
		b.DeclaredWidth, b.DeclaredHeight = 64, 64

		m, err := parse(t, b, ModeSWD)
		if err != nil {
			t.Fatalf("fillers=%d: Parse failed: %v", fillers, err)
		}
		if m.Header.Width != 2 || m.Header.Height != 2 {
			t.Errorf("fillers=%d: Size = %dx%d, actual dimensions should win", fillers, m.Header.Width, m.Header.Height)
		}
		if m.Header.DeclaredWidth != 64 {
			t.Errorf("fillers=%d: DeclaredWidth = %d, want 64", fillers, m.Header.DeclaredWidth)
		}
		if m.Cells[3].Height != 4 {
			t.Errorf("fillers=%d: last height = %d, want 4", fillers, m.Cells[3].Height)
		}
	}
}

func TestReadMassTable(t *testing.T) {
	b := maptest.New(2, 2, make([]byte, 4))
	b.Masses = []maptest.Mass{
		{Type: 0, Col: 1, Row: 1, Total: 300},
		{Type: 1, Col: 0, Row: 1, Total: 12},
	}

	m, err := parse(t, b, ModeSWD)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(m.Masses) != 2 {
		t.Fatalf("Got %d masses, want 2", len(m.Masses))
	}
	if m.Masses[0].Type.Kind != model.MassLand || m.Masses[0].Total != 300 {
		t.Errorf("Mass 0 = %+v", m.Masses[0])
	}
	if m.Masses[1].Type.Kind != model.MassWater || m.Masses[1].Position != (model.GridPos{Col: 0, Row: 1}) {
		t.Errorf("Mass 1 = %+v", m.Masses[1])
	}
}

func warnings(hook *test.Hook) map[string]bool {
	msgs := make(map[string]bool)
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			msgs[e.Message] = true
		}
	}
	return msgs
}

func TestReadSoftWarnings(t *testing.T) {
	b := maptest.New(2, 2, make([]byte, 4))
	b.FileID = 0x1234
	b.Footer = false
	data := append(b.Bytes(), 0x00)
	// Reserved bytes right after the file id
	data[b.PreambleSize()-8] = 0x01

	logger, hook := test.NewNullLogger()
	if _, err := NewReader(bytes.NewReader(data), ModeSWD, logger).Parse(); err != nil {
		t.Fatalf("Parse failed on soft issues: %v", err)
	}

	got := warnings(hook)
	for _, want := range []string{
		"unexpected file id",
		"reserved bytes after file id are not zero",
		"unexpected footer byte",
	} {
		if !got[want] {
			t.Errorf("missing warning %q, got %v", want, got)
		}
	}
}

func TestReadCleanFileHasNoWarnings(t *testing.T) {
	b := maptest.New(2, 2, make([]byte, 4))

	logger, hook := test.NewNullLogger()
	if _, err := NewReader(bytes.NewReader(b.Bytes()), ModeSWD, logger).Parse(); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got := warnings(hook); len(got) != 0 {
		t.Errorf("warnings on a clean file: %v", got)
	}
}

// TestReadPayloadLength checks that the length in the first block header,
// not width*height, sizes the cells and every following block
func TestReadPayloadLength(t *testing.T) {
	b := maptest.New(2, 2, []byte{1, 2, 3, 4, 5, 6})
	b.Length = 6
	b.Set("resource", []byte{0, 0, 0, 0, 0, 0x21})
	b.Set("object type", []byte{0, 0, 0, 0, 0, model.ObjectStone1})
	data := b.Bytes()

	logger, hook := test.NewNullLogger()
	r := NewReader(bytes.NewReader(data), ModeSWD, logger)
	m, err := r.Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(m.Cells) != 6 {
		t.Fatalf("Got %d cells, want 6", len(m.Cells))
	}
	if r.BlockHeader().Length != 6 {
		t.Errorf("header length = %d, want 6", r.BlockHeader().Length)
	}
	if m.Cells[5].Height != 6 || m.Cells[5].Resource.Kind != model.ResourceWater || !m.Cells[5].HasStone() {
		t.Errorf("last cell = %+v", m.Cells[5])
	}

	// Every block consumed, the footer byte is next
	if want := int64(len(data) - 1); r.Offset() != want {
		t.Errorf("Offset = %d, want %d", r.Offset(), want)
	}
	got := warnings(hook)
	if got["unexpected footer byte"] {
		t.Error("footer not found after the last block")
	}
	if !got["payload length differs from width*height"] {
		t.Errorf("missing payload length warning, got %v", got)
	}
}

func TestReadBlockMismatch(t *testing.T) {
	b := maptest.New(2, 2, make([]byte, 4))
	b.CorruptBlock = "resource"

	_, err := parse(t, b, ModeSWD)
	var mismatch *model.BlockMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("err = %v, want BlockMismatchError", err)
	}
	if mismatch.Block != "resource" {
		t.Errorf("Block = %q, want %q", mismatch.Block, "resource")
	}
	if !errors.Is(err, model.ErrFormatMismatch) {
		t.Errorf("err = %v, want ErrFormatMismatch", err)
	}
}

func TestReadHeightHeaderMismatch(t *testing.T) {
	b := maptest.New(2, 2, make([]byte, 4))
	b.CorruptBlock = "height"

	// A corrupted reserved field on the first block is a warning, the sync
	// and dimensions still match
	if _, err := parse(t, b, ModeSWD); err == nil {
		t.Fatal("Parse accepted later blocks that differ from the height block")
	}
}

func TestReadTruncated(t *testing.T) {
	b := maptest.New(2, 2, []byte{1, 2, 3, 4})
	full := len(b.Bytes())

	cuts := map[string]int{
		"in title":          20,
		"in mass table":     200,
		"in height header":  b.PreambleSize() + 8,
		"in height payload": b.PreambleSize() + BlockHeaderSize + 2,
		"in last block":     full - 3,
	}
	for name, cut := range cuts {
		t.Run(name, func(t *testing.T) {
			b.TruncateAt = cut
			_, err := parse(t, b, ModeSWD)
			if !errors.Is(err, model.ErrTruncated) {
				t.Errorf("err = %v, want ErrTruncated", err)
			}
		})
	}
}

func TestReadInvalidPlayers(t *testing.T) {
	for _, players := range []int{0, 8} {
		b := maptest.New(2, 2, make([]byte, 4))
		b.Players = players

		_, err := parse(t, b, ModeSWD)
		if !errors.Is(err, model.ErrInvalidMap) {
			t.Errorf("players=%d: err = %v, want ErrInvalidMap", players, err)
		}
	}
}

func TestReadWrongSync(t *testing.T) {
	b := maptest.New(2, 2, make([]byte, 4))
	data := b.Bytes()
	data[b.PreambleSize()] = 0x11

	_, err := NewReader(bytes.NewReader(data), ModeSWD, nil).Parse()
	if !errors.Is(err, model.ErrFormatMismatch) {
		t.Errorf("err = %v, want ErrFormatMismatch", err)
	}
}

func TestParseMode(t *testing.T) {
	if m, err := ParseMode("WLD"); err != nil || m != ModeWLD {
		t.Errorf("ParseMode(WLD) = %v, %v", m, err)
	}
	if _, err := ParseMode("map"); err == nil {
		t.Error("ParseMode accepted an unknown layout")
	}
}
