// Package maptest builds synthetic map files for tests.
package maptest

import (
	"bytes"
	"encoding/binary"
)

// BlockNames lists every data block in file order
var BlockNames = []string{
	"height",
	"texture below",
	"texture down-right",
	"road",
	"object property",
	"object type",
	"animal",
	"unknown",
	"buildable site",
	"second unknown",
	"editor cursor",
	"resource",
	"shading",
	"passability",
}

// Mass is one mass table record
type Mass struct {
	Type  uint8
	Col   uint8
	Row   uint8
	Total uint16
}

// Builder describes a map file. Zero-valued layers are written as zero
// bytes; Blocks overrides the payload of a named block.
type Builder struct {
	WLD     bool
	Title   string
	Author  string
	Terrain uint8
	Players int

	// Starts holds (col,row) per player slot, up to seven
	Starts [][2]uint8
	Faces  []uint8
	Masses []Mass

	Width  int
	Height int

	// Preamble dimensions of the swd layout; zero means Width/Height
	DeclaredWidth  int
	DeclaredHeight int

	Limited       bool // Non-zero play mode byte
	FileID        uint16
	PreFillers    int // (1,0) pairs in front of the actual dimensions
	HeaderFillers int // (1,0) pairs inside every block header

	// Length is the payload length written into every block header and
	// the size of every payload; zero means Width*Height
	Length int

	Blocks map[string][]byte

	// CorruptBlock names a block whose header gets a flipped reserved byte
	CorruptBlock string
	Footer       bool
	TruncateAt   int // Cut the output to this many bytes when > 0
}

// New returns a builder for a 1-player swd map with the given heights
func New(width, height int, heights []byte) *Builder {
	return &Builder{
		Title:   "Test",
		Author:  "Tester",
		Players: 1,
		Width:   width,
		Height:  height,
		FileID:  0x2711,
		Blocks:  map[string][]byte{"height": heights},
		Footer:  true,
	}
}

// Set replaces the payload of a block and returns the builder
func (b *Builder) Set(block string, payload []byte) *Builder {
	b.Blocks[block] = payload
	return b
}

// Bytes renders the file
func (b *Builder) Bytes() []byte {
	var buf bytes.Buffer
	le := binary.LittleEndian

	buf.Write(make([]byte, 10))

	titleWidth := 19
	if b.WLD {
		titleWidth = 23
	}
	buf.Write(fixed(b.Title, titleWidth))
	buf.WriteByte(0)

	if !b.WLD {
		dw, dh := b.DeclaredWidth, b.DeclaredHeight
		if dw == 0 && dh == 0 {
			dw, dh = b.Width, b.Height
		}
		buf.Write([]byte{byte(dw), 0, byte(dh), 0})
	}

	buf.WriteByte(b.Terrain)
	buf.WriteByte(byte(b.Players))
	buf.Write(fixed(b.Author, 19))
	buf.WriteByte(0)

	var xs, ys [7]uint8
	for i, s := range b.Starts {
		xs[i], ys[i] = s[0], s[1]
	}
	for _, x := range xs {
		buf.Write([]byte{x, 0})
	}
	for _, y := range ys {
		buf.Write([]byte{y, 0})
	}

	if b.Limited {
		buf.WriteByte(1)
	} else {
		buf.WriteByte(0)
	}

	faces := make([]byte, 7)
	copy(faces, b.Faces)
	buf.Write(faces)

	masses := make([]byte, 250*9)
	for i, m := range b.Masses {
		e := masses[i*9:]
		e[0], e[1], e[3] = m.Type, m.Col, m.Row
		le.PutUint16(e[5:7], m.Total)
	}
	buf.Write(masses)

	buf.Write(le.AppendUint16(nil, b.FileID))
	buf.Write(make([]byte, 4))
	for i := 0; i < b.PreFillers; i++ {
		buf.Write([]byte{1, 0})
	}

	if b.WLD {
		buf.Write(le.AppendUint16(nil, uint16(b.Width)))
		buf.Write(le.AppendUint16(nil, uint16(b.Height)))
	} else {
		buf.Write([]byte{byte(b.Width), 0, byte(b.Height), 0})
	}

	n := b.Width * b.Height
	if b.Length > 0 {
		n = b.Length
	}
	for _, name := range BlockNames {
		header := b.header(n)
		if name == b.CorruptBlock {
			header[2] ^= 0xFF
		}
		buf.Write(header)

		payload := make([]byte, n)
		copy(payload, b.Blocks[name])
		buf.Write(payload)
	}

	if b.Footer {
		buf.WriteByte(0xFF)
	}

	out := buf.Bytes()
	if b.TruncateAt > 0 && b.TruncateAt < len(out) {
		out = out[:b.TruncateAt]
	}
	return out
}

// PreambleSize is the number of bytes in front of the height block header
func (b *Builder) PreambleSize() int {
	if b.WLD {
		return 10 + 24 + 2 + 20 + 28 + 1 + 7 + 250*9 + 2 + 4 + 2*b.PreFillers + 4
	}
	return 10 + 20 + 4 + 2 + 20 + 28 + 1 + 7 + 250*9 + 2 + 4 + 2*b.PreFillers + 4
}

func (b *Builder) header(length int) []byte {
	le := binary.LittleEndian
	h := make([]byte, 0, 16)
	h = le.AppendUint16(h, 0x2710)
	h = le.AppendUint32(h, 0)
	if b.HeaderFillers > 0 {
		h = append(h, 1, 0)
	}
	h = le.AppendUint16(h, uint16(b.Width))
	h = le.AppendUint16(h, uint16(b.Height))
	if b.HeaderFillers > 1 {
		h = append(h, 1, 0)
		h = le.AppendUint16(h, uint16(length))
	} else {
		h = le.AppendUint32(h, uint32(length))
	}
	for len(h) < 16 {
		h = append(h, 0)
	}
	return h
}

func fixed(s string, width int) []byte {
	out := make([]byte, width)
	copy(out, s)
	return out
}
