package binary

import (
	"encoding/binary"

	"github.com/dyuri/wldconv/internal/model"
)

// Structural constants of the map format
const (
	BlockSync       = 0x2710 // First two bytes of every block header
	FileSync        = 0x2711 // Sync id following the mass table
	BlockHeaderSize = 16
)

// BlockHeader is the 16-byte header in front of every data block
type BlockHeader struct {
	Raw      [BlockHeaderSize]byte
	Sync     uint16
	Reserved uint32 // Expected zero
	Width    int
	Height   int
	Fillers  int // Number of (1,0) filler pairs found
	Length   int // Payload length in bytes
}

// isFiller reports whether buf holds a (1,0) filler pair at off.
//
// The filler is not documented anywhere; it was found by comparing sample
// files, and files disagree on whether and where it appears.
func isFiller(buf []byte, off int) bool {
	return off+2 <= len(buf) && buf[off] == 0x01 && buf[off+1] == 0x00
}

// ParseBlockHeader decodes a raw block header and checks the sync
// constant and the declared dimensions against the map's dimensions.
//
// Layout, offsets before any filler:
//
//	0x00 sync (uint16)
//	0x02 reserved, zero (uint32)
//	0x06 optional filler
//	0x06 width (uint16)
//	0x08 height (uint16)
//	0x0A optional filler
//	0x0A payload length (uint32)
//
// Each filler found shifts every later field by two bytes. When two
// fillers are present the length field is cut to 16 bits by the end of
// the header.
func ParseBlockHeader(raw [BlockHeaderSize]byte, width, height int) (*BlockHeader, error) {
	le := binary.LittleEndian
	h := &BlockHeader{
		Raw:      raw,
		Sync:     le.Uint16(raw[0x00:0x02]),
		Reserved: le.Uint32(raw[0x02:0x06]),
	}

	if h.Sync != BlockSync {
		return nil, model.FormatMismatch("block header sync is 0x%04x, want 0x%04x", h.Sync, BlockSync)
	}

	pos := 0x06
	if isFiller(raw[:], pos) {
		pos += 2
		h.Fillers++
	}

	h.Width = int(le.Uint16(raw[pos : pos+2]))
	h.Height = int(le.Uint16(raw[pos+2 : pos+4]))
	if h.Width != width || h.Height != height {
		return nil, model.FormatMismatch("block header dimensions %dx%d do not match map dimensions %dx%d",
			h.Width, h.Height, width, height)
	}
	pos += 4

	if isFiller(raw[:], pos) {
		pos += 2
		h.Fillers++
	}

	switch {
	case pos+4 <= BlockHeaderSize:
		h.Length = int(le.Uint32(raw[pos : pos+4]))
	case pos+2 <= BlockHeaderSize:
		h.Length = int(le.Uint16(raw[pos : pos+2]))
	default:
		return nil, model.FormatMismatch("block header has no room for the payload length")
	}

	return h, nil
}

// Matches reports whether raw is byte-for-byte equal to this header
func (h *BlockHeader) Matches(raw [BlockHeaderSize]byte) bool {
	return h.Raw == raw
}
