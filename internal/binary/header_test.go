package binary

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/dyuri/wldconv/internal/model"
)

func rawHeader(parts ...[]byte) [BlockHeaderSize]byte {
	var raw [BlockHeaderSize]byte
	off := 0
	for _, p := range parts {
		off += copy(raw[off:], p)
	}
	return raw
}

func u16(v uint16) []byte { return binary.LittleEndian.AppendUint16(nil, v) }
func u32(v uint32) []byte { return binary.LittleEndian.AppendUint32(nil, v) }

var filler = []byte{1, 0}

func TestParseBlockHeader(t *testing.T) {
	tests := []struct {
		name    string
		raw     [BlockHeaderSize]byte
		fillers int
		length  int
	}{
		{
			name:   "no filler",
			raw:    rawHeader(u16(BlockSync), u32(0), u16(64), u16(32), u32(2048)),
			length: 2048,
		},
		{
			name:    "filler before dimensions",
			raw:     rawHeader(u16(BlockSync), u32(0), filler, u16(64), u16(32), u32(2048)),
			fillers: 1,
			length:  2048,
		},
		{
			name:    "filler after dimensions",
			raw:     rawHeader(u16(BlockSync), u32(0), u16(64), u16(32), filler, u32(2048)),
			fillers: 1,
			length:  2048,
		},
		{
			name:    "two fillers, short length",
			raw:     rawHeader(u16(BlockSync), u32(0), filler, u16(64), u16(32), filler, u16(2048)),
			fillers: 2,
			length:  2048,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := ParseBlockHeader(tt.raw, 64, 32)
			if err != nil {
				t.Fatalf("ParseBlockHeader failed: %v", err)
			}
			if h.Width != 64 || h.Height != 32 {
				t.Errorf("Dimensions = %dx%d, want 64x32", h.Width, h.Height)
			}
			if h.Fillers != tt.fillers {
				t.Errorf("Fillers = %d, want %d", h.Fillers, tt.fillers)
			}
			if h.Length != tt.length {
				t.Errorf("Length = %d, want %d", h.Length, tt.length)
			}
			if !h.Matches(tt.raw) {
				t.Error("header does not match its own raw bytes")
			}
		})
	}
}

func TestParseBlockHeaderErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  [BlockHeaderSize]byte
	}{
		{"bad sync", rawHeader(u16(0x2711), u32(0), u16(64), u16(32), u32(2048))},
		{"width mismatch", rawHeader(u16(BlockSync), u32(0), u16(63), u16(32), u32(2016))},
		{"height mismatch", rawHeader(u16(BlockSync), u32(0), filler, u16(64), u16(31), u32(1984))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBlockHeader(tt.raw, 64, 32)
			if !errors.Is(err, model.ErrFormatMismatch) {
				t.Errorf("err = %v, want ErrFormatMismatch", err)
			}
		})
	}
}

func TestBlockHeaderMatches(t *testing.T) {
	raw := rawHeader(u16(BlockSync), u32(0), u16(2), u16(2), u32(4))
	h, err := ParseBlockHeader(raw, 2, 2)
	if err != nil {
		t.Fatalf("ParseBlockHeader failed: %v", err)
	}

	other := raw
	other[15] = 0x01
	if h.Matches(other) {
		t.Error("Matches accepted a header differing in the last byte")
	}
}
