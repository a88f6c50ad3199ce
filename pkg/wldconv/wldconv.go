// Package wldconv decodes legacy strategy-game map files.
//
// Two sibling layouts exist, swd and wld. The caller picks the layout;
// it is not detected from the file. Decoding produces a model.Map whose
// cells carry both their file-space and target-space coordinates.
//
// Example usage:
//
//	m, err := wldconv.LoadFile("map.swd", wldconv.Options{Mode: wldconv.ModeSWD})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, start := range m.Header.Starts {
//	    fmt.Println(start.Player, start.Position)
//	}
package wldconv

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/dyuri/wldconv/internal/binary"
	"github.com/dyuri/wldconv/internal/grid"
	"github.com/dyuri/wldconv/internal/model"
	"github.com/klauspost/compress/gzip"
	"github.com/sirupsen/logrus"
)

// Map is the decoded map
type Map = model.Map

// Mode selects the file layout
type Mode = binary.Mode

// Layouts
const (
	ModeSWD = binary.ModeSWD
	ModeWLD = binary.ModeWLD
)

// StartPolicy decides what to do with starting positions outside the map
type StartPolicy = grid.StartPolicy

// Starting position policies
const (
	StartStrict = grid.StartStrict
	StartSkip   = grid.StartSkip
)

// Common errors. Match them with errors.Is.
var (
	ErrTruncated      = model.ErrTruncated
	ErrFormatMismatch = model.ErrFormatMismatch
	ErrInvalidMap     = model.ErrInvalidMap
)

// Error represents a wldconv error
type Error = model.Error

// StartingPositionError names the player whose position is outside the map
type StartingPositionError = model.StartingPositionError

// BlockMismatchError names the block whose header differs from the first
type BlockMismatchError = model.BlockMismatchError

// Options configures decoding
type Options struct {
	Mode        Mode
	StartPolicy StartPolicy
	Logger      logrus.FieldLogger // nil discards log output
}

// ParseMode parses "swd" or "wld"
func ParseMode(s string) (Mode, error) {
	return binary.ParseMode(s)
}

// ParseMap decodes a map from r and translates it to target coordinates.
//
// Example:
//
//	f, _ := os.Open("map.wld")
//	defer f.Close()
//	m, err := ParseMap(f, Options{Mode: ModeWLD, StartPolicy: StartSkip})
func ParseMap(r io.Reader, opts Options) (*Map, error) {
	reader := binary.NewReader(r, opts.Mode, opts.Logger)
	m, err := reader.Parse()
	if err != nil {
		return nil, err
	}
	if err := grid.Translate(m, opts.StartPolicy, opts.Logger); err != nil {
		return nil, fmt.Errorf("translate coordinates: %w", err)
	}
	return m, nil
}

// gzipMagic starts every gzip stream
var gzipMagic = []byte{0x1f, 0x8b}

// LoadFile opens and decodes a map file. Gzip-compressed files are
// decompressed on the fly.
func LoadFile(path string, opts Options) (*Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open map file: %w", err)
	}
	defer f.Close()

	src, closeSrc, err := maybeDecompress(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("open map file %s: %w", path, err)
	}
	defer closeSrc()

	m, err := ParseMap(src, opts)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return m, nil
}

// maybeDecompress wraps br in a gzip reader if it starts with the gzip magic
func maybeDecompress(br *bufio.Reader) (io.Reader, func(), error) {
	head, _ := br.Peek(len(gzipMagic))
	if len(head) < len(gzipMagic) || head[0] != gzipMagic[0] || head[1] != gzipMagic[1] {
		return br, func() {}, nil
	}
	zr, err := gzip.NewReader(br)
	if err != nil {
		return nil, nil, fmt.Errorf("gzip: %w", err)
	}
	return zr, func() { zr.Close() }, nil
}
