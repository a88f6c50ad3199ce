package binary

import (
	"fmt"
	"io"

	"github.com/dyuri/wldconv/internal/model"
	"github.com/sirupsen/logrus"
)

// Reader handles decoding of binary map files
type Reader struct {
	c      *Cursor
	mode   Mode
	log    logrus.FieldLogger
	header *BlockHeader // Canonical header from the height block
}

// NewReader creates a new map reader. A nil logger discards output.
func NewReader(r io.Reader, mode Mode, log logrus.FieldLogger) *Reader {
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = discard
	}
	return &Reader{
		c:    NewCursor(r),
		mode: mode,
		log:  log.WithField("mode", mode.String()),
	}
}

// Parse reads the preamble and all data blocks in one forward pass. The
// returned map has no target coordinates yet.
func (r *Reader) Parse() (*model.Map, error) {
	m := model.NewMap()

	if err := r.ReadPreamble(m); err != nil {
		return nil, fmt.Errorf("read preamble: %w", err)
	}

	r.log.WithFields(logrus.Fields{
		"title":   m.Header.Title,
		"size":    fmt.Sprintf("%dx%d", m.Header.Width, m.Header.Height),
		"players": m.Header.MaxPlayers,
	}).Debug("read preamble")

	if err := r.ReadBlocks(m); err != nil {
		return nil, fmt.Errorf("read blocks: %w", err)
	}

	return m, nil
}

// BlockHeader returns the canonical block header, nil before the height
// block was read
func (r *Reader) BlockHeader() *BlockHeader {
	return r.header
}

// Offset returns the number of bytes consumed so far
func (r *Reader) Offset() int64 {
	return r.c.Offset()
}
