package binary

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/dyuri/wldconv/internal/model"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// Cursor reads a map file front to back. Every read either returns the
// requested bytes or fails with a truncation error.
type Cursor struct {
	r       *bufio.Reader
	off     int64
	endian  binary.ByteOrder  // Map files are little-endian
	decoder *encoding.Decoder // Text fields are DOS code page 437
}

// NewCursor creates a cursor over r
func NewCursor(r io.Reader) *Cursor {
	return &Cursor{
		r:       bufio.NewReader(r),
		endian:  binary.LittleEndian,
		decoder: charmap.CodePage437.NewDecoder(),
	}
}

// Offset returns the number of bytes consumed so far
func (c *Cursor) Offset() int64 {
	return c.off
}

// Read reads exactly n bytes. what names the field for error messages.
func (c *Cursor) Read(n int, what string) ([]byte, error) {
	buf := make([]byte, n)
	got, err := io.ReadFull(c.r, buf)
	c.off += int64(got)
	if err != nil {
		return nil, c.readError(what, n, got, err)
	}
	return buf, nil
}

// ReadInto fills buf completely
func (c *Cursor) ReadInto(buf []byte, what string) error {
	got, err := io.ReadFull(c.r, buf)
	c.off += int64(got)
	if err != nil {
		return c.readError(what, len(buf), got, err)
	}
	return nil
}

func (c *Cursor) readError(what string, want, got int, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("at offset 0x%x: %w", c.off, model.Truncated(what, want, got))
	}
	return fmt.Errorf("read %s at offset 0x%x: %w", what, c.off, err)
}

// Uint8 reads one byte
func (c *Cursor) Uint8(what string) (uint8, error) {
	b, err := c.r.ReadByte()
	if err != nil {
		return 0, c.readError(what, 1, 0, err)
	}
	c.off++
	return b, nil
}

// Uint16 reads a little-endian 16-bit value
func (c *Cursor) Uint16(what string) (uint16, error) {
	buf, err := c.Read(2, what)
	if err != nil {
		return 0, err
	}
	return c.endian.Uint16(buf), nil
}

// Uint32 reads a little-endian 32-bit value
func (c *Cursor) Uint32(what string) (uint32, error) {
	buf, err := c.Read(4, what)
	if err != nil {
		return 0, err
	}
	return c.endian.Uint32(buf), nil
}

// Text reads a fixed-width text field. The value ends at the first zero
// byte; whatever follows it inside the field is ignored.
func (c *Cursor) Text(width int, what string) (string, error) {
	buf, err := c.Read(width, what)
	if err != nil {
		return "", err
	}
	return c.decodeString(buf)
}

func (c *Cursor) decodeString(buf []byte) (string, error) {
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		buf = buf[:i]
	}
	s, err := c.decoder.Bytes(buf)
	if err != nil {
		return string(buf), nil
	}
	return string(s), nil
}

// Skip advances n bytes without interpreting them
func (c *Cursor) Skip(n int, what string) error {
	got, err := c.r.Discard(n)
	c.off += int64(got)
	if err != nil {
		return c.readError(what, n, got, err)
	}
	return nil
}

// Peek returns the next n bytes without consuming them. Fewer bytes are
// returned at the end of the input.
func (c *Cursor) Peek(n int) []byte {
	buf, _ := c.r.Peek(n)
	return buf
}

// SkipFiller consumes a (1,0) filler pair if it comes next. It reports
// whether a pair was consumed.
func (c *Cursor) SkipFiller() (bool, error) {
	if !isFiller(c.Peek(2), 0) {
		return false, nil
	}
	if err := c.Skip(2, "filler"); err != nil {
		return false, err
	}
	return true, nil
}
