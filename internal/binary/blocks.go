package binary

import (
	"fmt"

	"github.com/dyuri/wldconv/internal/model"
	"github.com/sirupsen/logrus"
)

// maxPayload bounds the payload length taken from the first block header.
// The largest maps in the format are 256x256.
const maxPayload = 1 << 20

const footerByte = 0xFF

// cellBlock is one data block following the height block. A nil apply
// means the payload is skipped.
type cellBlock struct {
	name  string
	apply func(cells []model.Cell, payload []byte)
}

// blockSequence lists the blocks after the height block in file order
var blockSequence = []cellBlock{
	{name: "texture below", apply: func(cells []model.Cell, p []byte) {
		for i := range cells {
			cells[i].TextureBelow = model.TextureFromCode(p[i])
		}
	}},
	{name: "texture down-right", apply: func(cells []model.Cell, p []byte) {
		for i := range cells {
			cells[i].TextureDownRight = model.TextureFromCode(p[i])
		}
	}},
	{name: "road"},
	{name: "object property", apply: func(cells []model.Cell, p []byte) {
		for i := range cells {
			cells[i].ObjectProperties = p[i]
		}
	}},
	{name: "object type", apply: func(cells []model.Cell, p []byte) {
		for i := range cells {
			cells[i].ObjectType = p[i]
		}
	}},
	{name: "animal", apply: func(cells []model.Cell, p []byte) {
		for i := range cells {
			a := model.AnimalFromCode(p[i])
			if a.Wild || !a.Known() {
				cells[i].Animal = a
			}
		}
	}},
	{name: "unknown"},
	{name: "buildable site", apply: func(cells []model.Cell, p []byte) {
		for i := range cells {
			cells[i].Site = model.BuildableSiteFromCode(p[i])
		}
	}},
	{name: "second unknown"},
	{name: "editor cursor"},
	{name: "resource", apply: func(cells []model.Cell, p []byte) {
		for i := range cells {
			cells[i].Resource = model.ResourceFromCode(p[i])
		}
	}},
	{name: "shading"},
	{name: "passability"},
}

// ReadBlocks decodes the height block, which fixes the canonical block
// header and the payload length, then every following block.
func (r *Reader) ReadBlocks(m *model.Map) error {
	if err := r.readHeightBlock(m); err != nil {
		return err
	}

	for _, b := range blockSequence {
		if err := r.readBlock(m, b); err != nil {
			return err
		}
	}

	r.checkFooter()
	return nil
}

func (r *Reader) readHeightBlock(m *model.Map) error {
	var raw [BlockHeaderSize]byte
	if err := r.c.ReadInto(raw[:], "height block header"); err != nil {
		return err
	}

	header, err := ParseBlockHeader(raw, m.Header.Width, m.Header.Height)
	if err != nil {
		return fmt.Errorf("height block header: %w", err)
	}
	if header.Reserved != 0 {
		r.log.WithField("reserved", fmt.Sprintf("0x%08x", header.Reserved)).Warn("block header reserved bytes are not zero")
	}
	if header.Length > maxPayload {
		return model.FormatMismatch("height block payload of %d bytes exceeds %d", header.Length, maxPayload)
	}
	if want := m.Header.Width * m.Header.Height; header.Length != want {
		r.log.WithFields(logrus.Fields{
			"length": header.Length,
			"cells":  want,
		}).Warn("payload length differs from width*height")
	}
	r.header = header

	r.log.WithFields(logrus.Fields{
		"fillers": header.Fillers,
		"length":  header.Length,
	}).Debug("read height block header")

	payload, err := r.c.Read(header.Length, "height block")
	if err != nil {
		return err
	}
	m.Cells = make([]model.Cell, header.Length)
	for i, h := range payload {
		m.Cells[i] = model.NewCell(h)
	}
	return nil
}

func (r *Reader) readBlock(m *model.Map, b cellBlock) error {
	var raw [BlockHeaderSize]byte
	if err := r.c.ReadInto(raw[:], b.name+" block header"); err != nil {
		return err
	}
	if !r.header.Matches(raw) {
		return &model.BlockMismatchError{Block: b.name, Want: r.header.Raw, Got: raw}
	}

	if b.apply == nil {
		if err := r.c.Skip(r.header.Length, b.name+" block"); err != nil {
			return err
		}
		r.log.WithField("block", b.name).Debug("skipped block")
		return nil
	}

	payload, err := r.c.Read(r.header.Length, b.name+" block")
	if err != nil {
		return err
	}
	b.apply(m.Cells, payload)
	r.log.WithField("block", b.name).Debug("read block")
	return nil
}

// checkFooter looks at the byte after the last block without requiring it
func (r *Reader) checkFooter() {
	next := r.c.Peek(1)
	switch {
	case len(next) == 0:
		r.log.Debug("no footer after passability block")
	case next[0] != footerByte:
		r.log.WithField("got", fmt.Sprintf("0x%02x", next[0])).Warn("unexpected footer byte")
	}
}
