package binary

import (
	"fmt"
	"strings"

	"github.com/dyuri/wldconv/internal/model"
	"github.com/sirupsen/logrus"
)

// Mode selects one of the two sibling file layouts. It is chosen by the
// caller; the files carry nothing reliable to detect it from.
type Mode int

const (
	ModeSWD Mode = iota
	ModeWLD
)

func (m Mode) String() string {
	switch m {
	case ModeSWD:
		return "swd"
	case ModeWLD:
		return "wld"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseMode parses "swd" or "wld"
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "swd":
		return ModeSWD, nil
	case "wld":
		return ModeWLD, nil
	}
	return 0, fmt.Errorf("unknown map mode %q (want swd or wld)", s)
}

// Preamble layout
const (
	fileHeaderSize   = 10
	swdTitleWidth    = 19
	wldTitleWidth    = 23
	authorWidth      = 19
	playerSlots      = 7
	massEntries      = 250
	massEntrySize    = 9
	reservedZeroSize = 4
	maxPreFillers    = 2
)

// titleWidth returns the title field width for the mode. In the wld
// layout the title also covers the bytes the swd layout uses for the
// preamble dimensions.
func (m Mode) titleWidth() int {
	if m == ModeWLD {
		return wldTitleWidth
	}
	return swdTitleWidth
}

// ReadPreamble decodes the metadata section in front of the first block
func (r *Reader) ReadPreamble(m *model.Map) error {
	c := r.c
	h := &m.Header

	// Offset 0x00: opaque file header
	if err := c.Skip(fileHeaderSize, "file header"); err != nil {
		return err
	}

	title, err := c.Text(r.mode.titleWidth(), "title")
	if err != nil {
		return err
	}
	h.Title = strings.TrimRight(title, " ")
	if err := c.Skip(1, "title terminator"); err != nil {
		return err
	}

	if r.mode == ModeSWD {
		// Only the low byte of each dimension is significant here
		if h.DeclaredWidth, err = r.paddedByte("width"); err != nil {
			return err
		}
		if h.DeclaredHeight, err = r.paddedByte("height"); err != nil {
			return err
		}
	}

	terrain, err := c.Uint8("terrain type")
	if err != nil {
		return err
	}
	h.Terrain = model.TerrainFromCode(terrain)
	if !h.Terrain.Known() {
		r.log.WithField("code", terrain).Warn("unrecognized terrain type")
	}

	players, err := c.Uint8("player count")
	if err != nil {
		return err
	}
	if players < 1 {
		return model.InvalidMap("map declares %d players, need at least 1", players)
	}
	if players > playerSlots {
		return model.InvalidMap("map declares %d players, the file has %d slots", players, playerSlots)
	}
	h.MaxPlayers = int(players)

	author, err := c.Text(authorWidth, "author")
	if err != nil {
		return err
	}
	h.Author = strings.TrimRight(author, " ")
	if err := c.Skip(1, "author terminator"); err != nil {
		return err
	}

	if err := r.readStartingPositions(h); err != nil {
		return err
	}

	playMode, err := c.Uint8("unlimited play")
	if err != nil {
		return err
	}
	h.UnlimitedPlay = playMode == 0

	faces, err := c.Read(playerSlots, "player faces")
	if err != nil {
		return err
	}
	h.PlayerFaces = make([]model.PlayerFace, 0, h.MaxPlayers)
	for i := 0; i < h.MaxPlayers; i++ {
		h.PlayerFaces = append(h.PlayerFaces, model.PlayerFaceFromCode(faces[i]))
	}

	if err := r.readMasses(m); err != nil {
		return err
	}

	if h.FileID, err = c.Uint16("file id"); err != nil {
		return err
	}
	if h.FileID != FileSync {
		r.log.WithFields(logrus.Fields{
			"want": fmt.Sprintf("0x%04x", FileSync),
			"got":  fmt.Sprintf("0x%04x", h.FileID),
		}).Warn("unexpected file id")
	}

	reserved, err := c.Read(reservedZeroSize, "reserved")
	if err != nil {
		return err
	}
	if !allZero(reserved) {
		r.log.WithField("bytes", fmt.Sprintf("% x", reserved)).Warn("reserved bytes after file id are not zero")
	}

	for i := 0; i < maxPreFillers; i++ {
		found, err := c.SkipFiller()
		if err != nil {
			return err
		}
		if !found {
			break
		}
		r.log.Debug("skipped filler before map dimensions")
	}

	return r.readActualDimensions(h)
}

// paddedByte reads a byte followed by one padding byte
func (r *Reader) paddedByte(what string) (int, error) {
	v, err := r.c.Uint8(what)
	if err != nil {
		return 0, err
	}
	if err := r.c.Skip(1, what+" padding"); err != nil {
		return 0, err
	}
	return int(v), nil
}

// readStartingPositions reads seven x values then seven y values, each
// followed by a padding byte. Only the first MaxPlayers are kept.
func (r *Reader) readStartingPositions(h *model.Metadata) error {
	var xs, ys [playerSlots]int
	for i := range xs {
		x, err := r.paddedByte(fmt.Sprintf("starting x %d", i))
		if err != nil {
			return err
		}
		xs[i] = x
	}
	for i := range ys {
		y, err := r.paddedByte(fmt.Sprintf("starting y %d", i))
		if err != nil {
			return err
		}
		ys[i] = y
	}

	h.RawStarts = make([]model.GridPos, 0, h.MaxPlayers)
	for i := 0; i < h.MaxPlayers; i++ {
		h.RawStarts = append(h.RawStarts, model.GridPos{Col: xs[i], Row: ys[i]})
	}
	return nil
}

// readMasses reads the land/water mass table. Entries at the origin are
// unused slots and are dropped.
func (r *Reader) readMasses(m *model.Map) error {
	buf, err := r.c.Read(massEntries*massEntrySize, "mass table")
	if err != nil {
		return err
	}
	for i := 0; i < massEntries; i++ {
		e := buf[i*massEntrySize : (i+1)*massEntrySize]

		// Entry: type, x, pad, y, pad, total (uint16), two unused bytes
		pos := model.GridPos{Col: int(e[1]), Row: int(e[3])}
		if pos.Col == 0 && pos.Row == 0 {
			continue
		}
		m.Masses = append(m.Masses, model.MassEntry{
			Type:     model.MassTypeFromCode(e[0]),
			Position: pos,
			Total:    r.c.endian.Uint16(e[5:7]),
		})
	}
	return nil
}

// readActualDimensions reads the dimensions map loaders use. They replace
// the preamble dimensions when the two disagree.
func (r *Reader) readActualDimensions(h *model.Metadata) error {
	var width, height int
	var err error
	if r.mode == ModeSWD {
		if width, err = r.paddedByte("actual width"); err != nil {
			return err
		}
		if height, err = r.paddedByte("actual height"); err != nil {
			return err
		}
	} else {
		w, err := r.c.Uint16("actual width")
		if err != nil {
			return err
		}
		hh, err := r.c.Uint16("actual height")
		if err != nil {
			return err
		}
		width, height = int(w), int(hh)
	}

	if width < 1 || height < 1 {
		return model.InvalidMap("map dimensions %dx%d are empty", width, height)
	}

	if h.DeclaredWidth != 0 && (h.DeclaredWidth != width || h.DeclaredHeight != height) {
		r.log.WithFields(logrus.Fields{
			"declared": fmt.Sprintf("%dx%d", h.DeclaredWidth, h.DeclaredHeight),
			"actual":   fmt.Sprintf("%dx%d", width, height),
		}).Warn("preamble dimensions differ from actual dimensions, using actual")
	}
	h.Width = width
	h.Height = height
	return nil
}

func allZero(buf []byte) bool {
	for _, b := range buf {
		if b != 0 {
			return false
		}
	}
	return true
}
