package text

import (
	"bufio"
	"fmt"
	"io"

	"github.com/dyuri/wldconv/internal/model"
)

// Writer handles writing a decoded map as sectioned text
type Writer struct {
	w     *bufio.Writer
	spots bool
}

// NewWriter creates a new text writer. With spots set every cell is
// written as well.
func NewWriter(w io.Writer, spots bool) *Writer {
	return &Writer{w: bufio.NewWriter(w), spots: spots}
}

// Write outputs the map
func (w *Writer) Write(m *model.Map) error {
	w.writeHeader(&m.Header)

	for i := 0; i < m.Header.MaxPlayers; i++ {
		w.writePlayer(&m.Header, i)
	}

	if len(m.Masses) > 0 {
		w.writeMasses(m.Masses)
	}

	if w.spots {
		w.writeSpots(m.Cells)
	}

	if err := w.w.Flush(); err != nil {
		return fmt.Errorf("write map text: %w", err)
	}
	return nil
}

// writeHeader writes the [_map] section
func (w *Writer) writeHeader(h *model.Metadata) {
	// Format:
	// [_map]
	// Title=Greenland
	// Size=64x64
	// [end]

	fmt.Fprintf(w.w, "[_map]\n")
	fmt.Fprintf(w.w, "Title=%s\n", h.Title)
	fmt.Fprintf(w.w, "Author=%s\n", h.Author)
	fmt.Fprintf(w.w, "Terrain=%s\n", h.Terrain)
	fmt.Fprintf(w.w, "Size=%dx%d\n", h.Width, h.Height)
	if h.DeclaredWidth != 0 {
		fmt.Fprintf(w.w, "DeclaredSize=%dx%d\n", h.DeclaredWidth, h.DeclaredHeight)
	}
	fmt.Fprintf(w.w, "Players=%d\n", h.MaxPlayers)
	fmt.Fprintf(w.w, "UnlimitedPlay=%t\n", h.UnlimitedPlay)
	fmt.Fprintf(w.w, "FileID=0x%04x\n", h.FileID)
	fmt.Fprintf(w.w, "[end]\n\n")
}

// writePlayer writes a [_player] section
func (w *Writer) writePlayer(h *model.Metadata, i int) {
	fmt.Fprintf(w.w, "[_player]\n")
	fmt.Fprintf(w.w, "Index=%d\n", i)
	if i < len(h.PlayerFaces) {
		fmt.Fprintf(w.w, "Face=%s\n", h.PlayerFaces[i])
	}
	if i < len(h.RawStarts) {
		fmt.Fprintf(w.w, "FileStart=%s\n", h.RawStarts[i])
	}
	for _, s := range h.Starts {
		if s.Player == i {
			fmt.Fprintf(w.w, "Start=%s\n", s.Position)
		}
	}
	fmt.Fprintf(w.w, "[end]\n\n")
}

// writeMasses writes the [_mass] section, one entry per line
func (w *Writer) writeMasses(masses []model.MassEntry) {
	fmt.Fprintf(w.w, "[_mass]\n")
	for _, e := range masses {
		// Format: Mass=water,(12,40),310
		fmt.Fprintf(w.w, "Mass=%s,%s,%d\n", e.Type, e.Position, e.Total)
	}
	fmt.Fprintf(w.w, "[end]\n\n")
}

// writeSpots writes the [_spot] section, one cell per line in file order
func (w *Writer) writeSpots(cells []model.Cell) {
	fmt.Fprintf(w.w, "[_spot]\n")
	for i := range cells {
		c := &cells[i]
		// Format: Spot=x,y,height,below,downright,type,props,resource,animal,site
		fmt.Fprintf(w.w, "Spot=%d,%d,%d,0x%02x,0x%02x,0x%02x,0x%02x,0x%02x,0x%02x,0x%02x\n",
			c.Target.X, c.Target.Y, c.Height,
			c.TextureBelow.Code, c.TextureDownRight.Code,
			c.ObjectType, c.ObjectProperties,
			c.Resource.Code, c.Animal.Code, c.Site.Code)
	}
	fmt.Fprintf(w.w, "[end]\n")
}
