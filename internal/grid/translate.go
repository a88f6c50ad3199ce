// Package grid places decoded cells in the target coordinate system.
//
// Cells are stored row by row in a staggered layout: odd rows are inset by
// half a cell and every cell is two file units wide. The target grid grows
// upward, so the first file row becomes the highest target row.
package grid

import (
	"fmt"
	"io"

	"github.com/dyuri/wldconv/internal/model"
	"github.com/sirupsen/logrus"
)

// StartPolicy decides what happens to a starting position that does not
// address a decoded cell
type StartPolicy int

const (
	// StartStrict fails the whole translation
	StartStrict StartPolicy = iota
	// StartSkip drops the player's starting position and logs it
	StartSkip
)

func (p StartPolicy) String() string {
	if p == StartSkip {
		return "skip"
	}
	return "strict"
}

// Translate places every cell, stores both indices on the map and
// translates the players' starting positions.
func Translate(m *model.Map, policy StartPolicy, log logrus.FieldLogger) error {
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = discard
	}

	index, err := Place(m.Cells, m.Header.Width, m.Header.Height)
	if err != nil {
		return err
	}
	m.Index = index

	starts, err := TranslateStarts(m.Cells, index, m.Header.RawStarts, policy, log)
	if err != nil {
		return err
	}
	m.Header.Starts = starts
	return nil
}

// startColumn is the first target column of a target row. Target points
// satisfy x+y even, so the column alternates between 1 and 2.
func startColumn(row int) int {
	if row%2 != 0 {
		return 1
	}
	return 2
}

// Place assigns file and target coordinates to cells in file order and
// returns the index over both spaces.
func Place(cells []model.Cell, width, height int) (*model.Index, error) {
	if width < 1 {
		return nil, model.InvalidMap("cannot place cells on a map %d cells wide", width)
	}

	tw, th := width*2+1, height+2
	index := model.NewIndex(len(cells), tw, th)

	col, row := 0, 0
	ty := height + 1
	tx := startColumn(ty)

	for i := range cells {
		c := &cells[i]
		c.File = model.GridPos{Col: col, Row: row}.FilePoint()
		c.Target = model.Point{X: tx, Y: ty}
		c.Placed = true

		if !index.AddFile(c.File, i) {
			return nil, model.InvalidMap("cell %d collides at %v", i, c.File)
		}
		if !index.AddTarget(c.Target, i) {
			return nil, model.InvalidMap("cell %d at target %v is taken or outside the %dx%d target grid", i, c.Target, tw, th)
		}

		col++
		tx += 2
		if col == width {
			col = 0
			row++
			ty--
			tx = startColumn(ty)
		}
	}

	return index, nil
}

// TranslateStarts looks up each raw starting position in the file-space
// index. A miss is a *model.StartingPositionError under StartStrict and a
// dropped slot under StartSkip.
func TranslateStarts(cells []model.Cell, index *model.Index, raw []model.GridPos, policy StartPolicy, log logrus.FieldLogger) ([]model.StartingPosition, error) {
	starts := make([]model.StartingPosition, 0, len(raw))
	for player, pos := range raw {
		fp := pos.FilePoint()
		i, ok := index.CellAtFile(fp)
		if !ok {
			err := &model.StartingPositionError{Player: player, Position: fp}
			if policy == StartStrict {
				return nil, err
			}
			log.WithFields(logrus.Fields{
				"player":   player,
				"position": pos.String(),
			}).Warn("dropping starting position outside the map")
			continue
		}
		starts = append(starts, model.StartingPosition{Player: player, Position: cells[i].Target})
	}
	return starts, nil
}

// Verify checks that placement is a bijection: every cell is placed inside
// the target grid and both indices hold exactly one entry per cell that
// points back to it.
func Verify(m *model.Map) error {
	if m.Index == nil {
		return fmt.Errorf("map has not been translated")
	}
	n := len(m.Cells)
	if m.Index.FileLen() != n || m.Index.TargetLen() != n {
		return model.InvalidMap("index sizes %d/%d do not match %d cells",
			m.Index.FileLen(), m.Index.TargetLen(), n)
	}

	tw, th := m.TargetSize()
	for i := range m.Cells {
		c := &m.Cells[i]
		if !c.Placed {
			return model.InvalidMap("cell %d has no target position", i)
		}
		if c.Target.X < 0 || c.Target.X >= tw || c.Target.Y < 0 || c.Target.Y >= th {
			return model.InvalidMap("cell %d target %v is outside the %dx%d target grid", i, c.Target, tw, th)
		}
		if j, ok := m.Index.CellAt(c.Target); !ok || j != i {
			return model.InvalidMap("target index does not point back to cell %d", i)
		}
		if j, ok := m.Index.CellAtFile(c.File); !ok || j != i {
			return model.InvalidMap("file index does not point back to cell %d", i)
		}
	}
	return nil
}
