package grid

import (
	"errors"
	"testing"

	"github.com/dyuri/wldconv/internal/model"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMap(width, height int, starts ...model.GridPos) *model.Map {
	m := model.NewMap()
	m.Header.Width = width
	m.Header.Height = height
	m.Header.MaxPlayers = len(starts)
	m.Header.RawStarts = starts
	for i := 0; i < width*height; i++ {
		m.Cells = append(m.Cells, model.NewCell(uint8(i)))
	}
	return m
}

func TestPlaceTwoByTwo(t *testing.T) {
	m := newMap(2, 2)
	require.NoError(t, Translate(m, StartStrict, nil))

	wantTarget := []model.Point{{X: 1, Y: 3}, {X: 3, Y: 3}, {X: 2, Y: 2}, {X: 4, Y: 2}}
	wantFile := []model.FilePoint{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 1, Y: 1}, {X: 3, Y: 1}}
	for i, c := range m.Cells {
		assert.True(t, c.Placed, "cell %d", i)
		assert.Equal(t, wantTarget[i], c.Target, "cell %d target", i)
		assert.Equal(t, wantFile[i], c.File, "cell %d file", i)
	}

	tw, th := m.TargetSize()
	assert.Equal(t, 5, tw)
	assert.Equal(t, 4, th)

	cell, ok := m.SpotAt(model.Point{X: 2, Y: 2})
	require.True(t, ok)
	assert.Equal(t, uint8(2), cell.Height)

	cell.Height = 99
	again, ok := m.SpotAtFile(model.FilePoint{X: 1, Y: 1})
	require.True(t, ok)
	assert.Equal(t, uint8(2), again.Height, "cells are returned by value")
	assert.Equal(t, uint8(2), m.Cells[2].Height)

	_, ok = m.SpotAt(model.Point{X: 1, Y: 2})
	assert.False(t, ok, "odd x+y holds no cell")

	assert.NoError(t, Verify(m))
}

func TestPlaceParity(t *testing.T) {
	for _, size := range [][2]int{{1, 1}, {3, 3}, {4, 5}, {7, 2}, {16, 16}} {
		m := newMap(size[0], size[1])
		require.NoError(t, Translate(m, StartStrict, nil), "size %v", size)

		for i, c := range m.Cells {
			assert.Zero(t, (c.Target.X+c.Target.Y)%2, "size %v cell %d at %v", size, i, c.Target)
		}
		assert.NoError(t, Verify(m), "size %v", size)
		assert.Equal(t, len(m.Cells), m.Index.TargetLen())
	}
}

func TestPlaceOutsideTargetGrid(t *testing.T) {
	// 2x1 map: target rows 2, 1 and 0 take six cells, the seventh would
	// land on row -1
	m := newMap(2, 1)
	for i := 0; i < 4; i++ {
		m.Cells = append(m.Cells, model.NewCell(0))
	}
	require.NoError(t, Translate(m, StartStrict, nil))
	assert.Equal(t, model.Point{X: 4, Y: 0}, m.Cells[5].Target)
	assert.NoError(t, Verify(m))

	m.Cells = append(m.Cells, model.NewCell(0))
	err := Translate(m, StartStrict, nil)
	assert.True(t, errors.Is(err, model.ErrInvalidMap))
}

func TestPlaceZeroWidth(t *testing.T) {
	_, err := Place(nil, 0, 3)
	assert.True(t, errors.Is(err, model.ErrInvalidMap))
}

func TestTranslateStarts(t *testing.T) {
	m := newMap(2, 2, model.GridPos{Col: 1, Row: 1}, model.GridPos{Col: 0, Row: 0})
	require.NoError(t, Translate(m, StartStrict, nil))

	require.Len(t, m.Header.Starts, 2)
	assert.Equal(t, model.StartingPosition{Player: 0, Position: model.Point{X: 4, Y: 2}}, m.Header.Starts[0])
	assert.Equal(t, model.StartingPosition{Player: 1, Position: model.Point{X: 1, Y: 3}}, m.Header.Starts[1])
}

func TestTranslateStartsStrict(t *testing.T) {
	m := newMap(2, 2, model.GridPos{Col: 0, Row: 0}, model.GridPos{Col: 5, Row: 5})

	err := Translate(m, StartStrict, nil)
	require.Error(t, err)

	var startErr *model.StartingPositionError
	require.True(t, errors.As(err, &startErr))
	assert.Equal(t, 1, startErr.Player)
	assert.Equal(t, model.FilePoint{X: 11, Y: 5}, startErr.Position)
	assert.True(t, errors.Is(err, model.ErrInvalidMap))
}

func TestTranslateStartsSkip(t *testing.T) {
	logger, hook := test.NewNullLogger()
	m := newMap(2, 2, model.GridPos{Col: 9, Row: 0}, model.GridPos{Col: 1, Row: 0})

	require.NoError(t, Translate(m, StartSkip, logger))

	require.Len(t, m.Header.Starts, 1)
	assert.Equal(t, 1, m.Header.Starts[0].Player)
	assert.Equal(t, model.Point{X: 3, Y: 3}, m.Header.Starts[0].Position)

	require.Len(t, hook.Entries, 1)
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, 0, hook.LastEntry().Data["player"])
}

func TestVerifyDetectsBrokenPlacement(t *testing.T) {
	m := newMap(2, 2)
	assert.Error(t, Verify(m), "untranslated map")

	require.NoError(t, Translate(m, StartStrict, nil))
	m.Cells[3].Target = m.Cells[0].Target
	assert.True(t, errors.Is(Verify(m), model.ErrInvalidMap))

	m = newMap(2, 2)
	require.NoError(t, Translate(m, StartStrict, nil))
	m.Cells[1].Placed = false
	assert.Error(t, Verify(m))
}

func TestStartPolicyString(t *testing.T) {
	assert.Equal(t, "strict", StartStrict.String())
	assert.Equal(t, "skip", StartSkip.String())
}
