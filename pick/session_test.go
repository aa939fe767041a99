package pick

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePlotter struct {
	next    int
	shown   map[int]string
	failDel bool
}

func newFakePlotter() *fakePlotter {
	return &fakePlotter{shown: make(map[int]string)}
}

func (fp *fakePlotter) AddPointLabel(point [3]float64, text string) (LabelHandle, error) {
	fp.next++
	fp.shown[fp.next] = text
	return fp.next, nil
}

func (fp *fakePlotter) RemoveLabel(h LabelHandle) error {
	if fp.failDel {
		return errors.New("plotter closed")
	}
	delete(fp.shown, h.(int))
	return nil
}

func TestSessionToggle(t *testing.T) {
	fp := newFakePlotter()
	s := NewSession(fp)
	p1 := [3]float64{1.04, 2.5, -3.26}
	p2 := [3]float64{0, 0, 0}

	added, err := s.Toggle(p1)
	require.NoError(t, err)
	assert.True(t, added)
	assert.True(t, s.Labeled(p1))
	assert.Equal(t, map[int]string{1: "1.0, 2.5, -3.3"}, fp.shown)

	added, err = s.Toggle(p2)
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, 2, s.Len())

	// Picking the same point again removes its label
	added, err = s.Toggle(p1)
	require.NoError(t, err)
	assert.False(t, added)
	assert.False(t, s.Labeled(p1))
	assert.Equal(t, map[int]string{2: "0.0, 0.0, 0.0"}, fp.shown)

	require.NoError(t, s.Close())
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, fp.shown)
}

func TestSessionsAreIndependent(t *testing.T) {
	fa, fb := newFakePlotter(), newFakePlotter()
	a, b := NewSession(fa), NewSession(fb)
	p := [3]float64{1, 1, 1}
	_, err := a.Toggle(p)
	require.NoError(t, err)
	assert.False(t, b.Labeled(p))
	added, err := b.Toggle(p)
	require.NoError(t, err)
	assert.True(t, added)
	assert.Len(t, fa.shown, 1)
	assert.Len(t, fb.shown, 1)
}

func TestSessionRemoveFailure(t *testing.T) {
	fp := newFakePlotter()
	s := NewSession(fp)
	p := [3]float64{4, 5, 6}
	_, err := s.Toggle(p)
	require.NoError(t, err)

	fp.failDel = true
	_, err = s.Toggle(p)
	assert.ErrorContains(t, err, "plotter closed")
	assert.True(t, s.Labeled(p))
	assert.Error(t, s.Close())
	assert.Equal(t, 1, s.Len())

	fp.failDel = false
	require.NoError(t, s.Close())
	assert.Equal(t, 0, s.Len())
}

func TestSessionRejectsNaN(t *testing.T) {
	fp := newFakePlotter()
	s := NewSession(fp)
	p := [3]float64{1, math.NaN(), 2}
	added, err := s.Toggle(p)
	assert.False(t, added)
	assert.True(t, errors.Is(err, ErrInvalidPoint))
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, fp.shown)
	assert.False(t, s.Labeled(p))
}
