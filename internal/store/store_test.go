package store

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChicagoDave/massing/pkg/box"
	"github.com/ChicagoDave/massing/pkg/geo"
)

func fixture() []box.Box {
	return []box.Box{
		{ID: "a", Kind: box.KindBuilding, Shape: box.Extent{Size: geo.V3(2, 2, 2)}},
		{ID: "b", Kind: box.KindRoom, Position: geo.V3(3, 0, 0), Shape: box.Extent{Size: geo.V3(1, 1, 1)}},
	}
}

func TestNewCopiesInput(t *testing.T) {
	in := fixture()
	s := New(in)
	in[0].ID = "changed"
	assert.Equal(t, "a", s.Boxes()[0].ID)
}

func TestReplaceByIDKeepsOldSnapshot(t *testing.T) {
	s := New(fixture())
	before := s.Boxes()

	ok := s.ReplaceByID("b", func(b box.Box) box.Box { return b.WithRotation(1.5) })
	require.True(t, ok)

	assert.Equal(t, 0.0, before[1].RotationY, "old snapshot is untouched")
	got, found := s.Get("b")
	require.True(t, found)
	assert.Equal(t, 1.5, got.RotationY)
	assert.Equal(t, before[0], s.Boxes()[0])
	assert.Equal(t, uint64(1), s.Version())
}

func TestReplaceByIDUnknownIsIdentity(t *testing.T) {
	s := New(fixture())
	called := false
	ok := s.ReplaceByID("zzz", func(b box.Box) box.Box { called = true; return b })
	assert.False(t, ok)
	assert.False(t, called)
	assert.Equal(t, fixture(), s.Boxes())

	_, found := s.Get("zzz")
	assert.False(t, found)
}

func TestSet(t *testing.T) {
	s := New(nil)
	assert.Empty(t, s.Boxes())
	s.Set(fixture())
	assert.Len(t, s.Boxes(), 2)
	assert.Equal(t, uint64(1), s.Version())
}

func TestConcurrentReplace(t *testing.T) {
	s := New(fixture())
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.ReplaceByID("a", func(b box.Box) box.Box {
				return b.WithPosition(b.Position.Add(geo.V3(1, 0, 0)))
			})
			_ = s.Boxes()
		}()
	}
	wg.Wait()

	got, _ := s.Get("a")
	assert.Equal(t, 50.0, got.Position.X)
	assert.Equal(t, uint64(50), s.Version())
}
