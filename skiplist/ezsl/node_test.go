package ezsl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArenaRecyclesSlots(t *testing.T) {
	a := newArena[int, string](8)
	require.Len(t, a.nodes, 1)
	assert.Equal(t, 8, a.at(headRef).level())

	r1 := a.alloc(1, "a", 3)
	r2 := a.alloc(2, "b", 1)
	assert.Equal(t, nodeRef(1), r1)
	assert.Equal(t, nodeRef(2), r2)
	for _, f := range a.at(r1).forward {
		assert.Equal(t, nilRef, f)
	}

	a.at(r1).forward[0] = r2
	a.release(r1)
	assert.Equal(t, "", a.at(r1).value)
	assert.Equal(t, []nodeRef{r1}, a.free)

	r3 := a.alloc(3, "c", 2)
	assert.Equal(t, r1, r3, "freed slot is reused")
	assert.Empty(t, a.free)
	assert.Equal(t, 2, a.at(r3).level())
	assert.Equal(t, []nodeRef{nilRef, nilRef, nilRef}, a.at(r3).forward)
	assert.Equal(t, 3, a.at(r3).key)
}

func TestArenaReleaseIgnoresHead(t *testing.T) {
	a := newArena[int, string](4)
	a.release(headRef)
	a.release(nilRef)
	assert.Empty(t, a.free)
	assert.Equal(t, 4, a.at(headRef).level())
}

func TestNodeViewAccessors(t *testing.T) {
	sl := newTestList(t, 4)
	require.NoError(t, sl.Insert(10, "ten"))

	head := sl.GetHead()
	assert.Equal(t, 4, head.GetLevel())
	assert.Nil(t, head.GetNextAt(-1))
	assert.Nil(t, head.GetNextAt(5))

	first := head.GetNextAt(0)
	require.NotNil(t, first)
	assert.Equal(t, 10, first.GetKey())
	assert.Equal(t, "ten", first.GetValue())
	assert.Nil(t, first.GetNextAt(0))
	assert.Nil(t, first.GetNextAt(first.GetLevel()+1))
}

func TestDeleteRecyclesArenaSlots(t *testing.T) {
	sl := newTestList(t, 6)
	for i := range 10 {
		require.NoError(t, sl.Insert(i, "v"))
	}
	slots := len(sl.arena.nodes)
	for i := range 5 {
		require.NoError(t, sl.Delete(i))
	}
	for i := 100; i < 105; i++ {
		require.NoError(t, sl.Insert(i, "w"))
	}
	assert.Equal(t, slots, len(sl.arena.nodes))
	assert.Equal(t, 10, sl.Size())
}
