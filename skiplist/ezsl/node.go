package ezsl

import (
	"cmp"

	"github.com/Hakuto4838/ezskiplist/skiplist"
)

// nodeRef 為 arena 中的槽位索引
type nodeRef int32

const (
	nilRef  nodeRef = -1
	headRef nodeRef = 0
)

type node[K cmp.Ordered, V any] struct {
	key     K
	value   V
	forward []nodeRef // forward[i] 為第 i 層的下一個節點
}

func (nd *node[K, V]) level() int {
	return len(nd.forward) - 1
}

// arena 保存所有節點，刪除後的槽位放入 free 重複使用
type arena[K cmp.Ordered, V any] struct {
	nodes []node[K, V]
	free  []nodeRef
}

func newArena[K cmp.Ordered, V any](maxLevel int) *arena[K, V] {
	a := &arena[K, V]{nodes: make([]node[K, V], 1, 64)}
	a.nodes[headRef].forward = newForward(nil, maxLevel)
	return a
}

func newForward(buf []nodeRef, level int) []nodeRef {
	if cap(buf) < level+1 {
		buf = make([]nodeRef, level+1)
	} else {
		buf = buf[:level+1]
	}
	for i := range buf {
		buf[i] = nilRef
	}
	return buf
}

func (a *arena[K, V]) alloc(key K, value V, level int) nodeRef {
	if n := len(a.free); n > 0 {
		ref := a.free[n-1]
		a.free = a.free[:n-1]
		nd := &a.nodes[ref]
		nd.key = key
		nd.value = value
		nd.forward = newForward(nd.forward, level)
		return ref
	}
	a.nodes = append(a.nodes, node[K, V]{
		key:     key,
		value:   value,
		forward: newForward(nil, level),
	})
	return nodeRef(len(a.nodes) - 1)
}

func (a *arena[K, V]) release(ref nodeRef) {
	if ref == headRef || ref == nilRef {
		return
	}
	nd := &a.nodes[ref]
	var zeroK K
	var zeroV V
	nd.key = zeroK
	nd.value = zeroV
	nd.forward = nd.forward[:0]
	a.free = append(a.free, ref)
}

func (a *arena[K, V]) at(ref nodeRef) *node[K, V] {
	return &a.nodes[ref]
}

// nodeView 以 skiplist.Nodelike 的形式暴露 arena 中的節點
type nodeView[K cmp.Ordered, V any] struct {
	sl  *SkipList[K, V]
	ref nodeRef
}

func (v nodeView[K, V]) GetKey() K {
	return v.sl.arena.at(v.ref).key
}

func (v nodeView[K, V]) GetValue() V {
	return v.sl.arena.at(v.ref).value
}

func (v nodeView[K, V]) GetLevel() int {
	return v.sl.arena.at(v.ref).level()
}

func (v nodeView[K, V]) GetNextAt(level int) skiplist.Nodelike[K, V] {
	nd := v.sl.arena.at(v.ref)
	if level < 0 || level >= len(nd.forward) || nd.forward[level] == nilRef {
		return nil
	}
	return nodeView[K, V]{sl: v.sl, ref: nd.forward[level]}
}
