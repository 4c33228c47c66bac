package analyTool_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hakuto4838/ezskiplist/skiplist"
	"github.com/Hakuto4838/ezskiplist/skiplist/analyTool"
	"github.com/Hakuto4838/ezskiplist/skiplist/ezsl"
)

// fakeNode 用來手動組出錯誤結構
type fakeNode struct {
	key  int
	next []*fakeNode
}

func (n *fakeNode) GetKey() int { return n.key }
func (n *fakeNode) GetValue() string { return "" }
func (n *fakeNode) GetLevel() int { return len(n.next) - 1 }
func (n *fakeNode) GetNextAt(level int) skiplist.Nodelike[int, string] {
	if level < 0 || level >= len(n.next) || n.next[level] == nil {
		return nil
	}
	return n.next[level]
}

type fakeList struct {
	head  *fakeNode
	count int
	level int
}

func (l *fakeList) GetHead() skiplist.Nodelike[int, string] { return l.head }
func (l *fakeList) GetMaxStats() (int, int) { return l.count, l.level }

func newList(t *testing.T, keys ...int) *ezsl.SkipList[int, string] {
	t.Helper()
	sl, err := ezsl.New[int, string](ezsl.Config{MaxLevel: 8, Seed: 42})
	require.NoError(t, err)
	for _, k := range keys {
		require.NoError(t, sl.Insert(k, "v"))
	}
	return sl
}

func TestCheckValidList(t *testing.T) {
	keys := make([]int, 0, 500)
	for i := 0; i < 500; i++ {
		keys = append(keys, (i*7919)%1000)
	}
	sl := newList(t, keys...)
	assert.NoError(t, analyTool.Check[int, string](sl))
}

func TestCheckDetectsUnordered(t *testing.T) {
	b := &fakeNode{key: 1, next: make([]*fakeNode, 1)}
	a := &fakeNode{key: 5, next: []*fakeNode{b}}
	head := &fakeNode{next: []*fakeNode{a, nil}}
	l := &fakeList{head: head, count: 2, level: 0}

	assert.ErrorIs(t, analyTool.Check[int, string](l), analyTool.ErrUnordered)
}

func TestCheckDetectsCountDrift(t *testing.T) {
	a := &fakeNode{key: 1, next: make([]*fakeNode, 1)}
	head := &fakeNode{next: []*fakeNode{a}}
	l := &fakeList{head: head, count: 3, level: 0}

	assert.ErrorIs(t, analyTool.Check[int, string](l), analyTool.ErrCountDrift)
}

func TestCheckDetectsMissingUpperLink(t *testing.T) {
	// b 的層級為 1，但第 1 層沒有連到它
	b := &fakeNode{key: 2, next: make([]*fakeNode, 2)}
	a := &fakeNode{key: 1, next: []*fakeNode{b, nil}}
	head := &fakeNode{next: []*fakeNode{a, a}}
	l := &fakeList{head: head, count: 2, level: 1}

	assert.ErrorIs(t, analyTool.Check[int, string](l), analyTool.ErrNotNested)
}

func TestCheckDetectsStaleLevel(t *testing.T) {
	a := &fakeNode{key: 1, next: make([]*fakeNode, 2)}
	head := &fakeNode{next: []*fakeNode{a, a, nil, nil}}
	l := &fakeList{head: head, count: 1, level: 3}

	assert.ErrorIs(t, analyTool.Check[int, string](l), analyTool.ErrStaleLevel)
}

func TestCountLevel(t *testing.T) {
	sl := newList(t, 1, 2, 3, 4, 5, 6, 7, 8)
	counts := analyTool.CountLevel[int, string](sl)
	require.Len(t, counts, sl.Level()+1)
	assert.Equal(t, 8, counts[0])
	// 每個節點至少在第 1 層
	assert.Equal(t, 8, counts[1])
	for i := 1; i < len(counts); i++ {
		assert.LessOrEqual(t, counts[i], counts[i-1])
	}
	assert.Greater(t, counts[len(counts)-1], 0)
}

func TestFindStep(t *testing.T) {
	sl := newList(t, 10, 20, 30, 40)
	steps, perLevel := analyTool.FindStep[int, string](sl, 40)
	assert.Len(t, perLevel, sl.Level()+1)
	assert.Greater(t, steps, 0)

	empty := newList(t)
	steps, perLevel = analyTool.FindStep[int, string](empty, 1)
	assert.Equal(t, 0, steps)
	assert.Equal(t, []int{0}, perLevel)

	avg := analyTool.AverageSteps[int, string](sl, []int{10, 20, 30, 40})
	assert.Greater(t, avg, 0.0)
	assert.Equal(t, 0.0, analyTool.AverageSteps[int, string](sl, nil))
}

func TestPrintSkipList(t *testing.T) {
	sl := newList(t, 3, 1, 2)
	var buf bytes.Buffer
	analyTool.PrintSkipList[int, string](&buf, sl, 5, 10)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, min(5, sl.Level())+1)
	last := lines[len(lines)-1]
	assert.True(t, strings.HasPrefix(last, "level 0 : "))
	assert.Contains(t, last, "  1 ->  2 ->  3 ->")
}

func TestPrintLevels(t *testing.T) {
	sl := newList(t, 2, 1)
	var buf bytes.Buffer
	require.NoError(t, analyTool.PrintLevels[int, string](&buf, sl))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "*****Skip List*****\n"))
	assert.Contains(t, out, "Level 0: 1:v;2:v;\n")
	assert.Contains(t, out, "Level 1: 1:v;2:v;\n")
}

func TestLevelTable(t *testing.T) {
	sl := newList(t, 1, 2, 3, 4)
	var buf bytes.Buffer
	analyTool.LevelTable[int, string](&buf, sl)
	out := buf.String()
	assert.Contains(t, out, "LEVEL")
	assert.Contains(t, out, "NODES")
	assert.Contains(t, out, "TOTAL")
}
