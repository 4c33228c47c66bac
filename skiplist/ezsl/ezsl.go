// Package ezsl 實作以單一互斥鎖保護的跳表 key/value 引擎。
//
// 節點存放在 arena 中，forward 連結為槽位索引；刪除的槽位會被回收。
// 所有操作（包含 Search）都會取得同一把鎖。
package ezsl

import (
	"cmp"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/Hakuto4838/ezskiplist/skiplist"
	"github.com/Hakuto4838/ezskiplist/skiplist/analyTool"
)

const DefaultDelimiter = ":"

// Config 為單一引擎實例的設定，建立後不再改變
type Config struct {
	// MaxLevel 為節點層級上限，必須為正數
	MaxLevel int
	// Delimiter 為 dump 檔中 key 與 value 的分隔字串
	Delimiter string
	// Seed 為層級亂數種子，0 表示以時間產生
	Seed uint64
	// Logger 記錄 load 時略過的資料列，nil 則不輸出
	Logger *log.Logger
}

func DefaultConfig(maxLevel int) Config {
	return Config{
		MaxLevel:  maxLevel,
		Delimiter: DefaultDelimiter,
	}
}

func (c Config) validate() error {
	if c.MaxLevel <= 0 {
		return fmt.Errorf("%w: %d", skiplist.ErrInvalidMaxLevel, c.MaxLevel)
	}
	if c.Delimiter == "" || strings.ContainsAny(c.Delimiter, "\r\n") {
		return fmt.Errorf("%w: %q", skiplist.ErrInvalidDelimiter, c.Delimiter)
	}
	return nil
}

type SkipList[K cmp.Ordered, V any] struct {
	mu       sync.Mutex
	arena    *arena[K, V]
	maxLevel int
	level    int // 目前最高的非空層級
	count    int
	update   []nodeRef
	rng      *rand.Rand
	delim    string
	logger   *log.Logger
}

var _ skiplist.Store[int, string] = (*SkipList[int, string])(nil)
var _ skiplist.Analyable[int, string] = (*SkipList[int, string])(nil)

// New 依設定建立引擎；Delimiter 為空時使用 DefaultDelimiter
func New[K cmp.Ordered, V any](cfg Config) (*SkipList[K, V], error) {
	if cfg.Delimiter == "" {
		cfg.Delimiter = DefaultDelimiter
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &SkipList[K, V]{
		arena:    newArena[K, V](cfg.MaxLevel),
		maxLevel: cfg.MaxLevel,
		update:   make([]nodeRef, cfg.MaxLevel+1),
		rng:      rand.New(rand.NewPCG(seed, 0)),
		delim:    cfg.Delimiter,
		logger:   logger,
	}, nil
}

// NewDefault 以預設設定建立引擎，maxLevel 不合法時 panic
func NewDefault[K cmp.Ordered, V any](maxLevel int) *SkipList[K, V] {
	sl, err := New[K, V](DefaultConfig(maxLevel))
	if err != nil {
		panic(err)
	}
	return sl
}

// randomLevel 擲硬幣決定層級：從 1 開始，每次成功加一，上限為 maxLevel
func (s *SkipList[K, V]) randomLevel() int {
	lvl := 1
	for lvl < s.maxLevel && s.rng.Uint64()&1 == 1 {
		lvl++
	}
	return lvl
}

// descend 由目前最高層往下走，update[i] 記錄第 i 層最後一個 key 小於目標的節點。
// 回傳第 0 層的候選節點。
func (s *SkipList[K, V]) descend(key K, update []nodeRef) nodeRef {
	cur := headRef
	for i := s.level; i >= 0; i-- {
		for {
			next := s.arena.at(cur).forward[i]
			if next == nilRef || s.arena.at(next).key >= key {
				break
			}
			cur = next
		}
		if update != nil {
			update[i] = cur
		}
	}
	return s.arena.at(cur).forward[0]
}

func (s *SkipList[K, V]) Insert(key K, value V) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insert(key, value)
}

func (s *SkipList[K, V]) insert(key K, value V) error {
	update := s.update
	cand := s.descend(key, update)
	if cand != nilRef && s.arena.at(cand).key == key {
		return skiplist.ErrKeyExists
	}

	lvl := s.randomLevel()
	if lvl > s.level {
		for i := s.level + 1; i <= lvl; i++ {
			update[i] = headRef
		}
		s.level = lvl
	}

	// alloc 可能讓 nodes 重新配置，之後才取指標
	ref := s.arena.alloc(key, value, lvl)
	nd := s.arena.at(ref)
	for i := 0; i <= lvl; i++ {
		prev := s.arena.at(update[i])
		nd.forward[i] = prev.forward[i]
		prev.forward[i] = ref
	}
	s.count++
	return nil
}

func (s *SkipList[K, V]) Search(key K) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cand := s.descend(key, nil)
	if cand != nilRef {
		if nd := s.arena.at(cand); nd.key == key {
			return nd.value, true
		}
	}
	var zero V
	return zero, false
}

func (s *SkipList[K, V]) Delete(key K) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	update := s.update
	target := s.descend(key, update)
	if target == nilRef || s.arena.at(target).key != key {
		return skiplist.ErrKeyNotFound
	}

	tn := s.arena.at(target)
	for i := 0; i <= s.level; i++ {
		prev := s.arena.at(update[i])
		if prev.forward[i] != target {
			break
		}
		prev.forward[i] = tn.forward[i]
	}

	head := s.arena.at(headRef)
	for s.level > 0 && head.forward[s.level] == nilRef {
		s.level--
	}

	s.arena.release(target)
	s.count--
	return nil
}

func (s *SkipList[K, V]) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}

// Level 回傳目前最高層級
func (s *SkipList[K, V]) Level() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.level
}

func (s *SkipList[K, V]) MaxLevel() int {
	return s.maxLevel
}

func (s *SkipList[K, V]) Delimiter() string {
	return s.delim
}

// Dump 回傳第 0 層的完整快照（key 升冪）
func (s *SkipList[K, V]) Dump() []skiplist.Entry[K, V] {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]skiplist.Entry[K, V], 0, s.count)
	for ref := s.arena.at(headRef).forward[0]; ref != nilRef; {
		nd := s.arena.at(ref)
		out = append(out, skiplist.Entry[K, V]{Key: nd.key, Value: nd.value})
		ref = nd.forward[0]
	}
	return out
}

// Display 由最高層往下印出每一層的串列
func (s *SkipList[K, V]) Display(w io.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return analyTool.PrintLevels[K, V](w, s)
}

// GetHead 實現 skiplist.Analyable，不加鎖
func (s *SkipList[K, V]) GetHead() skiplist.Nodelike[K, V] {
	return nodeView[K, V]{sl: s, ref: headRef}
}

// GetMaxStats 實現 skiplist.Analyable，不加鎖
func (s *SkipList[K, V]) GetMaxStats() (int, int) {
	return s.count, s.level
}
