package skiplist

import "cmp"

// Entry 為一組 key/value，Dump 依 key 升冪回傳
type Entry[K cmp.Ordered, V any] struct {
	Key   K
	Value V
}

// Store 為引擎對外提供的操作
type Store[K cmp.Ordered, V any] interface {
	// Insert 插入新 key；key 已存在時回傳 ErrKeyExists，且不覆寫 value
	Insert(key K, value V) error
	Search(key K) (V, bool)
	// Delete 刪除 key；不存在時回傳 ErrKeyNotFound
	Delete(key K) error
	Dump() []Entry[K, V]
	Size() int
}

// Analyable 提供分析功能的介面
// 走訪時不加鎖，呼叫端需自行保證期間沒有寫入
type Analyable[K cmp.Ordered, V any] interface {
	GetHead() Nodelike[K, V]
	// GetMaxStats 獲取節點數和目前最高層級
	GetMaxStats() (nodes int, level int)
}

type Nodelike[K cmp.Ordered, V any] interface {
	GetKey() K
	GetValue() V
	GetLevel() int
	GetNextAt(level int) Nodelike[K, V]
}
