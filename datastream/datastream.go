package datastream

import (
	"fmt"
	randv2 "math/rand/v2"
)

// KeyGenerator 產生 0..N()-1 範圍內的 key
type KeyGenerator interface {
	Next() int
	N() int
}

// OperationType 表示操作種類
type OperationType uint8

const (
	OpSearch OperationType = iota
	OpInsert
	OpDelete
)

func (t OperationType) String() string {
	switch t {
	case OpSearch:
		return "Search"
	case OpInsert:
		return "Insert"
	case OpDelete:
		return "Delete"
	default:
		return "Unknown"
	}
}

// Operation 表示一筆操作
type Operation struct {
	Type OperationType
	Key  int
}

// Mix 決定每筆操作的種類比例，剩下的比例為 Search
type Mix struct {
	InsertRatio float64
	DeleteRatio float64
}

var (
	InsertOnly = Mix{InsertRatio: 1}
	SearchOnly = Mix{}
	Mixed      = Mix{InsertRatio: 0.45, DeleteRatio: 0.1} // 插入、查詢、刪除混合
)

func (m Mix) validate() error {
	if m.InsertRatio < 0 || m.DeleteRatio < 0 || m.InsertRatio+m.DeleteRatio > 1 {
		return fmt.Errorf("invalid mix: insert=%v delete=%v", m.InsertRatio, m.DeleteRatio)
	}
	return nil
}

// GenerateOps 由 gen 取出 count 筆 key，依 mix 指定操作種類
func GenerateOps(gen KeyGenerator, count int, mix Mix, seed uint64) ([]Operation, error) {
	if count < 0 {
		return nil, fmt.Errorf("invalid count: %d", count)
	}
	if err := mix.validate(); err != nil {
		return nil, err
	}
	r := randv2.New(randv2.NewPCG(seed, 0))
	ops := make([]Operation, count)
	for i := range ops {
		op := OpSearch
		switch p := r.Float64(); {
		case p < mix.InsertRatio:
			op = OpInsert
		case p < mix.InsertRatio+mix.DeleteRatio:
			op = OpDelete
		}
		ops[i] = Operation{Type: op, Key: gen.Next()}
	}
	return ops, nil
}

// Partition 將 ops 連續切成 workers 段，前 len(ops)%workers 段各多一筆
func Partition(ops []Operation, workers int) [][]Operation {
	if workers <= 0 {
		workers = 1
	}
	out := make([][]Operation, workers)
	size, rem := len(ops)/workers, len(ops)%workers
	start := 0
	for i := range out {
		end := start + size
		if i < rem {
			end++
		}
		out[i] = ops[start:end]
		start = end
	}
	return out
}

// Count 統計每種操作的數量
func Count(ops []Operation) map[OperationType]int {
	out := make(map[OperationType]int, 3)
	for _, op := range ops {
		out[op.Type]++
	}
	return out
}
