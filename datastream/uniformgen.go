package datastream

import (
	"math"
	randv2 "math/rand/v2"
)

// UniformKeyGen 產生符合平均分布的 key，每個 key 出現機率皆相同
type UniformKeyGen struct {
	n   int
	rng *randv2.Rand
}

func NewUniformKeyGen(n int, seed uint64) *UniformKeyGen {
	if n <= 0 {
		n = 1
	}
	return &UniformKeyGen{
		n:   n,
		rng: randv2.New(randv2.NewPCG(seed, 0)),
	}
}

// Next 產生一個 key (0~n-1)
func (u *UniformKeyGen) Next() int {
	return u.rng.IntN(u.n)
}

func (u *UniformKeyGen) N() int {
	return u.n
}

// Entropy 回傳分布的熵（單位：bit）
func (u *UniformKeyGen) Entropy() float64 {
	return math.Log2(float64(u.n))
}
