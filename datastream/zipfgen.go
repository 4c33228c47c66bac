package datastream

import (
	"fmt"
	"math"
	randv2 "math/rand/v2"
)

// ZipfKeyGen 產生符合 Zipf 分布的 key。
// rank 以 math/rand/v2 的 Zipf 取得，再隨機映射到 key，使熱點不集中在小 key。
type ZipfKeyGen struct {
	n         int
	s, v      float64
	zipf      *randv2.Zipf
	rankToKey []int
}

// NewZipfKeyGen 需滿足 s > 1、v >= 1
func NewZipfKeyGen(n int, s, v float64, seed uint64) (*ZipfKeyGen, error) {
	if n <= 0 {
		return nil, fmt.Errorf("invalid n: %d", n)
	}
	if s <= 1.0 || v < 1.0 {
		return nil, fmt.Errorf("invalid zipf params: s=%v must >1, v=%v must >=1", s, v)
	}
	r := randv2.New(randv2.NewPCG(seed, 0))
	rankToKey := make([]int, n)
	for i := range rankToKey {
		rankToKey[i] = i
	}
	r.Shuffle(n, func(i, j int) { rankToKey[i], rankToKey[j] = rankToKey[j], rankToKey[i] })

	return &ZipfKeyGen{
		n:         n,
		s:         s,
		v:         v,
		zipf:      randv2.NewZipf(r, s, v, uint64(n-1)),
		rankToKey: rankToKey,
	}, nil
}

func (z *ZipfKeyGen) Next() int {
	return z.rankToKey[z.zipf.Uint64()]
}

func (z *ZipfKeyGen) N() int {
	return z.n
}

// Weights 回傳每個 key 的理論機率
func (z *ZipfKeyGen) Weights() map[int]float64 {
	weights := make([]float64, z.n)
	var sum float64
	for i := range weights {
		weights[i] = 1.0 / math.Pow(z.v+float64(i), z.s)
		sum += weights[i]
	}
	out := make(map[int]float64, z.n)
	for rank, w := range weights {
		out[z.rankToKey[rank]] = w / sum
	}
	return out
}

func (z *ZipfKeyGen) Entropy() float64 {
	return EntropyFromDist(z.Weights())
}

// EntropyFromDist 計算分布的熵（單位：bit），忽略 <= 0 的值
func EntropyFromDist(dist map[int]float64) float64 {
	h := 0.0
	for _, p := range dist {
		if p > 0 {
			h -= p * math.Log2(p)
		}
	}
	return h
}
