// Package study は単語帳を使った学習ロジック（集計・クイズ・マッチング・フラッシュカード）です。
// 永続化やHTTPには依存しません。
package study

import (
	"math/rand/v2"
	"time"
)

// NewRand は時刻で初期化した乱数源を返します。
func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), rand.Uint64()))
}

// shuffled は items をコピーして一様にシャッフルしたスライスを返します（Fisher–Yates）。
func shuffled[T any](rng *rand.Rand, items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
