// Package stream はライブトピック配信のWebSocket中継を提供します。
// 上流のストリームへ再接続しながら接続し、受信したメッセージをブラウザの接続へ配信します。
package stream

import (
	"math"
	"time"
)

const (
	DefaultInitialDelay = 500 * time.Millisecond
	DefaultMaxDelay     = 5000 * time.Millisecond
	DefaultFactor       = 1.6
)

// Backoff は再接続の待ち時間を指数的に増やします。
// 並行利用は想定していません（Relay のループからのみ呼ばれます）。
type Backoff struct {
	Initial time.Duration
	Max     time.Duration
	Factor  float64

	next time.Duration
}

// NewBackoff は 500ms から始まり ×1.6 で増え、5000ms で頭打ちになる Backoff を返します。
func NewBackoff() *Backoff {
	return &Backoff{Initial: DefaultInitialDelay, Max: DefaultMaxDelay, Factor: DefaultFactor}
}

// Next は次の待ち時間を返し、内部の待ち時間を増やします。
func (b *Backoff) Next() time.Duration {
	if b.next <= 0 {
		b.next = b.Initial
	}
	d := b.next
	b.next = min(time.Duration(math.Round(float64(b.next)*b.Factor)), b.Max)
	return d
}

// Reset は待ち時間を初期値に戻します。接続に成功したときに呼びます。
func (b *Backoff) Reset() {
	b.next = 0
}
