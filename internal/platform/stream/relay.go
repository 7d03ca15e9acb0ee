package stream

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

// Broadcaster は受信メッセージの配信先です（Hub が満たす）。
type Broadcaster interface {
	Broadcast(msg []byte)
}

// Relay は上流のWebSocketに接続し続け、受信メッセージを配信します。
type Relay struct {
	url       string
	out       Broadcaster
	dialer    *websocket.Dialer
	backoff   *Backoff
	connected atomic.Bool
	attempts  atomic.Int64
}

// NewRelay は Relay を生成します。backoff が nil ならデフォルト値を使います。
func NewRelay(url string, out Broadcaster, backoff *Backoff) *Relay {
	if backoff == nil {
		backoff = NewBackoff()
	}
	return &Relay{
		url:     url,
		out:     out,
		dialer:  &websocket.Dialer{HandshakeTimeout: 10 * time.Second},
		backoff: backoff,
	}
}

// Connected は上流に接続中かどうかを返します。
func (r *Relay) Connected() bool {
	return r.connected.Load()
}

// Attempts はこれまでの接続試行回数を返します。
func (r *Relay) Attempts() int64 {
	return r.attempts.Load()
}

// Run は ctx がキャンセルされるまで接続と再接続を繰り返します。
// 接続に成功すると待ち時間はリセットされます。
func (r *Relay) Run(ctx context.Context) error {
	for {
		r.attempts.Add(1)
		conn, _, err := r.dialer.DialContext(ctx, r.url, nil)
		if err == nil {
			r.backoff.Reset()
			r.connected.Store(true)
			slog.Info("topic stream connected", "url", r.url)
			r.pump(ctx, conn)
			r.connected.Store(false)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		delay := r.backoff.Next()
		slog.Warn("topic stream disconnected, reconnecting", "url", r.url, "delay", delay, "error", err)
		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
	}
}

// pump は読み取りに失敗するか ctx がキャンセルされるまでメッセージを配信します。
func (r *Relay) pump(ctx context.Context, conn *websocket.Conn) {
	done := make(chan struct{})
	defer close(done)
	defer conn.Close()

	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}
		r.out.Broadcast(msg)
	}
}
