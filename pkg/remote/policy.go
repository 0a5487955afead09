package remote

import (
	"context"
	"time"
)

const (
	DefaultMaxAttempts    = 3
	DefaultBaseDelay      = time.Second
	DefaultMaxDelay       = 30 * time.Second
	DefaultJitterFraction = 0.25
	DefaultMaxRepairs     = 2
)

// Policy は再試行の方針です。
type Policy struct {
	// MaxAttempts は最初の呼び出しを含む試行回数の上限です。
	MaxAttempts    int
	BaseDelay      time.Duration
	MaxDelay       time.Duration
	JitterFraction float64
	// AttemptTimeout が正の場合、1回の試行ごとにタイムアウトを設けます。
	AttemptTimeout time.Duration
	// MaxRepairs は不正な JSON を修復させる再呼び出しの上限です。負の値で修復を無効にします。
	MaxRepairs int
}

// DefaultPolicy は推奨されるデフォルト設定を返すヘルパー関数なのだ。
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts:    DefaultMaxAttempts,
		BaseDelay:      DefaultBaseDelay,
		MaxDelay:       DefaultMaxDelay,
		JitterFraction: DefaultJitterFraction,
		MaxRepairs:     DefaultMaxRepairs,
	}
}

// normalized はゼロ値のフィールドを既定値で埋めた Policy を返します。
func (p Policy) normalized() Policy {
	d := DefaultPolicy()
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = d.MaxAttempts
	}
	if p.BaseDelay <= 0 {
		p.BaseDelay = d.BaseDelay
	}
	if p.MaxDelay <= 0 {
		p.MaxDelay = d.MaxDelay
	}
	if p.JitterFraction < 0 {
		p.JitterFraction = 0
	}
	switch {
	case p.MaxRepairs == 0:
		p.MaxRepairs = d.MaxRepairs
	case p.MaxRepairs < 0:
		p.MaxRepairs = 0
	}
	return p
}

// Delay は retry 回目（0始まり）の待機時間を返します。
// BaseDelay×2^retry に最大 JitterFraction 分のゆらぎを加え、MaxDelay で頭打ちにします。
// jitter は [0,1) の値を返す関数です。
func (p Policy) Delay(retry int, jitter func() float64) time.Duration {
	d := p.BaseDelay
	for i := 0; i < retry && d < p.MaxDelay; i++ {
		d *= 2
	}
	if jitter != nil && p.JitterFraction > 0 {
		d += time.Duration(float64(d) * p.JitterFraction * jitter())
	}
	if d > p.MaxDelay {
		d = p.MaxDelay
	}
	return d
}

// sleepContext は d だけ待機します。待機中に ctx が終了した場合はすぐに戻ります。
func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
