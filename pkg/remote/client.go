package remote

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net"
	"os"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// state は Generate の状態遷移を表します。
type state int

const (
	stateAttempting state = iota
	stateBackoff
	stateSucceeded
	stateFailedTransient
	stateFailedFatal
	stateCancelled
)

// Client は Generator を再試行、バックオフ、レート制限で包みます。
type Client struct {
	gen     Generator
	policy  Policy
	limiter *rate.Limiter
	sleep   func(ctx context.Context, d time.Duration) error
	jitter  func() float64
}

// Option は Client の任意設定です。
type Option func(*Client)

// WithLimiter は各試行の前に待機するレートリミッタを設定します。
func WithLimiter(l *rate.Limiter) Option {
	return func(c *Client) { c.limiter = l }
}

// WithSleep はバックオフの待機関数を差し替えます。
func WithSleep(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(c *Client) { c.sleep = fn }
}

// WithJitter はゆらぎの乱数源を差し替えます。fn は [0,1) を返す必要があります。
func WithJitter(fn func() float64) Option {
	return func(c *Client) { c.jitter = fn }
}

// NewClient は Client を初期化します。
func NewClient(gen Generator, policy Policy, opts ...Option) (*Client, error) {
	if gen == nil {
		return nil, fmt.Errorf("Generator は必須です")
	}
	c := &Client{
		gen:    gen,
		policy: policy.normalized(),
		sleep:  sleepContext,
		jitter: rand.Float64,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Policy は正規化済みの再試行方針を返します。
func (c *Client) Policy() Policy {
	return c.policy
}

// Generate はリクエストを送信し、一時的な失敗であれば指数バックオフで再試行します。
// 致命的な失敗とキャンセルは即座に返します。
func (c *Client) Generate(ctx context.Context, req Request) (*Response, error) {
	var (
		st       = stateAttempting
		attempt  int
		resp     *Response
		lastErr  error
		category Category
	)

	for {
		switch st {
		case stateAttempting:
			if ctx.Err() != nil {
				st = stateCancelled
				continue
			}
			if c.limiter != nil {
				if err := c.limiter.Wait(ctx); err != nil {
					lastErr = err
					st = stateCancelled
					continue
				}
			}

			attempt++
			resp, lastErr = c.attempt(ctx, req)
			if ctx.Err() != nil {
				st = stateCancelled
				continue
			}
			if lastErr == nil {
				st = stateSucceeded
				continue
			}

			category = classify(lastErr)
			switch {
			case category == CategoryFatal:
				st = stateFailedFatal
			case attempt >= c.policy.MaxAttempts:
				st = stateFailedTransient
			default:
				st = stateBackoff
			}

		case stateBackoff:
			delay := c.policy.Delay(attempt-1, c.jitter)
			slog.WarnContext(ctx, "一時的なエラーのため再試行します",
				"model", req.Model,
				"attempt", attempt,
				"max_attempts", c.policy.MaxAttempts,
				"delay", delay,
				"category", category.String(),
				"error", lastErr,
			)
			if err := c.sleep(ctx, delay); err != nil {
				lastErr = err
				st = stateCancelled
				continue
			}
			st = stateAttempting

		case stateSucceeded:
			return resp, nil

		case stateFailedTransient:
			return nil, &ExhaustedError{Category: category, Attempts: attempt, Err: lastErr}

		case stateFailedFatal:
			return nil, fmt.Errorf("生成リクエストに失敗しました（%d回目, 再試行なし）: %w", attempt, lastErr)

		case stateCancelled:
			cause := context.Cause(ctx)
			if cause == nil {
				cause = lastErr
			}
			return nil, fmt.Errorf("%w: %w", ErrCancelled, cause)
		}
	}
}

// attempt は1回分の呼び出しです。AttemptTimeout が設定されていれば期限付きのコンテキストで呼び出します。
func (c *Client) attempt(ctx context.Context, req Request) (*Response, error) {
	if c.policy.AttemptTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.policy.AttemptTimeout)
		defer cancel()
	}

	resp, err := c.gen.GenerateContent(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp == nil || resp.Text == "" {
		return nil, ErrEmptyResponse
	}
	return resp, nil
}

// classify はエラーを再試行可否の分類に振り分けます。親コンテキストのキャンセルは呼び出し側で先に判定します。
func classify(err error) Category {
	switch {
	case errors.Is(err, ErrContentBlocked), errors.Is(err, ErrBadFinishReason):
		return CategoryFatal
	case errors.Is(err, ErrRateLimited):
		return CategoryRateLimited
	case errors.Is(err, ErrOverloaded):
		return CategoryOverloaded
	case errors.Is(err, ErrEmptyResponse):
		return CategoryEmpty
	}

	if code, ok := apiErrorCode(err); ok {
		switch code {
		case 429:
			return CategoryRateLimited
		case 500, 502, 503, 504:
			return CategoryOverloaded
		default:
			return CategoryFatal
		}
	}

	// 試行ごとのタイムアウトとネットワーク層のエラーは過負荷として扱うのだ
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return CategoryOverloaded
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return CategoryOverloaded
	}
	return CategoryFatal
}

// apiErrorCode は genai.APIError の HTTP ステータスを取り出します。値とポインタの両方を受け付けます。
func apiErrorCode(err error) (int, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code, true
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code, true
	}
	return 0, false
}
