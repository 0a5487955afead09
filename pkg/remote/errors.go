package remote

import (
	"errors"
	"fmt"
)

var (
	ErrOverloaded      = errors.New("サービスが過負荷状態です")
	ErrRateLimited     = errors.New("レート制限に達しました")
	ErrEmptyResponse   = errors.New("空の応答が返されました")
	ErrContentBlocked  = errors.New("安全フィルタによりブロックされました")
	ErrBadFinishReason = errors.New("生成が正常に終了しませんでした")
	ErrCancelled       = errors.New("処理がキャンセルされました")
)

// Category は失敗の分類です。
type Category int

const (
	CategoryFatal Category = iota
	CategoryOverloaded
	CategoryRateLimited
	CategoryEmpty
)

func (c Category) String() string {
	switch c {
	case CategoryOverloaded:
		return "overloaded"
	case CategoryRateLimited:
		return "rate_limited"
	case CategoryEmpty:
		return "empty_response"
	default:
		return "fatal"
	}
}

func (c Category) sentinel() error {
	switch c {
	case CategoryOverloaded:
		return ErrOverloaded
	case CategoryRateLimited:
		return ErrRateLimited
	case CategoryEmpty:
		return ErrEmptyResponse
	default:
		return nil
	}
}

// ExhaustedError は一時的な失敗のまま再試行回数を使い切ったことを表します。
// errors.Is で分類に対応する番兵エラー（ErrOverloaded など）と照合できます。
type ExhaustedError struct {
	Category Category
	Attempts int
	Err      error
}

func (e *ExhaustedError) Error() string {
	switch e.Category {
	case CategoryRateLimited:
		return fmt.Sprintf("レート制限に達しました（%d回試行）。時間をおいて再試行してください: %v", e.Attempts, e.Err)
	case CategoryEmpty:
		return fmt.Sprintf("%d回試行しましたが空の応答しか返されませんでした", e.Attempts)
	default:
		return fmt.Sprintf("サービスが混雑しています（%d回試行）。しばらく待ってから再試行してください: %v", e.Attempts, e.Err)
	}
}

func (e *ExhaustedError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if s := e.Category.sentinel(); s != nil {
		errs = append(errs, s)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}
