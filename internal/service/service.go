package service

import (
	"fmt"
	"math"
	"time"

	"github.com/dushixiang/tradejournal/internal/xe"
)

// Clock 当前时间来源
type Clock func() time.Time

// SystemClock 返回当前UTC时间
func SystemClock() time.Time {
	return time.Now().UTC()
}

// Notifier 消息通知（如 Telegram）
type Notifier interface {
	Notify(msg string) error
}

func invalidParams(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", xe.ErrInvalidParams, fmt.Sprintf(format, args...))
}

func isPositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}
