package internal

import (
	"net/http"
	"time"

	"github.com/dushixiang/tradejournal/internal/config"
	"github.com/dushixiang/tradejournal/internal/service"
	"github.com/dushixiang/tradejournal/internal/telegram"
	"go.uber.org/zap"
)

const telegramHTTPTimeout = 10 * time.Second

func provideClock() service.Clock {
	return service.SystemClock
}

// provideTelegram provides telegram instance
func provideTelegram(logger *zap.Logger, conf *config.Config) *telegram.Telegram {
	if !conf.Telegram.Enabled {
		return nil
	}

	httpClient := &http.Client{Timeout: telegramHTTPTimeout}

	tg, err := telegram.NewTelegram(logger, telegram.Settings{
		Token:  conf.Telegram.Token,
		ChatID: conf.Telegram.ChatID,
		Client: httpClient,
	})
	if err != nil {
		logger.Error("failed to init telegram", zap.Error(err))
		return nil
	}

	return tg
}

// provideNotifier 未启用 telegram 时返回 nil 接口，避免出现非 nil 接口包裹 nil 指针
func provideNotifier(tg *telegram.Telegram) service.Notifier {
	if tg == nil {
		return nil
	}
	return tg
}
