//go:build wireinject
// +build wireinject

package internal

import (
	"github.com/google/wire"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/dushixiang/tradejournal/internal/config"
	"github.com/dushixiang/tradejournal/internal/handler"
	"github.com/dushixiang/tradejournal/internal/service"
)

var (
	handlerSet = wire.NewSet(
		handler.NewTradeHandler,
		handler.NewStatsHandler,
		handler.NewAuthHandler,
	)

	serviceSet = wire.NewSet(
		provideClock,
		provideNotifier,
		service.NewTradeService,
		service.NewStatsService,
		service.NewAuthService,
		service.NewReportService,
	)
)

// InitializeApp 初始化应用
func InitializeApp(logger *zap.Logger, db *gorm.DB, conf *config.Config) (*AppComponents, error) {
	wire.Build(
		handlerSet,
		serviceSet,
		provideTelegram,
		wire.Struct(new(AppComponents), "*"),
	)
	return nil, nil
}
