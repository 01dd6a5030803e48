package internal

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dushixiang/tradejournal/internal/config"
	"github.com/dushixiang/tradejournal/internal/handler"
	jwtmw "github.com/dushixiang/tradejournal/internal/middleware"
	"github.com/dushixiang/tradejournal/internal/models"
	"github.com/dushixiang/tradejournal/internal/service"
	"github.com/dushixiang/tradejournal/internal/telegram"
	"github.com/dushixiang/tradejournal/pkg/nostd"
	"github.com/go-orz/orz"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func Run(configPath string) error {
	app := NewTradeJournalApp()

	framework, err := orz.NewFramework(
		orz.WithConfig(configPath),
		orz.WithLoggerFromConfig(),
		orz.WithDatabase(),
		orz.WithHTTP(),
		orz.WithApplication(app),
	)
	if err != nil {
		return err
	}

	return framework.Run()
}

func NewTradeJournalApp() orz.Application {
	return &TradeJournalApp{}
}

var _ orz.Application = (*TradeJournalApp)(nil)

type AppComponents struct {
	TradeHandler *handler.TradeHandler
	StatsHandler *handler.StatsHandler
	AuthHandler  *handler.AuthHandler

	TradeService  *service.TradeService
	AuthService   *service.AuthService
	ReportService *service.ReportService

	tg *telegram.Telegram
}

type TradeJournalApp struct {
	components *AppComponents
	conf       *config.Config
}

// GetComponents 获取应用组件
func (r *TradeJournalApp) GetComponents() *AppComponents {
	return r.components
}

func (r *TradeJournalApp) Configure(app *orz.App) error {
	logger := app.Logger()
	e := app.GetEcho()
	db := app.GetDatabase()

	var conf config.Config
	err := app.GetConfig().App.Unmarshal(&conf)
	if err != nil {
		return fmt.Errorf("failed to unmarshal config: %v", err)
	}
	conf.ApplyDefaults()

	components, err := InitializeApp(logger, db, &conf)
	if err != nil {
		return fmt.Errorf("failed to initialize app: %v", err)
	}
	r.components = components
	r.conf = &conf

	if err := db.AutoMigrate(models.Trade{}, models.User{}); err != nil {
		logger.Fatal("database auto migrate failed", zap.Error(err))
	}

	if err := r.Init(logger); err != nil {
		logger.Fatal("app init failed", zap.Error(err))
	}

	e.HidePort = true
	e.HideBanner = true

	customValidator := nostd.CustomValidator{Validator: validator.New()}
	if err := customValidator.TransInit(); err != nil {
		logger.Fatal("failed to init custom validator", zap.Error(err))
	}
	e.Validator = &customValidator

	SetupRoutes(e, logger, &conf, components)
	return nil
}

// SetupRoutes 注册中间件与 /api/v1 路由
func SetupRoutes(e *echo.Echo, logger *zap.Logger, conf *config.Config, components *AppComponents) {
	e.Use(middleware.Gzip())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		Skipper:      middleware.DefaultSkipper,
		AllowOrigins: conf.CorsOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
	}))
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			sugar := logger.Sugar()
			sugar.Error(fmt.Sprintf("[PANIC RECOVER] %v %s\n", err, stack))
			return err
		},
	}))
	e.Use(WithErrorHandler(logger))

	auth := jwtmw.JWTAuth(jwtmw.JWTAuthConfig{
		AuthService: components.AuthService,
		Logger:      logger,
	})

	api := e.Group("/api/v1")
	{
		components.AuthHandler.RegisterRoutes(api.Group("/auth"))
		components.AuthHandler.RegisterProtectedRoutes(api.Group("/auth", auth))
		components.TradeHandler.RegisterRoutes(api.Group("/trades", auth))
		components.StatsHandler.RegisterRoutes(api.Group("/stats", auth))
	}
}

func (r *TradeJournalApp) Init(logger *zap.Logger) error {
	logger.Info("=================================================")
	logger.Info("Trade Journal Starting...")
	logger.Info("=================================================")

	components := r.GetComponents()
	if components == nil {
		return fmt.Errorf("components not initialized")
	}

	if r.conf.SeedDemo {
		if err := components.TradeService.SeedDemo(context.Background()); err != nil {
			return fmt.Errorf("seed demo trades: %w", err)
		}
	}

	if err := components.ReportService.Start(); err != nil {
		return fmt.Errorf("start report scheduler: %w", err)
	}

	if components.tg != nil {
		components.tg.HandleReport(components.ReportService.BuildReport)
		components.tg.Start()
		logger.Info("Telegram bot started")
	}
	return nil
}
