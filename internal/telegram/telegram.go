package telegram

import (
	"context"
	"net/http"
	"time"

	"github.com/spf13/cast"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
	"gopkg.in/telebot.v3/middleware"
)

type Settings struct {
	Token  string
	ChatID string
	Client *http.Client
}

// ReportFunc 生成交易日志汇总文本
type ReportFunc func(ctx context.Context) (string, error)

type Telegram struct {
	logger   *zap.Logger
	settings Settings
	client   *tele.Bot
}

func NewTelegram(logger *zap.Logger, settings Settings) (*Telegram, error) {

	poller := &tele.LongPoller{Timeout: 10 * time.Second}

	// 只响应配置的 chat
	chatMiddleware := tele.NewMiddlewarePoller(poller, func(u *tele.Update) bool {
		if u.Message == nil || u.Message.Chat == nil {
			return false
		}
		return settings.ChatID == "" || u.Message.Chat.ID == cast.ToInt64(settings.ChatID)
	})

	client, err := tele.NewBot(tele.Settings{
		ParseMode: tele.ModeMarkdown,
		Token:     settings.Token,
		Poller:    chatMiddleware,
		Client:    settings.Client,
	})
	if err != nil {
		return nil, err
	}

	client.Use(middleware.AutoRespond())

	bot := &Telegram{
		logger:   logger,
		settings: settings,
		client:   client,
	}

	return bot, nil
}

// HandleReport 注册 /stats 命令，回复交易日志汇总
func (r *Telegram) HandleReport(report ReportFunc) {
	r.client.Handle("/stats", func(c tele.Context) error {
		msg, err := report(context.Background())
		if err != nil {
			r.logger.Error("failed to build report for telegram", zap.Error(err))
			return c.Send("report unavailable")
		}
		return c.Send(msg)
	})
}

func (r *Telegram) Start() {
	go r.client.Start()
}

func (r *Telegram) Stop() {
	r.client.Stop()
}

// Notify 向配置的 chat 发送消息
func (r *Telegram) Notify(msg string) error {
	chatID := cast.ToInt64(r.settings.ChatID)
	_, err := r.client.Send(tele.ChatID(chatID), msg, &tele.SendOptions{ParseMode: tele.ModeMarkdown})
	return err
}
