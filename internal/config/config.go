package config

const (
	DefaultTokenExpireMinutes = 60 * 24
	DefaultReportCron         = "0 20 * * *"
)

type Config struct {
	Auth        AuthConf     `json:"auth"`
	CorsOrigins []string     `json:"cors_origins"` // 允许的跨域来源，默认 *
	SeedDemo    bool         `json:"seed_demo"`    // 空库时写入演示交易
	Telegram    TelegramConf `json:"telegram"`
	Report      ReportConf   `json:"report"`
}

type AuthConf struct {
	JWTSecret          string `json:"jwt_secret"`           // 为空时每次启动随机生成
	TokenExpireMinutes int    `json:"token_expire_minutes"` // 令牌有效期（分钟），默认1440
}

type TelegramConf struct {
	Enabled bool   `json:"enabled"`
	Token   string `json:"token"`
	ChatID  string `json:"chat_id"`
}

type ReportConf struct {
	Enabled bool   `json:"enabled"` // 是否定时推送交易日志汇总
	Cron    string `json:"cron"`    // cron 表达式，默认每天20点
}

// ApplyDefaults 填充缺省配置
func (c *Config) ApplyDefaults() {
	if c.Auth.TokenExpireMinutes <= 0 {
		c.Auth.TokenExpireMinutes = DefaultTokenExpireMinutes
	}
	if len(c.CorsOrigins) == 0 {
		c.CorsOrigins = []string{"*"}
	}
	if c.Report.Cron == "" {
		c.Report.Cron = DefaultReportCron
	}
}
