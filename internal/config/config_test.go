package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyDefaults(t *testing.T) {
	var conf Config
	conf.ApplyDefaults()

	assert.Equal(t, DefaultTokenExpireMinutes, conf.Auth.TokenExpireMinutes)
	assert.Equal(t, []string{"*"}, conf.CorsOrigins)
	assert.Equal(t, DefaultReportCron, conf.Report.Cron)
}

func TestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	conf := Config{
		Auth:        AuthConf{TokenExpireMinutes: 30},
		CorsOrigins: []string{"http://localhost:3000"},
		Report:      ReportConf{Cron: "*/5 * * * *"},
	}
	conf.ApplyDefaults()

	assert.Equal(t, 30, conf.Auth.TokenExpireMinutes)
	assert.Equal(t, []string{"http://localhost:3000"}, conf.CorsOrigins)
	assert.Equal(t, "*/5 * * * *", conf.Report.Cron)
}
