package config

import (
	"github.com/lambda-feedback/cidemo/internal/server"
	"github.com/lambda-feedback/cidemo/util/conf"
)

// EnvPrefix is the prefix of environment variables read into the
// config, e.g. CIDEMO_LOG_LEVEL or CIDEMO_HTTP__PORT.
const EnvPrefix = "CIDEMO_"

type Config struct {
	// LogLevel is the log level for the application
	LogLevel string `conf:"log_level"`

	// LogFormat is the log format for the application
	LogFormat string `conf:"log_format"`

	// Http is the configuration of the standalone http server
	Http server.HttpConfig `conf:"http"`
}

var DefaultConfig = conf.DefaultConfig{
	"log_level":  "info",
	"log_format": "production",
	"http.host":  server.DefaultHttpConfig.Host,
	"http.port":  server.DefaultHttpConfig.Port,
	"http.h2c":   false,

	// read by the lambda command only
	"lambda_proxy_source": "API_GW_V2",
}
