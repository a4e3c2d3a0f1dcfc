package server

type HttpConfig struct {
	Host string `conf:"host"`
	Port int    `conf:"port"`
	H2c  bool   `conf:"h2c"`
}

// DefaultHttpConfig listens on localhost:3000.
var DefaultHttpConfig = HttpConfig{
	Host: "localhost",
	Port: 3000,
}

// WithDefaults fills unset fields from DefaultHttpConfig. A zero port
// is kept when a host is given, so callers can request an ephemeral
// port with {Host: "127.0.0.1"}.
func (c HttpConfig) WithDefaults() HttpConfig {
	if c.Host == "" {
		c.Host = DefaultHttpConfig.Host
		if c.Port == 0 {
			c.Port = DefaultHttpConfig.Port
		}
	}

	return c
}
