package config

import (
	pkgconfig "github.com/atlasid/oid-service/pkg/config"
	"github.com/atlasid/oid-service/pkg/log"
)

type Config struct {
	Server ServerConfig
	Log    log.Config
	OID    OIDConfig    `mapstructure:"oid"`
	NanoID NanoIDConfig `mapstructure:"nanoid"`
	CUID2  CUID2Config  `mapstructure:"cuid2"`
}

type ServerConfig struct {
	Host string
	Port int
}

// OIDConfig tunes the ObjectID identity source.
type OIDConfig struct {
	// Hostname overrides the machine-identity host name. Set it when
	// containers need a stable machine identifier across restarts.
	Hostname string `mapstructure:"hostname"`
}

type NanoIDConfig struct {
	Size     int    `mapstructure:"size"`
	Alphabet string `mapstructure:"alphabet"`
}

type CUID2Config struct {
	Length int `mapstructure:"length"`
}

func Load() (*Config, error) {
	v, err := pkgconfig.Load("./config", "config")
	if err != nil {
		return nil, err
	}

	// Set defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8090)
	v.SetDefault("oid.hostname", "")
	v.SetDefault("nanoid.size", 21)
	v.SetDefault("nanoid.alphabet", "_-0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")
	v.SetDefault("cuid2.length", 24)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// Override from environment
	v.BindEnv("server.port", "PORT")
	v.BindEnv("oid.hostname", "OID_HOSTNAME")
	v.BindEnv("nanoid.size", "NANOID_SIZE")
	v.BindEnv("nanoid.alphabet", "NANOID_ALPHABET")
	v.BindEnv("cuid2.length", "CUID2_LENGTH")
	v.BindEnv("log.level", "LOG_LEVEL")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
