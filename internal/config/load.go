package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/jromang/picochess/internal/errors"
)

// EnvPrefix prefixes environment overrides, e.g. PICOWEB_SERVER_ADDR.
const EnvPrefix = "PICOWEB"

// Load reads the configuration file at path on top of the defaults and
// applies environment overrides. An empty path reads only the
// environment. The result is validated.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, NewConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrapf(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults registers every key so environment overrides reach Unmarshal.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.allowed_origins", d.Server.AllowedOrigins)
	v.SetDefault("output.columns", d.Output.Columns)
	v.SetDefault("output.include_comments", d.Output.IncludeComments)
	v.SetDefault("output.include_variations", d.Output.IncludeVariations)
	v.SetDefault("store.backend", d.Store.Backend)
	v.SetDefault("store.redis_addr", d.Store.RedisAddr)
	v.SetDefault("store.redis_db", d.Store.RedisDB)
	v.SetDefault("store.ttl", d.Store.TTL)
	v.SetDefault("log.level", d.Log.Level)
}
