package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jromang/picochess/internal/errors"
	"github.com/jromang/picochess/internal/export"
	"github.com/jromang/picochess/internal/testutil"
)

// TestOutputConfig_Defaults verifies OutputConfig has sensible defaults
func TestOutputConfig_Defaults(t *testing.T) {
	cfg := NewOutputConfig()

	if cfg.Columns != 80 {
		t.Errorf("Columns = %d, want 80", cfg.Columns)
	}
	if !cfg.IncludeComments {
		t.Error("IncludeComments should be true by default")
	}
	if !cfg.IncludeVariations {
		t.Error("IncludeVariations should be true by default")
	}
	testutil.AssertEqual(t, cfg.ExportOptions(), export.All)
}

func TestConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	testutil.AssertEqual(t, cfg.Server.Addr, ":8080")
	testutil.AssertEqual(t, cfg.Store.Backend, MemoryBackend)
	testutil.AssertEqual(t, cfg.Store.TTL, 24*time.Hour)
	testutil.AssertEqual(t, cfg.Log.Level, "info")
	testutil.AssertNoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"empty address", func(c *Config) { c.Server.Addr = " " }, true},
		{"negative columns", func(c *Config) { c.Output.Columns = -1 }, true},
		{"no wrapping", func(c *Config) { c.Output.Columns = 0 }, false},
		{"unknown backend", func(c *Config) { c.Store.Backend = "etcd" }, true},
		{"redis without address", func(c *Config) {
			c.Store.Backend = RedisBackend
			c.Store.RedisAddr = ""
		}, true},
		{"redis negative db", func(c *Config) {
			c.Store.Backend = RedisBackend
			c.Store.RedisDB = -2
		}, true},
		{"redis", func(c *Config) { c.Store.Backend = RedisBackend }, false},
		{"negative ttl", func(c *Config) { c.Store.TTL = -time.Second }, true},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, true},
		{"debug log level", func(c *Config) { c.Log.Level = "debug" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !stderrors.Is(err, errors.ErrInvalidConfig) {
				t.Errorf("Validate() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestOriginAllowed(t *testing.T) {
	tests := []struct {
		name           string
		origins        []string
		origin         string
		wantAllowed    bool
		wantConfigured bool
	}{
		{"wildcard", []string{"*"}, "http://evil.example", true, true},
		{"listed", []string{"http://pi.local"}, "HTTP://PI.LOCAL", true, true},
		{"not listed", []string{"http://pi.local"}, "http://other", false, true},
		{"unconfigured", nil, "http://pi.local", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := ServerConfig{AllowedOrigins: tt.origins}
			allowed, configured := s.OriginAllowed(tt.origin)
			testutil.AssertEqual(t, allowed, tt.wantAllowed)
			testutil.AssertEqual(t, configured, tt.wantConfigured)
		})
	}
}

func TestBuilderFrom(t *testing.T) {
	base := NewConfig()
	base.Store.Backend = RedisBackend

	cfg, err := BuilderFrom(base).WithAddr(":7000").Build()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, cfg.Server.Addr, ":7000")
	testutil.AssertEqual(t, cfg.Store.Backend, RedisBackend, "loaded settings kept")

	_, err = BuilderFrom(NewConfig()).WithLogLevel("loud").Build()
	testutil.AssertErrorIs(t, err, errors.ErrInvalidConfig)
}

// TestConfigBuilder verifies the builder pattern works correctly
func TestConfigBuilder(t *testing.T) {
	cfg, err := NewBuilder().
		WithAddr(":9000").
		WithColumns(120).
		KeepComments(false).
		WithRedis("redis:6379", 2).
		WithTTL(time.Hour).
		WithLogLevel("debug").
		Build()
	testutil.AssertNoError(t, err)

	testutil.AssertEqual(t, cfg.Server.Addr, ":9000")
	testutil.AssertEqual(t, cfg.Output.Columns, 120)
	testutil.AssertEqual(t, cfg.Output.ExportOptions(), export.Options{Variations: true})
	testutil.AssertEqual(t, cfg.Store, StoreConfig{
		Backend:   RedisBackend,
		RedisAddr: "redis:6379",
		RedisDB:   2,
		TTL:       time.Hour,
	})

	_, err = NewBuilder().WithColumns(-5).Build()
	testutil.AssertErrorIs(t, err, errors.ErrInvalidConfig)
}

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, "picoweb.yaml", `
server:
  addr: ":8888"
  allowed_origins:
    - http://pi.local
output:
  columns: 60
  include_variations: false
store:
  backend: redis
  redis_addr: "cache:6379"
  ttl: 90m
log:
  level: warn
`)
	cfg, err := Load(path)
	testutil.AssertNoError(t, err)

	testutil.AssertEqual(t, cfg.Server.Addr, ":8888")
	testutil.AssertEqual(t, cfg.Server.AllowedOrigins, []string{"http://pi.local"})
	testutil.AssertEqual(t, cfg.Output.Columns, 60)
	testutil.AssertTrue(t, cfg.Output.IncludeComments, "unset keys keep their default")
	testutil.AssertFalse(t, cfg.Output.IncludeVariations)
	testutil.AssertEqual(t, cfg.Store.Backend, RedisBackend)
	testutil.AssertEqual(t, cfg.Store.RedisAddr, "cache:6379")
	testutil.AssertEqual(t, cfg.Store.TTL, 90*time.Minute)
	testutil.AssertEqual(t, cfg.Log.Level, "warn")
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeConfig(t, "picoweb.json", `{"server": {"addr": ":7000"}, "output": {"columns": 40}}`)
	t.Setenv("PICOWEB_SERVER_ADDR", ":7777")
	t.Setenv("PICOWEB_LOG_LEVEL", "error")

	cfg, err := Load(path)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, cfg.Server.Addr, ":7777")
	testutil.AssertEqual(t, cfg.Output.Columns, 40)
	testutil.AssertEqual(t, cfg.Log.Level, "error")
}

func TestLoad_NoFile(t *testing.T) {
	cfg, err := Load("")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, cfg, NewConfig())
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Error("Load() of a missing file should fail")
	}

	path := writeConfig(t, "bad.toml", "[store]\nbackend = \"sqlite\"\n")
	_, err = Load(path)
	testutil.AssertErrorIs(t, err, errors.ErrInvalidConfig)
}
