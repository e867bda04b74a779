package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/goliatone/go-formgrid/internal/config"
)

func TestDecode_OverlaysFileOntoDefaults(t *testing.T) {
	raw := []byte(`
addr = "127.0.0.1:9000"

[login]
delay = "50ms"
email = "demo@example.com"

[log]
format = "json"
`)
	cfg, err := config.Decode(raw, config.Default())
	gt.NoError(t, err).Required()

	gt.Value(t, cfg.Addr).Equal("127.0.0.1:9000")
	gt.Value(t, cfg.LoginDelay).Equal(50 * time.Millisecond)
	gt.Value(t, cfg.LoginEmail).Equal("demo@example.com")
	gt.Value(t, cfg.LoginPassword).Equal(config.DefaultLoginPassword)
	gt.Value(t, cfg.LogFormat).Equal("json")
	gt.Value(t, cfg.LogLevel).Equal("info")
	gt.NoError(t, cfg.Validate())
}

func TestDecode_Errors(t *testing.T) {
	_, err := config.Decode([]byte(`addr = `), config.Default())
	gt.Error(t, err)

	_, err = config.Decode([]byte("[login]\ndelay = \"soon\"\n"), config.Default())
	gt.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "formgrid.toml")
	gt.NoError(t, os.WriteFile(path, []byte("shutdown_timeout = \"3s\"\n"), 0o600)).Required()

	cfg, err := config.LoadFile(path, config.Default())
	gt.NoError(t, err).Required()
	gt.Value(t, cfg.ShutdownTimeout).Equal(3 * time.Second)

	_, err = config.LoadFile(filepath.Join(t.TempDir(), "missing.toml"), config.Default())
	gt.Error(t, err)
}

func TestValidate(t *testing.T) {
	gt.NoError(t, config.Default().Validate())

	cases := map[string]func(*config.Config){
		"bad addr":       func(c *config.Config) { c.Addr = "8080" },
		"negative delay": func(c *config.Config) { c.LoginDelay = -time.Second },
		"no timeout":     func(c *config.Config) { c.ShutdownTimeout = 0 },
		"no password":    func(c *config.Config) { c.LoginPassword = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := config.Default()
			mutate(&cfg)
			gt.Error(t, cfg.Validate())
		})
	}
}
