// Package config resolves the application settings: built-in defaults, then
// an optional TOML file, then command line flags and FORMGRID_* environment
// variables.
package config

import (
	"net"
	"os"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

const (
	DefaultAddr            = ":8080"
	DefaultLoginDelay      = 800 * time.Millisecond
	DefaultLoginEmail      = "user@example.com"
	DefaultLoginPassword   = "password"
	DefaultShutdownTimeout = 10 * time.Second
)

// Config is the resolved application configuration.
type Config struct {
	Addr            string
	LoginDelay      time.Duration
	LoginEmail      string
	LoginPassword   string `masq:"secret"`
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Addr:            DefaultAddr,
		LoginDelay:      DefaultLoginDelay,
		LoginEmail:      DefaultLoginEmail,
		LoginPassword:   DefaultLoginPassword,
		LogLevel:        "info",
		LogFormat:       "text",
		ShutdownTimeout: DefaultShutdownTimeout,
	}
}

type fileConfig struct {
	Addr            string `toml:"addr"`
	ShutdownTimeout string `toml:"shutdown_timeout"`
	Login           struct {
		Delay    string `toml:"delay"`
		Email    string `toml:"email"`
		Password string `toml:"password"`
	} `toml:"login"`
	Log struct {
		Level  string `toml:"level"`
		Format string `toml:"format"`
	} `toml:"log"`
}

// LoadFile overlays the TOML file at path onto base. Keys missing from the
// file keep their base value.
func LoadFile(path string, base Config) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return base, goerr.Wrap(err, "failed to read config file", goerr.V("path", path))
	}
	return Decode(raw, base)
}

// Decode overlays TOML content onto base.
func Decode(raw []byte, base Config) (Config, error) {
	var file fileConfig
	if err := toml.Unmarshal(raw, &file); err != nil {
		return base, goerr.Wrap(err, "failed to decode config")
	}

	cfg := base
	setString(&cfg.Addr, file.Addr)
	setString(&cfg.LoginEmail, file.Login.Email)
	setString(&cfg.LoginPassword, file.Login.Password)
	setString(&cfg.LogLevel, file.Log.Level)
	setString(&cfg.LogFormat, file.Log.Format)
	if err := setDuration(&cfg.LoginDelay, file.Login.Delay); err != nil {
		return base, goerr.Wrap(err, "invalid login.delay")
	}
	if err := setDuration(&cfg.ShutdownTimeout, file.ShutdownTimeout); err != nil {
		return base, goerr.Wrap(err, "invalid shutdown_timeout")
	}
	return cfg, nil
}

// Validate checks the resolved configuration.
func (c Config) Validate() error {
	if _, _, err := net.SplitHostPort(c.Addr); err != nil {
		return goerr.Wrap(err, "invalid listen address", goerr.V("addr", c.Addr))
	}
	if c.LoginDelay < 0 {
		return goerr.New("login delay must not be negative", goerr.V("delay", c.LoginDelay))
	}
	if c.ShutdownTimeout <= 0 {
		return goerr.New("shutdown timeout must be positive", goerr.V("timeout", c.ShutdownTimeout))
	}
	if strings.TrimSpace(c.LoginEmail) == "" || c.LoginPassword == "" {
		return goerr.New("login credentials are required")
	}
	return nil
}

// Flags are the serve command flags. Their values only override the file
// configuration when set explicitly; see Apply.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to a TOML configuration file",
			Sources: cli.EnvVars("FORMGRID_CONFIG"),
		},
		&cli.StringFlag{
			Name:    "addr",
			Usage:   "HTTP server address",
			Value:   DefaultAddr,
			Sources: cli.EnvVars("FORMGRID_ADDR"),
		},
		&cli.DurationFlag{
			Name:    "login-delay",
			Usage:   "Artificial delay before a login attempt is answered",
			Value:   DefaultLoginDelay,
			Sources: cli.EnvVars("FORMGRID_LOGIN_DELAY"),
		},
		&cli.StringFlag{
			Name:     "login-email",
			Usage:    "Email accepted by the demo login",
			Value:    DefaultLoginEmail,
			Category: "Login",
			Sources:  cli.EnvVars("FORMGRID_LOGIN_EMAIL"),
		},
		&cli.StringFlag{
			Name:     "login-password",
			Usage:    "Password accepted by the demo login",
			Category: "Login",
			Sources:  cli.EnvVars("FORMGRID_LOGIN_PASSWORD"),
		},
		&cli.DurationFlag{
			Name:    "shutdown-timeout",
			Usage:   "Grace period for in-flight requests on shutdown",
			Value:   DefaultShutdownTimeout,
			Sources: cli.EnvVars("FORMGRID_SHUTDOWN_TIMEOUT"),
		},
	}
}

// Resolve builds the configuration for a command: defaults, the file named
// by --config, then explicitly set flags.
func Resolve(cmd *cli.Command) (Config, error) {
	cfg := Default()
	if path := cmd.String("config"); path != "" {
		loaded, err := LoadFile(path, cfg)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	Apply(cmd, &cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, goerr.Wrap(err, "invalid configuration")
	}
	return cfg, nil
}

// Apply copies explicitly set flags into cfg. Logger flags live on the root
// command and are read from there.
func Apply(cmd *cli.Command, cfg *Config) {
	if cmd.IsSet("addr") {
		cfg.Addr = cmd.String("addr")
	}
	if cmd.IsSet("login-delay") {
		cfg.LoginDelay = cmd.Duration("login-delay")
	}
	if cmd.IsSet("login-email") {
		cfg.LoginEmail = cmd.String("login-email")
	}
	if cmd.IsSet("login-password") {
		cfg.LoginPassword = cmd.String("login-password")
	}
	if cmd.IsSet("shutdown-timeout") {
		cfg.ShutdownTimeout = cmd.Duration("shutdown-timeout")
	}
	if cmd.IsSet("log-level") {
		cfg.LogLevel = cmd.String("log-level")
	}
	if cmd.IsSet("log-format") {
		cfg.LogFormat = cmd.String("log-format")
	}
}

func setString(target *string, value string) {
	if value = strings.TrimSpace(value); value != "" {
		*target = value
	}
}

func setDuration(target *time.Duration, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return err
	}
	*target = d
	return nil
}
