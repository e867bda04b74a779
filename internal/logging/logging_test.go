package logging_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/goliatone/go-formgrid/internal/logging"
)

type credentials struct {
	Email    string
	Password string `masq:"secret"`
}

func TestNew_RedactsSecrets(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, slog.LevelInfo, logging.FormatJSON)

	logger.Info("login attempt", "credentials", credentials{Email: "user@example.com", Password: "hunter22"})

	out := buf.String()
	gt.String(t, out).Contains("user@example.com")
	gt.String(t, out).NotContains("hunter22")
}

func TestNew_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, slog.LevelWarn, logging.FormatText)

	logger.Info("hidden")
	logger.Warn("shown")

	gt.String(t, buf.String()).NotContains("hidden")
	gt.String(t, buf.String()).Contains("shown")
}

func TestParse(t *testing.T) {
	lvl, err := logging.ParseLevel("DEBUG")
	gt.NoError(t, err)
	gt.Value(t, lvl).Equal(slog.LevelDebug)

	_, err = logging.ParseLevel("loud")
	gt.Error(t, err)

	format, err := logging.ParseFormat("json")
	gt.NoError(t, err)
	gt.Value(t, format).Equal(logging.FormatJSON)

	_, err = logging.ParseFormat("xml")
	gt.Error(t, err)
}
