package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/urfave/cli/v3"

	"github.com/secmon-lab/ringsync/pkg/cli/config"
	"github.com/secmon-lab/ringsync/pkg/utils/logging"
)

func runLogger(t *testing.T, args ...string) (func(), error) {
	t.Helper()

	var cfg config.Logger
	var closer func()
	var configErr error

	cmd := &cli.Command{
		Name:  "test",
		Flags: cfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			closer, configErr = cfg.Configure()
			return nil
		},
	}

	gt.NoError(t, cmd.Run(context.Background(), append([]string{"test"}, args...)))
	return closer, configErr
}

func TestLoggerConfigure(t *testing.T) {
	original := logging.Default()
	t.Cleanup(func() { logging.SetDefault(original) })

	t.Run("defaults", func(t *testing.T) {
		closer, err := runLogger(t)
		gt.NoError(t, err).Required()
		closer()
	})

	t.Run("json to file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.log")

		closer, err := runLogger(t, "--log-format", "json", "--log-output", path)
		gt.NoError(t, err).Required()

		logging.Default().Info("hello")
		closer()

		data, err := os.ReadFile(path)
		gt.NoError(t, err).Required()
		gt.String(t, string(data)).Contains("hello")
	})

	t.Run("unknown level", func(t *testing.T) {
		_, err := runLogger(t, "--log-level", "verbose")
		gt.Error(t, err).Is(config.ErrInvalidLogger)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := runLogger(t, "--log-format", "xml")
		gt.Error(t, err).Is(config.ErrInvalidLogger)
	})
}
