package config_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/urfave/cli/v3"

	"github.com/secmon-lab/ringsync/pkg/cli/config"
	"github.com/secmon-lab/ringsync/pkg/service/ringcentral"
)

func configureWith(t *testing.T, args ...string) (*ringcentral.Client, error) {
	t.Helper()

	var cfg config.RingCentral
	var client *ringcentral.Client
	var configErr error

	cmd := &cli.Command{
		Name:  "test",
		Flags: cfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			client, configErr = cfg.Configure(ctx)
			return nil
		},
	}

	gt.NoError(t, cmd.Run(context.Background(), append([]string{"test"}, args...)))
	return client, configErr
}

func TestRingCentralConfigure(t *testing.T) {
	t.Run("access token from flags", func(t *testing.T) {
		client, err := configureWith(t,
			"--base-url", "https://platform.ringcentral.com",
			"--access-token", "abc123",
		)
		gt.NoError(t, err).Required()
		gt.Value(t, client).NotNil()
	})

	t.Run("access token from profile", func(t *testing.T) {
		path := writeProfile(t, `
base_url = "https://platform.ringcentral.com"
access_token = "abc123"
call_queue_ids = ["101"]
`)

		client, err := configureWith(t, "--profile", path)
		gt.NoError(t, err).Required()
		gt.Value(t, client).NotNil()
	})

	t.Run("flags override profile", func(t *testing.T) {
		path := writeProfile(t, `
base_url = "https://profile.example.com"
access_token = "profile-token"
`)

		client, err := configureWith(t,
			"--profile", path,
			"--base-url", "https://flag.example.com",
		)
		gt.NoError(t, err).Required()
		gt.Value(t, client).NotNil()
	})

	t.Run("base URL required", func(t *testing.T) {
		_, err := configureWith(t, "--access-token", "abc123")
		gt.Error(t, err)
	})

	t.Run("broken profile", func(t *testing.T) {
		path := writeProfile(t, `access_token = "abc123"`)

		_, err := configureWith(t, "--profile", path)
		gt.Error(t, err).Is(config.ErrInvalidProfile)
	})
}
