package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/secmon-lab/ringsync/pkg/cli/config"
)

func writeProfile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.toml")
	gt.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func TestLoadProfile(t *testing.T) {
	t.Run("password grant profile", func(t *testing.T) {
		path := writeProfile(t, `
base_url = "https://platform.ringcentral.com"
client_id = "app-id"
client_secret = "app-secret"
username = "+15551234567"
password = "hunter2"
call_queue_ids = ["101", "102"]
`)

		profile, err := config.LoadProfile(path)
		gt.NoError(t, err).Required()
		gt.Value(t, profile.BaseURL).Equal("https://platform.ringcentral.com")
		gt.Value(t, profile.ClientID).Equal("app-id")
		gt.Array(t, profile.CallQueueIDs).Equal([]string{"101", "102"})
	})

	t.Run("token profile", func(t *testing.T) {
		path := writeProfile(t, `
base_url = "https://platform.ringcentral.com"
access_token = "abc123"
`)

		profile, err := config.LoadProfile(path)
		gt.NoError(t, err).Required()
		gt.Value(t, profile.AccessToken).Equal("abc123")
	})

	t.Run("missing base_url", func(t *testing.T) {
		path := writeProfile(t, `access_token = "abc123"`)

		_, err := config.LoadProfile(path)
		gt.Error(t, err).Is(config.ErrInvalidProfile)
	})

	t.Run("incomplete credentials", func(t *testing.T) {
		path := writeProfile(t, `
base_url = "https://platform.ringcentral.com"
client_id = "app-id"
`)

		_, err := config.LoadProfile(path)
		gt.Error(t, err).Is(config.ErrInvalidProfile)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := config.LoadProfile(filepath.Join(t.TempDir(), "no-such.toml"))
		gt.Error(t, err).Is(config.ErrProfileNotFound)
	})

	t.Run("malformed TOML", func(t *testing.T) {
		path := writeProfile(t, `base_url = `)

		_, err := config.LoadProfile(path)
		gt.Error(t, err)
	})
}
