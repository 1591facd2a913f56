package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
)

// Profile is an optional TOML file holding connection settings for one
// RingCentral account. Flags and environment variables take precedence over
// profile values.
type Profile struct {
	BaseURL      string   `toml:"base_url"`
	ClientID     string   `toml:"client_id"`
	ClientSecret string   `toml:"client_secret"`
	Username     string   `toml:"username"`
	Password     string   `toml:"password"`
	AccessToken  string   `toml:"access_token"`
	CallQueueIDs []string `toml:"call_queue_ids"`
}

// Validate checks if the Profile is valid
func (p *Profile) Validate() error {
	if p.BaseURL == "" {
		return goerr.Wrap(ErrInvalidProfile, "base_url is required")
	}
	if p.AccessToken == "" {
		if p.ClientID == "" || p.ClientSecret == "" || p.Username == "" || p.Password == "" {
			return goerr.Wrap(ErrInvalidProfile, "either access_token or the full credential set (client_id, client_secret, username, password) is required")
		}
	}
	return nil
}

// LoadProfile loads a connection profile from a TOML file
func LoadProfile(path string) (*Profile, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(ErrProfileNotFound, "failed to read profile", goerr.V("path", path))
		}
		return nil, goerr.Wrap(err, "failed to read profile", goerr.V("path", path))
	}

	var profile Profile
	if err := toml.Unmarshal(data, &profile); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML profile", goerr.V("path", path))
	}

	if err := profile.Validate(); err != nil {
		return nil, goerr.Wrap(err, "profile validation failed", goerr.V("path", path))
	}

	return &profile, nil
}
