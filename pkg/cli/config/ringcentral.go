package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/secmon-lab/ringsync/pkg/service/ringcentral"
)

// RingCentral holds connection settings for the RingCentral platform. Values
// can come from flags, environment variables or a TOML profile; flags win.
type RingCentral struct {
	baseURL      string
	clientID     string
	clientSecret string
	username     string
	password     string
	accessToken  string
	queueIDs     []string
	profilePath  string
}

func (x *RingCentral) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "base-url",
			Usage:       "RingCentral API base URL (e.g., https://platform.ringcentral.com)",
			Category:    "RingCentral",
			Sources:     cli.EnvVars("RINGSYNC_BASE_URL"),
			Destination: &x.baseURL,
		},
		&cli.StringFlag{
			Name:        "client-id",
			Usage:       "RingCentral application client ID",
			Category:    "RingCentral",
			Sources:     cli.EnvVars("RINGSYNC_CLIENT_ID"),
			Destination: &x.clientID,
		},
		&cli.StringFlag{
			Name:        "client-secret",
			Usage:       "RingCentral application client secret",
			Category:    "RingCentral",
			Sources:     cli.EnvVars("RINGSYNC_CLIENT_SECRET"),
			Destination: &x.clientSecret,
		},
		&cli.StringFlag{
			Name:        "username",
			Usage:       "Account phone number or user name for the password grant",
			Category:    "RingCentral",
			Sources:     cli.EnvVars("RINGSYNC_USERNAME"),
			Destination: &x.username,
		},
		&cli.StringFlag{
			Name:        "password",
			Usage:       "Account password for the password grant",
			Category:    "RingCentral",
			Sources:     cli.EnvVars("RINGSYNC_PASSWORD"),
			Destination: &x.password,
		},
		&cli.StringFlag{
			Name:        "access-token",
			Usage:       "Pre-issued access token (skips the password grant)",
			Category:    "RingCentral",
			Sources:     cli.EnvVars("RINGSYNC_ACCESS_TOKEN"),
			Destination: &x.accessToken,
		},
		&cli.StringSliceFlag{
			Name:        "call-queue-id",
			Usage:       "Restrict member-filtered call queue listing to these queue IDs (can be specified multiple times)",
			Category:    "RingCentral",
			Sources:     cli.EnvVars("RINGSYNC_CALL_QUEUE_IDS"),
			Destination: &x.queueIDs,
		},
		&cli.StringFlag{
			Name:        "profile",
			Usage:       "Path to a TOML connection profile",
			Category:    "RingCentral",
			Sources:     cli.EnvVars("RINGSYNC_PROFILE"),
			Destination: &x.profilePath,
		},
	}
}

func (x RingCentral) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("base-url", x.baseURL),
		slog.String("client-id", x.clientID),
		slog.Int("client-secret.len", len(x.clientSecret)),
		slog.String("username", x.username),
		slog.Int("password.len", len(x.password)),
		slog.Int("access-token.len", len(x.accessToken)),
		slog.Any("call-queue-ids", x.queueIDs),
		slog.String("profile", x.profilePath),
	)
}

// applyProfile fills unset fields from the profile. Flags and environment
// variables keep precedence.
func (x *RingCentral) applyProfile(p *Profile) {
	if x.baseURL == "" {
		x.baseURL = p.BaseURL
	}
	if x.clientID == "" {
		x.clientID = p.ClientID
	}
	if x.clientSecret == "" {
		x.clientSecret = p.ClientSecret
	}
	if x.username == "" {
		x.username = p.Username
	}
	if x.password == "" {
		x.password = p.Password
	}
	if x.accessToken == "" {
		x.accessToken = p.AccessToken
	}
	if len(x.queueIDs) == 0 {
		x.queueIDs = p.CallQueueIDs
	}
}

// Configure builds a RingCentral client from the configured flags. When an
// access token is set it is used directly; otherwise the password grant is
// performed against the platform.
func (x *RingCentral) Configure(ctx context.Context) (*ringcentral.Client, error) {
	if x.profilePath != "" {
		profile, err := LoadProfile(x.profilePath)
		if err != nil {
			return nil, err
		}
		x.applyProfile(profile)
	}

	if x.baseURL == "" {
		return nil, goerr.New("RingCentral base URL is required: set --base-url or a profile")
	}

	var opts []ringcentral.Option
	if len(x.queueIDs) > 0 {
		opts = append(opts, ringcentral.WithQueueAllowList(x.queueIDs))
	}

	if x.accessToken != "" {
		return ringcentral.New(x.baseURL, ringcentral.StaticTokenSource(x.accessToken), opts...)
	}

	tokens, err := ringcentral.NewPasswordTokenSource(ctx, x.baseURL, x.clientID, x.clientSecret, x.username, x.password)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to configure password grant")
	}

	return ringcentral.New(x.baseURL, tokens, opts...)
}
