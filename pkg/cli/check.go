package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/secmon-lab/ringsync/pkg/cli/config"
	"github.com/secmon-lab/ringsync/pkg/utils/logging"
)

func cmdCheck() *cli.Command {
	var rcCfg config.RingCentral

	return &cli.Command{
		Name:  "check",
		Usage: "Verify connectivity and credentials against the RingCentral platform",
		Flags: rcCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			client, err := rcCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure RingCentral client")
			}

			if err := client.Check(ctx); err != nil {
				return goerr.Wrap(err, "health check failed")
			}

			logging.Default().Info("health check passed", "ringcentral", rcCfg)
			fmt.Println("OK")
			return nil
		},
	}
}
