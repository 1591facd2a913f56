package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/secmon-lab/ringsync/pkg/cli/config"
	httpctrl "github.com/secmon-lab/ringsync/pkg/controller/http"
	"github.com/secmon-lab/ringsync/pkg/utils/logging"
)

func cmdServe() *cli.Command {
	var addr string
	var rcCfg config.RingCentral

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("RINGSYNC_ADDR"),
			Destination: &addr,
		},
	}
	flags = append(flags, rcCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server exposing the provisioning operations",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			client, err := rcCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure RingCentral client")
			}

			handler, err := httpctrl.New(client.Users(), client.Queues(), client)
			if err != nil {
				return goerr.Wrap(err, "failed to create http server")
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           handler,
				ReadHeaderTimeout: 30 * time.Second,
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			g, gctx := errgroup.WithContext(ctx)

			g.Go(func() error {
				logging.Default().Info("Starting HTTP server", "addr", addr, "ringcentral", rcCfg)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					return goerr.Wrap(err, "failed to start server")
				}
				return nil
			})

			g.Go(func() error {
				<-gctx.Done()
				logging.Default().Info("Shutting down HTTP server")

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}
				return nil
			})

			if err := g.Wait(); err != nil {
				return err
			}

			logging.Default().Info("Server shutdown completed")
			return nil
		},
	}
}
