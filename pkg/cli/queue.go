package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/secmon-lab/ringsync/pkg/cli/config"
	"github.com/secmon-lab/ringsync/pkg/domain/model"
	"github.com/secmon-lab/ringsync/pkg/utils/logging"
)

func cmdQueue() *cli.Command {
	return &cli.Command{
		Name:  "queue",
		Usage: "Manage RingCentral call queues",
		Commands: []*cli.Command{
			cmdQueueList(),
			cmdQueueGet(),
			cmdQueueSyncMembers(),
		},
	}
}

func cmdQueueList() *cli.Command {
	var rcCfg config.RingCentral
	var memberID string

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "member-extension-id",
			Usage:       "Only list queues that contain this member extension",
			Destination: &memberID,
		},
	}
	flags = append(flags, rcCfg.Flags()...)

	return &cli.Command{
		Name:  "list",
		Usage: "List call queues",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			client, err := rcCfg.Configure(ctx)
			if err != nil {
				return err
			}

			queues, err := client.Queues().List(ctx, memberID)
			if err != nil {
				return err
			}
			if queues == nil {
				queues = []model.CallQueue{}
			}
			return printJSON(queues)
		},
	}
}

func cmdQueueGet() *cli.Command {
	var rcCfg config.RingCentral
	var id string

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "id",
			Usage:       "Call queue ID",
			Required:    true,
			Destination: &id,
		},
	}
	flags = append(flags, rcCfg.Flags()...)

	return &cli.Command{
		Name:  "get",
		Usage: "Fetch one call queue with its current members",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			client, err := rcCfg.Configure(ctx)
			if err != nil {
				return err
			}

			queue, err := client.Queues().Get(ctx, id)
			if err != nil {
				return err
			}

			out := struct {
				model.CallQueue
				MemberIDs []string `json:"memberIds"`
			}{CallQueue: *queue, MemberIDs: queue.MemberIDs}
			if out.MemberIDs == nil {
				out.MemberIDs = []string{}
			}
			return printJSON(out)
		},
	}
}

func cmdQueueSyncMembers() *cli.Command {
	var rcCfg config.RingCentral
	var id string
	var memberIDs []string

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "id",
			Usage:       "Call queue ID",
			Required:    true,
			Destination: &id,
		},
		&cli.StringSliceFlag{
			Name:        "member",
			Usage:       "Desired member extension ID (can be specified multiple times, omit for an empty queue)",
			Destination: &memberIDs,
		},
	}
	flags = append(flags, rcCfg.Flags()...)

	return &cli.Command{
		Name:  "sync-members",
		Usage: "Replace the member set of a call queue with the given members",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			client, err := rcCfg.Configure(ctx)
			if err != nil {
				return err
			}

			if err := client.Queues().SyncMembers(ctx, id, memberIDs); err != nil {
				return goerr.Wrap(err, "failed to sync queue members")
			}

			logging.Default().Info("queue members synchronized", "queue_id", id, "members", len(memberIDs))
			return nil
		},
	}
}
