package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/secmon-lab/ringsync/pkg/cli/config"
	"github.com/secmon-lab/ringsync/pkg/domain/model"
)

func cmdUser() *cli.Command {
	return &cli.Command{
		Name:  "user",
		Usage: "Manage RingCentral users",
		Commands: []*cli.Command{
			cmdUserList(),
			cmdUserGet(),
			cmdUserCreate(),
			cmdUserUpdate(),
			cmdUserDelete(),
		},
	}
}

func cmdUserList() *cli.Command {
	var rcCfg config.RingCentral
	var userName string

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "user-name",
			Usage:       "Filter by exact user name",
			Destination: &userName,
		},
	}
	flags = append(flags, rcCfg.Flags()...)

	return &cli.Command{
		Name:  "list",
		Usage: "List users, optionally filtered by user name",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			client, err := rcCfg.Configure(ctx)
			if err != nil {
				return err
			}

			users, err := client.Users().List(ctx, userName)
			if err != nil {
				return err
			}
			if users == nil {
				users = []model.User{}
			}
			return printJSON(users)
		},
	}
}

func cmdUserGet() *cli.Command {
	var rcCfg config.RingCentral
	var id string

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "id",
			Usage:       "User ID",
			Required:    true,
			Destination: &id,
		},
	}
	flags = append(flags, rcCfg.Flags()...)

	return &cli.Command{
		Name:  "get",
		Usage: "Fetch one user by ID",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			client, err := rcCfg.Configure(ctx)
			if err != nil {
				return err
			}

			user, err := client.Users().Get(ctx, id)
			if err != nil {
				return err
			}
			return printJSON(user)
		},
	}
}

func cmdUserCreate() *cli.Command {
	var rcCfg config.RingCentral
	var userName, givenName, familyName, email string
	var inactive bool

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "user-name",
			Usage:       "SCIM user name (typically the email address)",
			Required:    true,
			Destination: &userName,
		},
		&cli.StringFlag{
			Name:        "given-name",
			Usage:       "Given name",
			Required:    true,
			Destination: &givenName,
		},
		&cli.StringFlag{
			Name:        "family-name",
			Usage:       "Family name",
			Required:    true,
			Destination: &familyName,
		},
		&cli.StringFlag{
			Name:        "email",
			Usage:       "Work email address",
			Required:    true,
			Destination: &email,
		},
		&cli.BoolFlag{
			Name:        "inactive",
			Usage:       "Create the user in inactive state",
			Destination: &inactive,
		},
	}
	flags = append(flags, rcCfg.Flags()...)

	return &cli.Command{
		Name:  "create",
		Usage: "Provision a new user",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			client, err := rcCfg.Configure(ctx)
			if err != nil {
				return err
			}

			active := !inactive
			user := model.NewUser()
			user.UserName = userName
			user.Active = &active
			user.Name = &model.UserName{
				GivenName:  givenName,
				FamilyName: familyName,
			}
			user.Emails = []model.UserEmail{{Value: email, Type: "work"}}

			created, err := client.Users().Create(ctx, user)
			if err != nil {
				return goerr.Wrap(err, "failed to create user")
			}
			return printJSON(created)
		},
	}
}

func cmdUserUpdate() *cli.Command {
	var rcCfg config.RingCentral
	var id, userName, givenName, familyName, email string
	var active bool

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "id",
			Usage:       "User ID",
			Required:    true,
			Destination: &id,
		},
		&cli.StringFlag{
			Name:        "user-name",
			Usage:       "New SCIM user name",
			Destination: &userName,
		},
		&cli.StringFlag{
			Name:        "given-name",
			Usage:       "New given name",
			Destination: &givenName,
		},
		&cli.StringFlag{
			Name:        "family-name",
			Usage:       "New family name",
			Destination: &familyName,
		},
		&cli.StringFlag{
			Name:        "email",
			Usage:       "New work email address",
			Destination: &email,
		},
		&cli.BoolFlag{
			Name:        "active",
			Usage:       "New active state",
			Destination: &active,
		},
	}
	flags = append(flags, rcCfg.Flags()...)

	return &cli.Command{
		Name:  "update",
		Usage: "Update a user. Only the given fields change; the rest keep their current values.",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			client, err := rcCfg.Configure(ctx)
			if err != nil {
				return err
			}

			partial := model.NewUserUpdate()
			if userName != "" {
				partial.UserName = userName
			}
			if givenName != "" || familyName != "" {
				partial.Name = &model.UserName{
					GivenName:  givenName,
					FamilyName: familyName,
				}
			}
			if email != "" {
				partial.Emails = []model.UserEmail{{Value: email, Type: "work"}}
			}
			if c.IsSet("active") {
				partial.Active = &active
			}

			updated, err := client.Users().Update(ctx, id, partial)
			if err != nil {
				return goerr.Wrap(err, "failed to update user")
			}
			return printJSON(updated)
		},
	}
}

func cmdUserDelete() *cli.Command {
	var rcCfg config.RingCentral
	var id string

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "id",
			Usage:       "User ID",
			Required:    true,
			Destination: &id,
		},
	}
	flags = append(flags, rcCfg.Flags()...)

	return &cli.Command{
		Name:  "delete",
		Usage: "Delete a user",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			client, err := rcCfg.Configure(ctx)
			if err != nil {
				return err
			}

			if err := client.Users().Delete(ctx, id); err != nil {
				return goerr.Wrap(err, "failed to delete user")
			}
			return nil
		},
	}
}
