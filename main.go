package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newCommand().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func envFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "env",
		Usage: "path to an optional .env file",
		Value: ".env",
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "storefront",
		Usage: "product catalog, contact inbox and WhatsApp checkout API",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP API",
				Flags:  []cli.Flag{envFlag()},
				Action: serveAction,
			},
			{
				Name:   "migrate",
				Usage:  "create or upgrade the database schema and access policies",
				Flags:  []cli.Flag{envFlag()},
				Action: migrateAction,
			},
			{
				Name:  "admin",
				Usage: "manage admin accounts",
				Commands: []*cli.Command{
					{
						Name:  "create",
						Usage: "register an admin account for the local identity provider",
						Flags: []cli.Flag{
							envFlag(),
							&cli.StringFlag{
								Name:     "email",
								Usage:    "admin email",
								Required: true,
							},
							&cli.StringFlag{
								Name:     "password",
								Usage:    "admin password",
								Required: true,
							},
						},
						Action: adminCreateAction,
					},
				},
			},
		},
	}
}
