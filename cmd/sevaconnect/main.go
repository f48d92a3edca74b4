package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	// Missing .env is fine; production sets real environment variables.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "sevaconnect",
		Usage: "Donation coordination backend connecting donors with NGOs",
		Commands: []*cli.Command{
			serveCommand,
			migrateCommand,
			seedCommand,
			createAdminCommand,
			normalizeTagsCommand,
			nanoidCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("application failed")
	}
}
