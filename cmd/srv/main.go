package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

var server srv

func main() {
	app := cli.NewApp()
	app.Name = "Voluntree"
	app.Usage = "engagement engine services"
	app.Action = cli.ShowAppHelp
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:  "config",
			Value: "config.toml",
			Usage: "path to the configuration file",
		},
	}
	app.Commands = []*cli.Command{
		{
			Action:      server.startApi,
			Name:        "api",
			Usage:       "Start the engagement api",
			Category:    "Api",
			Description: `Serves activities, applications, validations, badges, and notifications over HTTP.`,
		},
		{
			Action:      server.startProxy,
			Name:        "proxy",
			Usage:       "Start the notification proxy",
			Category:    "Websocket",
			Description: `Consumes notification events from kafka and fans them out to websocket subscribers.`,
		},
		{
			Action:      server.startMigrate,
			Name:        "migrate",
			Usage:       "Create or update database tables",
			Category:    "Database",
			Description: `Runs the gorm auto migration for every engagement table.`,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
