package main

import "github.com/urfave/cli/v2"

var configFlag = &cli.StringFlag{
	Name:    "config",
	Aliases: []string{"c"},
	Usage:   "Path of the TOML config file, environment variables override it",
	EnvVars: []string{"CONFIG_FILE"},
}

func (s *srv) loadApp() {
	s.app = cli.NewApp()
	s.app.Action = cli.ShowAppHelp
	s.app.Name = "Sponsornet"
	s.app.Usage = "Sponsor network NFT commission backend"
	s.app.Flags = []cli.Flag{configFlag}
	s.app.Before = s.loadConfig
	s.app.Commands = []*cli.Command{
		{
			Action:      s.startApi,
			Name:        "api",
			Usage:       "Start service api",
			Category:    "Api",
			Description: `Used to start the http api, including the admin commission trigger.`,
		},
		{
			Action:      s.startCron,
			Name:        "cron",
			Usage:       "Start cron jobs",
			Category:    "Worker",
			Description: `Used to run the daily commission processor once a day.`,
		},
		{
			Action:      s.startMigrate,
			Name:        "migrate",
			Usage:       "Migrate database schema",
			Category:    "Database",
			Description: `Used to create or update the tables of the service.`,
		},
		{
			Action:   s.generateToken,
			Name:     "token",
			Usage:    "Generate an access token",
			Category: "Tool",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "user",
					Usage:    "User id stored in the token",
					Required: true,
				},
				&cli.DurationFlag{
					Name:  "expiration",
					Usage: "Token lifetime, defaults to the configured access token expiration",
				},
			},
			Description: `Used by operators to get an admin token for the commission endpoints.`,
		},
	}
}
