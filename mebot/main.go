package main

import (
	"os"

	"github.com/JebManMan/MeBot/common"
	daemon "github.com/JebManMan/MeBot/daemon"

	"github.com/codegangsta/cli"
	l "github.com/op/go-logging"
)

var (
	log = l.MustGetLogger("mebot-cli")
)

func newMebotApp() *cli.App {
	app := cli.NewApp()
	app.Name = "mebot"
	app.Usage = "mebot"
	app.Version = common.Version
	app.EnableBashCompletion = true
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "debug, D",
			Usage: "Enable debug messages",
		},
		cli.StringFlag{
			Name:  "host, H",
			Usage: "Robot socket to connect to",
		},
	}
	app.Commands = []cli.Command{
		daemon.CliCommand,
	}
	return app
}

func main() {
	app := newMebotApp()
	app.Before = initEnv
	if err := app.Run(os.Args); err != nil {
		os.Exit(1)
	}
}

func initEnv(ctx *cli.Context) error {

	if ctx.Bool("debug") {
		common.SetupLOG(log, "DEBUG", nil)
	} else {
		common.SetupLOG(log, "INFO", nil)
	}
	return nil
}
