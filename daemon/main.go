package daemon

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/JebManMan/MeBot/common"
	mclient "github.com/JebManMan/MeBot/common/client"
	"github.com/JebManMan/MeBot/daemon/daemon"
	s "github.com/JebManMan/MeBot/daemon/server"
	"github.com/JebManMan/MeBot/pkg/machine"

	"github.com/codegangsta/cli"
	logging "github.com/op/go-logging"
)

var (
	config = daemon.NewConfig()

	// Arguments variables keep in alphabetical order
	configFile string
	shell      bool
	socketPath string

	log = logging.MustGetLogger("mebot-daemon")

	// CliCommand is the command that will be used in main program.
	CliCommand cli.Command
)

const requestTimeout = 10 * time.Second

func init() {
	CliCommand = cli.Command{
		Name:  "robot",
		Usage: "Run and control a robot",
		// Keep Destination alphabetical order
		Subcommands: []cli.Command{
			{
				Name:   "run",
				Usage:  "Run the robot control loop",
				Action: run,
				Flags: []cli.Flag{
					cli.StringFlag{
						Destination: &configFile,
						Name:        "c, config",
						Usage:       "machine configuration file (.json, .yaml)",
					},
					cli.StringFlag{
						Destination: &socketPath,
						Name:        "s",
						Value:       common.MebotSock,
						Usage:       "Sets the socket path to listen for connections",
					},
					cli.BoolFlag{
						Destination: &shell,
						Name:        "shell",
						Usage:       "Start the operator shell",
					},
				},
			},
			{
				Name:   "validate",
				Usage:  "Validate a machine configuration file",
				Action: validate,
				Flags: []cli.Flag{
					cli.StringFlag{
						Destination: &configFile,
						Name:        "c, config",
						Usage:       "machine configuration file (.json, .yaml)",
					},
				},
			},
			{
				Name:   "status",
				Usage:  "Returns the robot current status",
				Action: statusRobot,
			},
			{
				Name:      "mode",
				Usage:     "Select the active mode",
				Action:    modeRobot,
				ArgsUsage: "<mode-id>",
			},
			{
				Name:      "drive",
				Usage:     "Send a drive command to the remote control mode",
				Action:    driveRobot,
				ArgsUsage: "<forward|reverse|spin-left|spin-right|stop|brake|coast> [left [right]]",
			},
		},
	}
}

func newClient(ctx *cli.Context) (*mclient.Client, error) {
	return mclient.NewClient(ctx.GlobalString("host"))
}

func statusRobot(ctx *cli.Context) error {
	client, err := newClient(ctx)
	if err != nil {
		log.Errorf("Error while creating client: %s\n", err)
		return err
	}
	rctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	st, err := client.Status(rctx)
	if err != nil {
		log.Errorf("Status: ERROR - Unable to reach out robot: %s\n", err)
		return err
	}
	fmt.Fprint(ctx.App.Writer, formatStatus(st))
	for _, l := range st.Log {
		fmt.Fprintf(ctx.App.Writer, "  %s\n", l)
	}
	return nil
}

func modeRobot(ctx *cli.Context) error {
	id, err := parseModeArg(ctx.Args())
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	client, err := newClient(ctx)
	if err != nil {
		log.Errorf("Error while creating client: %s\n", err)
		return err
	}
	rctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	if err := client.SetMode(rctx, id); err != nil {
		log.Errorf("Error while selecting mode %d: %s", id, err)
		return err
	}
	log.Infof("Mode %d selected", id)
	return nil
}

func driveRobot(ctx *cli.Context) error {
	req, err := parseDriveArgs(ctx.Args())
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	client, err := newClient(ctx)
	if err != nil {
		log.Errorf("Error while creating client: %s\n", err)
		return err
	}
	rctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	if err := client.Drive(rctx, req); err != nil {
		log.Errorf("Error while sending drive command: %s", err)
		return err
	}
	return nil
}

// loadConfig reads the machine conf named by the flag or MEBOT_CONFIG.
func loadConfig(envConf *daemon.EnvConfig) (*machine.Conf, error) {
	path := configFile
	if path == "" && envConf != nil {
		path = envConf.ConfigFile
	}
	if path == "" {
		return nil, fmt.Errorf("no configuration file specified, use --config or %s", common.EnvConfig)
	}
	mConf, err := machine.LoadConf(path)
	if err != nil {
		return nil, fmt.Errorf("error while loading %s: %s", path, err)
	}
	return mConf, nil
}

func validate(ctx *cli.Context) error {
	envConf, err := daemon.LoadEnvConfig()
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	mConf, err := loadConfig(envConf)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	if err := mConf.Validate(); err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	fmt.Fprintf(ctx.App.Writer, "%s: %s\n", mConf.MachineID, common.Green("OK"))
	return nil
}

func run(ctx *cli.Context) error {
	envConf, err := daemon.LoadEnvConfig()
	if err != nil {
		log.Errorf("Error while reading environment: %s", err)
		return err
	}
	setupLogger(ctx, envConf)

	mConf, err := loadConfig(envConf)
	if err != nil {
		log.Errorf("%s", err)
		return err
	}
	config.Machine = mConf
	config.SocketPath = socketPath
	config.ApplyEnv(envConf)

	d, err := daemon.NewDaemon(config)
	if err != nil {
		log.Errorf("Error while creating daemon: %s", err)
		return err
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := d.Start(sigCtx); err != nil {
		log.Errorf("Error while starting robot: %s", err)
		return err
	}
	defer func() {
		if err := d.Stop(); err != nil {
			log.Errorf("Error while stopping robot: %s", err)
		}
	}()

	server, err := s.NewServer(config.SocketPath, d)
	if err != nil {
		log.Errorf("Error while creating server: %s", err)
		return err
	}
	defer server.Stop()

	if shell {
		sh := newShell(d, d.StatusLog)
		go func() {
			sh.Run()
			stop()
		}()
		defer sh.Close()
	}

	return server.Start(sigCtx)
}

func setupLogger(ctx *cli.Context, envConf *daemon.EnvConfig) {
	var logWriter = ctx.App.Writer
	if logWriter == nil {
		logWriter = os.Stderr
	}
	if ctx.GlobalBool("debug") || (envConf != nil && envConf.Debug) {
		common.SetupLOG(log, "DEBUG", logWriter)
		log.Info("Debuging is enabled")
	} else {
		common.SetupLOG(log, "INFO", logWriter)
	}
}
