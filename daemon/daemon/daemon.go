package daemon

import (
	"context"
	"fmt"

	"github.com/JebManMan/MeBot/pkg/machine"

	logging "github.com/op/go-logging"
)

var logger = logging.MustGetLogger("mebot-daemon")

// Daemon serves one machine to the control server and the operator shell.
type Daemon struct {
	conf    *Config
	machine *machine.Machine
}

// NewDaemon creates and returns a new Daemon with the parameters set in c.
func NewDaemon(c *Config) (*Daemon, error) {
	if c == nil {
		return nil, fmt.Errorf("Configuration is nil")
	}
	if c.Machine == nil {
		return nil, fmt.Errorf("no machine configuration specified")
	}
	mh, err := machine.NewMachine(c.Machine)
	if err != nil {
		return nil, fmt.Errorf("error while creating machine: %s", err)
	}
	return &Daemon{conf: c, machine: mh}, nil
}

// Start brings the machine up. It stops when ctx is done or on Stop.
func (d *Daemon) Start(ctx context.Context) error {
	logger.Infof("starting machine %s", d.machine.MachineID)
	return d.machine.Start(ctx)
}

func (d *Daemon) Stop() error {
	logger.Infof("stopping machine %s", d.machine.MachineID)
	return d.machine.Stop()
}

// Done is closed when the machine's control loop exits.
func (d *Daemon) Done() <-chan struct{} {
	return d.machine.Done()
}

// StatusLog returns the machine status log, newest entry first.
func (d *Daemon) StatusLog() string {
	return d.machine.Status.DumpLog()
}
