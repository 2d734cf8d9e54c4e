package daemon

import (
	"github.com/JebManMan/MeBot/common"
	"github.com/JebManMan/MeBot/pkg/machine"

	env "github.com/caarlos0/env/v6"
)

// EnvConfig holds the settings read from the environment at startup. Flags
// given on the command line take precedence.
type EnvConfig struct {
	ConfigFile   string `env:"MEBOT_CONFIG"`
	Debug        bool   `env:"MEBOT_DEBUG" envDefault:"false"`
	SocketPath   string `env:"MEBOT_SOCKET"`
	TickInterval int    `env:"MEBOT_TICK_INTERVAL"` // milliseconds, overrides the machine conf
}

func LoadEnvConfig() (*EnvConfig, error) {
	e := new(EnvConfig)
	if err := env.Parse(e); err != nil {
		return nil, err
	}
	return e, nil
}

// Config is the configuration used by Daemon.
type Config struct {
	SocketPath string
	Machine    *machine.Conf
}

func NewConfig() *Config {
	return &Config{
		SocketPath: common.MebotSock,
	}
}

// ApplyEnv fills in the settings e carries. Socket and tick interval from
// the environment are used only when not already set.
func (c *Config) ApplyEnv(e *EnvConfig) {
	if e == nil {
		return
	}
	if e.SocketPath != "" && (c.SocketPath == "" || c.SocketPath == common.MebotSock) {
		c.SocketPath = e.SocketPath
	}
	if c.Machine != nil && e.TickInterval > 0 {
		c.Machine.TickInterval = e.TickInterval
	}
}
