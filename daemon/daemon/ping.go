package daemon

import (
	"github.com/JebManMan/MeBot/common/types"
)

func (d *Daemon) Ping() (*types.PingResponse, error) {
	logger.Debugf("Received Ping Request...")
	return d.machine.Ping(), nil
}
