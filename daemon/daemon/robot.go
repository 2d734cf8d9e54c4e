package daemon

import (
	"context"

	"github.com/JebManMan/MeBot/common/types"
)

func (d *Daemon) Status(ctx context.Context) (*types.StatusResponse, error) {
	return d.machine.GetStatus(ctx)
}

func (d *Daemon) SetMode(ctx context.Context, id int) error {
	logger.Infof("mode %d requested", id)
	return d.machine.SetMode(ctx, id)
}

func (d *Daemon) Drive(ctx context.Context, req types.DriveRequest) error {
	logger.Debugf("drive %s %d %d", req.Command, req.Left, req.Right)
	return d.machine.Drive(req)
}
