package backend

import (
	"context"

	"github.com/JebManMan/MeBot/common/types"
)

type robotBackend interface {
	Status(ctx context.Context) (*types.StatusResponse, error)
	SetMode(ctx context.Context, id int) error
	Drive(ctx context.Context, req types.DriveRequest) error
}

type control interface {
	Ping() (*types.PingResponse, error)
}

// interface for both client and daemon.
type MebotBackend interface {
	robotBackend
	control
}

// MebotDaemonBackend is the interface for daemon only.
type MebotDaemonBackend interface {
	MebotBackend
}
