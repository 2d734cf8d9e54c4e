package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"path"

	"github.com/JebManMan/MeBot/common"
	"github.com/JebManMan/MeBot/common/backend"

	logging "github.com/op/go-logging"
)

var (
	logger = logging.MustGetLogger("mebot-server")
)

// Server listens for HTTP requests and sends them to our router.
type Server interface {
	Start(ctx context.Context) error
	Stop() error
}

type server struct {
	listener   net.Listener
	socketPath string
	router     Router
}

// NewServer returns a new Server that listens for requests in socketPath and
// sends them to daemon.
func NewServer(socketPath string, daemon backend.MebotDaemonBackend) (Server, error) {
	socketDir := path.Dir(socketPath)
	if err := os.MkdirAll(socketDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create '%s' directory: %s", socketDir, err)
	}

	if err := os.Remove(socketPath); !os.IsNotExist(err) && err != nil {
		return nil, fmt.Errorf("failed to remove older listener socket: %s", err)
	}

	router := NewRouter(daemon)
	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create listen socket: %s", err)
	}
	if os.Getuid() == 0 {
		gid, err := common.GetGroupIDByName(common.MebotGroupName)
		if err == nil {
			if err := os.Chown(socketPath, 0, gid); err != nil {
				return nil, fmt.Errorf("failed while setting up %s's group ID in %q: %s", common.MebotGroupName, socketPath, err)
			}
		} else {
			logger.Warningf("Group %s not found: %s", common.MebotGroupName, err)
		}
		if err := os.Chmod(socketPath, 0660); err != nil {
			return nil, fmt.Errorf("failed while setting up %s's file permissions in %q: %s", common.MebotGroupName, socketPath, err)
		}
	}

	return server{listener, socketPath, router}, nil
}

// Start serves HTTP requests until ctx is done.
func (d server) Start(ctx context.Context) error {
	srv := &http.Server{Handler: d.router}
	errCh := make(chan error, 1)
	go func() {
		logger.Infof("Listening on %q", d.socketPath)
		errCh <- srv.Serve(d.listener)
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	logger.Infof("Shutting down the server...")
	if err := srv.Shutdown(context.Background()); err != nil {
		return err
	}
	logger.Infof("Server gracefully stopped.")
	return nil
}

// Stop stops the HTTP listener and removes the socket.
func (d server) Stop() error {
	err := d.listener.Close()
	if rmErr := os.Remove(d.socketPath); rmErr != nil && !os.IsNotExist(rmErr) {
		logger.Warningf("could not remove socket %s: %s", d.socketPath, rmErr)
	}
	return err
}
