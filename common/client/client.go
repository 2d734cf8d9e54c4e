package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/JebManMan/MeBot/common"
	"github.com/JebManMan/MeBot/common/types"

	"github.com/go-resty/resty/v2"
	logging "github.com/op/go-logging"
)

var (
	logger = logging.MustGetLogger("mebot-client")
)

// Client talks to a running robot over its unix socket.
type Client struct {
	*resty.Client
}

// NewClient returns a client for the robot listening on host, a unix socket
// path. An empty host uses common.MebotSock.
func NewClient(host string) (*Client, error) {
	if host == "" {
		host = common.MebotSock
	}
	transport := &http.Transport{
		DialContext: func(ctx context.Context, _, _ string) (net.Conn, error) {
			var d net.Dialer
			return d.DialContext(ctx, "unix", host)
		},
	}
	rc := resty.New().
		SetTransport(transport).
		SetBaseURL("http://mebot").
		SetTimeout(10*time.Second).
		SetHeader("Content-Type", "application/json")
	return &Client{rc}, nil
}

func processErrorBody(serverResp []byte, i interface{}) error {
	var sErr types.ServerError
	if err := json.Unmarshal(serverResp, &sErr); err != nil || sErr.Text == "" {
		if i != nil {
			return fmt.Errorf("error retrieving server body response for %v: %s", i, string(serverResp))
		}
		return fmt.Errorf("error retrieving server body response: %s", string(serverResp))
	}
	return sErr
}
