package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/JebManMan/MeBot/common/types"
)

// Status sends a GET request to the robot. Returns the active mode and the
// recent status log.
func (cli Client) Status(ctx context.Context) (*types.StatusResponse, error) {
	serverResp, err := cli.R().SetContext(ctx).Get("/status")
	if err != nil {
		return nil, fmt.Errorf("error while connecting to robot: %s", err)
	}

	if serverResp.StatusCode() != http.StatusOK {
		return nil, processErrorBody(serverResp.Body(), nil)
	}

	var resp types.StatusResponse
	if err := json.Unmarshal(serverResp.Body(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
