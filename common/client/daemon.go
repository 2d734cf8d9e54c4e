package client

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/JebManMan/MeBot/common/types"
)

// Ping sends a GET request to the robot.
func (cli Client) Ping() (*types.PingResponse, error) {
	serverResp, err := cli.R().Get("/ping")
	if err != nil {
		return nil, fmt.Errorf("error while connecting to robot: %s", err)
	}

	if serverResp.StatusCode() != http.StatusOK {
		return nil, processErrorBody(serverResp.Body(), nil)
	}

	var resp types.PingResponse
	if err := json.Unmarshal(serverResp.Body(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
