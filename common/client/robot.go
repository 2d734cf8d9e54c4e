package client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/JebManMan/MeBot/common/types"
)

// SetMode sends a PUT request selecting mode id.
func (cli Client) SetMode(ctx context.Context, id int) error {

	logger.Debugf("PUT /mode/%d", id)

	serverResp, err := cli.R().SetContext(ctx).Put("/mode/" + strconv.Itoa(id))
	if err != nil {
		return fmt.Errorf("error while connecting to robot: %s", err)
	}

	if serverResp.StatusCode() != http.StatusOK &&
		serverResp.StatusCode() != http.StatusAccepted {
		return processErrorBody(serverResp.Body(), id)
	}
	return nil
}

// Drive sends a POST request with a drive command.
func (cli Client) Drive(ctx context.Context, req types.DriveRequest) error {

	logger.Debugf("POST /drive %+v", req)

	serverResp, err := cli.R().SetContext(ctx).SetBody(req).Post("/drive")
	if err != nil {
		return fmt.Errorf("error while connecting to robot: %s", err)
	}

	if serverResp.StatusCode() != http.StatusOK &&
		serverResp.StatusCode() != http.StatusAccepted {
		return processErrorBody(serverResp.Body(), req.Command)
	}
	return nil
}
