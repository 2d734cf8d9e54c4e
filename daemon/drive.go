package daemon

import (
	"fmt"
	"strconv"

	"github.com/JebManMan/MeBot/common"
	"github.com/JebManMan/MeBot/common/types"
	"github.com/JebManMan/MeBot/pkg/robot"
)

// parseDriveArgs turns COMMAND [LEFT [RIGHT]] into a drive request. LEFT
// defaults to full speed and RIGHT to LEFT.
func parseDriveArgs(args []string) (types.DriveRequest, error) {
	if len(args) == 0 {
		return types.DriveRequest{}, fmt.Errorf("no drive command specified")
	}
	if len(args) > 3 {
		return types.DriveRequest{}, fmt.Errorf("too many arguments, expected COMMAND [LEFT [RIGHT]]")
	}
	req := types.DriveRequest{Command: args[0]}
	if !types.ValidDriveCommand(req.Command) {
		return req, fmt.Errorf("%w: %q", types.ErrUnknownDriveCommand, req.Command)
	}

	left := robot.DefaultSpeed
	if len(args) > 1 {
		d, err := common.ParseDuty(args[1])
		if err != nil {
			return req, fmt.Errorf("left: %s", err)
		}
		left = d
	}
	right := left
	if len(args) > 2 {
		d, err := common.ParseDuty(args[2])
		if err != nil {
			return req, fmt.Errorf("right: %s", err)
		}
		right = d
	}
	req.Left, req.Right = int(left), int(right)
	return req, nil
}

func parseModeArg(args []string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("expected exactly one mode id")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid mode id %q", args[0])
	}
	return id, nil
}

func formatStatus(st *types.StatusResponse) string {
	color := common.StatusColor(st.Status)
	s := fmt.Sprintf("Machine:\t%s\nStatus:\t\t%s\nRunning:\t%t\nActive mode:\t%d\nLast mode:\t%d\nModes:\n",
		st.MachineID, color(st.Status), st.Running, st.ActiveMode, st.LastActiveMode)
	for _, m := range st.Modes {
		marker := " "
		if m.ID == st.ActiveMode {
			marker = "*"
		}
		s += fmt.Sprintf("  %s %d\t%s\n", marker, m.ID, m.Name)
	}
	return s
}
