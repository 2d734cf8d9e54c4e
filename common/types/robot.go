package types

type PingResponse struct {
	MachineID string `json:"machine-id"`
	Version   string `json:"version"`
}

// ModeInfo describes one registered behavior.
type ModeInfo struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type StatusResponse struct {
	MachineID      string     `json:"machine-id"`
	Running        bool       `json:"running"`
	ActiveMode     int        `json:"active-mode"`
	LastActiveMode int        `json:"last-active-mode"`
	Modes          []ModeInfo `json:"modes"`
	Status         string     `json:"status"`
	Log            []string   `json:"log,omitempty"`
}

// Drive commands understood by DriveRequest.
const (
	DriveForward   = "forward"
	DriveReverse   = "reverse"
	DriveSpinLeft  = "spin-left"
	DriveSpinRight = "spin-right"
	DriveStop      = "stop"
	DriveBrake     = "brake"
	DriveCoast     = "coast"
)

// DriveRequest is a differential drive command with per side duty cycles.
type DriveRequest struct {
	Command string `json:"command"`
	Left    int    `json:"left"`
	Right   int    `json:"right"`
}

func ValidDriveCommand(cmd string) bool {
	switch cmd {
	case DriveForward, DriveReverse, DriveSpinLeft, DriveSpinRight,
		DriveStop, DriveBrake, DriveCoast:
		return true
	}
	return false
}
