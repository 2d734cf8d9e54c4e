package common

var (
	// Version number needs to be var since we override the value when building
	Version = "dev"
)

const (
	// MebotPath is the path where mebot operational files are kept.
	MebotPath = "/var/run/mebot"
	// MebotSock is the socket for the communication between the robot process and client.
	MebotSock = MebotPath + "/mebot.sock"

	// GroupFilePath is the unix group file path.
	GroupFilePath = "/etc/group"
	// mebot's unix group name.
	MebotGroupName = "mebot"

	// RFC3339Milli is the RFC3339 with milliseconds for the default timestamp format
	// log files.
	RFC3339Milli = "2006-01-02T15:04:05.000Z07:00"

	// DefaultTickInterval is the control loop period in milliseconds.
	DefaultTickInterval = 20
)

// Environment variables read at startup.
const (
	EnvConfig       = "MEBOT_CONFIG"
	EnvDebug        = "MEBOT_DEBUG"
	EnvSocket       = "MEBOT_SOCKET"
	EnvTickInterval = "MEBOT_TICK_INTERVAL"
)

const (
	MessageType_CmdDrive = "cmd-drive"
)
