package message

import (
	"github.com/JebManMan/MeBot/common"
)

type MessageID struct {
	Type    string
	SubType string
	Version int // Version can be used serialize messages of the same type+subtype in a queue. If two messages have the same ID, then any existing message in the queue will be overwritten.
}

// Message is the basic unit of data passed between the control surfaces
// and the behaviors running on the robot.
// A message is uniquely identified by the tuple = {Type, SubType, Version}
type Message struct {
	ID   MessageID
	Data interface{}
}

// DriveData is the payload of a MessageType_CmdDrive message.
type DriveData struct {
	Command string
	Left    byte
	Right   byte
}

// DriveMessageID is shared by all drive commands, so a queue only ever holds
// the most recent one.
var DriveMessageID = MessageID{Type: common.MessageType_CmdDrive}

func NewDriveMessage(command string, left, right byte) Message {
	return Message{
		ID:   DriveMessageID,
		Data: DriveData{Command: command, Left: left, Right: right},
	}
}
