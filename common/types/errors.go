package types

import "errors"

var ErrUnknownAdaptorType = errors.New("unknown adaptor type")
var ErrUnknownBehaviorType = errors.New("unknown behavior type")
var ErrUnknownTopology = errors.New("unknown motor topology")
var ErrUnknownDriveCommand = errors.New("unknown drive command")
var ErrLoopStopped = errors.New("control loop is not running")

// ServerError is the body returned by the control server on failures.
type ServerError struct {
	Code int    `json:"code"`
	Text string `json:"text"`
}

func (e ServerError) Error() string {
	return e.Text
}
