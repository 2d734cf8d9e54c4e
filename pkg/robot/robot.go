// Package robot is the control loop of a two-motor differential drive
// robot: it owns the motors and the mode registry and dispatches ticks to
// the active behavior.
package robot

import (
	"fmt"

	"github.com/JebManMan/MeBot/common/types"
	"github.com/JebManMan/MeBot/pkg/behavior"
	"github.com/JebManMan/MeBot/pkg/drivers"

	multierror "github.com/hashicorp/go-multierror"
	logging "github.com/op/go-logging"
	"gobot.io/x/gobot"
)

var (
	logger = logging.MustGetLogger("mebot-robot")
)

// DefaultSpeed is the full duty cycle.
const DefaultSpeed byte = 255

// Robot must only be used from a single goroutine. See Loop for driving it
// from a ticker while other goroutines request changes.
type Robot struct {
	left    *drivers.Motor
	right   *drivers.Motor
	devices *gobot.Devices

	modes        *behavior.Registry
	activeID     int
	lastActiveID int
}

// New returns a robot with an empty registry. Both active and last active
// mode start at 0.
func New(left, right *drivers.Motor) *Robot {
	return &Robot{
		left:    left,
		right:   right,
		devices: &gobot.Devices{left, right},
		modes:   behavior.NewRegistry(),
	}
}

// Setup starts both motor devices, configuring their pins as outputs.
func (r *Robot) Setup() error {
	var result error
	for _, d := range *r.devices {
		logger.Debugf("starting device %s", d.Name())
		if err := d.Start(); err != nil {
			result = multierror.Append(result, fmt.Errorf("device %s: %s", d.Name(), err))
		}
	}
	return result
}

// Halt stops both motors.
func (r *Robot) Halt() error {
	var result error
	for _, d := range *r.devices {
		if err := d.Halt(); err != nil {
			result = multierror.Append(result, fmt.Errorf("device %s: %s", d.Name(), err))
		}
	}
	return result
}

func (r *Robot) Left() *drivers.Motor  { return r.left }
func (r *Robot) Right() *drivers.Motor { return r.right }

func (r *Robot) Register(e behavior.Entry) {
	r.modes.Register(e)
}

// AddMode registers b under id.
func (r *Robot) AddMode(id int, b behavior.Behavior) {
	r.modes.Register(behavior.NewEntry(id, b))
}

// Modes lists the registered modes in registration order.
func (r *Robot) Modes() []types.ModeInfo {
	var modes []types.ModeInfo
	for _, e := range r.modes.Entries() {
		modes = append(modes, types.ModeInfo{ID: e.ID(), Name: e.Name()})
	}
	return modes
}

// SetMode selects the mode for the following ticks. Any id is accepted; a
// tick with no matching mode does nothing.
func (r *Robot) SetMode(id int) {
	r.activeID = id
}

func (r *Robot) ActiveMode() int     { return r.activeID }
func (r *Robot) LastActiveMode() int { return r.lastActiveID }

// Tick runs one control step. On the first tick after a mode change the
// entry action runs before the repeat action. A mode change requested by a
// hook is seen on the next tick.
func (r *Robot) Tick() {
	id := r.activeID
	e, found := r.modes.FindByID(id)
	if !found {
		logger.Debugf("no mode registered with id %d", id)
		return
	}
	if id != r.lastActiveID {
		logger.Debugf("entering mode %d (%s)", id, e.Name())
		e.Enter(r)
		r.lastActiveID = id
	}
	logger.Debugf("tick mode %d (%s)", id, e.Name())
	e.Tick(r)
}

func (r *Robot) DriveForward(left, right byte) {
	r.right.Forward(right)
	r.left.Forward(left)
}

func (r *Robot) DriveReverse(left, right byte) {
	r.left.Reverse(left)
	r.right.Reverse(right)
}

// SpinLeft turns in place counter-clockwise.
func (r *Robot) SpinLeft(left, right byte) {
	r.left.Reverse(left)
	r.right.Forward(right)
}

// SpinRight turns in place clockwise.
func (r *Robot) SpinRight(left, right byte) {
	r.left.Forward(left)
	r.right.Reverse(right)
}

func (r *Robot) Stop() {
	r.left.Stop()
	r.right.Stop()
}

// Brake actively brakes both motors. On plain IN/IN motors this does nothing.
func (r *Robot) Brake() {
	r.left.Brake()
	r.right.Brake()
}

func (r *Robot) Coast() {
	r.left.Coast()
	r.right.Coast()
}

// Drive applies a named drive command, as sent by the control server.
func (r *Robot) Drive(command string, left, right byte) error {
	switch command {
	case types.DriveForward:
		r.DriveForward(left, right)
	case types.DriveReverse:
		r.DriveReverse(left, right)
	case types.DriveSpinLeft:
		r.SpinLeft(left, right)
	case types.DriveSpinRight:
		r.SpinRight(left, right)
	case types.DriveStop:
		r.Stop()
	case types.DriveBrake:
		r.Brake()
	case types.DriveCoast:
		r.Coast()
	default:
		return fmt.Errorf("%w: %q", types.ErrUnknownDriveCommand, command)
	}
	return nil
}

func (r *Robot) String() string {
	return fmt.Sprintf("robot left=%s right=%s mode=%d last=%d", r.left, r.right, r.activeID, r.lastActiveID)
}
