package behaviors

import (
	"fmt"

	"github.com/JebManMan/MeBot/common"
	"github.com/JebManMan/MeBot/common/adaptorapi"
	"github.com/JebManMan/MeBot/common/message"
	"github.com/JebManMan/MeBot/common/types"
	"github.com/JebManMan/MeBot/pkg/behavior"
)

// RemoteControlConf implements behaviorapi.BehaviorConf interface
type RemoteControlConf struct {
	//////////////////////////////////////////////////////
	// All behavior confs should define the following fields. //
	//////////////////////////////////////////////////////
	MachineID    string `json:"machine-id"`
	ID           int    `json:"id"`
	BehaviorType string `json:"behavior-type"`

	////////////////////////////////////////////
	// The fields below are behavior specific. //
	////////////////////////////////////////////
	StopAfterTicks int `json:"stop-after-ticks"` // stop when no command arrived for this many ticks, 0 disables
}

func (c RemoteControlConf) ValidateConf() error {
	if err := validateCommon(c.BehaviorType, Behavior_RemoteControl); err != nil {
		return err
	}
	if c.StopAfterTicks < 0 {
		return fmt.Errorf("stop-after-ticks must not be negative, got %d", c.StopAfterTicks)
	}
	return nil
}

func (c RemoteControlConf) GetType() string {
	return c.BehaviorType
}

func (c RemoteControlConf) GetID() int {
	return c.ID
}

func (c RemoteControlConf) GetSubscriptions() []string {
	return []string{common.MessageType_CmdDrive}
}

func (c RemoteControlConf) NewBehavior(a adaptorapi.Adaptor, rcvQ *message.Queue) (behavior.Behavior, error) {
	if rcvQ == nil {
		return nil, fmt.Errorf("mode %d: remote control needs a command queue", c.ID)
	}
	return &RemoteControl{conf: c, cmdQ: rcvQ}, nil
}

// RemoteControl applies drive commands taken from its queue. Commands
// queued while another mode was active are discarded on entry.
type RemoteControl struct {
	conf      RemoteControlConf
	cmdQ      *message.Queue
	idleTicks int
	stopped   bool
}

func (b *RemoteControl) Name() string {
	return Behavior_RemoteControl
}

func (b *RemoteControl) OnEnter(r behavior.Robot) {
	if n := b.drain(nil); n > 0 {
		logger.Debugf("mode %d: dropped %d stale drive commands", b.conf.ID, n)
	}
	b.idleTicks = 0
	b.stopped = true
	r.Stop()
}

func (b *RemoteControl) OnTick(r behavior.Robot) {
	var latest *message.DriveData
	b.drain(func(d message.DriveData) { latest = &d })
	if latest != nil {
		b.idleTicks = 0
		b.stopped = false
		b.apply(r, *latest)
		return
	}
	b.idleTicks++
	if b.conf.StopAfterTicks > 0 && !b.stopped && b.idleTicks >= b.conf.StopAfterTicks {
		logger.Infof("mode %d: no drive command for %d ticks, stopping", b.conf.ID, b.idleTicks)
		b.stopped = true
		r.Stop()
	}
}

// drain takes every pending message off the queue without blocking.
func (b *RemoteControl) drain(fn func(message.DriveData)) int {
	n := 0
	for {
		msg, ok := b.cmdQ.TryGet()
		if !ok {
			return n
		}
		n++
		d, isDrive := msg.Data.(message.DriveData)
		switch {
		case !isDrive:
			logger.Warningf("mode %d: ignoring message %v with payload %T", b.conf.ID, msg.ID, msg.Data)
		case fn != nil:
			fn(d)
		}
		b.cmdQ.Done(msg)
	}
}

func (b *RemoteControl) apply(r behavior.Robot, d message.DriveData) {
	switch d.Command {
	case types.DriveForward:
		r.DriveForward(d.Left, d.Right)
	case types.DriveReverse:
		r.DriveReverse(d.Left, d.Right)
	case types.DriveSpinLeft:
		r.SpinLeft(d.Left, d.Right)
	case types.DriveSpinRight:
		r.SpinRight(d.Left, d.Right)
	case types.DriveStop:
		r.Stop()
	case types.DriveBrake:
		r.Brake()
	case types.DriveCoast:
		r.Coast()
	default:
		logger.Warningf("mode %d: %s: %q", b.conf.ID, types.ErrUnknownDriveCommand, d.Command)
		return
	}
	if d.Command == types.DriveStop || d.Command == types.DriveBrake || d.Command == types.DriveCoast {
		b.stopped = true
	}
}

func (b *RemoteControl) String() string {
	return fmt.Sprintf("remote-control{id: %d, queue: %s}", b.conf.ID, b.cmdQ.ID())
}
