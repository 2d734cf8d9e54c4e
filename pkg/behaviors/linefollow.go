package behaviors

import (
	"fmt"

	"github.com/JebManMan/MeBot/common"
	"github.com/JebManMan/MeBot/common/adaptorapi"
	"github.com/JebManMan/MeBot/common/message"
	"github.com/JebManMan/MeBot/pkg/behavior"
)

// LineFollowConf implements behaviorapi.BehaviorConf interface
type LineFollowConf struct {
	//////////////////////////////////////////////////////
	// All behavior confs should define the following fields. //
	//////////////////////////////////////////////////////
	MachineID    string `json:"machine-id"`
	ID           int    `json:"id"`
	BehaviorType string `json:"behavior-type"`

	////////////////////////////////////////////
	// The fields below are behavior specific. //
	////////////////////////////////////////////
	LeftSensorPin  string `json:"left-sensor-pin"`
	RightSensorPin string `json:"right-sensor-pin"`
	LineLevel      int    `json:"line-level"` // level a sensor reads over the line
	Speed          int    `json:"speed"`      // duty when driving straight
	TurnSpeed      int    `json:"turn-speed"` // duty when correcting
}

func (c LineFollowConf) ValidateConf() error {
	if err := validateCommon(c.BehaviorType, Behavior_LineFollow); err != nil {
		return err
	}
	if c.LeftSensorPin == "" || c.RightSensorPin == "" {
		return fmt.Errorf("both left-sensor-pin and right-sensor-pin must be specified")
	}
	if c.LineLevel != 0 && c.LineLevel != 1 {
		return fmt.Errorf("line-level must be 0 or 1, got %d", c.LineLevel)
	}
	if _, err := common.DutyFromInt(c.Speed); err != nil {
		return fmt.Errorf("speed: %s", err)
	}
	if _, err := common.DutyFromInt(c.TurnSpeed); err != nil {
		return fmt.Errorf("turn-speed: %s", err)
	}
	return nil
}

func (c LineFollowConf) GetType() string {
	return c.BehaviorType
}

func (c LineFollowConf) GetID() int {
	return c.ID
}

func (c LineFollowConf) GetSubscriptions() []string {
	return nil
}

func (c LineFollowConf) NewBehavior(a adaptorapi.Adaptor, rcvQ *message.Queue) (behavior.Behavior, error) {
	if a == nil {
		return nil, fmt.Errorf("mode %d: line follow needs an adaptor to read sensors", c.ID)
	}
	speed, _ := common.DutyFromInt(c.Speed)
	turn, _ := common.DutyFromInt(c.TurnSpeed)
	return &LineFollow{conf: c, adaptor: a, speed: speed, turn: turn}, nil
}

// LineFollow steers along a line seen by two digital reflectance sensors
// mounted either side of it.
type LineFollow struct {
	conf    LineFollowConf
	adaptor adaptorapi.Adaptor
	speed   byte
	turn    byte
}

func (b *LineFollow) Name() string {
	return Behavior_LineFollow
}

func (b *LineFollow) OnEnter(r behavior.Robot) {
	r.Stop()
}

func (b *LineFollow) OnTick(r behavior.Robot) {
	left, err := b.onLine(b.conf.LeftSensorPin)
	if err != nil {
		logger.Warningf("mode %d: %s", b.conf.ID, err)
		r.Stop()
		return
	}
	right, err := b.onLine(b.conf.RightSensorPin)
	if err != nil {
		logger.Warningf("mode %d: %s", b.conf.ID, err)
		r.Stop()
		return
	}

	switch {
	case left && right:
		r.DriveForward(b.speed, b.speed)
	case left:
		r.SpinLeft(b.turn, b.turn)
	case right:
		r.SpinRight(b.turn, b.turn)
	default:
		r.Stop()
	}
}

func (b *LineFollow) onLine(pin string) (bool, error) {
	v, err := b.adaptor.DigitalRead(pin)
	if err != nil {
		return false, fmt.Errorf("reading sensor pin %s failed: %s", pin, err)
	}
	return v == b.conf.LineLevel, nil
}

func (b *LineFollow) String() string {
	return fmt.Sprintf("line-follow{id: %d, left: %s, right: %s}", b.conf.ID, b.conf.LeftSensorPin, b.conf.RightSensorPin)
}
