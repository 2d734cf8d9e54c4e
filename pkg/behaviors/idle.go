package behaviors

import (
	"fmt"

	"github.com/JebManMan/MeBot/common/adaptorapi"
	"github.com/JebManMan/MeBot/common/message"
	"github.com/JebManMan/MeBot/pkg/behavior"
)

// IdleConf implements behaviorapi.BehaviorConf interface
type IdleConf struct {
	//////////////////////////////////////////////////////
	// All behavior confs should define the following fields. //
	//////////////////////////////////////////////////////
	MachineID    string `json:"machine-id"`
	ID           int    `json:"id"`
	BehaviorType string `json:"behavior-type"`
}

func (c IdleConf) ValidateConf() error {
	return validateCommon(c.BehaviorType, Behavior_Idle)
}

func (c IdleConf) GetType() string {
	return c.BehaviorType
}

func (c IdleConf) GetID() int {
	return c.ID
}

func (c IdleConf) GetSubscriptions() []string {
	return nil
}

func (c IdleConf) NewBehavior(a adaptorapi.Adaptor, rcvQ *message.Queue) (behavior.Behavior, error) {
	return &Idle{conf: c}, nil
}

// Idle stops the motors when entered and then does nothing.
type Idle struct {
	conf IdleConf
}

func (b *Idle) Name() string {
	return Behavior_Idle
}

func (b *Idle) OnEnter(r behavior.Robot) {
	logger.Debugf("mode %d: idle", b.conf.ID)
	r.Stop()
}

func (b *Idle) String() string {
	return fmt.Sprintf("idle{id: %d}", b.conf.ID)
}

func validateCommon(got, want string) error {
	if got == "" {
		return fmt.Errorf("no behavior type specified")
	}
	if got != want {
		return fmt.Errorf("invalid behavior type specified, expected %s, but got %s", want, got)
	}
	return nil
}
