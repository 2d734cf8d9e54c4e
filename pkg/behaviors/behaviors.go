package behaviors

import (
	"encoding/json"
	"fmt"

	"github.com/JebManMan/MeBot/common/behaviorapi"
	"github.com/JebManMan/MeBot/common/types"

	logging "github.com/op/go-logging"
)

var (
	logger = logging.MustGetLogger("mebot-behaviors")
)

// List of all behaviors
const (
	Behavior_Idle          = "idle"
	Behavior_RemoteControl = "remote-control"
	Behavior_LineFollow    = "line-follow"
)

// NewBehaviorConf is a util method used to get behavior conf of a particular
// type. The idea is to localize behavior creation code to this package, so
// that each time a new behavior is added, the below code can be updated.
func NewBehaviorConf(behaviorType string, id int, machineID string) (behaviorapi.BehaviorConf, error) {
	switch behaviorType {
	case Behavior_Idle:
		return &IdleConf{
			MachineID:    machineID,
			BehaviorType: behaviorType,
			ID:           id,
		}, nil
	case Behavior_RemoteControl:
		return &RemoteControlConf{
			MachineID:    machineID,
			BehaviorType: behaviorType,
			ID:           id,
		}, nil
	case Behavior_LineFollow:
		return &LineFollowConf{
			MachineID:    machineID,
			BehaviorType: behaviorType,
			ID:           id,
			LineLevel:    1,
			Speed:        150,
			TurnSpeed:    120,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", types.ErrUnknownBehaviorType, behaviorType)
	}
}

func NewBehaviorConfs(env behaviorapi.BehaviorsConfEnvelope) ([]behaviorapi.BehaviorConf, error) {
	var confs []behaviorapi.BehaviorConf
	for i, bEnv := range env.Confs {
		bConf, err := NewBehaviorConf(bEnv.Type, bEnv.ID, env.MachineID)
		if err != nil {
			return nil, fmt.Errorf("mode %d: %w", i, err)
		}
		if bEnv.Conf != nil {
			// Conf is a map[string]interface{} at this point. In order to
			// unmarshal into the typed conf, we have to put it back into json.
			bytes, err := json.Marshal(bEnv.Conf)
			if err != nil {
				return nil, fmt.Errorf("marshal of behavior conf %d (into []byte) failed: %s", i, err)
			}
			if err := json.Unmarshal(bytes, bConf); err != nil {
				return nil, fmt.Errorf("unmarshal of %s failed: %s", bEnv.Type, err)
			}
		}
		if err := bConf.ValidateConf(); err != nil {
			return nil, fmt.Errorf("mode %d (%s): %s", bEnv.ID, bEnv.Type, err)
		}
		confs = append(confs, bConf)
	}
	return confs, nil
}
