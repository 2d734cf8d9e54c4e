package behaviorapi

import (
	"github.com/JebManMan/MeBot/common/adaptorapi"
	"github.com/JebManMan/MeBot/common/message"
	"github.com/JebManMan/MeBot/pkg/behavior"
)

type BehaviorConf interface {
	// NewBehavior builds the behavior. a is the adaptor used for sensor
	// reads and rcvQ receives the message types listed by GetSubscriptions.
	NewBehavior(a adaptorapi.Adaptor, rcvQ *message.Queue) (behavior.Behavior, error)
	ValidateConf() error
	GetType() string
	GetID() int
	GetSubscriptions() []string
}

func NewBehavior(config BehaviorConf, a adaptorapi.Adaptor, rcvQ *message.Queue) (behavior.Behavior, error) {
	return config.NewBehavior(a, rcvQ)
}

// BehaviorConfEnvelope is used primarly for easy marshalling/unmarshalling
// of various BehaviorConf.
type BehaviorConfEnvelope struct {
	Type string      `json:"type"`
	ID   int         `json:"id"`
	Conf interface{} `json:"conf"`
}

// BehaviorsConfEnvelope is used primarly for easy marshalling/unmarshalling
// of 1 or more behaviors.
type BehaviorsConfEnvelope struct {
	MachineID string                 `json:"machine-id"`
	Confs     []BehaviorConfEnvelope `json:"modes"`
}
