package adaptorapi

import (
	"gobot.io/x/gobot"
	"gobot.io/x/gobot/drivers/gpio"
)

type AdaptorConf interface {
	NewAdaptor() (Adaptor, error)
	ValidateConf() error
	GetType() string
	GetID() string
}

func NewAdaptor(config AdaptorConf) (Adaptor, error) {
	return config.NewAdaptor()
}

// Adaptor is the platform I/O boundary used by the motor drivers and
// behaviors. Writes are synchronous and return once the platform has
// accepted them.
type Adaptor interface {
	Attach() error
	Detach() error
	GetGobotAdaptor() gobot.Adaptor
	// SetOutput configures pin as a digital/PWM output.
	SetOutput(pin string) error
	gpio.DigitalWriter
	gpio.PwmWriter
	gpio.DigitalReader
	GetConf() AdaptorConf
	String() string
}

// AdaptorConfEnvelope is used primarly for easy marshalling/unmarshalling
// of various AdaptorConf.
type AdaptorConfEnvelope struct {
	Type string      `json:"type"`
	ID   string      `json:"id"`
	Conf interface{} `json:"conf"`
}
