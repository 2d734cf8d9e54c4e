package drivers

import (
	"fmt"

	"github.com/JebManMan/MeBot/common/adaptorapi"

	multierror "github.com/hashicorp/go-multierror"
	"gobot.io/x/gobot"
)

// MotorConf describes how one motor is wired to the adaptor.
type MotorConf struct {
	ForwardPin string `json:"forward-pin"` // IN1 or ENABLE
	ReversePin string `json:"reverse-pin"` // IN2 or PHASE
	Topology   string `json:"topology"`
}

func (c MotorConf) ValidateConf() error {
	if c.ForwardPin == "" {
		return fmt.Errorf("no forward pin specified")
	}
	if c.ReversePin == "" {
		return fmt.Errorf("no reverse pin specified")
	}
	if c.ForwardPin == c.ReversePin {
		return fmt.Errorf("forward and reverse pin must differ, both are %s", c.ForwardPin)
	}
	_, err := ParseTopology(c.Topology)
	return err
}

// NewMotor builds the motor described by c on adaptor a.
func (c MotorConf) NewMotor(name string, a adaptorapi.Adaptor) (*Motor, error) {
	if err := c.ValidateConf(); err != nil {
		return nil, fmt.Errorf("motor %s: %s", name, err)
	}
	t, _ := ParseTopology(c.Topology)
	m := NewMotor(a, c.ForwardPin, c.ReversePin, t)
	m.SetName(name)
	return m, nil
}

// Motor drives one DC motor through two adaptor pins. It implements the
// gobot.Driver interface: Start configures the pins and Halt stops the motor.
//
// Commands never return errors. A failed write is logged and the command
// carries on with the next pin.
type Motor struct {
	name       string
	connection adaptorapi.Adaptor
	forwardPin string
	reversePin string
	topology   Topology
	duty       byte
}

func NewMotor(a adaptorapi.Adaptor, forwardPin, reversePin string, t Topology) *Motor {
	return &Motor{
		name:       gobot.DefaultName("Motor"),
		connection: a,
		forwardPin: forwardPin,
		reversePin: reversePin,
		topology:   t,
	}
}

func (m *Motor) Name() string                 { return m.name }
func (m *Motor) SetName(n string)             { m.name = n }
func (m *Motor) Connection() gobot.Connection { return m.connection.GetGobotAdaptor() }

// Start: configures both pins as outputs.
func (m *Motor) Start() error {
	var result error
	for _, pin := range []string{m.forwardPin, m.reversePin} {
		if err := m.connection.SetOutput(pin); err != nil {
			result = multierror.Append(result, fmt.Errorf("motor %s: could not set pin %s as output: %s", m.name, pin, err))
		}
	}
	return result
}

// Halt: stops the motor.
func (m *Motor) Halt() error {
	m.Stop()
	return nil
}

// Setup configures both pins as outputs. It is safe to call more than once.
func (m *Motor) Setup() {
	if err := m.Start(); err != nil {
		logger.Warningf("%s", err)
	}
}

func (m *Motor) Topology() Topology { return m.topology }
func (m *Motor) ForwardPin() string { return m.forwardPin }
func (m *Motor) ReversePin() string { return m.reversePin }

// Duty returns the last commanded duty cycle.
func (m *Motor) Duty() byte { return m.duty }

// Stop de-asserts both pins.
func (m *Motor) Stop() {
	m.digitalWrite(m.reversePin, low)
	m.digitalWrite(m.forwardPin, low)
	m.duty = 0
}

// Forward drives the motor forward with the given duty cycle. Every
// topology selects forward by holding the reverse pin LOW.
func (m *Motor) Forward(duty byte) {
	m.digitalWrite(m.reversePin, low)
	m.pwmWrite(m.forwardPin, duty)
	m.duty = duty
}

// Reverse drives the motor backwards with the given duty cycle.
func (m *Motor) Reverse(duty byte) {
	switch m.topology {
	case Topology_PhaseEnable:
		m.digitalWrite(m.reversePin, high)
		m.pwmWrite(m.forwardPin, duty)
	default:
		m.digitalWrite(m.forwardPin, low)
		m.pwmWrite(m.reversePin, duty)
	}
	m.duty = duty
}

// Coast lets the motor free-wheel.
func (m *Motor) Coast() {
	switch m.topology {
	case Topology_PhaseEnable:
		m.digitalWrite(m.reversePin, low)
		m.digitalWrite(m.forwardPin, low)
	default:
		m.digitalWrite(m.forwardPin, low)
		m.digitalWrite(m.reversePin, low)
	}
	m.duty = 0
}

// Brake shorts the motor windings on boards that support it. On plain
// IN/IN boards both inputs HIGH can destroy the bridge, so Brake does
// nothing there.
func (m *Motor) Brake() {
	if !m.topology.SupportsBrake() {
		logger.Debugf("motor %s: brake not supported on %s", m.name, m.topology)
		return
	}
	if m.topology == Topology_PhaseEnable {
		m.digitalWrite(m.forwardPin, low)
		m.digitalWrite(m.reversePin, high)
	} else {
		m.digitalWrite(m.forwardPin, high)
		m.digitalWrite(m.reversePin, high)
	}
	m.duty = 0
}

func (m *Motor) digitalWrite(pin string, level byte) {
	if err := m.connection.DigitalWrite(pin, level); err != nil {
		logger.Warningf("motor %s: digital write %d on pin %s failed: %s", m.name, level, pin, err)
	}
}

func (m *Motor) pwmWrite(pin string, duty byte) {
	if err := m.connection.PwmWrite(pin, duty); err != nil {
		logger.Warningf("motor %s: pwm write %d on pin %s failed: %s", m.name, duty, pin, err)
	}
}

func (m *Motor) String() string {
	return fmt.Sprintf("Motor{name: %s, topology: %s, forward: %s, reverse: %s, duty: %d}",
		m.name, m.topology, m.forwardPin, m.reversePin, m.duty)
}
