package adaptors

import (
	"fmt"
	"sync"

	"github.com/JebManMan/MeBot/common/adaptorapi"

	"gobot.io/x/gobot"
)

// Operations recorded by the UnitTest adaptor.
const (
	OpOutput  = "output"
	OpDigital = "digital"
	OpPwm     = "pwm"
)

// UnitTestConf implements adaptorapi.AdaptorConf interface
type UnitTestConf struct {
	//////////////////////////////////////////////////////
	// All adaptor confs should define the following fields. //
	//////////////////////////////////////////////////////
	MachineID   string `json:"machine-id"`
	AdaptorType string `json:"adaptor-type"`
	ID          string `json:"id"` // unique

	////////////////////////////////////////////
	// The fields below are adaptor specific. //
	////////////////////////////////////////////
	Inputs map[string]int `json:"inputs"` // initial digital input levels
}

func (c UnitTestConf) ValidateConf() error {
	if c.AdaptorType == "" {
		return fmt.Errorf("no adaptor type specified")
	}
	if c.ID == "" {
		return fmt.Errorf("no id specified")
	}
	if c.AdaptorType != Adaptor_UnitTest {
		return fmt.Errorf("Invalid adaptor type specified. Expected %s, but got %s", Adaptor_UnitTest, c.AdaptorType)
	}
	return nil
}

func (c UnitTestConf) GetType() string {
	return c.AdaptorType
}

func (c UnitTestConf) GetID() string {
	return c.ID
}

func (c UnitTestConf) NewAdaptor() (adaptorapi.Adaptor, error) {
	return NewUnitTest(c), nil
}

// Call is one platform I/O operation seen by the UnitTest adaptor.
type Call struct {
	Op    string
	Pin   string
	Value byte
}

func (c Call) String() string {
	if c.Op == OpOutput {
		return fmt.Sprintf("%s(%s)", c.Op, c.Pin)
	}
	return fmt.Sprintf("%s(%s, %d)", c.Op, c.Pin, c.Value)
}

// UnitTest implements the Adaptor interface. It performs no I/O and
// records every call so tests can assert on pin traffic.
type UnitTest struct {
	mu    sync.RWMutex
	State *unittestInternal
}

type unittestInternal struct {
	Conf     UnitTestConf `json:"conf"`
	name     string
	attached bool
	calls    []Call
	inputs   map[string]int
	writeErr error
	readErr  error
}

func NewUnitTest(c UnitTestConf) *UnitTest {
	inputs := make(map[string]int, len(c.Inputs))
	for pin, v := range c.Inputs {
		inputs[pin] = v
	}
	return &UnitTest{
		State: &unittestInternal{
			Conf:   c,
			name:   c.ID,
			inputs: inputs,
		},
	}
}

// Attach: attaches the adaptor.
func (d *UnitTest) Attach() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.State.attached = true
	logger.Debugf("unittest adaptor %s attached", d.State.Conf.ID)
	return nil
}

// Detach: detaches the adaptor.
func (d *UnitTest) Detach() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.State.attached = false
	logger.Debugf("unittest adaptor %s detached", d.State.Conf.ID)
	return nil
}

func (d *UnitTest) Attached() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.State.attached
}

func (d *UnitTest) SetOutput(pin string) error {
	return d.record(Call{Op: OpOutput, Pin: pin})
}

func (d *UnitTest) DigitalWrite(pin string, level byte) error {
	return d.record(Call{Op: OpDigital, Pin: pin, Value: level})
}

func (d *UnitTest) PwmWrite(pin string, level byte) error {
	return d.record(Call{Op: OpPwm, Pin: pin, Value: level})
}

func (d *UnitTest) DigitalRead(pin string) (int, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.State.readErr != nil {
		return 0, d.State.readErr
	}
	return d.State.inputs[pin], nil
}

func (d *UnitTest) record(c Call) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.State.calls = append(d.State.calls, c)
	return d.State.writeErr
}

// SetInput sets the level returned by DigitalRead for pin.
func (d *UnitTest) SetInput(pin string, level int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.State.inputs[pin] = level
}

// FailWrites makes every subsequent write return err (still recorded).
func (d *UnitTest) FailWrites(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.State.writeErr = err
}

// FailReads makes every subsequent DigitalRead return err.
func (d *UnitTest) FailReads(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.State.readErr = err
}

// Calls returns a copy of the recorded calls.
func (d *UnitTest) Calls() []Call {
	d.mu.RLock()
	defer d.mu.RUnlock()
	cpy := make([]Call, len(d.State.calls))
	copy(cpy, d.State.calls)
	return cpy
}

// Reset forgets the recorded calls.
func (d *UnitTest) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.State.calls = nil
}

// gobot.Adaptor

func (d *UnitTest) Name() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.State.name
}

func (d *UnitTest) SetName(n string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.State.name = n
}

func (d *UnitTest) Connect() error {
	return d.Attach()
}

func (d *UnitTest) Finalize() error {
	return d.Detach()
}

func (d *UnitTest) GetGobotAdaptor() gobot.Adaptor {
	return d
}

func (d *UnitTest) GetConf() adaptorapi.AdaptorConf {
	return d.State.Conf
}

func (d *UnitTest) String() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return fmt.Sprintf("UnitTest{id: %s, calls: %d}", d.State.Conf.ID, len(d.State.calls))
}
