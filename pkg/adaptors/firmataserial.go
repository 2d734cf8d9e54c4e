package adaptors

import (
	"fmt"
	"sync"

	"github.com/JebManMan/MeBot/common/adaptorapi"

	"gobot.io/x/gobot"
	"gobot.io/x/gobot/platforms/firmata"
)

// FirmataSerialConf implements adaptorapi.AdaptorConf interface
type FirmataSerialConf struct {
	//////////////////////////////////////////////////////
	// All adaptor confs should define the following fields. //
	//////////////////////////////////////////////////////
	MachineID   string `json:"machine-id"`
	AdaptorType string `json:"adaptor-type"`
	ID          string `json:"id"` // unique

	////////////////////////////////////////////
	// The fields below are adaptor specific. //
	////////////////////////////////////////////

	Address string `json:"address"` // address of serial port (e.g. "/dev/ttyACM0")
}

func (c FirmataSerialConf) ValidateConf() error {
	if c.AdaptorType == "" {
		return fmt.Errorf("no adaptor type specified")
	}
	if c.ID == "" {
		return fmt.Errorf("no id specified")
	}
	if c.AdaptorType != Adaptor_Firmata_Serial {
		return fmt.Errorf("Invalid adaptor type specified. Expected %s, but got %s", Adaptor_Firmata_Serial, c.AdaptorType)
	}
	if c.Address == "" {
		return fmt.Errorf("no serial address specified for adaptor %s", c.ID)
	}
	return nil
}

func (c FirmataSerialConf) GetType() string {
	return c.AdaptorType
}

func (c FirmataSerialConf) GetID() string {
	return c.ID
}

func (c FirmataSerialConf) NewAdaptor() (adaptorapi.Adaptor, error) {

	adaptor := FirmataSerial{
		State: &firmataInternal{
			Conf:    c,
			adaptor: firmata.NewAdaptor(c.Address),
		},
	}
	return &adaptor, nil
}

// FirmataSerial implements the Adaptor interface for boards running the
// firmata sketch (Arduino and friends) over a serial port.
type FirmataSerial struct {
	mu    sync.RWMutex
	State *firmataInternal
}

type firmataInternal struct {
	Conf    FirmataSerialConf `json:"conf"`
	adaptor *firmata.Adaptor
}

// Attach: opens the serial connection and performs the firmata handshake.
func (d *FirmataSerial) Attach() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.State.adaptor.Connect()
}

// Detach: detaches the adaptor.
func (d *FirmataSerial) Detach() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.State.adaptor.Finalize()
}

// SetOutput: firmata switches a pin to output mode on its first digital
// write, so the pin is driven LOW to put it in a known state.
func (d *FirmataSerial) SetOutput(pin string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.State.adaptor.DigitalWrite(pin, 0)
}

func (d *FirmataSerial) DigitalWrite(pin string, level byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.State.adaptor.DigitalWrite(pin, level)
}

func (d *FirmataSerial) PwmWrite(pin string, level byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.State.adaptor.PwmWrite(pin, level)
}

func (d *FirmataSerial) DigitalRead(pin string) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.State.adaptor.DigitalRead(pin)
}

func (d *FirmataSerial) Name() string     { return d.State.adaptor.Name() }
func (d *FirmataSerial) SetName(n string) { d.State.adaptor.SetName(n) }
func (d *FirmataSerial) Connect() error   { return d.Attach() }
func (d *FirmataSerial) Finalize() error  { return d.Detach() }

func (d *FirmataSerial) GetGobotAdaptor() gobot.Adaptor {
	return d.State.adaptor
}

func (d *FirmataSerial) GetConf() adaptorapi.AdaptorConf {
	return d.State.Conf
}

func (d *FirmataSerial) String() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return fmt.Sprintf("FirmataSerial{id: %s, address: %s}", d.State.Conf.ID, d.State.Conf.Address)
}
