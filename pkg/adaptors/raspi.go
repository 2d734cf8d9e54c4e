package adaptors

import (
	"fmt"
	"sync"

	"github.com/JebManMan/MeBot/common/adaptorapi"

	"gobot.io/x/gobot"
	"gobot.io/x/gobot/platforms/raspi"
	"gobot.io/x/gobot/sysfs"
)

// RaspiConf implements adaptorapi.AdaptorConf interface
type RaspiConf struct {
	//////////////////////////////////////////////////////
	// All adaptor confs should define the following fields. //
	//////////////////////////////////////////////////////
	MachineID   string `json:"machine-id"`
	AdaptorType string `json:"adaptor-type"`
	ID          string `json:"id"` // unique

	////////////////////////////////////////////
	// The fields below are adaptor specific. //
	////////////////////////////////////////////
}

func (c RaspiConf) ValidateConf() error {
	if c.AdaptorType == "" {
		return fmt.Errorf("no adaptor type specified")
	}
	if c.ID == "" {
		return fmt.Errorf("no id specified")
	}
	if c.AdaptorType != Adaptor_Raspi {
		return fmt.Errorf("Invalid adaptor type specified. Expected %s, but got %s", Adaptor_Raspi, c.AdaptorType)
	}
	return nil
}

func (c RaspiConf) GetType() string {
	return c.AdaptorType
}

func (c RaspiConf) GetID() string {
	return c.ID
}

func (c RaspiConf) NewAdaptor() (adaptorapi.Adaptor, error) {

	adaptor := Raspi{
		State: &raspiInternal{
			Conf:    c,
			adaptor: raspi.NewAdaptor(),
		},
	}
	return &adaptor, nil
}

// Raspi implements the Adaptor interface
type Raspi struct {
	mu    sync.RWMutex
	State *raspiInternal
}

type raspiInternal struct {
	Conf    RaspiConf `json:"conf"`
	adaptor *raspi.Adaptor
}

// Attach: attaches the adaptor.
func (d *Raspi) Attach() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.State.adaptor.Connect()
}

// Detach: detaches the adaptor.
func (d *Raspi) Detach() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.State.adaptor.Finalize()
}

// SetOutput exports the pin through sysfs with the "out" direction.
func (d *Raspi) SetOutput(pin string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, err := d.State.adaptor.DigitalPin(pin, sysfs.OUT)
	return err
}

func (d *Raspi) DigitalWrite(pin string, level byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.State.adaptor.DigitalWrite(pin, level)
}

func (d *Raspi) PwmWrite(pin string, level byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.State.adaptor.PwmWrite(pin, level)
}

func (d *Raspi) DigitalRead(pin string) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.State.adaptor.DigitalRead(pin)
}

func (d *Raspi) Name() string     { return d.State.adaptor.Name() }
func (d *Raspi) SetName(n string) { d.State.adaptor.SetName(n) }
func (d *Raspi) Connect() error   { return d.Attach() }
func (d *Raspi) Finalize() error  { return d.Detach() }

func (d *Raspi) GetGobotAdaptor() gobot.Adaptor {
	return d.State.adaptor
}

func (d *Raspi) GetConf() adaptorapi.AdaptorConf {
	return d.State.Conf
}

func (d *Raspi) String() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return fmt.Sprintf("Raspi{id: %s}", d.State.Conf.ID)
}
