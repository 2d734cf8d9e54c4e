package drivers

import (
	"fmt"
	"sync"
	"time"

	"github.com/JebManMan/MeBot/common/adaptorapi"

	"gobot.io/x/gobot"
	"gobot.io/x/gobot/drivers/gpio"
)

// DefaultBlinkDuration is how long a blink inverts the LED.
const DefaultBlinkDuration = 150 * time.Millisecond

// StatusLED shows whether the control loop is running. It blinks once per
// mode change.
type StatusLED struct {
	mu       sync.Mutex
	led      *gpio.LedDriver
	blinkFor time.Duration
	pending  *time.Timer // restores the LED after a blink
}

func NewStatusLED(a adaptorapi.Adaptor, pin string) *StatusLED {
	led := gpio.NewLedDriver(a, pin)
	led.SetName("status-led")
	return &StatusLED{led: led, blinkFor: DefaultBlinkDuration}
}

func (s *StatusLED) Pin() string { return s.led.Pin() }

// Start: configures the pin and turns the LED on.
func (s *StatusLED) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.led.Start(); err != nil {
		return err
	}
	if err := s.led.On(); err != nil {
		return fmt.Errorf("status led on pin %s: %s", s.led.Pin(), err)
	}
	return nil
}

// Halt: cancels a pending blink and turns the LED off.
func (s *StatusLED) Halt() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
	return s.led.Off()
}

// Blink inverts the LED and restores it after the blink duration. It
// never waits; a blink requested while one is pending is merged into it.
func (s *StatusLED) Blink() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending != nil {
		return
	}
	if err := s.led.Toggle(); err != nil {
		logger.Warningf("status led on pin %s: %s", s.led.Pin(), err)
		return
	}
	var t *time.Timer
	t = gobot.After(s.blinkFor, func() { s.restore(t) })
	s.pending = t
}

func (s *StatusLED) restore(t *time.Timer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending != t {
		return
	}
	s.pending = nil
	if err := s.led.Toggle(); err != nil {
		logger.Warningf("status led on pin %s: %s", s.led.Pin(), err)
	}
}

func (s *StatusLED) On() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.led.State()
}
