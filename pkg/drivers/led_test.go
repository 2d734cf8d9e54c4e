package drivers

import (
	"errors"
	"testing"
	"time"

	"github.com/JebManMan/MeBot/pkg/adaptors"
)

func newTestLED() (*StatusLED, *adaptors.UnitTest) {
	a := adaptors.NewUnitTest(adaptors.UnitTestConf{AdaptorType: adaptors.Adaptor_UnitTest, ID: "fake"})
	led := NewStatusLED(a, "13")
	led.blinkFor = 5 * time.Millisecond
	return led, a
}

func waitForCalls(t *testing.T, a *adaptors.UnitTest, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for len(a.Calls()) < n {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %d writes, got %v", n, a.Calls())
		}
		time.Sleep(time.Millisecond)
	}
}

func TestStatusLED(t *testing.T) {
	led, a := newTestLED()

	if err := led.Start(); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if !led.On() {
		t.Errorf("expected led on after start")
	}

	led.Blink()
	if led.On() {
		t.Errorf("expected led off during a blink")
	}
	// merged into the pending blink
	led.Blink()
	waitForCalls(t, a, 3)
	if !led.On() {
		t.Errorf("blink must restore the led")
	}

	if err := led.Halt(); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if led.On() {
		t.Errorf("expected led off after halt")
	}
	assertCalls(t, a.Calls(), digital("13", 1), digital("13", 0), digital("13", 1), digital("13", 0))
}

func TestStatusLED_HaltCancelsBlink(t *testing.T) {
	led, a := newTestLED()
	led.blinkFor = 20 * time.Millisecond
	if err := led.Start(); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	led.Blink()
	if err := led.Halt(); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	time.Sleep(50 * time.Millisecond)
	if led.On() {
		t.Errorf("pending blink turned the led back on after halt")
	}
	assertCalls(t, a.Calls(), digital("13", 1), digital("13", 0), digital("13", 0))
}

func TestStatusLED_WriteError(t *testing.T) {
	led, a := newTestLED()
	a.FailWrites(errors.New("bus error"))
	if err := led.Start(); err == nil {
		t.Errorf("expected an error turning the led on")
	}
	led.Blink()
	time.Sleep(20 * time.Millisecond)
	if n := len(a.Calls()); n != 2 {
		t.Errorf("a failed blink must not schedule a restore, got %d writes", n)
	}
}
