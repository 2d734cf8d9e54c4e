package adaptors

import (
	"errors"
	"strings"
	"testing"

	"github.com/JebManMan/MeBot/common/adaptorapi"
	"github.com/JebManMan/MeBot/common/types"
)

func TestNewAdaptorConfFromEnvelope_Firmata(t *testing.T) {
	env := adaptorapi.AdaptorConfEnvelope{
		Type: Adaptor_Firmata_Serial,
		ID:   "arduino",
		Conf: map[string]interface{}{"address": "/dev/ttyACM0"},
	}
	conf, err := NewAdaptorConfFromEnvelope("bot-1", env)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	fConf, ok := conf.(*FirmataSerialConf)
	if !ok {
		t.Fatalf("expected *FirmataSerialConf, got %T", conf)
	}
	if fConf.Address != "/dev/ttyACM0" || fConf.MachineID != "bot-1" || fConf.GetID() != "arduino" {
		t.Errorf("unexpected conf: %+v", fConf)
	}
}

func TestNewAdaptorConfFromEnvelope_MissingAddress(t *testing.T) {
	env := adaptorapi.AdaptorConfEnvelope{Type: Adaptor_Firmata_Serial, ID: "arduino"}
	if _, err := NewAdaptorConfFromEnvelope("bot-1", env); err == nil {
		t.Fatalf("expected error for missing serial address")
	}
}

func TestNewAdaptorConfFromEnvelope_UnknownType(t *testing.T) {
	env := adaptorapi.AdaptorConfEnvelope{Type: "adaptor_bogus", ID: "x"}
	_, err := NewAdaptorConfFromEnvelope("bot-1", env)
	if err == nil || !strings.Contains(err.Error(), types.ErrUnknownAdaptorType.Error()) {
		t.Fatalf("expected unknown adaptor type error, got %v", err)
	}
}

func TestUnitTest_RecordsCalls(t *testing.T) {
	conf, err := NewAdaptorConfFromEnvelope("bot-1", adaptorapi.AdaptorConfEnvelope{
		Type: Adaptor_UnitTest,
		ID:   "fake",
		Conf: map[string]interface{}{"inputs": map[string]interface{}{"7": 1}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	a, err := adaptorapi.NewAdaptor(conf)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	ut := a.(*UnitTest)
	if err := ut.Attach(); err != nil || !ut.Attached() {
		t.Fatalf("attach failed: %v", err)
	}

	ut.SetOutput("3")
	ut.DigitalWrite("3", 1)
	ut.PwmWrite("5", 128)

	want := []Call{
		{Op: OpOutput, Pin: "3"},
		{Op: OpDigital, Pin: "3", Value: 1},
		{Op: OpPwm, Pin: "5", Value: 128},
	}
	got := ut.Calls()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("call %d: expected %s, got %s", i, want[i], got[i])
		}
	}

	if v, _ := ut.DigitalRead("7"); v != 1 {
		t.Errorf("expected configured input level 1, got %d", v)
	}
	ut.SetInput("7", 0)
	if v, _ := ut.DigitalRead("7"); v != 0 {
		t.Errorf("expected input level 0, got %d", v)
	}

	boom := errors.New("boom")
	ut.FailWrites(boom)
	if err := ut.DigitalWrite("3", 0); err != boom {
		t.Errorf("expected injected write error, got %v", err)
	}
	ut.Reset()
	if len(ut.Calls()) != 0 {
		t.Errorf("expected no calls after reset")
	}
}
