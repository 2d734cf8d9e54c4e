package drivers

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/JebManMan/MeBot/pkg/adaptors"
)

const (
	fwdPin = "5"
	revPin = "6"
)

func newTestMotor(t Topology) (*Motor, *adaptors.UnitTest) {
	a := adaptors.NewUnitTest(adaptors.UnitTestConf{
		AdaptorType: adaptors.Adaptor_UnitTest,
		ID:          "fake",
	})
	return NewMotor(a, fwdPin, revPin, t), a
}

func digital(pin string, v byte) adaptors.Call {
	return adaptors.Call{Op: adaptors.OpDigital, Pin: pin, Value: v}
}

func pwm(pin string, v byte) adaptors.Call {
	return adaptors.Call{Op: adaptors.OpPwm, Pin: pin, Value: v}
}

func assertCalls(t *testing.T, got []adaptors.Call, want ...adaptors.Call) {
	t.Helper()
	if len(got) == 0 && len(want) == 0 {
		return
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected calls %v, got %v", want, got)
	}
}

func TestMotor_Commands(t *testing.T) {
	tests := []struct {
		name     string
		topology Topology
		command  func(m *Motor)
		want     []adaptors.Call
	}{
		{"stop in/in", Topology_InIn, (*Motor).Stop,
			[]adaptors.Call{digital(revPin, 0), digital(fwdPin, 0)}},
		{"stop phase/enable", Topology_PhaseEnable, (*Motor).Stop,
			[]adaptors.Call{digital(revPin, 0), digital(fwdPin, 0)}},

		{"forward in/in", Topology_InIn, func(m *Motor) { m.Forward(200) },
			[]adaptors.Call{digital(revPin, 0), pwm(fwdPin, 200)}},
		{"forward in/in special", Topology_InInBrake, func(m *Motor) { m.Forward(90) },
			[]adaptors.Call{digital(revPin, 0), pwm(fwdPin, 90)}},
		{"forward phase/enable", Topology_PhaseEnable, func(m *Motor) { m.Forward(150) },
			[]adaptors.Call{digital(revPin, 0), pwm(fwdPin, 150)}},

		{"reverse in/in", Topology_InIn, func(m *Motor) { m.Reverse(120) },
			[]adaptors.Call{digital(fwdPin, 0), pwm(revPin, 120)}},
		{"reverse in/in special", Topology_InInBrake, func(m *Motor) { m.Reverse(77) },
			[]adaptors.Call{digital(fwdPin, 0), pwm(revPin, 77)}},
		{"reverse phase/enable", Topology_PhaseEnable, func(m *Motor) { m.Reverse(120) },
			[]adaptors.Call{digital(revPin, 1), pwm(fwdPin, 120)}},

		{"coast in/in", Topology_InIn, (*Motor).Coast,
			[]adaptors.Call{digital(fwdPin, 0), digital(revPin, 0)}},
		{"coast phase/enable", Topology_PhaseEnable, (*Motor).Coast,
			[]adaptors.Call{digital(revPin, 0), digital(fwdPin, 0)}},

		{"brake in/in is a no-op", Topology_InIn, (*Motor).Brake, nil},
		{"brake in/in special", Topology_InInBrake, (*Motor).Brake,
			[]adaptors.Call{digital(fwdPin, 1), digital(revPin, 1)}},
		{"brake phase/enable", Topology_PhaseEnable, (*Motor).Brake,
			[]adaptors.Call{digital(fwdPin, 0), digital(revPin, 1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, a := newTestMotor(tt.topology)
			tt.command(m)
			assertCalls(t, a.Calls(), tt.want...)
		})
	}
}

func TestMotor_Duty(t *testing.T) {
	m, _ := newTestMotor(Topology_PhaseEnable)
	m.Forward(42)
	if m.Duty() != 42 {
		t.Errorf("expected duty 42, got %d", m.Duty())
	}
	m.Reverse(7)
	if m.Duty() != 7 {
		t.Errorf("expected duty 7, got %d", m.Duty())
	}
	m.Stop()
	if m.Duty() != 0 {
		t.Errorf("expected duty 0 after stop, got %d", m.Duty())
	}
}

func TestMotor_BrakeInInKeepsDuty(t *testing.T) {
	m, _ := newTestMotor(Topology_InIn)
	m.Forward(100)
	m.Brake()
	if m.Duty() != 100 {
		t.Errorf("brake on IN/IN must not touch the motor, duty changed to %d", m.Duty())
	}
}

func TestMotor_BrakeFollowsTopology(t *testing.T) {
	for _, topo := range []Topology{Topology_InIn, Topology_InInBrake, Topology_PhaseEnable} {
		m, a := newTestMotor(topo)
		m.Brake()
		if wrote := len(a.Calls()) > 0; wrote != topo.SupportsBrake() {
			t.Errorf("%s: brake wrote pins %v, brake supported %v", topo, a.Calls(), topo.SupportsBrake())
		}
	}
}

func TestMotor_StartSetsOutputs(t *testing.T) {
	m, a := newTestMotor(Topology_InIn)
	if err := m.Start(); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	m.Setup()
	out := adaptors.Call{Op: adaptors.OpOutput, Pin: fwdPin}
	outRev := adaptors.Call{Op: adaptors.OpOutput, Pin: revPin}
	assertCalls(t, a.Calls(), out, outRev, out, outRev)
}

func TestMotor_StartReportsErrors(t *testing.T) {
	m, a := newTestMotor(Topology_InIn)
	m.SetName("left")
	a.FailWrites(errors.New("pin busy"))
	err := m.Start()
	if err == nil {
		t.Fatalf("expected an error")
	}
	if !strings.Contains(err.Error(), "left") || !strings.Contains(err.Error(), "pin busy") {
		t.Errorf("unexpected error text: %s", err)
	}
}

func TestMotor_WriteErrorsAreSwallowed(t *testing.T) {
	m, a := newTestMotor(Topology_PhaseEnable)
	a.FailWrites(errors.New("disconnected"))
	m.Reverse(50)
	// both writes are still attempted
	assertCalls(t, a.Calls(), digital(revPin, 1), pwm(fwdPin, 50))
}

func TestMotor_HaltStops(t *testing.T) {
	m, a := newTestMotor(Topology_InIn)
	if err := m.Halt(); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	assertCalls(t, a.Calls(), digital(revPin, 0), digital(fwdPin, 0))
}

func TestParseTopology(t *testing.T) {
	for in, want := range map[string]Topology{
		"":              Topology_InIn,
		"IN/IN":         Topology_InIn,
		"IN/IN_Special": Topology_InInBrake,
		"PHASE/ENABLE":  Topology_PhaseEnable,
	} {
		got, err := ParseTopology(in)
		if err != nil || got != want {
			t.Errorf("ParseTopology(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseTopology("H-BRIDGE"); err == nil {
		t.Errorf("expected error for unknown topology")
	}
	if Topology_InIn.SupportsBrake() {
		t.Errorf("IN/IN must not report brake support")
	}
}

func TestMotorConf_NewMotor(t *testing.T) {
	a := adaptors.NewUnitTest(adaptors.UnitTestConf{ID: "fake"})
	m, err := MotorConf{ForwardPin: "9", ReversePin: "10", Topology: "PHASE/ENABLE"}.NewMotor("right", a)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if m.Name() != "right" || m.Topology() != Topology_PhaseEnable || m.ForwardPin() != "9" || m.ReversePin() != "10" {
		t.Errorf("unexpected motor: %s", m)
	}
	if _, err := (MotorConf{ForwardPin: "9", ReversePin: "9"}).NewMotor("bad", a); err == nil {
		t.Errorf("expected error for shared pins")
	}
}
