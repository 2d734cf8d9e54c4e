package drivers

import (
	"fmt"

	"github.com/JebManMan/MeBot/common/types"

	logging "github.com/op/go-logging"
)

var (
	logger = logging.MustGetLogger("mebot-drivers")
)

// Topology is the wiring scheme of a motor driver board. It decides which
// of the two pins carries the direction signal and which one the speed.
type Topology string

// List of all topologies
const (
	// IN/IN: one PWM input per direction (L298N, home made H-bridges).
	Topology_InIn Topology = "IN/IN"
	// IN/IN_Special: IN/IN boards that survive both inputs HIGH and brake
	// on it (DRV8833, TB6612 style).
	Topology_InInBrake Topology = "IN/IN_Special"
	// PHASE/ENABLE: one direction (phase) pin and one PWM (enable) pin.
	Topology_PhaseEnable Topology = "PHASE/ENABLE"
)

const (
	low  byte = 0
	high byte = 1
)

// ParseTopology maps a topology name to its Topology. An empty name selects
// the plain IN/IN topology.
func ParseTopology(s string) (Topology, error) {
	switch Topology(s) {
	case "":
		return Topology_InIn, nil
	case Topology_InIn, Topology_InInBrake, Topology_PhaseEnable:
		return Topology(s), nil
	default:
		return "", fmt.Errorf("%w: %q", types.ErrUnknownTopology, s)
	}
}

// SupportsBrake reports whether Brake drives the pins for this topology.
func (t Topology) SupportsBrake() bool {
	return t == Topology_InInBrake || t == Topology_PhaseEnable
}
