package sim

import (
	"fmt"
	"strings"
)

// ParseSwitchingTechnique converts a string into a SwitchingTechnique.
// Spaces and case are ignored, so "packet-switching" and "PacketSwitching"
// both parse.
func ParseSwitchingTechnique(s string) (SwitchingTechnique, error) {
	normalized := strings.ToLower(s)
	normalized = strings.NewReplacer(" ", "", "-", "", "_", "").
		Replace(normalized)

	switch normalized {
	case "circuit", "circuitswitching":
		return CircuitSwitching, nil
	case "packet", "packetswitching":
		return PacketSwitching, nil
	case "virtual", "virtualchannel":
		return VirtualChannel, nil
	default:
		return "", fmt.Errorf("unknown switching technique %q", s)
	}
}
