package mux

import "fmt"

// buildTopology creates the Service set for cfg.Topology.Profile, following
// the original encoder's four fixed topologies (spec.md §4.6). Service IDs
// are `(onid&0x7FF)<<5 | type_bits<<3 | index`, type_bits 0 for full/SD/HD
// services and 1 for the one-seg service (see DESIGN.md decision 5).
func buildTopology(cfg *Config) ([]service, error) {
	onidBits := uint16(cfg.OriginalNetworkID&0x7FF) << 5

	sidFor := func(typeBits, index uint16) uint16 {
		return onidBits | (typeBits << 3) | index
	}

	switch cfg.Topology.Profile {
	case ProfileDefault:
		return []service{
			newService(cfg.ServiceID, cfg.ProviderName, cfg.ServiceName, false, 1),
		}, nil

	case Profile1:
		return []service{
			newService(sidFor(0, 0), cfg.ProviderName, "SVC Full-Seg", false, 1),
			newService(sidFor(1, 1), cfg.ProviderName, "SVC 1-Seg", true, 2),
		}, nil

	case Profile2:
		svcs := make([]service, 0, 5)
		for i := uint16(0); i < 4; i++ {
			svcs = append(svcs, newService(sidFor(0, i), cfg.ProviderName,
				fmt.Sprintf("SVC SD - %d", i+1), false, i+1))
		}
		svcs = append(svcs, newService(sidFor(1, 4), cfg.ProviderName, "SVC LD 1-Seg", true, 5))
		return svcs, nil

	case Profile3:
		svcs := make([]service, 0, 3)
		for i := uint16(0); i < 2; i++ {
			svcs = append(svcs, newService(sidFor(0, i), cfg.ProviderName,
				fmt.Sprintf("SVC HD - %d", i+1), false, i+1))
		}
		svcs = append(svcs, newService(sidFor(1, 4), cfg.ProviderName, "SVC LD 1-Seg", true, 3))
		return svcs, nil

	default:
		return nil, fmt.Errorf("%w: transmission profile %d", ErrInvalidInput, cfg.Topology.Profile)
	}
}

func newService(sid uint16, provider, name string, oneSeg bool, programNumber uint16) service {
	return service{
		sid:           sid,
		pcrPID:        pcrPIDUnassigned,
		providerName:  provider,
		serviceName:   name,
		oneSeg:        oneSeg,
		programNumber: programNumber,
	}
}

// finalNbServices returns the number of services a profile produces, used
// to size the NIT/SDT transport-stream loop before services are populated.
func finalNbServices(p TransmissionProfile) int {
	switch p {
	case Profile1:
		return 2
	case Profile2:
		return 5
	case Profile3:
		return 3
	default:
		return 1
	}
}

// isOneSeg reports whether sid was assigned with the one-seg type bit set.
func isOneSeg(sid uint16) bool {
	return sid&0x18 != 0
}
