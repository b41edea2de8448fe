package hierarchical

import (
	"fmt"
	"strings"

	address "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
)

// ConsensusType for subnet.
type ConsensusType uint64

// List of supported/implemented consensus algorithms for subnets.
const (
	Delegated ConsensusType = iota
	PoW
	Tendermint
	Mir
	FilecoinEC
	Dummy
)

// ConsensusName returns the consensus algorithm name.
func ConsensusName(alg ConsensusType) string {
	switch alg {
	case Delegated:
		return "Delegated"
	case PoW:
		return "PoW"
	case Tendermint:
		return "Tendermint"
	case FilecoinEC:
		return "FilecoinEC"
	case Mir:
		return "Mir"
	case Dummy:
		return "Dummy"
	default:
		return "unknown"
	}
}

// Consensus returns the consensus algorithm.
func Consensus(name string) ConsensusType {
	switch {
	case strings.EqualFold(name, "delegated"):
		return Delegated
	case strings.EqualFold(name, "pow"):
		return PoW
	case strings.EqualFold(name, "tendermint"):
		return Tendermint
	case strings.EqualFold(name, "filecoinec"):
		return FilecoinEC
	case strings.EqualFold(name, "mir"):
		return Mir
	case strings.EqualFold(name, "dummy"):
		return Dummy
	default:
		panic(fmt.Sprintf("unknown or unspecified consensus algorithm %s", name))
	}
}

// MinCheckpointPeriod returns a minimal allowed checkpoint period for the consensus in a subnet.
func MinCheckpointPeriod(alg ConsensusType) abi.ChainEpoch {
	switch alg {
	case Delegated:
		return 10
	case PoW:
		return 15
	case Tendermint:
		return 10
	case FilecoinEC:
		return 30
	case Mir:
		return 10
	case Dummy:
		return 5
	default:
		panic(fmt.Sprintf("unknown consensus algorithm %v", alg))
	}
}

// MinFinality returns a minimal allowed finality threshold for the consensus in a subnet.
//
// Finality determines the number of epochs to wait before considering a change "final".
func MinFinality(alg ConsensusType) abi.ChainEpoch {
	switch alg {
	case Delegated:
		return 1
	case PoW:
		return 5
	case Tendermint:
		return 1
	case FilecoinEC:
		return 5
	case Mir:
		return 1
	case Dummy:
		return 1
	default:
		panic(fmt.Sprintf("unknown consensus algorithm %v", alg))
	}
}

// MsgType of cross message.
type MsgType uint64

// List of cross messages supported.
const (
	Unknown MsgType = iota
	BottomUp
	TopDown
)

// IsBottomUp returns whether a message traveling from the `from`
// subnet to the `to` subnet needs to be propagated bottom-up (i.e.
// some step of its path goes through a parent of `from`).
func IsBottomUp(from, to SubnetID) bool {
	_, l := from.CommonParent(to)
	sfrom := strings.Split(from.String(), SubnetSeparator)
	return len(sfrom)-1 > l
}

// MsgTypeFor returns the direction of a cross-net message sent from
// the curr subnet to the dest subnet.
func MsgTypeFor(curr, dest SubnetID) MsgType {
	if dest == UndefSubnetID {
		return Unknown
	}
	if IsBottomUp(curr, dest) {
		return BottomUp
	}
	return TopDown
}

// SubnetCoordActorAddr is the address of the gateway actor in a
// subnet. It is initialized in genesis with the address t064.
var SubnetCoordActorAddr = func() address.Address {
	a, err := address.NewIDAddress(64)
	if err != nil {
		panic(err)
	}
	return a
}()
