package gateway

import (
	"github.com/filecoin-project/go-state-types/abi"
	builtin0 "github.com/filecoin-project/specs-actors/actors/builtin"
)

// The gateway (subnet coordinator) actor is the boundary between the
// subnet actor and the rest of the hierarchy. The subnet actor only
// needs its address (hierarchical.SubnetCoordActorAddr), method
// numbers and params to interact with it; all the gateway bookkeeping
// happens in the parent chain.

var (
	// MinSubnetStake required to register a new subnet in the gateway.
	MinSubnetStake = abi.NewTokenAmount(1e18)
)

var Methods = struct {
	Constructor           abi.MethodNum
	Register              abi.MethodNum
	AddStake              abi.MethodNum
	ReleaseStake          abi.MethodNum
	Kill                  abi.MethodNum
	CommitChildCheckpoint abi.MethodNum
	Fund                  abi.MethodNum
	Release               abi.MethodNum
}{builtin0.MethodConstructor, 2, 3, 4, 5, 6, 7, 8}

// SubnetIDParam represents a subnet ID used as a parameter or return
// value of a gateway method.
type SubnetIDParam struct {
	ID string
}

// FundParams used in stake requests.
type FundParams struct {
	Value abi.TokenAmount
}

// CheckpointParams handles in/out communication of checkpoints
// To accommodate arbitrary schemas (and even if it introduces and overhead)
// is easier to transmit a marshalled version of the checkpoint.
// NOTE: Consider in the future if there is a better approach.
type CheckpointParams struct {
	Checkpoint []byte
}
