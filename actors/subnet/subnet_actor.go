package subnet

//go:generate go run ./gen/gen.go

import (
	address "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/cbor"
	"github.com/filecoin-project/go-state-types/exitcode"
	builtin0 "github.com/filecoin-project/specs-actors/actors/builtin"
	"github.com/filecoin-project/specs-actors/v7/actors/builtin"
	"github.com/filecoin-project/specs-actors/v7/actors/runtime"
	"github.com/filecoin-project/specs-actors/v7/actors/util/adt"
	cid "github.com/ipfs/go-cid"
	logging "github.com/ipfs/go-log/v2"

	actor "github.com/consensus-shipyard/subnet-actor/actors"
	"github.com/consensus-shipyard/subnet-actor/actors/gateway"
	"github.com/consensus-shipyard/subnet-actor/hierarchical"
)

var _ runtime.VMActor = SubnetActor{}

var log = logging.Logger("subnet-actor")

type SubnetActor struct{}

var Methods = struct {
	Constructor      abi.MethodNum
	Join             abi.MethodNum
	Leave            abi.MethodNum
	Kill             abi.MethodNum
	SubmitCheckpoint abi.MethodNum
	SubmitCrossMsg   abi.MethodNum
	ApplyMsg         abi.MethodNum
}{builtin0.MethodConstructor, 2, 3, 4, 5, 6, 7}

func (a SubnetActor) Exports() []interface{} {
	return []interface{}{
		builtin.MethodConstructor: a.Constructor,
		2:                         a.Join,
		3:                         a.Leave,
		4:                         a.Kill,
		5:                         a.SubmitCheckpoint,
		6:                         a.SubmitCrossMsg,
		7:                         a.ApplyMsg,
	}
}

func (a SubnetActor) Code() cid.Cid {
	return actor.SubnetActorCodeID
}

func (a SubnetActor) IsSingleton() bool {
	return false
}

func (a SubnetActor) State() cbor.Er {
	return new(SubnetState)
}

// ConstructParams specifies the configuration parameters for the
// subnet actor constructor.
type ConstructParams struct {
	NetworkName       string                     // Name of the parent network.
	Name              string                     // Name for the subnet
	Consensus         hierarchical.ConsensusType // Consensus for subnet.
	MinValidatorStake abi.TokenAmount            // MinStake to give validator rights
	CheckPeriod       abi.ChainEpoch             // Checkpointing period.
	FinalityThreshold abi.ChainEpoch             // Finality threshold.
	MinValidators     uint64                     // Minimum number of validators to activate the subnet.
	Genesis           []byte                     // Genesis bootstrap for the subnet.
}

// JoinParams specifies the network address the new validator will be
// reachable at.
type JoinParams struct {
	ValidatorNetAddr string
}

func (a SubnetActor) Constructor(rt runtime.Runtime, params *ConstructParams) *abi.EmptyValue {
	// Subnet actors need to be deployed through the init actor.
	rt.ValidateImmediateCallerType(builtin.InitActorCodeID)
	st, err := ConstructSubnetState(adt.AsStore(rt), params)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to construct state")
	st.Genesis = params.Genesis

	rt.StateCreate(st)
	return nil
}

// Join adds stake to the subnet and/or joins if the source is still not part of it.
func (a SubnetActor) Join(rt runtime.Runtime, params *JoinParams) *abi.EmptyValue {
	rt.ValidateImmediateCallerAcceptAny()
	sourceAddr := rt.Caller()
	value := rt.ValueReceived()

	var st SubnetState
	rt.StateTransaction(&st, func() {
		st.addStake(rt, sourceAddr, params.ValidatorNetAddr, value)
	})

	// If the subnet is not registered, i.e. in an instantiated state
	if st.Status == Instantiated {
		// If we have enough stake we can register the subnet in the gateway
		if st.TotalStake.GreaterThanEqual(gateway.MinSubnetStake) {
			if rt.CurrentBalance().GreaterThanEqual(st.TotalStake) {
				// Send a transaction with the total stake to the gateway.
				// We are discarding the result (which is the ID assigned for the subnet)
				// because we can compute it deterministically, but we can consider keeping it.
				code := rt.Send(hierarchical.SubnetCoordActorAddr, gateway.Methods.Register, nil, st.TotalStake, &builtin.Discard{})
				if !code.IsSuccess() {
					rt.Abortf(exitcode.ErrIllegalState, "failed registering subnet in gateway")
				}
			}
		}
	} else {
		// We need to send an addStake transaction to the gateway
		if rt.CurrentBalance().GreaterThanEqual(value) {
			// Top-up stake in the gateway
			code := rt.Send(hierarchical.SubnetCoordActorAddr, gateway.Methods.AddStake, nil, value, &builtin.Discard{})
			if !code.IsSuccess() {
				rt.Abortf(exitcode.ErrIllegalState, "failed sending addStake to gateway")
			}
		}
	}

	rt.StateTransaction(&st, func() {
		// Mutate state
		st.mutateState(rt)
	})

	return nil
}

// Leave can be used for validators to leave the subnet and recover their stake.
//
// NOTE: At this stage we will only support fully leaving the subnet and
// not recovering part of the stake. We are going to set a leaving fee
// but this will need to be revisited when we design the subnet
// cryptoecon model.
func (a SubnetActor) Leave(rt runtime.Runtime, _ *abi.EmptyValue) *abi.EmptyValue {
	rt.ValidateImmediateCallerAcceptAny()
	sourceAddr := rt.Caller()

	var (
		st       SubnetState
		valStake abi.TokenAmount
		stakes   *adt.BalanceTable
		err      error
	)
	// We first get the validator stake to know how much to release from the gateway stake
	rt.StateTransaction(&st, func() {
		stakes, err = adt.AsBalanceTable(adt.AsStore(rt), st.Stake)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to load state balance map for stakes")
		valStake, err = stakes.Get(sourceAddr)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to get stake for validator")
		if valStake.Equals(abi.NewTokenAmount(0)) {
			rt.Abortf(exitcode.ErrForbidden, "caller has no stake in subnet")
		}
		// A validator with a vote in the open window can't leave. Its
		// power already counts towards a candidate, leaving would let
		// it be double-spent.
		voted, err := st.hasActiveVote(adt.AsStore(rt), sourceAddr)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to check for active votes")
		if voted {
			rt.Abortf(exitcode.ErrForbidden, "caller has an active vote in the current checkpoint window")
		}
	})

	// Release stake from the gateway if all the stake hasn't been released already because the subnet
	// is in a terminating state
	if st.Status != Terminating {
		code := rt.Send(hierarchical.SubnetCoordActorAddr, gateway.Methods.ReleaseStake, &gateway.FundParams{Value: valStake}, big.Zero(), &builtin.Discard{})
		if !code.IsSuccess() {
			rt.Abortf(exitcode.ErrIllegalState, "failed releasing stake in gateway")
		}
	}

	priorBalance := rt.CurrentBalance()
	var retFunds abi.TokenAmount
	rt.StateTransaction(&st, func() {
		// Remove stake from stake balance table.
		retFunds = st.rmStake(rt, sourceAddr, stakes, valStake)
	})

	// Never send back if we don't have enough balance
	builtin.RequireState(rt, retFunds.LessThanEqual(priorBalance), "returning stake %v exceeds balance %v", retFunds, priorBalance)

	// Send funds back to owner
	code := rt.Send(sourceAddr, builtin.MethodSend, nil, retFunds, &builtin.Discard{})
	if !code.IsSuccess() {
		rt.Abortf(exitcode.ErrIllegalState, "failed to send stake back to address, code: %v", code)
	}

	rt.StateTransaction(&st, func() {
		// Mutate state
		st.mutateState(rt)
	})
	return nil
}

// Kill is used to signal that the subnet must be terminated.
//
// In the current policy any user can terminate the subnet and recover their stake
// as long as there are no validators left in the network.
func (a SubnetActor) Kill(rt runtime.Runtime, _ *abi.EmptyValue) *abi.EmptyValue {
	rt.ValidateImmediateCallerAcceptAny()
	var st SubnetState
	rt.StateTransaction(&st, func() {
		if st.Status == Terminating || st.Status == Killed {
			rt.Abortf(exitcode.ErrIllegalState, "the subnet is already in a killed or terminating state")
		}
		if len(st.ValidatorSet) != 0 {
			rt.Abortf(exitcode.ErrIllegalState, "this subnet can only be killed when all validators have left")
		}
		// Move to terminating state
		st.Status = Terminating

	})

	// Kill (unregister) subnet from the gateway and release full stake
	code := rt.Send(hierarchical.SubnetCoordActorAddr, gateway.Methods.Kill, nil, big.Zero(), &builtin.Discard{})
	if !code.IsSuccess() {
		rt.Abortf(exitcode.ErrIllegalState, "failed killing subnet in gateway")
	}

	rt.StateTransaction(&st, func() {
		// Mutate state
		st.mutateState(rt)
	})
	return nil
}

func (st *SubnetState) mutateState(rt runtime.Runtime) {

	switch st.Status {
	case Instantiated:
		if st.TotalStake.GreaterThanEqual(gateway.MinSubnetStake) &&
			uint64(len(st.ValidatorSet)) >= st.MinValidators {
			st.Status = Active
		}
	case Active:
		if st.TotalStake.LessThan(gateway.MinSubnetStake) {
			st.Status = Inactive
		}
	case Inactive:
		if st.TotalStake.GreaterThanEqual(gateway.MinSubnetStake) {
			st.Status = Active
		}
	// In the current implementation after Kill is triggered, the
	// subnet enters a killing state and can't be revived. The subnet
	// stays in a terminating state until all the funds have been recovered.
	case Terminating:
		if st.TotalStake.Equals(abi.NewTokenAmount(0)) &&
			rt.CurrentBalance().Equals(abi.NewTokenAmount(0)) {
			st.Status = Killed
		}
	case Killed:
		break
	}
}

func (st *SubnetState) addStake(rt runtime.Runtime, sourceAddr address.Address, netAddr string, value abi.TokenAmount) {
	stakes, err := adt.AsBalanceTable(adt.AsStore(rt), st.Stake)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to load state balance map for stakes")
	// Add the amount staked by the validator to the stake map.
	err = stakes.Add(sourceAddr, value)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "error adding stake to user balance table")
	// Flush stakes adding validator stake.
	st.Stake, err = stakes.Root()
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to flush stakes")

	// Add to totalStake in the subnet.
	st.TotalStake = big.Add(st.TotalStake, value)

	valStake, err := stakes.Get(sourceAddr)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to get stake for validator")
	// Joining without reaching the collateral threshold doesn't grant
	// any rights in the subnet, so we reject it outright.
	if valStake.LessThan(st.MinValidatorStake) {
		rt.Abortf(exitcode.ErrInsufficientFunds, "stake below the minimum to become a validator")
	}
	if !st.IsValidator(sourceAddr) {
		// Except for delegated consensus if there is already a validator.
		// There can only be a single validator in delegated consensus.
		if st.Consensus != hierarchical.Delegated || len(st.ValidatorSet) < 1 {
			shid := hierarchical.NewSubnetID(st.ParentID, rt.Receiver())
			st.ValidatorSet = append(st.ValidatorSet, hierarchical.NewValidator(shid, sourceAddr, netAddr))
		}
	}

}

func (st *SubnetState) rmStake(rt runtime.Runtime, sourceAddr address.Address, stakes *adt.BalanceTable, valStake abi.TokenAmount) abi.TokenAmount {
	retFunds := big.Div(valStake, LeavingFeeCoeff)

	// Remove from stakes
	err := stakes.MustSubtract(sourceAddr, valStake)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed subtracting balance for validator")
	// Flush stakes removing validator stake.
	st.Stake, err = stakes.Root()
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to flush stakes")

	// Remove validator from the validator set. Leaving is full-exit,
	// a validator can't keep part of its collateral.
	st.ValidatorSet = rmValidator(sourceAddr, st.ValidatorSet)

	// We are removing what we return to the validator, the rest stays
	// in the subnet, right now the leavingCoeff==1 so there won't be
	// balance left, we'll need to figure out how to distribute this
	// in the future.
	st.TotalStake = big.Sub(st.TotalStake, retFunds)

	return retFunds
}

func rmValidator(addr address.Address, ls []hierarchical.Validator) []hierarchical.Validator {
	for i, v := range ls {
		if v.Addr == addr {
			return append(ls[:i], ls[i+1:]...)
		}
	}
	return ls
}
