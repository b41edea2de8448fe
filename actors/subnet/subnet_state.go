package subnet

import (
	"github.com/ipfs/go-cid"
	"golang.org/x/xerrors"

	address "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/exitcode"
	"github.com/filecoin-project/specs-actors/v7/actors/builtin"
	"github.com/filecoin-project/specs-actors/v7/actors/runtime"
	"github.com/filecoin-project/specs-actors/v7/actors/util/adt"

	"github.com/consensus-shipyard/subnet-actor/checkpoints/schema"
	"github.com/consensus-shipyard/subnet-actor/hierarchical"
)

var (
	// MinValidatorStake is the default minimum stake required for an
	// address to be granted validator rights in the subnet and join it.
	MinValidatorStake = abi.NewTokenAmount(1e18)

	// LeavingFeeCoeff Penalization
	// Coefficient divided to validator stake when leaving a subnet.
	// NOTE: This is currently set to 1, i.e., the validator recovers
	// its full stake. This may change once cryptoecon is figured out.
	// We'll need to decide what to do with the leftover stake, if to
	// burn it or keep it until the subnet is fully killed.
	LeavingFeeCoeff = big.NewInt(1)

	// CheckpointQuorumNum and CheckpointQuorumDenom determine the
	// fraction of the window's total stake that needs to vote for a
	// candidate checkpoint before it is finalized. A candidate needs
	// strictly more than CheckpointQuorumNum/CheckpointQuorumDenom
	// of the stake snapshot taken when its voting window opened.
	CheckpointQuorumNum   = big.NewInt(2)
	CheckpointQuorumDenom = big.NewInt(3)
)

// Status describes in what state in its lifecycle a subnet is.
type Status uint64

const (
	Instantiated Status = iota // Waiting to onboard minimum stake to register in the gateway
	Active                     // Active and operating
	Inactive                   // Inactive for lack of stake
	Terminating                // Waiting for everyone to take their funds back and close the subnet
	Killed                     // Not active anymore.
)

type SubnetState struct {
	// Human-readable name of the subnet.
	Name string
	// ID of the parent subnet
	ParentID hierarchical.SubnetID
	// Type of Consensus algorithm.
	Consensus hierarchical.ConsensusType
	// Minimum stake required for an address to join the subnet
	// as a validator
	MinValidatorStake abi.TokenAmount
	// Total collateral currently deposited in the subnet
	TotalStake abi.TokenAmount
	// BalanceTable with the distribution of stake by address
	Stake cid.Cid // HAMT[address]TokenAmount
	// State of the subnet (Instantiated, Active, Inactive, Terminating, Killed)
	Status Status
	// Genesis bootstrap for the subnet. This is created
	// when the subnet is generated.
	Genesis []byte
	// Checkpointing period.
	CheckPeriod abi.ChainEpoch
	// Finality threshold.
	FinalityThreshold abi.ChainEpoch
	// Checkpoints committed to the subnet actor per epoch
	Checkpoints cid.Cid // HAMT[epoch]Checkpoint
	// WindowChecks with the candidates and votes of the open window
	WindowChecks cid.Cid // HAMT[cid]CheckVotes
	// CurrWindow is the epoch of the window votes are currently
	// being accepted for.
	CurrWindow abi.ChainEpoch
	// WindowTotalStake snapshots TotalStake when the current window
	// was opened. Votes in the window are weighed against this value
	// so joins and leaves mid-window can't skew a quorum.
	WindowTotalStake abi.TokenAmount
	// ValidatorSet is the set of validators in the subnet
	ValidatorSet []hierarchical.Validator
	// MinValidators is the minimal number of validators required to join before starting the subnet
	MinValidators uint64

	// Registry of cross-net messages travelling from the parent to
	// the subnet, indexed by nonce.
	TopDownMsgs cid.Cid // AMT[nonce]CrossMsg
	// Nonce to assign to the next top-down message.
	TopDownNonce uint64
	// Nonce of the next top-down message to be executed.
	AppliedTopDownNonce uint64
	// Registry of cross-net messages travelling from the subnet to
	// the parent, indexed by nonce.
	BottomUpMsgs cid.Cid // AMT[nonce]CrossMsg
	// Nonce to assign to the next bottom-up message.
	BottomUpNonce uint64
	// Nonce of the next bottom-up message to be consumed by a
	// finalized checkpoint.
	AppliedBottomUpNonce uint64
}

// CheckVotes tracks the validators that voted for a candidate
// checkpoint in the open window.
//
// The power of each vote is recorded at vote time so a revocation
// subtracts exactly the power that was added, whatever happened to
// the validator's stake in between.
type CheckVotes struct {
	Validators []address.Address
	Powers     []abi.TokenAmount
	Sum        abi.TokenAmount
}

func emptyCheckVotes() *CheckVotes {
	return &CheckVotes{
		Validators: make([]address.Address, 0),
		Powers:     make([]abi.TokenAmount, 0),
		Sum:        big.Zero(),
	}
}

// hasVote returns the index of an address in the list of votes.
func (w *CheckVotes) hasVote(addr address.Address) int {
	for i, v := range w.Validators {
		if v == addr {
			return i
		}
	}
	return -1
}

// hasQuorum compares the voted power against the stake snapshot of
// the window. A candidate is finalized with strictly more than
// CheckpointQuorumNum/CheckpointQuorumDenom of the total.
func (st SubnetState) hasQuorum(w *CheckVotes) bool {
	lhs := big.Mul(CheckpointQuorumDenom, w.Sum)
	rhs := big.Mul(CheckpointQuorumNum, st.WindowTotalStake)
	return lhs.GreaterThan(rhs)
}

func ConstructSubnetState(store adt.Store, params *ConstructParams) (*SubnetState, error) {
	emptyStakeCid, err := adt.StoreEmptyMap(store, adt.BalanceTableBitwidth)
	if err != nil {
		return nil, xerrors.Errorf("failed to create stakes balance table: %w", err)
	}
	emptyCheckpointsMapCid, err := adt.StoreEmptyMap(store, builtin.DefaultHamtBitwidth)
	if err != nil {
		return nil, xerrors.Errorf("failed to create empty map: %w", err)
	}
	emptyWindowChecks, err := adt.StoreEmptyMap(store, builtin.DefaultHamtBitwidth)
	if err != nil {
		return nil, xerrors.Errorf("failed to create empty map: %w", err)
	}
	emptyTopDownMsgs, err := adt.StoreEmptyArray(store, CrossMsgsAMTBitwidth)
	if err != nil {
		return nil, xerrors.Errorf("failed to create empty top-down msgs array: %w", err)
	}
	emptyBottomUpMsgs, err := adt.StoreEmptyArray(store, CrossMsgsAMTBitwidth)
	if err != nil {
		return nil, xerrors.Errorf("failed to create empty bottom-up msgs array: %w", err)
	}

	minCheckpointPeriod := hierarchical.MinCheckpointPeriod(params.Consensus)
	checkpointPeriod := params.CheckPeriod
	if checkpointPeriod < minCheckpointPeriod {
		checkpointPeriod = minCheckpointPeriod
	}

	minFinality := hierarchical.MinFinality(params.Consensus)
	finality := params.FinalityThreshold
	if finality < minFinality {
		finality = minFinality
	}

	// Finality should always be less than the checkpoint period.
	if finality >= checkpointPeriod {
		return nil, xerrors.Errorf("finality threshold (%v) must be less than checkpoint period (%v)",
			finality, checkpointPeriod)
	}

	minStake := params.MinValidatorStake
	if minStake.Nil() || minStake.LessThanEqual(big.Zero()) {
		minStake = MinValidatorStake
	}

	return &SubnetState{
		Name:              params.Name,
		ParentID:          hierarchical.SubnetID(params.NetworkName),
		Consensus:         params.Consensus,
		MinValidatorStake: minStake,
		TotalStake:        abi.NewTokenAmount(0),
		Stake:             emptyStakeCid,
		Status:            Instantiated,
		CheckPeriod:       checkpointPeriod,
		FinalityThreshold: finality,
		Checkpoints:       emptyCheckpointsMapCid,
		WindowChecks:      emptyWindowChecks,
		WindowTotalStake:  abi.NewTokenAmount(0),
		ValidatorSet:      make([]hierarchical.Validator, 0),
		MinValidators:     params.MinValidators,
		TopDownMsgs:       emptyTopDownMsgs,
		BottomUpMsgs:      emptyBottomUpMsgs,
	}, nil

}

// GetStake returns the current collateral of an address in the subnet.
func (st *SubnetState) GetStake(store adt.Store, addr address.Address) (abi.TokenAmount, error) {
	stakes, err := adt.AsBalanceTable(store, st.Stake)
	if err != nil {
		return abi.NewTokenAmount(0), err
	}
	return stakes.Get(addr)
}

// PrevCheckCid returns the Cid of the previously committed checkpoint
func (st *SubnetState) PrevCheckCid(store adt.Store, epoch abi.ChainEpoch) (cid.Cid, error) {
	ep := epoch - st.CheckPeriod
	// From epoch back if we found a previous checkpoint
	// committed we return its CID
	for ep >= 0 {
		ch, found, err := st.GetCheckpoint(store, ep)
		if err != nil {
			return cid.Undef, err
		}
		if found {
			return ch.Cid()
		}
		ep = ep - st.CheckPeriod
	}
	// If nothing is found return NoPreviousCheck
	return schema.NoPreviousCheck, nil
}

// GetCheckpoint gets a checkpoint from its index
func (st *SubnetState) GetCheckpoint(s adt.Store, epoch abi.ChainEpoch) (*schema.Checkpoint, bool, error) {
	checkpoints, err := adt.AsMap(s, st.Checkpoints, builtin.DefaultHamtBitwidth)
	if err != nil {
		return nil, false, xerrors.Errorf("failed to load checkpoint: %w", err)
	}
	return getCheckpoint(checkpoints, epoch)
}

func getCheckpoint(checkpoints *adt.Map, epoch abi.ChainEpoch) (*schema.Checkpoint, bool, error) {
	var out schema.Checkpoint
	found, err := checkpoints.Get(abi.UIntKey(uint64(epoch)), &out)
	if err != nil {
		return nil, false, xerrors.Errorf("failed to get checkpoint for epoch %v: %w", epoch, err)
	}
	if !found {
		return nil, false, nil
	}
	return &out, true, nil
}

func (st *SubnetState) flushCheckpoint(rt runtime.Runtime, ch *schema.Checkpoint) {
	// Update subnet in the list of checkpoints.
	checks, err := adt.AsMap(adt.AsStore(rt), st.Checkpoints, builtin.DefaultHamtBitwidth)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to load state for checkpoints")
	err = checks.Put(abi.UIntKey(uint64(ch.Data.Epoch)), ch)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to put checkpoint in map")
	// Flush checkpoints
	st.Checkpoints, err = checks.Root()
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to flush checkpoints")
}

// GetWindowChecks with the votes for a candidate in the open window.
func (st *SubnetState) GetWindowChecks(s adt.Store, checkCid cid.Cid) (*CheckVotes, bool, error) {
	checks, err := adt.AsMap(s, st.WindowChecks, builtin.DefaultHamtBitwidth)
	if err != nil {
		return nil, false, xerrors.Errorf("failed to load windowCheck: %w", err)
	}

	var out CheckVotes
	found, err := checks.Get(abi.CidKey(checkCid), &out)
	if err != nil {
		return nil, false, xerrors.Errorf("failed to get windowCheck for Cid %v: %w", checkCid, err)
	}
	if !found {
		return nil, false, nil
	}
	return &out, true, nil
}

func (st *SubnetState) flushWindowChecks(rt runtime.Runtime, checkCid cid.Cid, w *CheckVotes) {
	checks, err := adt.AsMap(adt.AsStore(rt), st.WindowChecks, builtin.DefaultHamtBitwidth)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to load state for windowChecks")
	err = checks.Put(abi.CidKey(checkCid), w)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to put windowCheck in map")
	// Flush windowCheck
	st.WindowChecks, err = checks.Root()
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to flush windowChecks")
}

// clearWindow drops every candidate and vote of the current window.
// Called when the window rolls over to a newer epoch and when a
// candidate is finalized.
func (st *SubnetState) clearWindow(s adt.Store) error {
	empty, err := adt.StoreEmptyMap(s, builtin.DefaultHamtBitwidth)
	if err != nil {
		return xerrors.Errorf("failed to create empty map: %w", err)
	}
	st.WindowChecks = empty
	return nil
}

// revokeVote removes a validator's vote from any candidate of the
// open window it appears in, subtracting the power it added.
//
// Returns whether the validator had voted for the candidate given in
// exclude, which is a duplicate vote and not a revocation.
func (st *SubnetState) revokeVote(rt runtime.Runtime, addr address.Address, exclude cid.Cid) bool {
	store := adt.AsStore(rt)
	checks, err := adt.AsMap(store, st.WindowChecks, builtin.DefaultHamtBitwidth)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to load state for windowChecks")

	var (
		w         CheckVotes
		duplicate bool
		dirty     = map[cid.Cid]*CheckVotes{}
	)
	err = checks.ForEach(&w, func(k string) error {
		_, c, err := cid.CidFromBytes([]byte(k))
		if err != nil {
			return err
		}
		i := w.hasVote(addr)
		if i < 0 {
			return nil
		}
		if c == exclude {
			duplicate = true
			return nil
		}
		rm := &CheckVotes{
			Validators: append(append([]address.Address{}, w.Validators[:i]...), w.Validators[i+1:]...),
			Powers:     append(append([]abi.TokenAmount{}, w.Powers[:i]...), w.Powers[i+1:]...),
			Sum:        big.Sub(w.Sum, w.Powers[i]),
		}
		dirty[c] = rm
		return nil
	})
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to iterate windowChecks")

	for c, w := range dirty {
		err = checks.Put(abi.CidKey(c), w)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to put windowCheck in map")
	}
	if len(dirty) > 0 {
		st.WindowChecks, err = checks.Root()
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to flush windowChecks")
	}
	return duplicate
}

// hasActiveVote reports whether an address has a vote recorded for
// any candidate of the open window.
func (st *SubnetState) hasActiveVote(s adt.Store, addr address.Address) (bool, error) {
	checks, err := adt.AsMap(s, st.WindowChecks, builtin.DefaultHamtBitwidth)
	if err != nil {
		return false, xerrors.Errorf("failed to load windowCheck: %w", err)
	}
	var (
		w     CheckVotes
		found bool
	)
	err = checks.ForEach(&w, func(k string) error {
		if w.hasVote(addr) >= 0 {
			found = true
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return found, nil
}

func (st *SubnetState) IsValidator(addr address.Address) bool {
	return hierarchical.HasValidator(addr, st.ValidatorSet)
}
