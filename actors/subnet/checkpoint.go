package subnet

import (
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/exitcode"
	"github.com/filecoin-project/specs-actors/v7/actors/builtin"
	"github.com/filecoin-project/specs-actors/v7/actors/runtime"
	"github.com/filecoin-project/specs-actors/v7/actors/util/adt"

	"github.com/consensus-shipyard/subnet-actor/actors/gateway"
	checkpoint "github.com/consensus-shipyard/subnet-actor/checkpoints"
	"github.com/consensus-shipyard/subnet-actor/checkpoints/schema"
	"github.com/consensus-shipyard/subnet-actor/hierarchical"
)

// CheckpointStatus is the outcome of a checkpoint submission.
type CheckpointStatus uint64

const (
	// StatusAccepted is returned when the vote was recorded but the
	// candidate hasn't reached quorum yet.
	StatusAccepted CheckpointStatus = iota
	// StatusFinalized is returned when the vote tipped the candidate
	// over the quorum threshold and it was appended to the chain.
	StatusFinalized
	// StatusAlreadyFinalized is returned when a checkpoint was
	// already finalized for the submitted epoch. The submission is a
	// no-op, resubmitting a finalized checkpoint is not a fault.
	StatusAlreadyFinalized
)

type SubmitCheckpointReturn struct {
	Status CheckpointStatus
}

// SubmitCheckpoint accepts a signed checkpoint vote for the current
// window.
//
// Votes are collected per candidate until one of them accumulates
// strictly more than 2/3 of the stake snapshot taken when the window
// opened. At that point the candidate is finalized: its cross-message
// meta is checked against the pending bottom-up queue and consumed,
// the checkpoint is appended to the committed chain, and the result
// is propagated to the gateway in the parent.
func (a SubnetActor) SubmitCheckpoint(rt runtime.Runtime, params *gateway.CheckpointParams) *SubmitCheckpointReturn {
	// Only account actors can submit checkpoint votes.
	rt.ValidateImmediateCallerType(builtin.AccountActorCodeID)
	submitter := rt.Caller()

	submit := &schema.Checkpoint{}
	err := submit.UnmarshalBinary(params.Checkpoint)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalArgument, "error unmarshalling checkpoint in params")

	// Check that the signature verifies and belongs to the caller
	// before inspecting any state.
	sigAddr, sigIDAddr, err := checkpoint.NewSingleSigner().Verify(submit)
	builtin.RequireNoErr(rt, err, exitcode.ErrForbidden, "checkpoint signature verification failed")
	if sigIDAddr != submitter {
		rt.Abortf(exitcode.ErrForbidden, "checkpoint not signed on behalf of the submitter")
	}
	resolved, ok := rt.ResolveAddress(sigAddr)
	if !ok || resolved != submitter {
		rt.Abortf(exitcode.ErrForbidden, "signing key doesn't resolve to the submitter")
	}

	var (
		st        SubnetState
		ret       SubmitCheckpointReturn
		finalized bool
	)
	rt.StateTransaction(&st, func() {
		store := adt.AsStore(rt)
		if !st.IsValidator(submitter) {
			rt.Abortf(exitcode.ErrForbidden, "caller is not a validator of the subnet")
		}

		shid := hierarchical.NewSubnetID(st.ParentID, rt.Receiver())
		if submit.Source() != shid {
			rt.Abortf(exitcode.ErrIllegalArgument, "checkpoint doesn't belong to this subnet")
		}
		epoch := submit.Epoch()
		if epoch <= 0 || epoch%st.CheckPeriod != 0 {
			rt.Abortf(exitcode.ErrIllegalArgument, "epoch in checkpoint is not a checkpoint period multiple")
		}

		// A checkpoint already committed for the epoch means the
		// quorum was already reached. Nothing to do, and no fault:
		// late votes for finalized epochs are expected.
		_, found, err := st.GetCheckpoint(store, epoch)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to get checkpoint for epoch")
		if found {
			ret.Status = StatusAlreadyFinalized
			return
		}

		if epoch < st.CurrWindow {
			rt.Abortf(exitcode.ErrIllegalState, "epoch %v is behind the current voting window %v", epoch, st.CurrWindow)
		}
		if epoch > st.CurrWindow {
			// The chain moved on to a new window. Drop every proposal
			// of the stale window and snapshot the total stake votes
			// will be weighed against.
			err := st.clearWindow(store)
			builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to clear voting window")
			st.CurrWindow = epoch
			st.WindowTotalStake = st.TotalStake
		}

		// The checkpoint must chain onto the last committed one.
		prevCid, err := st.PrevCheckCid(store, epoch)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to get previous checkpoint cid")
		if submit.PreviousCheck() != prevCid {
			rt.Abortf(exitcode.ErrIllegalArgument, "previous checkpoint in submission doesn't match the last committed one")
		}

		c, err := submit.Cid()
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to compute checkpoint cid")

		// A validator has a single vote in the window. Voting again
		// for the same candidate is a fault, voting for a different
		// one revokes the previous vote.
		if duplicate := st.revokeVote(rt, submitter, c); duplicate {
			rt.Abortf(exitcode.ErrIllegalArgument, "validator already voted for this checkpoint")
		}

		votes, found, err := st.GetWindowChecks(store, c)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to get votes for checkpoint")
		if !found {
			votes = emptyCheckVotes()
		}

		power, err := st.GetStake(store, submitter)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to get stake for validator")
		votes.Validators = append(votes.Validators, submitter)
		votes.Powers = append(votes.Powers, power)
		votes.Sum = big.Add(votes.Sum, power)

		// The voted power for a single candidate can never exceed the
		// stake snapshot of the window.
		if votes.Sum.GreaterThan(st.WindowTotalStake) {
			rt.Abortf(exitcode.ErrIllegalState, "candidate votes %v exceed the window's total stake %v", votes.Sum, st.WindowTotalStake)
		}

		if !st.hasQuorum(votes) {
			st.flushWindowChecks(rt, c, votes)
			ret.Status = StatusAccepted
			return
		}

		// Quorum reached. Consume the cross-messages the checkpoint
		// claims, commit it and close the window, all in this same
		// state transaction.
		st.applyCheckMsgMeta(rt, submit, shid)
		st.flushCheckpoint(rt, submit)
		err = st.clearWindow(store)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to clear voting window")
		ret.Status = StatusFinalized
		finalized = true
	})

	if finalized {
		log.Infof("finalized checkpoint for epoch %d in subnet %v", submit.Data.Epoch, submit.Data.Source)
		// Propagate the committed checkpoint to the gateway in the
		// parent chain.
		code := rt.Send(hierarchical.SubnetCoordActorAddr, gateway.Methods.CommitChildCheckpoint,
			&gateway.CheckpointParams{Checkpoint: params.Checkpoint}, big.Zero(), &builtin.Discard{})
		if !code.IsSuccess() {
			rt.Abortf(exitcode.ErrIllegalState, "failed committing checkpoint in gateway")
		}
	}

	return &ret
}

// applyCheckMsgMeta verifies the cross-message meta of a finalized
// checkpoint against the pending bottom-up queue and marks the
// claimed messages as consumed.
//
// A checkpoint with no meta for the route to the parent consumes
// nothing, the pending messages stay queued for the next period.
func (st *SubnetState) applyCheckMsgMeta(rt runtime.Runtime, ch *schema.Checkpoint, shid hierarchical.SubnetID) {
	meta, _ := ch.CrossMsgMeta(shid, st.ParentID)
	if meta == nil {
		return
	}
	store := adt.AsStore(rt)

	// Consumption happens strictly in nonce order. The meta must
	// start exactly at the next unconsumed nonce.
	if uint64(meta.StartNonce) != st.AppliedBottomUpNonce {
		rt.Abortf(exitcode.ErrIllegalState, "msgMeta out of order: starts at nonce %d, expected %d",
			meta.StartNonce, st.AppliedBottomUpNonce)
	}

	msgs, err := st.BottomUpMsgFromNonce(store, uint64(meta.StartNonce))
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to get bottom-up messages")
	if meta.Count <= 0 || meta.Count > len(msgs) {
		rt.Abortf(exitcode.ErrIllegalArgument, "msgMeta claims %d messages, %d pending", meta.Count, len(msgs))
	}
	msgs = msgs[:meta.Count]

	// Recompute the aggregate over the claimed range. The meta of the
	// candidate the validators signed must commit to exactly the
	// messages this actor has queued.
	value := abi.NewTokenAmount(0)
	crossMsgs := &CrossMsgs{}
	for _, m := range msgs {
		crossMsgs.AddMsg(*m)
		value = big.Add(value, m.Value)
	}
	mcid, err := crossMsgs.Cid()
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to compute cid for msgMeta")
	metaCid, err := meta.GetCid()
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalArgument, "failed to get cid from msgMeta")
	if mcid != metaCid {
		rt.Abortf(exitcode.ErrIllegalArgument, "msgMeta doesn't commit to the messages pending in the subnet")
	}
	metaValue, err := meta.GetValue()
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalArgument, "failed to get value from msgMeta")
	if !metaValue.Equals(value) {
		rt.Abortf(exitcode.ErrIllegalArgument, "msgMeta value doesn't match the value of the messages pending in the subnet")
	}

	// Mark the range as consumed.
	for i := 0; i < meta.Count; i++ {
		incrementNonce(rt, &st.AppliedBottomUpNonce)
	}
}

// CrossMsgsForCheckpoint bundles every pending bottom-up message into
// the meta a checkpoint candidate for this subnet should carry.
//
// The bundle drains the full pending queue. It doesn't consume
// anything, consumption happens when the checkpoint carrying the meta
// is finalized.
func (st *SubnetState) CrossMsgsForCheckpoint(s adt.Store, shid hierarchical.SubnetID) (*schema.CrossMsgMeta, []*hierarchical.CrossMsg, error) {
	msgs, err := st.BottomUpMsgFromNonce(s, st.AppliedBottomUpNonce)
	if err != nil {
		return nil, nil, err
	}
	if len(msgs) == 0 {
		return nil, nil, nil
	}

	value := abi.NewTokenAmount(0)
	crossMsgs := &CrossMsgs{}
	for _, m := range msgs {
		crossMsgs.AddMsg(*m)
		value = big.Add(value, m.Value)
	}
	mcid, err := crossMsgs.Cid()
	if err != nil {
		return nil, nil, err
	}

	meta := schema.NewCrossMsgMeta(shid, st.ParentID)
	meta.SetCid(mcid)
	meta.StartNonce = int(st.AppliedBottomUpNonce)
	meta.Count = len(msgs)
	meta.Value = value.String()
	return meta, msgs, nil
}
