package subnet

import (
	"context"
	"math"

	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/exitcode"
	rtt "github.com/filecoin-project/go-state-types/rt"
	blockadt "github.com/filecoin-project/specs-actors/actors/util/adt"
	"github.com/filecoin-project/specs-actors/v7/actors/builtin"
	"github.com/filecoin-project/specs-actors/v7/actors/runtime"
	"github.com/filecoin-project/specs-actors/v7/actors/util/adt"
	cid "github.com/ipfs/go-cid"
	cbor "github.com/ipfs/go-ipld-cbor"
	cbg "github.com/whyrusleeping/cbor-gen"
	xerrors "golang.org/x/xerrors"

	"github.com/consensus-shipyard/subnet-actor/checkpoints/schema"
	"github.com/consensus-shipyard/subnet-actor/hierarchical"
)

const (
	// CrossMsgsAMTBitwidth determines the bitwidth to use for cross-msg AMTs.
	CrossMsgsAMTBitwidth = 3
	// MaxNonce supported in cross-msg nonces.
	MaxNonce = math.MaxUint64 >> 1
)

// CrossMsgs aggregates all the information related to crossMsgs that need to be persisted
type CrossMsgs struct {
	Msgs  []hierarchical.CrossMsg // Raw msgs from the subnet
	Metas []schema.CrossMsgMeta   // Metas propagated from child subnets
}

// MetaTag is a convenient struct
// used to compute the Cid of the MsgMeta
type MetaTag struct {
	MsgsCid  cid.Cid
	MetasCid cid.Cid
}

// Cid computes the cid for the CrossMsgs
func (cm *CrossMsgs) Cid() (cid.Cid, error) {
	cst := cbor.NewMemCborStore()
	store := blockadt.WrapStore(context.TODO(), cst)
	cArr := blockadt.MakeEmptyArray(store)
	mArr := blockadt.MakeEmptyArray(store)

	// Compute CID for list of messages generated in subnet
	for i, m := range cm.Msgs {
		mc, err := m.Cid()
		if err != nil {
			return cid.Undef, err
		}
		c := cbg.CborCid(mc)
		if err := cArr.Set(uint64(i), &c); err != nil {
			return cid.Undef, err
		}
	}

	// Compute Cid for msgsMeta propagated from child subnets.
	for i, m := range cm.Metas {
		// NOTE: Instead of using the metaCID to compute CID of msgMeta
		// we use from/to to de-duplicate between Cids of different msgMeta.
		// A child may try to push the same Cid of MsgMeta of other subnets
		// and thus remove previously stored msgMetas.
		mc, err := abi.CidBuilder.Sum([]byte(string(m.MsgsCid) + m.From + m.To))
		if err != nil {
			return cid.Undef, err
		}
		c := cbg.CborCid(mc)
		if err := mArr.Set(uint64(i), &c); err != nil {
			return cid.Undef, err
		}
	}

	croot, err := cArr.Root()
	if err != nil {
		return cid.Undef, err
	}
	mroot, err := mArr.Root()
	if err != nil {
		return cid.Undef, err
	}

	return store.Put(store.Context(), &MetaTag{
		MsgsCid:  croot,
		MetasCid: mroot,
	})
}

// AddMsg adds the Cid of a new message to the CrossMsgs
func (cm *CrossMsgs) AddMsg(msg hierarchical.CrossMsg) {
	cm.Msgs = append(cm.Msgs, msg)
}

func (cm *CrossMsgs) hasEqualMeta(meta *schema.CrossMsgMeta) bool {
	for _, m := range cm.Metas {
		if m.Equal(meta) {
			return true
		}
	}
	return false
}

// AddMetas adds a list of MsgMetas from child subnets to the CrossMsgs
func (cm *CrossMsgs) AddMetas(metas []schema.CrossMsgMeta) {
	for _, m := range metas {
		// If the same meta is already there don't include it.
		if cm.hasEqualMeta(&m) {
			continue
		}
		cm.Metas = append(cm.Metas, m)
	}
}

// CrossMsgParams wraps a cross-net message and its final destination
// subnet in the hierarchy.
type CrossMsgParams struct {
	Msg         hierarchical.CrossMsg
	Destination hierarchical.SubnetID
}

// CrossMsgRet returns the nonce the message was enqueued with.
type CrossMsgRet struct {
	Nonce uint64
}

// SubmitCrossMsg enqueues a cross-net message in the ledger of the
// direction it travels in.
//
// Top-down messages are injected by the host from the parent (only
// the system actor can submit them), bottom-up messages are opened by
// any account in the subnet and their value is escrowed in the
// burnt-funds actor until the containing checkpoint is finalized and
// the funds released in the parent.
func (a SubnetActor) SubmitCrossMsg(rt runtime.Runtime, params *CrossMsgParams) *CrossMsgRet {
	rt.ValidateImmediateCallerAcceptAny()

	var (
		st    SubnetState
		nonce uint64
		burn  = big.Zero()
	)
	rt.StateTransaction(&st, func() {
		shid := hierarchical.NewSubnetID(st.ParentID, rt.Receiver())
		msg := params.Msg
		switch hierarchical.MsgTypeFor(shid, params.Destination) {
		case hierarchical.TopDown:
			// Top-down messages are validated in the parent and
			// replicated here by the host. Nobody else can inject
			// them.
			if rt.Caller() != builtin.SystemActorAddr {
				rt.Abortf(exitcode.ErrForbidden, "only the system actor can submit top-down messages")
			}
			msg.Nonce = st.TopDownNonce
			st.storeTopDownMsg(rt, &msg)
			nonce = msg.Nonce
			incrementNonce(rt, &st.TopDownNonce)
		case hierarchical.BottomUp:
			value := rt.ValueReceived()
			if !value.Equals(msg.Value) {
				rt.Abortf(exitcode.ErrIllegalArgument, "value in message (%v) doesn't match value included in transaction (%v)", msg.Value, value)
			}
			msg.Nonce = st.BottomUpNonce
			st.storeBottomUpMsg(rt, &msg)
			nonce = msg.Nonce
			incrementNonce(rt, &st.BottomUpNonce)
			burn = value
		default:
			rt.Abortf(exitcode.ErrIllegalArgument, "destination is not a valid subnet in the hierarchy")
		}
	})

	// For bottom-up messages with value, we escrow the funds in the
	// burnt-funds actor before propagating. They are released in the
	// parent when the checkpoint carrying the message is committed.
	if burn.GreaterThan(big.Zero()) {
		code := rt.Send(builtin.BurntFundsActorAddr, builtin.MethodSend, nil, burn, &builtin.Discard{})
		if !code.IsSuccess() {
			rt.Abortf(exitcode.ErrIllegalState, "failed to escrow bottom-up value, code: %v", code)
		}
	}
	return &CrossMsgRet{Nonce: nonce}
}

// ApplyMsg executes the next pending top-down message.
//
// This function can only be triggered by the system actor, similarly
// to how rewards are applied once a block has been validated. The
// message must hold the subsequent unapplied nonce.
func (a SubnetActor) ApplyMsg(rt runtime.Runtime, params *CrossMsgParams) *abi.EmptyValue {
	// Only the system actor can trigger this function.
	rt.ValidateImmediateCallerIs(builtin.SystemActorAddr)

	var (
		st  SubnetState
		msg *hierarchical.CrossMsg
	)
	rt.StateTransaction(&st, func() {
		// NOTE: Check if the nonce of the message being applied is
		// the subsequent one (we could relax a bit this requirement,
		// but it would mean that we need to determine how we want to
		// handle gaps, and messages being validated out-of-order).
		if params.Msg.Nonce != st.AppliedTopDownNonce {
			rt.Abortf(exitcode.ErrIllegalState, "the message being applied doesn't hold the subsequent nonce (nonce=%d, applied=%d)",
				params.Msg.Nonce, st.AppliedTopDownNonce)
		}

		stored, found, err := st.GetTopDownMsg(adt.AsStore(rt), st.AppliedTopDownNonce)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to get top-down message")
		if !found {
			rt.Abortf(exitcode.ErrIllegalArgument, "no pending top-down message with nonce %d", st.AppliedTopDownNonce)
		}
		sc, err := stored.Cid()
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to compute cid for stored message")
		pc, err := params.Msg.Cid()
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalArgument, "failed to compute cid for message in params")
		if sc != pc {
			rt.Abortf(exitcode.ErrIllegalArgument, "message being applied doesn't match the queued one for nonce %d", params.Msg.Nonce)
		}
		msg = stored

		// Increment latest nonce applied for top-down.
		incrementNonce(rt, &st.AppliedTopDownNonce)
	})

	// Deliver the funds and invoke the destination.
	code := rt.Send(msg.To, msg.Method, builtin.CBORBytes(msg.Params), msg.Value, &builtin.Discard{})
	if !code.IsSuccess() {
		noop(rt, code)
	}
	return nil
}

func (st *SubnetState) storeTopDownMsg(rt runtime.Runtime, msg *hierarchical.CrossMsg) {
	crossMsgs, err := adt.AsArray(adt.AsStore(rt), st.TopDownMsgs, CrossMsgsAMTBitwidth)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to load top-down messages")
	// Set message in AMT
	err = crossMsgs.Set(msg.Nonce, msg)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to store top-down messages")
	// Flush AMT
	st.TopDownMsgs, err = crossMsgs.Root()
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to flush top-down messages")
}

func (st *SubnetState) storeBottomUpMsg(rt runtime.Runtime, msg *hierarchical.CrossMsg) {
	crossMsgs, err := adt.AsArray(adt.AsStore(rt), st.BottomUpMsgs, CrossMsgsAMTBitwidth)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to load bottom-up messages")
	// Set message in AMT
	err = crossMsgs.Set(msg.Nonce, msg)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to store bottom-up messages")
	// Flush AMT
	st.BottomUpMsgs, err = crossMsgs.Root()
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to flush bottom-up messages")
}

// GetTopDownMsg returns the top-down message for a nonce, if any.
func (st *SubnetState) GetTopDownMsg(s adt.Store, nonce uint64) (*hierarchical.CrossMsg, bool, error) {
	crossMsgs, err := adt.AsArray(s, st.TopDownMsgs, CrossMsgsAMTBitwidth)
	if err != nil {
		return nil, false, xerrors.Errorf("failed to load top-down msgs: %w", err)
	}
	return getCrossMsg(crossMsgs, nonce)
}

// GetBottomUpMsg returns the bottom-up message for a nonce, if any.
func (st *SubnetState) GetBottomUpMsg(s adt.Store, nonce uint64) (*hierarchical.CrossMsg, bool, error) {
	crossMsgs, err := adt.AsArray(s, st.BottomUpMsgs, CrossMsgsAMTBitwidth)
	if err != nil {
		return nil, false, xerrors.Errorf("failed to load bottom-up msgs: %w", err)
	}
	return getCrossMsg(crossMsgs, nonce)
}

func getCrossMsg(crossMsgs *adt.Array, nonce uint64) (*hierarchical.CrossMsg, bool, error) {
	if nonce > MaxNonce {
		return nil, false, xerrors.Errorf("maximum cross-message nonce is 2^63-1")
	}
	var out hierarchical.CrossMsg
	found, err := crossMsgs.Get(nonce, &out)
	if err != nil {
		return nil, false, xerrors.Errorf("failed to get cross-msg with nonce %v: %w", nonce, err)
	}
	if !found {
		return nil, false, nil
	}
	return &out, true, nil
}

// TopDownMsgFromNonce gets the latest top-down messages from a
// specific nonce (including the one specified, i.e. [nonce, latest],
// both limits included).
func (st *SubnetState) TopDownMsgFromNonce(s adt.Store, nonce uint64) ([]*hierarchical.CrossMsg, error) {
	crossMsgs, err := adt.AsArray(s, st.TopDownMsgs, CrossMsgsAMTBitwidth)
	if err != nil {
		return nil, xerrors.Errorf("failed to load top-down msgs: %w", err)
	}
	return crossMsgFromNonce(crossMsgs, nonce, st.TopDownNonce)
}

// BottomUpMsgFromNonce gets the latest bottom-up messages from a
// specific nonce (including the one specified, i.e. [nonce, latest],
// both limits included).
func (st *SubnetState) BottomUpMsgFromNonce(s adt.Store, nonce uint64) ([]*hierarchical.CrossMsg, error) {
	crossMsgs, err := adt.AsArray(s, st.BottomUpMsgs, CrossMsgsAMTBitwidth)
	if err != nil {
		return nil, xerrors.Errorf("failed to load bottom-up msgs: %w", err)
	}
	return crossMsgFromNonce(crossMsgs, nonce, st.BottomUpNonce)
}

func crossMsgFromNonce(crossMsgs *adt.Array, nonce, latest uint64) ([]*hierarchical.CrossMsg, error) {
	out := make([]*hierarchical.CrossMsg, 0)
	for i := nonce; i < latest; i++ {
		msg, found, err := getCrossMsg(crossMsgs, i)
		if err != nil {
			return nil, err
		}
		if found {
			out = append(out, msg)
		}
	}
	return out, nil
}

// Using this approach to increment nonce to avoid code repetition.
// We could probably do better and be more efficient if we had generics.
func incrementNonce(rt runtime.Runtime, nonceCounter *uint64) {
	// Increment nonce.
	(*nonceCounter)++

	// If overflow we restart from zero.
	if *nonceCounter > MaxNonce {
		// FIXME: This won't be a problem in the short-term, but we should handle this.
		// We could maybe use a snapshot or paging approach so new peers can sync
		// from scratch while restarting the nonce for cross-message for subnets to zero.
		rt.Abortf(exitcode.ErrIllegalState, "nonce overflow not supported yet")
	}
}

// noop is triggered to notify when a crossMsg fails to be applied.
func noop(rt runtime.Runtime, code exitcode.ExitCode) {
	// NOTE: If the message is not well-formed and something fails when applying the message,
	// instead of aborting (which could be harming the liveliness of the subnet consensus protocol, as there wouldn't
	// be a way of applying the top-down message and allowing the nonce sequence continue), we log the error
	// and seamlessly increment the nonce without triggering the state changes for the cross-msg. This may require
	// notifying the source subnet in some way so it may revert potential state changes in the cross-msg path.
	rt.Log(rtt.WARN, `cross-msg couldn't be applied. Failed with code: %v.
	Some state changes in other subnet may need to be reverted`, code)
}
