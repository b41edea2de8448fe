package subnet_test

import (
	"testing"

	address "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/exitcode"
	"github.com/filecoin-project/specs-actors/v7/actors/builtin"
	"github.com/filecoin-project/specs-actors/v7/actors/util/adt"
	"github.com/filecoin-project/specs-actors/v7/support/mock"
	tutil "github.com/filecoin-project/specs-actors/v7/support/testing"
	"github.com/stretchr/testify/require"

	"github.com/consensus-shipyard/subnet-actor/actors/gateway"
	actor "github.com/consensus-shipyard/subnet-actor/actors/subnet"
	"github.com/consensus-shipyard/subnet-actor/checkpoints/schema"
	"github.com/consensus-shipyard/subnet-actor/hierarchical"
)

func TestSubmitCrossMsgBottomUp(t *testing.T) {
	h := newHarness(t)
	rt := getRuntime(t)
	h.constructAndVerify(t, rt)
	sender := tutil.NewIDAddr(t, 101)
	rcpt := tutil.NewIDAddr(t, 102)

	t.Log("messages to the parent get consecutive bottom-up nonces")
	for i := 0; i < 3; i++ {
		value := abi.NewTokenAmount(1e17)
		msg := hierarchical.CrossMsg{
			From:   sender,
			To:     rcpt,
			Method: builtin.MethodSend,
			Value:  value,
		}
		rt.SetCaller(sender, builtin.AccountActorCodeID)
		rt.SetReceived(value)
		rt.SetBalance(value)
		rt.ExpectValidateCallerAny()
		// The value travels with the message, the subnet replica is burnt.
		rt.ExpectSend(builtin.BurntFundsActorAddr, builtin.MethodSend, nil, value, nil, exitcode.Ok)
		ret := rt.Call(h.SubnetActor.SubmitCrossMsg,
			&actor.CrossMsgParams{Msg: msg, Destination: hierarchical.RootSubnet})
		rt.Verify()
		require.Equal(t, ret.(*actor.CrossMsgRet).Nonce, uint64(i))
	}
	st := getState(rt)
	require.Equal(t, st.BottomUpNonce, uint64(3))
	require.Equal(t, st.AppliedBottomUpNonce, uint64(0))
	for i := uint64(0); i < 3; i++ {
		out, found, err := st.GetBottomUpMsg(adt.AsStore(rt), i)
		require.NoError(t, err)
		require.True(t, found)
		require.Equal(t, out.Nonce, i)
		require.Equal(t, out.From, sender)
	}

	t.Log("value mismatch with the transaction is rejected")
	msg := hierarchical.CrossMsg{
		From:   sender,
		To:     rcpt,
		Method: builtin.MethodSend,
		Value:  abi.NewTokenAmount(1e17),
	}
	rt.SetReceived(big.Zero())
	rt.ExpectValidateCallerAny()
	rt.ExpectAbort(exitcode.ErrIllegalArgument, func() {
		rt.Call(h.SubnetActor.SubmitCrossMsg,
			&actor.CrossMsgParams{Msg: msg, Destination: hierarchical.RootSubnet})
	})

	t.Log("undefined destination is rejected")
	rt.SetReceived(msg.Value)
	rt.ExpectValidateCallerAny()
	rt.ExpectAbort(exitcode.ErrIllegalArgument, func() {
		rt.Call(h.SubnetActor.SubmitCrossMsg,
			&actor.CrossMsgParams{Msg: msg, Destination: hierarchical.UndefSubnetID})
	})
}

func TestSubmitCrossMsgTopDown(t *testing.T) {
	h := newHarness(t)
	rt := getRuntime(t)
	h.constructAndVerify(t, rt)
	shid := hierarchical.NewSubnetID(hierarchical.RootSubnet, tutil.NewIDAddr(t, 100))
	dest := hierarchical.NewSubnetID(shid, tutil.NewIDAddr(t, 101))
	rcpt := tutil.NewIDAddr(t, 102)

	t.Log("only the system actor can inject top-down messages")
	msg := hierarchical.CrossMsg{
		From:   tutil.NewIDAddr(t, 103),
		To:     rcpt,
		Method: builtin.MethodSend,
		Value:  abi.NewTokenAmount(1e17),
	}
	rt.SetCaller(tutil.NewIDAddr(t, 103), builtin.AccountActorCodeID)
	rt.SetReceived(big.Zero())
	rt.ExpectValidateCallerAny()
	rt.ExpectAbort(exitcode.ErrForbidden, func() {
		rt.Call(h.SubnetActor.SubmitCrossMsg,
			&actor.CrossMsgParams{Msg: msg, Destination: dest})
	})

	t.Log("top-down messages get consecutive nonces")
	rt.SetCaller(builtin.SystemActorAddr, builtin.SystemActorCodeID)
	for i := 0; i < 2; i++ {
		rt.SetReceived(big.Zero())
		rt.ExpectValidateCallerAny()
		ret := rt.Call(h.SubnetActor.SubmitCrossMsg,
			&actor.CrossMsgParams{Msg: msg, Destination: dest})
		rt.Verify()
		require.Equal(t, ret.(*actor.CrossMsgRet).Nonce, uint64(i))
	}
	st := getState(rt)
	require.Equal(t, st.TopDownNonce, uint64(2))
	require.Equal(t, st.AppliedTopDownNonce, uint64(0))
	out, found, err := st.GetTopDownMsg(adt.AsStore(rt), 1)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, out.Nonce, uint64(1))
}

func TestApplyMsg(t *testing.T) {
	h := newHarness(t)
	rt := getRuntime(t)
	h.constructAndVerify(t, rt)
	shid := hierarchical.NewSubnetID(hierarchical.RootSubnet, tutil.NewIDAddr(t, 100))
	rcpt := tutil.NewIDAddr(t, 102)

	// Enqueue two top-down messages.
	msgs := make([]hierarchical.CrossMsg, 0)
	rt.SetCaller(builtin.SystemActorAddr, builtin.SystemActorCodeID)
	for i := 0; i < 2; i++ {
		msg := hierarchical.CrossMsg{
			From:   tutil.NewIDAddr(t, 103),
			To:     rcpt,
			Method: builtin.MethodSend,
			Value:  abi.NewTokenAmount(int64(i+1) * 1e17),
		}
		rt.SetReceived(big.Zero())
		rt.ExpectValidateCallerAny()
		ret := rt.Call(h.SubnetActor.SubmitCrossMsg,
			&actor.CrossMsgParams{Msg: msg, Destination: shid})
		rt.Verify()
		msg.Nonce = ret.(*actor.CrossMsgRet).Nonce
		msgs = append(msgs, msg)
	}

	t.Log("messages can't be applied out of order")
	rt.SetCaller(builtin.SystemActorAddr, builtin.SystemActorCodeID)
	rt.ExpectValidateCallerAddr(builtin.SystemActorAddr)
	rt.ExpectAbort(exitcode.ErrIllegalState, func() {
		rt.Call(h.SubnetActor.ApplyMsg, &actor.CrossMsgParams{Msg: msgs[1], Destination: shid})
	})

	t.Log("a message that doesn't match the queued one is rejected")
	tampered := msgs[0]
	tampered.Value = abi.NewTokenAmount(5e17)
	rt.ExpectValidateCallerAddr(builtin.SystemActorAddr)
	rt.ExpectAbort(exitcode.ErrIllegalArgument, func() {
		rt.Call(h.SubnetActor.ApplyMsg, &actor.CrossMsgParams{Msg: tampered, Destination: shid})
	})

	t.Log("applying the subsequent nonce delivers the funds")
	rt.SetBalance(msgs[0].Value)
	rt.ExpectValidateCallerAddr(builtin.SystemActorAddr)
	rt.ExpectSend(rcpt, builtin.MethodSend, builtin.CBORBytes(nil), msgs[0].Value, nil, exitcode.Ok)
	rt.Call(h.SubnetActor.ApplyMsg, &actor.CrossMsgParams{Msg: msgs[0], Destination: shid})
	rt.Verify()
	st := getState(rt)
	require.Equal(t, st.AppliedTopDownNonce, uint64(1))

	t.Log("a failed delivery doesn't block the nonce sequence")
	rt.SetBalance(msgs[1].Value)
	rt.ExpectValidateCallerAddr(builtin.SystemActorAddr)
	rt.ExpectSend(rcpt, builtin.MethodSend, builtin.CBORBytes(nil), msgs[1].Value, nil, exitcode.ErrForbidden)
	rt.Call(h.SubnetActor.ApplyMsg, &actor.CrossMsgParams{Msg: msgs[1], Destination: shid})
	rt.Verify()
	st = getState(rt)
	require.Equal(t, st.AppliedTopDownNonce, uint64(2))
}

func TestCheckpointCrossMsgMeta(t *testing.T) {
	h := newHarness(t)
	rt := getRuntime(t)
	h.constructAndVerify(t, rt)
	v1 := newValidatorKey(t, rt, 101)
	v2 := newValidatorKey(t, rt, 102)
	h.joinValidators(t, rt, []*validatorKey{v1, v2},
		[]abi.TokenAmount{abi.NewTokenAmount(4e18), abi.NewTokenAmount(35e17)})
	shid := hierarchical.NewSubnetID(hierarchical.RootSubnet, tutil.NewIDAddr(t, 100))

	// Two bottom-up messages pending for the parent.
	sender := tutil.NewIDAddr(t, 103)
	value := abi.NewTokenAmount(1e17)
	for i := 0; i < 2; i++ {
		h.submitBottomUp(t, rt, sender, value)
	}

	st := getState(rt)
	meta, msgs, err := st.CrossMsgsForCheckpoint(adt.AsStore(rt), shid)
	require.NoError(t, err)
	require.Equal(t, len(msgs), 2)
	require.Equal(t, meta.StartNonce, 0)
	require.Equal(t, meta.Count, 2)
	mvalue, err := meta.GetValue()
	require.NoError(t, err)
	require.Equal(t, mvalue, big.Mul(abi.NewTokenAmount(2), value))

	t.Log("finalizing a checkpoint with the meta consumes the messages")
	epoch := st.CheckPeriod
	ch := newRawCheckpoint(t, rt, shid, epoch)
	ch.AppendMsgMeta(meta)
	sret := h.submitCheckpointSigned(t, rt, v1, ch)
	require.Equal(t, sret.Status, actor.StatusAccepted)
	// Submission doesn't consume anything until quorum.
	st = getState(rt)
	require.Equal(t, st.AppliedBottomUpNonce, uint64(0))
	h.finalizeCheckpoint(t, rt, v2, ch)
	st = getState(rt)
	require.Equal(t, st.AppliedBottomUpNonce, uint64(2))

	t.Log("a finalized meta that skips nonces is rejected")
	h.submitBottomUp(t, rt, sender, value)
	st = getState(rt)
	meta2, msgs, err := st.CrossMsgsForCheckpoint(adt.AsStore(rt), shid)
	require.NoError(t, err)
	require.Equal(t, len(msgs), 1)
	require.Equal(t, meta2.StartNonce, 2)
	badMeta := *meta2
	badMeta.StartNonce = 3
	epoch = 2 * st.CheckPeriod
	chBad := newRawCheckpoint(t, rt, shid, epoch)
	chBad.AppendMsgMeta(&badMeta)
	sret = h.submitCheckpointSigned(t, rt, v1, chBad)
	require.Equal(t, sret.Status, actor.StatusAccepted)
	signCheckpoint(t, chBad, v2.pk, v2.id)
	rt.SetCaller(v2.id, builtin.AccountActorCodeID)
	rt.ExpectValidateCallerType(builtin.AccountActorCodeID)
	rt.ExpectAbort(exitcode.ErrIllegalState, func() {
		rt.Call(h.SubnetActor.SubmitCheckpoint, &gateway.CheckpointParams{Checkpoint: marshalCheckpoint(t, chBad)})
	})
	st = getState(rt)
	require.Equal(t, st.AppliedBottomUpNonce, uint64(2))

	t.Log("the meta starting at the next unconsumed nonce is accepted")
	ch2 := newRawCheckpoint(t, rt, shid, epoch)
	ch2.AppendMsgMeta(meta2)
	sret = h.submitCheckpointSigned(t, rt, v1, ch2)
	require.Equal(t, sret.Status, actor.StatusAccepted)
	h.finalizeCheckpoint(t, rt, v2, ch2)
	st = getState(rt)
	require.Equal(t, st.AppliedBottomUpNonce, uint64(3))
}

func TestCrossMsgsCid(t *testing.T) {
	sender := tutil.NewIDAddr(t, 101)
	rcpt := tutil.NewIDAddr(t, 102)
	msg := hierarchical.CrossMsg{
		From:   sender,
		To:     rcpt,
		Method: builtin.MethodSend,
		Value:  abi.NewTokenAmount(1e17),
	}

	cm := &actor.CrossMsgs{}
	cm.AddMsg(msg)
	c1, err := cm.Cid()
	require.NoError(t, err)
	cm2 := &actor.CrossMsgs{}
	cm2.AddMsg(msg)
	c2, err := cm2.Cid()
	require.NoError(t, err)
	require.Equal(t, c1, c2)

	// Any change in the messages changes the aggregate.
	msg.Nonce = 3
	cm2.AddMsg(msg)
	c3, err := cm2.Cid()
	require.NoError(t, err)
	require.NotEqual(t, c1, c3)
}

// submitBottomUp enqueues a bottom-up message to the parent with its
// value escrow.
func (h *shActorHarness) submitBottomUp(t *testing.T, rt *mock.Runtime, sender address.Address, value abi.TokenAmount) {
	msg := hierarchical.CrossMsg{
		From:   sender,
		To:     sender,
		Method: builtin.MethodSend,
		Value:  value,
	}
	rt.SetCaller(sender, builtin.AccountActorCodeID)
	rt.SetReceived(value)
	rt.SetBalance(value)
	rt.ExpectValidateCallerAny()
	rt.ExpectSend(builtin.BurntFundsActorAddr, builtin.MethodSend, nil, value, nil, exitcode.Ok)
	rt.Call(h.SubnetActor.SubmitCrossMsg,
		&actor.CrossMsgParams{Msg: msg, Destination: hierarchical.RootSubnet})
	rt.Verify()
}

// finalizeCheckpoint casts the vote that tips the candidate over the
// quorum threshold and expects the commit in the gateway.
func (h *shActorHarness) finalizeCheckpoint(t *testing.T, rt *mock.Runtime, v *validatorKey, ch *schema.Checkpoint) {
	signCheckpoint(t, ch, v.pk, v.id)
	b := marshalCheckpoint(t, ch)
	rt.SetCaller(v.id, builtin.AccountActorCodeID)
	rt.ExpectValidateCallerType(builtin.AccountActorCodeID)
	rt.ExpectSend(hierarchical.SubnetCoordActorAddr, gateway.Methods.CommitChildCheckpoint,
		&gateway.CheckpointParams{Checkpoint: b}, big.Zero(), nil, exitcode.Ok)
	ret := rt.Call(h.SubnetActor.SubmitCheckpoint, &gateway.CheckpointParams{Checkpoint: b})
	rt.Verify()
	require.Equal(t, ret.(*actor.SubmitCheckpointReturn).Status, actor.StatusFinalized)
}
