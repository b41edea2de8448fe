package checkpoint_test

import (
	"context"
	"testing"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-crypto"
	"github.com/filecoin-project/go-state-types/abi"
	tutil "github.com/filecoin-project/specs-actors/v7/support/testing"
	"github.com/stretchr/testify/require"

	checkpoint "github.com/consensus-shipyard/subnet-actor/checkpoints"
	"github.com/consensus-shipyard/subnet-actor/checkpoints/schema"
	"github.com/consensus-shipyard/subnet-actor/checkpoints/utils"
	"github.com/consensus-shipyard/subnet-actor/hierarchical"
)

func TestSingleSigner(t *testing.T) {
	ctx := context.Background()
	pk, err := crypto.GenerateKey()
	require.NoError(t, err)
	addr, err := address.NewSecp256k1Address(crypto.PublicKey(pk))
	require.NoError(t, err)
	idAddr := tutil.NewIDAddr(t, 101)

	ver := checkpoint.NewSingleSigner()

	epoch := abi.ChainEpoch(1000)
	ch := schema.NewRawCheckpoint(hierarchical.RootSubnet, epoch)

	// Add child checkpoints
	ch.AddListChilds(utils.GenRandChecks(3))

	// Sign
	err = ver.Sign(ctx, pk, idAddr, ch)
	require.NoError(t, err)
	require.NotEqual(t, len(ch.Signature), 0)

	// Verify
	sigAddr, sigIDAddr, err := ver.Verify(ch)
	require.NoError(t, err)
	require.Equal(t, addr, sigAddr)
	require.Equal(t, idAddr, sigIDAddr)

	// Verification fails if something in the checkpoint changes
	ch.Data.Epoch = 120
	_, _, err = ver.Verify(ch)
	require.Error(t, err)

	// Verification fails if signed by a different key
	pk2, err := crypto.GenerateKey()
	require.NoError(t, err)
	ch2 := schema.NewRawCheckpoint(hierarchical.RootSubnet, epoch)
	err = ver.Sign(ctx, pk2, idAddr, ch2)
	require.NoError(t, err)
	sigAddr, _, err = ver.Verify(ch2)
	require.NoError(t, err)
	require.NotEqual(t, addr, sigAddr)
}
