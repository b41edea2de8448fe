package checkpoint

import (
	"context"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-crypto"
	stcrypto "github.com/filecoin-project/go-state-types/crypto"
	blake2b "github.com/minio/blake2b-simd"
	"golang.org/x/xerrors"

	"github.com/consensus-shipyard/subnet-actor/checkpoints/schema"
	"github.com/consensus-shipyard/subnet-actor/checkpoints/types"
)

// Signer implements the logic to sign and verify a checkpoint.
//
// Each subnet may choose to implement their own signature and
// verification strategies for checkpoints. A subnet looking to
// implement their own verifier will need to implement this interface
// with the desired logic.
type Signer interface {
	Sign(ctx context.Context, pk []byte, idAddr address.Address, c *schema.Checkpoint) error
	Verify(c *schema.Checkpoint) (address.Address, address.Address, error)
}

var _ Signer = SingleSigner{}

// SingleSigner is a simple signer that signs the checkpoint cid with
// a single secp256k1 key, and verifies the signature envelope
// included in the checkpoint by public key recovery.
type SingleSigner struct{}

func NewSingleSigner() SingleSigner {
	return SingleSigner{}
}

func sigDigest(c *schema.Checkpoint) ([32]byte, error) {
	cid, err := c.Cid()
	if err != nil {
		return [32]byte{}, err
	}
	return blake2b.Sum256(cid.Hash()), nil
}

func (v SingleSigner) Sign(ctx context.Context, pk []byte, idAddr address.Address, c *schema.Checkpoint) error {
	digest, err := sigDigest(c)
	if err != nil {
		return err
	}
	// Create raw signature over the checkpoint cid.
	raw, err := crypto.Sign(pk, digest[:])
	if err != nil {
		return err
	}
	sign := stcrypto.Signature{Type: stcrypto.SigTypeSecp256k1, Data: raw}
	rawSig, err := sign.MarshalBinary()
	if err != nil {
		return err
	}
	// The key address is recoverable from the signature, the envelope
	// claims additionally the ID address the signer acts as.
	addr, err := address.NewSecp256k1Address(crypto.PublicKey(pk))
	if err != nil {
		return err
	}
	// Package it inside an envelope and the signature of the checkpoint
	sig, err := schema.NewSignature(schema.NewSingleSignEnvelope(addr, idAddr, rawSig), types.SingleSignature)
	if err != nil {
		return err
	}
	c.Signature, err = sig.MarshalBinary()

	return err
}

func (v SingleSigner) Verify(c *schema.Checkpoint) (address.Address, address.Address, error) {
	// Collect envelope from signature in checkpoint.
	sig := schema.Signature{}
	err := sig.UnmarshalBinary(c.Signature)
	if err != nil {
		return address.Undef, address.Undef, err
	}
	// Check if the envelope has the right type.
	if sig.SignatureID != types.SingleSignature {
		return address.Undef, address.Undef, xerrors.Errorf("wrong signer. Envelope is not of SingleSignType")
	}
	// Unmarshal the envelope.
	e := schema.SingleSignEnvelope{}
	err = e.UnmarshalCBOR(sig.Sig)
	if err != nil {
		return address.Undef, address.Undef, err
	}
	digest, err := sigDigest(c)
	if err != nil {
		return address.Undef, address.Undef, err
	}
	// Gather raw signature from envelope
	checkSig := &stcrypto.Signature{}
	err = checkSig.UnmarshalBinary(e.Signature)
	if err != nil {
		return address.Undef, address.Undef, err
	}
	if checkSig.Type != stcrypto.SigTypeSecp256k1 {
		return address.Undef, address.Undef, xerrors.Errorf("checkpoint not signed with a secp256k1 key")
	}
	// Recover public key from the signature and check it against the
	// address claimed in the envelope.
	pub, err := crypto.EcRecover(digest[:], checkSig.Data)
	if err != nil {
		return address.Undef, address.Undef, err
	}
	recovered, err := address.NewSecp256k1Address(pub)
	if err != nil {
		return address.Undef, address.Undef, err
	}
	addr, err := address.NewFromString(e.Address)
	if err != nil {
		return address.Undef, address.Undef, err
	}
	if recovered != addr {
		return address.Undef, address.Undef, xerrors.Errorf("signature not generated by address in envelope")
	}
	idAddr, err := address.NewFromString(e.IDAddress)
	if err != nil {
		return address.Undef, address.Undef, err
	}
	return addr, idAddr, nil
}
