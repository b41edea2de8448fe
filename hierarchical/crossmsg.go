package hierarchical

import (
	"bytes"

	address "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	cid "github.com/ipfs/go-cid"
)

// CrossMsg is a message crossing subnet boundaries.
//
// The ledger that queues cross-net messages treats the payload as
// opaque; only the nonce is interpreted, as the ordering invariant
// for the direction the message travels in.
type CrossMsg struct {
	From   address.Address
	To     address.Address
	Method abi.MethodNum
	Value  abi.TokenAmount
	Nonce  uint64
	Params []byte
}

// Cid of the cross-net message, computed over its cbor encoding.
func (m *CrossMsg) Cid() (cid.Cid, error) {
	buf := new(bytes.Buffer)
	if err := m.MarshalCBOR(buf); err != nil {
		return cid.Undef, err
	}
	return abi.CidBuilder.Sum(buf.Bytes())
}
