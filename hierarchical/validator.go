package hierarchical

import (
	"fmt"

	addr "github.com/filecoin-project/go-address"
)

// Validator is a member of a subnet's validator set, entitled to
// submit and vote for checkpoints with a weight proportional to
// its collateral.
type Validator struct {
	Subnet  SubnetID
	Addr    addr.Address
	NetAddr string
}

func NewValidator(subnet SubnetID, a addr.Address, netAddr string) Validator {
	return Validator{
		Subnet:  subnet,
		Addr:    a,
		NetAddr: netAddr,
	}
}

func (v *Validator) ID() string {
	return fmt.Sprintf("%s:%s", v.NetAddr, v.Addr)
}

func GetValidatorAddrs(vals []Validator) []addr.Address {
	var addrs []addr.Address
	for _, v := range vals {
		addrs = append(addrs, v.Addr)
	}
	return addrs
}

// HasValidator reports if an address is part of a validator set.
func HasValidator(a addr.Address, vals []Validator) bool {
	for _, v := range vals {
		if v.Addr == a {
			return true
		}
	}
	return false
}
