package hierarchical

import (
	"strings"

	address "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
)

// SubnetSeparator used in the SubnetID to
// mark the different levels of the hierarchy
const SubnetSeparator = "/"

// RootSubnet is the ID of the root network
const RootSubnet = SubnetID("/root")

// UndefSubnetID is the undef ID
const UndefSubnetID = SubnetID("")

// SubnetID represents the ID of a subnet. It is composed of the
// chain of subnet actor addresses that need to be traversed from the
// root to reach the subnet (i.e. its path in the hierarchy).
type SubnetID string

// NewSubnetID generates the ID for a subnet from the networkName
// of its parent.
//
// It takes the parent name and adds the source address of the subnet
// actor that represents the subnet.
func NewSubnetID(parentName SubnetID, SubnetActorAddr address.Address) SubnetID {
	return SubnetID(string(parentName) + SubnetSeparator + SubnetActorAddr.String())
}

func SubnetIDFromString(str string) (SubnetID, error) {
	switch str {
	case string(RootSubnet):
		return RootSubnet, nil
	case string(UndefSubnetID):
		return UndefSubnetID, nil
	}

	s1 := strings.Split(str, SubnetSeparator)
	// check that all the elements in the path of the subnet are valid addresses.
	for _, a := range s1[2:] {
		if _, err := address.NewFromString(a); err != nil {
			return UndefSubnetID, err
		}
	}
	return SubnetID(str), nil
}

// Parent returns the ID of the parent network.
func (id SubnetID) Parent() SubnetID {
	if id == RootSubnet {
		return UndefSubnetID
	}
	i := strings.LastIndex(string(id), SubnetSeparator)
	if i < 0 {
		return UndefSubnetID
	}
	return SubnetID(string(id)[:i])
}

// Actor returns the subnet actor responsible for the subnet.
func (id SubnetID) Actor() (address.Address, error) {
	if id == RootSubnet {
		return address.Undef, nil
	}
	i := strings.LastIndex(string(id), SubnetSeparator)
	if i < 0 {
		return address.Undef, nil
	}
	return address.NewFromString(string(id)[i+1:])
}

// CommonParent returns the common parent of the current subnet and the
// one given as argument, along with the number of levels that need to
// be traversed from the root to reach it.
func (id SubnetID) CommonParent(other SubnetID) (SubnetID, int) {
	s1 := strings.Split(string(id), SubnetSeparator)
	s2 := strings.Split(string(other), SubnetSeparator)
	if len(s1) > len(s2) {
		s1, s2 = s2, s1
	}
	l := 0
	for i, s := range s1 {
		if s == s2[i] {
			l = i
		} else {
			break
		}
	}
	out := strings.Join(s1[:l+1], SubnetSeparator)
	if out == "" {
		return UndefSubnetID, 0
	}
	return SubnetID(out), l
}

// Down returns the subnet one level below the curr subnet in the
// path towards the current ID. It is used to determine the next
// subnet to traverse when routing a top-down message.
func (id SubnetID) Down(curr SubnetID) SubnetID {
	s1 := strings.Split(string(id), SubnetSeparator)
	s2 := strings.Split(string(curr), SubnetSeparator)
	// curr needs to be a prefix of the path to be able
	// to go down from it.
	if len(s1) <= len(s2) {
		return UndefSubnetID
	}
	_, l := id.CommonParent(curr)
	if l != len(s2)-1 {
		return UndefSubnetID
	}
	return SubnetID(strings.Join(s1[:l+2], SubnetSeparator))
}

func (id SubnetID) String() string {
	return string(id)
}

// SubnetKey implements Keyer interface, so SubnetIDs can be used
// as keys for maps.
type SubnetKey SubnetID

var _ abi.Keyer = SubnetKey("")

func (id SubnetKey) Key() string {
	return string(id)
}
