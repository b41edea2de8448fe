package utils

import (
	"math/rand"
	"strconv"

	"github.com/filecoin-project/go-state-types/abi"

	"github.com/consensus-shipyard/subnet-actor/checkpoints/schema"
	"github.com/consensus-shipyard/subnet-actor/hierarchical"
)

// GenRandChecks returns a list of checkpoints from random child
// sources to populate tests.
func GenRandChecks(num int) []*schema.Checkpoint {
	l := make([]*schema.Checkpoint, 0)
	for i := 0; i < num; i++ {
		s := hierarchical.SubnetID("/root/f0" + strconv.FormatInt(int64(100+i), 10))
		c := schema.NewRawCheckpoint(s, abi.ChainEpoch(i))
		c.SetTipSet(randBytes(32))
		l = append(l, c)
	}
	return l
}

func randBytes(n int) []byte {
	b := make([]byte, n)
	_, _ = rand.Read(b) // nolint:gosec
	return b
}
