package actor

import (
	"github.com/ipfs/go-cid"
	mh "github.com/multiformats/go-multihash"
)

var (
	GatewayActorCodeID cid.Cid
	SubnetActorCodeID  cid.Cid
)

var builtinActors map[cid.Cid]*actorInfo

type actorInfo struct {
	name string
}

func init() {
	builder := cid.V1Builder{Codec: cid.Raw, MhType: mh.IDENTITY}
	builtinActors = make(map[cid.Cid]*actorInfo)

	for id, info := range map[*cid.Cid]*actorInfo{ //nolint:nomaprange
		&GatewayActorCodeID: {name: "hierarchical/0/gateway"},
		&SubnetActorCodeID:  {name: "hierarchical/0/subnet"},
	} {
		c, err := builder.Sum([]byte(info.name))
		if err != nil {
			panic(err)
		}
		*id = c
		builtinActors[c] = info
	}
}

// IsBuiltinActor reports whether a code cid belongs to one of the
// hierarchical consensus actors.
func IsBuiltinActor(c cid.Cid) bool {
	_, ok := builtinActors[c]
	return ok
}

// ActorNameByCode returns the friendly name of a hierarchical actor.
func ActorNameByCode(c cid.Cid) string {
	if info, ok := builtinActors[c]; ok {
		return info.name
	}
	return "<unknown>"
}
