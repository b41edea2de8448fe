package main

import (
	gen "github.com/whyrusleeping/cbor-gen"

	actor "github.com/consensus-shipyard/subnet-actor/actors/subnet"
)

func main() {
	if err := gen.WriteTupleEncodersToFile("./cbor_gen.go", "subnet",
		actor.SubnetState{},
		actor.ConstructParams{},
		actor.JoinParams{},
		actor.CheckVotes{},
		actor.CrossMsgParams{},
		actor.CrossMsgRet{},
		actor.SubmitCheckpointReturn{},
		actor.MetaTag{},
	); err != nil {
		panic(err)
	}
}
