package main

import (
	gateway "github.com/consensus-shipyard/subnet-actor/actors/gateway"

	gen "github.com/whyrusleeping/cbor-gen"
)

func main() {
	if err := gen.WriteTupleEncodersToFile("./cbor_gen.go", "gateway",
		gateway.SubnetIDParam{},
		gateway.FundParams{},
		gateway.CheckpointParams{},
	); err != nil {
		panic(err)
	}
}
