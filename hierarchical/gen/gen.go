package main

import (
	gen "github.com/whyrusleeping/cbor-gen"

	"github.com/consensus-shipyard/subnet-actor/hierarchical"
)

func main() {
	if err := gen.WriteTupleEncodersToFile("./cbor_gen.go", "hierarchical",
		hierarchical.Validator{},
		hierarchical.CrossMsg{},
	); err != nil {
		panic(err)
	}
}
