package main

import (
	"os"

	"github.com/talentgraph/talentgraph/cmd/talentgraph"
)

func main() {
	if err := talentgraph.Execute(); err != nil {
		os.Exit(1)
	}
}
