package main

import (
	"fmt"
	"os"

	"github.com/cra16/cake-core-sub001/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "cake: %v\n", err)
		os.Exit(1)
	}
}
