package main

import (
	"context"
	"fmt"
	"os"

	_ "github.com/ncobase/relaypage/data/all"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
