package main

import (
	"context"
	"fmt"
	"os"

	"jobdash/internal/cli"
	"jobdash/internal/di"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	root := cli.NewRootCmd(version, buildDate, di.InitApp)
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
