package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"

	"github.com/kat-cli/kat/internal/cli"
	"github.com/kat-cli/kat/pkg/version"
)

func main() {
	cmd := cli.NewRootCmd()

	err := fang.Execute(context.Background(), cmd,
		fang.WithVersion(version.GetVersion()),
		fang.WithErrorHandler(cli.ErrorHandler),
	)
	if err != nil {
		os.Exit(1)
	}
}
