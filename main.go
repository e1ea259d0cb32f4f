package main

import (
	"context"
	"github.com/litetable/mta-bus-queries/internal/cli"
	"os"
)

func main() {
	os.Exit(cli.Execute(context.Background(), os.Args[1:], &cli.Options{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}))
}
