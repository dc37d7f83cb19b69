package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/dragonro/DomainAnalyser/internal/cli"
)

func main() {
	if err := run(context.Background(), os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdin io.Reader, stdout, stderr io.Writer) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	return cli.Execute(ctx, stdin, stdout, stderr)
}
