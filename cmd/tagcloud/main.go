package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tagcloud/tagcloud/internal/cli"
	tcerrors "github.com/tagcloud/tagcloud/pkg/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	c := cli.New(os.Stderr, cli.LogInfo)
	if err := c.RootCommand().ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130) // Standard shell convention for SIGINT
		}
		if code := tcerrors.GetCode(err); code != "" {
			fmt.Fprintf(os.Stderr, "Error [%s]: %v\n", code, err)
		} else {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		if tcerrors.IsInvalid(err) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
