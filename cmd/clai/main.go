package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/doeshing/clai-go/internal/domain"
	"github.com/doeshing/clai-go/internal/infrastructure/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCmd(cli.Options{Verbose: isVerbose()})
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		if hint := cli.Hint(err); hint != "" {
			fmt.Fprintln(os.Stdout)
			fmt.Fprintln(os.Stdout, hint)
		}
		stop()
		os.Exit(1)
	}
}

func isVerbose() bool {
	value := os.Getenv(domain.EnvDebug)
	return strings.EqualFold(value, "1") || strings.EqualFold(value, "true")
}
