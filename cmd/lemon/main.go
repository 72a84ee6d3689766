package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/lemon-client/cmd/lemon/commands"
	"github.com/fivetwenty-io/lemon-client/pkg/lemon"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cobra.OnInitialize(commands.InitConfig)

	rootCmd := commands.NewRootCommand(version, commit, date)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		printError(err)
		os.Exit(1)
	}
}

func printError(err error) {
	if apiErr, ok := lemon.AsAPIError(err); ok {
		fmt.Fprintf(os.Stderr, "Error: %s: %s\n", apiErr.RawCode, apiErr.Message)

		return
	}

	fmt.Fprintln(os.Stderr, "Error:", err)
}
