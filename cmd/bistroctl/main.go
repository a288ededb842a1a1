package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "bistroctl",
		Short:   "bistroctl - operações administrativas do BistroBoss",
		Version: Version,
	}

	rootCmd.AddCommand(promoteCmd())
	rootCmd.AddCommand(tokenCmd())
	rootCmd.AddCommand(statsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
