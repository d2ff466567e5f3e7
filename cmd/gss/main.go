// Command gss runs the ground-state-space engine over a YAML layout
// document and prints a summary of the surviving root charge states.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "gss",
		Short: "Electrostatic ground-state-space simulation for SiDB layouts",
	}
	root.AddCommand(newRunCmd())
	return root
}
