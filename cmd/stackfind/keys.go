// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Show the configured Stack Exchange keys, masked",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		masked := pool.Masked()
		fmt.Fprintf(out, "%d key(s) in rotation\n", len(masked))
		for i, k := range masked {
			fmt.Fprintf(out, "  [%d] %s\n", i, k)
		}
	},
}

func init() {
	rootCmd.AddCommand(keysCmd)
}
