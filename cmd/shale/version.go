package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/shale"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of shale",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("shale version %s\n", strings.TrimSpace(shale.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
