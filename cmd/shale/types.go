package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/aretw0/shale/pkg/types"
	"github.com/spf13/cobra"
)

var typesDepth int64

var typesCmd = &cobra.Command{
	Use:   "types [type-id]",
	Short: "Show the repository type tree",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		typeID := ""
		if len(args) == 1 {
			typeID = args[0]
		}

		s, err := connect()
		if err != nil {
			fmt.Printf("Error connecting: %v\n", err)
			os.Exit(1)
		}

		tree, err := s.Types().Descendants(context.Background(), typeID, typesDepth, false)
		if err != nil {
			fmt.Printf("Error fetching types: %v\n", err)
			os.Exit(1)
		}
		printTypeTree(tree, 0)
	},
}

func printTypeTree(tree []*types.Container, indent int) {
	for _, node := range tree {
		fmt.Printf("%s%s (%s)\n", strings.Repeat("  ", indent), node.Type.ID(), node.Type.DisplayName())
		printTypeTree(node.Children, indent+1)
	}
}

func init() {
	rootCmd.AddCommand(typesCmd)
	typesCmd.Flags().Int64Var(&typesDepth, "depth", -1, "Tree depth (-1 = full tree)")
}
