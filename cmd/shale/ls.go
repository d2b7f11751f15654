package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/aretw0/shale"
	"github.com/spf13/cobra"
)

var (
	lsJSON bool
	lsMax  int64
	lsSkip int64
)

var lsCmd = &cobra.Command{
	Use:   "ls [folder-path]",
	Short: "List the children of a folder",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := "/"
		if len(args) == 1 {
			path = args[0]
		}

		s, err := connect()
		if err != nil {
			fmt.Printf("Error connecting: %v\n", err)
			os.Exit(1)
		}

		ctx := context.Background()
		obj, err := s.GetObjectByPath(ctx, path, nil)
		if err != nil {
			fmt.Printf("Error resolving %s: %v\n", path, err)
			os.Exit(1)
		}
		folder, ok := obj.(*shale.Folder)
		if !ok {
			fmt.Printf("Error: %s is not a folder\n", path)
			os.Exit(1)
		}

		children := folder.Children(ctx, nil)
		if lsSkip > 0 {
			children = children.SkipTo(lsSkip)
		}
		if lsMax > 0 {
			children = children.Take(lsMax)
		}

		type row struct {
			ID   string `json:"id"`
			Type string `json:"type"`
			Name string `json:"name"`
		}
		var rows []row
		err = children.Each(func(child shale.Object) bool {
			rows = append(rows, row{
				ID:   child.ID(),
				Type: child.ObjectType().ID(),
				Name: child.Name(),
			})
			return true
		})
		if err != nil {
			fmt.Printf("Error listing children: %v\n", err)
			os.Exit(1)
		}

		if lsJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(rows); err != nil {
				fmt.Printf("Error encoding JSON: %v\n", err)
				os.Exit(1)
			}
			return
		}

		for _, r := range rows {
			fmt.Printf("%-36s  %-20s  %s\n", r.ID, r.Type, r.Name)
		}
		if total := children.TotalNumItems(); total >= 0 {
			fmt.Printf("%d item(s) total\n", total)
		}
	},
}

func init() {
	rootCmd.AddCommand(lsCmd)
	lsCmd.Flags().BoolVar(&lsJSON, "json", false, "Output in JSON format")
	lsCmd.Flags().Int64Var(&lsMax, "max", 0, "Maximum number of children to list (0 = all)")
	lsCmd.Flags().Int64Var(&lsSkip, "skip", 0, "Number of children to skip")
}
